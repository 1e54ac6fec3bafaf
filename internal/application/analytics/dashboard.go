// Package analytics calcula los agregados derivados del dashboard: funciones
// puras sobre los snapshots actuales de clientes, órdenes y pagos. Se
// recalculan completas en cada llamada; no hay mantenimiento incremental ni
// memoización.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
)

// Summary KPIs del dashboard.
type Summary struct {
	TotalCustomers   int
	OrdersReceived   int
	OrdersInProgress int
	OrdersReady      int
	OrdersDelivered  int
	// RunningProfit suma de todos los pagos cargados, sin filtro por fecha.
	// La UI lo rotula "lucro do mês"; se conserva el comportamiento.
	RunningProfit decimal.Decimal
}

// Summarize construye el resumen a partir de los snapshots actuales.
func Summarize(
	customers []entity.Customer,
	orders []entity.ServiceOrderWithCustomer,
	payments []entity.PaymentWithOrder,
) Summary {
	return Summary{
		TotalCustomers:   len(customers),
		OrdersReceived:   CountByStatus(orders, entity.StatusReceived),
		OrdersInProgress: CountByStatus(orders, entity.StatusInProgress),
		OrdersReady:      CountByStatus(orders, entity.StatusReady),
		OrdersDelivered:  CountByStatus(orders, entity.StatusDelivered),
		RunningProfit:    TotalPaid(payments),
	}
}

// CountByStatus cuenta las órdenes con exactamente ese estado (comparación
// sensible a mayúsculas, valores del enum).
func CountByStatus(orders []entity.ServiceOrderWithCustomer, status entity.OrderStatus) int {
	n := 0
	for _, o := range orders {
		if o.Status == status {
			n++
		}
	}
	return n
}

// TotalPaid suma amount sobre todos los pagos del snapshot.
func TotalPaid(payments []entity.PaymentWithOrder) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// paidOrderIDs índice de ids de orden con al menos un pago cargado.
func paidOrderIDs(payments []entity.PaymentWithOrder) map[string]struct{} {
	paid := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		paid[p.OrderID] = struct{}{}
	}
	return paid
}

// UnpaidOrders órdenes cuyo id no aparece en ningún pago del snapshot.
// O(órdenes + pagos) gracias al índice por order_id.
func UnpaidOrders(
	orders []entity.ServiceOrderWithCustomer,
	payments []entity.PaymentWithOrder,
) []entity.ServiceOrderWithCustomer {
	paid := paidOrderIDs(payments)
	out := orders[:0:0]
	for _, o := range orders {
		if _, ok := paid[o.ID]; !ok {
			out = append(out, o)
		}
	}
	return out
}

// OverdueOrders órdenes sin pago cuya fecha de entrega prevista es
// estrictamente anterior a now.
func OverdueOrders(
	orders []entity.ServiceOrderWithCustomer,
	payments []entity.PaymentWithOrder,
	now time.Time,
) []entity.ServiceOrderWithCustomer {
	paid := paidOrderIDs(payments)
	out := orders[:0:0]
	for _, o := range orders {
		if _, ok := paid[o.ID]; ok {
			continue
		}
		if o.ExpectedDelivery.Before(now) {
			out = append(out, o)
		}
	}
	return out
}
