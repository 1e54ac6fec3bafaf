package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType tipo de servicio de lavandería ofrecido.
type ServiceType string

const (
	ServiceSimpleWash  ServiceType = "simple-wash"
	ServiceDryClean    ServiceType = "dry-clean"
	ServiceIroning     ServiceType = "ironing"
	ServiceWashAndIron ServiceType = "wash+iron"
	ServiceSpecialWash ServiceType = "special-wash"
)

// ServiceTypes dominio cerrado de tipos de servicio.
var ServiceTypes = []ServiceType{
	ServiceSimpleWash,
	ServiceDryClean,
	ServiceIroning,
	ServiceWashAndIron,
	ServiceSpecialWash,
}

// IsValid indica si el valor pertenece al dominio.
func (s ServiceType) IsValid() bool {
	for _, v := range ServiceTypes {
		if s == v {
			return true
		}
	}
	return false
}

// OrderStatus estado de una orden de servicio. No hay grafo de transiciones:
// cualquier estado es alcanzable desde cualquier otro.
type OrderStatus string

const (
	StatusReceived   OrderStatus = "received"
	StatusInProgress OrderStatus = "in-progress"
	StatusReady      OrderStatus = "ready"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses dominio cerrado de estados.
var OrderStatuses = []OrderStatus{
	StatusReceived,
	StatusInProgress,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// IsValid indica si el valor pertenece al dominio.
func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ServiceOrder orden de servicio de lavandería.
// Total se calcula en el cliente al crear (quantity × unit_price) y se
// almacena de forma redundante en el gateway.
type ServiceOrder struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	ServiceType      ServiceType     `json:"service_type"`
	ClothingType     string          `json:"clothing_type"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Total            decimal.Decimal `json:"total"`
	ExpectedDelivery Date            `json:"expected_delivery"`
	Status           OrderStatus     `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	OwnerID          string          `json:"owner,omitempty"`
	CreatedAt        time.Time       `json:"created_at,omitzero"`
	UpdatedAt        time.Time       `json:"updated_at,omitzero"`
}

// ServiceOrderWithCustomer orden con el cliente embebido por el join del
// gateway. Variante tipada: se valida en la frontera, no es un mapa dinámico.
type ServiceOrderWithCustomer struct {
	ServiceOrder
	Customer CustomerSummary `json:"customer"`
}

// NewServiceOrder campos de entrada para crear una orden.
// ExpectedDelivery llega como texto del formulario ("YYYY-MM-DD") y lo
// interpreta la puerta de validación.
type NewServiceOrder struct {
	CustomerID       string
	ServiceType      ServiceType
	ClothingType     string
	Quantity         int
	UnitPrice        decimal.Decimal
	ExpectedDelivery string
	Status           OrderStatus // vacío = received
	Notes            string
}

// OrderPatch actualización parcial de una orden.
type OrderPatch struct {
	CustomerID       *string          `json:"customer_id,omitempty"`
	ServiceType      *ServiceType     `json:"service_type,omitempty"`
	ClothingType     *string          `json:"clothing_type,omitempty"`
	Quantity         *int             `json:"quantity,omitempty"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
	Total            *decimal.Decimal `json:"total,omitempty"`
	ExpectedDelivery *Date            `json:"expected_delivery,omitempty"`
	Status           *OrderStatus     `json:"status,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

// OrderSummary proyección de orden embebida en el join de pagos.
type OrderSummary struct {
	ID           string          `json:"id"`
	ClothingType string          `json:"clothing_type"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
	Customer     CustomerSummary `json:"customer"`
}
