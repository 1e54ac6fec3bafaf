package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod forma de pago aceptada.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodMobileMoney  PaymentMethod = "mobile-money"
	MethodBankTransfer PaymentMethod = "bank-transfer"
	MethodCard         PaymentMethod = "card"
)

// PaymentMethods dominio cerrado de formas de pago.
var PaymentMethods = []PaymentMethod{
	MethodCash,
	MethodMobileMoney,
	MethodBankTransfer,
	MethodCard,
}

// IsValid indica si el valor pertenece al dominio.
func (m PaymentMethod) IsValid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Payment pago registrado contra una orden de servicio.
// La intención de negocio es un pago por orden, pero la unicidad no está
// restringida en el gateway; ver notas de diseño.
type Payment struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate Date            `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
	OwnerID     string          `json:"owner,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitzero"`
	UpdatedAt   time.Time       `json:"updated_at,omitzero"`
}

// PaymentWithOrder pago con la orden (y su cliente) embebidos por el join.
type PaymentWithOrder struct {
	Payment
	Order OrderSummary `json:"order"`
}

// NewPayment campos de entrada para registrar un pago.
type NewPayment struct {
	OrderID     string
	Amount      decimal.Decimal
	Method      PaymentMethod
	PaymentDate string // "YYYY-MM-DD", lo interpreta la puerta de validación
	Notes       string
}

// PaymentPatch actualización parcial de un pago.
type PaymentPatch struct {
	OrderID     *string          `json:"order_id,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Method      *PaymentMethod   `json:"method,omitempty"`
	PaymentDate *Date            `json:"payment_date,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}
