// Package validate implementa la puerta de validación previa a toda mutación:
// reglas por entidad evaluadas antes de cualquier llamada al gateway. Cada
// regla que falla produce un *domain.FieldError con el campo ofensor y un
// mensaje legible; la primera falla aborta la evaluación.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Lavanderia-sync/internal/domain"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
)

// Longitudes mínimas (tras recortar espacios).
const (
	minNameLen    = 2
	minContactLen = 9
	minAddressLen = 5
)

// Customer valida los campos para crear un cliente.
func Customer(in entity.NewCustomer) error {
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < minNameLen {
		return domain.NewFieldError("name", "El nombre debe tener al menos 2 caracteres")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Contact)) < minContactLen {
		return domain.NewFieldError("contact", "El contacto debe tener al menos 9 caracteres")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Address)) < minAddressLen {
		return domain.NewFieldError("address", "La dirección debe tener al menos 5 caracteres")
	}
	// document es opcional
	return nil
}

// CustomerPatch valida solo los campos presentes en el patch.
func CustomerPatch(p entity.CustomerPatch) error {
	if p.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Name)) < minNameLen {
		return domain.NewFieldError("name", "El nombre debe tener al menos 2 caracteres")
	}
	if p.Contact != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Contact)) < minContactLen {
		return domain.NewFieldError("contact", "El contacto debe tener al menos 9 caracteres")
	}
	if p.Address != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Address)) < minAddressLen {
		return domain.NewFieldError("address", "La dirección debe tener al menos 5 caracteres")
	}
	return nil
}

// Order valida los campos para crear una orden de servicio.
func Order(in entity.NewServiceOrder) error {
	if in.CustomerID == "" {
		return domain.NewFieldError("customer_id", "El cliente es obligatorio")
	}
	if !in.ServiceType.IsValid() {
		return domain.NewFieldError("service_type", "El tipo de servicio es obligatorio")
	}
	if strings.TrimSpace(in.ClothingType) == "" {
		return domain.NewFieldError("clothing_type", "El tipo de prenda es obligatorio")
	}
	if in.Quantity < 1 {
		return domain.NewFieldError("quantity", "La cantidad debe ser mayor que cero")
	}
	if !in.UnitPrice.IsPositive() {
		return domain.NewFieldError("unit_price", "El precio unitario debe ser mayor que cero")
	}
	if in.ExpectedDelivery == "" {
		return domain.NewFieldError("expected_delivery", "La fecha de entrega es obligatoria")
	}
	if _, err := entity.ParseDate(in.ExpectedDelivery); err != nil {
		return domain.NewFieldError("expected_delivery", "La fecha de entrega no es válida")
	}
	if in.Status != "" && !in.Status.IsValid() {
		return domain.NewFieldError("status", "El estado de la orden no es válido")
	}
	return nil
}

// OrderPatch valida solo los campos presentes en el patch.
func OrderPatch(p entity.OrderPatch) error {
	if p.CustomerID != nil && *p.CustomerID == "" {
		return domain.NewFieldError("customer_id", "El cliente es obligatorio")
	}
	if p.ServiceType != nil && !p.ServiceType.IsValid() {
		return domain.NewFieldError("service_type", "El tipo de servicio no es válido")
	}
	if p.ClothingType != nil && strings.TrimSpace(*p.ClothingType) == "" {
		return domain.NewFieldError("clothing_type", "El tipo de prenda no puede estar vacío")
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return domain.NewFieldError("quantity", "La cantidad debe ser mayor que cero")
	}
	if p.UnitPrice != nil && !p.UnitPrice.IsPositive() {
		return domain.NewFieldError("unit_price", "El precio unitario debe ser mayor que cero")
	}
	if p.ExpectedDelivery != nil && p.ExpectedDelivery.IsZero() {
		return domain.NewFieldError("expected_delivery", "La fecha de entrega no es válida")
	}
	if p.Status != nil && !p.Status.IsValid() {
		return domain.NewFieldError("status", "El estado de la orden no es válido")
	}
	return nil
}

// Payment valida los campos para registrar un pago.
func Payment(in entity.NewPayment) error {
	if in.OrderID == "" {
		return domain.NewFieldError("order_id", "La orden es obligatoria")
	}
	if !in.Amount.IsPositive() {
		return domain.NewFieldError("amount", "El valor del pago debe ser mayor que cero")
	}
	if !in.Method.IsValid() {
		return domain.NewFieldError("method", "La forma de pago es obligatoria")
	}
	if in.PaymentDate == "" {
		return domain.NewFieldError("payment_date", "La fecha de pago es obligatoria")
	}
	if _, err := entity.ParseDate(in.PaymentDate); err != nil {
		return domain.NewFieldError("payment_date", "La fecha de pago no es válida")
	}
	return nil
}

// PaymentPatch valida solo los campos presentes en el patch.
func PaymentPatch(p entity.PaymentPatch) error {
	if p.OrderID != nil && *p.OrderID == "" {
		return domain.NewFieldError("order_id", "La orden es obligatoria")
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return domain.NewFieldError("amount", "El valor del pago debe ser mayor que cero")
	}
	if p.Method != nil && !p.Method.IsValid() {
		return domain.NewFieldError("method", "La forma de pago no es válida")
	}
	if p.PaymentDate != nil && p.PaymentDate.IsZero() {
		return domain.NewFieldError("payment_date", "La fecha de pago no es válida")
	}
	return nil
}
