package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	// ErrUnauthenticated se devuelve cuando una mutación se intenta sin sesión activa.
	ErrUnauthenticated = errors.New("usuario no autenticado")
	// ErrNotFound recurso inexistente en la colección local.
	ErrNotFound = errors.New("recurso no encontrado")
)

// FieldError falla de validación local: nunca llega al gateway.
// Field identifica el campo ofensor; Message es el texto que ve el usuario.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// NewFieldError construye un FieldError.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// IsFieldError indica si err (o su cadena) es un error de validación de campo.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}

// GatewayError error devuelto por el backend remoto (PostgREST / GoTrue).
// Message se propaga tal cual lo entrega el servicio; Code es el código
// PostgREST (ej. "PGRST116") cuando existe.
type GatewayError struct {
	Status  int    // código HTTP de la respuesta
	Code    string // código de error del servicio, puede estar vacío
	Message string
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("gateway (HTTP %d): %s", e.Status, e.Message)
}

// IsGatewayError indica si err (o su cadena) proviene del gateway remoto.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// UserMessage devuelve el texto a mostrar al usuario para cualquier error de
// la taxonomía, con un fallback genérico si no hay mensaje disponible.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	var ge *GatewayError
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "Usuario no autenticado. Inicie sesión nuevamente."
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
