// Package gateway define los puertos hacia el backend remoto (almacenamiento
// tabular con filtros/joins y API de sesión). El backend es un colaborador
// externo: aquí solo viven las interfaces que consumen los stores; la
// implementación HTTP está en internal/infrastructure/supabase.
package gateway

import (
	"context"

	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
)

// Principal actor autenticado cuyo id delimita la propiedad de las filas.
type Principal struct {
	ID    string
	Email string
}

// AuthEvent cambio en el estado de la sesión.
type AuthEvent string

const (
	AuthSignedIn       AuthEvent = "SIGNED_IN"
	AuthSignedOut      AuthEvent = "SIGNED_OUT"
	AuthTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// AuthGateway API de sesión del backend.
type AuthGateway interface {
	// CurrentPrincipal devuelve el actor autenticado, o (nil, nil) si no hay
	// sesión activa. Solo devuelve error ante fallas del propio gateway.
	CurrentPrincipal(ctx context.Context) (*Principal, error)
	// OnAuthChange registra un listener de cambios de sesión y devuelve la
	// función que lo da de baja.
	OnAuthChange(fn func(AuthEvent, *Principal)) (cancel func())
	// IsAdmin consulta en el backend si el principal actual tiene rol de
	// administrador (RPC current_user_is_admin).
	IsAdmin(ctx context.Context) (bool, error)
}

// CustomerGateway operaciones CRUD sobre la tabla customers.
// List devuelve la colección completa ordenada por created_at descendente.
type CustomerGateway interface {
	List(ctx context.Context) ([]entity.Customer, error)
	Insert(ctx context.Context, c entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, id string, p entity.CustomerPatch) (*entity.Customer, error)
	Delete(ctx context.Context, id string) error
	// Count cabecera con conteo exacto; la usa el monitor de conectividad.
	Count(ctx context.Context) (int64, error)
}

// OrderGateway operaciones CRUD sobre service_orders, siempre con el cliente
// embebido (variante tipada del join).
type OrderGateway interface {
	List(ctx context.Context) ([]entity.ServiceOrderWithCustomer, error)
	Insert(ctx context.Context, o entity.ServiceOrder) (*entity.ServiceOrderWithCustomer, error)
	Update(ctx context.Context, id string, p entity.OrderPatch) (*entity.ServiceOrderWithCustomer, error)
	Delete(ctx context.Context, id string) error
}

// PaymentGateway operaciones CRUD sobre payments, con la orden y su cliente
// embebidos.
type PaymentGateway interface {
	List(ctx context.Context) ([]entity.PaymentWithOrder, error)
	Insert(ctx context.Context, p entity.Payment) (*entity.PaymentWithOrder, error)
	Update(ctx context.Context, id string, p entity.PaymentPatch) (*entity.PaymentWithOrder, error)
	Delete(ctx context.Context, id string) error
}
