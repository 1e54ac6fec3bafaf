package store_test

import (
	"context"
	"sync"

	"github.com/jhoicas/Lavanderia-sync/internal/application/notify"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
)

// Dobles compartidos por las pruebas de los tres stores: un AuthGateway
// estático, un Notifier espía y mocks de gateway con contadores de llamadas.

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

type stubAuth struct {
	principal *gateway.Principal
	err       error
}

func (a *stubAuth) CurrentPrincipal(context.Context) (*gateway.Principal, error) {
	return a.principal, a.err
}

func (a *stubAuth) OnAuthChange(func(gateway.AuthEvent, *gateway.Principal)) func() {
	return func() {}
}

func (a *stubAuth) IsAdmin(context.Context) (bool, error) { return false, nil }

// loggedIn sesión activa de un principal fijo.
func loggedIn() *stubAuth {
	return &stubAuth{principal: &gateway.Principal{ID: "user-1", Email: "duena@lavanderia.example"}}
}

// loggedOut sin sesión: CurrentPrincipal devuelve (nil, nil).
func loggedOut() *stubAuth { return &stubAuth{} }

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ──────────────────────────────────────────────────────────────────────────────

type spySink struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (s *spySink) Notify(n notify.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, n)
}

func (s *spySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

func (s *spySink) last() notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notes) == 0 {
		return notify.Notification{}
	}
	return s.notes[len(s.notes)-1]
}

// ──────────────────────────────────────────────────────────────────────────────
// Gateways
// ──────────────────────────────────────────────────────────────────────────────

type mockCustomerGW struct {
	mu sync.Mutex

	lists, inserts, updates, deletes, counts int

	listFn   func(context.Context) ([]entity.Customer, error)
	insertFn func(context.Context, entity.Customer) (*entity.Customer, error)
	updateFn func(context.Context, string, entity.CustomerPatch) (*entity.Customer, error)
	deleteFn func(context.Context, string) error
}

func (m *mockCustomerGW) List(ctx context.Context) ([]entity.Customer, error) {
	m.mu.Lock()
	m.lists++
	fn := m.listFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (m *mockCustomerGW) Insert(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	m.mu.Lock()
	m.inserts++
	fn := m.insertFn
	m.mu.Unlock()
	if fn == nil {
		out := c
		out.ID = "srv-" + c.Name
		return &out, nil
	}
	return fn(ctx, c)
}

func (m *mockCustomerGW) Update(ctx context.Context, id string, p entity.CustomerPatch) (*entity.Customer, error) {
	m.mu.Lock()
	m.updates++
	fn := m.updateFn
	m.mu.Unlock()
	if fn == nil {
		return &entity.Customer{ID: id}, nil
	}
	return fn(ctx, id, p)
}

func (m *mockCustomerGW) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deletes++
	fn := m.deleteFn
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, id)
}

func (m *mockCustomerGW) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts++
	return 0, nil
}

// calls total de invocaciones de cualquier operación.
func (m *mockCustomerGW) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists + m.inserts + m.updates + m.deletes + m.counts
}

func (m *mockCustomerGW) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

type mockOrderGW struct {
	mu sync.Mutex

	lists, inserts, updates, deletes int

	listFn   func(context.Context) ([]entity.ServiceOrderWithCustomer, error)
	insertFn func(context.Context, entity.ServiceOrder) (*entity.ServiceOrderWithCustomer, error)
	updateFn func(context.Context, string, entity.OrderPatch) (*entity.ServiceOrderWithCustomer, error)
	deleteFn func(context.Context, string) error
}

func (m *mockOrderGW) List(ctx context.Context) ([]entity.ServiceOrderWithCustomer, error) {
	m.mu.Lock()
	m.lists++
	fn := m.listFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (m *mockOrderGW) Insert(ctx context.Context, o entity.ServiceOrder) (*entity.ServiceOrderWithCustomer, error) {
	m.mu.Lock()
	m.inserts++
	fn := m.insertFn
	m.mu.Unlock()
	if fn == nil {
		return &entity.ServiceOrderWithCustomer{ServiceOrder: o}, nil
	}
	return fn(ctx, o)
}

func (m *mockOrderGW) Update(ctx context.Context, id string, p entity.OrderPatch) (*entity.ServiceOrderWithCustomer, error) {
	m.mu.Lock()
	m.updates++
	fn := m.updateFn
	m.mu.Unlock()
	if fn == nil {
		return &entity.ServiceOrderWithCustomer{ServiceOrder: entity.ServiceOrder{ID: id}}, nil
	}
	return fn(ctx, id, p)
}

func (m *mockOrderGW) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deletes++
	fn := m.deleteFn
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, id)
}

func (m *mockOrderGW) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists + m.inserts + m.updates + m.deletes
}

func (m *mockOrderGW) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

type mockPaymentGW struct {
	mu sync.Mutex

	lists, inserts, updates, deletes int

	listFn   func(context.Context) ([]entity.PaymentWithOrder, error)
	insertFn func(context.Context, entity.Payment) (*entity.PaymentWithOrder, error)
	updateFn func(context.Context, string, entity.PaymentPatch) (*entity.PaymentWithOrder, error)
	deleteFn func(context.Context, string) error
}

func (m *mockPaymentGW) List(ctx context.Context) ([]entity.PaymentWithOrder, error) {
	m.mu.Lock()
	m.lists++
	fn := m.listFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (m *mockPaymentGW) Insert(ctx context.Context, p entity.Payment) (*entity.PaymentWithOrder, error) {
	m.mu.Lock()
	m.inserts++
	fn := m.insertFn
	m.mu.Unlock()
	if fn == nil {
		return &entity.PaymentWithOrder{Payment: p}, nil
	}
	return fn(ctx, p)
}

func (m *mockPaymentGW) Update(ctx context.Context, id string, p entity.PaymentPatch) (*entity.PaymentWithOrder, error) {
	m.mu.Lock()
	m.updates++
	fn := m.updateFn
	m.mu.Unlock()
	if fn == nil {
		return &entity.PaymentWithOrder{Payment: entity.Payment{ID: id}}, nil
	}
	return fn(ctx, id, p)
}

func (m *mockPaymentGW) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deletes++
	fn := m.deleteFn
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, id)
}

func (m *mockPaymentGW) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists + m.inserts + m.updates + m.deletes
}

func (m *mockPaymentGW) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

// Verificación estática de los puertos.
var (
	_ gateway.AuthGateway     = (*stubAuth)(nil)
	_ gateway.CustomerGateway = (*mockCustomerGW)(nil)
	_ gateway.OrderGateway    = (*mockOrderGW)(nil)
	_ gateway.PaymentGateway  = (*mockPaymentGW)(nil)
	_ notify.Notifier         = (*spySink)(nil)
)
