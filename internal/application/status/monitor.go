// Package status vigila la conectividad con el gateway y la identidad de la
// sesión: la vista de estado de la barra lateral consume este monitor.
package status

import (
	"context"
	"sync"

	"github.com/jhoicas/Lavanderia-sync/internal/application/notify"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
	"github.com/jhoicas/Lavanderia-sync/pkg/logger"
)

// Monitor estado de conexión e identidad. Connected distingue tres valores:
// desconocido (antes de la primera prueba), conectado y desconectado.
type Monitor struct {
	customers gateway.CustomerGateway
	auth      gateway.AuthGateway
	sink      notify.Notifier
	log       *logger.Logger

	mu          sync.RWMutex
	connected   *bool
	principal   *gateway.Principal
	unsubscribe func()
}

// NewMonitor construye el monitor. sink y log admiten nil.
func NewMonitor(customers gateway.CustomerGateway, auth gateway.AuthGateway, sink notify.Notifier, log *logger.Logger) *Monitor {
	if sink == nil {
		sink = notify.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Monitor{customers: customers, auth: auth, sink: sink, log: log}
}

// Start suscribe el monitor a los cambios de sesión. Idempotente.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unsubscribe != nil {
		return
	}
	m.unsubscribe = m.auth.OnAuthChange(func(ev gateway.AuthEvent, p *gateway.Principal) {
		m.onAuthChange(ev, p)
	})
}

// Close da de baja la suscripción de sesión.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// TestConnection prueba la conexión con un conteo liviano sobre customers y
// consulta el principal actual. Sirve también como reintento manual.
func (m *Monitor) TestConnection(ctx context.Context) error {
	if _, err := m.customers.Count(ctx); err != nil {
		m.setConnected(false, nil)
		m.log.Warn().Err(err).Msg("prueba de conexión")
		m.sink.Notify(notify.Notification{
			Title:       "Error de conexión",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return err
	}

	principal, err := m.auth.CurrentPrincipal(ctx)
	if err != nil {
		m.setConnected(false, nil)
		m.log.Warn().Err(err).Msg("verificar sesión")
		return err
	}

	m.setConnected(true, principal)
	m.log.Debug().Bool("authenticated", principal != nil).Msg("conexión verificada")
	return nil
}

// Connected devuelve (estado, conocido). known es false antes de la primera
// prueba de conexión.
func (m *Monitor) Connected() (connected, known bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.connected == nil {
		return false, false
	}
	return *m.connected, true
}

// Principal identidad actual, o nil sin sesión.
func (m *Monitor) Principal() *gateway.Principal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.principal
}

func (m *Monitor) setConnected(v bool, p *gateway.Principal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = &v
	m.principal = p
}

func (m *Monitor) onAuthChange(ev gateway.AuthEvent, p *gateway.Principal) {
	m.mu.Lock()
	m.principal = p
	switch ev {
	case gateway.AuthSignedIn:
		t := true
		m.connected = &t
	case gateway.AuthSignedOut:
		f := false
		m.connected = &f
	}
	m.mu.Unlock()

	switch ev {
	case gateway.AuthSignedIn:
		m.sink.Notify(notify.Notification{
			Title:       "Conectado",
			Description: "Usuario autenticado con éxito.",
			Severity:    notify.SeverityInfo,
		})
	case gateway.AuthSignedOut:
		m.sink.Notify(notify.Notification{
			Title:       "Desconectado",
			Description: "Sesión finalizada.",
			Severity:    notify.SeverityInfo,
		})
	}
}
