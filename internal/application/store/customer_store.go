package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Lavanderia-sync/internal/application/notify"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/validate"
	"github.com/jhoicas/Lavanderia-sync/pkg/logger"
)

// CustomerStore snapshot observable de la colección de clientes, sincronizado
// con el gateway remoto y con mutaciones optimistas.
type CustomerStore struct {
	gw   gateway.CustomerGateway
	auth gateway.AuthGateway
	sink notify.Notifier
	log  *logger.Logger
	snap *snapshot[entity.Customer]

	// ReconcileDelay espera del refetch que sigue a cada create. Ajustable
	// antes del primer uso; por defecto DefaultReconcileDelay.
	ReconcileDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCustomerStore construye el store con sus dependencias. sink y log
// admiten nil (se sustituyen por implementaciones nulas).
func NewCustomerStore(gw gateway.CustomerGateway, auth gateway.AuthGateway, sink notify.Notifier, log *logger.Logger) *CustomerStore {
	if sink == nil {
		sink = notify.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &CustomerStore{
		gw:             gw,
		auth:           auth,
		sink:           sink,
		log:            log,
		snap:           newSnapshot(func(c entity.Customer) string { return c.ID }),
		ReconcileDelay: DefaultReconcileDelay,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Items copia del snapshot actual (más nuevo primero).
func (s *CustomerStore) Items() []entity.Customer { return s.snap.Items() }

// Loading indica si hay un fetch en curso.
func (s *CustomerStore) Loading() bool { return s.snap.Loading() }

// Close cancela las reconciliaciones pendientes y espera a que terminen.
func (s *CustomerStore) Close() {
	s.cancel()
	s.wg.Wait()
}

// Refetch trae la colección completa y reemplaza el snapshot. Ante un fallo
// el snapshot previo queda intacto y no se reintenta.
func (s *CustomerStore) Refetch(ctx context.Context) error {
	s.snap.SetLoading(true)
	defer s.snap.SetLoading(false)

	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al cargar clientes", err, "Error desconocido al cargar datos")
		return err
	}

	items, err := s.gw.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("cargar clientes")
		notifyFailure(s.sink, "Error al cargar clientes", err, "Error desconocido al cargar datos")
		return err
	}

	s.snap.Replace(items)
	s.log.Debug().Int("count", len(items)).Msg("clientes cargados")
	return nil
}

// Create valida, exige sesión y envía el insert. Con éxito antepone la fila
// autoritativa del servidor al snapshot y programa el refetch de
// reconciliación; con fallo no toca el estado local.
func (s *CustomerStore) Create(ctx context.Context, in entity.NewCustomer) (*entity.Customer, error) {
	if err := validate.Customer(in); err != nil {
		notifyFailure(s.sink, "Error al crear cliente", err, "Error desconocido al crear cliente")
		return nil, err
	}

	principal, err := requirePrincipal(ctx, s.auth)
	if err != nil {
		notifyFailure(s.sink, "Error al crear cliente", err, "Error desconocido al crear cliente")
		return nil, err
	}

	created, err := s.gw.Insert(ctx, entity.Customer{
		Name:     in.Name,
		Contact:  in.Contact,
		Address:  in.Address,
		Document: in.Document,
		OwnerID:  principal.ID,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("crear cliente")
		notifyFailure(s.sink, "Error al crear cliente", err, "Error desconocido al crear cliente")
		return nil, err
	}

	s.snap.Prepend(*created)
	notifySuccess(s.sink, "Cliente creado", "Cliente agregado con éxito.")
	s.scheduleReconcile()
	return created, nil
}

// Update valida solo los campos presentes en el patch y reemplaza la fila
// local por la versión autoritativa, sin reordenar la lista.
func (s *CustomerStore) Update(ctx context.Context, id string, patch entity.CustomerPatch) (*entity.Customer, error) {
	if err := validate.CustomerPatch(patch); err != nil {
		notifyFailure(s.sink, "Error al actualizar cliente", err, "Error desconocido al actualizar cliente")
		return nil, err
	}

	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al actualizar cliente", err, "Error desconocido al actualizar cliente")
		return nil, err
	}

	updated, err := s.gw.Update(ctx, id, patch)
	if err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("actualizar cliente")
		notifyFailure(s.sink, "Error al actualizar cliente", err, "Error desconocido al actualizar cliente")
		return nil, err
	}

	s.snap.Set(id, *updated)
	notifySuccess(s.sink, "Cliente actualizado", "Información del cliente actualizada con éxito.")
	return updated, nil
}

// Delete elimina por id. Con fallo (incluido id inexistente) el snapshot
// queda intacto.
func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al eliminar cliente", err, "Error desconocido al eliminar cliente")
		return err
	}

	if err := s.gw.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("eliminar cliente")
		notifyFailure(s.sink, "Error al eliminar cliente", err, "Error desconocido al eliminar cliente")
		return err
	}

	s.snap.Remove(id)
	notifySuccess(s.sink, "Cliente eliminado", "Cliente eliminado con éxito.")
	return nil
}

// Search filtra el snapshot por nombre, contacto o dirección, sin distinguir
// mayúsculas ni acentos.
func (s *CustomerStore) Search(query string) []entity.Customer {
	q := fold(strings.TrimSpace(query))
	items := s.snap.Items()
	if q == "" {
		return items
	}
	out := items[:0:0]
	for _, c := range items {
		if matchesQuery(q, c.Name, c.Contact, c.Address) {
			out = append(out, c)
		}
	}
	return out
}

// scheduleReconcile programa el refetch diferido que recoge campos derivados
// del servidor. La tarea muere con el store: Close la cancela.
func (s *CustomerStore) scheduleReconcile() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-time.After(s.ReconcileDelay):
		case <-s.ctx.Done():
			return
		}
		_ = s.Refetch(s.ctx)
	}()
}
