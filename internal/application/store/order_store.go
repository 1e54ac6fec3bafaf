package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lavanderia-sync/internal/application/notify"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/validate"
	"github.com/jhoicas/Lavanderia-sync/pkg/logger"
)

// OrderStore snapshot observable de las órdenes de servicio, siempre con el
// cliente embebido por el join del gateway.
type OrderStore struct {
	gw   gateway.OrderGateway
	auth gateway.AuthGateway
	sink notify.Notifier
	log  *logger.Logger
	snap *snapshot[entity.ServiceOrderWithCustomer]

	// ReconcileDelay espera del refetch que sigue a cada create.
	ReconcileDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrderStore construye el store con sus dependencias. sink y log admiten
// nil.
func NewOrderStore(gw gateway.OrderGateway, auth gateway.AuthGateway, sink notify.Notifier, log *logger.Logger) *OrderStore {
	if sink == nil {
		sink = notify.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &OrderStore{
		gw:             gw,
		auth:           auth,
		sink:           sink,
		log:            log,
		snap:           newSnapshot(func(o entity.ServiceOrderWithCustomer) string { return o.ID }),
		ReconcileDelay: DefaultReconcileDelay,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Items copia del snapshot actual (más nueva primero).
func (s *OrderStore) Items() []entity.ServiceOrderWithCustomer { return s.snap.Items() }

// Loading indica si hay un fetch en curso.
func (s *OrderStore) Loading() bool { return s.snap.Loading() }

// Close cancela las reconciliaciones pendientes y espera a que terminen.
func (s *OrderStore) Close() {
	s.cancel()
	s.wg.Wait()
}

// Refetch trae la colección completa (con join de clientes) y reemplaza el
// snapshot. Ante un fallo el snapshot previo queda intacto.
func (s *OrderStore) Refetch(ctx context.Context) error {
	s.snap.SetLoading(true)
	defer s.snap.SetLoading(false)

	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al cargar órdenes", err, "Error desconocido al cargar datos")
		return err
	}

	items, err := s.gw.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("cargar órdenes")
		notifyFailure(s.sink, "Error al cargar órdenes", err, "Error desconocido al cargar datos")
		return err
	}

	s.snap.Replace(items)
	s.log.Debug().Int("count", len(items)).Msg("órdenes cargadas")
	return nil
}

// Create valida, exige sesión, calcula el total (quantity × unit_price) y
// sintetiza el id ORD-<timestamp>. Con éxito antepone la fila autoritativa
// (join incluido) y programa la reconciliación diferida.
func (s *OrderStore) Create(ctx context.Context, in entity.NewServiceOrder) (*entity.ServiceOrderWithCustomer, error) {
	if err := validate.Order(in); err != nil {
		notifyFailure(s.sink, "Error al crear orden", err, "Error desconocido al crear orden")
		return nil, err
	}

	principal, err := requirePrincipal(ctx, s.auth)
	if err != nil {
		notifyFailure(s.sink, "Error al crear orden", err, "Error desconocido al crear orden")
		return nil, err
	}

	// Ya validada como presente y parseable.
	due, _ := entity.ParseDate(in.ExpectedDelivery)

	status := in.Status
	if status == "" {
		status = entity.StatusReceived
	}

	row := entity.ServiceOrder{
		ID:               newSyntheticID(orderIDPrefix),
		CustomerID:       in.CustomerID,
		ServiceType:      in.ServiceType,
		ClothingType:     in.ClothingType,
		Quantity:         in.Quantity,
		UnitPrice:        in.UnitPrice,
		Total:            in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		ExpectedDelivery: due,
		Status:           status,
		Notes:            in.Notes,
		OwnerID:          principal.ID,
	}

	created, err := s.gw.Insert(ctx, row)
	if err != nil {
		s.log.Warn().Err(err).Msg("crear orden")
		notifyFailure(s.sink, "Error al crear orden", err, "Error desconocido al crear orden")
		return nil, err
	}

	s.snap.Prepend(*created)
	notifySuccess(s.sink, "Orden creada", "Orden de servicio creada con éxito.")
	s.scheduleReconcile()
	return created, nil
}

// Update valida solo los campos presentes en el patch y reemplaza la fila
// local por la versión autoritativa, sin reordenar.
func (s *OrderStore) Update(ctx context.Context, id string, patch entity.OrderPatch) (*entity.ServiceOrderWithCustomer, error) {
	if err := validate.OrderPatch(patch); err != nil {
		notifyFailure(s.sink, "Error al actualizar orden", err, "Error desconocido al actualizar orden")
		return nil, err
	}

	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al actualizar orden", err, "Error desconocido al actualizar orden")
		return nil, err
	}

	updated, err := s.gw.Update(ctx, id, patch)
	if err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("actualizar orden")
		notifyFailure(s.sink, "Error al actualizar orden", err, "Error desconocido al actualizar orden")
		return nil, err
	}

	s.snap.Set(id, *updated)
	notifySuccess(s.sink, "Orden actualizada", "Orden de servicio actualizada con éxito.")
	return updated, nil
}

// Delete elimina por id; sin cascada sobre pagos (los huérfanos quedan hasta
// el próximo refetch de esa colección).
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al eliminar orden", err, "Error desconocido al eliminar orden")
		return err
	}

	if err := s.gw.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("eliminar orden")
		notifyFailure(s.sink, "Error al eliminar orden", err, "Error desconocido al eliminar orden")
		return err
	}

	s.snap.Remove(id)
	notifySuccess(s.sink, "Orden eliminada", "Orden de servicio eliminada con éxito.")
	return nil
}

// Search filtra por id, nombre del cliente o tipo de prenda; opcionalmente
// restringe a un estado ("" = todos).
func (s *OrderStore) Search(query string, status entity.OrderStatus) []entity.ServiceOrderWithCustomer {
	q := fold(strings.TrimSpace(query))
	items := s.snap.Items()
	out := items[:0:0]
	for _, o := range items {
		if status != "" && o.Status != status {
			continue
		}
		if q != "" && !matchesQuery(q, o.ID, o.Customer.Name, o.ClothingType) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (s *OrderStore) scheduleReconcile() {
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
