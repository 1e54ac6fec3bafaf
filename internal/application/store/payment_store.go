package store

import (
	"context"
	"strings"

	"github.com/jhoicas/Lavanderia-sync/internal/application/notify"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/validate"
	"github.com/jhoicas/Lavanderia-sync/pkg/logger"
)

// PaymentStore snapshot observable de los pagos, con la orden y su cliente
// embebidos. A diferencia de clientes y órdenes, el create de pagos no
// programa refetch de reconciliación: el insert ya devuelve el join completo.
type PaymentStore struct {
	gw   gateway.PaymentGateway
	auth gateway.AuthGateway
	sink notify.Notifier
	log  *logger.Logger
	snap *snapshot[entity.PaymentWithOrder]
}

// NewPaymentStore construye el store con sus dependencias. sink y log
// admiten nil.
func NewPaymentStore(gw gateway.PaymentGateway, auth gateway.AuthGateway, sink notify.Notifier, log *logger.Logger) *PaymentStore {
	if sink == nil {
		sink = notify.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentStore{
		gw:   gw,
		auth: auth,
		sink: sink,
		log:  log,
		snap: newSnapshot(func(p entity.PaymentWithOrder) string { return p.ID }),
	}
}

// Items copia del snapshot actual (más nuevo primero).
func (s *PaymentStore) Items() []entity.PaymentWithOrder { return s.snap.Items() }

// Loading indica si hay un fetch en curso.
func (s *PaymentStore) Loading() bool { return s.snap.Loading() }

// Refetch trae la colección completa (join de orden y cliente) y reemplaza el
// snapshot. Ante un fallo el snapshot previo queda intacto.
func (s *PaymentStore) Refetch(ctx context.Context) error {
	s.snap.SetLoading(true)
	defer s.snap.SetLoading(false)

	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al cargar pagos", err, "Error desconocido al cargar datos")
		return err
	}

	items, err := s.gw.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("cargar pagos")
		notifyFailure(s.sink, "Error al cargar pagos", err, "Error desconocido al cargar datos")
		return err
	}

	s.snap.Replace(items)
	s.log.Debug().Int("count", len(items)).Msg("pagos cargados")
	return nil
}

// Create valida, exige sesión y sintetiza el id PAY-<timestamp>. Con éxito
// antepone la fila autoritativa que devuelve el gateway.
func (s *PaymentStore) Create(ctx context.Context, in entity.NewPayment) (*entity.PaymentWithOrder, error) {
	if err := validate.Payment(in); err != nil {
		notifyFailure(s.sink, "Error al registrar pago", err, "Error desconocido al registrar pago")
		return nil, err
	}

	principal, err := requirePrincipal(ctx, s.auth)
	if err != nil {
		notifyFailure(s.sink, "Error al registrar pago", err, "Error desconocido al registrar pago")
		return nil, err
	}

	// Ya validada como presente y parseable.
	paidAt, _ := entity.ParseDate(in.PaymentDate)

	created, err := s.gw.Insert(ctx, entity.Payment{
		ID:          newSyntheticID(paymentIDPrefix),
		OrderID:     in.OrderID,
		Amount:      in.Amount,
		Method:      in.Method,
		PaymentDate: paidAt,
		Notes:       in.Notes,
		OwnerID:     principal.ID,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("registrar pago")
		notifyFailure(s.sink, "Error al registrar pago", err, "Error desconocido al registrar pago")
		return nil, err
	}

	s.snap.Prepend(*created)
	notifySuccess(s.sink, "Pago registrado", "Pago registrado con éxito.")
	return created, nil
}

// Update valida solo los campos presentes en el patch y reemplaza la fila
// local por la versión autoritativa, sin reordenar.
func (s *PaymentStore) Update(ctx context.Context, id string, patch entity.PaymentPatch) (*entity.PaymentWithOrder, error) {
	if err := validate.PaymentPatch(patch); err != nil {
		notifyFailure(s.sink, "Error al actualizar pago", err, "Error desconocido al actualizar pago")
		return nil, err
	}

	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al actualizar pago", err, "Error desconocido al actualizar pago")
		return nil, err
	}

	updated, err := s.gw.Update(ctx, id, patch)
	if err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("actualizar pago")
		notifyFailure(s.sink, "Error al actualizar pago", err, "Error desconocido al actualizar pago")
		return nil, err
	}

	s.snap.Set(id, *updated)
	notifySuccess(s.sink, "Pago actualizado", "Pago actualizado con éxito.")
	return updated, nil
}

// Delete elimina por id. Con fallo el snapshot queda intacto.
func (s *PaymentStore) Delete(ctx context.Context, id string) error {
	if _, err := requirePrincipal(ctx, s.auth); err != nil {
		notifyFailure(s.sink, "Error al eliminar pago", err, "Error desconocido al eliminar pago")
		return err
	}

	if err := s.gw.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("eliminar pago")
		notifyFailure(s.sink, "Error al eliminar pago", err, "Error desconocido al eliminar pago")
		return err
	}

	s.snap.Remove(id)
	notifySuccess(s.sink, "Pago eliminado", "Pago eliminado con éxito.")
	return nil
}

// Search filtra por id del pago, id de la orden o nombre del cliente.
func (s *PaymentStore) Search(query string) []entity.PaymentWithOrder {
	q := fold(strings.TrimSpace(query))
	items := s.snap.Items()
	if q == "" {
		return items
	}
	out := items[:0:0]
	for _, p := range items {
		if matchesQuery(q, p.ID, p.OrderID, p.Order.Customer.Name) {
			out = append(out, p)
		}
	}
	return out
}
