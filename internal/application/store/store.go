// Package store implementa la capa de sincronización de datos del lado
// cliente: un store por colección (clientes, órdenes, pagos) que mantiene un
// snapshot ordenado en memoria, aplica mutaciones optimistas con la fila
// autoritativa que devuelve el gateway y reconcilia con un refetch diferido.
//
// Los stores se construyen con sus dependencias inyectadas (gateway, sesión,
// sink de notificaciones, logger) y se instancian una vez por sesión; no hay
// estado a nivel de módulo.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Lavanderia-sync/internal/application/notify"
	"github.com/jhoicas/Lavanderia-sync/internal/domain"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
)

// DefaultReconcileDelay espera por defecto del refetch de reconciliación que
// sigue a un create exitoso.
const DefaultReconcileDelay = 500 * time.Millisecond

// Prefijos de los ids sintetizados en el cliente.
const (
	orderIDPrefix   = "ORD"
	paymentIDPrefix = "PAY"
)

// newSyntheticID genera un id <PREFIJO>-<timestamp-ms>. Sirve como clave
// legible en pantalla además de identificador de fila.
func newSyntheticID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// requirePrincipal devuelve el principal autenticado o ErrUnauthenticated si
// no hay sesión. Toda mutación pasa por aquí antes de tocar el gateway.
func requirePrincipal(ctx context.Context, auth gateway.AuthGateway) (*gateway.Principal, error) {
	p, err := auth.CurrentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

// notifyFailure reporta un fallo al sink con el mensaje disponible o el
// fallback genérico, y deja el error en manos del llamador.
func notifyFailure(sink notify.Notifier, title string, err error, fallback string) {
	sink.Notify(notify.Notification{
		Title:       title,
		Description: domain.UserMessage(err, fallback),
		Severity:    notify.SeverityError,
	})
}

// notifySuccess reporta un resultado exitoso.
func notifySuccess(sink notify.Notifier, title, description string) {
	sink.Notify(notify.Notification{
		Title:       title,
		Description: description,
		Severity:    notify.SeverityInfo,
	})
}
