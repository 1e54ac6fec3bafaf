// Package notify define el canal de mensajes transitorios hacia el usuario
// (equivalente al toast de la UI). Fire-and-forget: el núcleo reporta
// resultados y no espera confirmación.
package notify

import "github.com/jhoicas/Lavanderia-sync/pkg/logger"

// Severity variante visual del mensaje.
type Severity string

const (
	SeverityInfo  Severity = "default"
	SeverityError Severity = "destructive"
)

// Notification mensaje transitorio con título y descripción.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier receptor de notificaciones. La capa de presentación aporta su
// propia implementación (toast); aquí se incluyen dos de cortesía.
type Notifier interface {
	Notify(n Notification)
}

// NopNotifier descarta todas las notificaciones.
type NopNotifier struct{}

// Notify no hace nada.
func (NopNotifier) Notify(Notification) {}

// LogNotifier vuelca las notificaciones al logger estructurado. Útil en
// pruebas manuales y como sink por defecto cuando no hay UI.
type LogNotifier struct {
	Log *logger.Logger
}

// Notify registra la notificación con el nivel acorde a su severidad.
func (l LogNotifier) Notify(n Notification) {
	if l.Log == nil {
		return
	}
	ev := l.Log.Info()
	if n.Severity == SeverityError {
		ev = l.Log.Warn()
	}
	ev.Str("title", n.Title).Str("description", n.Description).Msg("notificación")
}

// Func adaptador para usar una función como Notifier.
type Func func(Notification)

// Notify invoca la función.
func (f Func) Notify(n Notification) { f(n) }
