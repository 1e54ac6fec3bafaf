package entity

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout formato de las columnas date de PostgREST (sin hora ni zona).
const dateLayout = "2006-01-02"

// Date fecha sin componente horario, serializada como "YYYY-MM-DD".
// PostgREST devuelve las columnas date en ese formato, que time.Time no
// acepta en JSON; este tipo cubre expected_delivery y payment_date.
type Date struct {
	time.Time
}

// NewDate construye un Date a partir de año, mes y día (UTC).
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf trunca un time.Time a su fecha (UTC).
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate interpreta "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String devuelve "YYYY-MM-DD" (vacío si la fecha es cero).
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Before indica si la fecha (a medianoche UTC) es estrictamente anterior al
// instante dado. Una orden con entrega prevista hoy cuenta como vencida en
// cuanto pasa la medianoche.
func (d Date) Before(t time.Time) bool {
	return d.Time.Before(t)
}

// MarshalJSON serializa como "YYYY-MM-DD" o null si es cero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON acepta "YYYY-MM-DD", null y, por tolerancia, timestamps
// RFC 3339 completos (Supabase los emite en columnas migradas a timestamptz).
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	d.Time = DateOf(t).Time
	return nil
}
