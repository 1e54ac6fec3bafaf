package store

import "sync"

// snapshot lista ordenada en memoria de una colección de entidades, más el
// flag de carga. El mutex garantiza seguridad de memoria; la semántica sigue
// siendo last-write-wins: un Replace posterior pisa cualquier estado previo y
// las mutaciones se aplican en el orden en que llegan sus respuestas.
type snapshot[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	id      func(T) string
}

func newSnapshot[T any](id func(T) string) *snapshot[T] {
	return &snapshot[T]{id: id}
}

// Items devuelve una copia de la lista actual.
func (s *snapshot[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len cantidad de elementos.
func (s *snapshot[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace sustituye la lista completa por el resultado autoritativo.
func (s *snapshot[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

// Prepend antepone una entidad recién creada (orden: más nueva primero).
func (s *snapshot[T]) Prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
}

// Set reemplaza in situ la entidad con ese id, sin reordenar la lista.
// Devuelve false si no está presente.
func (s *snapshot[T]) Set(id string, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = item
			return true
		}
	}
	return false
}

// Remove elimina la entidad con ese id. Devuelve false si no está presente.
func (s *snapshot[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// SetLoading marca o desmarca la carga en curso.
func (s *snapshot[T]) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading indica si hay un fetch en curso.
func (s *snapshot[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
