// internal/entity/registry.go
package entity

// Registry - словарь id -> сущность, который помнит порядок вставки.
// Системы обходят сущности только через него, чтобы тик был детерминирован.
type Registry[T any] struct {
	order []string
	items map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

func (r *Registry[T]) Get(id string) (T, bool) {
	v, ok := r.items[id]
	return v, ok
}

func (r *Registry[T]) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

// Set добавляет сущность в конец порядка или заменяет существующую на её месте.
func (r *Registry[T]) Set(id string, v T) {
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = v
}

func (r *Registry[T]) Delete(id string) bool {
	if _, exists := r.items[id]; !exists {
		return false
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry[T]) Len() int { return len(r.order) }

// IDs returns a copy of the ids in insertion order, safe to use while deleting.
func (r *Registry[T]) IDs() []string {
	return append([]string(nil), r.order...)
}

// Values returns the entities in insertion order.
func (r *Registry[T]) Values() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Clone копирует реестр, пропуская каждую сущность через copyFn.
func (r *Registry[T]) Clone(copyFn func(T) T) *Registry[T] {
	cp := &Registry[T]{
		order: append([]string(nil), r.order...),
		items: make(map[string]T, len(r.items)),
	}
	for id, v := range r.items {
		cp.items[id] = copyFn(v)
	}
	return cp
}
