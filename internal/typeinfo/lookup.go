package typeinfo

import (
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// Lookup memoizes a value per type. Identical types share one entry even when
// they are different [types.Type] instances.
type Lookup[V any] struct {
	m *typeutil.Map
}

// NewLookup creates a new [Lookup].
func NewLookup[V any]() *Lookup[V] {
	m := new(typeutil.Map)
	m.SetHasher(typeutil.MakeHasher())
	return &Lookup[V]{m}
}

// Get returns the value stored for the type.
func (l *Lookup[V]) Get(t types.Type) (V, bool) {
	if l == nil {
		return *new(V), false
	}
	v, ok := l.m.At(t).(V)
	return v, ok
}

// GetOrCompute returns the value stored for the type. If there is none, it
// computes the value by fn and stores it, whatever fn returns.
func (l *Lookup[V]) GetOrCompute(t types.Type, fn func() V) V {
	if v, ok := l.Get(t); ok {
		return v
	}
	v := fn()
	l.m.Set(t, v)
	return v
}

// Len returns the number of stored types.
func (l *Lookup[V]) Len() int {
	if l == nil {
		return 0
	}
	return l.m.Len()
}
