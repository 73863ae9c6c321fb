// Package registry maps type names to zero-argument constructors.
//
// The container consults a Registry when a configuration entry carries no
// recipe: the identifier is treated as a type name and the registered
// constructor supplies the value. Go cannot instantiate a type from a
// runtime string, so the mapping is explicit.
package registry

import (
	"errors"
	"reflect"
	"sync"
)

var (
	// ErrEmptyName is returned when a constructor is registered under an
	// empty or unnamed type.
	ErrEmptyName = errors.New("registry: empty type name")
	// ErrNilConstructor is returned when a nil constructor is registered.
	ErrNilConstructor = errors.New("registry: nil constructor")
	// ErrNilPrototype is returned when RegisterType is given nil.
	ErrNilPrototype = errors.New("registry: nil prototype")
	// ErrConflictingRegistration indicates an attempt to re-register a name.
	ErrConflictingRegistration = errors.New("registry: conflicting type registration")
)

// Constructor builds a fresh instance of a registered type.
type Constructor func() any

// Entry is a snapshot row returned by Entries.
type Entry struct {
	Name string
	New  Constructor
}

// Registry maps type names to constructors. Registries are commonly shared
// between containers, so unlike the container itself a Registry is safe for
// concurrent use.
type Registry struct {
	mu    sync.Mutex
	ctors map[string]Constructor
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register associates name with a constructor. Registering a name twice is
// a conflict; use Reset to start over.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" {
		return ErrEmptyName
	}
	if ctor == nil {
		return ErrNilConstructor
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[name]; ok {
		return ErrConflictingRegistration
	}
	r.ctors[name] = ctor
	return nil
}

// RegisterType registers a reflect-built constructor for prototype's type
// under its package-qualified name, and returns that name. The constructor
// yields a pointer to a fresh zero value: registering SystemClock{} or
// (*SystemClock)(nil) produces *SystemClock instances.
func (r *Registry) RegisterType(prototype any) (string, error) {
	if prototype == nil {
		return "", ErrNilPrototype
	}
	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "", ErrEmptyName
	}
	name := t.PkgPath() + "." + t.Name()
	return name, r.Register(name, func() any {
		return reflect.New(t).Interface()
	})
}

// Lookup returns the constructor registered under name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctor, ok := r.ctors[name]
	return ctor, ok
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]Entry, 0, len(r.ctors))
	for name, ctor := range r.ctors {
		entries = append(entries, Entry{Name: name, New: ctor})
	}
	return entries
}

// Count returns the number of registered constructors.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ctors)
}

// Reset clears all registered constructors.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors = make(map[string]Constructor)
}

// TypeName returns the package-qualified type name of v, the key
// RegisterType registers under.
//
//	key := registry.TypeName((*SystemClock)(nil))  // "main.SystemClock"
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}
