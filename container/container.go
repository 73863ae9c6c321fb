package container

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/km-arc/go-container/registry"
)

// ── Recipes ───────────────────────────────────────────────────────────────────

// Factory is a recipe that builds a value from the container. The error-free
// shape func(*Container) any is accepted as a recipe too.
//
//	// Laravel: $app->bind('mailer', fn($app) => new Mailer($app->make('config')))
//	"mailer": container.Factory(func(c *container.Container) (any, error) {
//	    cfg, err := container.GetAs[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return mail.New(cfg), nil
//	})
type Factory func(c *Container) (any, error)

// Source supplies the base configuration: identifier → recipe. Config is
// called on every resolution, so a Source may be live; most callers use a
// MapSource or a SourceFunc closing over their settings.
type Source interface {
	Config() map[string]any
}

// MapSource is a fixed recipe map.
type MapSource map[string]any

// Config returns the map itself.
func (s MapSource) Config() map[string]any { return s }

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() map[string]any

// Config invokes the function.
func (f SourceFunc) Config() map[string]any { return f() }

// Resolver is the read side of a Container, for consumers that only look
// things up.
type Resolver interface {
	Has(id string) bool
	Get(id string) (any, error)
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves string identifiers to values built from recipes.
//
// A recipe is one of:
//   - nil: the identifier names a type; the constructor registry builds it
//   - a Factory (or func(*Container) (any, error), or func(*Container) any)
//   - a string naming another declared identifier: an alias, chased
//     transitively
//   - anything else: a literal, returned as-is
//
// Get caches what it builds, dependencies included; Make builds fresh.
// Extend overlays recipes on top of the Source, Restore peels them off.
//
// A Container is plain mutable state with no locking. Callers sharing one
// across goroutines must synchronize.
type Container struct {
	source Source
	types  *registry.Registry

	// identifier → recipe overriding the source (highest precedence)
	extensions map[string]any

	// identifier → built value
	resolved map[string]any

	// identifiers currently being built, outermost first
	building []string

	// non-zero while a Get frame is active: resolutions cache their results
	depth int
}

// New creates a Container reading its configuration from source.
// A nil source behaves as an empty configuration.
func New(source Source) *Container {
	if source == nil {
		source = MapSource{}
	}
	return &Container{
		source:     source,
		types:      registry.New(),
		extensions: make(map[string]any),
		resolved:   make(map[string]any),
	}
}

// Types returns the constructor registry consulted for nil recipes.
func (c *Container) Types() *registry.Registry { return c.types }

// WithTypes swaps in a shared constructor registry.
func (c *Container) WithTypes(reg *registry.Registry) *Container {
	if reg != nil {
		c.types = reg
	}
	return c
}

// ── Inspection ────────────────────────────────────────────────────────────────

// Has reports whether the base configuration declares id. Extensions are not
// consulted: only the Source decides what the container nominally provides.
//
//	// Laravel: $app->bound('mailer')
func (c *Container) Has(id string) bool {
	_, ok := c.source.Config()[id]
	return ok
}

// Resolved reports whether id has a cached value.
//
//	// Laravel: $app->resolved('mailer')
func (c *Container) Resolved(id string) bool {
	_, ok := c.resolved[id]
	return ok
}

// Identifiers returns every declared identifier, extensions included,
// sorted (for debugging and introspection).
func (c *Container) Identifiers() []string {
	recipes := c.recipes()
	out := make([]string, 0, len(recipes))
	for id := range recipes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the value for id, building it on first use and caching it
// along with every dependency resolved underneath. Repeat calls return the
// identical value.
//
//	// Laravel: $app->make('mailer')  (singleton binding)
func (c *Container) Get(id string) (any, error) {
	if v, ok := c.resolved[id]; ok {
		return v, nil
	}
	c.depth++
	defer func() { c.depth-- }()
	return c.make(id)
}

// Make builds a value for id without consulting or writing the cache at the
// top level. Dependencies the recipe pulls in through Get are still cached;
// a bare Make caches nothing else.
//
//	// Laravel: $app->make('mailer')  (transient binding)
func (c *Container) Make(id string) (any, error) {
	return c.make(id)
}

// make is the resolution engine. Caching is active whenever some Get frame
// is on the stack (depth > 0).
func (c *Container) make(id string) (any, error) {
	recipes := c.recipes()

	if c.depth > 0 {
		if v, ok := c.resolved[id]; ok {
			return v, nil
		}
	}

	recipe, ok := recipes[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	if c.inFlight(id) {
		return nil, &RecursiveDependencyError{ID: id, Chain: append([]string(nil), c.building...)}
	}
	c.building = append(c.building, id)
	// Pop on every exit path; a failed build must not leave id in flight.
	defer func() { c.building = c.building[:len(c.building)-1] }()

	v, err := c.build(id, recipe, recipes)
	if err != nil {
		return nil, err
	}

	if c.depth > 0 {
		c.resolved[id] = v
	}
	return v, nil
}

// recipes merges the source configuration with the extension overlay.
func (c *Container) recipes() map[string]any {
	base := c.source.Config()
	merged := make(map[string]any, len(base)+len(c.extensions))
	for id, recipe := range base {
		merged[id] = recipe
	}
	for id, recipe := range c.extensions {
		merged[id] = recipe
	}
	return merged
}

func (c *Container) inFlight(id string) bool {
	for _, b := range c.building {
		if b == id {
			return true
		}
	}
	return false
}

// build produces a value from a recipe. Factory errors and panics come back
// as build errors; recursion errors pass through untouched.
func (c *Container) build(id string, recipe any, recipes map[string]any) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, newBuildError(id, panicError(rec))
		}
	}()

	switch r := recipe.(type) {
	case nil:
		ctor, ok := c.types.Lookup(id)
		if !ok {
			return nil, newBuildError(id, fmt.Errorf("no constructor registered for type %q", id))
		}
		return ctor(), nil
	case Factory:
		return c.call(id, r)
	case func(*Container) (any, error):
		return c.call(id, r)
	case func(*Container) any:
		return c.call(id, func(cc *Container) (any, error) { return r(cc), nil })
	case string:
		if _, declared := recipes[r]; declared {
			return c.chase(id, r)
		}
		return r, nil
	default:
		if reflect.TypeOf(recipe).Kind() == reflect.Func {
			return nil, newBuildError(id, fmt.Errorf("unsupported factory signature %T", recipe))
		}
		return recipe, nil
	}
}

// call invokes a factory recipe.
func (c *Container) call(id string, fn Factory) (any, error) {
	v, err := fn(c)
	if err != nil {
		if errors.Is(err, ErrRecursion) {
			return nil, err
		}
		return nil, newBuildError(id, err)
	}
	return v, nil
}

// chase resolves an alias target; target failures are reported against id.
func (c *Container) chase(id, target string) (any, error) {
	v, err := c.make(target)
	if err != nil {
		if errors.Is(err, ErrRecursion) {
			return nil, err
		}
		return nil, newBuildError(id, err)
	}
	return v, nil
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return fmt.Errorf("recipe panicked: %w", err)
	}
	return fmt.Errorf("recipe panicked: %v", rec)
}

// ── Overrides ─────────────────────────────────────────────────────────────────

// Extend installs an override recipe for id, shadowing the Source. Literal
// recipes take effect immediately: the value is cached as if freshly
// resolved. Any other shape drops the cached entry so the next resolution
// rebuilds. Chainable.
//
//	// Laravel: $app->instance('config', $fakeConfig)  (test doubles)
//	c.Extend("config", fakeConfig).Extend("clock", frozenClock)
func (c *Container) Extend(id string, recipe any) *Container {
	c.extensions[id] = recipe
	if c.literal(recipe) {
		c.resolved[id] = recipe
	} else {
		delete(c.resolved, id)
	}
	return c
}

// literal reports whether recipe is a plain value: not nil, not callable,
// and not a string naming a declared identifier.
func (c *Container) literal(recipe any) bool {
	switch r := recipe.(type) {
	case nil, Factory, func(*Container) (any, error), func(*Container) any:
		return false
	case string:
		_, declared := c.recipes()[r]
		return !declared
	default:
		return reflect.TypeOf(recipe).Kind() != reflect.Func
	}
}

// Forget drops the cached values for the given identifiers; their recipes
// stay and the next Get rebuilds. Chainable.
//
//	// Laravel: $app->forgetInstance('mailer')
func (c *Container) Forget(ids ...string) *Container {
	for _, id := range ids {
		delete(c.resolved, id)
	}
	return c
}

// Restore removes the extension for id along with any cached value, so
// resolution falls back to the base configuration. Chainable.
func (c *Container) Restore(id string) *Container {
	delete(c.extensions, id)
	delete(c.resolved, id)
	return c
}

// Flush resets the container's runtime state: extensions, cached values and
// in-flight tracking. The Source and the type registry stay.
//
//	// Laravel: $app->flush()
func (c *Container) Flush() *Container {
	c.extensions = make(map[string]any)
	c.resolved = make(map[string]any)
	c.building = nil
	c.depth = 0
	return c
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// GetAs resolves id through Get and type-asserts the result.
//
//	// Instead of: v, err := c.Get("clock"); clock := v.(Clock)
//	// Write:      clock, err := container.GetAs[Clock](c, "clock")
func GetAs[T any](c *Container, id string) (T, error) {
	v, err := c.Get(id)
	return typed[T](id, v, err)
}

// MakeAs resolves id through Make and type-asserts the result.
func MakeAs[T any](c *Container, id string) (T, error) {
	v, err := c.Make(id)
	return typed[T](id, v, err)
}

// MustGetAs is GetAs for wiring code that treats failure as fatal.
func MustGetAs[T any](c *Container, id string) T {
	v, err := GetAs[T](c, id)
	if err != nil {
		panic(err)
	}
	return v
}

func typed[T any](id string, v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &WrongTypeError{
			ID:   id,
			Want: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:  fmt.Sprintf("%T", v),
		}
	}
	return t, nil
}
