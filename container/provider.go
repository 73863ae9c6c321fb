package container

import "sort"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider organizes recipe registration, Laravel's provider idea
// carried over to the recipe world: Register installs extension recipes,
// Boot runs after all providers registered and may resolve freely.
//
//	// Laravel:
//	// class AppServiceProvider extends ServiceProvider {
//	//     public function register(): void { $this->app->singleton(...); }
//	//     public function boot(): void     { /* use resolved services */ }
//	// }
//
//	type AppProvider struct{ container.BaseProvider }
//
//	func (p *AppProvider) Register(app *container.Container) {
//	    app.Extend("logger", container.Factory(func(c *container.Container) (any, error) {
//	        cfg, err := container.GetAs[*config.Config](c, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return newLogger(cfg), nil
//	    }))
//	}
type ServiceProvider interface {
	// Register installs recipes into the container.
	// Do NOT resolve other identifiers here; use Boot for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any identifier here.
	Boot(app *Container)

	// Provides returns the identifiers this provider registers.
	// Used for deferred (lazy) provider loading.
	// Return nil if the provider is always eager.
	Provides() []string

	// IsDeferred reports whether this provider should be loaded lazily,
	// only when one of its Provides identifiers is first resolved.
	//
	//	// Laravel: protected $defer = true;
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op implementations of Boot,
// Provides, and IsDeferred. Embed it and override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // identifier → provider
	booted     bool
	registered map[ServiceProvider]bool
	loaded     map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
		loaded:     make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method (unless deferred).
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, id := range provider.Provides() {
			r.deferred[id] = provider
		}
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// A provider registered after Boot() is booted immediately
	if r.booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred installs a placeholder recipe for each deferred
// identifier. The first resolution peels the placeholder off, runs the real
// registration (+ boot when the registry is already booted), and resolves
// against the refreshed recipe set. A deferred provider that never registers
// a promised identifier surfaces that identifier's usual not-found error.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, id := range provider.Provides() {
		id := id // capture
		r.app.Extend(id, Factory(func(c *Container) (any, error) {
			c.Restore(id)
			r.load(provider, c)
			recipes := c.recipes()
			recipe, ok := recipes[id]
			if !ok {
				return nil, &NotFoundError{ID: id}
			}
			return c.build(id, recipe, recipes)
		}))
	}
}

// load performs the one-time real registration of a deferred provider.
func (r *ProviderRegistry) load(provider ServiceProvider, c *Container) {
	if r.loaded[provider] {
		return
	}
	r.loaded[provider] = true
	for _, id := range provider.Provides() {
		delete(r.deferred, id)
	}
	provider.Register(c)
	if r.booted {
		provider.Boot(c)
	}
}

// Boot calls Boot on all eager providers, once.
// Must be called after ALL providers have been registered.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }

// Deferred returns the identifiers whose providers have not loaded yet,
// sorted (for debugging and introspection).
func (r *ProviderRegistry) Deferred() []string {
	out := make([]string, 0, len(r.deferred))
	for id := range r.deferred {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
