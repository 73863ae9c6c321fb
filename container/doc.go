// Package container provides a minimal dependency-injection container:
// string identifiers mapped to construction recipes, resolved on demand.
//
// # Overview
//
// A Container reads its configuration from a Source, a plain
// identifier → recipe map supplied by the caller. Resolution walks the
// recipe: factories are invoked with the container, aliases are chased,
// literals pass through, and bare (nil) recipes fall back to the registry
// package's named-type constructors. Go has no runtime constructor
// reflection, so auto-wiring is replaced by explicit factory functions.
//
// # Configuration
//
//	src := container.MapSource{
//	    // literal
//	    "app.name": "demo",
//
//	    // factory
//	    // Laravel: $app->bind('mailer', fn($app) => new Mailer(...))
//	    "mailer": container.Factory(func(c *container.Container) (any, error) {
//	        cfg, err := container.GetAs[*Config](c, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return NewMailer(cfg), nil
//	    }),
//
//	    // alias — chased to the target's value
//	    // Laravel: $app->alias('mailer', 'mail')
//	    "mail": "mailer",
//
//	    // nil recipe — the identifier is a type name for the registry
//	    "main.SystemClock": nil,
//	}
//	c := container.New(src)
//
// # Resolving
//
//	// Get caches: the same value comes back every time, and every
//	// dependency the recipe resolved underneath is cached with it.
//	// Laravel: $app->make('mailer')  (singleton binding)
//	m, err := c.Get("mailer")
//
//	// Make builds fresh at the top level; only dependencies pulled in
//	// through Get are cached.
//	m2, err := c.Make("mailer")
//
//	// Generic (preferred — no type assertion required)
//	mailer, err := container.GetAs[*Mailer](c, "mailer")
//
// Resolution failures are one of three kinds: NotFoundError for undeclared
// identifiers, RecursiveDependencyError when a recipe depends on its own
// resolution (the error carries the cycle path), and BuildError wrapping
// whatever a factory returned or panicked with.
//
// # Overriding
//
//	// Extend shadows the Source; a literal takes effect immediately.
//	// Laravel: $app->instance('config', $fakeConfig)
//	c.Extend("config", fakeConfig)
//
//	// Forget drops cached values so the next Get rebuilds.
//	c.Forget("mailer", "config")
//
//	// Restore peels an extension off again.
//	c.Restore("config")
//
// # Process-wide Container
//
//	// Laravel: Container::setInstance($app) / Container::getInstance()
//	container.SetInstance(c)
//	app, err := container.Instance()
//	container.Reset() // tests
//
// # Service Providers
//
//	type AppProvider struct{ container.BaseProvider }
//
//	func (p *AppProvider) Register(app *container.Container) {
//	    app.Extend("mailer", container.Factory(func(c *container.Container) (any, error) {
//	        cfg, err := container.GetAs[*Config](c, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return NewMailer(cfg), nil
//	    }))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppProvider{})
//	registry.Boot()
//
// Deferred providers (IsDeferred true, Provides listing their identifiers)
// are registered lazily on the first resolution of one of their identifiers.
package container
