package container

import "errors"

// ── Process-wide container ────────────────────────────────────────────────────

// The default-container slot: plain package state with an explicit
// initialization check, and a Reset for test isolation. Like the Container
// itself, the slot is not synchronized.

var (
	instance        *Container
	instanceFactory func() (*Container, error)
)

// Instance returns the process-wide container. An empty slot is filled by
// the factory registered via SetInstanceFactory; without one there is no way
// to manufacture a default (New needs a Source), and Instance returns a
// build error.
//
//	// Laravel: Container::getInstance()
func Instance() (*Container, error) {
	if instance != nil {
		return instance, nil
	}
	if instanceFactory == nil {
		return nil, newBuildError("", errors.New("no default container: install one with SetInstance or SetInstanceFactory"))
	}
	c, err := instanceFactory()
	if err != nil {
		return nil, newBuildError("", err)
	}
	if c == nil {
		return nil, newBuildError("", ErrNilContainer)
	}
	instance = c
	return c, nil
}

// SetInstance installs c as the process-wide container and returns it.
// Passing nil empties the slot.
//
//	// Laravel: Container::setInstance($app)
func SetInstance(c *Container) *Container {
	instance = c
	return c
}

// SetInstanceFactory overrides how Instance fills an empty slot. The factory
// runs at most once per empty slot.
func SetInstanceFactory(fn func() (*Container, error)) {
	instanceFactory = fn
}

// Reset empties the process-wide slot. The registered factory survives; the
// next Instance call runs it again. Intended for tests.
func Reset() {
	instance = nil
}
