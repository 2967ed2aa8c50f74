package container

// Aware is implemented by services that want the container that resolved them.
// Get calls SetContainer once, right after building the instance.
//
// SetContainer returns an Aware for chaining. With BaseAware embedded it
// returns the embedded *BaseAware, not the outer service, so chain only
// through Aware methods or implement SetContainer on the service itself.
type Aware interface {
	SetContainer(c *Container) Aware
	Container() *Container
}

// BaseAware is an embeddable implementation of Aware.
//
//	type Mailer struct {
//	    container.BaseAware
//	}
//
//	func (m *Mailer) Send() {
//	    cfg := container.MustResolve[*config.Config](m.Container(), "config")
//	}
type BaseAware struct {
	container *Container
}

// SetContainer stores c and returns a, the embedded value.
func (a *BaseAware) SetContainer(c *Container) Aware {
	a.container = c
	return a
}

// Container returns the stored container, falling back to Default() when none
// was set.
func (a *BaseAware) Container() *Container {
	if a.container == nil {
		a.container = Default()
	}
	return a.container
}
