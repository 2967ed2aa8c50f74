package container

import "sync"

var (
	defaultMu sync.Mutex

	// defaultContainer is the process-wide ambient container. nil means absent.
	defaultContainer *Container
)

// SetDefault replaces the process-wide default container. Passing nil is the
// same as ResetDefault.
func SetDefault(c *Container) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultContainer = c
}

// Default returns the process-wide default container, creating one when the
// slot is empty.
func Default() *Container {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultContainer == nil {
		defaultContainer = newContainer()
	}
	return defaultContainer
}

// ResetDefault empties the default slot. The next Default call creates a new
// container.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultContainer = nil
}

// adoptDefault makes c the default when the slot is empty.
func adoptDefault(c *Container) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultContainer == nil {
		defaultContainer = c
	}
}
