// Package di wires vtokend's services: a small name-keyed container with
// lazy builders, plus the Provider that registers this program's
// component graph into it.
package di

import (
	"errors"
	"sync"
)

// Builder constructs a service on first Get, with access to the container
// for resolving its own dependencies.
type Builder func(c *Container) (any, error)

// Container holds constructed services and the builders that produce
// them. Builders run at most once; their result is memoized under the
// registered name.
type Container struct {
	mu       sync.RWMutex
	services map[string]any
	builders map[string]Builder
}

// New returns an empty container.
func New() *Container {
	return &Container{
		services: make(map[string]any),
		builders: make(map[string]Builder),
	}
}

// Register stores an already-constructed service under name.
func (c *Container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterBuilder stores a builder to run lazily on the first Get of name.
func (c *Container) RegisterBuilder(name string, builder Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = builder
}

// Get resolves name, running its builder if the service has not been
// constructed yet.
func (c *Container) Get(name string) (any, error) {
	c.mu.RLock()
	service, exists := c.services[name]
	c.mu.RUnlock()
	if exists {
		return service, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have built it between the two lock acquisitions.
	if service, exists := c.services[name]; exists {
		return service, nil
	}

	builder, ok := c.builders[name]
	if !ok {
		return nil, errors.New("di: service not registered: " + name)
	}
	service, err := builder(c)
	if err != nil {
		return nil, err
	}
	c.services[name] = service
	return service, nil
}

// Service names used by the Provider.
const (
	ServiceConfig       = "config"
	ServiceAccountStore = "accountstore"
	ServiceTokenRuntime = "tokenruntime"
	ServiceTransferHook = "transferhook"
	ServiceRouter       = "router"
)
