package core

import (
	"fmt"
	"sync"
)

// serviceRegistry is a thread-safe implementation of ServiceRegistry
type serviceRegistry struct {
	mu       sync.RWMutex
	services map[string]interface{}
}

// NewServiceRegistry creates a new service registry
func NewServiceRegistry() ServiceRegistry {
	return &serviceRegistry{
		services: make(map[string]interface{}),
	}
}

// Register registers a service under a name
func (r *serviceRegistry) Register(name string, service interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s is already registered", name)
	}

	r.services[name] = service
	return nil
}

// Get retrieves a service by name
func (r *serviceRegistry) Get(name string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	return service, exists
}

// List returns the names of all registered services
func (r *serviceRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	return names
}
