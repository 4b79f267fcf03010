package core

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gin-gonic/gin"
)

// Registry manages all registered modules
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
	order   []string
	status  map[string]string
}

// NewRegistry creates a new module registry
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
		status:  make(map[string]string),
	}
}

// Register registers a new module. Registration order is preserved for
// initialization and route registration.
func (r *Registry) Register(module Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := module.Name()
	if _, exists := r.modules[name]; exists {
		return fmt.Errorf("module %s is already registered", name)
	}

	log.Printf("📦 Registering module: %s v%s", name, module.Version())

	r.modules[name] = module
	r.order = append(r.order, name)
	r.status[name] = "registered"
	return nil
}

// Get returns a module by name
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	module, exists := r.modules[name]
	return module, exists
}

// GetAll returns all modules in registration order
func (r *Registry) GetAll() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := make([]Module, 0, len(r.order))
	for _, name := range r.order {
		modules = append(modules, r.modules[name])
	}
	return modules
}

// InitializeAll initializes every registered module with the given context
func (r *Registry) InitializeAll(ctx ModuleContext) error {
	for _, module := range r.GetAll() {
		if err := module.Initialize(ctx); err != nil {
			return fmt.Errorf("failed to initialize module %s: %w", module.Name(), err)
		}
		r.setStatus(module.Name(), "initialized")
		log.Printf("✅ Module %s initialized", module.Name())
	}
	return nil
}

// MigrateAll runs migrations for all registered modules
func (r *Registry) MigrateAll(ctx ModuleContext) error {
	log.Println("🗃️  Running module migrations...")

	for _, module := range r.GetAll() {
		entities := module.Entities()
		if len(entities) == 0 {
			log.Printf("📝 Module %s: No models to migrate", module.Name())
			continue
		}

		log.Printf("📝 Module %s: Migrating %d models", module.Name(), len(entities))
		for _, entity := range entities {
			if err := ctx.DB.AutoMigrate(entity.GetModel()); err != nil {
				return fmt.Errorf("failed to migrate %s for module %s: %w", entity.TableName(), module.Name(), err)
			}
			for _, migration := range entity.GetMigrations() {
				if err := migration.Up(ctx.DB); err != nil {
					return fmt.Errorf("migration %s failed for module %s: %w", migration.Version(), module.Name(), err)
				}
			}
		}
	}

	log.Println("✅ All module migrations completed")
	return nil
}

// RegisterRoutes registers HTTP routes for all modules under the given group
func (r *Registry) RegisterRoutes(router *gin.RouterGroup) {
	for _, module := range r.GetAll() {
		for _, provider := range module.Routes() {
			group := router.Group(provider.GetPrefix())
			for _, mw := range provider.GetMiddleware() {
				group.Use(mw)
			}
			provider.RegisterRoutes(group)
		}
		log.Printf("🛣️  Module %s: Routes registered", module.Name())
	}
}

// StartAll starts every module in registration order
func (r *Registry) StartAll(ctx context.Context) error {
	for _, module := range r.GetAll() {
		if err := module.Start(ctx); err != nil {
			return fmt.Errorf("failed to start module %s: %w", module.Name(), err)
		}
		r.setStatus(module.Name(), "started")
	}
	return nil
}

// StopAll stops modules in reverse registration order
func (r *Registry) StopAll(ctx context.Context) error {
	modules := r.GetAll()
	for i := len(modules) - 1; i >= 0; i-- {
		if err := modules[i].Stop(ctx); err != nil {
			log.Printf("⚠️  Module %s failed to stop: %v", modules[i].Name(), err)
			continue
		}
		r.setStatus(modules[i].Name(), "stopped")
	}
	return nil
}

// GetMetadata returns metadata for all registered modules
func (r *Registry) GetMetadata() []ModuleMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var metadata []ModuleMetadata
	for _, name := range r.order {
		module := r.modules[name]
		metadata = append(metadata, ModuleMetadata{
			Name:         name,
			Version:      module.Version(),
			Dependencies: module.Dependencies(),
			Status:       r.status[name],
		})
	}
	return metadata
}

func (r *Registry) setStatus(name, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[name] = status
}
