package core

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module represents a pluggable module in the system
type Module interface {
	Name() string
	Version() string
	Dependencies() []string

	// Lifecycle methods
	Initialize(ctx ModuleContext) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// Component providers
	Entities() []Entity
	Routes() []RouteProvider
}

// ModuleContext provides dependencies to modules
type ModuleContext struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Config   interface{}
	Logger   Logger
	Services ServiceRegistry
}

// Entity represents a database entity with migrations
type Entity interface {
	TableName() string
	GetModel() interface{}
	GetMigrations() []Migration
}

// Migration represents a database migration
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
	Version() string
}

// RouteProvider handles route registration
type RouteProvider interface {
	RegisterRoutes(router *gin.RouterGroup)
	GetPrefix() string
	GetMiddleware() []gin.HandlerFunc
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	With(key string, value interface{}) Logger
}

// ServiceRegistry manages service discovery
type ServiceRegistry interface {
	Register(name string, service interface{}) error
	Get(name string) (interface{}, bool)
	List() []string
}

// ModuleMetadata provides information about a module
type ModuleMetadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Dependencies []string `json:"dependencies"`
	Status       string   `json:"status"` // "registered", "initialized", "started", "stopped"
}
