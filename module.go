package scheduling

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
	"github.com/unburdy/scheduling-module/handlers"
	"github.com/unburdy/scheduling-module/pkg/config"
	"github.com/unburdy/scheduling-module/pkg/core"
	"github.com/unburdy/scheduling-module/pkg/lock"
	"github.com/unburdy/scheduling-module/routes"
	"github.com/unburdy/scheduling-module/services"
)

// Module implements the core.Module interface for the scheduling engine
type Module struct {
	db                *gorm.DB
	redisClient       *redis.Client
	lockManager       lock.Manager
	availabilitySvc   *services.AvailabilityService
	availableTimeSvc  *services.AvailableTimeService
	schedulingSvc     *services.SchedulingService
	configSvc         *services.ConfigService
	appointmentSvc    *services.AppointmentService
	workerSvc         *services.WorkerService
	schedulingHandler *handlers.SchedulingHandler
	routeProvider     *routes.RouteProvider
}

// NewCoreModule creates a new scheduling module for the bootstrap system.
// Initialization happens during the Initialize() lifecycle method.
func NewCoreModule() *Module {
	return &Module{}
}

// Name returns the module name
func (m *Module) Name() string {
	return "scheduling"
}

// Version returns the module version
func (m *Module) Version() string {
	return "1.0.0"
}

// Dependencies returns module dependencies
func (m *Module) Dependencies() []string {
	return []string{} // Self-contained; tenants and identity arrive via JWT claims
}

// Initialize initializes the module
func (m *Module) Initialize(ctx core.ModuleContext) error {
	ctx.Logger.Info("Initializing scheduling module...")

	m.db = ctx.DB

	cfg, ok := ctx.Config.(config.Config)
	if !ok {
		return fmt.Errorf("scheduling module requires config.Config, got %T", ctx.Config)
	}

	lockOpts := lock.Options{
		OwnershipTTL:    cfg.Lock.OwnershipTTL,
		AcquireDeadline: cfg.Lock.AcquireDeadline,
	}

	// The redis-backed lock makes booking commits node-safe. Without redis
	// the module still runs, but writer exclusion only covers this process.
	m.redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := m.redisClient.Ping(context.Background()).Err(); err != nil {
		ctx.Logger.Warn("Redis connection failed, falling back to in-process locks:", err)
		m.redisClient = nil
		m.lockManager = lock.NewLocalManager(lockOpts)
	} else {
		m.lockManager = lock.NewRedisManager(m.redisClient, lockOpts)
	}

	// Initialize services
	m.availabilitySvc = services.NewAvailabilityService(ctx.DB)
	m.availableTimeSvc = services.NewAvailableTimeService(ctx.DB, m.availabilitySvc)
	m.schedulingSvc = services.NewSchedulingService(ctx.DB, m.lockManager, m.availableTimeSvc)
	m.configSvc = services.NewConfigService(ctx.DB)
	m.appointmentSvc = services.NewAppointmentService(ctx.DB)
	m.workerSvc = services.NewWorkerService(ctx.DB)

	// Initialize handlers
	m.schedulingHandler = handlers.NewSchedulingHandler(
		m.schedulingSvc,
		m.availableTimeSvc,
		m.availabilitySvc,
		m.configSvc,
		m.appointmentSvc,
		m.workerSvc,
	)

	// Initialize route provider
	m.routeProvider = routes.NewRouteProvider(m.schedulingHandler)

	if ctx.Services != nil {
		if err := ctx.Services.Register("scheduling-service", m.schedulingSvc); err != nil {
			ctx.Logger.Warn("Could not register scheduling service:", err)
		}
		if err := ctx.Services.Register("available-time-service", m.availableTimeSvc); err != nil {
			ctx.Logger.Warn("Could not register available time service:", err)
		}
	}

	ctx.Logger.Info("Scheduling module initialized")
	return nil
}

// Start starts the module
func (m *Module) Start(ctx context.Context) error {
	return nil
}

// Stop stops the module and closes the redis connection
func (m *Module) Stop(ctx context.Context) error {
	if m.redisClient != nil {
		return m.redisClient.Close()
	}
	return nil
}

// Entities returns the module's database entities for auto-migration
func (m *Module) Entities() []core.Entity {
	return []core.Entity{
		entities.NewWorkerEntity(),
		entities.NewAppointmentTypeEntity(),
		entities.NewWorkerAvailabilityEntity(),
		entities.NewSchedulingConfigEntity(),
		entities.NewSchedulingEntity(),
	}
}

// Routes returns the module's route providers
func (m *Module) Routes() []core.RouteProvider {
	return []core.RouteProvider{m.routeProvider}
}
