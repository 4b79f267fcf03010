package entities

import (
	"github.com/unburdy/scheduling-module/pkg/core"
)

// SchedulingEntity implements core.Entity for the Scheduling model
type SchedulingEntity struct{}

func NewSchedulingEntity() core.Entity {
	return &SchedulingEntity{}
}

func (e *SchedulingEntity) TableName() string {
	return "schedulings"
}

func (e *SchedulingEntity) GetModel() interface{} {
	return &Scheduling{}
}

func (e *SchedulingEntity) GetMigrations() []core.Migration {
	return []core.Migration{} // No custom migrations needed, GORM handles basic schema
}

// AppointmentTypeEntity implements core.Entity for the AppointmentType model
type AppointmentTypeEntity struct{}

func NewAppointmentTypeEntity() core.Entity {
	return &AppointmentTypeEntity{}
}

func (e *AppointmentTypeEntity) TableName() string {
	return "appointment_types"
}

func (e *AppointmentTypeEntity) GetModel() interface{} {
	return &AppointmentType{}
}

func (e *AppointmentTypeEntity) GetMigrations() []core.Migration {
	return []core.Migration{}
}

// WorkerAvailabilityEntity implements core.Entity for the WorkerAvailability model
type WorkerAvailabilityEntity struct{}

func NewWorkerAvailabilityEntity() core.Entity {
	return &WorkerAvailabilityEntity{}
}

func (e *WorkerAvailabilityEntity) TableName() string {
	return "worker_availabilities"
}

func (e *WorkerAvailabilityEntity) GetModel() interface{} {
	return &WorkerAvailability{}
}

func (e *WorkerAvailabilityEntity) GetMigrations() []core.Migration {
	return []core.Migration{}
}

// SchedulingConfigEntity implements core.Entity for the SchedulingConfig model
type SchedulingConfigEntity struct{}

func NewSchedulingConfigEntity() core.Entity {
	return &SchedulingConfigEntity{}
}

func (e *SchedulingConfigEntity) TableName() string {
	return "scheduling_configs"
}

func (e *SchedulingConfigEntity) GetModel() interface{} {
	return &SchedulingConfig{}
}

func (e *SchedulingConfigEntity) GetMigrations() []core.Migration {
	return []core.Migration{}
}

// WorkerEntity implements core.Entity for the Worker model
type WorkerEntity struct{}

func NewWorkerEntity() core.Entity {
	return &WorkerEntity{}
}

func (e *WorkerEntity) TableName() string {
	return "workers"
}

func (e *WorkerEntity) GetModel() interface{} {
	return &Worker{}
}

func (e *WorkerEntity) GetMigrations() []core.Migration {
	return []core.Migration{}
}
