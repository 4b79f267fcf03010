package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
)

// AppointmentService exposes the tenant's appointment type catalog
type AppointmentService struct {
	db *gorm.DB
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// List returns the tenant's active appointment types
func (s *AppointmentService) List(tenantID uint) ([]entities.AppointmentType, error) {
	var appointmentTypes []entities.AppointmentType
	err := s.db.Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name").
		Find(&appointmentTypes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment types: %w", err)
	}
	return appointmentTypes, nil
}

// Get retrieves one appointment type by id
func (s *AppointmentService) Get(tenantID, id uint) (*entities.AppointmentType, error) {
	var appointmentType entities.AppointmentType
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&appointmentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment type %d not found", ErrInvalidInput, id)
		}
		return nil, fmt.Errorf("failed to retrieve appointment type: %w", err)
	}
	return &appointmentType, nil
}
