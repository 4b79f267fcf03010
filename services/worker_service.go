package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
)

// WorkerService exposes the tenant's worker catalog
type WorkerService struct {
	db *gorm.DB
}

// NewWorkerService creates a new worker service
func NewWorkerService(db *gorm.DB) *WorkerService {
	return &WorkerService{db: db}
}

// List returns the tenant's active workers
func (s *WorkerService) List(tenantID uint) ([]entities.Worker, error) {
	var workers []entities.Worker
	err := s.db.Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name").
		Find(&workers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

// Get retrieves one worker by id
func (s *WorkerService) Get(tenantID, id uint) (*entities.Worker, error) {
	var worker entities.Worker
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: worker %d not found", ErrInvalidInput, id)
		}
		return nil, fmt.Errorf("failed to retrieve worker: %w", err)
	}
	return &worker, nil
}
