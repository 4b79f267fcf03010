package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/unburdy/scheduling-module/entities"
)

// ConfigService manages the per-tenant scheduling policy
type ConfigService struct {
	db *gorm.DB
}

// NewConfigService creates a new config service
func NewConfigService(db *gorm.DB) *ConfigService {
	return &ConfigService{db: db}
}

// Get returns the tenant's scheduling config, materializing the default
// (zero tolerance) when the tenant has none yet.
func (s *ConfigService) Get(tenantID uint) (*entities.SchedulingConfig, error) {
	var config entities.SchedulingConfig
	err := s.db.Where("tenant_id = ?", tenantID).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entities.SchedulingConfig{TenantID: tenantID}, nil
		}
		return nil, fmt.Errorf("failed to load scheduling config: %w", err)
	}
	return &config, nil
}

// Update sets the tenant's overlap tolerance, creating the config row on
// first write.
func (s *ConfigService) Update(tenantID uint, req entities.UpdateSchedulingConfigRequest) (*entities.SchedulingConfig, error) {
	if req.OverlapToleranceMinutes == nil || *req.OverlapToleranceMinutes < 0 {
		return nil, fmt.Errorf("%w: overlap tolerance must be a non-negative integer", ErrInvalidInput)
	}

	var config entities.SchedulingConfig
	err := s.db.Where("tenant_id = ?", tenantID).First(&config).Error
	switch {
	case err == nil:
		config.OverlapToleranceMinutes = *req.OverlapToleranceMinutes
		if err := s.db.Save(&config).Error; err != nil {
			return nil, fmt.Errorf("failed to update scheduling config: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		config = entities.SchedulingConfig{
			TenantID:                tenantID,
			OverlapToleranceMinutes: *req.OverlapToleranceMinutes,
		}
		if err := s.db.Create(&config).Error; err != nil {
			return nil, fmt.Errorf("failed to create scheduling config: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to load scheduling config: %w", err)
	}

	return &config, nil
}
