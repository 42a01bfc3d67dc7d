package integration

import (
	"context"
	"errors"

	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrIntegrationNotFound = errors.New("integration not found")
	ErrIntegrationExists   = errors.New("integration already connected")
	ErrNeedsReconnect      = errors.New("integration needs reconnect")
	ErrInvalidInput        = errors.New("invalid input")
)

const uniqueViolation = "23505"

// IntegrationRepository defines the interface for integration persistence
type IntegrationRepository interface {
	Create(ctx context.Context, in *Integration) error
	FindByID(ctx context.Context, id uuid.UUID) (*Integration, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Integration, error)
	FindByService(ctx context.Context, userID uuid.UUID, service ServiceName) (*Integration, error)
	Update(ctx context.Context, in *Integration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type integrationRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) Create(ctx context.Context, in *Integration) error {
	err := r.db.WithContext(ctx).Create(in).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrIntegrationExists
		}
		return err
	}
	return nil
}

func (r *integrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*Integration, error) {
	var in Integration
	result := r.db.WithContext(ctx).First(&in, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, result.Error
	}
	return &in, nil
}

func (r *integrationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Integration, error) {
	var items []Integration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *integrationRepository) FindByService(ctx context.Context, userID uuid.UUID, service ServiceName) (*Integration, error) {
	var in Integration
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND service = ?", userID, service).
		First(&in)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, result.Error
	}
	return &in, nil
}

func (r *integrationRepository) Update(ctx context.Context, in *Integration) error {
	result := r.db.WithContext(ctx).Save(in)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIntegrationNotFound
	}
	return nil
}

func (r *integrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Integration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIntegrationNotFound
	}
	return nil
}
