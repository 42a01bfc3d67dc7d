package evidence

import (
	"context"
	"errors"

	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEvidenceNotFound     = errors.New("evidence not found")
	ErrEvidenceAccessDenied = errors.New("evidence access denied")
	ErrInvalidInput         = errors.New("invalid input")
)

// EvidenceRepository defines the interface for evidence persistence operations
type EvidenceRepository interface {
	Create(ctx context.Context, ev *Evidence) error
	FindByID(ctx context.Context, id uuid.UUID) (*Evidence, error)
	FindByTask(ctx context.Context, taskID uuid.UUID) ([]Evidence, error)
	FindByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) ([]Evidence, error)
	Update(ctx context.Context, ev *Evidence) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type evidenceRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) EvidenceRepository {
	return &evidenceRepository{db: db}
}

func (r *evidenceRepository) Create(ctx context.Context, ev *Evidence) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *evidenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*Evidence, error) {
	var ev Evidence
	result := r.db.WithContext(ctx).First(&ev, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEvidenceNotFound
		}
		return nil, result.Error
	}
	return &ev, nil
}

func (r *evidenceRepository) FindByTask(ctx context.Context, taskID uuid.UUID) ([]Evidence, error) {
	var items []Evidence
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("submitted_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *evidenceRepository) FindByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) ([]Evidence, error) {
	if len(taskIDs) == 0 {
		return []Evidence{}, nil
	}
	var items []Evidence
	err := r.db.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *evidenceRepository) Update(ctx context.Context, ev *Evidence) error {
	result := r.db.WithContext(ctx).Save(ev)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEvidenceNotFound
	}
	return nil
}

func (r *evidenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Evidence{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEvidenceNotFound
	}
	return nil
}
