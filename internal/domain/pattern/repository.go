package pattern

import (
	"context"
	"errors"

	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrPatternNotFound = errors.New("pattern not found")
	ErrPatternExists   = errors.New("pattern already recorded for this type")
	ErrInvalidInput    = errors.New("invalid input")
)

const uniqueViolation = "23505"

// PatternRepository defines the interface for pattern persistence operations
type PatternRepository interface {
	Create(ctx context.Context, p *Pattern) error
	FindByID(ctx context.Context, id uuid.UUID) (*Pattern, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Pattern, error)
	FindByType(ctx context.Context, userID uuid.UUID, patternType PatternType) (*Pattern, error)
	Update(ctx context.Context, p *Pattern) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type patternRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) PatternRepository {
	return &patternRepository{db: db}
}

func (r *patternRepository) Create(ctx context.Context, p *Pattern) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrPatternExists
		}
		return err
	}
	return nil
}

func (r *patternRepository) FindByID(ctx context.Context, id uuid.UUID) (*Pattern, error) {
	var p Pattern
	result := r.db.WithContext(ctx).First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPatternNotFound
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *patternRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Pattern, error) {
	var patterns []Pattern
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_occurred DESC").
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *patternRepository) FindByType(ctx context.Context, userID uuid.UUID, patternType PatternType) (*Pattern, error) {
	var p Pattern
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND pattern_type = ?", userID, patternType).
		First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPatternNotFound
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *patternRepository) Update(ctx context.Context, p *Pattern) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPatternNotFound
	}
	return nil
}

func (r *patternRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Pattern{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPatternNotFound
	}
	return nil
}
