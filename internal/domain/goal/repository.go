package goal

import (
	"context"
	"errors"

	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrGoalAccessDenied = errors.New("goal access denied")
	ErrInvalidInput     = errors.New("invalid input")
)

// GoalFilter defines filtering options for goals
type GoalFilter struct {
	UserID   *uuid.UUID
	Status   *GoalStatus
	Priority *GoalPriority
	Search   *string
	Page     int
	PageSize int
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindAll(ctx context.Context, filter GoalFilter) ([]Goal, int64, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	var goal Goal
	result := r.db.WithContext(ctx).First(&goal, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, result.Error
	}
	return &goal, nil
}

func (r *goalRepository) FindAll(ctx context.Context, filter GoalFilter) ([]Goal, int64, error) {
	var goals []Goal
	var total int64

	query := r.db.WithContext(ctx).Model(&Goal{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Search != nil && *filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+*filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}
	query = query.Order("created_at DESC").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize)

	if err := query.Find(&goals).Error; err != nil {
		return nil, 0, err
	}

	return goals, total, nil
}

func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *Goal) error {
	result := r.db.WithContext(ctx).Save(goal)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Goal{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
