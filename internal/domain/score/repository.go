package score

import (
	"context"
	"errors"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrScoreNotFound = errors.New("score not found")
	ErrScoreExists   = errors.New("score already exists for this week")
	ErrInvalidInput  = errors.New("invalid input")
)

const uniqueViolation = "23505"

// ScoreRepository defines the interface for accountability score persistence
type ScoreRepository interface {
	Create(ctx context.Context, score *AccountabilityScore) error
	FindByID(ctx context.Context, id uuid.UUID) (*AccountabilityScore, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]AccountabilityScore, error)
	FindByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*AccountabilityScore, error)
	Update(ctx context.Context, score *AccountabilityScore) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type scoreRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) ScoreRepository {
	return &scoreRepository{db: db}
}

// normalize keeps list fields non-nil so callers always see empty slices
// instead of SQL nulls.
func normalize(s *AccountabilityScore) *AccountabilityScore {
	if s.Insights == nil {
		s.Insights = pq.StringArray{}
	}
	if s.Recommendations == nil {
		s.Recommendations = pq.StringArray{}
	}
	return s
}

// Create inserts a new weekly score. Uniqueness of (user_id, week_start) is
// enforced by the database; a unique violation surfaces as ErrScoreExists.
func (r *scoreRepository) Create(ctx context.Context, score *AccountabilityScore) error {
	err := r.db.WithContext(ctx).Create(score).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrScoreExists
		}
		return err
	}
	return nil
}

func (r *scoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*AccountabilityScore, error) {
	var score AccountabilityScore
	result := r.db.WithContext(ctx).First(&score, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, result.Error
	}
	return normalize(&score), nil
}

func (r *scoreRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]AccountabilityScore, error) {
	var scores []AccountabilityScore
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	for i := range scores {
		normalize(&scores[i])
	}
	return scores, nil
}

func (r *scoreRepository) FindByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*AccountabilityScore, error) {
	var score AccountabilityScore
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&score)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, result.Error
	}
	return normalize(&score), nil
}

func (r *scoreRepository) Update(ctx context.Context, score *AccountabilityScore) error {
	result := r.db.WithContext(ctx).Save(score)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScoreNotFound
	}
	return nil
}

func (r *scoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&AccountabilityScore{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScoreNotFound
	}
	return nil
}
