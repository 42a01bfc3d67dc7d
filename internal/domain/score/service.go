package score

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/events"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// analysisCache is the slice of the Redis client the service depends on.
type analysisCache interface {
	PublishAnalysisEvent(ctx context.Context, event *events.AnalysisEvent) error
	InvalidateAnalysisCache(ctx context.Context, userID uuid.UUID) error
}

type CreateScoreInput struct {
	UserID             uuid.UUID      `json:"user_id"`
	WeekStart          time.Time      `json:"week_start"`
	AlignmentScore     *float64       `json:"alignment_score,omitempty"`
	HonestyScore       *float64       `json:"honesty_score,omitempty"`
	CompletionScore    *float64       `json:"completion_score,omitempty"`
	NewProjectsStarted int            `json:"new_projects_started"`
	EvidenceSubmitted  int            `json:"evidence_submissions"`
	Insights           []string       `json:"insights,omitempty"`
	Recommendations    []string       `json:"recommendations,omitempty"`
	WeekSummary        *string        `json:"week_summary,omitempty"`
	RoastMetadata      *RoastMetadata `json:"roast_metadata,omitempty"`
}

type UpdateScoreInput struct {
	AlignmentScore     *float64       `json:"alignment_score,omitempty"`
	HonestyScore       *float64       `json:"honesty_score,omitempty"`
	CompletionScore    *float64       `json:"completion_score,omitempty"`
	NewProjectsStarted *int           `json:"new_projects_started,omitempty"`
	EvidenceSubmitted  *int           `json:"evidence_submissions,omitempty"`
	Insights           []string       `json:"insights,omitempty"`
	Recommendations    []string       `json:"recommendations,omitempty"`
	WeekSummary        *string        `json:"week_summary,omitempty"`
	RoastMetadata      *RoastMetadata `json:"roast_metadata,omitempty"`
}

type Service interface {
	CreateScore(ctx context.Context, input CreateScoreInput) (*AccountabilityScore, error)
	GetScore(ctx context.Context, id uuid.UUID) (*AccountabilityScore, error)
	GetScores(ctx context.Context, userID uuid.UUID) ([]AccountabilityScore, error)
	GetScoreByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*AccountabilityScore, error)
	UpdateScore(ctx context.Context, id uuid.UUID, input UpdateScoreInput) (*AccountabilityScore, error)
	DeleteScore(ctx context.Context, id uuid.UUID) error
	MergeRoastMetadata(ctx context.Context, userID uuid.UUID, weekStart time.Time, meta RoastMetadata) (*AccountabilityScore, error)
}

type service struct {
	repo   ScoreRepository
	redis  analysisCache
	logger *zap.Logger
}

func NewService(repo ScoreRepository, redis analysisCache, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, logger: logger}
}

func callerID(ctx context.Context) (uuid.UUID, bool) {
	return auth.UserIDFromContext(ctx)
}

// ownedScore fetches a score and hides other users' rows behind not-found.
func (s *service) ownedScore(ctx context.Context, id uuid.UUID) (*AccountabilityScore, error) {
	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller, ok := callerID(ctx); ok && sc.UserID != caller {
		return nil, ErrScoreNotFound
	}
	return sc, nil
}

func (s *service) CreateScore(ctx context.Context, input CreateScoreInput) (*AccountabilityScore, error) {
	if input.UserID == uuid.Nil || input.WeekStart.IsZero() {
		return nil, ErrInvalidInput
	}
	if !validScore(input.AlignmentScore) || !validScore(input.HonestyScore) || !validScore(input.CompletionScore) {
		return nil, ErrInvalidInput
	}

	sc := &AccountabilityScore{
		ID:                 uuid.New(),
		UserID:             input.UserID,
		WeekStart:          input.WeekStart,
		AlignmentScore:     input.AlignmentScore,
		HonestyScore:       input.HonestyScore,
		CompletionScore:    input.CompletionScore,
		NewProjectsStarted: input.NewProjectsStarted,
		EvidenceSubmitted:  input.EvidenceSubmitted,
		Insights:           input.Insights,
		Recommendations:    input.Recommendations,
		WeekSummary:        input.WeekSummary,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if input.RoastMetadata != nil {
		sc.RoastMetadata = datatypes.NewJSONType(*input.RoastMetadata)
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		if errors.Is(err, ErrScoreExists) {
			return nil, ErrScoreExists
		}
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	s.publishScoreEvent(ctx, sc)
	return sc, nil
}

func (s *service) GetScore(ctx context.Context, id uuid.UUID) (*AccountabilityScore, error) {
	return s.ownedScore(ctx, id)
}

func (s *service) GetScores(ctx context.Context, userID uuid.UUID) ([]AccountabilityScore, error) {
	scores, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}
	return scores, nil
}

func (s *service) GetScoreByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*AccountabilityScore, error) {
	return s.repo.FindByWeek(ctx, userID, weekStart)
}

func (s *service) UpdateScore(ctx context.Context, id uuid.UUID, input UpdateScoreInput) (*AccountabilityScore, error) {
	if !validScore(input.AlignmentScore) || !validScore(input.HonestyScore) || !validScore(input.CompletionScore) {
		return nil, ErrInvalidInput
	}

	sc, err := s.ownedScore(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AlignmentScore != nil {
		sc.AlignmentScore = input.AlignmentScore
	}
	if input.HonestyScore != nil {
		sc.HonestyScore = input.HonestyScore
	}
	if input.CompletionScore != nil {
		sc.CompletionScore = input.CompletionScore
	}
	if input.NewProjectsStarted != nil {
		sc.NewProjectsStarted = *input.NewProjectsStarted
	}
	if input.EvidenceSubmitted != nil {
		sc.EvidenceSubmitted = *input.EvidenceSubmitted
	}
	if input.Insights != nil {
		sc.Insights = input.Insights
	}
	if input.Recommendations != nil {
		sc.Recommendations = input.Recommendations
	}
	if input.WeekSummary != nil {
		sc.WeekSummary = input.WeekSummary
	}
	if input.RoastMetadata != nil {
		sc.RoastMetadata = datatypes.NewJSONType(*input.RoastMetadata)
	}
	sc.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}

	s.publishScoreEvent(ctx, sc)
	return sc, nil
}

func (s *service) DeleteScore(ctx context.Context, id uuid.UUID) error {
	sc, err := s.ownedScore(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sc.ID); err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}
	return nil
}

// MergeRoastMetadata folds new check-in context into this week's score row,
// creating the row first when the week has none yet.
func (s *service) MergeRoastMetadata(ctx context.Context, userID uuid.UUID, weekStart time.Time, meta RoastMetadata) (*AccountabilityScore, error) {
	sc, err := s.repo.FindByWeek(ctx, userID, weekStart)
	if err != nil {
		if !errors.Is(err, ErrScoreNotFound) {
			return nil, fmt.Errorf("failed to fetch score: %w", err)
		}
		sc = &AccountabilityScore{
			ID:        uuid.New(),
			UserID:    userID,
			WeekStart: weekStart,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.repo.Create(ctx, sc); err != nil && !errors.Is(err, ErrScoreExists) {
			return nil, fmt.Errorf("failed to create score: %w", err)
		}
		// Lost a concurrent race, re-read the winner's row.
		if sc, err = s.repo.FindByWeek(ctx, userID, weekStart); err != nil {
			return nil, fmt.Errorf("failed to fetch score: %w", err)
		}
	}

	merged := sc.RoastMetadata.Data()
	merged.Reflections = append(merged.Reflections, meta.Reflections...)
	merged.EvidenceURLs = append(merged.EvidenceURLs, meta.EvidenceURLs...)
	if meta.CheckInType != "" {
		merged.CheckInType = meta.CheckInType
	}
	if meta.CompletedAt != "" {
		merged.CompletedAt = meta.CompletedAt
	}
	sc.RoastMetadata = datatypes.NewJSONType(merged)
	sc.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}

	s.publishScoreEvent(ctx, sc)
	return sc, nil
}

func (s *service) publishScoreEvent(ctx context.Context, sc *AccountabilityScore) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateAnalysisCache(ctx, sc.UserID); err != nil {
		s.logger.Warn("Failed to invalidate analysis cache", zap.Error(err))
	}
	event := &events.AnalysisEvent{
		EventType: events.EventTypeScoreUpdate,
		UserID:    sc.UserID,
		EntityID:  sc.ID,
		Timestamp: time.Now(),
	}
	if err := s.redis.PublishAnalysisEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish score event", zap.Error(err))
	}
}
