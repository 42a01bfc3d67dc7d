package pattern

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/events"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventPublisher is the slice of the Redis client the service depends on.
// Patterns are analysis outputs, not inputs, so no snapshot invalidation here.
type eventPublisher interface {
	PublishAnalysisEvent(ctx context.Context, event *events.AnalysisEvent) error
}

type RecordOccurrenceInput struct {
	UserID      uuid.UUID   `json:"user_id"`
	PatternType PatternType `json:"pattern_type"`
	Description string      `json:"description"`
	Confidence  float64     `json:"confidence"`
}

type Service interface {
	GetPatterns(ctx context.Context, userID uuid.UUID) ([]Pattern, error)
	GetPattern(ctx context.Context, id uuid.UUID) (*Pattern, error)
	GetPatternByType(ctx context.Context, userID uuid.UUID, patternType PatternType) (*Pattern, error)
	RecordOccurrence(ctx context.Context, input RecordOccurrenceInput) (*Pattern, error)
	DeletePattern(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   PatternRepository
	redis  eventPublisher
	logger *zap.Logger
}

func NewService(repo PatternRepository, redis eventPublisher, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, logger: logger}
}

func callerID(ctx context.Context) (uuid.UUID, bool) {
	return auth.UserIDFromContext(ctx)
}

func (s *service) ownedPattern(ctx context.Context, id uuid.UUID) (*Pattern, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller, ok := callerID(ctx); ok && p.UserID != caller {
		return nil, ErrPatternNotFound
	}
	return p, nil
}

func (s *service) GetPatterns(ctx context.Context, userID uuid.UUID) ([]Pattern, error) {
	patterns, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patterns: %w", err)
	}
	return patterns, nil
}

func (s *service) GetPattern(ctx context.Context, id uuid.UUID) (*Pattern, error) {
	return s.ownedPattern(ctx, id)
}

func (s *service) GetPatternByType(ctx context.Context, userID uuid.UUID, patternType PatternType) (*Pattern, error) {
	if !patternType.IsValid() {
		return nil, ErrInvalidInput
	}
	return s.repo.FindByType(ctx, userID, patternType)
}

// RecordOccurrence upserts a detection: an existing (user, type) row gets its
// counter bumped and confidence refreshed, otherwise a new row starts at 1.
func (s *service) RecordOccurrence(ctx context.Context, input RecordOccurrenceInput) (*Pattern, error) {
	if input.UserID == uuid.Nil || !input.PatternType.IsValid() {
		return nil, ErrInvalidInput
	}
	if input.Confidence < 0 || input.Confidence > 1 {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.FindByType(ctx, input.UserID, input.PatternType)
	if err != nil && !errors.Is(err, ErrPatternNotFound) {
		return nil, fmt.Errorf("failed to fetch pattern: %w", err)
	}

	now := time.Now()
	if existing != nil {
		existing.Occurrences++
		existing.Confidence = input.Confidence
		existing.LastOccurred = now
		if input.Description != "" {
			existing.Description = input.Description
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update pattern: %w", err)
		}
		s.publishPatternEvent(ctx, existing)
		return existing, nil
	}

	p := &Pattern{
		ID:            uuid.New(),
		UserID:        input.UserID,
		PatternType:   input.PatternType,
		Description:   input.Description,
		Confidence:    input.Confidence,
		Occurrences:   1,
		FirstDetected: now,
		LastOccurred:  now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// Concurrent first detection, fold into the winner's row.
		if errors.Is(err, ErrPatternExists) {
			return s.RecordOccurrence(ctx, input)
		}
		return nil, fmt.Errorf("failed to create pattern: %w", err)
	}

	s.publishPatternEvent(ctx, p)
	return p, nil
}

func (s *service) DeletePattern(ctx context.Context, id uuid.UUID) error {
	p, err := s.ownedPattern(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	return nil
}

func (s *service) publishPatternEvent(ctx context.Context, p *Pattern) {
	if s.redis == nil {
		return
	}
	event := &events.AnalysisEvent{
		EventType: events.EventTypePatternUpdate,
		UserID:    p.UserID,
		EntityID:  p.ID,
		Timestamp: time.Now(),
	}
	if err := s.redis.PublishAnalysisEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish pattern event", zap.Error(err))
	}
}
