package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/events"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// analysisCache is the slice of the Redis client the service depends on.
type analysisCache interface {
	PublishAnalysisEvent(ctx context.Context, event *events.AnalysisEvent) error
	InvalidateAnalysisCache(ctx context.Context, userID uuid.UUID) error
}

type CreateGoalInput struct {
	UserID      uuid.UUID    `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	TargetDate  *time.Time   `json:"target_date,omitempty"`
	Priority    GoalPriority `json:"priority,omitempty"`
	LinkedRepos []string     `json:"linked_repos,omitempty"`
}

type UpdateGoalInput struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	TargetDate  *time.Time    `json:"target_date,omitempty"`
	Status      *GoalStatus   `json:"status,omitempty"`
	Priority    *GoalPriority `json:"priority,omitempty"`
	LinkedRepos []string      `json:"linked_repos,omitempty"`
}

type Service interface {
	CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error)
	GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, filter GoalFilter) ([]Goal, int64, error)
	UpdateGoal(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
	SearchGoals(ctx context.Context, userID uuid.UUID, query string) ([]Goal, error)
}

type service struct {
	repo   GoalRepository
	redis  analysisCache
	logger *zap.Logger
}

func NewService(repo GoalRepository, redis analysisCache, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, logger: logger}
}

func callerID(ctx context.Context) (uuid.UUID, bool) {
	return auth.UserIDFromContext(ctx)
}

func (s *service) ownedGoal(ctx context.Context, id uuid.UUID) (*Goal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller, ok := callerID(ctx); ok && goal.UserID != caller {
		return nil, ErrGoalAccessDenied
	}
	return goal, nil
}

func (s *service) CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error) {
	if input.Title == "" || input.UserID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if input.Priority == "" {
		input.Priority = GoalPriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, ErrInvalidInput
	}

	goal := &Goal{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Status:      GoalStatusActive,
		Priority:    input.Priority,
		LinkedRepos: input.LinkedRepos,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.publishGoalEvent(ctx, goal)
	return goal, nil
}

func (s *service) GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return s.ownedGoal(ctx, id)
}

func (s *service) ListGoals(ctx context.Context, filter GoalFilter) ([]Goal, int64, error) {
	if caller, ok := callerID(ctx); ok {
		filter.UserID = &caller
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateGoal(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*Goal, error) {
	goal, err := s.ownedGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrInvalidInput
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidInput
		}
		goal.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidInput
		}
		goal.Priority = *input.Priority
	}
	if input.LinkedRepos != nil {
		goal.LinkedRepos = input.LinkedRepos
	}
	goal.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.publishGoalEvent(ctx, goal)
	return goal, nil
}

func (s *service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	goal, err := s.ownedGoal(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, goal.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.publishGoalEvent(ctx, goal)
	return nil
}

func (s *service) SearchGoals(ctx context.Context, userID uuid.UUID, query string) ([]Goal, error) {
	filter := GoalFilter{
		UserID: &userID,
		Search: &query,
	}
	goals, _, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	return goals, nil
}

func (s *service) publishGoalEvent(ctx context.Context, goal *Goal) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateAnalysisCache(ctx, goal.UserID); err != nil {
		s.logger.Warn("Failed to invalidate analysis cache", zap.Error(err))
	}
	event := &events.AnalysisEvent{
		EventType: events.EventTypeGoalUpdate,
		UserID:    goal.UserID,
		EntityID:  goal.ID,
		Timestamp: time.Now(),
	}
	if err := s.redis.PublishAnalysisEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish goal event", zap.Error(err))
	}
}
