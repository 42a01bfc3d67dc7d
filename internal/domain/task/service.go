package task

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

type CreateTaskInput struct {
	UserID          uuid.UUID  `json:"user_id"`
	GoalID          *uuid.UUID `json:"goal_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	CalendarEventID *string    `json:"calendar_event_id,omitempty"`
	Recurrence      *string    `json:"recurrence,omitempty"`
}

type UpdateTaskInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	GoalID      *uuid.UUID `json:"goal_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Recurrence  *string    `json:"recurrence,omitempty"`
}

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error)
	CompleteTask(ctx context.Context, id uuid.UUID, proof *string) (*Task, error)
	SkipTask(ctx context.Context, id uuid.UUID) (*Task, error)
	RescheduleTask(ctx context.Context, id uuid.UUID, newDue time.Time) (*Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	GetTodayTasks(ctx context.Context, userID uuid.UUID) ([]Task, error)
	SearchTasks(ctx context.Context, userID uuid.UUID, query string) ([]Task, error)
}

type service struct {
	repo   TaskRepository
	redis  analysisCache
	logger *zap.Logger
}

func NewService(repo TaskRepository, redis analysisCache, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, logger: logger}
}

// callerID extracts the authenticated user id placed in the context by the auth middleware.
func callerID(ctx context.Context) (uuid.UUID, bool) {
	return auth.UserIDFromContext(ctx)
}

// ownedTask fetches a task and verifies it belongs to the caller.
func (s *service) ownedTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller, ok := callerID(ctx); ok && task.UserID != caller {
		return nil, ErrTaskAccessDenied
	}
	return task, nil
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" || input.UserID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	task := &Task{
		ID:              uuid.New(),
		UserID:          input.UserID,
		GoalID:          input.GoalID,
		Title:           input.Title,
		Description:     input.Description,
		Status:          TaskStatusPending,
		DueDate:         input.DueDate,
		Tags:            input.Tags,
		CalendarEventID: input.CalendarEventID,
		Recurrence:      input.Recurrence,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishTaskEvent(ctx, task)
	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.ownedTask(ctx, id)
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	if caller, ok := callerID(ctx); ok {
		filter.UserID = &caller
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error) {
	task, err := s.ownedTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrInvalidInput
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.GoalID != nil {
		task.GoalID = input.GoalID
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}
	if input.Recurrence != nil {
		task.Recurrence = input.Recurrence
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishTaskEvent(ctx, task)
	return task, nil
}

func (s *service) CompleteTask(ctx context.Context, id uuid.UUID, proof *string) (*Task, error) {
	task, err := s.ownedTask(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Status = TaskStatusCompleted
	task.CompletedAt = &now
	if proof != nil {
		task.Proof = proof
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task completed",
		zap.String("task_id", task.ID.String()),
		zap.Bool("with_proof", proof != nil))
	s.publishTaskEvent(ctx, task)
	return task, nil
}

func (s *service) SkipTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := s.ownedTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = TaskStatusSkipped
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishTaskEvent(ctx, task)
	return task, nil
}

// RescheduleTask moves the due date and always puts the task back to pending.
func (s *service) RescheduleTask(ctx context.Context, id uuid.UUID, newDue time.Time) (*Task, error) {
	task, err := s.ownedTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.DueDate = &newDue
	task.Status = TaskStatusPending
	task.CompletedAt = nil
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishTaskEvent(ctx, task)
	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	task, err := s.ownedTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishTaskEvent(ctx, task)
	return nil
}

func (s *service) GetTodayTasks(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	filter := TaskFilter{
		UserID:       &userID,
		DueDateStart: &start,
		DueDateEnd:   &end,
	}
	tasks, _, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

func (s *service) SearchTasks(ctx context.Context, userID uuid.UUID, query string) ([]Task, error) {
	filter := TaskFilter{
		UserID: &userID,
		Search: &query,
	}
	tasks, _, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

// publishTaskEvent drops the user's cached analysis snapshot and notifies
// subscribers that their task data changed. The drop happens before the next
// analysis read, so the snapshot never outlives the data it was computed from.
func (s *service) publishTaskEvent(ctx context.Context, task *Task) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateAnalysisCache(ctx, task.UserID); err != nil {
		s.logger.Warn("Failed to invalidate analysis cache", zap.Error(err))
	}
	event := &events.AnalysisEvent{
		EventType: events.EventTypeTaskUpdate,
		UserID:    task.UserID,
		EntityID:  task.ID,
		Timestamp: time.Now(),
	}
	if err := s.redis.PublishAnalysisEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish task event", zap.Error(err))
	}
}
