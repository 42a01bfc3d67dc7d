package evidence

import (
	"context"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/events"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// analysisCache is the slice of the Redis client the service depends on.
type analysisCache interface {
	PublishAnalysisEvent(ctx context.Context, event *events.AnalysisEvent) error
	InvalidateAnalysisCache(ctx context.Context, userID uuid.UUID) error
}

type SubmitEvidenceInput struct {
	TaskID  *uuid.UUID   `json:"task_id,omitempty"`
	Type    EvidenceType `json:"type"`
	Content string       `json:"content"`
}

type Service interface {
	SubmitEvidence(ctx context.Context, input SubmitEvidenceInput) (*Evidence, error)
	GetEvidence(ctx context.Context, id uuid.UUID) (*Evidence, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]Evidence, error)
	MarkValidated(ctx context.Context, id uuid.UUID, notes *string) (*Evidence, error)
	DeleteEvidence(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     EvidenceRepository
	taskRepo task.TaskRepository
	redis    analysisCache
	logger   *zap.Logger
}

func NewService(repo EvidenceRepository, taskRepo task.TaskRepository, redis analysisCache, logger *zap.Logger) Service {
	return &service{repo: repo, taskRepo: taskRepo, redis: redis, logger: logger}
}

func callerID(ctx context.Context) (uuid.UUID, bool) {
	return auth.UserIDFromContext(ctx)
}

// checkTaskOwnership verifies the linked task belongs to the caller. Evidence
// with no task linkage is readable by any authenticated user.
func (s *service) checkTaskOwnership(ctx context.Context, taskID *uuid.UUID) error {
	if taskID == nil {
		return nil
	}
	t, err := s.taskRepo.FindByID(ctx, *taskID)
	if err != nil {
		return err
	}
	if caller, ok := callerID(ctx); ok && t.UserID != caller {
		return ErrEvidenceAccessDenied
	}
	return nil
}

func (s *service) SubmitEvidence(ctx context.Context, input SubmitEvidenceInput) (*Evidence, error) {
	if input.Content == "" || !input.Type.IsValid() {
		return nil, ErrInvalidInput
	}
	if err := s.checkTaskOwnership(ctx, input.TaskID); err != nil {
		return nil, err
	}

	ev := &Evidence{
		ID:          uuid.New(),
		TaskID:      input.TaskID,
		Type:        input.Type,
		Content:     input.Content,
		SubmittedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to create evidence: %w", err)
	}

	s.publishEvidenceEvent(ctx, ev)
	return ev, nil
}

func (s *service) GetEvidence(ctx context.Context, id uuid.UUID) (*Evidence, error) {
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTaskOwnership(ctx, ev.TaskID); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *service) ListByTask(ctx context.Context, taskID uuid.UUID) ([]Evidence, error) {
	if err := s.checkTaskOwnership(ctx, &taskID); err != nil {
		return nil, err
	}
	items, err := s.repo.FindByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evidence: %w", err)
	}
	return items, nil
}

func (s *service) MarkValidated(ctx context.Context, id uuid.UUID, notes *string) (*Evidence, error) {
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTaskOwnership(ctx, ev.TaskID); err != nil {
		return nil, err
	}

	ev.AIValidated = true
	ev.ValidationNotes = notes

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to update evidence: %w", err)
	}
	return ev, nil
}

func (s *service) DeleteEvidence(ctx context.Context, id uuid.UUID) error {
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkTaskOwnership(ctx, ev.TaskID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ev.ID); err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}

	s.publishEvidenceEvent(ctx, ev)
	return nil
}

func (s *service) publishEvidenceEvent(ctx context.Context, ev *Evidence) {
	if s.redis == nil {
		return
	}
	caller, _ := callerID(ctx)
	if err := s.redis.InvalidateAnalysisCache(ctx, caller); err != nil {
		s.logger.Warn("Failed to invalidate analysis cache", zap.Error(err))
	}
	event := &events.AnalysisEvent{
		EventType: events.EventTypeEvidenceUpdate,
		UserID:    caller,
		EntityID:  ev.ID,
		Timestamp: time.Now(),
	}
	if err := s.redis.PublishAnalysisEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish evidence event", zap.Error(err))
	}
}
