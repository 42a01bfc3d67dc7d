package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/evidence"
	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const analysisCacheTTL = 10 * time.Minute

// TaskSource provides the task rows the engine reads.
type TaskSource interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]task.Task, error)
}

// GoalSource provides the goal rows the engine reads.
type GoalSource interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]goal.Goal, error)
}

// EvidenceSource provides evidence rows for a set of task ids.
type EvidenceSource interface {
	FindByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) ([]evidence.Evidence, error)
}

type Service interface {
	AnalyzeUser(ctx context.Context, userID uuid.UUID) (*UserAnalysis, error)
	GetTaskStats(ctx context.Context, userID uuid.UUID) (*TaskStats, error)
	GetGoalStats(ctx context.Context, userID uuid.UUID) (*GoalStats, error)
	GetEvidenceStats(ctx context.Context, userID uuid.UUID) (*EvidenceStats, error)
}

type service struct {
	tasks    TaskSource
	goals    GoalSource
	evidence EvidenceSource
	redis    *cache.RedisClient
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(tasks TaskSource, goals GoalSource, ev EvidenceSource, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		tasks:    tasks,
		goals:    goals,
		evidence: ev,
		redis:    redis,
		logger:   logger,
		now:      time.Now,
	}
}

// AnalyzeUser composes statistics and pattern detection into one snapshot.
// Any fetch failure aborts the whole analysis.
func (s *service) AnalyzeUser(ctx context.Context, userID uuid.UUID) (*UserAnalysis, error) {
	cacheKey := cache.GenerateCacheKey("analysis", userID, "")
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	now := s.now()

	tasks, err := s.tasks.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	goals, err := s.goals.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}

	tasksByGoal := groupTasksByGoal(tasks)

	evStats, err := s.evidenceStats(ctx, tasks, now)
	if err != nil {
		return nil, err
	}

	result := &UserAnalysis{
		UserID:       userID,
		TaskStats:    CalculateTaskStats(tasks, now),
		GoalStats:    CalculateGoalStats(goals, tasksByGoal, now),
		TaskPatterns: DetectTaskPatterns(tasks, now),
		GoalPatterns: DetectGoalPatterns(goals, tasksByGoal, now),
		Evidence:     *evStats,
		GeneratedAt:  now,
	}

	s.toCache(ctx, cacheKey, result)
	return result, nil
}

func (s *service) GetTaskStats(ctx context.Context, userID uuid.UUID) (*TaskStats, error) {
	tasks, err := s.tasks.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	stats := CalculateTaskStats(tasks, s.now())
	return &stats, nil
}

func (s *service) GetGoalStats(ctx context.Context, userID uuid.UUID) (*GoalStats, error) {
	goals, err := s.goals.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	tasks, err := s.tasks.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	stats := CalculateGoalStats(goals, groupTasksByGoal(tasks), s.now())
	return &stats, nil
}

func (s *service) GetEvidenceStats(ctx context.Context, userID uuid.UUID) (*EvidenceStats, error) {
	tasks, err := s.tasks.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return s.evidenceStats(ctx, tasks, s.now())
}

// evidenceStats short-circuits to empty stats when the user has no tasks,
// without touching the evidence store.
func (s *service) evidenceStats(ctx context.Context, tasks []task.Task, now time.Time) (*EvidenceStats, error) {
	if len(tasks) == 0 {
		return &EvidenceStats{ByType: map[evidence.EvidenceType]int{}}, nil
	}

	taskIDs := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.ID
	}

	items, err := s.evidence.FindByTaskIDs(ctx, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evidence: %w", err)
	}

	stats := BuildEvidenceStats(items, now)
	return &stats, nil
}

func groupTasksByGoal(tasks []task.Task) map[uuid.UUID][]task.Task {
	grouped := make(map[uuid.UUID][]task.Task)
	for _, t := range tasks {
		if t.GoalID != nil {
			grouped[*t.GoalID] = append(grouped[*t.GoalID], t)
		}
	}
	return grouped
}

func (s *service) fromCache(ctx context.Context, key string) *UserAnalysis {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	var result UserAnalysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Warn("Failed to decode cached analysis", zap.Error(err))
		return nil
	}
	return &result
}

func (s *service) toCache(ctx context.Context, key string, result *UserAnalysis) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, string(data), analysisCacheTTL); err != nil {
		s.logger.Warn("Failed to cache analysis", zap.Error(err))
	}
}
