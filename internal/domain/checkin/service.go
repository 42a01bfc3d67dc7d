package checkin

import (
	"context"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/analysis"
	"github.com/Pycomet/grindproof-sub001/internal/domain/coach"
	"github.com/Pycomet/grindproof-sub001/internal/domain/integration"
	"github.com/Pycomet/grindproof-sub001/internal/domain/score"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
	"go.uber.org/zap"
	calendarapi "google.golang.org/api/calendar/v3"
)

// MorningSchedule is what the user sees at the start of the day.
type MorningSchedule struct {
	Tasks          []task.Task          `json:"tasks"`
	CalendarEvents []*calendarapi.Event `json:"calendar_events"`
}

// EveningComparison contrasts the day's plan with what actually happened.
type EveningComparison struct {
	Planned        []task.Task `json:"planned"`
	Completed      []task.Task `json:"completed"`
	CompletionRate float64     `json:"completion_rate"`
}

type ReflectionInput struct {
	Reflections  []string `json:"reflections"`
	EvidenceURLs []string `json:"evidence_urls,omitempty"`
	CheckInType  string   `json:"check_in_type,omitempty"`
}

type Service interface {
	GetMorningSchedule(ctx context.Context, userID uuid.UUID) (*MorningSchedule, error)
	SaveMorningPlan(ctx context.Context, userID uuid.UUID, planText string) ([]task.Task, error)
	GetEveningComparison(ctx context.Context, userID uuid.UUID) (*EveningComparison, error)
	SaveEveningReflection(ctx context.Context, userID uuid.UUID, input ReflectionInput) (*score.AccountabilityScore, error)
}

type service struct {
	tasks        task.Service
	coach        coach.Service
	scores       score.Service
	integrations integration.Service
	logger       *zap.Logger
}

func NewService(tasks task.Service, coachSvc coach.Service, scores score.Service, integrations integration.Service, logger *zap.Logger) Service {
	return &service{
		tasks:        tasks,
		coach:        coachSvc,
		scores:       scores,
		integrations: integrations,
		logger:       logger,
	}
}

// GetMorningSchedule combines today's tasks with today's calendar events.
// A user without a calendar connection gets an empty event list, not an error.
func (s *service) GetMorningSchedule(ctx context.Context, userID uuid.UUID) (*MorningSchedule, error) {
	tasks, err := s.tasks.GetTodayTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.integrations.ListTodayCalendarEvents(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MorningSchedule{Tasks: tasks, CalendarEvents: events}, nil
}

// SaveMorningPlan turns free-form plan text into today's tasks. The locally
// parsed list is the fallback when the coach cannot improve on it.
func (s *service) SaveMorningPlan(ctx context.Context, userID uuid.UUID, planText string) ([]task.Task, error) {
	if planText == "" {
		return nil, task.ErrInvalidInput
	}

	local := parsePlanText(planText)
	refined := s.coach.RefineTasks(ctx, planText, local)

	var created []task.Task
	for _, p := range refined {
		input := task.CreateTaskInput{
			UserID:      userID,
			Title:       p.Title,
			Description: p.Description,
		}
		if due := dueFromTimes(p, time.Now()); due != nil {
			input.DueDate = due
		}

		t, err := s.tasks.CreateTask(ctx, input)
		if err != nil {
			return created, fmt.Errorf("failed to create task: %w", err)
		}
		created = append(created, *t)
	}

	s.logger.Info("Morning plan saved",
		zap.String("user_id", userID.String()),
		zap.Int("tasks", len(created)))
	return created, nil
}

// GetEveningComparison reports what was planned for today against what got
// completed today.
func (s *service) GetEveningComparison(ctx context.Context, userID uuid.UUID) (*EveningComparison, error) {
	planned, err := s.tasks.GetTodayTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	comparison := &EveningComparison{Planned: planned, Completed: []task.Task{}}
	for _, t := range planned {
		if t.Status == task.TaskStatusCompleted {
			comparison.Completed = append(comparison.Completed, t)
		}
	}
	if len(planned) > 0 {
		comparison.CompletionRate = float64(len(comparison.Completed)) / float64(len(planned))
	}
	return comparison, nil
}

// SaveEveningReflection folds the evening check-in into this week's score
// row, creating the row when the week has none yet.
func (s *service) SaveEveningReflection(ctx context.Context, userID uuid.UUID, input ReflectionInput) (*score.AccountabilityScore, error) {
	checkInType := input.CheckInType
	if checkInType == "" {
		checkInType = "evening"
	}

	meta := score.RoastMetadata{
		Reflections:  input.Reflections,
		EvidenceURLs: input.EvidenceURLs,
		CheckInType:  checkInType,
		CompletedAt:  time.Now().Format(time.RFC3339),
	}

	weekStart := analysis.WeekStart(time.Now())
	return s.scores.MergeRoastMetadata(ctx, userID, weekStart, meta)
}
