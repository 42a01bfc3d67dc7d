package analysis

import (
	"testing"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/evidence"
	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC) // a Wednesday

func ptrTime(t time.Time) *time.Time { return &t }

func makeTask(status task.TaskStatus, due *time.Time, completedAt *time.Time) task.Task {
	return task.Task{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "t",
		Status:      status,
		DueDate:     due,
		CompletedAt: completedAt,
	}
}

func TestWeekStart(t *testing.T) {
	start := WeekStart(testNow)
	assert.Equal(t, time.Weekday(time.Sunday), start.Weekday())
	assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), start)

	// A Sunday is its own week start.
	sunday := time.Date(2026, time.March, 8, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), WeekStart(sunday))
}

func TestCalculateTaskStats_Empty(t *testing.T) {
	stats := CalculateTaskStats(nil, testNow)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Overdue)
	assert.Equal(t, 0.0, stats.CompletionRate)
}

func TestCalculateTaskStats_MixedStatuses(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	tasks := []task.Task{
		makeTask(task.TaskStatusCompleted, nil, ptrTime(yesterday)),
		makeTask(task.TaskStatusPending, nil, nil),
		makeTask(task.TaskStatusSkipped, nil, nil),
	}

	stats := CalculateTaskStats(tasks, testNow)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Skipped)
	assert.InDelta(t, 1.0/3.0, stats.CompletionRate, 1e-9)
}

func TestCalculateTaskStats_AllCompleted(t *testing.T) {
	tasks := []task.Task{
		makeTask(task.TaskStatusCompleted, nil, ptrTime(testNow)),
		makeTask(task.TaskStatusCompleted, nil, ptrTime(testNow)),
	}

	stats := CalculateTaskStats(tasks, testNow)
	assert.Equal(t, 1.0, stats.CompletionRate)
}

func TestCalculateTaskStats_Overdue(t *testing.T) {
	past := testNow.AddDate(0, 0, -2)
	future := testNow.AddDate(0, 0, 2)

	tasks := []task.Task{
		// Pending with a past due date is overdue.
		makeTask(task.TaskStatusPending, ptrTime(past), nil),
		// Pending with a future due date is not.
		makeTask(task.TaskStatusPending, ptrTime(future), nil),
		// Completed after its due date is late, not overdue.
		makeTask(task.TaskStatusCompleted, ptrTime(past), ptrTime(testNow)),
	}

	stats := CalculateTaskStats(tasks, testNow)

	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 1, stats.CompletedLate)
}

func TestCalculateTaskStats_WeekBuckets(t *testing.T) {
	thisWeek := testNow.AddDate(0, 0, 1)  // Thursday, same week
	nextWeek := testNow.AddDate(0, 0, 7)  // following Wednesday
	later := testNow.AddDate(0, 0, 20)

	tasks := []task.Task{
		makeTask(task.TaskStatusPending, ptrTime(thisWeek), nil),
		makeTask(task.TaskStatusPending, ptrTime(nextWeek), nil),
		makeTask(task.TaskStatusPending, ptrTime(later), nil),
	}

	stats := CalculateTaskStats(tasks, testNow)

	assert.Equal(t, 1, stats.DueThisWeek)
	assert.Equal(t, 1, stats.DueNextWeek)
}

func TestGoalCompletion(t *testing.T) {
	tests := []struct {
		name  string
		tasks []task.Task
		want  float64
	}{
		{"no tasks", nil, 0},
		{"half done", []task.Task{
			makeTask(task.TaskStatusCompleted, nil, nil),
			makeTask(task.TaskStatusPending, nil, nil),
		}, 0.5},
		{"all done", []task.Task{
			makeTask(task.TaskStatusCompleted, nil, nil),
		}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GoalCompletion(tt.tasks))
		})
	}
}

func TestCalculateGoalStats(t *testing.T) {
	activeHigh := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusActive, Priority: goal.GoalPriorityHigh, CreatedAt: testNow}
	activeLow := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusActive, Priority: goal.GoalPriorityLow, CreatedAt: testNow.AddDate(0, 0, -30)}
	done := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusCompleted, Priority: goal.GoalPriorityMedium, CreatedAt: testNow.AddDate(0, 0, -30)}
	paused := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusPaused, Priority: goal.GoalPriorityMedium, CreatedAt: testNow.AddDate(0, 0, -30)}

	tasksByGoal := map[uuid.UUID][]task.Task{
		activeHigh.ID: {
			makeTask(task.TaskStatusCompleted, nil, nil),
			makeTask(task.TaskStatusCompleted, nil, nil),
			makeTask(task.TaskStatusCompleted, nil, nil),
		},
		// activeLow has no tasks, so it sits at zero progress.
	}

	stats := CalculateGoalStats([]goal.Goal{activeHigh, activeLow, done, paused}, tasksByGoal, testNow)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Paused)
	assert.Equal(t, 1, stats.HighPriorityActive)
	assert.Equal(t, 1, stats.GoalsUnder50)
	assert.Equal(t, 1, stats.CreatedThisWeek)
	assert.Equal(t, 0.25, stats.CompletionRate)
	assert.Equal(t, 1.0, stats.GoalCompletion[activeHigh.ID])
	assert.Equal(t, 0.0, stats.GoalCompletion[activeLow.ID])
}

func TestBuildEvidenceStats(t *testing.T) {
	items := []evidence.Evidence{
		{Type: evidence.EvidenceTypePhoto, SubmittedAt: testNow},
		{Type: evidence.EvidenceTypePhoto, SubmittedAt: testNow.AddDate(0, 0, -10)},
		{Type: evidence.EvidenceTypeLink, SubmittedAt: testNow.AddDate(0, 0, -1)},
	}

	stats := BuildEvidenceStats(items, testNow)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ThisWeek)
	assert.Equal(t, 2, stats.ByType[evidence.EvidenceTypePhoto])
	assert.Equal(t, 1, stats.ByType[evidence.EvidenceTypeLink])
}
