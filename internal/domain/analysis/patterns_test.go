package analysis

import (
	"testing"

	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findPattern(patterns []DetectedPattern, pt pattern.PatternType) *DetectedPattern {
	for i := range patterns {
		if patterns[i].Type == pt {
			return &patterns[i]
		}
	}
	return nil
}

func lateTask(title string) task.Task {
	due := testNow.AddDate(0, 0, -5)
	done := testNow.AddDate(0, 0, -1)
	return task.Task{ID: uuid.New(), Title: title, Status: task.TaskStatusCompleted, DueDate: &due, CompletedAt: &done}
}

func onTimeTask() task.Task {
	due := testNow.AddDate(0, 0, -1)
	done := testNow.AddDate(0, 0, -3)
	return task.Task{ID: uuid.New(), Title: "on time", Status: task.TaskStatusCompleted, DueDate: &due, CompletedAt: &done}
}

func TestDetectTaskPatterns_Procrastination(t *testing.T) {
	// 3 of 4 due-dated completions late: rate 0.75 > 0.5.
	tasks := []task.Task{lateTask("a"), lateTask("b"), lateTask("c"), onTimeTask()}

	p := findPattern(DetectTaskPatterns(tasks, testNow), pattern.PatternProcrastination)
	require.NotNil(t, p)
	assert.InDelta(t, 0.75, p.Confidence, 1e-9)
	assert.LessOrEqual(t, p.Confidence, 1.0)
	assert.Len(t, p.Evidence, 3)
}

func TestDetectTaskPatterns_ProcrastinationNotTriggeredAtHalf(t *testing.T) {
	// Exactly 50% late does not trigger, the rate must exceed the threshold.
	tasks := []task.Task{lateTask("a"), onTimeTask()}

	p := findPattern(DetectTaskPatterns(tasks, testNow), pattern.PatternProcrastination)
	assert.Nil(t, p)
}

func TestDetectTaskPatterns_NoDueDatedCompletions(t *testing.T) {
	// Zero denominator skips the rule entirely.
	done := testNow
	tasks := []task.Task{
		{ID: uuid.New(), Status: task.TaskStatusCompleted, CompletedAt: &done},
	}

	p := findPattern(DetectTaskPatterns(tasks, testNow), pattern.PatternProcrastination)
	assert.Nil(t, p)
}

func TestDetectTaskPatterns_Skipping(t *testing.T) {
	tasks := []task.Task{
		{ID: uuid.New(), Status: task.TaskStatusSkipped},
		{ID: uuid.New(), Status: task.TaskStatusSkipped},
		{ID: uuid.New(), Status: task.TaskStatusPending},
		{ID: uuid.New(), Status: task.TaskStatusPending},
	}

	p := findPattern(DetectTaskPatterns(tasks, testNow), pattern.PatternTaskSkipping)
	require.NotNil(t, p)
	// rate 0.5, confidence min(0.5*2, 1) = 1.
	assert.Equal(t, 1.0, p.Confidence)
}

func TestDetectTaskPatterns_Overcommitment(t *testing.T) {
	past := testNow.AddDate(0, 0, -3)
	var tasks []task.Task
	for i := 0; i < 5; i++ {
		tasks = append(tasks, task.Task{ID: uuid.New(), Status: task.TaskStatusPending, DueDate: &past})
	}

	p := findPattern(DetectTaskPatterns(tasks, testNow), pattern.PatternOvercommitment)
	require.NotNil(t, p)
	assert.Equal(t, 0.5, p.Confidence)

	// Four overdue tasks stay under the threshold.
	p = findPattern(DetectTaskPatterns(tasks[:4], testNow), pattern.PatternOvercommitment)
	assert.Nil(t, p)
}

func TestDetectTaskPatterns_VaguePlanning(t *testing.T) {
	future := testNow.AddDate(0, 0, 3)
	tasks := []task.Task{
		{ID: uuid.New(), Status: task.TaskStatusPending},
		{ID: uuid.New(), Status: task.TaskStatusPending},
		{ID: uuid.New(), Status: task.TaskStatusPending},
		{ID: uuid.New(), Status: task.TaskStatusPending, DueDate: &future},
	}

	p := findPattern(DetectTaskPatterns(tasks, testNow), pattern.PatternVaguePlanning)
	require.NotNil(t, p)
	assert.Equal(t, 0.75, p.Confidence)
}

func TestDetectGoalPatterns_NewProjectAddiction(t *testing.T) {
	goals := []goal.Goal{
		{ID: uuid.New(), Status: goal.GoalStatusActive, Title: "g1"},
		{ID: uuid.New(), Status: goal.GoalStatusActive, Title: "g2"},
		{ID: uuid.New(), Status: goal.GoalStatusActive, Title: "g3"},
	}
	// No tasks anywhere, so every active goal sits at 0% completion.
	p := findPattern(DetectGoalPatterns(goals, nil, testNow), pattern.PatternNewProjectAddiction)
	require.NotNil(t, p)
	assert.InDelta(t, 0.6, p.Confidence, 1e-9)

	// Two under-50% goals do not trigger.
	p = findPattern(DetectGoalPatterns(goals[:2], nil, testNow), pattern.PatternNewProjectAddiction)
	assert.Nil(t, p)
}

func TestDetectGoalPatterns_Abandonment(t *testing.T) {
	g := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusActive, Title: "stale"}
	fresh := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusActive, Title: "fresh"}

	staleTask := task.Task{ID: uuid.New(), Status: task.TaskStatusPending, UpdatedAt: testNow.AddDate(0, 0, -45)}
	freshTask := task.Task{ID: uuid.New(), Status: task.TaskStatusPending, UpdatedAt: testNow.AddDate(0, 0, -2)}

	tasksByGoal := map[uuid.UUID][]task.Task{
		g.ID:     {staleTask},
		fresh.ID: {freshTask},
	}

	p := findPattern(DetectGoalPatterns([]goal.Goal{g, fresh}, tasksByGoal, testNow), pattern.PatternGoalAbandonment)
	require.NotNil(t, p)
	assert.InDelta(t, 1.0/3.0, p.Confidence, 1e-9)
	assert.Equal(t, []string{"stale"}, p.Evidence)
}

func TestDetectGoalPatterns_PlanningWithoutExecution(t *testing.T) {
	withTasks := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusActive}
	empty1 := goal.Goal{ID: uuid.New(), Status: goal.GoalStatusActive}

	recent := task.Task{ID: uuid.New(), Status: task.TaskStatusPending, UpdatedAt: testNow}
	tasksByGoal := map[uuid.UUID][]task.Task{withTasks.ID: {recent}}

	// 1 of 2 active goals has zero tasks: rate 0.5 > 0.3.
	p := findPattern(DetectGoalPatterns([]goal.Goal{withTasks, empty1}, tasksByGoal, testNow), pattern.PatternPlanningWithoutExecution)
	require.NotNil(t, p)
	assert.InDelta(t, 0.75, p.Confidence, 1e-9)
}

func TestDetectGoalPatterns_IgnoresInactiveGoals(t *testing.T) {
	goals := []goal.Goal{
		{ID: uuid.New(), Status: goal.GoalStatusPaused},
		{ID: uuid.New(), Status: goal.GoalStatusCompleted},
	}

	patterns := DetectGoalPatterns(goals, nil, testNow)
	assert.Empty(t, patterns)
}
