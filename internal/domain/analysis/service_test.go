package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/evidence"
	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTaskSource struct {
	tasks []task.Task
	err   error
	calls int
}

func (m *mockTaskSource) FindByUser(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	m.calls++
	return m.tasks, m.err
}

type mockGoalSource struct {
	goals []goal.Goal
	err   error
}

func (m *mockGoalSource) FindByUser(ctx context.Context, userID uuid.UUID) ([]goal.Goal, error) {
	return m.goals, m.err
}

type mockEvidenceSource struct {
	items []evidence.Evidence
	err   error
	calls int
}

func (m *mockEvidenceSource) FindByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) ([]evidence.Evidence, error) {
	m.calls++
	return m.items, m.err
}

func newTestService(tasks *mockTaskSource, goals *mockGoalSource, ev *mockEvidenceSource) *service {
	svc := NewService(tasks, goals, ev, nil, zap.NewNop()).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestAnalyzeUser_ZeroTasksSkipsEvidenceQuery(t *testing.T) {
	ev := &mockEvidenceSource{}
	svc := newTestService(&mockTaskSource{}, &mockGoalSource{}, ev)

	result, err := svc.AnalyzeUser(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Evidence.Total)
	assert.Equal(t, 0, result.Evidence.ThisWeek)
	assert.Empty(t, result.Evidence.ByType)
	assert.Equal(t, 0, ev.calls, "evidence store must not be queried for a task-less user")
}

func TestAnalyzeUser_QueriesEvidenceWhenTasksExist(t *testing.T) {
	userID := uuid.New()
	tasks := []task.Task{{ID: uuid.New(), UserID: userID, Title: "t", Status: task.TaskStatusPending}}
	ev := &mockEvidenceSource{items: []evidence.Evidence{
		{Type: evidence.EvidenceTypeText, SubmittedAt: testNow},
	}}
	svc := newTestService(&mockTaskSource{tasks: tasks}, &mockGoalSource{}, ev)

	result, err := svc.AnalyzeUser(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, ev.calls)
	assert.Equal(t, 1, result.Evidence.Total)
	assert.Equal(t, 1, result.TaskStats.Total)
	assert.Equal(t, testNow, result.GeneratedAt)
}

func TestAnalyzeUser_TaskFetchFailureAborts(t *testing.T) {
	svc := newTestService(&mockTaskSource{err: errors.New("db down")}, &mockGoalSource{}, &mockEvidenceSource{})

	_, err := svc.AnalyzeUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch tasks")
}

func TestAnalyzeUser_GoalFetchFailureAborts(t *testing.T) {
	svc := newTestService(&mockTaskSource{}, &mockGoalSource{err: errors.New("db down")}, &mockEvidenceSource{})

	_, err := svc.AnalyzeUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch goals")
}

func TestAnalyzeUser_EvidenceFetchFailureAborts(t *testing.T) {
	tasks := []task.Task{{ID: uuid.New(), Title: "t", Status: task.TaskStatusPending}}
	svc := newTestService(&mockTaskSource{tasks: tasks}, &mockGoalSource{}, &mockEvidenceSource{err: errors.New("db down")})

	_, err := svc.AnalyzeUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch evidence")
}

func TestAnalyzeUser_GroupsTasksByGoal(t *testing.T) {
	goalID := uuid.New()
	g := goal.Goal{ID: goalID, Status: goal.GoalStatusActive, Title: "ship it"}
	tasks := []task.Task{
		{ID: uuid.New(), GoalID: &goalID, Title: "a", Status: task.TaskStatusCompleted},
		{ID: uuid.New(), GoalID: &goalID, Title: "b", Status: task.TaskStatusPending, UpdatedAt: testNow},
		{ID: uuid.New(), Title: "loose", Status: task.TaskStatusPending},
	}
	svc := newTestService(&mockTaskSource{tasks: tasks}, &mockGoalSource{goals: []goal.Goal{g}}, &mockEvidenceSource{})

	result, err := svc.AnalyzeUser(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0.5, result.GoalStats.GoalCompletion[goalID])
	assert.Equal(t, 1, result.GoalStats.Active)
}
