package task

import (
	"context"
	"testing"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/events"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAnalysisCache struct {
	published   []*events.AnalysisEvent
	invalidated []uuid.UUID
}

func (f *fakeAnalysisCache) PublishAnalysisEvent(ctx context.Context, event *events.AnalysisEvent) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeAnalysisCache) InvalidateAnalysisCache(ctx context.Context, userID uuid.UUID) error {
	f.invalidated = append(f.invalidated, userID)
	return nil
}

type mockTaskRepo struct {
	byID map[uuid.UUID]*Task
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{byID: make(map[uuid.UUID]*Task)}
}

func (m *mockTaskRepo) Create(ctx context.Context, t *Task) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTaskRepo) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	out := []Task{}
	for _, t := range m.byID {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.DueDateStart != nil {
			if t.DueDate == nil || t.DueDate.Before(*filter.DueDateStart) {
				continue
			}
		}
		if filter.DueDateEnd != nil {
			if t.DueDate == nil || !t.DueDate.Before(*filter.DueDateEnd) {
				continue
			}
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (m *mockTaskRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	out := []Task{}
	for _, t := range m.byID {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]Task, error) {
	out := []Task{}
	for _, t := range m.byID {
		if t.GoalID != nil && *t.GoalID == goalID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) FindByCalendarEventID(ctx context.Context, userID uuid.UUID, eventID string) (*Task, error) {
	for _, t := range m.byID {
		if t.UserID == userID && t.CalendarEventID != nil && *t.CalendarEventID == eventID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (m *mockTaskRepo) Update(ctx context.Context, t *Task) error {
	if _, ok := m.byID[t.ID]; !ok {
		return ErrTaskNotFound
	}
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return ErrTaskNotFound
	}
	delete(m.byID, id)
	return nil
}

func asOwner(userID uuid.UUID) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func TestCreateTask_Defaults(t *testing.T) {
	svc := NewService(newMockTaskRepo(), nil, zap.NewNop())
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: userID,
		Title:  "write weekly report",
	})
	require.NoError(t, err)

	assert.Equal(t, TaskStatusPending, created.Status)
	assert.Nil(t, created.CompletedAt)
	assert.Equal(t, userID, created.UserID)
}

func TestCreateTask_Validation(t *testing.T) {
	svc := NewService(newMockTaskRepo(), nil, zap.NewNop())

	_, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateTask(context.Background(), CreateTaskInput{Title: "no owner"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompleteTask_SetsCompletionTime(t *testing.T) {
	svc := NewService(newMockTaskRepo(), nil, zap.NewNop())
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: userID, Title: "a"})
	require.NoError(t, err)

	proof := "https://example.com/pr/42"
	completed, err := svc.CompleteTask(asOwner(userID), created.ID, &proof)
	require.NoError(t, err)

	assert.Equal(t, TaskStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.NotNil(t, completed.Proof)
	assert.Equal(t, proof, *completed.Proof)
}

func TestRescheduleTask_ResetsToPending(t *testing.T) {
	svc := NewService(newMockTaskRepo(), nil, zap.NewNop())
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: userID, Title: "a"})
	require.NoError(t, err)

	_, err = svc.CompleteTask(asOwner(userID), created.ID, nil)
	require.NoError(t, err)

	newDue := time.Now().Add(48 * time.Hour)
	rescheduled, err := svc.RescheduleTask(asOwner(userID), created.ID, newDue)
	require.NoError(t, err)

	assert.Equal(t, TaskStatusPending, rescheduled.Status)
	assert.Nil(t, rescheduled.CompletedAt, "rescheduling must clear the completion time")
	require.NotNil(t, rescheduled.DueDate)
	assert.True(t, rescheduled.DueDate.Equal(newDue))
}

func TestOwnership_DeniesOtherUsers(t *testing.T) {
	svc := NewService(newMockTaskRepo(), nil, zap.NewNop())
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "private"})
	require.NoError(t, err)

	_, err = svc.GetTask(asOwner(uuid.New()), created.ID)
	assert.ErrorIs(t, err, ErrTaskAccessDenied)

	_, err = svc.SkipTask(asOwner(uuid.New()), created.ID)
	assert.ErrorIs(t, err, ErrTaskAccessDenied)

	err = svc.DeleteTask(asOwner(uuid.New()), created.ID)
	assert.ErrorIs(t, err, ErrTaskAccessDenied)

	got, err := svc.GetTask(asOwner(owner), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestWrites_DropCachedAnalysis(t *testing.T) {
	fake := &fakeAnalysisCache{}
	svc := NewService(newMockTaskRepo(), fake, zap.NewNop())
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: userID, Title: "a"})
	require.NoError(t, err)

	_, err = svc.CompleteTask(asOwner(userID), created.ID, nil)
	require.NoError(t, err)

	// Every write both drops the user's analysis snapshot and publishes a
	// change event; a later analysis read must recompute from fresh rows.
	require.Len(t, fake.invalidated, 2)
	assert.Equal(t, userID, fake.invalidated[0])
	assert.Equal(t, userID, fake.invalidated[1])
	require.Len(t, fake.published, 2)
	assert.Equal(t, events.EventTypeTaskUpdate, fake.published[1].EventType)
	assert.Equal(t, userID, fake.published[1].UserID)
}

func TestGetTodayTasks_FiltersByDueWindow(t *testing.T) {
	repo := newMockTaskRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today := midnight.Add(12 * time.Hour)
	tomorrow := midnight.Add(36 * time.Hour)

	_, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: userID, Title: "due today", DueDate: &today})
	require.NoError(t, err)
	_, err = svc.CreateTask(context.Background(), CreateTaskInput{UserID: userID, Title: "due tomorrow", DueDate: &tomorrow})
	require.NoError(t, err)
	_, err = svc.CreateTask(context.Background(), CreateTaskInput{UserID: userID, Title: "no due date"})
	require.NoError(t, err)

	tasks, err := svc.GetTodayTasks(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "due today", tasks[0].Title)
}
