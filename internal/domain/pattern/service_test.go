package pattern

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type typeKey struct {
	user uuid.UUID
	pt   PatternType
}

// mockPatternRepo keeps rows in memory with the same (user, type) uniqueness
// the database enforces.
type mockPatternRepo struct {
	byID   map[uuid.UUID]*Pattern
	byType map[typeKey]uuid.UUID
}

func newMockPatternRepo() *mockPatternRepo {
	return &mockPatternRepo{
		byID:   make(map[uuid.UUID]*Pattern),
		byType: make(map[typeKey]uuid.UUID),
	}
}

func (m *mockPatternRepo) Create(ctx context.Context, p *Pattern) error {
	key := typeKey{p.UserID, p.PatternType}
	if _, taken := m.byType[key]; taken {
		return ErrPatternExists
	}
	cp := *p
	m.byID[p.ID] = &cp
	m.byType[key] = p.ID
	return nil
}

func (m *mockPatternRepo) FindByID(ctx context.Context, id uuid.UUID) (*Pattern, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrPatternNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPatternRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]Pattern, error) {
	var out []Pattern
	for _, p := range m.byID {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPatternRepo) FindByType(ctx context.Context, userID uuid.UUID, pt PatternType) (*Pattern, error) {
	id, ok := m.byType[typeKey{userID, pt}]
	if !ok {
		return nil, ErrPatternNotFound
	}
	return m.FindByID(ctx, id)
}

func (m *mockPatternRepo) Update(ctx context.Context, p *Pattern) error {
	if _, ok := m.byID[p.ID]; !ok {
		return ErrPatternNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *mockPatternRepo) Delete(ctx context.Context, id uuid.UUID) error {
	p, ok := m.byID[id]
	if !ok {
		return ErrPatternNotFound
	}
	delete(m.byType, typeKey{p.UserID, p.PatternType})
	delete(m.byID, id)
	return nil
}

func TestRecordOccurrence_FirstDetection(t *testing.T) {
	svc := NewService(newMockPatternRepo(), nil, zap.NewNop())
	userID := uuid.New()

	p, err := svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID:      userID,
		PatternType: PatternProcrastination,
		Description: "deadlines keep slipping",
		Confidence:  0.6,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, p.Occurrences)
	assert.Equal(t, 0.6, p.Confidence)
	assert.False(t, p.FirstDetected.IsZero())
	assert.Equal(t, p.FirstDetected, p.LastOccurred)
}

func TestRecordOccurrence_IncrementsExisting(t *testing.T) {
	repo := newMockPatternRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	first, err := svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID:      userID,
		PatternType: PatternTaskSkipping,
		Confidence:  0.5,
	})
	require.NoError(t, err)

	second, err := svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID:      userID,
		PatternType: PatternTaskSkipping,
		Description: "still skipping",
		Confidence:  0.9,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat detections must reuse the row")
	assert.Equal(t, 2, second.Occurrences)
	assert.Equal(t, 0.9, second.Confidence, "confidence follows the latest detection")
	assert.Equal(t, "still skipping", second.Description)
	assert.Equal(t, first.FirstDetected, second.FirstDetected)
	assert.False(t, second.LastOccurred.Before(first.LastOccurred))
	assert.Len(t, repo.byID, 1)
}

func TestRecordOccurrence_SeparateRowsPerType(t *testing.T) {
	repo := newMockPatternRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	_, err := svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID: userID, PatternType: PatternOvercommitment, Confidence: 0.7,
	})
	require.NoError(t, err)

	_, err = svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID: userID, PatternType: PatternVaguePlanning, Confidence: 0.7,
	})
	require.NoError(t, err)

	assert.Len(t, repo.byID, 2)
}

func TestRecordOccurrence_Validation(t *testing.T) {
	svc := NewService(newMockPatternRepo(), nil, zap.NewNop())

	_, err := svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID: uuid.New(), PatternType: "made_up", Confidence: 0.5,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID: uuid.New(), PatternType: PatternProcrastination, Confidence: 1.5,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPatternByType(t *testing.T) {
	svc := NewService(newMockPatternRepo(), nil, zap.NewNop())
	userID := uuid.New()

	_, err := svc.GetPatternByType(context.Background(), userID, PatternGoalAbandonment)
	assert.ErrorIs(t, err, ErrPatternNotFound)

	created, err := svc.RecordOccurrence(context.Background(), RecordOccurrenceInput{
		UserID: userID, PatternType: PatternGoalAbandonment, Confidence: 0.8,
	})
	require.NoError(t, err)

	got, err := svc.GetPatternByType(context.Background(), userID, PatternGoalAbandonment)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Pattern type must be validated before any lookup.
	_, err = svc.GetPatternByType(context.Background(), userID, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
