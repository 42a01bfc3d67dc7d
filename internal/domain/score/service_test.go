package score

import (
	"context"
	"testing"
	"time"

	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type weekKey struct {
	user uuid.UUID
	week time.Time
}

// mockScoreRepo keeps rows in memory and enforces (user, week) uniqueness the
// way the database index does.
type mockScoreRepo struct {
	byID   map[uuid.UUID]*AccountabilityScore
	byWeek map[weekKey]uuid.UUID
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{
		byID:   make(map[uuid.UUID]*AccountabilityScore),
		byWeek: make(map[weekKey]uuid.UUID),
	}
}

func (m *mockScoreRepo) Create(ctx context.Context, s *AccountabilityScore) error {
	key := weekKey{s.UserID, s.WeekStart}
	if _, taken := m.byWeek[key]; taken {
		return ErrScoreExists
	}
	cp := *s
	m.byID[s.ID] = &cp
	m.byWeek[key] = s.ID
	return nil
}

func (m *mockScoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*AccountabilityScore, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrScoreNotFound
	}
	cp := *s
	return normalize(&cp), nil
}

func (m *mockScoreRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]AccountabilityScore, error) {
	var out []AccountabilityScore
	for _, s := range m.byID {
		if s.UserID == userID {
			cp := *s
			out = append(out, *normalize(&cp))
		}
	}
	return out, nil
}

func (m *mockScoreRepo) FindByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*AccountabilityScore, error) {
	id, ok := m.byWeek[weekKey{userID, weekStart}]
	if !ok {
		return nil, ErrScoreNotFound
	}
	return m.FindByID(ctx, id)
}

func (m *mockScoreRepo) Update(ctx context.Context, s *AccountabilityScore) error {
	if _, ok := m.byID[s.ID]; !ok {
		return ErrScoreNotFound
	}
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *mockScoreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s, ok := m.byID[id]
	if !ok {
		return ErrScoreNotFound
	}
	delete(m.byWeek, weekKey{s.UserID, s.WeekStart})
	delete(m.byID, id)
	return nil
}

func floatPtr(v float64) *float64 { return &v }

var week = time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

func TestCreateScore_RoundTrip(t *testing.T) {
	repo := newMockScoreRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()
	summary := "a decent week"

	created, err := svc.CreateScore(context.Background(), CreateScoreInput{
		UserID:          userID,
		WeekStart:       week,
		AlignmentScore:  floatPtr(0.7),
		CompletionScore: floatPtr(0.5),
		Insights:        []string{"shipped the big thing"},
		WeekSummary:     &summary,
	})
	require.NoError(t, err)

	got, err := svc.GetScoreByWeek(context.Background(), userID, week)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.AlignmentScore)
	assert.Equal(t, 0.7, *got.AlignmentScore)
	assert.Nil(t, got.HonestyScore)
	require.NotNil(t, got.WeekSummary)
	assert.Equal(t, summary, *got.WeekSummary)
	assert.Equal(t, pq.StringArray{"shipped the big thing"}, got.Insights)
}

func TestCreateScore_ListDefaultsToEmpty(t *testing.T) {
	repo := newMockScoreRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	_, err := svc.CreateScore(context.Background(), CreateScoreInput{UserID: userID, WeekStart: week})
	require.NoError(t, err)

	got, err := svc.GetScoreByWeek(context.Background(), userID, week)
	require.NoError(t, err)

	assert.NotNil(t, got.Insights)
	assert.Empty(t, got.Insights)
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Recommendations)
	assert.Nil(t, got.WeekSummary)
}

func TestCreateScore_DuplicateWeek(t *testing.T) {
	repo := newMockScoreRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	_, err := svc.CreateScore(context.Background(), CreateScoreInput{UserID: userID, WeekStart: week})
	require.NoError(t, err)

	_, err = svc.CreateScore(context.Background(), CreateScoreInput{UserID: userID, WeekStart: week})
	assert.ErrorIs(t, err, ErrScoreExists)
	assert.Len(t, repo.byID, 1, "duplicate create must not add a second row")

	// Same week for another user is fine.
	_, err = svc.CreateScore(context.Background(), CreateScoreInput{UserID: uuid.New(), WeekStart: week})
	assert.NoError(t, err)
}

func TestCreateScore_RejectsOutOfRangeValues(t *testing.T) {
	svc := NewService(newMockScoreRepo(), nil, zap.NewNop())

	_, err := svc.CreateScore(context.Background(), CreateScoreInput{
		UserID:         uuid.New(),
		WeekStart:      week,
		AlignmentScore: floatPtr(1.2),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateScore(context.Background(), CreateScoreInput{
		UserID:       uuid.New(),
		WeekStart:    week,
		HonestyScore: floatPtr(-0.1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetScore_HidesOtherUsersRows(t *testing.T) {
	repo := newMockScoreRepo()
	svc := NewService(repo, nil, zap.NewNop())
	owner := uuid.New()

	created, err := svc.CreateScore(context.Background(), CreateScoreInput{UserID: owner, WeekStart: week})
	require.NoError(t, err)

	ctx := auth.WithUserID(context.Background(), uuid.New())
	_, err = svc.GetScore(ctx, created.ID)
	assert.ErrorIs(t, err, ErrScoreNotFound)

	ctx = auth.WithUserID(context.Background(), owner)
	got, err := svc.GetScore(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestMergeRoastMetadata_CreatesWeekRow(t *testing.T) {
	repo := newMockScoreRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	got, err := svc.MergeRoastMetadata(context.Background(), userID, week, RoastMetadata{
		Reflections: []string{"felt scattered"},
		CheckInType: "evening",
	})
	require.NoError(t, err)

	meta := got.RoastMetadata.Data()
	assert.Equal(t, []string{"felt scattered"}, meta.Reflections)
	assert.Equal(t, "evening", meta.CheckInType)
}

func TestMergeRoastMetadata_AppendsToExisting(t *testing.T) {
	repo := newMockScoreRepo()
	svc := NewService(repo, nil, zap.NewNop())
	userID := uuid.New()

	_, err := svc.MergeRoastMetadata(context.Background(), userID, week, RoastMetadata{
		Reflections: []string{"first"},
	})
	require.NoError(t, err)

	got, err := svc.MergeRoastMetadata(context.Background(), userID, week, RoastMetadata{
		Reflections:  []string{"second"},
		EvidenceURLs: []string{"https://example.com/proof.png"},
	})
	require.NoError(t, err)

	meta := got.RoastMetadata.Data()
	assert.Equal(t, []string{"first", "second"}, meta.Reflections)
	assert.Equal(t, []string{"https://example.com/proof.png"}, meta.EvidenceURLs)
	assert.Len(t, repo.byID, 1)
}
