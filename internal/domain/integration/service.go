package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	calendarapi "google.golang.org/api/calendar/v3"
)

type ConnectInput struct {
	UserID       uuid.UUID   `json:"user_id"`
	Service      ServiceName `json:"service"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	TokenExpiry  *time.Time  `json:"token_expiry,omitempty"`
	AccountLogin string      `json:"account_login,omitempty"`
}

// GitHubActivity bundles a user's recent GitHub state for the coach.
type GitHubActivity struct {
	User   *GitHubUser   `json:"user"`
	Events []GitHubEvent `json:"events"`
	Repos  []GitHubRepo  `json:"repos"`
}

type Service interface {
	Connect(ctx context.Context, input ConnectInput) (*Integration, error)
	Disconnect(ctx context.Context, userID uuid.UUID, service ServiceName) error
	ListIntegrations(ctx context.Context, userID uuid.UUID) ([]Integration, error)
	GetGitHubActivity(ctx context.Context, userID uuid.UUID) (*GitHubActivity, error)
	GetRepoCommits(ctx context.Context, userID uuid.UUID, repoFullName string, since time.Time) ([]GitHubCommit, error)
	ListTodayCalendarEvents(ctx context.Context, userID uuid.UUID) ([]*calendarapi.Event, error)
	SyncFromCalendar(ctx context.Context, userID uuid.UUID) ([]task.Task, error)
	PushTaskToCalendar(ctx context.Context, userID uuid.UUID, t *task.Task) (string, error)
}

type service struct {
	repo     IntegrationRepository
	taskRepo task.TaskRepository
	github   *GitHubClient
	calendar *CalendarClient
	logger   *zap.Logger
}

func NewService(repo IntegrationRepository, taskRepo task.TaskRepository, github *GitHubClient, calendar *CalendarClient, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		taskRepo: taskRepo,
		github:   github,
		calendar: calendar,
		logger:   logger,
	}
}

func (s *service) Connect(ctx context.Context, input ConnectInput) (*Integration, error) {
	if input.UserID == uuid.Nil || !input.Service.IsValid() || input.AccessToken == "" {
		return nil, ErrInvalidInput
	}

	in := &Integration{
		ID:           uuid.New(),
		UserID:       input.UserID,
		Service:      input.Service,
		AccessToken:  input.AccessToken,
		RefreshToken: input.RefreshToken,
		TokenExpiry:  input.TokenExpiry,
		AccountLogin: input.AccountLogin,
		Status:       StatusConnected,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// Resolve the account login up front so GitHub calls can use it later.
	if input.Service == ServiceGitHub && in.AccountLogin == "" {
		user, err := s.github.GetUser(ctx, in.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch github user: %w", err)
		}
		in.AccountLogin = user.Login
	}

	if err := s.repo.Create(ctx, in); err != nil {
		if errors.Is(err, ErrIntegrationExists) {
			return nil, ErrIntegrationExists
		}
		return nil, fmt.Errorf("failed to create integration: %w", err)
	}

	s.logger.Info("Integration connected",
		zap.String("user_id", in.UserID.String()),
		zap.String("service", string(in.Service)))
	return in, nil
}

func (s *service) Disconnect(ctx context.Context, userID uuid.UUID, service ServiceName) error {
	in, err := s.repo.FindByService(ctx, userID, service)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, in.ID); err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	return nil
}

func (s *service) ListIntegrations(ctx context.Context, userID uuid.UUID) ([]Integration, error) {
	items, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch integrations: %w", err)
	}
	return items, nil
}

func (s *service) GetGitHubActivity(ctx context.Context, userID uuid.UUID) (*GitHubActivity, error) {
	in, err := s.repo.FindByService(ctx, userID, ServiceGitHub)
	if err != nil {
		return nil, err
	}

	user, err := s.github.GetUser(ctx, in.AccessToken)
	if err != nil {
		return nil, s.flagOnAuthFailure(ctx, in, err)
	}

	events, err := s.github.GetEvents(ctx, in.AccessToken, user.Login)
	if err != nil {
		return nil, s.flagOnAuthFailure(ctx, in, err)
	}

	repos, err := s.github.GetRepositories(ctx, in.AccessToken)
	if err != nil {
		return nil, s.flagOnAuthFailure(ctx, in, err)
	}

	return &GitHubActivity{User: user, Events: events, Repos: repos}, nil
}

func (s *service) GetRepoCommits(ctx context.Context, userID uuid.UUID, repoFullName string, since time.Time) ([]GitHubCommit, error) {
	in, err := s.repo.FindByService(ctx, userID, ServiceGitHub)
	if err != nil {
		return nil, err
	}

	commits, err := s.github.GetCommits(ctx, in.AccessToken, repoFullName, in.AccountLogin, since)
	if err != nil {
		return nil, s.flagOnAuthFailure(ctx, in, err)
	}
	return commits, nil
}

// ListTodayCalendarEvents returns today's events, or an empty list when the
// user has no calendar connected. A missing integration is not an error.
func (s *service) ListTodayCalendarEvents(ctx context.Context, userID uuid.UUID) ([]*calendarapi.Event, error) {
	in, err := s.repo.FindByService(ctx, userID, ServiceGoogleCalendar)
	if err != nil {
		if errors.Is(err, ErrIntegrationNotFound) {
			return []*calendarapi.Event{}, nil
		}
		return nil, err
	}

	start, end := todayBounds()
	events, fresh, err := s.calendar.ListEvents(ctx, oauthToken(in), start, end)
	if err != nil {
		return nil, s.flagOnAuthFailure(ctx, in, err)
	}
	s.persistToken(ctx, in, fresh)
	return events, nil
}

// SyncFromCalendar imports today's calendar events as pending tasks. Events
// already linked by calendar_event_id are left alone. The import is not
// transactional across the API and the database.
func (s *service) SyncFromCalendar(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	events, err := s.ListTodayCalendarEvents(ctx, userID)
	if err != nil {
		return nil, err
	}

	var created []task.Task
	for _, ev := range events {
		if ev.Id == "" || ev.Summary == "" {
			continue
		}
		if _, err := s.taskRepo.FindByCalendarEventID(ctx, userID, ev.Id); err == nil {
			continue
		} else if !errors.Is(err, task.ErrTaskNotFound) {
			return created, fmt.Errorf("failed to fetch tasks: %w", err)
		}

		eventID := ev.Id
		t := task.Task{
			ID:              uuid.New(),
			UserID:          userID,
			Title:           ev.Summary,
			Description:     ev.Description,
			Status:          task.TaskStatusPending,
			CalendarEventID: &eventID,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}
		if due := eventEnd(ev); due != nil {
			t.DueDate = due
		}

		if err := s.taskRepo.Create(ctx, &t); err != nil {
			return created, fmt.Errorf("failed to create task: %w", err)
		}
		created = append(created, t)
	}

	s.logger.Info("Calendar sync finished",
		zap.String("user_id", userID.String()),
		zap.Int("imported", len(created)))
	return created, nil
}

// PushTaskToCalendar creates a calendar event for a task and returns the
// event id for linkage.
func (s *service) PushTaskToCalendar(ctx context.Context, userID uuid.UUID, t *task.Task) (string, error) {
	in, err := s.repo.FindByService(ctx, userID, ServiceGoogleCalendar)
	if err != nil {
		return "", err
	}
	if t.DueDate == nil {
		return "", ErrInvalidInput
	}

	event := &calendarapi.Event{
		Summary:     t.Title,
		Description: t.Description,
		Start:       &calendarapi.EventDateTime{DateTime: t.DueDate.Add(-time.Hour).Format(time.RFC3339)},
		End:         &calendarapi.EventDateTime{DateTime: t.DueDate.Format(time.RFC3339)},
	}

	created, fresh, err := s.calendar.InsertEvent(ctx, oauthToken(in), event)
	if err != nil {
		return "", s.flagOnAuthFailure(ctx, in, err)
	}
	s.persistToken(ctx, in, fresh)
	return created.Id, nil
}

// flagOnAuthFailure marks the integration row when the upstream rejected our
// credentials; other failures pass through untouched.
func (s *service) flagOnAuthFailure(ctx context.Context, in *Integration, err error) error {
	if !errors.Is(err, ErrNeedsReconnect) {
		return err
	}
	in.Status = StatusNeedsReconnect
	in.UpdatedAt = time.Now()
	if updateErr := s.repo.Update(ctx, in); updateErr != nil {
		s.logger.Error("Failed to flag integration for reconnect", zap.Error(updateErr))
	}
	return ErrNeedsReconnect
}

// persistToken stores a refreshed token back on the integration row.
func (s *service) persistToken(ctx context.Context, in *Integration, tok *oauth2.Token) {
	if tok == nil || tok.AccessToken == in.AccessToken {
		return
	}
	in.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		in.RefreshToken = tok.RefreshToken
	}
	expiry := tok.Expiry
	in.TokenExpiry = &expiry
	in.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, in); err != nil {
		s.logger.Error("Failed to persist refreshed token", zap.Error(err))
	}
}

func oauthToken(in *Integration) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  in.AccessToken,
		RefreshToken: in.RefreshToken,
	}
	if in.TokenExpiry != nil {
		tok.Expiry = *in.TokenExpiry
	}
	return tok
}

func todayBounds() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

// eventEnd extracts the event's end time when it carries one.
func eventEnd(ev *calendarapi.Event) *time.Time {
	if ev.End == nil || ev.End.DateTime == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, ev.End.DateTime)
	if err != nil {
		return nil
	}
	return &ts
}
