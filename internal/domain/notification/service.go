package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateNotificationInput struct {
	UserID uuid.UUID        `json:"user_id"`
	Type   NotificationType `json:"type"`
	Title  string           `json:"title"`
	Body   string           `json:"body"`
}

type Service interface {
	Notify(ctx context.Context, input CreateNotificationInput) (*Notification, error)
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo   NotificationRepository
	logger *zap.Logger
}

func NewService(repo NotificationRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Notify(ctx context.Context, input CreateNotificationInput) (*Notification, error) {
	if input.UserID == uuid.Nil || input.Title == "" {
		return nil, ErrInvalidInput
	}

	n := &Notification{
		ID:     uuid.New(),
		UserID: input.UserID,
		Type:   input.Type,
		Title:  input.Title,
		Body:   input.Body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Info("Notification created",
		zap.String("user_id", n.UserID.String()),
		zap.String("type", string(n.Type)))
	return n, nil
}

func (s *service) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	items, err := s.repo.FindByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return items, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
