package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"nyumbastay/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}

type eventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Service records fire-and-forget events and fans them out to the websocket
// hub and, when configured, the message broker. Delivery failures are never
// surfaced to the operation that emitted the event.
type Service struct {
	repo      NotificationRepository
	hub       *Hub
	publisher eventPublisher
}

func NewService(repo NotificationRepository, hub *Hub, publisher eventPublisher) *Service {
	return &Service{repo: repo, hub: hub, publisher: publisher}
}

func (s *Service) emit(ctx context.Context, userID int64, kind domain.NotificationKind, bookingRef, title, body string, data map[string]any) error {
	raw, _ := json.Marshal(data)
	n := &domain.Notification{
		UserID:     userID,
		BookingRef: bookingRef,
		Kind:       kind,
		Title:      title,
		Body:       body,
		Data:       raw,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		_ = s.hub.SendToUser(userID, n)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish("notifications."+string(kind), n)
	}
	return nil
}

func (s *Service) NotifyBookingCreated(ctx context.Context, userID int64, bookingRef string) error {
	return s.emit(ctx, userID, domain.NotifBookingCreated, bookingRef,
		"Reservation received",
		fmt.Sprintf("Your reservation %s has been received and is awaiting payment", bookingRef),
		map[string]any{"booking_ref": bookingRef})
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, userID int64, bookingRef string) error {
	return s.emit(ctx, userID, domain.NotifBookingConfirmed, bookingRef,
		"Reservation confirmed",
		fmt.Sprintf("Reservation %s has been confirmed by the property", bookingRef),
		map[string]any{"booking_ref": bookingRef})
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID int64, bookingRef, reason string) error {
	body := fmt.Sprintf("Reservation %s has been cancelled", bookingRef)
	if reason != "" {
		body = body + ". Reason: " + reason
	}
	return s.emit(ctx, userID, domain.NotifBookingCancelled, bookingRef,
		"Reservation cancelled", body,
		map[string]any{"booking_ref": bookingRef, "reason": reason})
}

func (s *Service) NotifyPaymentSettled(ctx context.Context, userID int64, bookingRef string, amount int64) error {
	return s.emit(ctx, userID, domain.NotifPaymentSettled, bookingRef,
		"Payment received",
		fmt.Sprintf("KES %d received for reservation %s", amount, bookingRef),
		map[string]any{"booking_ref": bookingRef, "amount": amount})
}

func (s *Service) NotifyMessageToProperty(ctx context.Context, userID int64, bookingRef, message string) error {
	return s.emit(ctx, userID, domain.NotifMessageToProperty, bookingRef,
		"Message about "+bookingRef, message,
		map[string]any{"booking_ref": bookingRef})
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}
