package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

// Notification fan-out. Notify/Revoke are also available as tx-scoped
// helpers so callers can commit them atomically with the social action that
// triggered them. The service never checks "don't notify yourself" — that
// guard belongs at the call site, next to the action.
type NotificationService interface {
	Notify(ctx context.Context, recipientID, senderID, notificationType, targetKind, targetID string) error
	Revoke(ctx context.Context, recipientID, senderID, notificationType, targetKind, targetID string) error
	// List returns the recipient's notifications newest first, optionally
	// restricted to one type ("" or "all" means no filter).
	List(ctx context.Context, recipientID, typeFilter string) ([]*model.Notification, error)
	// Delete removes a notification only when actorID is its recipient.
	// Anything else is a silent no-op so that deletion never leaks whether
	// another user's notification exists.
	Delete(ctx context.Context, id, actorID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, recipientID, senderID, notificationType, targetKind, targetID string) error {
	return s.repo.Create(ctx, &model.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notificationType,
		TargetKind:  targetKind,
		TargetID:    targetID,
	})
}

func (s *notificationService) Revoke(ctx context.Context, recipientID, senderID, notificationType, targetKind, targetID string) error {
	return s.repo.DeleteMatching(ctx, recipientID, senderID, notificationType, targetKind, targetID)
}

func (s *notificationService) List(ctx context.Context, recipientID, typeFilter string) ([]*model.Notification, error) {
	if typeFilter == "all" {
		typeFilter = ""
	}
	return s.repo.List(ctx, recipientID, typeFilter)
}

func (s *notificationService) Delete(ctx context.Context, id, actorID string) error {
	return s.repo.DeleteForRecipient(ctx, id, actorID)
}

// notifyTx inserts a notification inside the caller's transaction.
func notifyTx(tx *gorm.DB, recipientID, senderID, notificationType, targetKind, targetID string) error {
	return tx.Create(&model.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notificationType,
		TargetKind:  targetKind,
		TargetID:    targetID,
	}).Error
}

// revokeNotificationTx deletes the matching row(s) inside the caller's
// transaction, undoing a prior fan-out.
func revokeNotificationTx(tx *gorm.DB, recipientID, senderID, notificationType, targetKind, targetID string) error {
	return tx.Where("recipient_id = ? AND sender_id = ? AND type = ? AND target_kind = ? AND target_id = ?",
		recipientID, senderID, notificationType, targetKind, targetID).
		Delete(&model.Notification{}).Error
}
