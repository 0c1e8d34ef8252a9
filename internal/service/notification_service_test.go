package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

func seedNotification(t *testing.T, db *gorm.DB, recipientID, senderID, typ, kind, targetID string, age time.Duration) *model.Notification {
	t.Helper()
	n := &model.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        typ,
		TargetKind:  kind,
		TargetID:    targetID,
		CreatedAt:   time.Now().Add(-age),
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestNotifyAndRevoke(t *testing.T) {
	db := setupDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)

	require.NoError(t, svc.Notify(ctx, bob.ID, alice.ID, model.NotificationFavourite, model.TargetRecipe, "r1"))
	require.NoError(t, svc.Notify(ctx, bob.ID, alice.ID, model.NotificationFavourite, model.TargetRecipe, "r2"))

	// revoke matches the full tuple, so only r1 goes away
	require.NoError(t, svc.Revoke(ctx, bob.ID, alice.ID, model.NotificationFavourite, model.TargetRecipe, "r1"))

	left, err := svc.List(ctx, bob.ID, "all")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "r2", left[0].TargetID)
}

func TestListNewestFirstWithTypeFilter(t *testing.T) {
	db := setupDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)

	seedNotification(t, db, bob.ID, alice.ID, model.NotificationFollow, model.TargetNone, "", 3*time.Hour)
	seedNotification(t, db, bob.ID, alice.ID, model.NotificationComment, model.TargetComment, "c1", 2*time.Hour)
	newest := seedNotification(t, db, bob.ID, alice.ID, model.NotificationFavourite, model.TargetRecipe, "r1", time.Hour)
	seedNotification(t, db, alice.ID, bob.ID, model.NotificationFollow, model.TargetNone, "", time.Minute)

	all, err := svc.List(ctx, bob.ID, "all")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)

	follows, err := svc.List(ctx, bob.ID, model.NotificationFollow)
	require.NoError(t, err)
	require.Len(t, follows, 1)
	assert.Equal(t, model.NotificationFollow, follows[0].Type)
}

func TestDeleteOnlyForRecipient(t *testing.T) {
	db := setupDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	ctx := context.Background()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	n := seedNotification(t, db, bob.ID, alice.ID, model.NotificationFollow, model.TargetNone, "", time.Hour)

	// someone else's delete is a silent no-op
	require.NoError(t, svc.Delete(ctx, n.ID, alice.ID))
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{}, "id = ?", n.ID))

	require.NoError(t, svc.Delete(ctx, n.ID, bob.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Notification{}, "id = ?", n.ID))

	// deleting a gone notification stays silent
	require.NoError(t, svc.Delete(ctx, n.ID, bob.ID))
}
