package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db), newRelationshipService(db))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret", "Alice", "Ames")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret", user.Password)

	got, err := svc.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSearchUsers(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	seedUser(t, db, "baker_bob", false)
	seedUser(t, db, "baker_betty", false)
	seedUser(t, db, "chef_carl", false)

	// a leading @ is stripped, matching is case-insensitive
	found, err := svc.Search(ctx, "@Baker")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Search(ctx, "carl")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "chef_carl", found[0].Username)
}

func TestUpdateProfilePrivacyFlip(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)
	rel := newRelationshipService(db)
	ctx := context.Background()

	carol := seedUser(t, db, "carol", true)
	fan := seedUser(t, db, "fan", false)
	state, err := rel.Toggle(ctx, fan.ID, carol.ID)
	require.NoError(t, err)
	require.Equal(t, StatePending, state)

	in := ProfileInput{FirstName: "Carol", LastName: "Chen", Bio: "home cook", IsPrivate: false}
	resolved, err := svc.UpdateProfile(ctx, carol.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 1, resolved)
	assert.EqualValues(t, 1, countRows(t, db, &model.Follow{}, "followee_id = ?", carol.ID))

	saved, err := svc.GetByID(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carol", saved.FirstName)
	assert.Equal(t, "home cook", saved.Bio)
	assert.False(t, saved.IsPrivate)

	// no flip, no resolution
	in.Bio = "still cooking"
	resolved, err = svc.UpdateProfile(ctx, carol.ID, in)
	require.NoError(t, err)
	assert.Zero(t, resolved)
}

func TestGetUnknownUser(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)

	_, err := svc.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetByID(context.Background(), "no-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGravatarURL(t *testing.T) {
	u := &model.User{Email: "MyEmailAddress@example.com "}
	assert.Contains(t, u.Gravatar(80), "0bc83cb571cd1c50ba6f3e8a78ef1346")
	assert.Contains(t, u.Gravatar(80), "s=80")
}
