package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/repository"
)

func newExploreService(db *gorm.DB) ExploreService {
	return NewExploreService(db, repository.NewRecipeRepository(db), newFeedService(db))
}

func TestExploreShelves(t *testing.T) {
	db := setupDB(t)
	svc := newExploreService(db)
	engagement := newEngagementService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	viewers := seedUsers(t, db, 3, "viewer")

	hot := seedRecipe(t, db, author, "Hot")
	quiet := seedRecipe(t, db, author, "Quiet")
	_ = quiet
	for _, v := range viewers {
		require.NoError(t, engagement.RecordView(ctx, v.ID, hot.ID))
	}

	shelves, err := svc.Shelves(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, shelves.Trending)
	assert.Equal(t, "Hot", shelves.Trending[0].Title)
	assert.Len(t, shelves.New, 2)
	// anonymous viewers fall back to trending for the personal shelf
	assert.Equal(t, shelves.Trending, shelves.ForYou)
}

func TestExploreForYouFollowsViewerTaste(t *testing.T) {
	db := setupDB(t)
	svc := newExploreService(db)
	engagement := newEngagementService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	viewer := seedUser(t, db, "viewer", false)
	dessert := seedCategory(t, db, "dessert")
	savoury := seedCategory(t, db, "savoury")

	cake := seedRecipe(t, db, author, "Cake")
	tagRecipe(t, db, cake, dessert)
	pie := seedRecipe(t, db, author, "Dessert Pie")
	tagRecipe(t, db, pie, dessert)
	stew := seedRecipe(t, db, author, "Stew")
	tagRecipe(t, db, stew, savoury)

	// the viewer's signals all point at desserts
	_, err := engagement.ToggleFavourite(ctx, viewer.ID, cake.ID)
	require.NoError(t, err)
	require.NoError(t, engagement.RecordView(ctx, viewer.ID, pie.ID))

	shelves, err := svc.Shelves(ctx, viewer.ID)
	require.NoError(t, err)
	require.NotEmpty(t, shelves.ForYou)
	for _, item := range shelves.ForYou {
		assert.NotEqual(t, "Stew", item.Title)
	}
}

func TestInboxSummary(t *testing.T) {
	db := setupDB(t)
	svc := NewInboxService(repository.NewCommentRepository(db), repository.NewRecipeRepository(db))
	engagement := newEngagementService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	fan := seedUser(t, db, "fan", false)

	liked := seedRecipe(t, db, author, "Liked")
	commented := seedRecipe(t, db, author, "Commented")

	_, err := engagement.ToggleLike(ctx, fan.ID, liked.ID)
	require.NoError(t, err)
	_, err = engagement.AddComment(ctx, fan.ID, commented.ID, "so good")
	require.NoError(t, err)
	// the author's own comment must not show up as news
	_, err = engagement.AddComment(ctx, author.ID, commented.ID, "thanks")
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, summary.NewComments, 1)
	assert.Equal(t, "fan", summary.NewComments[0].AuthorUsername)
	require.Len(t, summary.LikedRecipes, 1)
	assert.Equal(t, "Liked", summary.LikedRecipes[0].Title)
}
