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

func newRecipeService(db *gorm.DB) RecipeService {
	recipeRepo := repository.NewRecipeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	feed := newFeedService(db)
	engagement := newEngagementService(db)
	return NewRecipeService(recipeRepo, commentRepo, feed, engagement)
}

func TestRecipeCreateWithCategories(t *testing.T) {
	db := setupDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	vegan := seedCategory(t, db, "vegan")
	quick := seedCategory(t, db, "quick")

	recipe, err := svc.Create(ctx, author.ID, RecipeInput{
		Title:       "Chickpea Curry",
		Ingredients: "- chickpeas\n- coconut milk",
		CategoryIDs: []uint{vegan.ID, quick.ID},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, recipe.ID)
	assert.EqualValues(t, 2, countRows(t, db, &model.RecipeCategory{}, "recipe_id = ?", recipe.ID))
}

func TestRecipeUpdateReplacesCategories(t *testing.T) {
	db := setupDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	vegan := seedCategory(t, db, "vegan")
	dessert := seedCategory(t, db, "dessert")

	recipe, err := svc.Create(ctx, author.ID, RecipeInput{Title: "Before", CategoryIDs: []uint{vegan.ID}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, author.ID, recipe.ID, RecipeInput{Title: "After", CategoryIDs: []uint{dessert.ID}})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.EqualValues(t, 0, countRows(t, db, &model.RecipeCategory{}, "recipe_id = ? AND category_id = ?", recipe.ID, vegan.ID))
	assert.EqualValues(t, 1, countRows(t, db, &model.RecipeCategory{}, "recipe_id = ? AND category_id = ?", recipe.ID, dessert.ID))
}

func TestRecipeOwnership(t *testing.T) {
	db := setupDB(t)
	svc := newRecipeService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	intruder := seedUser(t, db, "intruder", false)
	recipe := seedRecipe(t, db, author, "Mine")

	_, err := svc.Update(ctx, intruder.ID, recipe.ID, RecipeInput{Title: "Stolen"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, intruder.ID, recipe.ID), ErrForbidden)

	_, err = svc.Update(ctx, author.ID, "missing", RecipeInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeDeleteCascades(t *testing.T) {
	db := setupDB(t)
	svc := newRecipeService(db)
	engagement := newEngagementService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	fan := seedUser(t, db, "fan", false)
	vegan := seedCategory(t, db, "vegan")
	recipe := seedRecipe(t, db, author, "Doomed")
	tagRecipe(t, db, recipe, vegan)

	_, err := engagement.ToggleFavourite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	_, err = engagement.AddComment(ctx, fan.ID, recipe.ID, "nice")
	require.NoError(t, err)
	require.NoError(t, engagement.Rate(ctx, fan.ID, recipe.ID, 4))

	require.NoError(t, svc.Delete(ctx, author.ID, recipe.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Recipe{}, "id = ?", recipe.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Favourite{}, "recipe_id = ?", recipe.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Comment{}, "recipe_id = ?", recipe.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.RecipeRating{}, "recipe_id = ?", recipe.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.RecipeCategory{}, "recipe_id = ?", recipe.ID))
}

func TestRecipeDetail(t *testing.T) {
	db := setupDB(t)
	svc := newRecipeService(db)
	engagement := newEngagementService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	viewer := seedUser(t, db, "viewer", false)
	recipe := seedRecipe(t, db, author, "Detailed")

	_, err := engagement.AddComment(ctx, viewer.ID, recipe.ID, "hello")
	require.NoError(t, err)
	require.NoError(t, engagement.Rate(ctx, viewer.ID, recipe.ID, 5))

	detail, err := svc.Detail(ctx, viewer.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Detailed", detail.Title)
	assert.Equal(t, "author", detail.AuthorUsername)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "viewer", detail.Comments[0].AuthorUsername)
	require.NotNil(t, detail.UserRating)
	assert.Equal(t, 5, *detail.UserRating)

	// opening the page recorded a view
	assert.EqualValues(t, 1, countRows(t, db, &model.RecipeView{}, "recipe_id = ? AND user_id = ?", recipe.ID, viewer.ID))

	// anonymous detail: no view, no rating stamp
	detail, err = svc.Detail(ctx, "", recipe.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.UserRating)
	assert.EqualValues(t, 1, countRows(t, db, &model.RecipeView{}, "recipe_id = ?", recipe.ID))

	_, err = svc.Detail(ctx, "", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
