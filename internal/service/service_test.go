package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/pkg/database"
	"github.com/team-maroon/recipify/pkg/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	require.NoError(t, logger.Init("release"))
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, private bool) *model.User {
	t.Helper()
	u := &model.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		IsPrivate: private,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRecipe(t *testing.T, db *gorm.DB, author *model.User, title string) *model.Recipe {
	t.Helper()
	r := &model.Recipe{
		ID:          uuid.New().String(),
		AuthorID:    author.ID,
		Title:       title,
		Description: "test recipe",
		Ingredients: "- salt\n- pepper",
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedCategory(t *testing.T, db *gorm.DB, key string) *model.Category {
	t.Helper()
	c := &model.Category{Key: key, Label: key}
	require.NoError(t, db.Create(c).Error)
	return c
}

func tagRecipe(t *testing.T, db *gorm.DB, recipe *model.Recipe, cats ...*model.Category) {
	t.Helper()
	for _, c := range cats {
		link := &model.RecipeCategory{ID: uuid.New().String(), RecipeID: recipe.ID, CategoryID: c.ID}
		require.NoError(t, db.Create(link).Error)
	}
}

func countRows(t *testing.T, db *gorm.DB, m any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

func seedUsers(t *testing.T, db *gorm.DB, n int, prefix string) []*model.User {
	t.Helper()
	out := make([]*model.User, n)
	for i := range out {
		out[i] = seedUser(t, db, fmt.Sprintf("%s%02d", prefix, i), false)
	}
	return out
}
