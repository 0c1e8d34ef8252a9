package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/team-maroon/recipify/internal/model"
)

type RatingRepository interface {
	// Upsert writes the user's rating for a recipe; a second write for the
	// same (recipe, user) replaces the value instead of adding a row.
	Upsert(ctx context.Context, recipeID, userID string, rating int) error
	Get(ctx context.Context, recipeID, userID string) (*model.RecipeRating, error)
	// MapForUser returns recipe_id -> rating for the given user restricted to
	// the given recipes, in a single query.
	MapForUser(ctx context.Context, userID string, recipeIDs []string) (map[string]int, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository { return &ratingRepository{db: db} }

func (r *ratingRepository) Upsert(ctx context.Context, recipeID, userID string, rating int) error {
	row := &model.RecipeRating{ID: uuid.New().String(), RecipeID: recipeID, UserID: userID, Rating: rating}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(row).Error
}

func (r *ratingRepository) Get(ctx context.Context, recipeID, userID string) (*model.RecipeRating, error) {
	var row model.RecipeRating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ratingRepository) MapForUser(ctx context.Context, userID string, recipeIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	var rows []model.RecipeRating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RecipeID] = row.Rating
	}
	return out, nil
}
