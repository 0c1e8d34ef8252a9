package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

// EngagementService covers the social actions on recipes and comments:
// favourite/like toggles, comments, ratings and view tracking. It is the
// call site that owns the "never notify a user about their own action"
// guard, and it commits every action together with its fan-out.
type EngagementService interface {
	// ToggleFavourite returns whether the recipe is favourited afterwards.
	// Favouriting someone else's recipe notifies the author; un-favouriting
	// revokes exactly that notification.
	ToggleFavourite(ctx context.Context, userID, recipeID string) (bool, error)
	// ToggleLike is silent: likes never fan out.
	ToggleLike(ctx context.Context, userID, recipeID string) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error)
	// AddComment notifies the recipe author unless they wrote the comment.
	AddComment(ctx context.Context, userID, recipeID, body string) (*model.Comment, error)
	EditComment(ctx context.Context, userID, commentID, body string) error
	// Rate upserts the user's rating; a repeat write replaces the value.
	Rate(ctx context.Context, userID, recipeID string, rating int) error
	// RecordView notes that the user opened the recipe (explore input);
	// repeat views of the same recipe are collapsed.
	RecordView(ctx context.Context, userID, recipeID string) error
}

type engagementService struct {
	db          *gorm.DB
	ratingRepo  repository.RatingRepository
	commentRepo repository.CommentRepository
}

func NewEngagementService(db *gorm.DB, ratingRepo repository.RatingRepository, commentRepo repository.CommentRepository) EngagementService {
	return &engagementService{db: db, ratingRepo: ratingRepo, commentRepo: commentRepo}
}

func (s *engagementService) ToggleFavourite(ctx context.Context, userID, recipeID string) (bool, error) {
	favourited := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := getRecipeTx(tx, recipeID)
		if err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favourite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// un-favourite undoes the fan-out
			return revokeNotificationTx(tx, recipe.AuthorID, userID, model.NotificationFavourite, model.TargetRecipe, recipeID)
		}

		fav := &model.Favourite{ID: uuid.New().String(), UserID: userID, RecipeID: recipeID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
			return err
		}
		favourited = true
		if recipe.AuthorID == userID {
			return nil
		}
		return notifyTx(tx, recipe.AuthorID, userID, model.NotificationFavourite, model.TargetRecipe, recipeID)
	})
	return favourited, err
}

func (s *engagementService) ToggleLike(ctx context.Context, userID, recipeID string) (bool, error) {
	liked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getRecipeTx(tx, recipeID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.RecipeLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		like := &model.RecipeLike{ID: uuid.New().String(), UserID: userID, RecipeID: recipeID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
	})
	return liked, err
}

func (s *engagementService) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	liked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.Comment{}).Where("id = ?", commentID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return ErrNotFound
		}
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&model.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		like := &model.CommentLike{ID: uuid.New().String(), UserID: userID, CommentID: commentID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
	})
	return liked, err
}

func (s *engagementService) AddComment(ctx context.Context, userID, recipeID, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}
	comment := &model.Comment{ID: uuid.New().String(), RecipeID: recipeID, AuthorID: userID, Body: body}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := getRecipeTx(tx, recipeID)
		if err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if recipe.AuthorID == userID {
			return nil
		}
		return notifyTx(tx, recipe.AuthorID, userID, model.NotificationComment, model.TargetComment, comment.ID)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *engagementService) EditComment(ctx context.Context, userID, commentID, body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyBody
	}
	comment, err := s.commentRepo.Get(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}
	comment.Body = body
	return s.commentRepo.Update(ctx, comment)
}

func (s *engagementService) Rate(ctx context.Context, userID, recipeID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	return s.ratingRepo.Upsert(ctx, recipeID, userID, rating)
}

func (s *engagementService) RecordView(ctx context.Context, userID, recipeID string) error {
	view := &model.RecipeView{ID: uuid.New().String(), RecipeID: recipeID, UserID: userID}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(view).Error
}

func (s *engagementService) ensureRecipe(ctx context.Context, recipeID string) error {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", recipeID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

func getRecipeTx(tx *gorm.DB, recipeID string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := tx.Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}
