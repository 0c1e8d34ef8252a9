package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/repository"
)

// InboxSummary is the activity overview: recent comments left by others on
// the user's recipes, and the user's recipes that have collected likes.
type InboxSummary struct {
	NewComments  []*repository.CommentWithAuthor `json:"new_comments"`
	LikedRecipes []*repository.FeedItem          `json:"liked_recipes"`
}

type InboxService interface {
	Summary(ctx context.Context, userID string) (*InboxSummary, error)
}

type inboxService struct {
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
}

func NewInboxService(commentRepo repository.CommentRepository, recipeRepo repository.RecipeRepository) InboxService {
	return &inboxService{commentRepo: commentRepo, recipeRepo: recipeRepo}
}

func (s *inboxService) Summary(ctx context.Context, userID string) (*InboxSummary, error) {
	comments, err := s.commentRepo.ListOnRecipesOf(ctx, userID, 20)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipeRepo.ListAnnotated(ctx,
		[]repository.Scope{repository.AuthoredBy(userID), withAnyLikes()},
		repository.SortNewest, 0, 10)
	if err != nil {
		return nil, err
	}

	return &InboxSummary{NewComments: comments, LikedRecipes: recipes}, nil
}

func withAnyLikes() repository.Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id IN (SELECT recipe_id FROM recipe_likes)")
	}
}
