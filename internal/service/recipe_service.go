package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

// RecipeInput is the create/update payload.
type RecipeInput struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"` // one per line
	Instructions string `json:"instructions"`
	CategoryIDs  []uint `json:"category_ids"`
}

// RecipeDetail is the single-recipe view: annotated recipe, its comments and
// the viewer's own rating.
type RecipeDetail struct {
	*repository.FeedItem
	Comments []*repository.CommentWithAuthor `json:"comments"`
}

// RecipeService owns recipe CRUD. Only the author may edit or delete; that
// is a hard ErrForbidden, unlike the silent notification-delete contract.
type RecipeService interface {
	Create(ctx context.Context, authorID string, in RecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, actorID, recipeID string, in RecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, actorID, recipeID string) error
	// Detail loads one annotated recipe with comments; records a view for
	// authenticated viewers and stamps their own rating.
	Detail(ctx context.Context, viewerID, recipeID string) (*RecipeDetail, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type recipeService struct {
	recipeRepo  repository.RecipeRepository
	commentRepo repository.CommentRepository
	feed        FeedService
	engagement  EngagementService
}

func NewRecipeService(recipeRepo repository.RecipeRepository, commentRepo repository.CommentRepository, feed FeedService, engagement EngagementService) RecipeService {
	return &recipeService{recipeRepo: recipeRepo, commentRepo: commentRepo, feed: feed, engagement: engagement}
}

func (s *recipeService) Create(ctx context.Context, authorID string, in RecipeInput) (*model.Recipe, error) {
	recipe := &model.Recipe{
		AuthorID:     authorID,
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}
	if err := s.recipeRepo.Create(ctx, recipe, in.CategoryIDs); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Update(ctx context.Context, actorID, recipeID string, in RecipeInput) (*model.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, actorID, recipeID)
	if err != nil {
		return nil, err
	}
	recipe.Title = in.Title
	recipe.Description = in.Description
	recipe.Ingredients = in.Ingredients
	recipe.Instructions = in.Instructions
	if err := s.recipeRepo.Update(ctx, recipe, in.CategoryIDs); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Delete(ctx context.Context, actorID, recipeID string) error {
	if _, err := s.ownedRecipe(ctx, actorID, recipeID); err != nil {
		return err
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

func (s *recipeService) Detail(ctx context.Context, viewerID, recipeID string) (*RecipeDetail, error) {
	items, err := s.recipeRepo.ListAnnotated(ctx, []repository.Scope{withRecipeID(recipeID)}, repository.SortNewest, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	item := items[0]

	comments, err := s.commentRepo.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		if err := s.engagement.RecordView(ctx, viewerID, recipeID); err != nil {
			return nil, err
		}
	}
	if err := s.feed.AttachUserRatings(ctx, viewerID, items); err != nil {
		return nil, err
	}
	cats, err := s.recipeRepo.CategoriesByRecipe(ctx, []string{recipeID})
	if err != nil {
		return nil, err
	}
	item.Categories = cats[recipeID]

	return &RecipeDetail{FeedItem: item, Comments: comments}, nil
}

func (s *recipeService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.recipeRepo.ListCategories(ctx)
}

func (s *recipeService) ownedRecipe(ctx context.Context, actorID, recipeID string) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.Get(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return recipe, nil
}

func withRecipeID(id string) repository.Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("recipes.id = ?", id) }
}
