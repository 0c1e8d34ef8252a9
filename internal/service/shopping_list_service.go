package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

// ShoppingListService manages a user's shopping list, including importing a
// recipe's ingredient lines. Items are unique per (user, name) so importing
// the same recipe twice adds nothing.
type ShoppingListService interface {
	// AddRecipe imports each non-empty ingredient line; returns how many
	// lines were newly added.
	AddRecipe(ctx context.Context, userID, recipeID string) (int, error)
	AddItem(ctx context.Context, userID, name, notes string) (*model.ShoppingListItem, error)
	List(ctx context.Context, userID string) ([]*model.ShoppingListItem, error)
	SetChecked(ctx context.Context, userID, itemID string, checked bool) error
	Delete(ctx context.Context, userID, itemID string) error
}

type shoppingListService struct {
	repo       repository.ShoppingListRepository
	recipeRepo repository.RecipeRepository
}

func NewShoppingListService(repo repository.ShoppingListRepository, recipeRepo repository.RecipeRepository) ShoppingListService {
	return &shoppingListService{repo: repo, recipeRepo: recipeRepo}
}

func (s *shoppingListService) AddRecipe(ctx context.Context, userID, recipeID string) (int, error) {
	recipe, err := s.recipeRepo.Get(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	added := 0
	for _, line := range ingredientLines(recipe.Ingredients) {
		created, err := s.repo.Add(ctx, &model.ShoppingListItem{
			UserID:         userID,
			SourceRecipeID: recipe.ID,
			Name:           line,
		})
		if err != nil {
			return added, err
		}
		if created {
			added++
		}
	}
	return added, nil
}

func (s *shoppingListService) AddItem(ctx context.Context, userID, name, notes string) (*model.ShoppingListItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyBody
	}
	item := &model.ShoppingListItem{UserID: userID, Name: name, Notes: notes}
	if _, err := s.repo.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) List(ctx context.Context, userID string) ([]*model.ShoppingListItem, error) {
	return s.repo.List(ctx, userID)
}

func (s *shoppingListService) SetChecked(ctx context.Context, userID, itemID string, checked bool) error {
	ok, err := s.repo.SetChecked(ctx, itemID, userID, checked)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *shoppingListService) Delete(ctx context.Context, userID, itemID string) error {
	ok, err := s.repo.Delete(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ingredientLines splits the ingredients text into cleaned, non-empty lines.
func ingredientLines(ingredients string) []string {
	var out []string
	for _, line := range strings.Split(ingredients, "\n") {
		cleaned := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•"))
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
