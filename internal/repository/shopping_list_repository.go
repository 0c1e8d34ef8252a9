package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/team-maroon/recipify/internal/model"
)

type ShoppingListRepository interface {
	// Add inserts an item if the user does not already have one with the
	// same name. Returns true when a row was inserted.
	Add(ctx context.Context, item *model.ShoppingListItem) (bool, error)
	List(ctx context.Context, userID string) ([]*model.ShoppingListItem, error)
	SetChecked(ctx context.Context, id, userID string, checked bool) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type shoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

func (r *shoppingListRepository) Add(ctx context.Context, item *model.ShoppingListItem) (bool, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *shoppingListRepository) List(ctx context.Context, userID string) ([]*model.ShoppingListItem, error) {
	var items []*model.ShoppingListItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_checked, name").
		Find(&items).Error
	return items, err
}

func (r *shoppingListRepository) SetChecked(ctx context.Context, id, userID string, checked bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ShoppingListItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_checked", checked)
	return res.RowsAffected > 0, res.Error
}

func (r *shoppingListRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ShoppingListItem{})
	return res.RowsAffected > 0, res.Error
}
