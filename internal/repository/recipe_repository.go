package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
)

// Scope is one composable feed predicate. Filters are order-independent and
// must all be applied before counting/pagination.
type Scope func(*gorm.DB) *gorm.DB

// FeedItem is a recipe annotated with the computed aggregates used for
// sorting and display. UserRating is stamped afterwards by the rating
// attachment pass and stays nil for viewers who have not rated the recipe;
// for anonymous viewers the attachment pass never runs.
type FeedItem struct {
	model.Recipe
	AuthorUsername string           `json:"author_username"`
	FavouriteTotal int64            `json:"favourite_total"`
	LikeTotal      int64            `json:"like_total"`
	RatingAvg      *float64         `json:"rating_avg"`
	RatingTotal    int64            `json:"rating_total"`
	CommentTotal   int64            `json:"comment_total"`
	ViewsTotal     int64            `json:"views_total"`
	UserRating     *int             `gorm:"-" json:"user_rating_value"`
	Categories     []model.Category `gorm:"-" json:"categories"`
}

// Named sort keys accepted by the list/dashboard/profile views.
const (
	SortNewest     = "newest"
	SortFavourites = "favourites"
	SortRating     = "rating"
	SortComments   = "comments"
	SortTitle      = "title"
	SortTrending   = "trending" // explore shelves only
)

// Orderings per sort key. Every key tie-breaks on created_at DESC then id so
// that pagination is deterministic across pages. NULLS LAST keeps unrated
// recipes below rated ones on both sqlite and postgres.
var feedOrderings = map[string]string{
	SortNewest:     "recipes.created_at DESC, recipes.id",
	SortFavourites: "favourite_total DESC, recipes.created_at DESC, recipes.id",
	SortRating:     "rating_avg DESC NULLS LAST, rating_total DESC, recipes.created_at DESC, recipes.id",
	SortComments:   "comment_total DESC, recipes.created_at DESC, recipes.id",
	SortTitle:      "recipes.title ASC, recipes.created_at DESC, recipes.id",
	SortTrending:   "views_total DESC, like_total DESC, rating_avg DESC NULLS LAST, recipes.created_at DESC, recipes.id",
}

// Ordering resolves a sort key, defaulting to newest for unknown keys.
func Ordering(sort string) string {
	if o, ok := feedOrderings[sort]; ok {
		return o
	}
	return feedOrderings[SortNewest]
}

const feedColumns = `recipes.*, users.username AS author_username,
	(SELECT COUNT(*) FROM favourites f WHERE f.recipe_id = recipes.id) AS favourite_total,
	(SELECT COUNT(*) FROM recipe_likes l WHERE l.recipe_id = recipes.id) AS like_total,
	(SELECT AVG(rr.rating) FROM recipe_ratings rr WHERE rr.recipe_id = recipes.id) AS rating_avg,
	(SELECT COUNT(*) FROM recipe_ratings rr WHERE rr.recipe_id = recipes.id) AS rating_total,
	(SELECT COUNT(*) FROM comments c WHERE c.recipe_id = recipes.id) AS comment_total,
	(SELECT COUNT(*) FROM recipe_views v WHERE v.recipe_id = recipes.id) AS views_total`

// WithQuery keeps recipes whose title, description or ingredients contain q,
// case-insensitively. Empty q is a no-op.
func WithQuery(q string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		q = strings.TrimSpace(q)
		if q == "" {
			return db
		}
		p := "%" + strings.ToLower(q) + "%"
		return db.Where("LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ? OR LOWER(recipes.ingredients) LIKE ?", p, p, p)
	}
}

// WithAnyCategory keeps recipes tagged with at least one of the given
// categories (OR semantics). Membership is tested with a subquery so the
// many-valued join cannot fan the result set out into duplicates.
func WithAnyCategory(ids []uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db
		}
		return db.Where("recipes.id IN (SELECT recipe_id FROM recipe_categories WHERE category_id IN ?)", ids)
	}
}

// WithoutCategories drops recipes tagged with any of the given categories.
// Exclusion wins over inclusion for a recipe matching both sets.
func WithoutCategories(ids []uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db
		}
		return db.Where("recipes.id NOT IN (SELECT recipe_id FROM recipe_categories WHERE category_id IN ?)", ids)
	}
}

// AuthoredBy restricts to recipes by the given authors.
func AuthoredBy(authorIDs ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.author_id IN ?", authorIDs)
	}
}

// FavouritedBy restricts to recipes in a user's favourites.
func FavouritedBy(userID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id IN (SELECT recipe_id FROM favourites WHERE user_id = ?)", userID)
	}
}

// LikedBy restricts to recipes a user has liked.
func LikedBy(userID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id IN (SELECT recipe_id FROM recipe_likes WHERE user_id = ?)", userID)
	}
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe, categoryIDs []uint) error
	Get(ctx context.Context, id string) (*model.Recipe, error)
	Update(ctx context.Context, recipe *model.Recipe, categoryIDs []uint) error
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context, scopes []Scope) (int64, error)
	// ListAnnotated runs the annotated feed query. limit <= 0 disables
	// pagination (used by the following feed, which shares the filtered set).
	ListAnnotated(ctx context.Context, scopes []Scope, sort string, offset, limit int) ([]*FeedItem, error)

	CategoriesByRecipe(ctx context.Context, recipeIDs []string) (map[string][]model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepository{db: db} }

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe, categoryIDs []uint) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return replaceRecipeCategories(tx, recipe.ID, categoryIDs)
	})
}

func (r *recipeRepository) Get(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		return replaceRecipeCategories(tx, recipe.ID, categoryIDs)
	})
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.RecipeCategory{}, &model.Favourite{}, &model.RecipeLike{}, &model.RecipeRating{}, &model.RecipeView{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Recipe{}).Error
	})
}

func replaceRecipeCategories(tx *gorm.DB, recipeID string, categoryIDs []uint) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeCategory{}).Error; err != nil {
		return err
	}
	for _, cid := range categoryIDs {
		rc := &model.RecipeCategory{ID: uuid.New().String(), RecipeID: recipeID, CategoryID: cid}
		if err := tx.Create(rc).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) base(ctx context.Context, scopes []Scope) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Joins("JOIN users ON users.id = recipes.author_id")
	for _, s := range scopes {
		q = s(q)
	}
	return q
}

func (r *recipeRepository) Count(ctx context.Context, scopes []Scope) (int64, error) {
	var cnt int64
	err := r.base(ctx, scopes).Distinct("recipes.id").Count(&cnt).Error
	return cnt, err
}

func (r *recipeRepository) ListAnnotated(ctx context.Context, scopes []Scope, sort string, offset, limit int) ([]*FeedItem, error) {
	q := r.base(ctx, scopes).Select(feedColumns).Order(Ordering(sort))
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var items []*FeedItem
	if err := q.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CategoriesByRecipe loads categories for a batch of recipes in one query.
func (r *recipeRepository) CategoriesByRecipe(ctx context.Context, recipeIDs []string) (map[string][]model.Category, error) {
	out := make(map[string][]model.Category, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		model.Category
		RecipeID string
	}
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.*, rc.recipe_id").
		Joins("JOIN recipe_categories rc ON rc.category_id = categories.id").
		Where("rc.recipe_id IN ?", recipeIDs).
		Order("categories.label").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], row.Category)
	}
	return out, nil
}

func (r *recipeRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).Order("label").Find(&cats).Error
	return cats, err
}
