package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/repository"
)

// FeedPageSize is the fixed page size for every recipe list view.
const FeedPageSize = 10

// FeedParams is the query-parameter bag for the list/dashboard/profile
// views. Zero values mean "no filter".
type FeedParams struct {
	Query   string
	Include []uint
	Exclude []uint
	Sort    string
	Page    int
}

// Filters returns the composable predicate list for these params. The
// predicates are independent; their application order does not change the
// result, only the set membership does.
func (p FeedParams) Filters() []repository.Scope {
	return []repository.Scope{
		repository.WithQuery(p.Query),
		repository.WithAnyCategory(p.Include),
		repository.WithoutCategories(p.Exclude),
	}
}

// FeedPage is one page of the filtered, annotated, deduplicated feed.
type FeedPage struct {
	Items      []*repository.FeedItem `json:"items"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"total_pages"`
}

// FeedService composes the filter -> annotate -> sort -> paginate pipeline
// and stamps each page with the viewer's own ratings.
type FeedService interface {
	// Build runs the pipeline over the base set selected by scope (nil means
	// all recipes) with the params' filters applied on top. Out-of-range
	// pages clamp to the nearest valid page.
	Build(ctx context.Context, scope []repository.Scope, viewerID string, params FeedParams) (*FeedPage, error)
	// FollowingFeed is the same filtered set restricted to authors the
	// viewer follows, with the same sort. Not paginated.
	FollowingFeed(ctx context.Context, viewerID string, params FeedParams) ([]*repository.FeedItem, error)
	// AttachUserRatings stamps each item with the viewer's own rating in a
	// single batched lookup. Anonymous viewers get no lookup and no stamp.
	AttachUserRatings(ctx context.Context, viewerID string, items []*repository.FeedItem) error
}

type feedService struct {
	db         *gorm.DB
	recipeRepo repository.RecipeRepository
	ratingRepo repository.RatingRepository
	followRepo repository.FollowRepository
}

func NewFeedService(db *gorm.DB, recipeRepo repository.RecipeRepository, ratingRepo repository.RatingRepository, followRepo repository.FollowRepository) FeedService {
	return &feedService{db: db, recipeRepo: recipeRepo, ratingRepo: ratingRepo, followRepo: followRepo}
}

func (s *feedService) Build(ctx context.Context, scope []repository.Scope, viewerID string, params FeedParams) (*FeedPage, error) {
	scopes := append(append([]repository.Scope{}, scope...), params.Filters()...)

	total, err := s.recipeRepo.Count(ctx, scopes)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + FeedPageSize - 1) / FeedPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	items, err := s.recipeRepo.ListAnnotated(ctx, scopes, params.Sort, (page-1)*FeedPageSize, FeedPageSize)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, viewerID, items); err != nil {
		return nil, err
	}

	return &FeedPage{Items: items, Page: page, PageSize: FeedPageSize, Total: total, TotalPages: totalPages}, nil
}

func (s *feedService) FollowingFeed(ctx context.Context, viewerID string, params FeedParams) ([]*repository.FeedItem, error) {
	if viewerID == "" {
		return nil, nil
	}
	followingIDs, err := s.followRepo.ListFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(followingIDs) == 0 {
		return []*repository.FeedItem{}, nil
	}

	scopes := append(params.Filters(), repository.AuthoredBy(followingIDs...))
	items, err := s.recipeRepo.ListAnnotated(ctx, scopes, params.Sort, 0, 0)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, viewerID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *feedService) AttachUserRatings(ctx context.Context, viewerID string, items []*repository.FeedItem) error {
	if viewerID == "" || len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	ratings, err := s.ratingRepo.MapForUser(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for _, item := range items {
		if r, ok := ratings[item.ID]; ok {
			v := r
			item.UserRating = &v
		}
	}
	return nil
}

// decorate attaches categories and own ratings to a materialized item batch.
func (s *feedService) decorate(ctx context.Context, viewerID string, items []*repository.FeedItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	cats, err := s.recipeRepo.CategoriesByRecipe(ctx, ids)
	if err != nil {
		return err
	}
	for _, item := range items {
		item.Categories = cats[item.ID]
	}
	return s.AttachUserRatings(ctx, viewerID, items)
}
