package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/repository"
)

const shelfSize = 6

// ExploreShelves are the three ranked strips on the explore page.
type ExploreShelves struct {
	Trending []*repository.FeedItem `json:"trending"`
	New      []*repository.FeedItem `json:"new"`
	ForYou   []*repository.FeedItem `json:"for_you"`
}

// ExploreService ranks recipes for the explore page: trending by
// view/like/rating signals, newest, and a for-you strip keyed on the top
// categories of the viewer's favourites, likes and views.
type ExploreService interface {
	Shelves(ctx context.Context, viewerID string) (*ExploreShelves, error)
}

type exploreService struct {
	db         *gorm.DB
	recipeRepo repository.RecipeRepository
	feed       FeedService
}

func NewExploreService(db *gorm.DB, recipeRepo repository.RecipeRepository, feed FeedService) ExploreService {
	return &exploreService{db: db, recipeRepo: recipeRepo, feed: feed}
}

func (s *exploreService) Shelves(ctx context.Context, viewerID string) (*ExploreShelves, error) {
	trending, err := s.recipeRepo.ListAnnotated(ctx, nil, repository.SortTrending, 0, shelfSize)
	if err != nil {
		return nil, err
	}
	newest, err := s.recipeRepo.ListAnnotated(ctx, nil, repository.SortNewest, 0, shelfSize)
	if err != nil {
		return nil, err
	}

	forYou := trending
	if viewerID != "" {
		catIDs, err := s.topCategoryIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if len(catIDs) > 0 {
			personal, err := s.recipeRepo.ListAnnotated(ctx,
				[]repository.Scope{repository.WithAnyCategory(catIDs)},
				repository.SortTrending, 0, shelfSize)
			if err != nil {
				return nil, err
			}
			if len(personal) > 0 {
				forYou = personal
			}
		}
	}

	shelves := &ExploreShelves{Trending: trending, New: newest, ForYou: forYou}
	for _, items := range [][]*repository.FeedItem{shelves.Trending, shelves.New, shelves.ForYou} {
		if err := s.feed.AttachUserRatings(ctx, viewerID, items); err != nil {
			return nil, err
		}
	}
	return shelves, nil
}

// topCategoryIDs returns up to three category ids ranked by how often they
// appear across the viewer's favourites, likes and views.
func (s *exploreService) topCategoryIDs(ctx context.Context, viewerID string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Raw(`
		SELECT category_id FROM recipe_categories
		WHERE recipe_id IN (
			SELECT recipe_id FROM favourites WHERE user_id = @user
			UNION ALL
			SELECT recipe_id FROM recipe_likes WHERE user_id = @user
			UNION ALL
			SELECT recipe_id FROM recipe_views WHERE user_id = @user
		)
		GROUP BY category_id
		ORDER BY COUNT(*) DESC
		LIMIT 3
	`, map[string]interface{}{"user": viewerID}).Scan(&ids).Error
	return ids, err
}
