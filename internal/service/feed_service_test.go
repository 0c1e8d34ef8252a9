package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

func newFeedService(db *gorm.DB) FeedService {
	return NewFeedService(
		db,
		repository.NewRecipeRepository(db),
		repository.NewRatingRepository(db),
		repository.NewFollowRepository(db),
	)
}

func feedTitles(items []*repository.FeedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestFeedCategoryFilters(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	vegan := seedCategory(t, db, "vegan")
	dinner := seedCategory(t, db, "dinner")
	spicy := seedCategory(t, db, "spicy")

	// tagged with two included categories; must still appear exactly once
	both := seedRecipe(t, db, author, "Chickpea Curry")
	tagRecipe(t, db, both, vegan, dinner)
	veganOnly := seedRecipe(t, db, author, "Green Bowl")
	tagRecipe(t, db, veganOnly, vegan)
	spicyDinner := seedRecipe(t, db, author, "Fiery Noodles")
	tagRecipe(t, db, spicyDinner, dinner, spicy)
	untagged := seedRecipe(t, db, author, "Plain Toast")
	_ = untagged

	page, err := svc.Build(ctx, nil, "", FeedParams{Include: []uint{vegan.ID, dinner.ID}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.ElementsMatch(t, []string{"Chickpea Curry", "Green Bowl", "Fiery Noodles"}, feedTitles(page.Items))

	// exclusion wins over inclusion for recipes matching both sets
	page, err = svc.Build(ctx, nil, "", FeedParams{Include: []uint{vegan.ID, dinner.ID}, Exclude: []uint{spicy.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Chickpea Curry", "Green Bowl"}, feedTitles(page.Items))

	// no filters returns everything
	page, err = svc.Build(ctx, nil, "", FeedParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
}

func TestFeedTextQuery(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	rich := &model.Recipe{ID: "r-lemon", AuthorID: author.ID, Title: "Citrus Pasta", Description: "bright", Ingredients: "- lemon zest\n- parmesan"}
	require.NoError(t, db.Create(rich).Error)
	seedRecipe(t, db, author, "Miso Soup")

	// matches title, description and ingredients, case-insensitively
	page, err := svc.Build(ctx, nil, "", FeedParams{Query: "LEMON"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, "Citrus Pasta", page.Items[0].Title)

	page, err = svc.Build(ctx, nil, "", FeedParams{Query: "nothing matches this"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestFeedRatingSortPutsUnratedLast(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	raters := seedUsers(t, db, 2, "rater")

	high := seedRecipe(t, db, author, "High")
	mid := seedRecipe(t, db, author, "Mid")
	unrated := seedRecipe(t, db, author, "Unrated")
	_ = unrated

	rate := func(r *model.Recipe, u *model.User, v int) {
		require.NoError(t, db.Create(&model.RecipeRating{
			ID: r.ID + "-" + u.ID, RecipeID: r.ID, UserID: u.ID, Rating: v,
		}).Error)
	}
	rate(high, raters[0], 4)
	rate(high, raters[1], 5) // avg 4.5
	rate(mid, raters[0], 3)  // avg 3.0

	page, err := svc.Build(ctx, nil, "", FeedParams{Sort: repository.SortRating})
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Mid", "Unrated"}, feedTitles(page.Items))
	require.NotNil(t, page.Items[0].RatingAvg)
	assert.InDelta(t, 4.5, *page.Items[0].RatingAvg, 0.001)
	assert.Nil(t, page.Items[2].RatingAvg)
	assert.EqualValues(t, 2, page.Items[0].RatingTotal)
}

func TestFeedNewestSortAndAnnotations(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	fan := seedUser(t, db, "fan", false)

	old := &model.Recipe{ID: "r-old", AuthorID: author.ID, Title: "Old", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(old).Error)
	fresh := &model.Recipe{ID: "r-new", AuthorID: author.ID, Title: "Fresh", CreatedAt: time.Now()}
	require.NoError(t, db.Create(fresh).Error)

	require.NoError(t, db.Create(&model.Favourite{ID: "f1", UserID: fan.ID, RecipeID: old.ID}).Error)
	require.NoError(t, db.Create(&model.Comment{ID: "c1", RecipeID: old.ID, AuthorID: fan.ID, Body: "yum"}).Error)

	page, err := svc.Build(ctx, nil, "", FeedParams{Sort: repository.SortNewest})
	require.NoError(t, err)
	require.Equal(t, []string{"Fresh", "Old"}, feedTitles(page.Items))

	oldItem := page.Items[1]
	assert.Equal(t, "author", oldItem.AuthorUsername)
	assert.EqualValues(t, 1, oldItem.FavouriteTotal)
	assert.EqualValues(t, 1, oldItem.CommentTotal)
	assert.EqualValues(t, 0, oldItem.LikeTotal)
}

func TestFeedPaginationClamps(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	for i := 0; i < 23; i++ {
		r := &model.Recipe{
			ID:        string(rune('a'+i)) + "-recipe",
			AuthorID:  author.ID,
			Title:     "Recipe",
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(r).Error)
	}

	page, err := svc.Build(ctx, nil, "", FeedParams{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, FeedPageSize)
	assert.EqualValues(t, 23, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	// out-of-range pages clamp instead of erroring
	page, err = svc.Build(ctx, nil, "", FeedParams{Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Items, 3)

	page, err = svc.Build(ctx, nil, "", FeedParams{Page: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}

func TestAttachUserRatings(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	viewer := seedUser(t, db, "viewer", false)
	other := seedUser(t, db, "other", false)

	rated := seedRecipe(t, db, author, "Rated")
	unrated := seedRecipe(t, db, author, "Unrated")
	require.NoError(t, db.Create(&model.RecipeRating{ID: "rr1", RecipeID: rated.ID, UserID: viewer.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&model.RecipeRating{ID: "rr2", RecipeID: unrated.ID, UserID: other.ID, Rating: 2}).Error)

	page, err := svc.Build(ctx, nil, viewer.ID, FeedParams{})
	require.NoError(t, err)

	byTitle := map[string]*repository.FeedItem{}
	for _, it := range page.Items {
		byTitle[it.Title] = it
	}
	require.NotNil(t, byTitle["Rated"].UserRating)
	assert.Equal(t, 4, *byTitle["Rated"].UserRating)
	// another user's rating must not leak onto the viewer's stamp
	assert.Nil(t, byTitle["Unrated"].UserRating)
}

func TestAttachUserRatingsAnonymousSkipsLookup(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	seedRecipe(t, db, author, "Public")

	page, err := svc.Build(ctx, nil, "", FeedParams{})
	require.NoError(t, err)
	for _, it := range page.Items {
		assert.Nil(t, it.UserRating)
	}

	// the batched lookup itself tolerates an empty item slice
	require.NoError(t, svc.AttachUserRatings(ctx, author.ID, nil))
}

func TestFollowingFeed(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	viewer := seedUser(t, db, "viewer", false)
	followed := seedUser(t, db, "followed", false)
	stranger := seedUser(t, db, "stranger", false)

	require.NoError(t, db.Create(&model.Follow{ID: "e1", FollowerID: viewer.ID, FolloweeID: followed.ID}).Error)

	seedRecipe(t, db, followed, "From Followed")
	seedRecipe(t, db, stranger, "From Stranger")

	items, err := svc.FollowingFeed(ctx, viewer.ID, FeedParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"From Followed"}, feedTitles(items))

	// anonymous viewers have no following tab
	items, err = svc.FollowingFeed(ctx, "", FeedParams{})
	require.NoError(t, err)
	assert.Nil(t, items)

	// a viewer who follows nobody gets an empty slice, not everything
	items, err = svc.FollowingFeed(ctx, stranger.ID, FeedParams{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFeedCategoriesDecorated(t *testing.T) {
	db := setupDB(t)
	svc := newFeedService(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	vegan := seedCategory(t, db, "vegan")
	quick := seedCategory(t, db, "quick")
	r := seedRecipe(t, db, author, "Tagged")
	tagRecipe(t, db, r, vegan, quick)

	page, err := svc.Build(ctx, nil, "", FeedParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	keys := make([]string, 0, 2)
	for _, c := range page.Items[0].Categories {
		keys = append(keys, c.Key)
	}
	assert.ElementsMatch(t, []string{"vegan", "quick"}, keys)
}

// queryCounter counts executed statements via the gorm logger hook.
type queryCounter struct{ queries int }

func (c *queryCounter) LogMode(gormlogger.LogLevel) gormlogger.Interface { return c }
func (c *queryCounter) Info(context.Context, string, ...interface{})     {}
func (c *queryCounter) Warn(context.Context, string, ...interface{})     {}
func (c *queryCounter) Error(context.Context, string, ...interface{})    {}
func (c *queryCounter) Trace(context.Context, time.Time, func() (string, int64), error) {
	c.queries++
}

func TestAttachUserRatingsIsOneQueryPerBatch(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	author := seedUser(t, db, "author", false)
	viewer := seedUser(t, db, "viewer", false)
	items := make([]*repository.FeedItem, 5)
	for i := range items {
		r := seedRecipe(t, db, author, "Batch")
		items[i] = &repository.FeedItem{Recipe: *r}
	}
	require.NoError(t, db.Create(&model.RecipeRating{ID: "rr", RecipeID: items[0].ID, UserID: viewer.ID, Rating: 2}).Error)

	counter := &queryCounter{}
	svc := newFeedService(db.Session(&gorm.Session{Logger: counter}))

	require.NoError(t, svc.AttachUserRatings(ctx, viewer.ID, items))
	assert.Equal(t, 1, counter.queries)

	// anonymous viewers cost zero queries
	counter.queries = 0
	require.NoError(t, svc.AttachUserRatings(ctx, "", items))
	assert.Zero(t, counter.queries)
}
