package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/team-maroon/recipify/internal/api/middleware"
	"github.com/team-maroon/recipify/internal/service"
	"github.com/team-maroon/recipify/pkg/response"
)

// ListRecipes is the main feed: filtered, annotated, sorted, paginated, plus
// the following tab computed from the same filtered set.
// @Summary Recipe feed
// @Tags recipes
// @Param q query string false "text filter"
// @Param include query []int false "category ids to include (any match)"
// @Param exclude query []int false "category ids to exclude"
// @Param sort query string false "newest|favourites|rating|comments|title"
// @Param page query int false "page" default(1)
// @Success 200 {object} response.Response
// @Router /api/v1/recipes [get]
func (h *Handler) ListRecipes(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID := middleware.UserID(c)
	params := feedParams(c)

	page, err := h.feed.Build(ctx, nil, viewerID, params)
	if err != nil {
		h.fail(c, err)
		return
	}
	following, err := h.feed.FollowingFeed(ctx, viewerID, params)
	if err != nil {
		h.fail(c, err)
		return
	}
	cats, err := h.recipes.Categories(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"feed":       page,
		"following":  following,
		"categories": cats,
	})
}

// GetRecipe returns one annotated recipe with comments and the viewer's own
// rating; records a view for authenticated viewers.
// @Summary Recipe detail
// @Tags recipes
// @Param id path string true "recipe id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{id} [get]
func (h *Handler) GetRecipe(c *gin.Context) {
	detail, err := h.recipes.Detail(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, detail)
}

// CreateRecipe creates a recipe owned by the caller.
// @Summary Create recipe
// @Tags recipes
// @Accept json
// @Param request body service.RecipeInput true "recipe"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/recipes [post]
func (h *Handler) CreateRecipe(c *gin.Context) {
	var in service.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	recipe, err := h.recipes.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, recipe)
}

// UpdateRecipe edits a recipe; only the author may.
// @Summary Update recipe
// @Tags recipes
// @Accept json
// @Param id path string true "recipe id"
// @Param request body service.RecipeInput true "recipe"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{id} [put]
func (h *Handler) UpdateRecipe(c *gin.Context) {
	var in service.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, recipe)
}

// DeleteRecipe removes a recipe; only the author may.
// @Summary Delete recipe
// @Tags recipes
// @Param id path string true "recipe id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{id} [delete]
func (h *Handler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleFavourite favourites/un-favourites a recipe for the caller.
// @Summary Toggle favourite
// @Tags recipes
// @Param id path string true "recipe id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{id}/favourite [post]
func (h *Handler) ToggleFavourite(c *gin.Context) {
	favourited, err := h.engagement.ToggleFavourite(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"is_favourited": favourited})
}

// ToggleLike likes/unlikes a recipe for the caller.
// @Summary Toggle like
// @Tags recipes
// @Param id path string true "recipe id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	liked, err := h.engagement.ToggleLike(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"is_liked": liked})
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment comments on a recipe and notifies its author.
// @Summary Add comment
// @Tags recipes
// @Accept json
// @Param id path string true "recipe id"
// @Param request body commentRequest true "comment"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.engagement.AddComment(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, comment)
}

// EditComment edits the caller's own comment.
// @Summary Edit comment
// @Tags recipes
// @Accept json
// @Param id path string true "comment id"
// @Param request body commentRequest true "comment"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/comments/{id} [put]
func (h *Handler) EditComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.engagement.EditComment(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Body); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleCommentLike likes/unlikes a comment.
// @Summary Toggle comment like
// @Tags recipes
// @Param id path string true "comment id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{id}/like [post]
func (h *Handler) ToggleCommentLike(c *gin.Context) {
	liked, err := h.engagement.ToggleCommentLike(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"is_liked": liked})
}

type rateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RateRecipe saves the caller's rating; a repeat rating replaces the value.
// @Summary Rate recipe
// @Tags recipes
// @Accept json
// @Param id path string true "recipe id"
// @Param request body rateRequest true "rating 1-5"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/recipes/{id}/rate [post]
func (h *Handler) RateRecipe(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.engagement.Rate(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Rating); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Explore returns the trending/new/for-you shelves.
// @Summary Explore shelves
// @Tags recipes
// @Success 200 {object} response.Response
// @Router /api/v1/explore [get]
func (h *Handler) Explore(c *gin.Context) {
	shelves, err := h.explore.Shelves(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, shelves)
}

// ListCategories returns the flat category set.
// @Summary List categories
// @Tags recipes
// @Success 200 {object} response.Response
// @Router /api/v1/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.recipes.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"categories": cats})
}
