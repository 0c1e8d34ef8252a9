package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/team-maroon/recipify/internal/api/middleware"
	"github.com/team-maroon/recipify/pkg/response"
)

// ListShoppingItems returns the caller's shopping list, unchecked first.
// @Summary Shopping list
// @Tags shopping
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/shopping-list [get]
func (h *Handler) ListShoppingItems(c *gin.Context) {
	items, err := h.shopping.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

type shoppingItemRequest struct {
	Name  string `json:"name" binding:"required"`
	Notes string `json:"notes"`
}

// AddShoppingItem adds a single item; duplicates by name are kept once.
// @Summary Add shopping item
// @Tags shopping
// @Accept json
// @Param request body shoppingItemRequest true "item"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/shopping-list [post]
func (h *Handler) AddShoppingItem(c *gin.Context) {
	var req shoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.shopping.AddItem(c.Request.Context(), middleware.UserID(c), req.Name, req.Notes)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, item)
}

// AddRecipeToShoppingList imports a recipe's ingredient lines as items.
// @Summary Add recipe ingredients to shopping list
// @Tags shopping
// @Param id path string true "recipe id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/shopping-list/recipes/{id} [post]
func (h *Handler) AddRecipeToShoppingList(c *gin.Context) {
	added, err := h.shopping.AddRecipe(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"added": added})
}

type checkItemRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// CheckShoppingItem marks an item checked or unchecked.
// @Summary Check shopping item
// @Tags shopping
// @Accept json
// @Param id path string true "item id"
// @Param request body checkItemRequest true "checked flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/shopping-list/{id} [patch]
func (h *Handler) CheckShoppingItem(c *gin.Context) {
	var req checkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.shopping.SetChecked(c.Request.Context(), middleware.UserID(c), c.Param("id"), *req.Checked); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteShoppingItem removes an item from the caller's list.
// @Summary Delete shopping item
// @Tags shopping
// @Param id path string true "item id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/shopping-list/{id} [delete]
func (h *Handler) DeleteShoppingItem(c *gin.Context) {
	if err := h.shopping.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}
