package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/team-maroon/recipify/internal/api/middleware"
	"github.com/team-maroon/recipify/pkg/response"
)

type signUpRequest struct {
	Username  string `json:"username" binding:"required,username"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
}

type logInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a user and returns a token.
// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param request body signUpRequest true "account details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.fail(c, err)
		return
	}
	token, err := middleware.IssueToken(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, gin.H{"token": token, "user_id": user.ID, "username": user.Username})
}

// LogIn verifies credentials and returns a token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body logInRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) LogIn(c *gin.Context) {
	var req logInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	token, err := middleware.IssueToken(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "user_id": user.ID, "username": user.Username})
}
