package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/team-maroon/recipify/internal/api/middleware"
	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
	"github.com/team-maroon/recipify/internal/service"
	"github.com/team-maroon/recipify/pkg/response"
)

const (
	sectionPosted     = "posted_recipes"
	sectionFavourites = "favourite_recipes"
	sectionLiked      = "liked_recipes"
	sectionShopping   = "shopping_list"
)

type profileUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	IsPrivate bool   `json:"is_private"`
	Gravatar  string `json:"gravatar"`
}

func newProfileUser(u *model.User) profileUser {
	return profileUser{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName(),
		Bio:       u.Bio,
		IsPrivate: u.IsPrivate,
		Gravatar:  u.Gravatar(120),
	}
}

// Profile renders a user's profile page: follow status, counts and the
// requested recipe section. A gated private profile returns the follow
// descriptor with follow_request_required set instead of any recipes.
// @Summary Profile page
// @Tags users
// @Param username path string true "username"
// @Param section query string false "posted_recipes|favourite_recipes|liked_recipes|shopping_list"
// @Param q query string false "text filter"
// @Param include query []int false "category ids to include"
// @Param exclude query []int false "category ids to exclude"
// @Param sort query string false "sort key"
// @Param page query int false "page"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username} [get]
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID := middleware.UserID(c)

	target, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	status, err := h.relations.Status(ctx, viewerID, target)
	if err != nil {
		h.fail(c, err)
		return
	}
	followers, following, err := h.relations.Counts(ctx, target.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := gin.H{
		"profile_user":    newProfileUser(target),
		"follow_status":   status,
		"followers_count": followers,
		"following_count": following,
	}
	if !status.CanViewProfile() {
		// gated, not an error: the caller gets the descriptor so the UI can
		// offer "request to follow" / "request pending"
		response.Success(c, out)
		return
	}

	section := c.DefaultQuery("section", sectionPosted)
	if section == sectionShopping {
		if !status.IsMe {
			section = sectionPosted
		} else {
			items, err := h.shopping.List(ctx, target.ID)
			if err != nil {
				h.fail(c, err)
				return
			}
			out["section"] = sectionShopping
			out["shopping_list_items"] = items
			response.Success(c, out)
			return
		}
	}

	var scope []repository.Scope
	switch section {
	case sectionFavourites:
		scope = []repository.Scope{repository.FavouritedBy(target.ID)}
	case sectionLiked:
		scope = []repository.Scope{repository.LikedBy(target.ID)}
	default:
		section = sectionPosted
		scope = []repository.Scope{repository.AuthoredBy(target.ID)}
	}

	page, err := h.feed.Build(ctx, scope, viewerID, feedParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	out["section"] = section
	out["recipes"] = page
	response.Success(c, out)
}

// ToggleFollow follows, unfollows, requests or cancels a request depending
// on the current state and the target's privacy.
// @Summary Toggle follow
// @Tags users
// @Param username path string true "username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/follow [post]
func (h *Handler) ToggleFollow(c *gin.Context) {
	ctx := c.Request.Context()
	target, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	state, err := h.relations.Toggle(ctx, middleware.UserID(c), target.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"state": state})
}

// AcceptFollowRequest approves a pending request directed at the caller.
// @Summary Accept follow request
// @Tags users
// @Param username path string true "requester username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/follow/accept [post]
func (h *Handler) AcceptFollowRequest(c *gin.Context) {
	h.resolveFollowRequest(c, true)
}

// DeclineFollowRequest refuses a pending request directed at the caller.
// @Summary Decline follow request
// @Tags users
// @Param username path string true "requester username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/follow/decline [post]
func (h *Handler) DeclineFollowRequest(c *gin.Context) {
	h.resolveFollowRequest(c, false)
}

func (h *Handler) resolveFollowRequest(c *gin.Context, accept bool) {
	ctx := c.Request.Context()
	requester, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if accept {
		err = h.relations.Accept(ctx, requester.ID, middleware.UserID(c))
	} else {
		err = h.relations.Decline(ctx, requester.ID, middleware.UserID(c))
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// ListFollowers lists a user's followers. Private profiles hide the list
// from non-followers.
// @Summary Followers list
// @Tags users
// @Param username path string true "username"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/users/{username}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	h.followList(c, "followers")
}

// ListFollowing lists who a user follows, with the same privacy gate.
// @Summary Following list
// @Tags users
// @Param username path string true "username"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/users/{username}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	h.followList(c, "following")
}

func (h *Handler) followList(c *gin.Context, relation string) {
	ctx := c.Request.Context()
	target, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	status, err := h.relations.Status(ctx, middleware.UserID(c), target)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !status.CanViewProfile() {
		response.Forbidden(c, "this account is private")
		return
	}

	var users []*model.User
	if relation == "followers" {
		users, err = h.relations.Followers(ctx, target.ID)
	} else {
		users, err = h.relations.Following(ctx, target.ID)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]profileUser, len(users))
	for i, u := range users {
		out[i] = newProfileUser(u)
	}
	response.Success(c, gin.H{"relation": relation, "users": out})
}

// ListFollowRequests lists pending requests aimed at the caller.
// @Summary Pending follow requests
// @Tags users
// @Success 200 {object} response.Response
// @Router /api/v1/me/follow-requests [get]
func (h *Handler) ListFollowRequests(c *gin.Context) {
	reqs, err := h.relations.ListRequests(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"requests": reqs})
}

// UpdateProfile edits the caller's profile. Flipping private to public
// auto-approves all pending follow requests.
// @Summary Update profile
// @Tags users
// @Accept json
// @Param request body service.ProfileInput true "profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/me/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	resolved, err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"approved_requests": resolved})
}

// SearchUsers matches usernames by substring ("@" prefix allowed).
// @Summary Search users
// @Tags users
// @Param q query string true "username query"
// @Success 200 {object} response.Response
// @Router /api/v1/users [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]profileUser, len(users))
	for i, u := range users {
		out[i] = newProfileUser(u)
	}
	response.Success(c, gin.H{"users": out})
}
