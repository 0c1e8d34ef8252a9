package handler

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/team-maroon/recipify/internal/service"
	"github.com/team-maroon/recipify/pkg/logger"
	"github.com/team-maroon/recipify/pkg/response"
)

// Handler bundles the service layer for the HTTP routes.
type Handler struct {
	users         service.UserService
	relations     service.RelationshipService
	notifications service.NotificationService
	feed          service.FeedService
	recipes       service.RecipeService
	engagement    service.EngagementService
	explore       service.ExploreService
	shopping      service.ShoppingListService
	inbox         service.InboxService

	jwtSecret string
	tokenTTL  time.Duration
}

func New(
	users service.UserService,
	relations service.RelationshipService,
	notifications service.NotificationService,
	feed service.FeedService,
	recipes service.RecipeService,
	engagement service.EngagementService,
	explore service.ExploreService,
	shopping service.ShoppingListService,
	inbox service.InboxService,
	jwtSecret string,
	tokenTTL time.Duration,
) *Handler {
	return &Handler{
		users:         users,
		relations:     relations,
		notifications: notifications,
		feed:          feed,
		recipes:       recipes,
		engagement:    engagement,
		explore:       explore,
		shopping:      shopping,
		inbox:         inbox,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
	}
}

// fail maps service errors onto the response envelope.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "forbidden")
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyBody),
		errors.Is(err, service.ErrInvalidCredentials):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("internal error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		sentry.CaptureException(err)
		response.InternalError(c, err)
	}
}
