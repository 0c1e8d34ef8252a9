package api

import (
	"regexp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/team-maroon/recipify/config"
	"github.com/team-maroon/recipify/internal/api/handler"
	"github.com/team-maroon/recipify/internal/api/middleware"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}

// NewRouter wires the middleware stack and all routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(otelgin.Middleware("recipify"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Server.RateLimit > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	secret := cfg.Auth.JWTSecret
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.LogIn)
	}

	// Read views work anonymously; a valid token personalises them.
	public := v1.Group("", middleware.OptionalAuth(secret))
	{
		public.GET("/recipes", h.ListRecipes)
		public.GET("/recipes/:id", h.GetRecipe)
		public.GET("/explore", h.Explore)
		public.GET("/categories", h.ListCategories)
		public.GET("/users", h.SearchUsers)
		public.GET("/users/:username", h.Profile)
		public.GET("/users/:username/followers", h.ListFollowers)
		public.GET("/users/:username/following", h.ListFollowing)
	}

	private := v1.Group("", middleware.Auth(secret))
	{
		private.POST("/recipes", h.CreateRecipe)
		private.PUT("/recipes/:id", h.UpdateRecipe)
		private.DELETE("/recipes/:id", h.DeleteRecipe)
		private.POST("/recipes/:id/favourite", h.ToggleFavourite)
		private.POST("/recipes/:id/like", h.ToggleLike)
		private.POST("/recipes/:id/comments", h.AddComment)
		private.POST("/recipes/:id/rate", h.RateRecipe)
		private.PUT("/comments/:id", h.EditComment)
		private.POST("/comments/:id/like", h.ToggleCommentLike)

		private.POST("/users/:username/follow", h.ToggleFollow)
		private.POST("/users/:username/follow/accept", h.AcceptFollowRequest)
		private.POST("/users/:username/follow/decline", h.DeclineFollowRequest)

		private.GET("/me/follow-requests", h.ListFollowRequests)
		private.PUT("/me/profile", h.UpdateProfile)

		private.GET("/notifications", h.ListNotifications)
		private.DELETE("/notifications/:id", h.DeleteNotification)

		private.GET("/shopping-list", h.ListShoppingItems)
		private.POST("/shopping-list", h.AddShoppingItem)
		private.POST("/shopping-list/recipes/:id", h.AddRecipeToShoppingList)
		private.PATCH("/shopping-list/:id", h.CheckShoppingItem)
		private.DELETE("/shopping-list/:id", h.DeleteShoppingItem)
	}

	return r
}
