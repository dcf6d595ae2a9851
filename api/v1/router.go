package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/metrics"
	"github.com/storefront-api/middleware"
	"github.com/storefront-api/models"
	"github.com/storefront-api/services"
	"gorm.io/gorm"
)

var anyRole = middleware.Roles(models.RoleUser, models.RoleAdmin)

// AccessTable gates every route. Order matters: the first matching rule wins
// and requests matching nothing are denied.
var AccessTable = []middleware.Rule{
	{Method: http.MethodOptions, Pattern: "/**", Access: middleware.Public},

	{Method: http.MethodGet, Pattern: "/health", Access: middleware.Public},
	{Method: http.MethodGet, Pattern: "/metrics", Access: middleware.Public},

	{Pattern: "/api/auth/**", Access: middleware.Public},
	{Method: http.MethodPost, Pattern: "/api/users/register", Access: middleware.Public},
	{Method: http.MethodPost, Pattern: "/api/users/login", Access: middleware.Public},

	{Method: http.MethodGet, Pattern: "/api/products/*/rating/**", Access: middleware.Public},
	{Method: http.MethodPost, Pattern: "/api/products/*/rating", Access: anyRole},
	{Method: http.MethodDelete, Pattern: "/api/products/*/rating", Access: anyRole},

	{Method: http.MethodGet, Pattern: "/api/store/public/**", Access: middleware.Public},
	{Method: http.MethodGet, Pattern: "/api/products/store/**", Access: middleware.Public},

	{Method: http.MethodPost, Pattern: "/api/products/**", Access: middleware.Authenticated},
	{Method: http.MethodPut, Pattern: "/api/products/**", Access: middleware.Authenticated},
	{Method: http.MethodDelete, Pattern: "/api/products/**", Access: middleware.Authenticated},

	{Method: http.MethodGet, Pattern: "/api/comments/product/**", Access: middleware.Public},
	{Method: http.MethodPost, Pattern: "/api/comments/product/**", Access: anyRole},
	{Method: http.MethodDelete, Pattern: "/api/comments/**", Access: middleware.Authenticated},

	{Pattern: "/api/users/me", Access: anyRole},
	{Pattern: "/api/users/**", Access: middleware.Roles(models.RoleAdmin)},

	{Pattern: "/api/store/**", Access: anyRole},

	{Method: http.MethodGet, Pattern: "/api/tags/product/**", Access: middleware.Public},
	{Method: http.MethodPost, Pattern: "/api/tags/product/**", Access: anyRole},
	{Method: http.MethodDelete, Pattern: "/api/tags/**", Access: middleware.Authenticated},
	{Method: http.MethodGet, Pattern: "/api/tags/all", Access: middleware.Public},

	{Method: http.MethodGet, Pattern: "/api/products", Access: middleware.Public},
	{Method: http.MethodGet, Pattern: "/api/products/**", Access: middleware.Public},

	{Method: http.MethodGet, Pattern: "/api/images/**", Access: middleware.Public},
	{Method: http.MethodPost, Pattern: "/api/images", Access: middleware.Authenticated},

	{Pattern: "/**", Access: middleware.Authenticated},
}

// Services bundles the domain services the API exposes
type Services struct {
	Users    *services.UserService
	Stores   *services.StoreService
	Products *services.ProductService
	Ratings  *services.RatingService
	Comments *services.CommentService
	Tags     *services.TagService
	Images   *services.ImageService
}

// RouterConfig holds the transport settings of the API
type RouterConfig struct {
	AllowedOrigins []string
	MetricsEnabled bool
}

// NewServices wires every domain service to db
func NewServices(db *gorm.DB, tokens *services.TokenService, images *services.ImageService) Services {
	return Services{
		Users:    services.NewUserService(db, tokens),
		Stores:   services.NewStoreService(db),
		Products: services.NewProductService(db),
		Ratings:  services.NewRatingService(db),
		Comments: services.NewCommentService(db),
		Tags:     services.NewTagService(db),
		Images:   images,
	}
}

// NewRouter builds the gin engine with middleware, access rules and all routes
func NewRouter(db *gorm.DB, svc Services, cfg RouterConfig, log *slog.Logger) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	if cfg.MetricsEnabled {
		router.Use(metrics.GinMiddleware())
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.AuthMiddleware(svc.Users))
	router.Use(middleware.AccessRules(AccessTable))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "route not found"))
	})

	router.GET("/health", HealthCheck(db))
	if cfg.MetricsEnabled {
		router.GET("/metrics", metrics.Handler())
	}

	api := router.Group("/api")
	RegisterRoutes(api, svc)

	return router
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.RouterGroup, svc Services) {
	NewAuthController(svc.Users).RegisterRoutes(router)
	NewUserController(svc.Users).RegisterRoutes(router)
	NewStoreController(svc.Stores).RegisterRoutes(router)
	NewProductController(svc.Products, svc.Ratings).RegisterRoutes(router)
	NewCommentController(svc.Comments).RegisterRoutes(router)
	NewTagController(svc.Tags).RegisterRoutes(router)
	if svc.Images.Enabled() {
		NewImageController(svc.Images).RegisterRoutes(router)
	}
}
