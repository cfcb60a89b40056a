package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kwame-owusu/staybay/internal/container"
	"github.com/kwame-owusu/staybay/internal/handlers"
	"github.com/kwame-owusu/staybay/internal/helpers"
	"github.com/kwame-owusu/staybay/internal/middleware"
	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/observability"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	reg := observability.InitRegistry()
	r.GET("/metrics", gin.WrapH(observability.MetricsHandler(reg)))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "staybay-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.CreateUser(c.UserService))
		v1.POST("/login", handlers.AuthenticateUser(c.UserService))
		v1.POST("/logout", handlers.Logout())

		// public catalog reads
		v1.GET("/hotels", handlers.ListHotels(c.HotelService))
		v1.GET("/hotels/:id", handlers.GetHotelByID(c.HotelService))
		v1.GET("/hotels/:id/rooms", handlers.ListRoomsByHotel(c.RoomService))
		v1.GET("/hotels/:id/foods", handlers.ListFoodsByHotel(c.FoodService))
		v1.GET("/hotels/:id/reviews", handlers.ListReviewsByHotel(c.ReviewService))
		v1.GET("/rooms/:id", handlers.GetRoomByID(c.RoomService))
		v1.GET("/foods/:id", handlers.GetFoodByID(c.FoodService))

		// Stripe calls this; authenticated by signature, not cookie
		v1.POST("/webhooks/stripe", handlers.StripeWebhook(c.Checkout, c.OrderService, c.Logger))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(c.UserService, c.Logger))

	protected.GET("/profile", func(ctx *gin.Context) {
		user, exist := ctx.Get("user")
		if !exist {
			ctx.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		claims, ok := user.(*helpers.EnhancedClaims)
		if !ok {
			ctx.JSON(500, gin.H{"error": "Invalid user claims format"})
			return
		}
		ctx.JSON(200, gin.H{
			"status":   "OK",
			"user_id":  claims.UserID,
			"email":    claims.Email,
			"role":     claims.Role,
			"username": claims.Username,
			"is_admin": claims.IsAdmin(),
		})
	})

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/:id", handlers.GetUser(c.UserService))
		userRoutes.PATCH("/:id", handlers.UpdateUser(c.UserService))
		userRoutes.DELETE("/:id", handlers.DeleteUser(c.UserService))
		userRoutes.POST("/avatar", handlers.UploadAvatar(c.UserService))
	}

	// customer actions
	protected.PUT("/hotels/:id/reviews", handlers.UpsertReview(c.RatingService))
	protected.DELETE("/hotels/:id/reviews", handlers.DeleteOwnReview(c.RatingService))
	protected.GET("/reviews", handlers.ListOwnReviews(c.ReviewService))

	favRoutes := protected.Group("/favourites")
	{
		favRoutes.GET("/", handlers.GetFavourites(c.FavouritesService))
		favRoutes.PUT("/:hotel_id", handlers.AddToFavourites(c.FavouritesService))
		favRoutes.DELETE("/:hotel_id", handlers.RemoveFromFavourites(c.FavouritesService))
	}

	protected.POST("/checkout", handlers.CreateCheckoutSession(c.Checkout, c.HotelService, c.RoomService, c.FoodService))

	orderRoutes := protected.Group("/orders")
	{
		orderRoutes.GET("/", handlers.ListOwnOrders(c.OrderService))
		orderRoutes.GET("/:id", handlers.GetOrder(c.OrderService))
		orderRoutes.PATCH("/:id/status", handlers.UpdateOrderStatus(c.OrderService))
	}

	// owner actions
	owner := protected.Group("/")
	owner.Use(middleware.RequireRoles(models.RoleOwner, models.RoleAdmin))
	{
		owner.POST("/hotels", handlers.CreateHotel(c.HotelService))
		owner.PATCH("/hotels/:id", handlers.UpdateHotel(c.HotelService))
		owner.DELETE("/hotels/:id", handlers.DeleteHotel(c.HotelService))
		owner.GET("/owners/:owner_id/hotels", handlers.ListHotelsByOwner(c.HotelService))

		owner.POST("/rooms", handlers.CreateRoom(c.RoomService, c.HotelService))
		owner.PATCH("/rooms/:id", handlers.UpdateRoom(c.RoomService, c.HotelService))
		owner.DELETE("/rooms/:id", handlers.DeleteRoom(c.RoomService, c.HotelService))

		owner.POST("/foods", handlers.CreateFood(c.FoodService, c.HotelService))
		owner.PATCH("/foods/:id", handlers.UpdateFood(c.FoodService, c.HotelService))
		owner.DELETE("/foods/:id", handlers.DeleteFood(c.FoodService, c.HotelService))

		owner.POST("/withdrawals", handlers.RequestWithdrawal(c.WithdrawalService))
		owner.GET("/withdrawals", handlers.ListOwnWithdrawals(c.WithdrawalService))
	}

	// admin actions
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/withdrawals", handlers.ListAllWithdrawals(c.WithdrawalService))
		admin.PATCH("/withdrawals/:id", handlers.ProcessWithdrawal(c.WithdrawalService))
		admin.DELETE("/hotels/:id/reviews/:customer_id", handlers.ModerateReview(c.RatingService))
	}

	return r
}
