package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kwame-owusu/staybay/internal/cache"
	"github.com/kwame-owusu/staybay/internal/config"
	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/payments"
	"github.com/kwame-owusu/staybay/internal/services"
	"github.com/kwame-owusu/staybay/internal/store"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	MongoRepo      *models.MongodbRepo
	Cache          *cache.Cache
	Checkout       *payments.Checkout

	UserService       *services.UserService
	HotelService      *services.HotelService
	RoomService       *services.RoomService
	FoodService       *services.FoodService
	ReviewService     *services.ReviewService
	RatingService     *services.RatingService
	InventoryService  *services.InventoryService
	OrderService      *services.OrderService
	WithdrawalService *services.WithdrawalService
	FavouritesService *services.FavouriteService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseKey)
	mdb := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)

	var c *cache.Cache
	if cfg.RedisAddr != "" {
		c = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	txStore := store.NewMongoStore(mongoDBClient, cfg.MongoDBName)
	checkout := payments.NewCheckout(cfg.StripeAPIKey, cfg.StripeWebhookSecret)

	userService := services.NewUserService(supa)
	hotelService := services.NewHotelService(mdb, cld, c)
	roomService := services.NewRoomService(mdb, mdb, c)
	foodService := services.NewFoodService(mdb, mdb, cld, c)
	reviewService := services.NewReviewService(mdb, c)
	ratingService := services.NewRatingService(txStore, c)
	inventoryService := services.NewInventoryService(txStore, c)
	orderService := services.NewOrderService(mdb, inventoryService)
	withdrawalService := services.NewWithdrawalService(mdb)
	favouriteService := services.NewFavouriteService(mdb, mdb)

	return &Container{
		Logger:            logger,
		Cloudinary:        cld,
		SupabaseClient:    supabaseClient,
		MongoDBClient:     mongoDBClient,
		MongoRepo:         mdb,
		Cache:             c,
		Checkout:          checkout,
		UserService:       userService,
		HotelService:      hotelService,
		RoomService:       roomService,
		FoodService:       foodService,
		ReviewService:     reviewService,
		RatingService:     ratingService,
		InventoryService:  inventoryService,
		OrderService:      orderService,
		WithdrawalService: withdrawalService,
		FavouritesService: favouriteService,
	}
}
