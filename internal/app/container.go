package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopslot/shop-booking-backend/internal/api"
	"github.com/shopslot/shop-booking-backend/internal/auth"
	"github.com/shopslot/shop-booking-backend/internal/booking"
	"github.com/shopslot/shop-booking-backend/internal/notice"
	"github.com/shopslot/shop-booking-backend/internal/photo"
	"github.com/shopslot/shop-booking-backend/internal/pkg/storage"
	svc "github.com/shopslot/shop-booking-backend/internal/service"
	"github.com/shopslot/shop-booking-backend/internal/shop"
	"github.com/shopslot/shop-booking-backend/internal/staff"
	"github.com/shopslot/shop-booking-backend/internal/worker"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	DBPool           *pgxpool.Pool
	JWTSecret        string
	JWTTTL           time.Duration
	BcryptCost       int
	PhotoStoragePath string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	photoStore, err := storage.NewLocalStorage(cfg.PhotoStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}

	// Staff module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo, passwordHasher)

	// Shop module
	shopRepo := shop.NewPgxRepository(cfg.DBPool)
	shopService := shop.NewService(shopRepo)

	// Service catalog module
	svcRepo := svc.NewPgxRepository(cfg.DBPool)
	serviceCatalog := svc.NewCatalog(svcRepo)

	// Worker module
	workerRepo := worker.NewPgxRepository(cfg.DBPool)
	workerService := worker.NewService(workerRepo, shopService, serviceCatalog)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	resolver := booking.NewResolver(shopService, workerService, serviceCatalog, bookingRepo)
	bookingService := booking.NewService(bookingRepo, resolver, shopService, workerService, serviceCatalog)

	// Notice module
	noticeRepo := notice.NewPgxRepository(cfg.DBPool)
	noticeService := notice.NewService(noticeRepo, shopService)

	// Photo module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, photoStore, shopService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		StaffService:   staffService,
		ShopService:    shopService,
		ServiceCatalog: serviceCatalog,
		WorkerService:  workerService,
		BookingService: bookingService,
		Resolver:       resolver,
		NoticeService:  noticeService,
		PhotoService:   photoService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
