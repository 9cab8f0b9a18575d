package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shopslot/shop-booking-backend/internal/auth"
	"github.com/shopslot/shop-booking-backend/internal/booking"
	bookingHttp "github.com/shopslot/shop-booking-backend/internal/booking/http"
	"github.com/shopslot/shop-booking-backend/internal/notice"
	noticeHttp "github.com/shopslot/shop-booking-backend/internal/notice/http"
	"github.com/shopslot/shop-booking-backend/internal/photo"
	photoHttp "github.com/shopslot/shop-booking-backend/internal/photo/http"
	svc "github.com/shopslot/shop-booking-backend/internal/service"
	svcHttp "github.com/shopslot/shop-booking-backend/internal/service/http"
	"github.com/shopslot/shop-booking-backend/internal/shop"
	shopHttp "github.com/shopslot/shop-booking-backend/internal/shop/http"
	"github.com/shopslot/shop-booking-backend/internal/staff"
	"github.com/shopslot/shop-booking-backend/internal/worker"
	workerHttp "github.com/shopslot/shop-booking-backend/internal/worker/http"
)

// Config carries everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	StaffService   staff.Service
	ShopService    shop.Service
	ServiceCatalog svc.Catalog
	WorkerService  worker.Service
	BookingService booking.Service
	Resolver       *booking.Resolver
	NoticeService  notice.Service
	PhotoService   photo.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, recovery, auth) and
// registers every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.StaffService)

	authHandler := NewAuthHandler(cfg.StaffService, cfg.JWTManager)
	shopHandler := shopHttp.NewHandler(cfg.ShopService)
	svcHandler := svcHttp.NewHandler(cfg.ServiceCatalog)
	workerHandler := workerHttp.NewHandler(cfg.WorkerService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Resolver)
	noticeHandler := noticeHttp.NewHandler(cfg.NoticeService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/register", authMiddleware, adminMiddleware, authHandler.Register)
		v1.GET("/me", authMiddleware, authHandler.Me)

		shopHttp.RegisterRoutes(v1, shopHandler, authMiddleware, adminMiddleware)
		svcHttp.RegisterRoutes(v1, svcHandler, authMiddleware, adminMiddleware)
		workerHttp.RegisterRoutes(v1, workerHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		noticeHttp.RegisterRoutes(v1, noticeHandler, authMiddleware, adminMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware, adminMiddleware)
		photoHttp.RegisterShopRoutes(v1, photoHandler)
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
