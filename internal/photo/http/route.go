package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/photos")

	// === Public Routes ===
	group.GET("/:id", h.Serve)
	group.GET("/:id/thumbnail", h.ServeThumbnail)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Upload)
		admin.DELETE("/:id", h.Delete)
	}
}

// RegisterShopRoutes attaches the per-shop photo listing under /shops.
func RegisterShopRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/shops/:id/photos", h.ListByShop)
}
