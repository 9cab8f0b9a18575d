package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/availability", h.CheckAvailability)

	group := g.Group("/bookings")

	// === Public Routes ===
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.POST("/:id/cancel", h.Cancel)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.List)
		admin.POST("/:id/confirm", h.Confirm)
	}

	blocks := g.Group("/blocks")
	blocks.Use(authMiddleware, adminMiddleware)
	{
		blocks.POST("", h.BlockDay)
		blocks.DELETE("/:id", h.RemoveBlock)
	}
}
