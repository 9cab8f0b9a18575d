package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopslot/shop-booking-backend/internal/auth"
	"github.com/shopslot/shop-booking-backend/internal/staff"
)

// RequireAdmin ensures the authenticated staff member has admin rights.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(staffService staff.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := auth.GetStaffID(c)
		if staffID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		acct, err := staffService.GetByID(c.Request.Context(), staffID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "staff account not found"})
			return
		}

		if !acct.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: account is inactive"})
			return
		}
		if !acct.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
