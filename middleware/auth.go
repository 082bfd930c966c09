package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

const userContextKey = "currentUser"

// Authenticate memverifikasi bearer token lalu memuat user dari database.
// User yang sudah dihapus ditolak walau tokennya masih berlaku.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.Unauthorized(c, "Authorization token required")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := utils.VerifyAccessToken(tokenStr)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			utils.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set(userContextKey, &user)
		c.Next()
	}
}

// RequireRole membatasi akses ke role tertentu. Dipasang setelah Authenticate.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		utils.Forbidden(c, "You do not have permission to access this resource")
		c.Abort()
	}
}

// CurrentUser mengambil user yang sudah diautentikasi dari context request.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
