package utils

import (
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

var (
	accessSecret  = []byte(envOr("JWT_ACCESS_SECRET", "access_secret_key_default"))
	refreshSecret = []byte(envOr("JWT_REFRESH_SECRET", "refresh_secret_key_default"))

	AccessExpiresIn  = envDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute)
	RefreshExpiresIn = envDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour)
)

type TokenClaims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(user *models.User) (string, error) {
	return signToken(user, accessSecret, AccessExpiresIn)
}

func GenerateRefreshToken(user *models.User) (string, error) {
	return signToken(user, refreshSecret, RefreshExpiresIn)
}

func signToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func VerifyAccessToken(tokenStr string) (*TokenClaims, error) {
	return verifyToken(tokenStr, accessSecret)
}

func VerifyRefreshToken(tokenStr string) (*TokenClaims, error) {
	return verifyToken(tokenStr, refreshSecret)
}

func verifyToken(tokenStr string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SaveRefreshToken menyimpan refresh token agar bisa dicabut saat logout.
func SaveRefreshToken(db *gorm.DB, userID, token string) error {
	return db.Create(&models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(RefreshExpiresIn),
	}).Error
}

// FindRefreshToken mencari refresh token yang tersimpan dan belum kedaluwarsa.
func FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func DeleteRefreshToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

// CleanExpiredTokens menghapus refresh token kedaluwarsa; dipanggil berkala
// dari main.
func CleanExpiredTokens(db *gorm.DB) (int64, error) {
	res := db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s: %v, using default", key, err)
		return fallback
	}
	return d
}
