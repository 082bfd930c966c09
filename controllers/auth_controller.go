package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/middleware"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/requests"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

// Register mendaftarkan user baru dengan role customer. Role admin hanya
// dibuat lewat seeding.
func Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "Username, password, and nama_lengkap are required", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.ServerError(c, "Failed to process password")
		return
	}

	user := models.User{
		Username:    req.Username,
		Password:    string(hashed),
		Role:        models.RoleCustomer,
		NamaLengkap: req.NamaLengkap,
	}
	if req.NoHP != "" {
		user.NoHP = &req.NoHP
	}

	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, "Username already taken", http.StatusConflict)
			return
		}
		utils.DBError(c, err, "Failed to register user")
		return
	}

	// Langsung login setelah registrasi.
	accessToken, err := utils.GenerateAccessToken(&user)
	if err != nil {
		utils.ServerError(c, "Failed to generate token")
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(&user)
	if err != nil {
		utils.ServerError(c, "Failed to generate token")
		return
	}
	if err := utils.SaveRefreshToken(config.DB, user.ID, refreshToken); err != nil {
		utils.ServerError(c, "Failed to save session")
		return
	}

	utils.Created(c, gin.H{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, "Registrasi berhasil")
}

// Login memverifikasi kredensial lalu menerbitkan pasangan access dan refresh
// token. Refresh token disimpan agar bisa dicabut.
func Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "Username and password are required", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	accessToken, err := utils.GenerateAccessToken(&user)
	if err != nil {
		utils.ServerError(c, "Failed to generate token")
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(&user)
	if err != nil {
		utils.ServerError(c, "Failed to generate token")
		return
	}
	if err := utils.SaveRefreshToken(config.DB, user.ID, refreshToken); err != nil {
		utils.ServerError(c, "Failed to save session")
		return
	}

	utils.Success(c, gin.H{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, "Login berhasil")
}

// Refresh menukar refresh token yang masih tersimpan dengan access token baru.
func Refresh(c *gin.Context) {
	var req requests.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "refresh_token is required", http.StatusBadRequest)
		return
	}

	claims, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	// Token yang sudah dicabut lewat logout tidak ada lagi di tabel.
	if _, err := utils.FindRefreshToken(config.DB, req.RefreshToken); err != nil {
		utils.Unauthorized(c, "Refresh token has been revoked")
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		utils.Unauthorized(c, "User not found")
		return
	}

	accessToken, err := utils.GenerateAccessToken(&user)
	if err != nil {
		utils.ServerError(c, "Failed to generate token")
		return
	}

	utils.Success(c, gin.H{"access_token": accessToken}, "Token diperbarui")
}

// Logout mencabut refresh token. Access token yang masih hidup dibiarkan
// kedaluwarsa sendiri.
func Logout(c *gin.Context) {
	var req requests.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "refresh_token is required", http.StatusBadRequest)
		return
	}

	if err := utils.DeleteRefreshToken(config.DB, req.RefreshToken); err != nil {
		utils.ServerError(c, "Failed to logout")
		return
	}
	utils.Success(c, nil, "Logout berhasil")
}

func GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	utils.Success(c, user, "")
}

// UpdateProfile mengubah nama, nomor HP, atau password user yang sedang login.
func UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req requests.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.NamaLengkap != "" {
		updates["nama_lengkap"] = req.NamaLengkap
	}
	if req.NoHP != nil {
		updates["no_hp"] = *req.NoHP
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			utils.Error(c, "Password must be at least 6 characters", http.StatusBadRequest)
			return
		}
		// Ganti password butuh bukti tahu password lama.
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			utils.Error(c, "current_password is incorrect", http.StatusBadRequest)
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.ServerError(c, "Failed to process password")
			return
		}
		updates["password"] = string(hashed)
	}

	if len(updates) == 0 {
		utils.Error(c, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(user).Updates(updates).Error; err != nil {
		utils.DBError(c, err, "Failed to update profile")
		return
	}

	var fresh models.User
	if err := config.DB.Where("id = ?", user.ID).First(&fresh).Error; err != nil {
		utils.DBError(c, err, "Failed to load profile")
		return
	}
	utils.Success(c, fresh, "Profil diperbarui")
}
