package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/middleware"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

func GetNotifikasiList(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Notifikasi{}).Where("user_id = ?", user.ID)
	if c.Query("unread_only") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.DBError(c, err, "Failed to fetch notifications")
		return
	}

	var notifikasi []models.Notifikasi
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifikasi).Error; err != nil {
		utils.DBError(c, err, "Failed to fetch notifications")
		return
	}

	utils.Paginated(c, notifikasi, page, limit, total)
}

// GetNotifikasiCount mengembalikan jumlah notifikasi yang belum dibaca.
func GetNotifikasiCount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var count int64
	err := config.DB.Model(&models.Notifikasi{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error
	if err != nil {
		utils.DBError(c, err, "Failed to count notifications")
		return
	}

	utils.Success(c, gin.H{"unread": count}, "")
}

func MarkNotifikasiRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	res := config.DB.Model(&models.Notifikasi{}).
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Update("is_read", true)
	if res.Error != nil {
		utils.DBError(c, res.Error, "Failed to mark notification as read")
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Notification not found")
		return
	}

	utils.Success(c, nil, "Notifikasi ditandai dibaca")
}

func MarkAllNotifikasiRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	err := config.DB.Model(&models.Notifikasi{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error
	if err != nil {
		utils.DBError(c, err, "Failed to mark notifications as read")
		return
	}

	utils.Success(c, nil, "Semua notifikasi ditandai dibaca")
}

func DeleteNotifikasi(c *gin.Context) {
	user := middleware.CurrentUser(c)

	res := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Delete(&models.Notifikasi{})
	if res.Error != nil {
		utils.DBError(c, res.Error, "Failed to delete notification")
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Notification not found")
		return
	}

	utils.Success(c, nil, "Notifikasi berhasil dihapus")
}
