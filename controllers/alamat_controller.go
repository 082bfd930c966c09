package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/middleware"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/requests"
	"github.com/arifrhmanh/toko-kayu-app/services"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

type AlamatController struct {
	regions *services.RajaOngkirClient
}

func NewAlamatController(regions *services.RajaOngkirClient) *AlamatController {
	return &AlamatController{regions: regions}
}

func (ctl *AlamatController) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var alamat []models.Alamat
	err := config.DB.Where("user_id = ?", user.ID).
		Order("is_default DESC, created_at DESC").
		Find(&alamat).Error
	if err != nil {
		utils.DBError(c, err, "Failed to fetch addresses")
		return
	}
	utils.Success(c, alamat, "")
}

// Create menyimpan alamat baru. Alamat pertama user otomatis jadi default;
// alamat baru dengan is_default mencabut default yang lama.
func (ctl *AlamatController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req requests.CreateAlamatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "kota, kecamatan, kelurahan, and detail_alamat are required", http.StatusBadRequest)
		return
	}

	provinsi := req.Provinsi
	if provinsi == "" {
		provinsi = "Jawa Timur"
	}
	provinsiID := services.JawaTimurProvinceID

	alamat := models.Alamat{
		UserID:      user.ID,
		Provinsi:    provinsi,
		ProvinsiID:  &provinsiID,
		Kota:        req.Kota,
		KotaID:      req.KotaID,
		Kecamatan:   req.Kecamatan,
		KecamatanID: req.KecamatanID,
		Kelurahan:   req.Kelurahan,
		KelurahanID: req.KelurahanID,
		IsDefault:   req.IsDefault,
	}
	if req.DetailAlamat != "" {
		detail := req.DetailAlamat
		alamat.DetailAlamat = &detail
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Alamat{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			alamat.IsDefault = true
		} else if alamat.IsDefault {
			err := tx.Model(&models.Alamat{}).
				Where("user_id = ?", user.ID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(&alamat).Error
	})
	if err != nil {
		utils.DBError(c, err, "Failed to create address")
		return
	}

	utils.Created(c, alamat, "Alamat berhasil ditambahkan")
}

func (ctl *AlamatController) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var alamat models.Alamat
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&alamat).Error
	if err != nil {
		utils.DBError(c, err, "Address not found")
		return
	}

	var req requests.UpdateAlamatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.Provinsi != "" {
		updates["provinsi"] = req.Provinsi
	}
	if req.Kota != "" {
		updates["kota"] = req.Kota
	}
	if req.KotaID != nil {
		updates["kota_id"] = *req.KotaID
	}
	if req.Kecamatan != "" {
		updates["kecamatan"] = req.Kecamatan
	}
	if req.KecamatanID != nil {
		updates["kecamatan_id"] = *req.KecamatanID
	}
	if req.Kelurahan != "" {
		updates["kelurahan"] = req.Kelurahan
	}
	if req.KelurahanID != nil {
		updates["kelurahan_id"] = *req.KelurahanID
	}
	if req.DetailAlamat != "" {
		updates["detail_alamat"] = req.DetailAlamat
	}

	// Mencabut default satu-satunya alamat akan membuat user tanpa default.
	if req.IsDefault != nil && !*req.IsDefault && alamat.IsDefault {
		utils.Error(c, "Cannot unset the only default address. Set another address as default instead", http.StatusBadRequest)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault && !alamat.IsDefault {
			err := tx.Model(&models.Alamat{}).
				Where("user_id = ?", user.ID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
			updates["is_default"] = true
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&alamat).Updates(updates).Error
	})
	if err != nil {
		utils.DBError(c, err, "Failed to update address")
		return
	}

	utils.Success(c, alamat, "Alamat berhasil diperbarui")
}

// SetDefault menjadikan satu alamat default dan mencabut default lainnya.
func (ctl *AlamatController) SetDefault(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var alamat models.Alamat
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&alamat).Error
	if err != nil {
		utils.DBError(c, err, "Address not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Alamat{}).
			Where("user_id = ?", user.ID).
			Update("is_default", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&alamat).Update("is_default", true).Error
	})
	if err != nil {
		utils.DBError(c, err, "Failed to set default address")
		return
	}

	utils.Success(c, alamat, "Alamat default berhasil diatur")
}

// Delete menolak penghapusan alamat yang masih dirujuk order. Bila alamat
// default dihapus, default dialihkan ke alamat tersisa yang paling baru.
func (ctl *AlamatController) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var alamat models.Alamat
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&alamat).Error
	if err != nil {
		utils.DBError(c, err, "Address not found")
		return
	}

	var refCount int64
	if err := config.DB.Model(&models.Order{}).Where("alamat_id = ?", alamat.ID).Count(&refCount).Error; err != nil {
		utils.DBError(c, err, "Failed to delete address")
		return
	}
	if refCount > 0 {
		utils.Error(c, "Address is referenced by existing orders and cannot be deleted", http.StatusBadRequest)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&alamat).Error; err != nil {
			return err
		}
		if alamat.IsDefault {
			var next models.Alamat
			err := tx.Where("user_id = ?", user.ID).Order("created_at DESC").First(&next).Error
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil
				}
				return err
			}
			return tx.Model(&next).Update("is_default", true).Error
		}
		return nil
	})
	if err != nil {
		utils.DBError(c, err, "Failed to delete address")
		return
	}

	utils.Success(c, nil, "Alamat berhasil dihapus")
}

// Lookup wilayah untuk form alamat. Gagal lookup menghasilkan daftar kosong.

func (ctl *AlamatController) GetKota(c *gin.Context) {
	utils.Success(c, ctl.regions.GetKotaJawaTimur(c.Request.Context()), "")
}

func (ctl *AlamatController) GetKecamatan(c *gin.Context) {
	utils.Success(c, ctl.regions.GetKecamatanByKota(c.Request.Context(), c.Param("kotaId")), "")
}

func (ctl *AlamatController) GetKelurahan(c *gin.Context) {
	utils.Success(c, ctl.regions.GetKelurahanByKecamatan(c.Request.Context(), c.Param("kecamatanId")), "")
}
