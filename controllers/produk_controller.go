package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/requests"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

// pageParams membaca ?page= dan ?limit= dengan batas wajar.
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

// GetProdukList mengembalikan produk berpaginasi, opsional difilter nama
// lewat ?search=.
func GetProdukList(c *gin.Context) {
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Produk{})
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(nama_produk) LIKE LOWER(?)", "%"+search+"%")
	}
	if c.Query("low_stock") == "true" {
		query = query.Where("stok < stok_minimum")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.DBError(c, err, "Failed to fetch products")
		return
	}

	var produk []models.Produk
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&produk).Error; err != nil {
		utils.DBError(c, err, "Failed to fetch products")
		return
	}

	utils.Paginated(c, produk, page, limit, total)
}

func GetProdukByID(c *gin.Context) {
	var produk models.Produk
	if err := config.DB.Where("id = ?", c.Param("id")).First(&produk).Error; err != nil {
		utils.DBError(c, err, "Product not found")
		return
	}
	utils.Success(c, produk, "")
}

// CreateProduk menerima multipart form dengan field gambar opsional.
func CreateProduk(c *gin.Context) {
	var req requests.CreateProdukRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, "nama_produk and harga_jual are required", http.StatusBadRequest)
		return
	}

	produk := models.Produk{
		NamaProduk: req.NamaProduk,
		HargaJual:  *req.HargaJual,
		Stok:       req.Stok,
	}
	if req.StokMinimum != nil {
		produk.StokMinimum = *req.StokMinimum
	} else {
		produk.StokMinimum = 10
	}

	if req.Gambar != nil {
		if !utils.StorageEnabled() {
			utils.Error(c, "Image storage is not configured", http.StatusBadRequest)
			return
		}
		if err := utils.ValidateImage(req.Gambar); err != nil {
			utils.Error(c, err.Error(), http.StatusBadRequest)
			return
		}
		result, err := utils.UploadProductImage(req.Gambar)
		if err != nil {
			log.Printf("Image upload failed: %v", err)
			utils.ServerError(c, "Failed to upload image")
			return
		}
		produk.GambarURL = &result.SecureURL
	}

	if err := config.DB.Create(&produk).Error; err != nil {
		utils.DBError(c, err, "Failed to create product")
		return
	}
	utils.Created(c, produk, "Produk berhasil ditambahkan")
}

// UpdateProduk mengubah sebagian field produk. Gambar baru menggantikan dan
// menghapus gambar lama di storage.
func UpdateProduk(c *gin.Context) {
	var produk models.Produk
	if err := config.DB.Where("id = ?", c.Param("id")).First(&produk).Error; err != nil {
		utils.DBError(c, err, "Product not found")
		return
	}

	var req requests.UpdateProdukRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.NamaProduk != "" {
		updates["nama_produk"] = req.NamaProduk
	}
	if req.HargaJual != nil {
		if *req.HargaJual < 0 {
			utils.Error(c, "harga_jual must not be negative", http.StatusBadRequest)
			return
		}
		updates["harga_jual"] = *req.HargaJual
	}
	if req.Stok != nil {
		if *req.Stok < 0 {
			utils.Error(c, "stok must not be negative", http.StatusBadRequest)
			return
		}
		updates["stok"] = *req.Stok
	}
	if req.StokMinimum != nil {
		updates["stok_minimum"] = *req.StokMinimum
	}

	oldGambar := ""
	if produk.GambarURL != nil {
		oldGambar = *produk.GambarURL
	}

	if req.Gambar != nil {
		if !utils.StorageEnabled() {
			utils.Error(c, "Image storage is not configured", http.StatusBadRequest)
			return
		}
		if err := utils.ValidateImage(req.Gambar); err != nil {
			utils.Error(c, err.Error(), http.StatusBadRequest)
			return
		}
		result, err := utils.UploadProductImage(req.Gambar)
		if err != nil {
			log.Printf("Image upload failed: %v", err)
			utils.ServerError(c, "Failed to upload image")
			return
		}
		updates["gambar_url"] = result.SecureURL
	} else if req.RemoveGambar {
		updates["gambar_url"] = nil
	}

	if len(updates) == 0 {
		utils.Error(c, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(&produk).Updates(updates).Error; err != nil {
		utils.DBError(c, err, "Failed to update product")
		return
	}

	if oldGambar != "" && (req.Gambar != nil || req.RemoveGambar) {
		if err := utils.DeleteProductImage(oldGambar); err != nil {
			log.Printf("Failed to delete old image %s: %v", oldGambar, err)
		}
	}

	utils.Success(c, produk, "Produk berhasil diperbarui")
}

// DeleteProduk menolak penghapusan produk yang masih dirujuk order item.
func DeleteProduk(c *gin.Context) {
	var produk models.Produk
	if err := config.DB.Where("id = ?", c.Param("id")).First(&produk).Error; err != nil {
		utils.DBError(c, err, "Product not found")
		return
	}

	var refCount int64
	if err := config.DB.Model(&models.OrderItem{}).Where("produk_id = ?", produk.ID).Count(&refCount).Error; err != nil {
		utils.DBError(c, err, "Failed to delete product")
		return
	}
	if refCount > 0 {
		utils.Error(c, "Product is referenced by existing orders and cannot be deleted", http.StatusBadRequest)
		return
	}

	if err := config.DB.Delete(&produk).Error; err != nil {
		utils.DBError(c, err, "Failed to delete product")
		return
	}

	if produk.GambarURL != nil && *produk.GambarURL != "" {
		if err := utils.DeleteProductImage(*produk.GambarURL); err != nil {
			log.Printf("Failed to delete image for product %s: %v", produk.ID, err)
		}
	}

	utils.Success(c, nil, "Produk berhasil dihapus")
}
