package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/requests"
	"github.com/arifrhmanh/toko-kayu-app/services"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

type KeuanganController struct {
	service *services.KeuanganService
}

func NewKeuanganController(service *services.KeuanganService) *KeuanganController {
	return &KeuanganController{service: service}
}

// parseDateRange membaca ?from= dan ?to= dalam format YYYY-MM-DD. Batas atas
// digeser ke akhir hari supaya rentangnya inklusif.
func parseDateRange(c *gin.Context) (from, to *time.Time, err error) {
	if v := c.Query("from"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, perr
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func (ctl *KeuanganController) List(c *gin.Context) {
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Keuangan{})
	if jenis := c.Query("jenis"); jenis != "" {
		if !models.JenisKeuangan(jenis).Valid() {
			utils.Error(c, "jenis must be pemasukan or pengeluaran", http.StatusBadRequest)
			return
		}
		query = query.Where("jenis = ?", jenis)
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		utils.Error(c, "from/to must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}
	if from != nil {
		query = query.Where("tanggal >= ?", *from)
	}
	if to != nil {
		query = query.Where("tanggal <= ?", *to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.DBError(c, err, "Failed to fetch keuangan")
		return
	}

	var entries []models.Keuangan
	if err := query.Order("tanggal DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		utils.DBError(c, err, "Failed to fetch keuangan")
		return
	}

	utils.Paginated(c, entries, page, limit, total)
}

func (ctl *KeuanganController) Summary(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		utils.Error(c, "from/to must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	summary, err := ctl.service.Summary(c.Request.Context(), from, to)
	if err != nil {
		utils.DBError(c, err, "Failed to compute summary")
		return
	}
	utils.Success(c, summary, "")
}

// Create hanya untuk entri manual. Entri order dan kulakan dibuat oleh alur
// pembayaran dan kulakan.
func (ctl *KeuanganController) Create(c *gin.Context) {
	var req requests.CreateKeuanganRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "jenis, jumlah, and keterangan are required", http.StatusBadRequest)
		return
	}

	entry := models.Keuangan{
		Jenis:         models.JenisKeuangan(req.Jenis),
		Jumlah:        req.Jumlah,
		Keterangan:    req.Keterangan,
		ReferenceType: models.ReferenceManual,
	}
	if req.Tanggal != "" {
		t, err := time.Parse("2006-01-02", req.Tanggal)
		if err != nil {
			utils.Error(c, "tanggal must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		entry.Tanggal = t
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.DBError(c, err, "Failed to create keuangan entry")
		return
	}
	utils.Created(c, entry, "Entri keuangan berhasil ditambahkan")
}

// Update menolak entri non-manual; entri otomatis milik alur order/kulakan.
func (ctl *KeuanganController) Update(c *gin.Context) {
	var entry models.Keuangan
	if err := config.DB.Where("id = ?", c.Param("id")).First(&entry).Error; err != nil {
		utils.DBError(c, err, "Keuangan entry not found")
		return
	}

	if !entry.IsManual() {
		utils.Error(c, "Auto-generated entries cannot be modified", http.StatusBadRequest)
		return
	}

	var req requests.UpdateKeuanganRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.Jenis != "" {
		updates["jenis"] = req.Jenis
	}
	if req.Jumlah != nil {
		updates["jumlah"] = *req.Jumlah
	}
	if req.Keterangan != "" {
		updates["keterangan"] = req.Keterangan
	}
	if req.Tanggal != "" {
		t, err := time.Parse("2006-01-02", req.Tanggal)
		if err != nil {
			utils.Error(c, "tanggal must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		updates["tanggal"] = t
	}

	if len(updates) == 0 {
		utils.Error(c, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(&entry).Updates(updates).Error; err != nil {
		utils.DBError(c, err, "Failed to update keuangan entry")
		return
	}
	utils.Success(c, entry, "Entri keuangan berhasil diperbarui")
}

func (ctl *KeuanganController) Delete(c *gin.Context) {
	var entry models.Keuangan
	if err := config.DB.Where("id = ?", c.Param("id")).First(&entry).Error; err != nil {
		utils.DBError(c, err, "Keuangan entry not found")
		return
	}

	if !entry.IsManual() {
		utils.Error(c, "Auto-generated entries cannot be deleted", http.StatusBadRequest)
		return
	}

	if err := config.DB.Delete(&entry).Error; err != nil {
		utils.DBError(c, err, "Failed to delete keuangan entry")
		return
	}
	utils.Success(c, nil, "Entri keuangan berhasil dihapus")
}
