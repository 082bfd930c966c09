package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/requests"
	"github.com/arifrhmanh/toko-kayu-app/services"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

type KulakanController struct {
	service *services.KulakanService
}

func NewKulakanController(service *services.KulakanService) *KulakanController {
	return &KulakanController{service: service}
}

func (ctl *KulakanController) List(c *gin.Context) {
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Kulakan{})
	if produkID := c.Query("produk_id"); produkID != "" {
		query = query.Where("produk_id = ?", produkID)
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
		utils.DBError(c, err, "Failed to fetch kulakan")
		return
	}

	var kulakan []models.Kulakan
	err = query.Preload("Produk").
		Order("tanggal DESC").
		Limit(limit).Offset(offset).
		Find(&kulakan).Error
	if err != nil {
		utils.DBError(c, err, "Failed to fetch kulakan")
		return
	}

	utils.Paginated(c, kulakan, page, limit, total)
}

func (ctl *KulakanController) GetByID(c *gin.Context) {
	var kulakan models.Kulakan
	err := config.DB.Preload("Produk").Where("id = ?", c.Param("id")).First(&kulakan).Error
	if err != nil {
		utils.DBError(c, err, "Kulakan not found")
		return
	}
	utils.Success(c, kulakan, "")
}

func (ctl *KulakanController) Create(c *gin.Context) {
	var req requests.CreateKulakanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "produk_id and jumlah_karung are required", http.StatusBadRequest)
		return
	}

	in := services.KulakanInput{
		ProdukID:       req.ProdukID,
		JumlahKarung:   req.JumlahKarung,
		HargaPerKarung: req.HargaPerKarung,
	}
	if req.Tanggal != "" {
		t, err := time.Parse("2006-01-02", req.Tanggal)
		if err != nil {
			utils.Error(c, "tanggal must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		in.Tanggal = &t
	}

	kulakan, err := ctl.service.Create(c.Request.Context(), in)
	if err != nil {
		utils.Error(c, err.Error(), http.StatusBadRequest)
		return
	}
	utils.Created(c, kulakan, "Kulakan berhasil dicatat")
}

func (ctl *KulakanController) Delete(c *gin.Context) {
	err := ctl.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrKulakanNotFound) {
			utils.NotFound(c, "Kulakan not found")
			return
		}
		utils.DBError(c, err, "Failed to delete kulakan")
		return
	}
	utils.Success(c, nil, "Kulakan berhasil dihapus")
}
