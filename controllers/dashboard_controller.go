package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/services"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

// Status order yang dihitung sebagai penjualan di dashboard.
var paidStatuses = []models.OrderStatus{
	models.StatusDibayar,
	models.StatusDikemas,
	models.StatusDikirim,
	models.StatusSelesai,
}

type DashboardController struct {
	keuangan *services.KeuanganService
}

func NewDashboardController(keuangan *services.KeuanganService) *DashboardController {
	return &DashboardController{keuangan: keuangan}
}

// Overview mengembalikan angka-angka ringkas untuk halaman utama admin.
func (ctl *DashboardController) Overview(c *gin.Context) {
	var productCount, customerCount, lowStockCount, activeOrders, pendingOrders int64

	if err := config.DB.Model(&models.Produk{}).Count(&productCount).Error; err != nil {
		utils.DBError(c, err, "Failed to get dashboard overview")
		return
	}
	if err := config.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&customerCount).Error; err != nil {
		utils.DBError(c, err, "Failed to get dashboard overview")
		return
	}
	if err := config.DB.Model(&models.Produk{}).Where("stok < stok_minimum").Count(&lowStockCount).Error; err != nil {
		utils.DBError(c, err, "Failed to get dashboard overview")
		return
	}
	err := config.DB.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{models.StatusDibayar, models.StatusDikemas, models.StatusDikirim}).
		Count(&activeOrders).Error
	if err != nil {
		utils.DBError(c, err, "Failed to get dashboard overview")
		return
	}
	if err := config.DB.Model(&models.Order{}).Where("status = ?", models.StatusDibayar).Count(&pendingOrders).Error; err != nil {
		utils.DBError(c, err, "Failed to get dashboard overview")
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	var todayRow struct {
		Orders int64
		Sales  int64
	}
	err = config.DB.Model(&models.Order{}).
		Where("status IN ?", paidStatuses).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_harga), 0) AS sales").
		Scan(&todayRow).Error
	if err != nil {
		utils.DBError(c, err, "Failed to get dashboard overview")
		return
	}

	summary, err := ctl.keuangan.Summary(c.Request.Context(), nil, nil)
	if err != nil {
		utils.DBError(c, err, "Failed to get dashboard overview")
		return
	}

	utils.Success(c, gin.H{
		"products":      productCount,
		"active_orders": activeOrders,
		"customers":     customerCount,
		"low_stock":     lowStockCount,
		"today": gin.H{
			"orders": todayRow.Orders,
			"sales":  todayRow.Sales,
		},
		"pending_orders":    pendingOrders,
		"saldo":             summary.Saldo,
		"total_pemasukan":   summary.TotalPemasukan,
		"total_pengeluaran": summary.TotalPengeluaran,
	}, "")
}

type salesBucket struct {
	Bucket int64 `gorm:"column:bucket"`
	Orders int64 `gorm:"column:orders"`
	Sales  int64 `gorm:"column:sales"`
}

type chartPoint struct {
	Label  string `json:"label"`
	Orders int64  `json:"orders"`
	Sales  int64  `json:"sales"`
}

// Sales mengembalikan ringkasan penjualan plus data grafik dengan granularitas
// per jam (filter=day), per tanggal (filter=month), atau per bulan
// (filter=year).
func (ctl *DashboardController) Sales(c *gin.Context) {
	filter := c.DefaultQuery("filter", "day")

	base := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.Error(c, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		base = t
	}

	var start, end time.Time
	var bucketExpr string
	switch filter {
	case "day":
		start = time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
		end = start.Add(24*time.Hour - time.Nanosecond)
		bucketExpr = "EXTRACT(HOUR FROM created_at)"
	case "month":
		start = time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		bucketExpr = "EXTRACT(DAY FROM created_at)"
	case "year":
		start = time.Date(base.Year(), 1, 1, 0, 0, 0, 0, base.Location())
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		bucketExpr = "EXTRACT(MONTH FROM created_at)"
	default:
		utils.Error(c, "filter must be day, month, or year", http.StatusBadRequest)
		return
	}

	var summaryRow struct {
		TotalOrders int64
		TotalSales  int64
	}
	err := config.DB.Model(&models.Order{}).
		Where("status IN ?", paidStatuses).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total_harga), 0) AS total_sales").
		Scan(&summaryRow).Error
	if err != nil {
		utils.DBError(c, err, "Failed to get sales summary")
		return
	}

	var buckets []salesBucket
	err = config.DB.Model(&models.Order{}).
		Where("status IN ?", paidStatuses).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Select(bucketExpr + " AS bucket, COUNT(*) AS orders, COALESCE(SUM(total_harga), 0) AS sales").
		Group(bucketExpr).
		Order(bucketExpr).
		Scan(&buckets).Error
	if err != nil {
		utils.DBError(c, err, "Failed to get sales summary")
		return
	}

	chart := make([]chartPoint, 0, len(buckets))
	for _, b := range buckets {
		chart = append(chart, chartPoint{
			Label:  bucketLabel(filter, b.Bucket),
			Orders: b.Orders,
			Sales:  b.Sales,
		})
	}

	utils.Success(c, gin.H{
		"filter":     filter,
		"start_date": start,
		"end_date":   end,
		"summary": gin.H{
			"total_orders": summaryRow.TotalOrders,
			"total_sales":  summaryRow.TotalSales,
		},
		"chart": chart,
	}, "")
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func bucketLabel(filter string, bucket int64) string {
	switch filter {
	case "day":
		return fmt.Sprintf("%d:00", bucket)
	case "year":
		if bucket >= 1 && bucket <= 12 {
			return monthNames[bucket-1]
		}
	}
	return strconv.FormatInt(bucket, 10)
}

// LowStock mengembalikan produk yang stoknya di bawah ambang minimum.
func (ctl *DashboardController) LowStock(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var produk []models.Produk
	err := config.DB.Where("stok < stok_minimum").
		Order("stok ASC").
		Limit(limit).
		Find(&produk).Error
	if err != nil {
		utils.DBError(c, err, "Failed to get low stock products")
		return
	}

	utils.Success(c, produk, "")
}
