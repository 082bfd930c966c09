package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/middleware"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/requests"
	"github.com/arifrhmanh/toko-kayu-app/services"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

type OrderController struct {
	orders   *services.OrderService
	payments *services.PaymentService
}

func NewOrderController(orders *services.OrderService, payments *services.PaymentService) *OrderController {
	return &OrderController{orders: orders, payments: payments}
}

// List mengembalikan order milik user; admin melihat semua order. Bisa
// difilter ?status=.
func (ctl *OrderController) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Order{})
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		utils.Error(c, "from/to must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.DBError(c, err, "Failed to fetch orders")
		return
	}

	var orders []models.Order
	err = query.Preload("Items.Produk").Preload("Alamat").Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		utils.DBError(c, err, "Failed to fetch orders")
		return
	}

	utils.Paginated(c, orders, page, limit, total)
}

func (ctl *OrderController) GetByID(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := config.DB.Preload("Items.Produk").Preload("Alamat").Preload("User").
		Where("id = ?", c.Param("id"))
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", user.ID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		utils.DBError(c, err, "Order not found")
		return
	}
	utils.Success(c, order, "")
}

// Create membuat order pending lalu langsung meminta sesi pembayaran ke
// gateway. Kegagalan gateway tidak membatalkan order; pelanggan masih bisa
// memanggil payment/create belakangan.
func (ctl *OrderController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req requests.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "alamat_id and items are required", http.StatusBadRequest)
		return
	}

	items := make([]services.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.OrderItemInput{ProdukID: item.ProdukID, Jumlah: item.Jumlah})
	}

	order, err := ctl.orders.Create(c.Request.Context(), user.ID, req.AlamatID, items)
	if err != nil {
		var stockErr *services.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			utils.Error(c, stockErr.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrInvalidAlamat):
			utils.Error(c, "Address not found or does not belong to you", http.StatusBadRequest)
		default:
			utils.Error(c, err.Error(), http.StatusBadRequest)
		}
		return
	}

	withPayment, err := ctl.payments.CreateOrderPayment(c.Request.Context(), order.ID, user.ID)
	if err != nil {
		log.Printf("Failed to create payment session for order %s: %v", order.ID, err)
		utils.Created(c, order, "Order berhasil dibuat, pembayaran belum tersedia")
		return
	}

	utils.Created(c, withPayment, "Order berhasil dibuat")
}

// UpdateStatus menggerakkan status order maju di alur utama.
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	var req requests.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "status is required", http.StatusBadRequest)
		return
	}

	target := models.OrderStatus(req.Status)
	if target.FlowIndex() < 0 {
		utils.Error(c, "Invalid status. Valid statuses: pending, dibayar, dikemas, dikirim, selesai", http.StatusBadRequest)
		return
	}

	order, err := ctl.orders.UpdateStatus(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		var transErr *services.InvalidTransitionError
		var stockErr *services.InsufficientStockError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFound(c, "Order not found")
		case errors.As(err, &transErr):
			utils.Error(c, transErr.Error(), http.StatusBadRequest)
		case errors.As(err, &stockErr):
			utils.Error(c, stockErr.Error(), http.StatusBadRequest)
		default:
			utils.DBError(c, err, "Failed to update order status")
		}
		return
	}

	utils.Success(c, order, "Status order berhasil diperbarui")
}

// Cancel menghapus order pending milik user yang sedang login.
func (ctl *OrderController) Cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)

	err := ctl.orders.Cancel(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFound(c, "Order not found")
		case errors.Is(err, services.ErrOrderNotPending):
			utils.Error(c, "Only pending orders can be cancelled", http.StatusBadRequest)
		default:
			utils.DBError(c, err, "Failed to cancel order")
		}
		return
	}
	utils.Success(c, nil, "Order berhasil dibatalkan")
}
