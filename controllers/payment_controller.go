package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/middleware"
	"github.com/arifrhmanh/toko-kayu-app/requests"
	"github.com/arifrhmanh/toko-kayu-app/services"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// Create meminta sesi pembayaran Snap untuk order pending milik user.
func (ctl *PaymentController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req requests.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, "order_id is required", http.StatusBadRequest)
		return
	}

	order, err := ctl.payments.CreateOrderPayment(c.Request.Context(), req.OrderID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFound(c, "Order not found")
		case errors.Is(err, services.ErrOrderNotPayable):
			utils.Error(c, "Order is not in a payable state", http.StatusBadRequest)
		default:
			log.Printf("Payment creation failed for order %s: %v", req.OrderID, err)
			utils.ServerError(c, "Failed to create payment")
		}
		return
	}

	utils.Success(c, gin.H{
		"order_id":     order.ID,
		"token":        order.MidtransToken,
		"redirect_url": order.MidtransRedirectURL,
	}, "Pembayaran berhasil dibuat")
}

// Callback menerima notifikasi dari Midtrans. Endpoint ini tanpa auth; bukti
// keasliannya adalah signature di payload.
func (ctl *PaymentController) Callback(c *gin.Context) {
	var n services.MidtransNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		utils.Error(c, "Invalid notification payload", http.StatusBadRequest)
		return
	}

	if err := ctl.payments.HandleNotification(c.Request.Context(), &n); err != nil {
		log.Printf("Midtrans callback for %s failed: %v", n.OrderID, err)
		utils.Error(c, err.Error(), http.StatusBadRequest)
		return
	}

	utils.Success(c, nil, "Notification processed")
}

// Status menanyakan status transaksi ke gateway dan merekonsiliasi order.
func (ctl *PaymentController) Status(c *gin.Context) {
	user := middleware.CurrentUser(c)

	order, err := ctl.payments.CheckPaymentStatus(c.Request.Context(), c.Param("orderId"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFound(c, "Order not found")
		case errors.Is(err, services.ErrNoPaymentRecord):
			utils.Error(c, "Order has no payment transaction yet", http.StatusBadRequest)
		default:
			log.Printf("Payment status check failed for order %s: %v", c.Param("orderId"), err)
			utils.ServerError(c, "Failed to check payment status")
		}
		return
	}

	utils.Success(c, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	}, "")
}

// Halaman pendaratan setelah pelanggan kembali dari halaman pembayaran Snap.
// Midtrans mengarahkan browser ke sini, bukan API call.

func (ctl *PaymentController) Finish(c *gin.Context) {
	renderLanding(c, "Pembayaran Selesai", "Terima kasih! Pembayaran Anda sedang kami proses.")
}

func (ctl *PaymentController) Unfinish(c *gin.Context) {
	renderLanding(c, "Pembayaran Belum Selesai", "Pembayaran Anda belum selesai. Silakan lanjutkan dari halaman pesanan.")
}

func (ctl *PaymentController) Error(c *gin.Context) {
	renderLanding(c, "Pembayaran Gagal", "Terjadi kesalahan saat memproses pembayaran. Silakan coba lagi.")
}

func renderLanding(c *gin.Context, title, message string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="id">
<head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 80px;">
  <h1>%s</h1>
  <p>%s</p>
  <p>Anda dapat menutup halaman ini dan kembali ke aplikasi.</p>
</body>
</html>`, title, title, message)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
