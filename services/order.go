package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidAlamat   = errors.New("invalid address")
	ErrOrderNotPending = errors.New("only pending orders can be cancelled")
)

// InsufficientStockError menyebut produk dan sisa stok agar pesan 400 ke
// klien informatif.
type InsufficientStockError struct {
	NamaProduk string
	Tersedia   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d", e.NamaProduk, e.Tersedia)
}

// InvalidTransitionError menolak perpindahan status yang mundur di alur
// pending→dibayar→dikemas→dikirim→selesai.
type InvalidTransitionError struct {
	From, To models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot change status from %s to %s", e.From, e.To)
}

type OrderItemInput struct {
	ProdukID string
	Jumlah   int
}

// OrderService memegang alur hidup order: pembuatan dengan snapshot harga,
// transisi status dengan efek samping stok, dan pembatalan.
type OrderService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	return &OrderService{db: db, notifier: notifier}
}

// Create membuat order pending beserta item-itemnya dalam satu transaksi.
// Harga diambil dari tabel produk saat ini, bukan dari klien, dan stok belum
// dikurangi di tahap ini.
func (s *OrderService) Create(ctx context.Context, userID, alamatID string, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errors.New("items array is required and must not be empty")
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alamat models.Alamat
		if err := tx.Where("id = ? AND user_id = ?", alamatID, userID).First(&alamat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidAlamat
			}
			return err
		}

		totalHarga := 0
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			if item.ProdukID == "" || item.Jumlah <= 0 {
				return errors.New("each item must have produk_id and jumlah > 0")
			}

			var produk models.Produk
			if err := tx.Where("id = ?", item.ProdukID).First(&produk).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s not found", item.ProdukID)
				}
				return err
			}

			if produk.Stok < item.Jumlah {
				return &InsufficientStockError{NamaProduk: produk.NamaProduk, Tersedia: produk.Stok}
			}

			subtotal := produk.HargaJual * item.Jumlah
			totalHarga += subtotal
			orderItems = append(orderItems, models.OrderItem{
				ProdukID:    item.ProdukID,
				Jumlah:      item.Jumlah,
				HargaSatuan: produk.HargaJual,
				Subtotal:    subtotal,
			})
		}

		aid := alamatID
		order = models.Order{
			UserID:     userID,
			AlamatID:   &aid,
			Status:     models.StatusPending,
			TotalHarga: totalHarga,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}
		order.Items = orderItems
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus memindahkan status order maju di alur utama. Transisi ke
// dikirim mengurangi stok tiap item tepat satu kali, atomik terhadap
// perubahan statusnya.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error) {
	var order models.Order
	var oldStatus models.OrderStatus

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		oldStatus = order.Status
		if !models.CanTransition(oldStatus, target) {
			return &InvalidTransitionError{From: oldStatus, To: target}
		}

		// Transisi melewati dibayar mencatat pemasukan, kecuali alur
		// pembayaran sudah menuliskannya.
		if oldStatus == models.StatusPending && target.FlowIndex() >= models.StatusDibayar.FlowIndex() {
			if err := recordOrderIncome(tx, &order); err != nil {
				return err
			}
		}

		// Stok baru dikurangi saat pengiriman, dan hanya sekali.
		if target == models.StatusDikirim && oldStatus != models.StatusDikirim {
			var items []models.OrderItem
			if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
				return err
			}
			for _, item := range items {
				if err := decrementStock(tx, item.ProdukID, item.Jumlah); err != nil {
					return err
				}
			}
		}

		order.Status = target
		return tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{"status": target, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != target {
		notif := OrderStatusNotification(&order, target)
		if err := s.notifier.Notify(ctx, notif); err != nil {
			log.Printf("Failed to notify order %s status change: %v", order.ID, err)
		}
	}
	return &order, nil
}

// recordOrderIncome menulis entri pemasukan untuk satu order, paling banyak
// satu kali seumur hidup order itu.
func recordOrderIncome(tx *gorm.DB, order *models.Order) error {
	var count int64
	err := tx.Model(&models.Keuangan{}).
		Where("reference_id = ? AND reference_type = ?", order.ID, models.ReferenceOrder).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	refID := order.ID
	return tx.Create(&models.Keuangan{
		Jenis:         models.JenisPemasukan,
		Jumlah:        order.TotalHarga,
		Keterangan:    fmt.Sprintf("Pembayaran order #%s", order.ID[:8]),
		ReferenceID:   &refID,
		ReferenceType: models.ReferenceOrder,
	}).Error
}

// decrementStock mengurangi stok dengan guard di SQL supaya dua pengiriman
// bersamaan tidak membuat stok negatif.
func decrementStock(tx *gorm.DB, produkID string, jumlah int) error {
	res := tx.Model(&models.Produk{}).
		Where("id = ? AND stok >= ?", produkID, jumlah).
		Updates(map[string]interface{}{
			"stok":       gorm.Expr("stok - ?", jumlah),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var produk models.Produk
		if err := tx.Where("id = ?", produkID).First(&produk).Error; err != nil {
			return fmt.Errorf("product %s not found", produkID)
		}
		return &InsufficientStockError{NamaProduk: produk.NamaProduk, Tersedia: produk.Stok}
	}
	return nil
}

// Cancel menghapus order pending milik user beserta itemnya. Stok dan
// keuangan belum tersentuh pada order pending, jadi tidak ada yang perlu
// dibalikkan.
func (s *OrderService) Cancel(ctx context.Context, orderID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status != models.StatusPending {
			return ErrOrderNotPending
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}
