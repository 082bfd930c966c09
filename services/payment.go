package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

var (
	ErrOrderNotPayable = errors.New("order is not in a payable state")
	ErrNoPaymentRecord = errors.New("order has no payment transaction")
)

// PaymentService mengurus integrasi Midtrans: pembuatan transaksi Snap dan
// rekonsiliasi status dari webhook maupun polling manual.
type PaymentService struct {
	db       *gorm.DB
	midtrans *MidtransClient
	notifier Notifier
}

func NewPaymentService(db *gorm.DB, midtrans *MidtransClient, notifier Notifier) *PaymentService {
	return &PaymentService{db: db, midtrans: midtrans, notifier: notifier}
}

// CreateOrderPayment membuat transaksi Snap untuk order pending milik user dan
// menyimpan token serta korelasi midtrans_order_id di baris order.
func (s *PaymentService) CreateOrderPayment(ctx context.Context, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Produk").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.Status != models.StatusPending {
		return nil, ErrOrderNotPayable
	}

	// Token lama masih bisa dipakai ulang selama order belum dibayar.
	if order.MidtransToken != nil && *order.MidtransToken != "" {
		return &order, nil
	}

	// ID unik per percobaan supaya Midtrans tidak menolak order_id bekas.
	midtransOrderID := fmt.Sprintf("ORDER-%s-%d", order.ID[:8], time.Now().UnixMilli())

	customer := CustomerDetails{
		FirstName:  order.User.NamaLengkap,
		CustomerID: order.UserID,
	}
	if order.User.NoHP != nil {
		customer.Phone = *order.User.NoHP
	}

	items := make([]ItemDetail, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.ProdukID
		if item.Produk != nil {
			name = item.Produk.NamaProduk
		}
		items = append(items, ItemDetail{
			ID:       item.ProdukID,
			Price:    item.HargaSatuan,
			Quantity: item.Jumlah,
			Name:     name,
		})
	}

	snap, err := s.midtrans.CreateTransaction(ctx, midtransOrderID, order.TotalHarga, customer, items)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"midtrans_order_id":     midtransOrderID,
			"midtrans_token":        snap.Token,
			"midtrans_redirect_url": snap.RedirectURL,
			"updated_at":            time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}

	order.MidtransOrderID = &midtransOrderID
	order.MidtransToken = &snap.Token
	order.MidtransRedirectURL = &snap.RedirectURL
	return &order, nil
}

// HandleNotification merekonsiliasi status order dari satu notifikasi
// Midtrans. Pemanggilan berulang dengan notifikasi yang sama aman: efek
// samping pembayaran hanya dijalankan saat order masih pending.
func (s *PaymentService) HandleNotification(ctx context.Context, n *MidtransNotification) error {
	if !s.midtrans.VerifySignature(n) {
		if s.midtrans.RejectInvalidSig {
			return fmt.Errorf("invalid signature for order %s", n.OrderID)
		}
		log.Printf("Warning: invalid midtrans signature for order %s, processing anyway", n.OrderID)
	}

	var order models.Order
	err := s.db.WithContext(ctx).
		Where("midtrans_order_id = ?", n.OrderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order with midtrans id %s not found", n.OrderID)
		}
		return err
	}

	if gross, err := decimal.NewFromString(n.GrossAmount); err == nil {
		if !gross.Equal(decimal.NewFromInt(int64(order.TotalHarga))) {
			log.Printf("Warning: gross_amount %s does not match order total %d for order %s",
				n.GrossAmount, order.TotalHarga, order.ID)
		}
	}

	rawResponse, _ := json.Marshal(n)

	switch {
	case IsTransactionSuccess(n.TransactionStatus, n.FraudStatus):
		return s.markPaid(ctx, &order, rawResponse)
	case n.TransactionStatus == "expire":
		return s.markFailed(ctx, &order, models.StatusExpired, rawResponse)
	case n.TransactionStatus == "deny" || n.TransactionStatus == "cancel" || n.TransactionStatus == "failure":
		return s.markFailed(ctx, &order, models.StatusBatal, rawResponse)
	case IsTransactionPending(n.TransactionStatus):
		return s.storeResponse(ctx, order.ID, rawResponse)
	default:
		log.Printf("Ignoring midtrans notification with status %q for order %s", n.TransactionStatus, order.ID)
		return s.storeResponse(ctx, order.ID, rawResponse)
	}
}

// markPaid memindahkan order pending ke dibayar, mencatat pemasukan di buku
// keuangan, lalu memberi tahu pelanggan dan semua admin. Order yang sudah
// dibayar atau lebih lanjut tidak disentuh.
func (s *PaymentService) markPaid(ctx context.Context, order *models.Order, raw []byte) error {
	if order.Status != models.StatusPending {
		return s.storeResponse(ctx, order.ID, raw)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":            models.StatusDibayar,
				"midtrans_response": raw,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Notifikasi yang sama sudah diproses lebih dulu.
			return nil
		}

		return recordOrderIncome(tx, order)
	})
	if err != nil {
		return err
	}
	order.Status = models.StatusDibayar

	s.notifyPaid(ctx, order)
	return nil
}

func (s *PaymentService) notifyPaid(ctx context.Context, order *models.Order) {
	customerNotif := NotificationParams{
		UserID:      order.UserID,
		Judul:       "Pembayaran Berhasil",
		Pesan:       fmt.Sprintf("Pembayaran sebesar Rp%d telah kami terima. Pesanan Anda segera diproses.", order.TotalHarga),
		Type:        models.NotifTypePayment,
		ReferenceID: order.ID,
	}
	if err := s.notifier.Notify(ctx, customerNotif); err != nil {
		log.Printf("Failed to notify customer for order %s: %v", order.ID, err)
	}

	var admins []models.User
	if err := s.db.WithContext(ctx).Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		log.Printf("Failed to load admins for payment notification: %v", err)
		return
	}
	for _, admin := range admins {
		p := NotificationParams{
			UserID:      admin.ID,
			Judul:       "Pesanan Baru Dibayar",
			Pesan:       fmt.Sprintf("Order #%s sebesar Rp%d telah dibayar dan menunggu dikemas.", order.ID[:8], order.TotalHarga),
			Type:        models.NotifTypePayment,
			ReferenceID: order.ID,
		}
		if err := s.notifier.Notify(ctx, p); err != nil {
			log.Printf("Failed to notify admin %s for order %s: %v", admin.ID, order.ID, err)
		}
	}
}

// markFailed menutup order pending sebagai expired atau batal. Order yang
// sudah bergerak dari pending dibiarkan apa adanya.
func (s *PaymentService) markFailed(ctx context.Context, order *models.Order, target models.OrderStatus, raw []byte) error {
	if order.Status != models.StatusPending {
		return s.storeResponse(ctx, order.ID, raw)
	}

	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":            target,
			"midtrans_response": raw,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		order.Status = target
	}
	return nil
}

func (s *PaymentService) storeResponse(ctx context.Context, orderID string, raw []byte) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"midtrans_response": raw,
			"updated_at":        time.Now(),
		}).Error
}

// CheckPaymentStatus menanyakan status transaksi ke Midtrans untuk satu order
// lalu merekonsiliasinya lewat jalur yang sama dengan webhook.
func (s *PaymentService) CheckPaymentStatus(ctx context.Context, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.MidtransOrderID == nil || *order.MidtransOrderID == "" {
		return nil, ErrNoPaymentRecord
	}

	n, err := s.midtrans.GetTransactionStatus(ctx, *order.MidtransOrderID)
	if err != nil {
		return nil, err
	}

	if err := s.HandleNotification(ctx, n); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Where("id = ?", order.ID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
