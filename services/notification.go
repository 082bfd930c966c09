package services

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/jobs"
	"github.com/arifrhmanh/toko-kayu-app/models"
)

// NotificationParams adalah isi notifikasi yang akan dikirim ke satu user.
type NotificationParams struct {
	UserID      string
	Judul       string
	Pesan       string
	Type        string
	ReferenceID string
}

// Notifier mengirim notifikasi ke user. Implementasi produksi menaruh task di
// antrean asynq; test memakai fake yang merekam panggilan.
type Notifier interface {
	Notify(ctx context.Context, p NotificationParams) error
}

// QueueNotifier menaruh notifikasi di antrean asynq; worker yang menuliskan
// baris notifikasi ke database.
type QueueNotifier struct {
	client *asynq.Client
}

func NewQueueNotifier(client *asynq.Client) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (q *QueueNotifier) Notify(ctx context.Context, p NotificationParams) error {
	task, err := jobs.NewNotificationTask(jobs.NotificationPayload{
		UserID:      p.UserID,
		Judul:       p.Judul,
		Pesan:       p.Pesan,
		Type:        p.Type,
		ReferenceID: p.ReferenceID,
	})
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// DirectNotifier menulis notifikasi langsung ke database, dipakai saat Redis
// tidak dikonfigurasi.
type DirectNotifier struct {
	db *gorm.DB
}

func NewDirectNotifier(db *gorm.DB) *DirectNotifier {
	return &DirectNotifier{db: db}
}

func (d *DirectNotifier) Notify(ctx context.Context, p NotificationParams) error {
	n := models.Notifikasi{
		UserID: p.UserID,
		Judul:  p.Judul,
		Pesan:  p.Pesan,
		Type:   p.Type,
	}
	if p.ReferenceID != "" {
		ref := p.ReferenceID
		n.ReferenceID = &ref
	}
	return d.db.WithContext(ctx).Create(&n).Error
}

// statusMessages adalah teks notifikasi per status yang dilihat pelanggan.
var statusMessages = map[models.OrderStatus]string{
	models.StatusDikemas: "Pesanan Anda sedang dikemas dan akan segera dikirim.",
	models.StatusDikirim: "Pesanan Anda sedang dalam perjalanan pengiriman.",
	models.StatusSelesai: "Pesanan Anda telah selesai. Terima kasih telah berbelanja!",
}

// OrderStatusNotification menyusun notifikasi perubahan status untuk pemilik
// order.
func OrderStatusNotification(order *models.Order, newStatus models.OrderStatus) NotificationParams {
	pesan, ok := statusMessages[newStatus]
	if !ok {
		pesan = fmt.Sprintf("Status pesanan berubah menjadi: %s", newStatus)
	}
	return NotificationParams{
		UserID:      order.UserID,
		Judul:       fmt.Sprintf("Status Pesanan: %s", titleCase(string(newStatus))),
		Pesan:       pesan,
		Type:        models.NotifTypeOrderStatus,
		ReferenceID: order.ID,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
