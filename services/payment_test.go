package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

func paymentFixture(t *testing.T) (*gorm.DB, *PaymentService, *fakeNotifier, *models.Order, *models.User, *models.User) {
	t.Helper()
	db := setupTestDB(t)

	admin := seedUser(t, db, "admin", models.RoleAdmin)
	customer := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, customer.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	notifier := &fakeNotifier{}
	orderSvc := NewOrderService(db, notifier)
	order, err := orderSvc.Create(context.Background(), customer.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 2},
	})
	require.NoError(t, err)

	midtransOrderID := "ORDER-" + order.ID[:8] + "-1700000000000"
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("midtrans_order_id", midtransOrderID).Error)
	order.MidtransOrderID = &midtransOrderID

	client := &MidtransClient{ServerKey: "SB-server-key"}
	svc := NewPaymentService(db, client, notifier)
	return db, svc, notifier, order, admin, customer
}

func settlementNotification(order *models.Order, serverKey string) *MidtransNotification {
	n := &MidtransNotification{
		OrderID:           *order.MidtransOrderID,
		TransactionStatus: "settlement",
		GrossAmount:       "100000.00",
		StatusCode:        "200",
		PaymentType:       "bank_transfer",
	}
	signNotification(n, serverKey)
	return n
}

func TestHandleNotificationSettlement(t *testing.T) {
	db, svc, notifier, order, admin, customer := paymentFixture(t)

	n := settlementNotification(order, "SB-server-key")
	require.NoError(t, svc.HandleNotification(context.Background(), n))

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusDibayar, fresh.Status)
	assert.NotEmpty(t, fresh.MidtransResponse)

	// Satu entri pemasukan yang merujuk order.
	var entries []models.Keuangan
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.JenisPemasukan, entries[0].Jenis)
	assert.Equal(t, models.ReferenceOrder, entries[0].ReferenceType)
	assert.Equal(t, 100000, entries[0].Jumlah)
	require.NotNil(t, entries[0].ReferenceID)
	assert.Equal(t, order.ID, *entries[0].ReferenceID)

	// Satu notifikasi untuk pelanggan dan satu untuk tiap admin.
	assert.Len(t, notifier.sentTo(customer.ID), 1)
	assert.Len(t, notifier.sentTo(admin.ID), 1)
}

func TestHandleNotificationIdempotent(t *testing.T) {
	db, svc, notifier, order, admin, customer := paymentFixture(t)

	n := settlementNotification(order, "SB-server-key")
	require.NoError(t, svc.HandleNotification(context.Background(), n))
	require.NoError(t, svc.HandleNotification(context.Background(), n))

	var ledgerCount int64
	db.Model(&models.Keuangan{}).Count(&ledgerCount)
	assert.Equal(t, int64(1), ledgerCount)

	assert.Len(t, notifier.sentTo(customer.ID), 1)
	assert.Len(t, notifier.sentTo(admin.ID), 1)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusDibayar, fresh.Status)
}

func TestHandleNotificationExpire(t *testing.T) {
	db, svc, _, order, _, _ := paymentFixture(t)

	n := &MidtransNotification{
		OrderID:           *order.MidtransOrderID,
		TransactionStatus: "expire",
		GrossAmount:       "100000.00",
		StatusCode:        "407",
	}
	signNotification(n, "SB-server-key")
	require.NoError(t, svc.HandleNotification(context.Background(), n))

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusExpired, fresh.Status)

	var ledgerCount int64
	db.Model(&models.Keuangan{}).Count(&ledgerCount)
	assert.Zero(t, ledgerCount)
}

func TestHandleNotificationDeny(t *testing.T) {
	db, svc, _, order, _, _ := paymentFixture(t)

	n := &MidtransNotification{
		OrderID:           *order.MidtransOrderID,
		TransactionStatus: "deny",
		GrossAmount:       "100000.00",
		StatusCode:        "202",
	}
	signNotification(n, "SB-server-key")
	require.NoError(t, svc.HandleNotification(context.Background(), n))

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusBatal, fresh.Status)
}

func TestHandleNotificationFailedIgnoredAfterPaid(t *testing.T) {
	db, svc, _, order, _, _ := paymentFixture(t)

	require.NoError(t, svc.HandleNotification(context.Background(), settlementNotification(order, "SB-server-key")))

	// Notifikasi expire yang datang terlambat tidak menurunkan status.
	n := &MidtransNotification{
		OrderID:           *order.MidtransOrderID,
		TransactionStatus: "expire",
		GrossAmount:       "100000.00",
		StatusCode:        "407",
	}
	signNotification(n, "SB-server-key")
	require.NoError(t, svc.HandleNotification(context.Background(), n))

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusDibayar, fresh.Status)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	_, svc, _, _, _, _ := paymentFixture(t)

	n := &MidtransNotification{
		OrderID:           "ORDER-tidakada-1",
		TransactionStatus: "settlement",
		GrossAmount:       "100000.00",
		StatusCode:        "200",
	}
	signNotification(n, "SB-server-key")
	assert.Error(t, svc.HandleNotification(context.Background(), n))
}

func TestHandleNotificationInvalidSignatureLenient(t *testing.T) {
	db, svc, _, order, _, _ := paymentFixture(t)

	n := settlementNotification(order, "SB-server-key")
	n.SignatureKey = "salah"
	require.NoError(t, svc.HandleNotification(context.Background(), n))

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusDibayar, fresh.Status)
}

func TestHandleNotificationInvalidSignatureStrict(t *testing.T) {
	db, svc, _, order, _, _ := paymentFixture(t)
	svc.midtrans.RejectInvalidSig = true

	n := settlementNotification(order, "SB-server-key")
	n.SignatureKey = "salah"
	assert.Error(t, svc.HandleNotification(context.Background(), n))

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusPending, fresh.Status)
}
