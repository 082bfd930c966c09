package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

func TestOrderCreateComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)
	triplek := seedProduk(t, db, "Triplek 9mm", 85000, 5)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 2},
		{ProdukID: triplek.ID, Jumlah: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 2*50000+3*85000, order.TotalHarga)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 50000, order.Items[0].HargaSatuan)
	assert.Equal(t, 100000, order.Items[0].Subtotal)

	// Stok belum berkurang saat order dibuat.
	var fresh models.Produk
	require.NoError(t, db.First(&fresh, "id = ?", kayu.ID).Error)
	assert.Equal(t, 10, fresh.Stok)
}

func TestOrderCreatePriceSnapshotImmutable(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 2},
	})
	require.NoError(t, err)

	// Kenaikan harga produk tidak mengubah order lama.
	require.NoError(t, db.Model(&models.Produk{}).Where("id = ?", kayu.ID).Update("harga_jual", 75000).Error)

	var item models.OrderItem
	require.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	assert.Equal(t, 50000, item.HargaSatuan)
	assert.Equal(t, 100000, item.Subtotal)
}

func TestOrderCreateInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 3)

	svc := NewOrderService(db, &fakeNotifier{})
	_, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 5},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Kayu Jati", stockErr.NamaProduk)
	assert.Equal(t, 3, stockErr.Tersedia)

	// Tidak ada order atau item yang tersisa setelah rollback.
	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestOrderCreateRejectsForeignAlamat(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	other := seedUser(t, db, "siti2024", models.RoleCustomer)
	alamatOther := seedAlamat(t, db, other.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	_, err := svc.Create(context.Background(), user.ID, alamatOther.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidAlamat)
}

func TestOrderCreateEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)

	svc := NewOrderService(db, &fakeNotifier{})
	_, err := svc.Create(context.Background(), user.ID, alamat.ID, nil)
	assert.Error(t, err)
}

func TestUpdateStatusBackwardRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 2},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusDikemas)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusPending)
	var transErr *InvalidTransitionError
	require.ErrorAs(t, err, &transErr)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusDikemas, fresh.Status)
}

func TestUpdateStatusDikirimDecrementsOnce(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	notifier := &fakeNotifier{}
	svc := NewOrderService(db, notifier)
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 2},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusDikirim)
	require.NoError(t, err)

	var fresh models.Produk
	require.NoError(t, db.First(&fresh, "id = ?", kayu.ID).Error)
	assert.Equal(t, 8, fresh.Stok)

	// Transisi ulang ke dikirim tidak mengurangi stok lagi.
	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusDikirim)
	require.NoError(t, err)
	require.NoError(t, db.First(&fresh, "id = ?", kayu.ID).Error)
	assert.Equal(t, 8, fresh.Stok)
}

func TestUpdateStatusDikirimInsufficientStockAborts(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 4},
	})
	require.NoError(t, err)

	// Stok habis terjual lewat jalur lain sebelum pengiriman.
	require.NoError(t, db.Model(&models.Produk{}).Where("id = ?", kayu.ID).Update("stok", 1).Error)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusDikirim)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Tersedia)

	// Status dan stok tidak berubah.
	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusPending, fresh.Status)
	var freshProduk models.Produk
	require.NoError(t, db.First(&freshProduk, "id = ?", kayu.ID).Error)
	assert.Equal(t, 1, freshProduk.Stok)
}

func TestUpdateStatusNotifiesOwner(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	notifier := &fakeNotifier{}
	svc := NewOrderService(db, notifier)
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 1},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusDikemas)
	require.NoError(t, err)

	sent := notifier.sentTo(user.ID)
	require.Len(t, sent, 1)
	assert.Equal(t, "Status Pesanan: Dikemas", sent[0].Judul)
	assert.Equal(t, order.ID, sent[0].ReferenceID)
}

func TestUpdateStatusDibayarRecordsIncomeOnce(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 2},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusDibayar)
	require.NoError(t, err)

	var entries []models.Keuangan
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.JenisPemasukan, entries[0].Jenis)
	assert.Equal(t, 100000, entries[0].Jumlah)
	assert.Equal(t, models.ReferenceOrder, entries[0].ReferenceType)

	// Transisi lanjutan tidak menggandakan entri.
	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusDikemas)
	require.NoError(t, err)
	var count int64
	db.Model(&models.Keuangan{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCancelPendingOnly(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), order.ID, user.ID))

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestCancelPaidOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 1},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.StatusDibayar).Error)

	err = svc.Cancel(context.Background(), order.ID, user.ID)
	assert.ErrorIs(t, err, ErrOrderNotPending)
}

func TestCancelForeignOrderNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "budi2024", models.RoleCustomer)
	other := seedUser(t, db, "siti2024", models.RoleCustomer)
	alamat := seedAlamat(t, db, user.ID)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 10)

	svc := NewOrderService(db, &fakeNotifier{})
	order, err := svc.Create(context.Background(), user.ID, alamat.ID, []OrderItemInput{
		{ProdukID: kayu.ID, Jumlah: 1},
	})
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), order.ID, other.ID)
	assert.True(t, errors.Is(err, ErrOrderNotFound))
}
