package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

func TestKulakanCreateMovesStockAndLedger(t *testing.T) {
	db := setupTestDB(t)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 5)

	svc := NewKulakanService(db)
	kulakan, err := svc.Create(context.Background(), KulakanInput{
		ProdukID:       kayu.ID,
		JumlahKarung:   20,
		HargaPerKarung: 30000,
	})
	require.NoError(t, err)
	assert.Equal(t, 600000, kulakan.TotalHarga)

	var fresh models.Produk
	require.NoError(t, db.First(&fresh, "id = ?", kayu.ID).Error)
	assert.Equal(t, 25, fresh.Stok)

	var entry models.Keuangan
	require.NoError(t, db.First(&entry, "reference_id = ?", kulakan.ID).Error)
	assert.Equal(t, models.JenisPengeluaran, entry.Jenis)
	assert.Equal(t, models.ReferenceKulakan, entry.ReferenceType)
	assert.Equal(t, 600000, entry.Jumlah)
}

func TestKulakanCreateRejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 5)

	svc := NewKulakanService(db)

	_, err := svc.Create(context.Background(), KulakanInput{
		ProdukID: kayu.ID, JumlahKarung: 0, HargaPerKarung: 30000,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), KulakanInput{
		ProdukID: kayu.ID, JumlahKarung: 5, HargaPerKarung: -1,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), KulakanInput{
		ProdukID: "00000000-0000-0000-0000-000000000000", JumlahKarung: 5, HargaPerKarung: 30000,
	})
	assert.Error(t, err)

	// Tidak ada efek samping yang tersisa.
	var count int64
	db.Model(&models.Keuangan{}).Count(&count)
	assert.Zero(t, count)
	var fresh models.Produk
	require.NoError(t, db.First(&fresh, "id = ?", kayu.ID).Error)
	assert.Equal(t, 5, fresh.Stok)
}

func TestKulakanDeleteReversesStockAndLedger(t *testing.T) {
	db := setupTestDB(t)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 5)

	svc := NewKulakanService(db)
	kulakan, err := svc.Create(context.Background(), KulakanInput{
		ProdukID: kayu.ID, JumlahKarung: 20, HargaPerKarung: 30000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), kulakan.ID))

	var fresh models.Produk
	require.NoError(t, db.First(&fresh, "id = ?", kayu.ID).Error)
	assert.Equal(t, 5, fresh.Stok)

	var ledgerCount, kulakanCount int64
	db.Model(&models.Keuangan{}).Count(&ledgerCount)
	db.Model(&models.Kulakan{}).Count(&kulakanCount)
	assert.Zero(t, ledgerCount)
	assert.Zero(t, kulakanCount)
}

func TestKulakanDeleteClampsStockAtZero(t *testing.T) {
	db := setupTestDB(t)
	kayu := seedProduk(t, db, "Kayu Jati", 50000, 0)

	svc := NewKulakanService(db)
	kulakan, err := svc.Create(context.Background(), KulakanInput{
		ProdukID: kayu.ID, JumlahKarung: 20, HargaPerKarung: 30000,
	})
	require.NoError(t, err)

	// Stok hasil kulakan sudah keburu terjual.
	require.NoError(t, db.Model(&models.Produk{}).Where("id = ?", kayu.ID).Update("stok", 3).Error)

	require.NoError(t, svc.Delete(context.Background(), kulakan.ID))

	var fresh models.Produk
	require.NoError(t, db.First(&fresh, "id = ?", kayu.ID).Error)
	assert.Equal(t, 0, fresh.Stok)
}

func TestKulakanDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewKulakanService(db)
	err := svc.Delete(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrKulakanNotFound)
}
