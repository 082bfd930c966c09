package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

func seedKeuangan(t *testing.T, db *gorm.DB, jenis models.JenisKeuangan, jumlah int, refType models.ReferenceType, tanggal time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Keuangan{
		Jenis:         jenis,
		Jumlah:        jumlah,
		Keterangan:    "test",
		ReferenceType: refType,
		Tanggal:       tanggal,
	}).Error)
}

func TestKeuanganSummary(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	seedKeuangan(t, db, models.JenisPemasukan, 100000, models.ReferenceOrder, now)
	seedKeuangan(t, db, models.JenisPemasukan, 50000, models.ReferenceManual, now)
	seedKeuangan(t, db, models.JenisPengeluaran, 60000, models.ReferenceKulakan, now)
	seedKeuangan(t, db, models.JenisPengeluaran, 10000, models.ReferenceManual, now)

	svc := NewKeuanganService(db)
	summary, err := svc.Summary(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 150000, summary.TotalPemasukan)
	assert.Equal(t, 70000, summary.TotalPengeluaran)
	assert.Equal(t, 80000, summary.Saldo)

	// Profit hanya dari pemasukan order dikurangi biaya kulakan.
	assert.Equal(t, 100000, summary.Penjualan)
	assert.Equal(t, 60000, summary.Kulakan)
	assert.Equal(t, 40000, summary.Profit)
}

func TestKeuanganSummaryDateRange(t *testing.T) {
	db := setupTestDB(t)

	lastMonth := time.Now().AddDate(0, -1, 0)
	today := time.Now()

	seedKeuangan(t, db, models.JenisPemasukan, 100000, models.ReferenceOrder, lastMonth)
	seedKeuangan(t, db, models.JenisPemasukan, 200000, models.ReferenceOrder, today)

	from := today.AddDate(0, 0, -1)
	svc := NewKeuanganService(db)
	summary, err := svc.Summary(context.Background(), &from, nil)
	require.NoError(t, err)
	assert.Equal(t, 200000, summary.TotalPemasukan)
}

func TestKeuanganSummaryEmptyRange(t *testing.T) {
	db := setupTestDB(t)
	seedKeuangan(t, db, models.JenisPemasukan, 100000, models.ReferenceOrder, time.Now())

	from := time.Now().AddDate(1, 0, 0)
	to := from.AddDate(0, 1, 0)

	svc := NewKeuanganService(db)
	summary, err := svc.Summary(context.Background(), &from, &to)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalPemasukan)
	assert.Zero(t, summary.TotalPengeluaran)
	assert.Zero(t, summary.Saldo)
	assert.Zero(t, summary.Profit)
}
