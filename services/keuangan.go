package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

// KeuanganSummary adalah ringkasan buku keuangan untuk satu rentang waktu.
// Profit hanya menghitung pemasukan order dikurangi pengeluaran kulakan;
// entri manual tidak memengaruhinya.
type KeuanganSummary struct {
	TotalPemasukan   int `json:"total_pemasukan"`
	TotalPengeluaran int `json:"total_pengeluaran"`
	Saldo            int `json:"saldo"`

	// Penjualan dan Kulakan hanya menghitung entri otomatis dari order dan
	// kulakan.
	Penjualan int `json:"penjualan"`
	Kulakan   int `json:"kulakan"`
	Profit    int `json:"profit"`
}

type KeuanganService struct {
	db *gorm.DB
}

func NewKeuanganService(db *gorm.DB) *KeuanganService {
	return &KeuanganService{db: db}
}

// Summary menjumlahkan pemasukan dan pengeluaran, opsional dibatasi rentang
// tanggal (inklusif di kedua ujung).
func (s *KeuanganService) Summary(ctx context.Context, from, to *time.Time) (*KeuanganSummary, error) {
	query := s.db.WithContext(ctx).Model(&models.Keuangan{})
	if from != nil {
		query = query.Where("tanggal >= ?", *from)
	}
	if to != nil {
		query = query.Where("tanggal <= ?", *to)
	}

	var row struct {
		TotalPemasukan   int
		TotalPengeluaran int
		PemasukanOrder   int
		BiayaKulakan     int
	}
	err := query.Select(
		"COALESCE(SUM(CASE WHEN jenis = ? THEN jumlah ELSE 0 END), 0) AS total_pemasukan, "+
			"COALESCE(SUM(CASE WHEN jenis = ? THEN jumlah ELSE 0 END), 0) AS total_pengeluaran, "+
			"COALESCE(SUM(CASE WHEN jenis = ? AND reference_type = ? THEN jumlah ELSE 0 END), 0) AS pemasukan_order, "+
			"COALESCE(SUM(CASE WHEN jenis = ? AND reference_type = ? THEN jumlah ELSE 0 END), 0) AS biaya_kulakan",
		models.JenisPemasukan, models.JenisPengeluaran,
		models.JenisPemasukan, models.ReferenceOrder,
		models.JenisPengeluaran, models.ReferenceKulakan,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &KeuanganSummary{
		TotalPemasukan:   row.TotalPemasukan,
		TotalPengeluaran: row.TotalPengeluaran,
		Saldo:            row.TotalPemasukan - row.TotalPengeluaran,
		Penjualan:        row.PemasukanOrder,
		Kulakan:          row.BiayaKulakan,
		Profit:           row.PemasukanOrder - row.BiayaKulakan,
	}, nil
}
