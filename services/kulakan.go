package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

var ErrKulakanNotFound = errors.New("kulakan not found")

// KulakanService mencatat pembelian stok dari supplier. Setiap kulakan
// menggerakkan tiga tabel sekaligus: kulakan, stok produk, dan buku keuangan.
type KulakanService struct {
	db *gorm.DB
}

func NewKulakanService(db *gorm.DB) *KulakanService {
	return &KulakanService{db: db}
}

type KulakanInput struct {
	ProdukID       string
	JumlahKarung   int
	HargaPerKarung int
	Tanggal        *time.Time
}

// Create menyimpan kulakan baru, menambah stok produk, dan mencatat
// pengeluaran di keuangan dalam satu transaksi.
func (s *KulakanService) Create(ctx context.Context, in KulakanInput) (*models.Kulakan, error) {
	if in.JumlahKarung <= 0 {
		return nil, errors.New("jumlah_karung must be positive")
	}
	if in.HargaPerKarung < 0 {
		return nil, errors.New("harga_per_karung must not be negative")
	}

	var kulakan models.Kulakan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var produk models.Produk
		if err := tx.Where("id = ?", in.ProdukID).First(&produk).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s not found", in.ProdukID)
			}
			return err
		}

		kulakan = models.Kulakan{
			ProdukID:       in.ProdukID,
			JumlahKarung:   in.JumlahKarung,
			HargaPerKarung: in.HargaPerKarung,
			TotalHarga:     in.JumlahKarung * in.HargaPerKarung,
		}
		if in.Tanggal != nil {
			kulakan.Tanggal = *in.Tanggal
		}
		if err := tx.Create(&kulakan).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Produk{}).
			Where("id = ?", in.ProdukID).
			Updates(map[string]interface{}{
				"stok":       gorm.Expr("stok + ?", in.JumlahKarung),
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		refID := kulakan.ID
		return tx.Create(&models.Keuangan{
			Jenis:         models.JenisPengeluaran,
			Jumlah:        kulakan.TotalHarga,
			Keterangan:    fmt.Sprintf("Kulakan %s (%d karung)", produk.NamaProduk, in.JumlahKarung),
			ReferenceID:   &refID,
			ReferenceType: models.ReferenceKulakan,
			Tanggal:       kulakan.Tanggal,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &kulakan, nil
}

// Delete membalikkan satu kulakan: stok produk dikurangi kembali (mentok di 0
// bila stoknya sudah terjual) dan entri keuangannya dihapus.
func (s *KulakanService) Delete(ctx context.Context, kulakanID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var kulakan models.Kulakan
		if err := tx.Where("id = ?", kulakanID).First(&kulakan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrKulakanNotFound
			}
			return err
		}

		var produk models.Produk
		if err := tx.Where("id = ?", kulakan.ProdukID).First(&produk).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		} else {
			newStok := produk.Stok - kulakan.JumlahKarung
			if newStok < 0 {
				newStok = 0
			}
			err := tx.Model(&models.Produk{}).
				Where("id = ?", produk.ID).
				Updates(map[string]interface{}{"stok": newStok, "updated_at": time.Now()}).Error
			if err != nil {
				return err
			}
		}

		err := tx.Where("reference_id = ? AND reference_type = ?", kulakan.ID, models.ReferenceKulakan).
			Delete(&models.Keuangan{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&kulakan).Error
	})
}
