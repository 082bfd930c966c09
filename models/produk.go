package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Produk struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	NamaProduk string  `gorm:"column:nama_produk;size:150;not null" json:"nama_produk"`
	HargaJual  int     `gorm:"column:harga_jual;not null;default:0" json:"harga_jual"`
	GambarURL  *string `gorm:"column:gambar_url;size:500" json:"gambar_url"`

	Stok        int `gorm:"column:stok;not null;default:0" json:"stok"`
	StokMinimum int `gorm:"column:stok_minimum;not null;default:10" json:"stok_minimum"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Produk) TableName() string {
	return "produk"
}

func (p *Produk) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsLowStock melaporkan apakah stok sudah di bawah ambang minimum.
func (p *Produk) IsLowStock() bool {
	return p.Stok < p.StokMinimum
}
