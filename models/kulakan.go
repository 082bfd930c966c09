package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kulakan mencatat pembelian stok dari supplier. Membuatnya menambah stok
// produk dan membuat entri pengeluaran di keuangan; menghapusnya membalikkan
// keduanya.
type Kulakan struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ProdukID string `gorm:"column:produk_id;type:uuid;not null;index" json:"produk_id"`

	JumlahKarung   int `gorm:"column:jumlah_karung;not null" json:"jumlah_karung"`
	HargaPerKarung int `gorm:"column:harga_per_karung;not null" json:"harga_per_karung"`
	TotalHarga     int `gorm:"column:total_harga;not null" json:"total_harga"`

	Tanggal   time.Time `gorm:"column:tanggal" json:"tanggal"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Produk *Produk `gorm:"foreignKey:ProdukID;constraint:OnDelete:CASCADE" json:"produk,omitempty"`
}

func (Kulakan) TableName() string {
	return "kulakan"
}

func (k *Kulakan) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.Tanggal.IsZero() {
		k.Tanggal = time.Now()
	}
	return nil
}
