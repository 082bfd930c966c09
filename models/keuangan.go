package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JenisKeuangan string

const (
	JenisPemasukan   JenisKeuangan = "pemasukan"
	JenisPengeluaran JenisKeuangan = "pengeluaran"
)

func (j JenisKeuangan) Valid() bool {
	return j == JenisPemasukan || j == JenisPengeluaran
}

// ReferenceType menandai asal entri keuangan. Hanya entri manual yang boleh
// diubah atau dihapus lewat API; entri order/kulakan dibuat dan dibalikkan
// oleh alur yang memilikinya.
type ReferenceType string

const (
	ReferenceManual  ReferenceType = "manual"
	ReferenceOrder   ReferenceType = "order"
	ReferenceKulakan ReferenceType = "kulakan"
)

type Keuangan struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Jenis      JenisKeuangan `gorm:"column:jenis;size:20;not null;index" json:"jenis"`
	Jumlah     int           `gorm:"column:jumlah;not null" json:"jumlah"`
	Keterangan string        `gorm:"column:keterangan;size:255;not null" json:"keterangan"`

	ReferenceID   *string       `gorm:"column:reference_id;type:uuid" json:"reference_id"`
	ReferenceType ReferenceType `gorm:"column:reference_type;size:50;default:manual;index" json:"reference_type"`

	Tanggal   time.Time `gorm:"column:tanggal;index" json:"tanggal"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Keuangan) TableName() string {
	return "keuangan"
}

func (k *Keuangan) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.Tanggal.IsZero() {
		k.Tanggal = time.Now()
	}
	return nil
}

func (k *Keuangan) IsManual() bool {
	return k.ReferenceType == ReferenceManual
}
