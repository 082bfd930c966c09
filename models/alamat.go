package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Alamat struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	Provinsi   string  `gorm:"column:provinsi;size:100;not null" json:"provinsi"`
	ProvinsiID *string `gorm:"column:provinsi_id;size:20" json:"provinsi_id"`

	Kota   string  `gorm:"column:kota;size:100;not null" json:"kota"`
	KotaID *string `gorm:"column:kota_id;size:20" json:"kota_id"`

	Kecamatan   string  `gorm:"column:kecamatan;size:100;not null" json:"kecamatan"`
	KecamatanID *string `gorm:"column:kecamatan_id;size:20" json:"kecamatan_id"`

	Kelurahan   string  `gorm:"column:kelurahan;size:100;not null" json:"kelurahan"`
	KelurahanID *string `gorm:"column:kelurahan_id;size:20" json:"kelurahan_id"`

	DetailAlamat *string `gorm:"column:detail_alamat;type:text" json:"detail_alamat"`
	IsDefault    bool    `gorm:"column:is_default;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Alamat) TableName() string {
	return "alamat"
}

func (a *Alamat) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
