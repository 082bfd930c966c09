package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotifTypeOrderStatus = "order_status"
	NotifTypePayment     = "payment"
	NotifTypeInfo        = "info"
)

type Notifikasi struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	Judul string `gorm:"column:judul;size:100;not null" json:"judul"`
	Pesan string `gorm:"column:pesan;type:text;not null" json:"pesan"`
	Type  string `gorm:"column:type;size:50" json:"type"`

	ReferenceID *string `gorm:"column:reference_id;type:uuid" json:"reference_id"`
	IsRead      bool    `gorm:"column:is_read;default:false;index" json:"is_read"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Notifikasi) TableName() string {
	return "notifikasi"
}

func (n *Notifikasi) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
