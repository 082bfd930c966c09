package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role membatasi nilai kolom role ke himpunan tertutup.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Username string `gorm:"column:username;size:50;uniqueIndex;not null" json:"username"`
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	Role     Role   `gorm:"column:role;size:20;not null;default:customer;index" json:"role"`

	NamaLengkap string  `gorm:"column:nama_lengkap;size:100;not null" json:"nama_lengkap"`
	NoHP        *string `gorm:"column:no_hp;size:20" json:"no_hp"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
