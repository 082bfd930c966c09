package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusDibayar OrderStatus = "dibayar"
	StatusDikemas OrderStatus = "dikemas"
	StatusDikirim OrderStatus = "dikirim"
	StatusSelesai OrderStatus = "selesai"

	// Hanya dapat dicapai dari pending lewat pembatalan atau notifikasi gateway.
	StatusExpired OrderStatus = "expired"
	StatusBatal   OrderStatus = "batal"
)

// statusFlow adalah urutan status utama. Transisi admin hanya boleh maju
// (atau tetap) di urutan ini.
var statusFlow = []OrderStatus{
	StatusPending,
	StatusDibayar,
	StatusDikemas,
	StatusDikirim,
	StatusSelesai,
}

// FlowIndex mengembalikan posisi status di alur utama, -1 untuk status
// terminal di luar alur (expired, batal) dan nilai tak dikenal.
func (s OrderStatus) FlowIndex() int {
	for i, st := range statusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransition melaporkan apakah perpindahan from→to diizinkan untuk
// transisi yang digerakkan admin: keduanya harus berada di alur utama dan
// tidak boleh mundur.
func CanTransition(from, to OrderStatus) bool {
	fi, ti := from.FlowIndex(), to.FlowIndex()
	if fi < 0 || ti < 0 {
		return false
	}
	return ti >= fi
}

// ValidStatuses dipakai untuk pesan validasi endpoint transisi.
func ValidStatuses() []OrderStatus {
	out := make([]OrderStatus, len(statusFlow))
	copy(out, statusFlow)
	return out
}

type Order struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   string  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	AlamatID *string `gorm:"column:alamat_id;type:uuid;index" json:"alamat_id"`

	Status     OrderStatus `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	TotalHarga int         `gorm:"column:total_harga;not null;default:0" json:"total_harga"`

	// Korelasi dengan gateway pembayaran.
	MidtransOrderID     *string        `gorm:"column:midtrans_order_id;size:100;index" json:"midtrans_order_id"`
	MidtransToken       *string        `gorm:"column:midtrans_token;type:text" json:"midtrans_token"`
	MidtransRedirectURL *string        `gorm:"column:midtrans_redirect_url;type:text" json:"midtrans_redirect_url"`
	MidtransResponse    datatypes.JSON `gorm:"column:midtrans_response" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	User   *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Alamat *Alamat     `gorm:"foreignKey:AlamatID;constraint:OnDelete:SET NULL" json:"alamat,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem membekukan harga produk saat order dibuat. Perubahan harga
// produk setelahnya tidak memengaruhi order lama.
type OrderItem struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID  string `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ProdukID string `gorm:"column:produk_id;type:uuid;not null;index" json:"produk_id"`

	Jumlah      int `gorm:"column:jumlah;not null" json:"jumlah"`
	HargaSatuan int `gorm:"column:harga_satuan;not null" json:"harga_satuan"`
	Subtotal    int `gorm:"column:subtotal;not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Produk *Produk `gorm:"foreignKey:ProdukID" json:"produk,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
