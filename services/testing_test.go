package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

// setupTestDB membuka sqlite in-memory dengan skema lengkap. Satu koneksi
// saja supaya semua query melihat database yang sama.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Alamat{},
		&models.Produk{},
		&models.Kulakan{},
		&models.Order{},
		&models.OrderItem{},
		&models.Keuangan{},
		&models.Notifikasi{},
		&models.RefreshToken{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:    username,
		Password:    "hashed",
		Role:        role,
		NamaLengkap: "Test " + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAlamat(t *testing.T, db *gorm.DB, userID string) *models.Alamat {
	t.Helper()
	alamat := &models.Alamat{
		UserID:    userID,
		Provinsi:  "Jawa Timur",
		Kota:      "Surabaya",
		Kecamatan: "Gubeng",
		Kelurahan: "Airlangga",
		IsDefault: true,
	}
	require.NoError(t, db.Create(alamat).Error)
	return alamat
}

func seedProduk(t *testing.T, db *gorm.DB, nama string, harga, stok int) *models.Produk {
	t.Helper()
	produk := &models.Produk{
		NamaProduk:  nama,
		HargaJual:   harga,
		Stok:        stok,
		StokMinimum: 10,
	}
	require.NoError(t, db.Create(produk).Error)
	return produk
}

// fakeNotifier merekam notifikasi yang dikirim tanpa menyentuh Redis.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []NotificationParams
}

func (f *fakeNotifier) Notify(ctx context.Context, p NotificationParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeNotifier) sentTo(userID string) []NotificationParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []NotificationParams
	for _, p := range f.sent {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}
