package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cld *cloudinary.Cloudinary

const produkFolder = "produk-images"

// InitCloudinary menyiapkan klien dari CLOUDINARY_URL. Tanpa kredensial,
// fitur gambar dinonaktifkan dan upload mengembalikan error ke pemanggil.
func InitCloudinary() error {
	cloudinaryURL := os.Getenv("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		return fmt.Errorf("CLOUDINARY_URL environment variable is required")
	}

	var err error
	cld, err = cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return nil
}

// StorageEnabled melaporkan apakah klien penyimpanan siap dipakai.
func StorageEnabled() bool {
	return cld != nil
}

type UploadResult struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

// UploadProductImage mengunggah gambar produk dan mengembalikan URL publiknya.
func UploadProductImage(file *multipart.FileHeader) (*UploadResult, error) {
	if cld == nil {
		return nil, fmt.Errorf("cloudinary not initialized")
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	result, err := cld.Upload.Upload(context.Background(), f, uploader.UploadParams{
		PublicID:       generateFilename(file.Filename),
		ResourceType:   "image",
		Folder:         produkFolder,
		Overwrite:      api.Bool(true),
		UniqueFilename: api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return &UploadResult{
		PublicID:  result.PublicID,
		URL:       result.URL,
		SecureURL: result.SecureURL,
	}, nil
}

// DeleteProductImage menghapus gambar berdasarkan URL publik yang tersimpan
// di kolom gambar_url.
func DeleteProductImage(gambarURL string) error {
	if cld == nil {
		return fmt.Errorf("cloudinary not initialized")
	}
	publicID := PublicIDFromURL(gambarURL)
	if publicID == "" {
		return nil
	}
	_, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	return err
}

// PublicIDFromURL memotong URL delivery Cloudinary menjadi public id
// (folder/nama tanpa ekstensi). URL yang bukan Cloudinary menghasilkan "".
func PublicIDFromURL(rawURL string) string {
	idx := strings.Index(rawURL, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len("/upload/"):]
	// Buang segmen versi "v1234567890/" bila ada.
	if len(rest) > 1 && rest[0] == 'v' {
		if slash := strings.Index(rest, "/"); slash > 0 {
			allDigits := true
			for _, r := range rest[1:slash] {
				if r < '0' || r > '9' {
					allDigits = false
					break
				}
			}
			if allDigits {
				rest = rest[slash+1:]
			}
		}
	}
	ext := filepath.Ext(rest)
	return strings.TrimSuffix(rest, ext)
}

// ValidateImage menolak file non-gambar atau yang lebih besar dari 5MB.
func ValidateImage(file *multipart.FileHeader) error {
	if file.Size > 5*1024*1024 {
		return fmt.Errorf("file too large (max 5MB)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := []string{".jpg", ".jpeg", ".png", ".webp"}
	for _, allowedExt := range allowed {
		if ext == allowedExt {
			return nil
		}
	}
	return fmt.Errorf("invalid file type. Allowed: jpg, jpeg, png, webp")
}

func generateFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	name := strings.TrimSuffix(originalName, ext)
	name = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	return fmt.Sprintf("%s_%d", name, time.Now().Unix())
}
