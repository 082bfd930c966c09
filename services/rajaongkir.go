package services

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

// JawaTimurProvinceID membatasi area layanan toko ke Jawa Timur.
const JawaTimurProvinceID = "18"

// Region adalah satu wilayah hasil lookup: kota, kecamatan, atau kelurahan.
// KodePos hanya terisi pada level kelurahan.
type Region struct {
	ID      string  `json:"id"`
	Nama    string  `json:"nama"`
	KodePos *string `json:"kode_pos,omitempty"`
}

// RajaOngkirClient memanggil API destinasi Komerce RajaOngkir. Kegagalan
// lookup menghasilkan daftar kosong, bukan error, supaya form alamat di
// frontend tetap jalan saat API wilayah sedang bermasalah.
type RajaOngkirClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRajaOngkirClientFromEnv() *RajaOngkirClient {
	baseURL := os.Getenv("RAJAONGKIR_BASE_URL")
	if baseURL == "" {
		baseURL = "https://rajaongkir.komerce.id/api/v1"
	}
	return &RajaOngkirClient{
		APIKey:     os.Getenv("RAJAONGKIR_API_KEY"),
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type rajaOngkirEnvelope struct {
	Meta struct {
		Code int `json:"code"`
	} `json:"meta"`
	Data []struct {
		ID      json.Number `json:"id"`
		Name    string      `json:"name"`
		ZipCode string      `json:"zip_code"`
	} `json:"data"`
}

// GetKotaJawaTimur mengembalikan daftar kota/kabupaten di Jawa Timur.
func (c *RajaOngkirClient) GetKotaJawaTimur(ctx context.Context) []Region {
	return c.lookup(ctx, "/destination/city/"+JawaTimurProvinceID, false)
}

// GetKecamatanByKota mengembalikan kecamatan di satu kota.
func (c *RajaOngkirClient) GetKecamatanByKota(ctx context.Context, kotaID string) []Region {
	if _, err := strconv.Atoi(kotaID); err != nil {
		return []Region{}
	}
	return c.lookup(ctx, "/destination/district/"+kotaID, false)
}

// GetKelurahanByKecamatan mengembalikan kelurahan beserta kode pos di satu
// kecamatan.
func (c *RajaOngkirClient) GetKelurahanByKecamatan(ctx context.Context, kecamatanID string) []Region {
	if _, err := strconv.Atoi(kecamatanID); err != nil {
		return []Region{}
	}
	return c.lookup(ctx, "/destination/sub-district/"+kecamatanID, true)
}

func (c *RajaOngkirClient) lookup(ctx context.Context, path string, withZip bool) []Region {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		log.Printf("RajaOngkir request error: %v", err)
		return []Region{}
	}
	req.Header.Set("key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("RajaOngkir lookup %s failed: %v", path, err)
		return []Region{}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("RajaOngkir lookup %s returned %d: %s", path, resp.StatusCode, string(body))
		return []Region{}
	}

	var envelope rajaOngkirEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Printf("RajaOngkir lookup %s invalid response: %v", path, err)
		return []Region{}
	}
	if envelope.Meta.Code != http.StatusOK {
		return []Region{}
	}

	regions := make([]Region, 0, len(envelope.Data))
	for _, d := range envelope.Data {
		r := Region{ID: d.ID.String(), Nama: d.Name}
		if withZip && d.ZipCode != "" {
			zip := d.ZipCode
			r.KodePos = &zip
		}
		regions = append(regions, r)
	}
	return regions
}
