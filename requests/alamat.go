package requests

type CreateAlamatRequest struct {
	Provinsi     string  `json:"provinsi"`
	Kota         string  `json:"kota" binding:"required"`
	KotaID       *string `json:"kota_id"`
	Kecamatan    string  `json:"kecamatan" binding:"required"`
	KecamatanID  *string `json:"kecamatan_id"`
	Kelurahan    string  `json:"kelurahan" binding:"required"`
	KelurahanID  *string `json:"kelurahan_id"`
	DetailAlamat string  `json:"detail_alamat" binding:"required"`
	IsDefault    bool    `json:"is_default"`
}

type UpdateAlamatRequest struct {
	Provinsi     string  `json:"provinsi"`
	Kota         string  `json:"kota"`
	KotaID       *string `json:"kota_id"`
	Kecamatan    string  `json:"kecamatan"`
	KecamatanID  *string `json:"kecamatan_id"`
	Kelurahan    string  `json:"kelurahan"`
	KelurahanID  *string `json:"kelurahan_id"`
	DetailAlamat string  `json:"detail_alamat"`
	IsDefault    *bool   `json:"is_default"`
}
