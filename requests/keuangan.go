package requests

type CreateKeuanganRequest struct {
	Jenis      string `json:"jenis" binding:"required,oneof=pemasukan pengeluaran"`
	Jumlah     int    `json:"jumlah" binding:"required,gt=0"`
	Keterangan string `json:"keterangan" binding:"required,max=255"`
	Tanggal    string `json:"tanggal"`
}

type UpdateKeuanganRequest struct {
	Jenis      string `json:"jenis" binding:"omitempty,oneof=pemasukan pengeluaran"`
	Jumlah     *int   `json:"jumlah" binding:"omitempty,gt=0"`
	Keterangan string `json:"keterangan"`
	Tanggal    string `json:"tanggal"`
}
