package requests

type CreateKulakanRequest struct {
	ProdukID       string `json:"produk_id" binding:"required,uuid"`
	JumlahKarung   int    `json:"jumlah_karung" binding:"required,gt=0"`
	HargaPerKarung int    `json:"harga_per_karung" binding:"min=0"`
	Tanggal        string `json:"tanggal"`
}
