package requests

import "mime/multipart"

type CreateProdukRequest struct {
	NamaProduk  string                `form:"nama_produk" binding:"required,max=100"`
	HargaJual   *int                  `form:"harga_jual" binding:"required,gte=0"`
	Stok        int                   `form:"stok"`
	StokMinimum *int                  `form:"stok_minimum"`
	Gambar      *multipart.FileHeader `form:"gambar"`
}

type UpdateProdukRequest struct {
	NamaProduk  string                `form:"nama_produk"`
	HargaJual   *int                  `form:"harga_jual"`
	Stok        *int                  `form:"stok"`
	StokMinimum *int                  `form:"stok_minimum"`
	Gambar      *multipart.FileHeader `form:"gambar"`
	RemoveGambar bool                 `form:"remove_gambar"`
}
