package requests

type OrderItemRequest struct {
	ProdukID string `json:"produk_id" binding:"required,uuid"`
	Jumlah   int    `json:"jumlah" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	AlamatID string             `json:"alamat_id" binding:"required,uuid"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
}
