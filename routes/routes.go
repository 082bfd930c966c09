package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arifrhmanh/toko-kayu-app/controllers"
	"github.com/arifrhmanh/toko-kayu-app/middleware"
	"github.com/arifrhmanh/toko-kayu-app/models"
)

// Dependencies membawa controller yang butuh service ter-inject. Controller
// CRUD sederhana tetap berupa fungsi package.
type Dependencies struct {
	Order     *controllers.OrderController
	Payment   *controllers.PaymentController
	Alamat    *controllers.AlamatController
	Kulakan   *controllers.KulakanController
	Keuangan  *controllers.KeuanganController
	Dashboard *controllers.DashboardController
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Toko Kayu API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":       "/api/auth",
				"produk":     "/api/produk",
				"kulakan":    "/api/kulakan",
				"order":      "/api/order",
				"alamat":     "/api/alamat",
				"keuangan":   "/api/keuangan",
				"notifikasi": "/api/notifikasi",
				"dashboard":  "/api/dashboard",
				"payment":    "/api/payment",
			},
		})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.Refresh)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/profile", middleware.Authenticate(), controllers.GetProfile)
		auth.PUT("/profile", middleware.Authenticate(), controllers.UpdateProfile)
	}

	produk := r.Group("/api/produk", middleware.Authenticate())
	{
		produk.GET("", controllers.GetProdukList)
		produk.GET("/:id", controllers.GetProdukByID)

		adminOnly := produk.Group("", middleware.RequireRole(models.RoleAdmin))
		adminOnly.POST("", controllers.CreateProduk)
		adminOnly.PUT("/:id", controllers.UpdateProduk)
		adminOnly.DELETE("/:id", controllers.DeleteProduk)
	}

	kulakan := r.Group("/api/kulakan", middleware.Authenticate(), middleware.RequireRole(models.RoleAdmin))
	{
		kulakan.GET("", deps.Kulakan.List)
		kulakan.GET("/:id", deps.Kulakan.GetByID)
		kulakan.POST("", deps.Kulakan.Create)
		kulakan.DELETE("/:id", deps.Kulakan.Delete)
	}

	order := r.Group("/api/order", middleware.Authenticate())
	{
		order.GET("", deps.Order.List)
		order.GET("/:id", deps.Order.GetByID)
		order.POST("", middleware.RequireRole(models.RoleCustomer), deps.Order.Create)
		order.DELETE("/:id", middleware.RequireRole(models.RoleCustomer), deps.Order.Cancel)
		order.PUT("/:id/status", middleware.RequireRole(models.RoleAdmin), deps.Order.UpdateStatus)
	}

	alamat := r.Group("/api/alamat", middleware.Authenticate())
	{
		alamat.GET("", deps.Alamat.List)
		alamat.POST("", deps.Alamat.Create)
		alamat.PUT("/:id", deps.Alamat.Update)
		alamat.PUT("/:id/default", deps.Alamat.SetDefault)
		alamat.DELETE("/:id", deps.Alamat.Delete)

		alamat.GET("/kota", deps.Alamat.GetKota)
		alamat.GET("/kecamatan/:kotaId", deps.Alamat.GetKecamatan)
		alamat.GET("/kelurahan/:kecamatanId", deps.Alamat.GetKelurahan)
	}

	keuangan := r.Group("/api/keuangan", middleware.Authenticate(), middleware.RequireRole(models.RoleAdmin))
	{
		keuangan.GET("", deps.Keuangan.List)
		keuangan.GET("/summary", deps.Keuangan.Summary)
		keuangan.POST("", deps.Keuangan.Create)
		keuangan.PUT("/:id", deps.Keuangan.Update)
		keuangan.DELETE("/:id", deps.Keuangan.Delete)
	}

	notifikasi := r.Group("/api/notifikasi", middleware.Authenticate())
	{
		notifikasi.GET("", controllers.GetNotifikasiList)
		notifikasi.GET("/count", controllers.GetNotifikasiCount)
		notifikasi.PUT("/:id/read", controllers.MarkNotifikasiRead)
		notifikasi.PUT("/read-all", controllers.MarkAllNotifikasiRead)
		notifikasi.DELETE("/:id", controllers.DeleteNotifikasi)
	}

	dashboard := r.Group("/api/dashboard", middleware.Authenticate(), middleware.RequireRole(models.RoleAdmin))
	{
		dashboard.GET("/overview", deps.Dashboard.Overview)
		dashboard.GET("/sales", deps.Dashboard.Sales)
		dashboard.GET("/low-stock", deps.Dashboard.LowStock)
	}

	payment := r.Group("/api/payment")
	{
		// Callback dipanggil server Midtrans, tanpa auth.
		payment.POST("/callback", deps.Payment.Callback)
		payment.GET("/finish", deps.Payment.Finish)
		payment.GET("/unfinish", deps.Payment.Unfinish)
		payment.GET("/error", deps.Payment.Error)

		payment.POST("/create", middleware.Authenticate(), middleware.RequireRole(models.RoleCustomer), deps.Payment.Create)
		payment.GET("/status/:orderId", middleware.Authenticate(), deps.Payment.Status)
	}
}
