package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/arifrhmanh/toko-kayu-app/config"
	"github.com/arifrhmanh/toko-kayu-app/controllers"
	"github.com/arifrhmanh/toko-kayu-app/jobs"
	"github.com/arifrhmanh/toko-kayu-app/models"
	"github.com/arifrhmanh/toko-kayu-app/routes"
	"github.com/arifrhmanh/toko-kayu-app/services"
	"github.com/arifrhmanh/toko-kayu-app/utils"
)

func main() {
	godotenv.Load()
	r := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	config.ConnectDB()
	err := config.DB.AutoMigrate(
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
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seedAdmin()

	config.InitRedis()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Cloudinary disabled: %v", err)
	}

	// Klien asynq untuk enqueue; worker berjalan di goroutine terpisah.
	asynqClient := asynq.NewClient(config.AsynqRedisOpt())
	defer asynqClient.Close()
	go startWorker()
	go startTokenSweep()

	notifier := services.NewQueueNotifier(asynqClient)
	midtransClient := services.NewMidtransClientFromEnv()
	rajaOngkir := services.NewRajaOngkirClientFromEnv()

	orderService := services.NewOrderService(config.DB, notifier)
	paymentService := services.NewPaymentService(config.DB, midtransClient, notifier)
	kulakanService := services.NewKulakanService(config.DB)
	keuanganService := services.NewKeuanganService(config.DB)

	routes.SetupRoutes(r, routes.Dependencies{
		Order:     controllers.NewOrderController(orderService, paymentService),
		Payment:   controllers.NewPaymentController(paymentService),
		Alamat:    controllers.NewAlamatController(rajaOngkir),
		Kulakan:   controllers.NewKulakanController(kulakanService),
		Keuangan:  controllers.NewKeuanganController(keuanganService),
		Dashboard: controllers.NewDashboardController(keuanganService),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Printf("Server running on 0.0.0.0:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// seedAdmin membuat akun admin awal bila belum ada.
func seedAdmin() {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("Admin seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Admin seed failed: %v", err)
		return
	}

	admin := models.User{
		Username:    username,
		Password:    string(hashed),
		Role:        models.RoleAdmin,
		NamaLengkap: "Administrator",
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Admin seed failed: %v", err)
		return
	}
	log.Println("Admin user seeded")
}

func startWorker() {
	srv := asynq.NewServer(config.AsynqRedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
			backoff := []time.Duration{1, 3, 5, 10, 15}
			if n == 0 {
				return 0
			}
			if n <= len(backoff) {
				return backoff[n-1] * time.Minute
			}
			return 15 * time.Minute
		},
	})

	processor := jobs.NewNotificationProcessor(config.DB)

	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TaskNotificationDeliver, processor.ProcessTask)

	log.Println("Worker started, waiting for jobs...")
	if err := srv.Run(mux); err != nil {
		log.Printf("Worker error: %v", err)
	}
}

// startTokenSweep menghapus refresh token kedaluwarsa tiap jam.
func startTokenSweep() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		n, err := utils.CleanExpiredTokens(config.DB)
		if err != nil {
			log.Printf("Token sweep failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("Token sweep removed %d expired tokens", n)
		}
	}
}
