package utils

import (
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Envelope JSON standar: {success, message, data} dan varian berpaginasi.

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func Success(c *gin.Context, data interface{}, message string) {
	if message == "" {
		message = "Success"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Paginated(c *gin.Context, data interface{}, page, limit int, total int64) {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Success",
		"data":    data,
		"pagination": Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func Error(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

func NotFound(c *gin.Context, message string) {
	Error(c, message, http.StatusNotFound)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, message, http.StatusUnauthorized)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, message, http.StatusForbidden)
}

func ServerError(c *gin.Context, message string) {
	Error(c, message, http.StatusInternalServerError)
}

// DBError memetakan error gorm ke status HTTP yang sesuai sehingga error
// driver mentah tidak bocor ke klien.
func DBError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, fallback)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Error(c, "Duplicate entry. This record already exists", http.StatusConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		Error(c, "Referenced record not found", http.StatusBadRequest)
	default:
		log.Printf("Database error: %v", err)
		ServerError(c, fallback)
	}
}
