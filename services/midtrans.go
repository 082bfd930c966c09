package services

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// MidtransClient membungkus Snap API Midtrans. Seluruh konfigurasi dibawa
// oleh instance, bukan state global.
type MidtransClient struct {
	ServerKey   string
	SnapBaseURL string
	APIBaseURL  string
	FrontendURL string

	// RejectInvalidSig menolak callback dengan signature salah. Default mati
	// karena notifikasi sandbox Midtrans kerap dikirim tanpa signature valid.
	RejectInvalidSig bool

	HTTPClient *http.Client
}

func NewMidtransClientFromEnv() *MidtransClient {
	snapBase := "https://app.sandbox.midtrans.com/snap/v1"
	apiBase := "https://api.sandbox.midtrans.com/v2"
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		snapBase = "https://app.midtrans.com/snap/v1"
		apiBase = "https://api.midtrans.com/v2"
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	return &MidtransClient{
		ServerKey:        os.Getenv("MIDTRANS_SERVER_KEY"),
		SnapBaseURL:      snapBase,
		APIBaseURL:       apiBase,
		FrontendURL:      frontend,
		RejectInvalidSig: os.Getenv("MIDTRANS_REJECT_INVALID_SIG") == "true",
		HTTPClient:       &http.Client{Timeout: 30 * time.Second},
	}
}

type CustomerDetails struct {
	FirstName  string `json:"first_name"`
	Phone      string `json:"phone"`
	CustomerID string `json:"customer_id"`
}

type ItemDetail struct {
	ID       string `json:"id"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type SnapResult struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// CreateTransaction meminta token pembayaran Snap untuk satu order.
func (c *MidtransClient) CreateTransaction(ctx context.Context, orderID string, grossAmount int, customer CustomerDetails, items []ItemDetail) (*SnapResult, error) {
	payload := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     orderID,
			"gross_amount": grossAmount,
		},
		"customer_details": customer,
		"item_details":     items,
		"callbacks": map[string]string{
			"finish":   c.FrontendURL + "/api/payment/finish",
			"unfinish": c.FrontendURL + "/api/payment/unfinish",
			"error":    c.FrontendURL + "/api/payment/error",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SnapBaseURL+"/transactions", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.ServerKey, "")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("midtrans request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("midtrans error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result SnapResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("invalid midtrans response: %w", err)
	}
	return &result, nil
}

// MidtransNotification adalah payload callback/status dari Midtrans.
type MidtransNotification struct {
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
}

// GetTransactionStatus menanyakan status transaksi ke Midtrans berdasarkan
// midtrans_order_id.
func (c *MidtransClient) GetTransactionStatus(ctx context.Context, midtransOrderID string) (*MidtransNotification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+"/"+midtransOrderID+"/status", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.ServerKey, "")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("midtrans status request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("midtrans error (%d): %s", resp.StatusCode, string(respBody))
	}

	var n MidtransNotification
	if err := json.Unmarshal(respBody, &n); err != nil {
		return nil, fmt.Errorf("invalid midtrans response: %w", err)
	}
	return &n, nil
}

// VerifySignature mencocokkan signature_key dengan
// SHA512(order_id + status_code + gross_amount + server_key).
func (c *MidtransClient) VerifySignature(n *MidtransNotification) bool {
	hash := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + c.ServerKey))
	return hex.EncodeToString(hash[:]) == n.SignatureKey
}

func IsTransactionSuccess(transactionStatus, fraudStatus string) bool {
	return (transactionStatus == "capture" && fraudStatus == "accept") ||
		transactionStatus == "settlement"
}

func IsTransactionPending(transactionStatus string) bool {
	return transactionStatus == "pending"
}

func IsTransactionFailed(transactionStatus string) bool {
	switch transactionStatus {
	case "deny", "cancel", "expire", "failure":
		return true
	}
	return false
}
