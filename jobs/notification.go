// Package jobs berisi task asynq dan processor antrean notifikasi.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/arifrhmanh/toko-kayu-app/models"
)

const TaskNotificationDeliver = "notification:deliver"

type NotificationPayload struct {
	UserID      string `json:"user_id"`
	Judul       string `json:"judul"`
	Pesan       string `json:"pesan"`
	Type        string `json:"type"`
	ReferenceID string `json:"reference_id,omitempty"`
}

func NewNotificationTask(p NotificationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(
		TaskNotificationDeliver,
		payload,
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	), nil
}

type NotificationProcessor struct {
	db *gorm.DB
}

func NewNotificationProcessor(db *gorm.DB) *NotificationProcessor {
	return &NotificationProcessor{db: db}
}

func (p *NotificationProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload NotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	n := models.Notifikasi{
		UserID: payload.UserID,
		Judul:  payload.Judul,
		Pesan:  payload.Pesan,
		Type:   payload.Type,
	}
	if payload.ReferenceID != "" {
		ref := payload.ReferenceID
		n.ReferenceID = &ref
	}

	if err := p.db.WithContext(ctx).Create(&n).Error; err != nil {
		return fmt.Errorf("insert notification for user %s: %w", payload.UserID, err)
	}
	return nil
}
