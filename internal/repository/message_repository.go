package repository

import (
	"context"

	"msghub/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, messageID int64) (*models.Message, error)
	List(ctx context.Context, page, pageSize int) ([]models.Message, int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetByID retrieves a message with its author preloaded
func (r *messageRepository) GetByID(ctx context.Context, messageID int64) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Where("id = ?", messageID).
		Preload("User").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// List retrieves messages newest-first with pagination
func (r *messageRepository) List(ctx context.Context, page, pageSize int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Message{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
