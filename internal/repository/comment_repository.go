package repository

import (
	"context"

	"msghub/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.MessageComment) error
	GetByID(ctx context.Context, commentID int64) (*models.MessageComment, error)
	GetByMessage(ctx context.Context, messageID int64, page, pageSize int) ([]models.MessageComment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.MessageComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID retrieves a comment with its author and parent message preloaded
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.MessageComment, error) {
	var comment models.MessageComment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Preload("User").
		Preload("Message").
		Preload("Message.User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByMessage retrieves all comments for a message with pagination
func (r *commentRepository) GetByMessage(ctx context.Context, messageID int64, page, pageSize int) ([]models.MessageComment, int64, error) {
	var comments []models.MessageComment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.MessageComment{}).Where("message_id = ?", messageID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Preload("User").
		Order("created_at ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
