package repository

import (
	"context"
	"errors"

	"msghub/internal/models"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	Update(ctx context.Context, reaction *models.Reaction) error
	Delete(ctx context.Context, reactionID int64) error
	GetByMessageAndUser(ctx context.Context, messageID, userID int64) (*models.Reaction, error)
	GetByMessage(ctx context.Context, messageID int64) ([]models.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *reactionRepository) Update(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Save(reaction).Error
}

func (r *reactionRepository) Delete(ctx context.Context, reactionID int64) error {
	return r.db.WithContext(ctx).Delete(&models.Reaction{}, reactionID).Error
}

// GetByMessageAndUser returns the user's live reaction on a message,
// or (nil, nil) when there is none.
func (r *reactionRepository) GetByMessageAndUser(ctx context.Context, messageID, userID int64) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetByMessage returns every reaction on a message in creation order.
// Aggregation always reads through here so the grouped view is never
// computed from a stale snapshot.
func (r *reactionRepository) GetByMessage(ctx context.Context, messageID int64) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("created_at ASC, id ASC").
		Find(&reactions).Error
	return reactions, err
}
