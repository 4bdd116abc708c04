package service

import (
	"context"
	"errors"

	"msghub/internal/dto"
	"msghub/internal/mentions"
	"msghub/internal/models"
	"msghub/internal/notifications"
	"msghub/internal/repository"

	"gorm.io/gorm"
)

type MessageService interface {
	CreateMessage(ctx context.Context, userID int64, text string) (*dto.MessageResponse, error)
	GetMessageByID(ctx context.Context, messageID int64) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, page, pageSize int) (*dto.PaginatedMessageResponse, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	extractor   *mentions.Extractor
	dispatcher  *notifications.Dispatcher
	queue       *notifications.Queue
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	extractor *mentions.Extractor,
	dispatcher *notifications.Dispatcher,
	queue *notifications.Queue,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		extractor:   extractor,
		dispatcher:  dispatcher,
		queue:       queue,
	}
}

// CreateMessage persists a new message and fans out tag notifications
// for any @-mentions in its body. The message write always succeeds
// independent of notification outcomes.
func (s *messageService) CreateMessage(ctx context.Context, userID int64, text string) (*dto.MessageResponse, error) {
	message := &models.Message{
		UserID:  userID,
		Message: text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Reload with author data; the row is committed and visible before
	// any channel dispatch is attempted.
	message, err := s.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		return nil, err
	}

	s.mentions().Notify(ctx, message.User, message.ID, 0, message.Message, message.CreatedAt)

	return dto.FromModelToMessageResponse(message), nil
}

func (s *messageService) mentions() *mentionNotifier {
	return &mentionNotifier{
		extractor:  s.extractor,
		dispatcher: s.dispatcher,
		queue:      s.queue,
	}
}

// GetMessageByID retrieves a message by ID
func (s *messageService) GetMessageByID(ctx context.Context, messageID int64) (*dto.MessageResponse, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("message not found")
		}
		return nil, err
	}
	return dto.FromModelToMessageResponse(message), nil
}

// ListMessages retrieves messages with pagination
func (s *messageService) ListMessages(ctx context.Context, page, pageSize int) (*dto.PaginatedMessageResponse, error) {
	messages, total, err := s.messageRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, *dto.FromModelToMessageResponse(&message))
	}
	return dto.NewPaginatedMessageResponse(responses, int(total), page, pageSize), nil
}
