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

type CommentService interface {
	CreateComment(ctx context.Context, userID, messageID int64, text string) (*dto.CommentResponse, error)
	GetCommentByID(ctx context.Context, commentID int64) (*dto.CommentResponse, error)
	GetMessageComments(ctx context.Context, messageID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	messageRepo repository.MessageRepository
	extractor   *mentions.Extractor
	dispatcher  *notifications.Dispatcher
	queue       *notifications.Queue
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	messageRepo repository.MessageRepository,
	extractor *mentions.Extractor,
	dispatcher *notifications.Dispatcher,
	queue *notifications.Queue,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		messageRepo: messageRepo,
		extractor:   extractor,
		dispatcher:  dispatcher,
		queue:       queue,
	}
}

// CreateComment persists a comment and queues the comment-created and
// user-tagged fan-outs. The comment write always succeeds independent
// of any channel outcome.
func (s *commentService) CreateComment(ctx context.Context, userID, messageID int64, text string) (*dto.CommentResponse, error) {
	// Check if the message exists
	if _, err := s.messageRepo.GetByID(ctx, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("message not found")
		}
		return nil, err
	}

	comment := &models.MessageComment{
		UserID:    userID,
		MessageID: messageID,
		Comment:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with the commenter and the parent message's author; the
	// row is committed and visible before any dispatch is attempted.
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	event := notifications.CommentEvent{Comment: *comment}
	s.queue.Enqueue(func(ctx context.Context) {
		s.dispatcher.DispatchCommentCreated(ctx, event)
	})

	notifier := &mentionNotifier{extractor: s.extractor, dispatcher: s.dispatcher, queue: s.queue}
	notifier.Notify(ctx, comment.User, comment.MessageID, comment.ID, comment.Comment, comment.CreatedAt)

	return dto.FromModelToCommentResponse(comment), nil
}

// GetCommentByID retrieves a comment by ID
func (s *commentService) GetCommentByID(ctx context.Context, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("comment not found")
		}
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// GetMessageComments retrieves all comments for a message with pagination
func (s *commentService) GetMessageComments(ctx context.Context, messageID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if _, err := s.messageRepo.GetByID(ctx, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("message not found")
		}
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByMessage(ctx, messageID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comment))
	}
	return dto.NewPaginatedCommentResponse(responses, int(total), page, pageSize), nil
}
