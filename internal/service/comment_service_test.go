package service

import (
	"context"
	"strings"
	"testing"

	"msghub/internal/mentions"
	"msghub/internal/models"
	"msghub/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommentRepo is an in-memory CommentRepository that preloads
// associations from the fixtures it is given.
type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*models.MessageComment
	users    map[int64]models.User
	message  models.Message
}

func newFakeCommentRepo(message models.Message, users ...models.User) *fakeCommentRepo {
	byID := make(map[int64]models.User)
	for _, u := range users {
		byID[u.ID] = u
	}
	return &fakeCommentRepo{
		nextID:   1,
		comments: make(map[int64]*models.MessageComment),
		users:    byID,
		message:  message,
	}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.MessageComment) error {
	comment.ID = r.nextID
	r.nextID++
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, commentID int64) (*models.MessageComment, error) {
	copied := *r.comments[commentID]
	copied.User = r.users[copied.UserID]
	copied.Message = r.message
	copied.Message.User = r.users[r.message.UserID]
	return &copied, nil
}

func (r *fakeCommentRepo) GetByMessage(ctx context.Context, messageID int64, page, pageSize int) ([]models.MessageComment, int64, error) {
	return nil, 0, nil
}

// fakeUserDirectory backs the mention extractor in service tests
type fakeUserDirectory struct {
	users []models.User
}

func (d *fakeUserDirectory) ListAllNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(d.users))
	for _, u := range d.users {
		names = append(names, u.Username)
	}
	return names, nil
}

func (d *fakeUserDirectory) FindByNameCaseInsensitive(ctx context.Context, name string) (*models.User, error) {
	for i := range d.users {
		if strings.EqualFold(d.users[i].Username, name) {
			return &d.users[i], nil
		}
	}
	return nil, nil
}

// recordingChannel implements notifications.Channel
type recordingChannel struct {
	name       string
	recipients []int64
	kinds      []notifications.Kind
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Deliver(ctx context.Context, recipient models.User, n *notifications.Notification) error {
	c.recipients = append(c.recipients, recipient.ID)
	c.kinds = append(c.kinds, n.Kind)
	return nil
}

func TestCommentServiceCreateFansOutNotifications(t *testing.T) {
	author := models.User{ID: 1, Username: "author", Email: "author@example.com"}
	commenter := models.User{ID: 2, Username: "commenter"}
	alice := models.User{ID: 3, Username: "alice"}

	message := models.Message{ID: 10, UserID: author.ID, Message: "original post"}
	commentRepo := newFakeCommentRepo(message, author, commenter, alice)
	messageRepo := &fakeMessageRepo{message: message}

	extractor := mentions.NewExtractor(&fakeUserDirectory{users: []models.User{author, commenter, alice}})
	dbChannel := &recordingChannel{name: "database"}
	broadcastChannel := &recordingChannel{name: "broadcast"}
	dispatcher := notifications.NewDispatcher(dbChannel, broadcastChannel, nil, nil, nil)
	queue := notifications.NewQueue(1, 8, 1000)
	queue.Start()

	svc := NewCommentService(commentRepo, messageRepo, extractor, dispatcher, queue)

	resp, err := svc.CreateComment(context.Background(), commenter.ID, message.ID, "good point, @alice should read this")
	require.NoError(t, err)
	assert.Equal(t, "commenter", resp.Username)

	queue.Stop() // drain the async fan-out before asserting

	// Author got the comment notification, alice got the tag.
	assert.ElementsMatch(t, []int64{author.ID, alice.ID}, dbChannel.recipients)
	assert.ElementsMatch(t,
		[]notifications.Kind{notifications.KindMessageCommented, notifications.KindUserTagged},
		dbChannel.kinds)
	assert.Len(t, broadcastChannel.recipients, 2)
}

func TestCommentServiceSelfCommentNotifiesMentionsOnly(t *testing.T) {
	author := models.User{ID: 1, Username: "author"}
	alice := models.User{ID: 3, Username: "alice"}

	message := models.Message{ID: 10, UserID: author.ID, Message: "original post"}
	commentRepo := newFakeCommentRepo(message, author, alice)
	messageRepo := &fakeMessageRepo{message: message}

	extractor := mentions.NewExtractor(&fakeUserDirectory{users: []models.User{author, alice}})
	dbChannel := &recordingChannel{name: "database"}
	dispatcher := notifications.NewDispatcher(dbChannel, nil, nil, nil, nil)
	queue := notifications.NewQueue(1, 8, 1000)
	queue.Start()

	svc := NewCommentService(commentRepo, messageRepo, extractor, dispatcher, queue)

	_, err := svc.CreateComment(context.Background(), author.ID, message.ID, "adding context for @alice")
	require.NoError(t, err)

	queue.Stop()

	// No comment notification for the author's own comment; only the tag.
	assert.Equal(t, []int64{alice.ID}, dbChannel.recipients)
	assert.Equal(t, []notifications.Kind{notifications.KindUserTagged}, dbChannel.kinds)
}
