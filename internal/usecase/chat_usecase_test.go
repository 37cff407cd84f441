package usecase

import (
	"strings"
	"testing"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeConversationRepo struct {
	repository.ConversationRepository
	conversation *entity.Conversation
	touched      *time.Time
	updated      []entity.ConversationParticipant
}

func (f *fakeConversationRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Conversation, error) {
	if f.conversation == nil || f.conversation.ID != id {
		return nil, nil
	}
	return f.conversation, nil
}

func (f *fakeConversationRepo) TouchLastMessage(_ *gorm.DB, _ uuid.UUID, at time.Time) error {
	f.touched = &at
	return nil
}

func (f *fakeConversationRepo) UpdateParticipant(_ *gorm.DB, p *entity.ConversationParticipant) error {
	f.updated = append(f.updated, *p)
	return nil
}

type fakeMessageRepo struct {
	repository.MessageRepository
	messages map[uuid.UUID]*entity.Message
}

func newFakeMessageRepo(messages ...*entity.Message) *fakeMessageRepo {
	f := &fakeMessageRepo{messages: map[uuid.UUID]*entity.Message{}}
	for _, m := range messages {
		f.messages[m.ID] = m
	}
	return f
}

func (f *fakeMessageRepo) Create(_ *gorm.DB, m *entity.Message) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	f.messages[m.ID] = m
	return nil
}

func (f *fakeMessageRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Message, error) {
	return f.messages[id], nil
}

func (f *fakeMessageRepo) Update(_ *gorm.DB, m *entity.Message) error {
	f.messages[m.ID] = m
	return nil
}

type chatFixture struct {
	usecase       *chatUsecase
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo
	realtime      *recordingRealtime
	notifier      *recordingNotifier
	sender        uuid.UUID
	other         uuid.UUID
	muted         uuid.UUID
}

func newChatFixture(t *testing.T, db *gorm.DB) *chatFixture {
	t.Helper()
	f := &chatFixture{
		sender:   uuid.New(),
		other:    uuid.New(),
		muted:    uuid.New(),
		realtime: &recordingRealtime{},
		notifier: &recordingNotifier{},
		messages: newFakeMessageRepo(),
	}
	f.conversations = &fakeConversationRepo{conversation: &entity.Conversation{
		ID: uuid.New(),
		Participants: []entity.ConversationParticipant{
			{UserID: f.sender},
			{UserID: f.other},
			{UserID: f.muted, IsMuted: true},
		},
	}}
	f.usecase = &chatUsecase{
		db:                  db,
		log:                 newTestLogger(),
		business:            config.BusinessConfig{ChatMessageMaxLength: 20},
		conversationRepo:    f.conversations,
		messageRepo:         f.messages,
		realtime:            f.realtime,
		notificationService: f.notifier,
	}
	return f
}

func TestSendMessage_NotifiesUnmutedAndPublishesToAll(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	f := newChatFixture(t, db)

	resp, err := f.usecase.SendMessage(asUser(f.sender, entity.RoleIDPatient), f.conversations.conversation.ID, &dto.SendMessageRequest{Content: "  hello  "})
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.Content)
	assert.NotNil(t, f.conversations.touched)
	require.Len(t, f.conversations.updated, 1)
	assert.Equal(t, f.sender, f.conversations.updated[0].UserID)
	assert.NotNil(t, f.conversations.updated[0].LastReadAt)

	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, f.other, f.notifier.created[0].UserID)
	assert.Equal(t, entity.NotificationTypeChat, f.notifier.created[0].Type)
	assert.Len(t, f.notifier.pushed, 1)

	assert.ElementsMatch(t, []uuid.UUID{f.other, f.muted}, f.realtime.recipients(service.EventMessage))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_Validation(t *testing.T) {
	db, _ := newMockDB(t)
	f := newChatFixture(t, db)
	ctx := asUser(f.sender, entity.RoleIDPatient)

	_, err := f.usecase.SendMessage(ctx, f.conversations.conversation.ID, &dto.SendMessageRequest{Content: strings.Repeat("ب", 21)})
	assert.ErrorIs(t, err, ErrMessageTooLong)

	_, err = f.usecase.SendMessage(ctx, f.conversations.conversation.ID, &dto.SendMessageRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrMessageEmpty)
}

func TestSendMessage_NonParticipant(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	f := newChatFixture(t, db)

	_, err := f.usecase.SendMessage(asUser(uuid.New(), entity.RoleIDPatient), f.conversations.conversation.ID, &dto.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.Empty(t, f.realtime.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_ReplyMustBeInConversation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	f := newChatFixture(t, db)
	foreign := &entity.Message{ID: uuid.New(), ConversationID: uuid.New()}
	f.messages.messages[foreign.ID] = foreign

	_, err := f.usecase.SendMessage(asUser(f.sender, entity.RoleIDPatient), f.conversations.conversation.ID, &dto.SendMessageRequest{
		Content:   "re",
		ReplyToID: &foreign.ID,
	})
	assert.ErrorIs(t, err, ErrMessageNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConversation_Self(t *testing.T) {
	db, _ := newMockDB(t)
	f := newChatFixture(t, db)

	_, _, err := f.usecase.CreateConversation(asUser(f.sender, entity.RoleIDPatient), &dto.CreateConversationRequest{ParticipantID: f.sender})
	assert.ErrorIs(t, err, ErrConversationSelf)
}

func TestEditMessage_OnlySender(t *testing.T) {
	db, _ := newMockDB(t)
	f := newChatFixture(t, db)
	message := &entity.Message{ID: uuid.New(), ConversationID: f.conversations.conversation.ID, SenderID: f.sender, Content: "old"}
	f.messages.messages[message.ID] = message

	_, err := f.usecase.EditMessage(asUser(f.other, entity.RoleIDPharmacy), message.ID, &dto.EditMessageRequest{Content: "hijack"})
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := f.usecase.EditMessage(asUser(f.sender, entity.RoleIDPatient), message.ID, &dto.EditMessageRequest{Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Content)
	assert.True(t, message.IsEdited)
	assert.ElementsMatch(t, []uuid.UUID{f.other, f.muted}, f.realtime.recipients(service.EventMessageUpdated))
}

func TestDeleteMessage_Twice(t *testing.T) {
	db, _ := newMockDB(t)
	f := newChatFixture(t, db)
	message := &entity.Message{ID: uuid.New(), ConversationID: f.conversations.conversation.ID, SenderID: f.sender}
	f.messages.messages[message.ID] = message
	ctx := asUser(f.sender, entity.RoleIDPatient)

	require.NoError(t, f.usecase.DeleteMessage(ctx, message.ID))
	assert.True(t, message.IsDeleted)
	assert.ErrorIs(t, f.usecase.DeleteMessage(ctx, message.ID), ErrMessageNotFound)
}

func TestMarkRead_PublishesReadEvent(t *testing.T) {
	db, _ := newMockDB(t)
	f := newChatFixture(t, db)

	require.NoError(t, f.usecase.MarkRead(asUser(f.other, entity.RoleIDPharmacy), f.conversations.conversation.ID))

	require.Len(t, f.conversations.updated, 1)
	assert.Equal(t, f.other, f.conversations.updated[0].UserID)
	assert.ElementsMatch(t, []uuid.UUID{f.sender, f.muted}, f.realtime.recipients(service.EventRead))
}

func TestTyping_StoresNothing(t *testing.T) {
	db, _ := newMockDB(t)
	f := newChatFixture(t, db)

	require.NoError(t, f.usecase.Typing(asUser(f.sender, entity.RoleIDPatient), f.conversations.conversation.ID))
	assert.Empty(t, f.conversations.updated)
	assert.Len(t, f.realtime.recipients(service.EventTyping), 2)
}

func TestMessagePreview(t *testing.T) {
	long := strings.Repeat("د", notifyPreviewRunes+5)
	preview := messagePreview(&entity.Message{Content: long})
	assert.Equal(t, notifyPreviewRunes+1, len([]rune(preview)))

	assert.Equal(t, "scan.pdf", messagePreview(&entity.Message{FileName: "scan.pdf"}))
}
