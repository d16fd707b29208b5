package mocks

import (
	"github.com/go-telegram/bot/models"
)

// UpdateBuilder helps construct test Update objects.
type UpdateBuilder struct {
	update *models.Update
}

// NewUpdateBuilder creates a new UpdateBuilder.
func NewUpdateBuilder() *UpdateBuilder {
	return &UpdateBuilder{
		update: &models.Update{},
	}
}

// WithMessage sets a message on the update.
func (b *UpdateBuilder) WithMessage(chatID, userID int64, text string) *UpdateBuilder {
	b.update.Message = &models.Message{
		ID: 1,
		Chat: models.Chat{
			ID:   chatID,
			Type: "private",
		},
		From: &models.User{
			ID:        userID,
			FirstName: "Test",
			LastName:  "User",
			Username:  "testuser",
		},
		Text: text,
	}
	return b
}

// WithLanguage sets the sender's Telegram language code.
func (b *UpdateBuilder) WithLanguage(code string) *UpdateBuilder {
	if b.update.Message != nil && b.update.Message.From != nil {
		b.update.Message.From.LanguageCode = code
	}
	if b.update.CallbackQuery != nil {
		b.update.CallbackQuery.From.LanguageCode = code
	}
	return b
}

// WithCallbackQuery sets a callback query on the update.
func (b *UpdateBuilder) WithCallbackQuery(
	callbackID string,
	chatID, userID int64,
	messageID int,
	data string,
) *UpdateBuilder {
	b.update.CallbackQuery = &models.CallbackQuery{
		ID: callbackID,
		From: models.User{
			ID:        userID,
			FirstName: "Test",
			LastName:  "User",
			Username:  "testuser",
		},
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{
				ID: messageID,
				Chat: models.Chat{
					ID:   chatID,
					Type: "private",
				},
			},
		},
		Data: data,
	}
	return b
}

// Build returns the constructed Update.
func (b *UpdateBuilder) Build() *models.Update {
	return b.update
}

// MessageUpdate creates a simple message update.
func MessageUpdate(chatID, userID int64, text string) *models.Update {
	return NewUpdateBuilder().
		WithMessage(chatID, userID, text).
		Build()
}

// CommandUpdate creates a command message update.
func CommandUpdate(chatID, userID int64, command string) *models.Update {
	return MessageUpdate(chatID, userID, command)
}

// CallbackQueryUpdate creates a callback query update.
func CallbackQueryUpdate(chatID, userID int64, messageID int, data string) *models.Update {
	return NewUpdateBuilder().
		WithCallbackQuery("callback-query-id", chatID, userID, messageID, data).
		Build()
}
