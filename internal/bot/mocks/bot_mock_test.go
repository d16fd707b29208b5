package mocks

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockBotRecordsMessages(t *testing.T) {
	mock := NewMockBot()
	ctx := context.Background()

	msg, err := mock.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1000, msg.ID)

	msg, err = mock.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "again"})
	require.NoError(t, err)
	assert.Equal(t, 1001, msg.ID, "message ids auto-increment")

	assert.Equal(t, 2, mock.SentMessageCount())
	assert.Equal(t, "again", mock.LastSentMessage().Text)
}

func TestMockBotSimulatesSendFailure(t *testing.T) {
	mock := NewMockBot()
	mock.SendMessageError = errors.New("network down")

	_, err := mock.SendMessage(context.Background(), &bot.SendMessageParams{ChatID: int64(1), Text: "x"})
	require.Error(t, err)
	assert.Zero(t, mock.SentMessageCount())
}

func TestMockBotRecordsEditsAndCallbacks(t *testing.T) {
	mock := NewMockBot()
	ctx := context.Background()

	_, err := mock.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID: int64(1), MessageID: 7, Text: "edited",
	})
	require.NoError(t, err)
	require.NotNil(t, mock.LastEditedMessage())
	assert.Equal(t, 7, mock.LastEditedMessage().MessageID)

	_, err = mock.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: "cb-1", Text: "done", ShowAlert: true,
	})
	require.NoError(t, err)
	answer := mock.LastAnsweredCallback()
	require.NotNil(t, answer)
	assert.Equal(t, "cb-1", answer.CallbackQueryID)
	assert.True(t, answer.ShowAlert)
}

func TestMockBotRecordsDocuments(t *testing.T) {
	mock := NewMockBot()

	_, err := mock.SendDocument(context.Background(), &bot.SendDocumentParams{
		ChatID: int64(1),
		Document: &models.InputFileUpload{
			Filename: "chart.png",
			Data:     bytes.NewReader([]byte{1, 2, 3}),
		},
		Caption: "weekly",
	})
	require.NoError(t, err)

	doc := mock.LastSentDocument()
	require.NotNil(t, doc)
	assert.Equal(t, "chart.png", doc.Filename)
	assert.Equal(t, "weekly", doc.Caption)
}

func TestMockBotReset(t *testing.T) {
	mock := NewMockBot()
	ctx := context.Background()

	_, _ = mock.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "x"})
	_, _ = mock.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: int64(1), Action: models.ChatActionTyping})
	mock.Reset()

	assert.Zero(t, mock.SentMessageCount())
	assert.Empty(t, mock.ChatActions)
	assert.Nil(t, mock.LastSentMessage())
}
