package bot

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

type fixedRooms struct {
	id    string
	calls int
}

func (r *fixedRooms) CreateRoom() string {
	r.calls++
	return r.id
}

func newTestBot(webAppURL string) (*Bot, *fakeSender, *fixedRooms) {
	logger := zerolog.Nop()
	out := &fakeSender{}
	rooms := &fixedRooms{id: "ab12cd34"}
	return &Bot{out: out, rooms: rooms, webAppURL: webAppURL, log: &logger}, out, rooms
}

func commandUpdate(text string, from *tgbotapi.User) tgbotapi.Update {
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			From: from,
			Chat: &tgbotapi.Chat{ID: 42},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: cmdLen},
			},
		},
	}
}

func TestStartRepliesWithJoinButton(t *testing.T) {
	b, out, rooms := newTestBot("https://example.com/ludo")

	b.handle(commandUpdate("/start", &tgbotapi.User{FirstName: "Alice"}))

	require.Len(t, out.sent, 1)
	assert.Equal(t, 1, rooms.calls)
	msg, ok := out.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "Welcome Alice! Click below to start or share the link with friends.", msg.Text)

	raw, err := json.Marshal(msg.ReplyMarkup)
	require.NoError(t, err)
	var markup struct {
		InlineKeyboard [][]struct {
			Text   string `json:"text"`
			URL    string `json:"url"`
			WebApp *struct {
				URL string `json:"url"`
			} `json:"web_app"`
		} `json:"inline_keyboard"`
	}
	require.NoError(t, json.Unmarshal(raw, &markup))
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)
	button := markup.InlineKeyboard[0][0]
	assert.Equal(t, "Play Ludo", button.Text)
	assert.Empty(t, button.URL, "opens inside Telegram, not the browser")
	require.NotNil(t, button.WebApp)

	link, err := url.Parse(button.WebApp.URL)
	require.NoError(t, err)
	assert.Equal(t, "example.com", link.Host)
	assert.Equal(t, "ab12cd34", link.Query().Get("room_id"))
	assert.Equal(t, "Alice", link.Query().Get("name"))
}

func TestStartWithoutWebAppShowsRoomID(t *testing.T) {
	b, out, _ := newTestBot("")

	b.handle(commandUpdate("/start", nil))

	require.Len(t, out.sent, 1)
	msg := out.sent[0].(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "Welcome player!")
	assert.Contains(t, msg.Text, "ab12cd34")
	assert.Nil(t, msg.ReplyMarkup)
}

func TestIgnoresOtherUpdates(t *testing.T) {
	b, out, rooms := newTestBot("https://example.com/ludo")

	b.handle(tgbotapi.Update{})
	b.handle(tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 1}}})
	b.handle(commandUpdate("/help", &tgbotapi.User{FirstName: "Bob"}))

	assert.Empty(t, out.sent)
	assert.Zero(t, rooms.calls)
}

func TestSendFailureIsLogged(t *testing.T) {
	b, out, _ := newTestBot("https://example.com/ludo")
	out.err = errors.New("telegram down")

	assert.NotPanics(t, func() {
		b.handle(commandUpdate("/start", &tgbotapi.User{FirstName: "Cat"}))
	})
	assert.Len(t, out.sent, 1)
}

func TestStartRejectsRelativeWebAppURL(t *testing.T) {
	b, out, _ := newTestBot("ludo/play")

	b.handle(commandUpdate("/start", &tgbotapi.User{FirstName: "Dan"}))

	assert.Empty(t, out.sent)
}
