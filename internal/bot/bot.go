package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ludo-relay/internal/utils"
)

const (
	pollTimeoutSeconds = 30
	playButtonText     = "Play Ludo"
	fallbackName       = "player"
)

// RoomCreator mints fresh room ids.
type RoomCreator interface {
	CreateRoom() string
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers /start with a fresh room and a link to join it.
type Bot struct {
	api       *tgbotapi.BotAPI
	out       sender
	rooms     RoomCreator
	webAppURL string
	log       *zerolog.Logger
}

// New connects to the Telegram Bot API with the given token.
func New(token, webAppURL string, rooms RoomCreator, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	if err := tgbotapi.SetLogger(botLogger{log: logger}); err != nil {
		return nil, fmt.Errorf("set bot logger: %w", err)
	}
	logger.Info().Str("bot", api.Self.UserName).Msg("telegram bot authorized")

	return &Bot{
		api:       api,
		out:       api,
		rooms:     rooms,
		webAppURL: webAppURL,
		log:       logger,
	}, nil
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.log.Info().Msg("telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handle(update)
		}
	}
}

func (b *Bot) handle(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	if msg.Command() != "start" {
		return
	}

	reply, err := b.startReply(msg)
	if err != nil {
		b.log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("build start reply")
		return
	}
	if _, err := b.out.Send(reply); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", msg.Chat.ID).Msg("send start reply")
	}
}

func (b *Bot) startReply(msg *tgbotapi.Message) (tgbotapi.MessageConfig, error) {
	name := fallbackName
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}

	roomID := b.rooms.CreateRoom()
	link, err := utils.JoinURL(b.webAppURL, roomID, name)
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}

	text := fmt.Sprintf("Welcome %s! Click below to start or share the link with friends.", name)
	if link == "" {
		text = fmt.Sprintf("Welcome %s! Your room is %s. Share it with friends.", name, roomID)
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	if link != "" {
		reply.ReplyMarkup = newWebAppKeyboard(playButtonText, link)
	}

	b.log.Info().Str("room_id", roomID).Str("name", name).Int64("chat_id", msg.Chat.ID).Msg("room created via bot")
	return reply, nil
}

// webAppKeyboard is an inline keyboard whose button opens the game as a
// Telegram Mini App. The library's markup types predate the web_app field;
// ReplyMarkup is sent as plain JSON, so this shape goes out unchanged.
type webAppKeyboard struct {
	InlineKeyboard [][]webAppButton `json:"inline_keyboard"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

func newWebAppKeyboard(text, link string) webAppKeyboard {
	return webAppKeyboard{
		InlineKeyboard: [][]webAppButton{{{Text: text, WebApp: webAppInfo{URL: link}}}},
	}
}

// botLogger routes the library's log lines into zerolog.
type botLogger struct {
	log *zerolog.Logger
}

func (l botLogger) Println(v ...interface{}) {
	l.log.Debug().Msg(fmt.Sprint(v...))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.log.Debug().Msgf(format, v...)
}
