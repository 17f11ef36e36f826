package bot

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/eliseohh/qrcrafterbot/internal/router"
	tele "gopkg.in/telebot.v3"
)

type sent struct {
	text string
	opts *tele.SendOptions
	edit bool
}

// MockContext implements tele.Context restricted to what we use
type MockContext struct {
	tele.Context
	MessageVal  *tele.Message
	CallbackVal *tele.Callback
	SenderVal   *tele.User
	EditErr     error

	Sent      []sent
	Responded bool
}

func (m *MockContext) Message() *tele.Message   { return m.MessageVal }
func (m *MockContext) Callback() *tele.Callback { return m.CallbackVal }
func (m *MockContext) Sender() *tele.User       { return m.SenderVal }

func (m *MockContext) Send(what interface{}, opts ...interface{}) error {
	m.Sent = append(m.Sent, sent{text: what.(string), opts: firstOpts(opts)})
	return nil
}

func (m *MockContext) Edit(what interface{}, opts ...interface{}) error {
	if m.EditErr != nil {
		return m.EditErr
	}
	m.Sent = append(m.Sent, sent{text: what.(string), opts: firstOpts(opts), edit: true})
	return nil
}

func (m *MockContext) Respond(resp ...*tele.CallbackResponse) error {
	m.Responded = true
	return nil
}

func firstOpts(opts []interface{}) *tele.SendOptions {
	if len(opts) > 0 {
		if o, ok := opts[0].(*tele.SendOptions); ok {
			return o
		}
	}
	return nil
}

func newTestBot() *Bot {
	return &Bot{
		router: router.New(router.Links{}),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestBotHandlers(t *testing.T) {
	b := newTestBot()
	ana := &tele.User{ID: 42, FirstName: "Ana"}

	t.Run("Start Sends Greeting And Menu", func(t *testing.T) {
		ctx := &MockContext{SenderVal: ana, MessageVal: &tele.Message{Text: "/start"}}
		if err := b.handleCommand(router.CmdStart)(ctx); err != nil {
			t.Fatal(err)
		}
		if len(ctx.Sent) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(ctx.Sent))
		}

		first := ctx.Sent[0]
		if !strings.Contains(first.text, "Ana") || !strings.Contains(first.text, "42") {
			t.Errorf("Expected personalized greeting, got: %s", first.text)
		}
		if first.opts.ParseMode != tele.ModeMarkdown {
			t.Errorf("parse mode = %q", first.opts.ParseMode)
		}
		if rm := first.opts.ReplyMarkup; rm == nil || len(rm.ReplyKeyboard) != 3 || !rm.ResizeKeyboard {
			t.Errorf("Expected resized reply keyboard, got: %+v", rm)
		}

		menu := ctx.Sent[1].opts.ReplyMarkup
		if menu == nil || len(menu.InlineKeyboard) != 2 {
			t.Fatalf("Expected inline main menu, got: %+v", menu)
		}
		launch := menu.InlineKeyboard[0][0]
		if launch.WebApp == nil || launch.WebApp.URL != router.DefaultWebAppURL {
			t.Errorf("Expected web app button, got: %+v", launch)
		}
		if menu.InlineKeyboard[1][0].Data != router.TokenFeatures {
			t.Errorf("Expected features callback, got: %+v", menu.InlineKeyboard[1][0])
		}
	})

	t.Run("Rate Has URL Button", func(t *testing.T) {
		ctx := &MockContext{SenderVal: ana}
		if err := b.handleCommand(router.CmdRate)(ctx); err != nil {
			t.Fatal(err)
		}
		btn := ctx.Sent[0].opts.ReplyMarkup.InlineKeyboard[0][0]
		if btn.URL != router.DefaultRatingURL || btn.Data != "" {
			t.Errorf("Expected url button, got: %+v", btn)
		}
	})

	t.Run("Callback Features", func(t *testing.T) {
		ctx := &MockContext{SenderVal: ana, CallbackVal: &tele.Callback{Data: router.TokenFeatures}}
		if err := b.handleCallback(ctx); err != nil {
			t.Fatal(err)
		}
		if !ctx.Responded {
			t.Error("callback not acknowledged")
		}
		if len(ctx.Sent) != 1 || ctx.Sent[0].edit {
			t.Fatalf("Expected one new message, got: %+v", ctx.Sent)
		}
		if !strings.Contains(ctx.Sent[0].text, "Full Features List") {
			t.Errorf("Expected features text, got: %s", ctx.Sent[0].text)
		}
	})

	t.Run("Callback Unknown Edits Message", func(t *testing.T) {
		ctx := &MockContext{SenderVal: ana, CallbackVal: &tele.Callback{Data: "garbage"}}
		if err := b.handleCallback(ctx); err != nil {
			t.Fatal(err)
		}
		if len(ctx.Sent) != 1 || !ctx.Sent[0].edit {
			t.Fatalf("Expected an edit, got: %+v", ctx.Sent)
		}
		if ctx.Sent[0].opts.ParseMode != tele.ModeDefault {
			t.Errorf("Expected plain text, got mode %q", ctx.Sent[0].opts.ParseMode)
		}
		if len(ctx.Sent[0].opts.ReplyMarkup.InlineKeyboard) != 2 {
			t.Error("Expected main menu to be re-offered")
		}
	})

	t.Run("Callback Unknown Falls Back To Send", func(t *testing.T) {
		ctx := &MockContext{
			SenderVal:   ana,
			CallbackVal: &tele.Callback{Data: "garbage"},
			EditErr:     errors.New("message is too old"),
		}
		if err := b.handleCallback(ctx); err != nil {
			t.Fatal(err)
		}
		if len(ctx.Sent) != 1 || ctx.Sent[0].edit {
			t.Fatalf("Expected a new message, got: %+v", ctx.Sent)
		}
	})

	t.Run("Text Priority", func(t *testing.T) {
		ctx := &MockContext{SenderVal: ana, MessageVal: &tele.Message{Text: "hi, do you support wifi?"}}
		if err := b.handleText(ctx); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(ctx.Sent[0].text, "Wi-Fi network") {
			t.Errorf("Expected wifi answer, got: %s", ctx.Sent[0].text)
		}
	})

	t.Run("Text Greeting Uses Name", func(t *testing.T) {
		ctx := &MockContext{SenderVal: ana, MessageVal: &tele.Message{Text: "Hey!"}}
		if err := b.handleText(ctx); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(ctx.Sent[0].text, "Hello, Ana!") {
			t.Errorf("Expected greeting, got: %s", ctx.Sent[0].text)
		}
	})

	t.Run("Unknown Command Ignored", func(t *testing.T) {
		ctx := &MockContext{SenderVal: ana, MessageVal: &tele.Message{Text: "/unknown"}}
		if err := b.handleText(ctx); err != nil {
			t.Fatal(err)
		}
		if len(ctx.Sent) != 0 {
			t.Errorf("Expected no reply, got: %+v", ctx.Sent)
		}
	})
}

func TestTelegramCommands(t *testing.T) {
	cmds := telegramCommands()
	if len(cmds) != 6 {
		t.Fatalf("expected 6 commands, got %d", len(cmds))
	}
	for _, c := range cmds {
		if strings.HasPrefix(c.Text, "/") || len(c.Description) < 3 {
			t.Errorf("invalid command entry: %+v", c)
		}
	}
}
