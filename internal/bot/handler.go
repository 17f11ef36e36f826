package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eliseohh/qrcrafterbot/internal/config"
	"github.com/eliseohh/qrcrafterbot/internal/router"
	tele "gopkg.in/telebot.v3"
)

type Bot struct {
	api    *tele.Bot
	router *router.Router
	log    *slog.Logger
	cfg    config.Config
}

func New(cfg config.Config, r *router.Router, log *slog.Logger) (*Bot, error) {
	log = log.With("component", "bot")

	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			if c != nil && c.Sender() != nil {
				log.Error("handler failed", "err", err, "user_id", c.Sender().ID)
				return
			}
			log.Error("handler failed", "err", err)
		},
	}

	api, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{api: api, router: r, log: log, cfg: cfg}
	bot.register()
	return bot, nil
}

// Start publishes the command menu and polls until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	if err := b.api.SetCommands(telegramCommands()); err != nil {
		b.log.Warn("failed to publish command menu", "err", err)
	}

	go func() {
		<-ctx.Done()
		b.log.Info("stopping poller")
		b.api.Stop()
	}()

	b.log.Info("bot started", "username", b.api.Me.Username)
	b.api.Start()
}

func (b *Bot) register() {
	for _, cmd := range router.Commands() {
		b.api.Handle("/"+string(cmd.Name), b.handleCommand(cmd.Name))
	}
	b.api.Handle(tele.OnCallback, b.handleCallback)
	b.api.Handle(tele.OnText, b.handleText)
}

func telegramCommands() []tele.Command {
	var out []tele.Command
	for _, cmd := range router.Commands() {
		out = append(out, tele.Command{Text: string(cmd.Name), Description: cmd.Description})
	}
	return out
}

func (b *Bot) handleCommand(name router.CommandName) tele.HandlerFunc {
	return func(c tele.Context) error {
		ev := router.Command{Name: name}
		if u := c.Sender(); u != nil {
			ev.UserName = u.FirstName
			ev.UserID = u.ID
		}
		b.log.Debug("command", "name", name, "user_id", ev.UserID)
		return b.deliver(c, b.router.Route(ev))
	}
}

func (b *Bot) handleCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	// Acknowledge first so the client stops the loading spinner.
	if err := c.Respond(); err != nil {
		b.log.Warn("failed to answer callback", "err", err)
	}

	b.log.Debug("callback", "data", cb.Data)
	return b.deliver(c, b.router.Route(router.ButtonPress{Token: cb.Data}))
}

func (b *Bot) handleText(c tele.Context) error {
	msg := c.Message()
	if msg == nil {
		return nil
	}
	// Unregistered slash commands end up here.
	if strings.HasPrefix(msg.Text, "/") {
		b.log.Debug("ignoring unknown command", "text", msg.Text)
		return nil
	}

	ev := router.FreeText{Content: msg.Text}
	if u := c.Sender(); u != nil {
		ev.UserName = u.FirstName
	}
	b.log.Debug("text", "intent", router.Intent(msg.Text))
	return b.deliver(c, b.router.Route(ev))
}
