package bot

import (
	"fmt"

	"github.com/eliseohh/qrcrafterbot/internal/router"
	tele "gopkg.in/telebot.v3"
)

// deliver sends resp and its follow-ups in order.
func (b *Bot) deliver(c tele.Context, resp router.Response) error {
	for r := &resp; r != nil; r = r.Then {
		opts := sendOptions(*r)
		if r.Replace {
			err := c.Edit(r.Text, opts)
			if err == nil {
				continue
			}
			b.log.Warn("edit failed, sending a new message", "err", err)
		}
		if err := c.Send(r.Text, opts); err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
	}
	return nil
}

func sendOptions(r router.Response) *tele.SendOptions {
	opts := &tele.SendOptions{ReplyMarkup: replyMarkup(r.Keyboard)}
	if r.Format == router.FormatMarkdown {
		opts.ParseMode = tele.ModeMarkdown
	}
	return opts
}

func replyMarkup(kb *router.Keyboard) *tele.ReplyMarkup {
	if kb == nil {
		return nil
	}

	rm := &tele.ReplyMarkup{}
	switch kb.Kind {
	case router.KeyboardReply:
		rm.ResizeKeyboard = true
		rm.IsPersistent = true
		for _, row := range kb.Rows {
			var out []tele.ReplyButton
			for _, btn := range row {
				out = append(out, tele.ReplyButton{Text: btn.Label})
			}
			rm.ReplyKeyboard = append(rm.ReplyKeyboard, out)
		}
	default:
		for _, row := range kb.Rows {
			var out []tele.InlineButton
			for _, btn := range row {
				out = append(out, inlineButton(btn))
			}
			rm.InlineKeyboard = append(rm.InlineKeyboard, out)
		}
	}
	return rm
}

func inlineButton(btn router.Button) tele.InlineButton {
	ib := tele.InlineButton{Text: btn.Label}
	switch btn.Kind {
	case router.ButtonURL:
		ib.URL = btn.Data
	case router.ButtonWebApp:
		ib.WebApp = &tele.WebApp{URL: btn.Data}
	default:
		ib.Data = btn.Data
	}
	return ib
}
