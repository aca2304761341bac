package telegram

import (
	"github.com/gotd/td/tg"

	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

// Markup converts kb to an inline keyboard. Buttons whose payload cannot be
// encoded are dropped; nil is returned when nothing is left.
func Markup(kb callback.Keyboard) tg.ReplyMarkupClass {
	if kb.Empty() {
		return nil
	}

	rows := make([]tg.KeyboardButtonRow, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tg.KeyboardButtonClass, 0, len(row))
		for _, b := range row {
			data, err := callback.Encode(b.Payload)
			if err != nil {
				logger.Warn("Dropping button", "text", b.Text, "error", err)
				continue
			}
			buttons = append(buttons, &tg.KeyboardButtonCallback{Text: b.Text, Data: []byte(data)})
		}
		if len(buttons) > 0 {
			rows = append(rows, tg.KeyboardButtonRow{Buttons: buttons})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return &tg.ReplyInlineMarkup{Rows: rows}
}
