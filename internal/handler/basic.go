package handler

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/i18n"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

type LanguageSetter interface {
	SetLanguage(userID int64, code string) error
}

type BasicHandler struct {
	msg      Messenger
	tr       *i18n.Translator
	prefs    LanguageSetter
	maxBytes int64
}

func NewBasicHandler(m Messenger, tr *i18n.Translator, prefs LanguageSetter, maxBytes int64) *BasicHandler {
	return &BasicHandler{msg: m, tr: tr, prefs: prefs, maxBytes: maxBytes}
}

func (h *BasicHandler) HandleStart(ctx context.Context, m Message) error {
	_, err := h.msg.SendText(ctx, m.ChatID, h.tr.T(m.UserID, i18n.KeyWelcome), nil)
	return errors.Wrap(err, "send welcome")
}

func (h *BasicHandler) HandleHelp(ctx context.Context, m Message) error {
	_, err := h.msg.SendText(ctx, m.ChatID, h.tr.Tf(m.UserID, i18n.KeyHelp, h.maxBytes/(1024*1024)), nil)
	return errors.Wrap(err, "send help")
}

func (h *BasicHandler) HandleSettings(ctx context.Context, m Message) error {
	kb := h.languageKeyboard(h.tr.Lang(m.UserID))
	_, err := h.msg.SendText(ctx, m.ChatID, h.tr.T(m.UserID, i18n.KeySettings), kb)
	return errors.Wrap(err, "send settings")
}

// HandleLanguage stores the choice and re-renders the settings menu in the
// new language with the confirmation appended.
func (h *BasicHandler) HandleLanguage(ctx context.Context, cb Callback, sel callback.SelectLanguage) error {
	if err := h.prefs.SetLanguage(cb.UserID, sel.Code); err != nil {
		logger.Error("Failed to save language", "user_id", cb.UserID, "code", sel.Code, "error", err)
		text := h.tr.T(cb.UserID, i18n.KeyError) + " " + h.tr.T(cb.UserID, i18n.KeyErrorSettings)
		edit(ctx, h.msg, cb.ChatID, cb.MsgID, false, text, nil)
		answer(ctx, h.msg, cb.QueryID, "")
		return nil
	}

	logger.Info("Language changed", "user_id", cb.UserID, "code", sel.Code)
	text := h.tr.T(cb.UserID, i18n.KeySettings) + "\n\n" + h.tr.T(cb.UserID, i18n.KeyLanguageChanged)
	edit(ctx, h.msg, cb.ChatID, cb.MsgID, false, text, h.languageKeyboard(h.tr.Lang(cb.UserID)))
	answer(ctx, h.msg, cb.QueryID, "")
	return nil
}

// languageKeyboard lays the languages out two per row and marks current.
func (h *BasicHandler) languageKeyboard(current string) callback.Keyboard {
	var kb callback.Keyboard
	var row callback.Row
	for _, l := range i18n.Languages() {
		label := l.Label
		if l.Code == current {
			label += " ✓"
		}
		row = append(row, callback.Button{Text: label, Payload: callback.SelectLanguage{Code: l.Code}})
		if len(row) == 2 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	return kb
}
