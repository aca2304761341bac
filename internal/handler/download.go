package handler

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/pavelc4/vidgrab-bot/internal/artifact"
	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/i18n"
	"github.com/pavelc4/vidgrab-bot/internal/provider"
	"github.com/pavelc4/vidgrab-bot/internal/session"
	"github.com/pavelc4/vidgrab-bot/internal/stats"
	"github.com/pavelc4/vidgrab-bot/internal/utils"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
	"github.com/pavelc4/vidgrab-bot/pkg/worker"
)

const MaxTitleLen = 50

var (
	ErrArtifactMissing = errors.New("downloaded file not found")
	ErrTooLarge        = errors.New("file exceeds upload limit")
)

type DownloadConfig struct {
	Messenger  Messenger
	Translator *i18n.Translator
	Sessions   session.Store
	Extractor  provider.Extractor
	Pool       *worker.Pool
	Files      *artifact.Dir
	Stats      *stats.Recorder
	MaxBytes   int64
}

// DownloadHandler drives a chat from a pasted link through the quality menu
// to the uploaded file.
type DownloadHandler struct {
	msg       Messenger
	tr        *i18n.Translator
	sessions  session.Store
	extractor provider.Extractor
	pool      *worker.Pool
	files     *artifact.Dir
	stats     *stats.Recorder
	maxBytes  int64
}

func NewDownloadHandler(cfg DownloadConfig) *DownloadHandler {
	return &DownloadHandler{
		msg:       cfg.Messenger,
		tr:        cfg.Translator,
		sessions:  cfg.Sessions,
		extractor: cfg.Extractor,
		pool:      cfg.Pool,
		files:     cfg.Files,
		stats:     cfg.Stats,
		maxBytes:  cfg.MaxBytes,
	}
}

// HandleLink analyzes url and replaces the "analyzing" placeholder with the
// quality menu, storing the chat session on the way.
func (h *DownloadHandler) HandleLink(ctx context.Context, m Message, url string) error {
	logger.Info("Analyzing link", "chat_id", m.ChatID, "url", url)
	uid := m.UserID

	placeholderID, err := h.msg.SendText(ctx, m.ChatID, h.tr.T(uid, i18n.KeyAnalyzing), nil)
	if err != nil {
		return errors.Wrap(err, "send placeholder")
	}

	var info *provider.VideoInfo
	err = h.pool.Do(ctx, func() error {
		var err error
		info, err = h.extractor.FetchInfo(ctx, url)
		return err
	})
	if err != nil {
		logger.Error("Failed to fetch video info", "url", url, "error", err)
		h.stats.RecordAnalysis(false)
		edit(ctx, h.msg, m.ChatID, placeholderID, false, h.errorText(uid, i18n.KeyErrorProcess), nil)
		return nil
	}

	title := info.Title
	if title == "" {
		title = h.tr.T(uid, i18n.KeyUnknown)
	}
	title = utils.Truncate(title, MaxTitleLen)

	formats := provider.SelectFormats(info.Formats)
	sess := session.Session{
		SourceURL: url,
		Title:     title,
		Duration:  info.Duration,
		Formats:   formats,
		MenuMsgID: placeholderID,
		CreatedAt: time.Now(),
	}
	h.sessions.Put(m.ChatID, sess)

	summary := h.summary(uid, title, info.Duration)
	kb := h.formatKeyboard(uid, formats)

	if info.Thumbnail != "" {
		photoID, err := h.msg.SendPhoto(ctx, m.ChatID, info.Thumbnail, summary, kb)
		if err == nil {
			sess.MenuMsgID = photoID
			sess.MenuIsPhoto = true
			h.sessions.Put(m.ChatID, sess)

			if err := h.msg.Delete(ctx, m.ChatID, placeholderID); err != nil {
				logger.Warn("Failed to delete placeholder", "msg_id", placeholderID, "error", err)
			}
			h.stats.RecordAnalysis(true)
			return nil
		}
		logger.Warn("Failed to send thumbnail, showing text menu", "url", info.Thumbnail, "error", err)
	}

	if err := h.msg.EditText(ctx, m.ChatID, placeholderID, summary, kb); err != nil {
		return errors.Wrap(err, "show formats")
	}
	h.stats.RecordAnalysis(true)
	return nil
}

// HandleCancel only changes what the menu shows: a download already running
// for this chat keeps going.
func (h *DownloadHandler) HandleCancel(ctx context.Context, cb Callback) error {
	sess, ok := h.sessions.Get(cb.ChatID)
	own := ok && sess.MenuMsgID == cb.MsgID

	edit(ctx, h.msg, cb.ChatID, cb.MsgID, own && sess.MenuIsPhoto, h.tr.T(cb.UserID, i18n.KeyCancelled), nil)
	if own {
		h.sessions.Evict(cb.ChatID)
	}
	answer(ctx, h.msg, cb.QueryID, "")
	return nil
}

// HandleDownload runs the chosen format through download, size check and
// upload. The artifact is removed on every path.
func (h *DownloadHandler) HandleDownload(ctx context.Context, cb Callback, sel callback.SelectFormat) error {
	uid := cb.UserID

	sess, format, ok := h.resolve(cb, sel)
	if !ok {
		logger.Info("Download for unknown session", "chat_id", cb.ChatID, "msg_id", cb.MsgID)
		h.stats.RecordDownload(kindOf(sel.FormatID), stats.OutcomeExpired, 0)
		edit(ctx, h.msg, cb.ChatID, cb.MsgID, false, h.tr.T(uid, i18n.KeySessionExpired), nil)
		answer(ctx, h.msg, cb.QueryID, "")
		return nil
	}

	status := func(text string) {
		edit(ctx, h.msg, cb.ChatID, cb.MsgID, sess.MenuIsPhoto, text, nil)
	}

	status(fmt.Sprintf("%s\n\n%s %s\n%s %s\n\n%s",
		h.tr.T(uid, i18n.KeyDownloading),
		h.tr.T(uid, i18n.KeyTitle), html.EscapeString(sess.Title),
		h.tr.T(uid, i18n.KeyFormat), strings.ToUpper(format.Ext),
		h.tr.T(uid, i18n.KeyWait),
	))
	answer(ctx, h.msg, cb.QueryID, "")

	base := h.files.Base(cb.ChatID, format.ID)
	defer artifact.Remove(base)

	start := time.Now()
	path, size, err := h.fetch(ctx, sess.SourceURL, format, base)
	switch {
	case errors.Is(err, ErrArtifactMissing):
		logger.Error("Downloaded file not found", "base", base)
		h.stats.RecordDownload(string(format.Kind), stats.OutcomeMissing, 0)
		status(h.errorText(uid, i18n.KeyDownloadFailed))
		return nil
	case errors.Is(err, ErrTooLarge):
		logger.Warn("File too large to upload", "path", path, "size", size, "limit", h.maxBytes)
		h.stats.RecordDownload(string(format.Kind), stats.OutcomeTooLarge, 0)
		status(h.errorText(uid, i18n.KeyFileTooLarge, h.maxBytes/(1024*1024)))
		return nil
	case err != nil:
		logger.ErrorWithDuration("Download error", start, "url", sess.SourceURL, "format", format.ID, "error", err)
		h.stats.RecordDownload(string(format.Kind), stats.OutcomeFailed, 0)
		status(h.errorText(uid, i18n.KeyErrorDownload))
		return nil
	}

	status(h.tr.T(uid, i18n.KeyUploading))

	if format.Ext == provider.AudioExt {
		err = h.msg.SendAudio(ctx, cb.ChatID, path, sess.Title)
	} else {
		meta := provider.VideoMeta{Duration: sess.Duration, Width: format.Width, Height: format.Height}
		err = h.msg.SendVideo(ctx, cb.ChatID, path, "✅ "+html.EscapeString(sess.Title), meta)
	}
	if err != nil {
		logger.Error("Upload error", "path", path, "error", err)
		h.stats.RecordDownload(string(format.Kind), stats.OutcomeFailed, 0)
		status(h.errorText(uid, i18n.KeyErrorDownload))
		return nil
	}

	logger.InfoWithDuration("Download delivered", start, "chat_id", cb.ChatID, "format", format.ID, "size", size)
	h.stats.RecordDownload(string(format.Kind), stats.OutcomeOK, size)
	status(h.tr.T(uid, i18n.KeyComplete))
	return nil
}

// resolve checks that the press belongs to the chat's current menu and that
// the format is one that menu offered.
func (h *DownloadHandler) resolve(cb Callback, sel callback.SelectFormat) (session.Session, provider.Format, bool) {
	sess, ok := h.sessions.Get(cb.ChatID)
	if !ok || sess.MenuMsgID != cb.MsgID {
		return session.Session{}, provider.Format{}, false
	}
	format, ok := provider.FindFormat(sess.Formats, sel.FormatID, sel.Ext)
	if !ok {
		return session.Session{}, provider.Format{}, false
	}
	return sess, format, true
}

// fetch downloads format into base.* and returns the file that appeared.
func (h *DownloadHandler) fetch(ctx context.Context, url string, format provider.Format, base string) (string, int64, error) {
	err := h.pool.Do(ctx, func() error {
		return h.extractor.Download(ctx, url, format.ID, artifact.Template(base))
	})
	if err != nil {
		return "", 0, err
	}

	path, ok := artifact.Locate(base, format.Ext)
	if !ok {
		return "", 0, ErrArtifactMissing
	}

	st, err := os.Stat(path)
	if err != nil {
		return "", 0, errors.Wrap(err, "stat artifact")
	}
	if st.Size() > h.maxBytes {
		return path, st.Size(), ErrTooLarge
	}
	return path, st.Size(), nil
}

func (h *DownloadHandler) summary(uid int64, title string, duration float64) string {
	dur, ok := utils.FormatClock(duration)
	if !ok {
		dur = h.tr.T(uid, i18n.KeyUnknown)
	}
	return fmt.Sprintf("%s\n\n%s %s\n%s %s\n\n%s",
		h.tr.T(uid, i18n.KeyVideoFound),
		h.tr.T(uid, i18n.KeyTitle), html.EscapeString(title),
		h.tr.T(uid, i18n.KeyDuration), dur,
		h.tr.T(uid, i18n.KeyChooseQuality),
	)
}

func (h *DownloadHandler) formatKeyboard(uid int64, formats []provider.Format) callback.Keyboard {
	kb := make(callback.Keyboard, 0, len(formats)+1)
	for _, f := range formats {
		p := callback.SelectFormat{FormatID: f.ID, Ext: f.Ext}
		if _, err := callback.Encode(p); err != nil {
			logger.Warn("Skipping format button", "format", f.ID, "error", err)
			continue
		}
		emoji := "🎬"
		if f.IsAudio() {
			emoji = "🎵"
		}
		kb = append(kb, callback.Row{{
			Text:    fmt.Sprintf("%s %s (%s)", emoji, f.Quality, f.Ext),
			Payload: p,
		}})
	}
	kb = append(kb, callback.Row{{Text: h.tr.T(uid, i18n.KeyCancel), Payload: callback.Cancel{}}})
	return kb
}

func (h *DownloadHandler) errorText(uid int64, key string, args ...any) string {
	body := h.tr.T(uid, key)
	if len(args) > 0 {
		body = fmt.Sprintf(body, args...)
	}
	return h.tr.T(uid, i18n.KeyError) + " " + body
}

func kindOf(formatID string) string {
	if formatID == provider.AudioFormatID {
		return string(provider.KindAudio)
	}
	return string(provider.KindVideo)
}
