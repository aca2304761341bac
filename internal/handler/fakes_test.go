package handler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/vidgrab-bot/internal/artifact"
	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/i18n"
	"github.com/pavelc4/vidgrab-bot/internal/prefs"
	"github.com/pavelc4/vidgrab-bot/internal/provider"
	"github.com/pavelc4/vidgrab-bot/internal/session"
	"github.com/pavelc4/vidgrab-bot/internal/stats"
	"github.com/pavelc4/vidgrab-bot/pkg/worker"
)

type call struct {
	Op       string
	ChatID   int64
	MsgID    int
	Text     string
	Path     string
	Photo    string
	Keyboard callback.Keyboard
	Meta     provider.VideoMeta
}

// fakeMessenger records every call. photoErr fails SendPhoto, sendErr fails
// both media uploads after they are recorded.
type fakeMessenger struct {
	mu       sync.Mutex
	calls    []call
	nextID   int
	photoErr error
	sendErr  error
}

func (f *fakeMessenger) record(c call) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if c.Op == "send_text" || c.Op == "send_photo" {
		f.nextID++
		return 100 + f.nextID
	}
	return 0
}

func (f *fakeMessenger) SendText(_ context.Context, chatID int64, text string, kb callback.Keyboard) (int, error) {
	return f.record(call{Op: "send_text", ChatID: chatID, Text: text, Keyboard: kb}), nil
}

func (f *fakeMessenger) SendPhoto(_ context.Context, chatID int64, photoURL, caption string, kb callback.Keyboard) (int, error) {
	if f.photoErr != nil {
		return 0, f.photoErr
	}
	return f.record(call{Op: "send_photo", ChatID: chatID, Photo: photoURL, Text: caption, Keyboard: kb}), nil
}

func (f *fakeMessenger) EditText(_ context.Context, chatID int64, msgID int, text string, kb callback.Keyboard) error {
	f.record(call{Op: "edit_text", ChatID: chatID, MsgID: msgID, Text: text, Keyboard: kb})
	return nil
}

func (f *fakeMessenger) EditCaption(_ context.Context, chatID int64, msgID int, caption string, kb callback.Keyboard) error {
	f.record(call{Op: "edit_caption", ChatID: chatID, MsgID: msgID, Text: caption, Keyboard: kb})
	return nil
}

func (f *fakeMessenger) Delete(_ context.Context, chatID int64, msgID int) error {
	f.record(call{Op: "delete", ChatID: chatID, MsgID: msgID})
	return nil
}

func (f *fakeMessenger) SendAudio(_ context.Context, chatID int64, path, title string) error {
	f.record(call{Op: "send_audio", ChatID: chatID, Path: path, Text: title})
	return f.sendErr
}

func (f *fakeMessenger) SendVideo(_ context.Context, chatID int64, path, caption string, meta provider.VideoMeta) error {
	f.record(call{Op: "send_video", ChatID: chatID, Path: path, Text: caption, Meta: meta})
	return f.sendErr
}

func (f *fakeMessenger) AnswerCallback(_ context.Context, _ int64, text string) error {
	f.record(call{Op: "answer", Text: text})
	return nil
}

func (f *fakeMessenger) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Op
	}
	return out
}

func (f *fakeMessenger) last(op string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Op == op {
			return f.calls[i], true
		}
	}
	return call{}, false
}

// fakeExtractor writes size bytes to the output template using ext, then
// returns dlErr.
type fakeExtractor struct {
	info       *provider.VideoInfo
	infoErr    error
	ext        string
	size       int
	dlErr      error
	infoCalls  atomic.Int32
	dlCalls    atomic.Int32
	lastFormat string
}

func (f *fakeExtractor) FetchInfo(context.Context, string) (*provider.VideoInfo, error) {
	f.infoCalls.Add(1)
	return f.info, f.infoErr
}

func (f *fakeExtractor) Download(_ context.Context, _, formatID, tmpl string) error {
	f.dlCalls.Add(1)
	f.lastFormat = formatID
	if f.ext != "" {
		path := strings.Replace(tmpl, "%(ext)s", f.ext, 1)
		if err := os.WriteFile(path, make([]byte, f.size), 0o644); err != nil {
			return err
		}
	}
	return f.dlErr
}

type fixture struct {
	msg      *fakeMessenger
	ext      *fakeExtractor
	sessions *session.MemoryStore
	prefs    *prefs.Store
	files    *artifact.Dir
	rec      *stats.Recorder
	pool     *worker.Pool
	tr       *i18n.Translator
	dl       *DownloadHandler
	basic    *BasicHandler
}

const testMaxBytes = 1 << 20

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	files, err := artifact.Prepare(filepath.Join(dir, "downloads"))
	require.NoError(t, err)

	f := &fixture{
		msg:      &fakeMessenger{},
		ext:      &fakeExtractor{},
		sessions: session.NewMemoryStore(),
		prefs:    prefs.NewStore(filepath.Join(dir, "user_settings.json")),
		files:    files,
		rec:      stats.NewRecorder(prometheus.NewRegistry()),
		pool:     worker.NewPool(2),
	}
	t.Cleanup(f.pool.Stop)
	f.tr = i18n.NewTranslator(f.prefs)
	f.dl = NewDownloadHandler(DownloadConfig{
		Messenger:  f.msg,
		Translator: f.tr,
		Sessions:   f.sessions,
		Extractor:  f.ext,
		Pool:       f.pool,
		Files:      f.files,
		Stats:      f.rec,
		MaxBytes:   testMaxBytes,
	})
	f.basic = NewBasicHandler(f.msg, f.tr, f.prefs, testMaxBytes)
	return f
}

func (f *fixture) leftovers(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.files.Root())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
