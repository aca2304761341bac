// Package artifact manages the scratch directory that holds downloaded
// files between the download and upload steps.
package artifact

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

// ProbeExtensions are tried after the requested one, since the container
// yt-dlp settles on is not known in advance.
var ProbeExtensions = []string{"mp4", "mp3", "webm", "m4a"}

var pathReplacer = strings.NewReplacer("/", "_", `\`, "_", ".", "_", string(os.PathSeparator), "_")

// leftoverSuffix matches what yt-dlp writes after "base.": the final file,
// its .part and .ytdl state, per-stream f<id> files awaiting a merge and
// .temp remux output.
var leftoverSuffix = regexp.MustCompile(`^(?:(?:f[^.]+|temp)\.)?[A-Za-z0-9]+(?:\.part(?:-Frag\d+)?|\.ytdl)?$`)

type Dir struct {
	root string
}

// Prepare creates root if needed.
func Prepare(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create download dir")
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Root() string {
	return d.root
}

// Base returns the extension-less path for a chat and format,
// {root}/{chat}_{format}. Separators and dots in the format id become
// underscores so no base is a dotted prefix of another.
func (d *Dir) Base(chatID int64, formatID string) string {
	name := strconv.FormatInt(chatID, 10) + "_" + pathReplacer.Replace(formatID)
	return filepath.Join(d.root, name)
}

// Template is the yt-dlp output template for base.
func Template(base string) string {
	return base + ".%(ext)s"
}

// Locate finds the produced file for base, trying want first.
func Locate(base, want string) (string, bool) {
	tried := make(map[string]bool, len(ProbeExtensions)+1)
	for _, ext := range append([]string{want}, ProbeExtensions...) {
		if ext == "" || tried[ext] {
			continue
		}
		tried[ext] = true

		path := base + "." + ext
		if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Remove deletes the artifact for base plus any partial leftovers yt-dlp
// produced for it, and reports how many were removed. Files of other bases
// sharing the prefix are kept. Failures are logged only.
func Remove(base string) int {
	dir, prefix := filepath.Dir(base), filepath.Base(base)+"."

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Failed to list download dir", "dir", dir, "error", err)
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if !leftoverSuffix.MatchString(strings.TrimPrefix(e.Name(), prefix)) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			logger.Error("Error deleting file", "path", path, "error", err)
			continue
		}
		removed++
		logger.Debug("Deleted file", "path", path)
	}
	return removed
}

// SweepOrphans removes files older than maxAge, left behind by crashes or
// failed deletions.
func (d *Dir) SweepOrphans(ctx context.Context, maxAge time.Duration) int {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		logger.Warn("Failed to list download dir", "dir", d.root, "error", err)
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for _, e := range entries {
		select {
		case <-ctx.Done():
			logger.Warn("Orphan sweep cancelled", "cleaned", cleaned)
			return cleaned
		default:
		}

		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(d.root, e.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("Failed to remove orphan", "path", path, "error", err)
			continue
		}
		cleaned++
	}

	if cleaned > 0 {
		logger.Info("Orphaned downloads cleaned", "count", cleaned)
	}
	return cleaned
}
