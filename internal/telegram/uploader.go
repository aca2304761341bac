package telegram

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gotd/td/telegram/uploader"
	"github.com/gotd/td/tg"

	"github.com/pavelc4/vidgrab-bot/internal/provider"
)

var mimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".opus": "audio/opus",
}

func guessMimeType(filename string) string {
	if mime, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// upload pushes the file at path to Telegram and returns the handle to
// attach to a message.
func (s *Sender) upload(ctx context.Context, chatID int64, path string) (tg.InputFileClass, error) {
	up := uploader.NewUploader(s.api).WithProgress(NewProgressLogger(chatID))
	file, err := up.FromPath(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "upload %s", filepath.Base(path))
	}
	return file, nil
}

func audioMedia(file tg.InputFileClass, path, title string) *tg.InputMediaUploadedDocument {
	return &tg.InputMediaUploadedDocument{
		File:     file,
		MimeType: guessMimeType(path),
		Attributes: []tg.DocumentAttributeClass{
			&tg.DocumentAttributeAudio{Title: title},
			&tg.DocumentAttributeFilename{FileName: filepath.Base(path)},
		},
	}
}

func videoMedia(file tg.InputFileClass, path string, meta provider.VideoMeta) *tg.InputMediaUploadedDocument {
	return &tg.InputMediaUploadedDocument{
		File:     file,
		MimeType: guessMimeType(path),
		Attributes: []tg.DocumentAttributeClass{
			&tg.DocumentAttributeVideo{
				SupportsStreaming: true,
				Duration:          meta.Duration,
				W:                 meta.Width,
				H:                 meta.Height,
			},
			&tg.DocumentAttributeFilename{FileName: filepath.Base(path)},
		},
	}
}
