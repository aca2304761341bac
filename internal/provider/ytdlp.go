package provider

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/lrstanley/go-ytdlp"

	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

const (
	userAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	tiktokExtractorArg = "tiktok:api_hostname=api22-normal-c-useast2a.tiktokv.com"

	mergeContainer = "mp4"
	audioBitrate   = "192K"
)

type YtdlpOptions struct {
	Executable string // yt-dlp binary, resolved from PATH when empty
	Cookies    string // Netscape cookies file, optional
}

// Ytdlp drives the yt-dlp binary through go-ytdlp.
type Ytdlp struct {
	opts YtdlpOptions
}

func NewYtdlp(opts YtdlpOptions) *Ytdlp {
	return &Ytdlp{opts: opts}
}

func (y *Ytdlp) command() *ytdlp.Command {
	cmd := ytdlp.New().
		NoWarnings().
		NoPlaylist().
		AddHeaders("User-Agent:" + userAgent).
		ExtractorArgs(tiktokExtractorArg)

	if y.opts.Executable != "" {
		cmd = cmd.SetExecutable(y.opts.Executable)
	}

	if cookies := y.opts.Cookies; cookies != "" {
		if _, err := os.Stat(cookies); err == nil {
			cmd = cmd.Cookies(cookies)
		} else {
			logger.Warn("Cookies file not found", "path", cookies)
		}
	}
	return cmd
}

func (y *Ytdlp) FetchInfo(ctx context.Context, url string) (*VideoInfo, error) {
	start := time.Now()

	res, err := y.command().
		DumpSingleJSON().
		SkipDownload().
		Run(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(ErrExtraction, "yt-dlp: %v (stderr: %s)", err, stderrOf(res))
	}

	info, err := ParseInfo([]byte(res.Stdout))
	if err != nil {
		return nil, err
	}

	logger.InfoWithDuration("Video info resolved", start,
		"title", info.Title,
		"formats", len(info.Formats),
		"dur", info.Duration,
	)
	return info, nil
}

func (y *Ytdlp) Download(ctx context.Context, url, formatID, outputTemplate string) error {
	cmd := y.command().Output(outputTemplate)

	if formatID == AudioFormatID {
		cmd = cmd.
			Format("bestaudio/best").
			ExtractAudio().
			AudioFormat(AudioExt).
			AudioQuality(audioBitrate)
	} else {
		cmd = cmd.
			Format(formatID + "+bestaudio/best").
			MergeOutputFormat(mergeContainer)
	}

	start := time.Now()
	res, err := cmd.Run(ctx, url)
	if err != nil {
		return errors.Wrapf(ErrDownload, "yt-dlp: %v (stderr: %s)", err, stderrOf(res))
	}

	logger.InfoWithDuration("Download finished", start, "format", formatID)
	return nil
}

func stderrOf(res *ytdlp.Result) string {
	if res == nil {
		return ""
	}
	return strings.TrimSpace(res.Stderr)
}

type ytdlpMeta struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Thumbnail string        `json:"thumbnail"`
	Duration  *float64      `json:"duration"`
	Formats   []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	ID     string   `json:"format_id"`
	Ext    string   `json:"ext"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	VCodec string   `json:"vcodec"`
	ACodec string   `json:"acodec"`
}

// ParseInfo decodes the JSON document printed by --dump-single-json.
func ParseInfo(data []byte) (*VideoInfo, error) {
	var meta ytdlpMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(ErrExtraction, "decode json: %v", err)
	}

	info := &VideoInfo{
		Title:     meta.Title,
		Thumbnail: meta.Thumbnail,
		Formats:   make([]RawFormat, 0, len(meta.Formats)),
	}
	if meta.Duration != nil {
		info.Duration = *meta.Duration
	}

	for _, f := range meta.Formats {
		raw := RawFormat{
			ID:     f.ID,
			Ext:    f.Ext,
			VCodec: f.VCodec,
			ACodec: f.ACodec,
		}
		if f.Width != nil {
			raw.Width = int(*f.Width)
		}
		if f.Height != nil {
			raw.Height = int(*f.Height)
		}
		info.Formats = append(info.Formats, raw)
	}
	return info, nil
}
