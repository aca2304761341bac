package provider

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrExtraction = errors.New("could not extract video info")
	ErrDownload   = errors.New("could not download video")
)

type VideoInfo struct {
	Title     string      // Title of the media, "" if the extractor has none
	Thumbnail string      // Thumbnail URL, "" if absent
	Duration  float64     // Duration in seconds (0 if unknown)
	Formats   []RawFormat // Every stream the extractor reported
}

// RawFormat is a single stream as reported by the extractor.
type RawFormat struct {
	ID     string
	Ext    string
	Width  int
	Height int // 0 when the extractor reports no height
	VCodec string
	ACodec string
}

// VideoMeta is attached to an uploaded video so clients can show its
// length and frame before playback. Zero fields are omitted by Telegram.
type VideoMeta struct {
	Duration float64
	Width    int
	Height   int
}

// Extractor resolves metadata for a link and downloads a chosen stream.
// Both calls block until the external tool exits.
type Extractor interface {
	FetchInfo(ctx context.Context, url string) (*VideoInfo, error)
	Download(ctx context.Context, url, formatID, outputTemplate string) error
}
