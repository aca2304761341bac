package provider

import (
	"sort"
	"strconv"
)

const (
	MaxVideoOptions = 5

	AudioFormatID = "bestaudio"
	AudioExt      = "mp3"
	AudioQuality  = "Audio Only"
)

type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Format is one entry of the quality menu shown to the user.
type Format struct {
	Kind    Kind
	Quality string
	ID      string
	Ext     string
	Width   int
	Height  int
}

func (f Format) IsAudio() bool {
	return f.Kind == KindAudio
}

var allowedContainers = map[string]bool{
	"mp4":  true,
	"webm": true,
}

// AudioFormat is appended to every menu.
func AudioFormat() Format {
	return Format{Kind: KindAudio, Quality: AudioQuality, ID: AudioFormatID, Ext: AudioExt}
}

// SelectFormats turns the raw stream list into at most five video options,
// one per distinct height and highest first, followed by the audio option.
// The first stream seen for a height wins.
func SelectFormats(raw []RawFormat) []Format {
	seen := make(map[string]bool)
	videos := make([]Format, 0, len(raw))

	for _, f := range raw {
		if f.Height <= 0 || f.VCodec == "" || f.VCodec == "none" || !allowedContainers[f.Ext] {
			continue
		}
		quality := strconv.Itoa(f.Height) + "p"
		if seen[quality] {
			continue
		}
		seen[quality] = true
		videos = append(videos, Format{
			Kind:    KindVideo,
			Quality: quality,
			ID:      f.ID,
			Ext:     f.Ext,
			Width:   f.Width,
			Height:  f.Height,
		})
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Height > videos[j].Height
	})
	if len(videos) > MaxVideoOptions {
		videos = videos[:MaxVideoOptions]
	}

	return append(videos, AudioFormat())
}

// FindFormat looks up a menu entry by id and extension.
func FindFormat(formats []Format, id, ext string) (Format, bool) {
	for _, f := range formats {
		if f.ID == id && f.Ext == ext {
			return f, true
		}
	}
	return Format{}, false
}
