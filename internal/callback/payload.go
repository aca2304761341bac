// Package callback defines the inline button payloads exchanged with
// Telegram and the keyboard model handlers build menus from.
package callback

import (
	"strings"

	"github.com/go-faster/errors"
)

// MaxDataLen is the Telegram limit for callback_data.
const MaxDataLen = 64

const (
	cancelData     = "cancel"
	languagePrefix = "lang_"
	downloadPrefix = "dl_"
)

var (
	ErrMalformed = errors.New("malformed callback payload")
	ErrTooLong   = errors.New("callback payload exceeds 64 bytes")
)

// Payload is one of Cancel, SelectLanguage or SelectFormat.
type Payload interface {
	payload()
}

type Cancel struct{}

type SelectLanguage struct {
	Code string
}

type SelectFormat struct {
	FormatID string
	Ext      string
}

func (Cancel) payload()         {}
func (SelectLanguage) payload() {}
func (SelectFormat) payload()   {}

// Encode renders p as callback data.
func Encode(p Payload) (string, error) {
	var s string
	switch v := p.(type) {
	case Cancel:
		s = cancelData
	case SelectLanguage:
		if v.Code == "" || strings.Contains(v.Code, "_") {
			return "", errors.Wrapf(ErrMalformed, "language %q", v.Code)
		}
		s = languagePrefix + v.Code
	case SelectFormat:
		if v.FormatID == "" || v.Ext == "" || strings.Contains(v.Ext, "_") {
			return "", errors.Wrapf(ErrMalformed, "format %q/%q", v.FormatID, v.Ext)
		}
		s = downloadPrefix + v.FormatID + "_" + v.Ext
	default:
		return "", errors.Wrapf(ErrMalformed, "unknown payload %T", p)
	}
	if len(s) > MaxDataLen {
		return "", errors.Wrapf(ErrTooLong, "%d bytes", len(s))
	}
	return s, nil
}

// Decode parses callback data. Format ids may contain underscores, so the
// extension is whatever follows the last one.
func Decode(data string) (Payload, error) {
	switch {
	case data == cancelData:
		return Cancel{}, nil
	case strings.HasPrefix(data, languagePrefix):
		code := strings.TrimPrefix(data, languagePrefix)
		if code == "" {
			return nil, errors.Wrapf(ErrMalformed, "%q", data)
		}
		return SelectLanguage{Code: code}, nil
	case strings.HasPrefix(data, downloadPrefix):
		rest := strings.TrimPrefix(data, downloadPrefix)
		i := strings.LastIndex(rest, "_")
		if i <= 0 || i == len(rest)-1 {
			return nil, errors.Wrapf(ErrMalformed, "%q", data)
		}
		return SelectFormat{FormatID: rest[:i], Ext: rest[i+1:]}, nil
	default:
		return nil, errors.Wrapf(ErrMalformed, "%q", data)
	}
}
