package telegram

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/gotd/td/tg"
)

var tagRegex = regexp.MustCompile(`(?s)<(b|i|code|a)(?: href="([^"]+)")?>([^<]*)</(?:b|i|code|a)>`)

// ParseHTML strips the <b>, <i>, <code> and <a href> tags from text and
// returns the plain message with matching entities. Tags do not nest.
// Offsets and lengths are in UTF-16 code units.
func ParseHTML(text string) (string, []tg.MessageEntityClass) {
	var (
		out      strings.Builder
		entities []tg.MessageEntityClass
		offset   int
		last     int
	)

	write := func(s string) int {
		s = html.UnescapeString(s)
		out.WriteString(s)
		n := len(utf16.Encode([]rune(s)))
		offset += n
		return n
	}

	for _, m := range tagRegex.FindAllStringSubmatchIndex(text, -1) {
		write(text[last:m[0]])

		start := offset
		tag := text[m[2]:m[3]]
		length := write(text[m[6]:m[7]])
		last = m[1]

		if length == 0 {
			continue
		}

		switch tag {
		case "b":
			entities = append(entities, &tg.MessageEntityBold{Offset: start, Length: length})
		case "i":
			entities = append(entities, &tg.MessageEntityItalic{Offset: start, Length: length})
		case "code":
			entities = append(entities, &tg.MessageEntityCode{Offset: start, Length: length})
		case "a":
			if m[4] == -1 {
				continue
			}
			entities = append(entities, &tg.MessageEntityTextURL{
				Offset: start,
				Length: length,
				URL:    html.UnescapeString(text[m[4]:m[5]]),
			})
		}
	}
	write(text[last:])

	return out.String(), entities
}
