package telegram

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTML(t *testing.T) {
	text, entities := ParseHTML("✅ <b>Video Found!</b>\n\n📝 <b>Title:</b> Tom &amp; Jerry <i>x</i> <code>42</code>")

	assert.Equal(t, "✅ Video Found!\n\n📝 Title: Tom & Jerry x 42", text)
	require.Len(t, entities, 4)

	// "✅ " is two UTF-16 units
	assert.Equal(t, &tg.MessageEntityBold{Offset: 2, Length: 12}, entities[0])
	// 📝 is a surrogate pair
	assert.Equal(t, &tg.MessageEntityBold{Offset: 19, Length: 6}, entities[1])
	assert.Equal(t, &tg.MessageEntityItalic{Offset: 38, Length: 1}, entities[2])
	assert.Equal(t, &tg.MessageEntityCode{Offset: 40, Length: 2}, entities[3])
}

func TestParseHTMLEscapedContent(t *testing.T) {
	text, entities := ParseHTML("<b>&lt;b&gt;</b> &lt;script&gt;")

	assert.Equal(t, "<b> <script>", text)
	require.Len(t, entities, 1)
	assert.Equal(t, &tg.MessageEntityBold{Offset: 0, Length: 3}, entities[0])
}

func TestParseHTMLLink(t *testing.T) {
	text, entities := ParseHTML(`see <a href="https://example.com/?a=1&amp;b=2">here</a>`)

	assert.Equal(t, "see here", text)
	require.Len(t, entities, 1)
	assert.Equal(t, &tg.MessageEntityTextURL{Offset: 4, Length: 4, URL: "https://example.com/?a=1&b=2"}, entities[0])
}

func TestParseHTMLPlain(t *testing.T) {
	text, entities := ParseHTML("no markup here")
	assert.Equal(t, "no markup here", text)
	assert.Empty(t, entities)
}
