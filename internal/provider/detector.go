package provider

import "regexp"

var (
	urlRegex = regexp.MustCompile(
		`https?://(?:www\.)?(?:youtube\.com|youtu\.be|(?:vt\.)?tiktok\.com|vm\.tiktok\.com|instagram\.com|twitter\.com|x\.com|facebook\.com|fb\.watch|vimeo\.com|dailymotion\.com)/\S+` +
			`|https?://(?:www\.)?reddit\.com/\S+` +
			`|https?://(?:clips\.)?twitch\.tv/\S+`,
	)
)

// ExtractURL returns the first supported video link in text, or "".
func ExtractURL(text string) string {
	return urlRegex.FindString(text)
}
