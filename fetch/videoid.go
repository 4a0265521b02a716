package fetch

import (
	"regexp"

	"ewintr.nl/tubesum/model"
)

// videoIDRE accepts the standard watch URL, the youtu.be short URL and the
// embed URL. The id runs until the next query separator or whitespace.
var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\s]+)`)

// ExtractVideoID returns the video id in rawURL, or false if rawURL has none
// of the accepted shapes.
func ExtractVideoID(rawURL string) (model.YoutubeVideoID, bool) {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return model.YoutubeVideoID(m[1]), true
}
