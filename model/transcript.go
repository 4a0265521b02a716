package model

import "strings"

// Segment is a single caption snippet as returned by the transcript source.
type Segment struct {
	Text string
}

type Transcript struct {
	VideoID YoutubeVideoID
	Title   string
	Text    string
}

// JoinSegments concatenates segment texts in order with single spaces.
// Empty segments contribute nothing.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Text)
	}

	return sb.String()
}
