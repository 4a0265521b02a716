package fetch_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const nextWithPanel = `{"engagementPanels":[{"engagementPanelSectionListRenderer":{"content":{"continuationItemRenderer":{"continuationEndpoint":{"getTranscriptEndpoint":{"params":"CgtBQkMxMjM%3D"}}}}}}]}`

const nextWithoutPanel = `{"engagementPanels":[{"engagementPanelSectionListRenderer":{"panelIdentifier":"comment-item-section"}}]}`

const transcriptBody = `{"actions":[{"updateEngagementPanelAction":{"content":{"transcriptRenderer":{"content":{"transcriptSearchPanelRenderer":{"body":{"transcriptSegmentListRenderer":{"initialSegments":[
{"transcriptSegmentRenderer":{"snippet":{"runs":[{"text":"Hello"}]}}},
{"transcriptSegmentRenderer":{"snippet":{"runs":[]}}},
{"transcriptSectionHeaderRenderer":{}},
{"transcriptSegmentRenderer":{"snippet":{"runs":[{"text":"wor"},{"text":"ld"}]}}}
]}}}}}}}}]}`

const emptyTranscriptBody = `{"actions":[{"updateEngagementPanelAction":{"content":{"transcriptRenderer":{"content":{"transcriptSearchPanelRenderer":{"body":{"transcriptSegmentListRenderer":{"initialSegments":[]}}}}}}}}]}`

type innertubeStub struct {
	next          string
	transcript    string
	status        int
	gotParams     string
	gotVideoID    string
	transcriptHit bool
}

func (s *innertubeStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)

	if s.status != 0 {
		w.WriteHeader(s.status)
		w.Write([]byte(`{"error":"nope"}`))
		return
	}

	switch r.URL.Path {
	case "/next":
		s.gotVideoID, _ = payload["videoId"].(string)
		w.Write([]byte(s.next))
	case "/get_transcript":
		s.transcriptHit = true
		s.gotParams, _ = payload["params"].(string)
		w.Write([]byte(s.transcript))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestInnertubeFetchTranscript(t *testing.T) {
	for _, tc := range []struct {
		name        string
		stub        *innertubeStub
		expSegments []model.Segment
		expErr      error
		expHit      bool
	}{
		{
			name: "segments",
			stub: &innertubeStub{next: nextWithPanel, transcript: transcriptBody},
			expSegments: []model.Segment{
				{Text: "Hello"},
				{Text: ""},
				{Text: "world"},
			},
			expHit: true,
		},
		{
			name:        "empty list",
			stub:        &innertubeStub{next: nextWithPanel, transcript: emptyTranscriptBody},
			expSegments: []model.Segment{},
			expHit:      true,
		},
		{
			name:   "no panel",
			stub:   &innertubeStub{next: nextWithoutPanel},
			expErr: fetch.ErrNoTranscript,
		},
		{
			name:        "no segment list",
			stub:        &innertubeStub{next: nextWithPanel, transcript: `{"actions":[]}`},
			expSegments: []model.Segment{},
			expHit:      true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.stub)
			defer srv.Close()

			it := fetch.NewInnertube(fetch.InnertubeConfig{
				BaseURL:  srv.URL,
				Lang:     "en",
				Location: "US",
			}, discardLogger())

			segments, err := it.FetchTranscript(context.Background(), "ABC123")
			assert.Equal(t, "ABC123", tc.stub.gotVideoID)
			assert.Equal(t, tc.expHit, tc.stub.transcriptHit)
			if tc.expErr != nil {
				assert.ErrorIs(t, err, tc.expErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expSegments, segments)
			assert.Equal(t, "CgtBQkMxMjM=", tc.stub.gotParams)
		})
	}
}

func TestInnertubeStatusError(t *testing.T) {
	srv := httptest.NewServer(&innertubeStub{status: http.StatusTooManyRequests})
	defer srv.Close()

	it := fetch.NewInnertube(fetch.InnertubeConfig{BaseURL: srv.URL}, discardLogger())
	_, err := it.FetchTranscript(context.Background(), "ABC123")

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "next", statusErr.Endpoint)
	assert.NotErrorIs(t, err, fetch.ErrNoTranscript)
}

func TestInnertubeResponseTooLarge(t *testing.T) {
	padded := `{"padding":"` + strings.Repeat("x", 512) + `",` + nextWithPanel[1:]
	stub := &innertubeStub{next: padded, transcript: transcriptBody}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	it := fetch.NewInnertube(fetch.InnertubeConfig{
		BaseURL:         srv.URL,
		MaxResponseSize: 256,
	}, discardLogger())
	_, err := it.FetchTranscript(context.Background(), "ABC123")

	assert.ErrorIs(t, err, fetch.ErrResponseTooLarge)
	assert.NotErrorIs(t, err, fetch.ErrNoTranscript)
	assert.False(t, stub.transcriptHit)
}

func TestInnertubeLimiter(t *testing.T) {
	stub := &innertubeStub{next: nextWithPanel, transcript: transcriptBody}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	// one fetch costs two tokens, the next token comes after an hour
	it := fetch.NewInnertube(fetch.InnertubeConfig{
		BaseURL: srv.URL,
		Limiter: rate.NewLimiter(rate.Every(time.Hour), 2),
	}, discardLogger())

	segments, err := it.FetchTranscript(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Len(t, segments, 3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	start := time.Now()
	_, err = it.FetchTranscript(ctx, "ABC123")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
