package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// Innertube is the API the YouTube web client talks to. A transcript is
// obtained in two steps: /next returns the engagement panels of the watch
// page, one of which carries the params for /get_transcript.

const (
	DefaultInnertubeURL    = "https://www.youtube.com/youtubei/v1"
	DefaultMaxResponseSize = 4 * 1024 * 1024
	innertubeWebVersion    = "2.20250222.10.00"
	innertubeUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"
)

var ErrResponseTooLarge = errors.New("response too large")

var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

type InnertubeConfig struct {
	BaseURL  string
	Lang     string
	Location string
	Limiter  *rate.Limiter
	Client   *http.Client

	// MaxResponseSize caps a response body, zero means DefaultMaxResponseSize.
	MaxResponseSize int64
}

type Innertube struct {
	baseURL  string
	lang     string
	location string
	limiter  *rate.Limiter
	client   *http.Client
	maxSize  int64
	logger   *slog.Logger
}

func NewInnertube(cfg InnertubeConfig, logger *slog.Logger) *Innertube {
	it := &Innertube{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		lang:     cfg.Lang,
		location: cfg.Location,
		limiter:  cfg.Limiter,
		client:   cfg.Client,
		maxSize:  cfg.MaxResponseSize,
		logger:   logger,
	}
	if it.baseURL == "" {
		it.baseURL = DefaultInnertubeURL
	}
	if it.client == nil {
		it.client = http.DefaultClient
	}
	if it.maxSize <= 0 {
		it.maxSize = DefaultMaxResponseSize
	}

	return it
}

// StatusError is returned when Innertube answers with anything but 200.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("innertube %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type webClientCtx struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	VisitorData   string `json:"visitorData,omitempty"`
	Hl            string `json:"hl,omitempty"`
	Gl            string `json:"gl,omitempty"`
}

type getTranscriptResp struct {
	Actions []struct {
		UpdateEngagementPanelAction *struct {
			Content struct {
				TranscriptRenderer struct {
					Content struct {
						TranscriptSearchPanelRenderer struct {
							Body struct {
								TranscriptSegmentListRenderer *struct {
									InitialSegments []struct {
										TranscriptSegmentRenderer *struct {
											Snippet struct {
												Runs []struct {
													Text string `json:"text"`
												} `json:"runs"`
											} `json:"snippet"`
										} `json:"transcriptSegmentRenderer"`
									} `json:"initialSegments"`
								} `json:"transcriptSegmentListRenderer"`
							} `json:"body"`
						} `json:"transcriptSearchPanelRenderer"`
					} `json:"content"`
				} `json:"transcriptRenderer"`
			} `json:"content"`
		} `json:"updateEngagementPanelAction"`
	} `json:"actions"`
}

func (i *Innertube) FetchTranscript(ctx context.Context, videoID model.YoutubeVideoID) ([]model.Segment, error) {
	visitorData := generateVisitorData()
	client := webClientCtx{
		ClientName:    "WEB",
		ClientVersion: innertubeWebVersion,
		VisitorData:   visitorData,
		Hl:            i.lang,
		Gl:            i.location,
	}

	nextData, err := i.post(ctx, "next", map[string]any{
		"videoId": string(videoID),
		"context": map[string]any{"client": client},
	}, visitorData)
	if err != nil {
		return nil, err
	}

	params, ok := extractTranscriptParams(nextData)
	if !ok {
		i.logger.Debug("no transcript panel", slog.String("video", string(videoID)))
		return nil, ErrNoTranscript
	}

	transcriptData, err := i.post(ctx, "get_transcript", map[string]any{
		"params":  params,
		"context": map[string]any{"client": client},
	}, visitorData)
	if err != nil {
		return nil, err
	}

	var resp getTranscriptResp
	if err := json.Unmarshal(transcriptData, &resp); err != nil {
		return nil, fmt.Errorf("could not decode transcript: %w", err)
	}

	return parseSegments(resp), nil
}

func (i *Innertube) post(ctx context.Context, endpoint string, payload any, visitorData string) ([]byte, error) {
	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/"+endpoint+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", innertubeUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "1")
	req.Header.Set("X-Youtube-Client-Version", innertubeWebVersion)
	req.Header.Set("X-Goog-Visitor-Id", visitorData)
	req.Header.Set("Origin", "https://www.youtube.com")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("innertube %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, i.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("innertube %s: %w", endpoint, err)
	}
	if int64(len(data)) > i.maxSize {
		return nil, fmt.Errorf("innertube %s: %w", endpoint, ErrResponseTooLarge)
	}

	return data, nil
}

func extractTranscriptParams(data []byte) (string, bool) {
	m := getTranscriptRE.FindSubmatch(data)
	if len(m) < 2 {
		return "", false
	}
	// /next hands out the params url encoded, /get_transcript wants them raw
	decoded, err := url.QueryUnescape(string(m[1]))
	if err != nil {
		return string(m[1]), true
	}
	return decoded, true
}

// parseSegments keeps empty snippets as empty segments, so the caller sees the
// same count the panel holds. A panel without a segment list yields none.
func parseSegments(resp getTranscriptResp) []model.Segment {
	segments := []model.Segment{}
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		list := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer
		if list == nil {
			continue
		}
		for _, seg := range list.InitialSegments {
			if seg.TranscriptSegmentRenderer == nil {
				continue
			}
			var sb strings.Builder
			for _, run := range seg.TranscriptSegmentRenderer.Snippet.Runs {
				sb.WriteString(run.Text)
			}
			segments = append(segments, model.Segment{Text: sb.String()})
		}
	}

	return segments
}

func generateVisitorData() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := make([]byte, 11)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}
