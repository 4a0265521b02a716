package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestYoutubeFetchMetadata(t *testing.T) {
	var gotID, gotPart string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		gotPart = r.URL.Query().Get("part")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
{"id":"ABC123","snippet":{"title":"A title","description":"desc","publishedAt":"2024-01-02T03:04:05Z"},"contentDetails":{"duration":"PT4M13S"}},
{"id":"NOSNIPPET"}
]}`))
	}))
	defer srv.Close()

	yt, err := fetch.NewYoutube(context.Background(), "key", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	mds, err := yt.FetchMetadata(context.Background(), []model.YoutubeVideoID{"ABC123", "NOSNIPPET"})
	require.NoError(t, err)
	assert.Equal(t, "ABC123,NOSNIPPET", gotID)
	assert.Equal(t, "snippet", gotPart)
	assert.Equal(t, map[model.YoutubeVideoID]fetch.Metadata{
		"ABC123": {Title: "A title"},
	}, mds)
}
