package fetch

import (
	"context"

	"ewintr.nl/tubesum/model"
)

type Metadata struct {
	Title string
}

// MetadataFetcher looks up several videos in one call. Unknown ids are left
// out of the result.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, ids []model.YoutubeVideoID) (map[model.YoutubeVideoID]Metadata, error)
}
