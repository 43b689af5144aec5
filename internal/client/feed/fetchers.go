package feed

import (
	"context"

	"github.com/dmitrijs2005/grain/internal/client/models"
	"github.com/dmitrijs2005/grain/internal/client/services"
)

// ListFetcher pages through the editorial photo listing.
func ListFetcher(svc services.FeedService, perPage int) Fetcher {
	return func(ctx context.Context, page int) ([]models.Photo, error) {
		return svc.ListPhotos(ctx, page, perPage)
	}
}

// SearchFetcher pages through the results of query.
func SearchFetcher(svc services.FeedService, query string, perPage int) Fetcher {
	return func(ctx context.Context, page int) ([]models.Photo, error) {
		res, err := svc.SearchPhotos(ctx, query, page, perPage)
		if err != nil {
			return nil, err
		}
		return res.Results, nil
	}
}
