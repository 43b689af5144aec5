package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/grain/internal/client/models"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// FeedService wraps the photo API. Both calls are plain reads and never
// touch credentials.
type FeedService interface {
	ListPhotos(ctx context.Context, page, perPage int) ([]models.Photo, error)
	SearchPhotos(ctx context.Context, query string, page, perPage int) (*models.SearchResult, error)
}

type feedService struct {
	photos Requester
}

func NewFeedService(photos Requester) FeedService {
	return &feedService{photos: photos}
}

func pagingQuery(page, perPage int) url.Values {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
}

func (f *feedService) ListPhotos(ctx context.Context, page, perPage int) ([]models.Photo, error) {
	var photos []models.Photo
	if err := f.photos.Get(ctx, "/photos", pagingQuery(page, perPage), &photos); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	if photos == nil {
		photos = []models.Photo{}
	}
	return photos, nil
}

func (f *feedService) SearchPhotos(ctx context.Context, query string, page, perPage int) (*models.SearchResult, error) {
	q := pagingQuery(page, perPage)
	q.Set("query", query)

	var res models.SearchResult
	if err := f.photos.Get(ctx, "/search/photos", q, &res); err != nil {
		return nil, fmt.Errorf("search photos: %w", err)
	}
	if res.Results == nil {
		res.Results = []models.Photo{}
	}
	return &res, nil
}
