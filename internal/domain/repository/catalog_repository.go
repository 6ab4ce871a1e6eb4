package repository

import (
	"context"

	"github.com/archive-alert/internal/domain"
)

// CatalogRepository определяет методы для работы с каталогом снимков
type CatalogRepository interface {
	// Authenticate obtains an access token from the credentials file
	Authenticate(ctx context.Context) error

	// Search runs an archive search, results sorted by acquisition date
	// and capped at params.Limit
	Search(ctx context.Context, params *domain.SearchParameters) (*domain.SearchResult, error)
}
