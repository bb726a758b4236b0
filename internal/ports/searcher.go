package ports

import (
	"context"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// ProductSearcher finds shop listings for a keyword
// This is a PORT - adapters (Rakuten, Mock) implement it
type ProductSearcher interface {
	// Search returns a bounded list of products for keyword
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
}
