// internal/database/seeds/seeds.go
package seeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shopfront/storefront-api/internal/models"
	"github.com/shopfront/storefront-api/internal/repository"
)

// Entry describes one catalog product. InStock defaults to true when omitted.
type Entry struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
	InStock     *bool           `json:"in_stock,omitempty"`
}

func strPtr(s string) *string { return &s }

// DefaultCatalog is the built-in demo catalog.
var DefaultCatalog = []Entry{
	{
		Name:        "Minimalist Tee",
		Slug:        "minimalist-tee",
		Price:       decimal.RequireFromString("19.99"),
		ImageURL:    strPtr("https://picsum.photos/seed/tee/400/400"),
		Description: strPtr("Soft cotton t-shirt in a clean minimalist cut."),
		Category:    strPtr("Apparel"),
	},
	{
		Name:        "Focus Mug",
		Slug:        "focus-mug",
		Price:       decimal.RequireFromString("12.50"),
		ImageURL:    strPtr("https://picsum.photos/seed/mug/400/400"),
		Description: strPtr("Ceramic mug for deep work sessions."),
		Category:    strPtr("Accessories"),
	},
}

// Result counts what a Run changed.
type Result struct {
	Created int
	Updated int
}

// LoadFile reads a JSON array of entries.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if err := Validate(entries); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return entries, nil
}

// Validate rejects entries without a name or slug, negative prices and
// repeated slugs.
func Validate(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Name == "" || e.Slug == "" {
			return fmt.Errorf("entry %d: name and slug are required", i)
		}
		if e.Price.IsNegative() {
			return fmt.Errorf("entry %d (%s): price must not be negative", i, e.Slug)
		}
		if seen[e.Slug] {
			return fmt.Errorf("entry %d: duplicate slug %q", i, e.Slug)
		}
		seen[e.Slug] = true
	}
	return nil
}

// Run upserts entries by slug in one transaction: existing products are
// updated in place, missing ones inserted. Running it twice with the same
// entries leaves the catalog unchanged.
func Run(ctx context.Context, store repository.Store, entries []Entry) (Result, error) {
	var result Result
	if err := Validate(entries); err != nil {
		return result, err
	}

	err := store.WithTransaction(ctx, func(tx repository.Store) error {
		result = Result{}
		for _, e := range entries {
			existing, err := tx.Products().GetBySlug(ctx, e.Slug)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				product := e.product()
				if err := tx.Products().Create(ctx, &product); err != nil {
					return fmt.Errorf("failed to create product %s: %w", e.Slug, err)
				}
				result.Created++
			case err != nil:
				return fmt.Errorf("failed to look up product %s: %w", e.Slug, err)
			default:
				product := e.product()
				product.ID = existing.ID
				if err := tx.Products().Update(ctx, &product); err != nil {
					return fmt.Errorf("failed to update product %s: %w", e.Slug, err)
				}
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logrus.WithFields(logrus.Fields{
		"created": result.Created,
		"updated": result.Updated,
	}).Info("Catalog seeded")
	return result, nil
}

func (e Entry) product() models.Product {
	inStock := true
	if e.InStock != nil {
		inStock = *e.InStock
	}
	return models.Product{
		Name:        e.Name,
		Slug:        e.Slug,
		Price:       models.RoundMoney(e.Price),
		ImageURL:    e.ImageURL,
		Description: e.Description,
		Category:    e.Category,
		InStock:     inStock,
	}
}
