package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"storefront-tagging/internal/domain"
)

type ProductWriter interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog exports and inserts/updates products.
// Variant rows name their parent by slug; a parent row must precede its
// variants unless the parent already exists in the catalog.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	Slug         string
	ParentSlug   string
	Name         string
	Permalink    string
	ImageURL     string
	Description  string
	PublishedAt  time.Time
	InStock      bool
	Price        float64
	SpecialPrice float64
}

// Run parses CSV rows and upserts products in file order, so parent rows
// are in place before the variants that reference them.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	seen := map[string]int64{}
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		if err := i.save(ctx, row, seen); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow, seen map[string]int64) error {
	var parentID int64
	if row.ParentSlug != "" {
		id, err := i.resolveParent(ctx, row.ParentSlug, seen)
		if err != nil {
			return fmt.Errorf("resolve parent %q for %q: %w", row.ParentSlug, row.Slug, err)
		}
		parentID = id
	}

	p := domain.Product{
		ParentID:      parentID,
		Slug:          row.Slug,
		Name:          row.Name,
		Permalink:     row.Permalink,
		ImageURL:      row.ImageURL,
		Description:   row.Description,
		PublishedAt:   row.PublishedAt,
		InStock:       row.InStock,
		HasVariations: false,
		Price:         row.Price,
		SpecialPrice:  row.SpecialPrice,
	}
	saved, err := i.productRepo.Upsert(ctx, p)
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Slug, err)
	}
	seen[saved.Slug] = saved.ID

	// The parent becomes a variation holder once a variant lands on it.
	if parentID != 0 {
		parent, err := i.productRepo.GetBySlug(ctx, row.ParentSlug)
		if err != nil {
			return fmt.Errorf("reload parent %q: %w", row.ParentSlug, err)
		}
		if !parent.HasVariations {
			parent.HasVariations = true
			if _, err := i.productRepo.Upsert(ctx, *parent); err != nil {
				return fmt.Errorf("flag parent %q: %w", row.ParentSlug, err)
			}
		}
	}
	return nil
}

func (i *CSVImporter) resolveParent(ctx context.Context, slug string, seen map[string]int64) (int64, error) {
	if id, ok := seen[slug]; ok {
		return id, nil
	}
	parent, err := i.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	seen[parent.Slug] = parent.ID
	return parent.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	slug := pick(record, index, "slug")
	if slug == "" {
		return nil, nil
	}
	name := pick(record, index, "name")
	if name == "" {
		return nil, fmt.Errorf("invalid product row (missing name) for slug %q", slug)
	}

	row := &csvRow{
		Slug:        slug,
		ParentSlug:  pick(record, index, "parent_slug"),
		Name:        name,
		Permalink:   pick(record, index, "permalink"),
		ImageURL:    pick(record, index, "image_url"),
		Description: pick(record, index, "description"),
	}

	if v := pick(record, index, "published_at"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid published_at for slug %q: %s", slug, v)
		}
		row.PublishedAt = ts
	}
	if v := pick(record, index, "in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid in_stock for slug %q: %s", slug, v)
		}
		row.InStock = b
	}

	var err error
	if row.Price, err = pickPrice(record, index, "price"); err != nil {
		return nil, fmt.Errorf("invalid price for slug %q: %w", slug, err)
	}
	if row.SpecialPrice, err = pickPrice(record, index, "special_price"); err != nil {
		return nil, fmt.Errorf("invalid special_price for slug %q: %w", slug, err)
	}
	if row.Price < 0 || row.SpecialPrice < 0 {
		return nil, fmt.Errorf("negative price for slug %q", slug)
	}
	return row, nil
}

func pickPrice(record []string, index map[string]int, key string) (float64, error) {
	v := pick(record, index, key)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
