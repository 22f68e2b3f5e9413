package tagging

import (
	"context"
	"strings"

	"storefront-tagging/internal/domain"
)

// PathSeparator joins category names into a hierarchical path string.
const PathSeparator = "/"

// TermSource looks up category terms for ancestor resolution.
type TermSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Term, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Term, error)
}

// PathBuilder builds root-first category path strings.
type PathBuilder struct {
	terms TermSource
}

func NewPathBuilder(terms TermSource) *PathBuilder {
	return &PathBuilder{terms: terms}
}

// Build walks the term's ancestor chain and joins the names root-first,
// e.g. "/Clothing/Shirts/Tees". The ascent stops on a missing parent, a
// failed lookup, or a term whose parent is itself. A term with no
// resolvable ancestors yields its own name as a single-segment path.
// Invalid terms yield the empty string.
func (b *PathBuilder) Build(ctx context.Context, term *domain.Term) string {
	if term == nil || term.ID == 0 {
		return ""
	}

	var ancestors []string
	cur := term
	for cur.ParentID != 0 && cur.ParentID != cur.ID {
		parent, err := b.terms.GetByID(ctx, cur.ParentID)
		if err != nil {
			break
		}
		ancestors = append(ancestors, parent.Name)
		cur = parent
	}

	names := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		names = append(names, ancestors[i])
	}
	names = append(names, term.Name)

	return PathSeparator + strings.Join(names, PathSeparator)
}
