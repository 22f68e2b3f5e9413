package tagging

import "io"

// ElementArea names a page area carrying default recommendation slots.
type ElementArea string

const (
	AreaProductPageBottom  ElementArea = "product-page-bottom"
	AreaCategoryPageTop    ElementArea = "category-page-top"
	AreaCategoryPageBottom ElementArea = "category-page-bottom"
	AreaCartPageBottom     ElementArea = "cart-page-bottom"
	AreaSearchPageTop      ElementArea = "search-page-top"
	AreaSearchPageBottom   ElementArea = "search-page-bottom"
	AreaPageTop            ElementArea = "page-top"
	AreaPageBottom         ElementArea = "page-bottom"
)

// ElementFilter lets integrators override the element ids rendered for an
// area. Returning an empty slice suppresses the block.
type ElementFilter func(area ElementArea, ids []string) []string

var defaultElementIDs = map[ElementArea][]string{
	AreaProductPageBottom:  {"productpage-nosto-1", "productpage-nosto-2", "productpage-nosto-3"},
	AreaCategoryPageTop:    {"productcategory-nosto-1"},
	AreaCategoryPageBottom: {"productcategory-nosto-2"},
	AreaCartPageBottom:     {"cartpage-nosto-1", "cartpage-nosto-2", "cartpage-nosto-3"},
	AreaSearchPageTop:      {"searchpage-nosto-1"},
	AreaSearchPageBottom:   {"searchpage-nosto-2"},
	AreaPageTop:            {"pagetemplate-nosto-1"},
	AreaPageBottom:         {"pagetemplate-nosto-2"},
}

// Elements writes the placeholder element block for a page area. Unknown
// areas and filtered-out areas render nothing.
func (s *Service) Elements(w io.Writer, area ElementArea) error {
	ids := s.elementFilter(area, defaultElementIDs[area])
	if len(ids) == 0 {
		return nil
	}
	return s.renderer.Render(w, "nosto-elements", ElementsTag{ElementIDs: ids})
}
