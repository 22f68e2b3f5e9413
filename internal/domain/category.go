package domain

// Term is a product category term. ParentID == 0 marks a root term.
type Term struct {
	ID       int64
	Slug     string
	Name     string
	ParentID int64
}
