package repository

// Page describes optional limit/offset pagination. A zero Page means the
// caller wants the full result set.
type Page struct {
	Number int
	Limit  int
}

// Enabled reports whether pagination was requested.
func (p Page) Enabled() bool {
	return p.Number > 0
}

// Offset converts the 1-based page number to a row offset.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// NewPage normalizes raw query values into a Page.
func NewPage(number, limit int) Page {
	if number <= 0 {
		return Page{}
	}
	if limit <= 0 {
		limit = 20
	}
	return Page{Number: number, Limit: limit}
}
