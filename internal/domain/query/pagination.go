// Package query holds cross-domain query helpers shared by repositories.
package query

// Pagination captures limit/offset style pagination with optional
// cursor (After) and sort direction.
type Pagination struct {
	Limit  *int
	Offset *int
	Order  string
	After  *uint
}

// EffectiveLimit returns the requested limit bounded to [1, max],
// falling back to def when unset.
func (p *Pagination) EffectiveLimit(def, max int) int {
	if p == nil || p.Limit == nil || *p.Limit <= 0 {
		return def
	}
	if *p.Limit > max {
		return max
	}
	return *p.Limit
}
