package models

// Page bounds a list query. Limit is clamped by repositories.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) Clamp(def, max int) Page {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
