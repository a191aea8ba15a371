package pagination

// ControlKind distinguishes the buttons of a page control bar.
type ControlKind string

const (
	ControlPrev ControlKind = "prev"
	ControlPage ControlKind = "page"
	ControlNext ControlKind = "next"
)

// Control is one button of the page control bar.
type Control struct {
	Kind   ControlKind `json:"kind"`
	Page   int         `json:"page"`
	Active bool        `json:"active,omitempty"`
}

// Controls lists the buttons for p: prev when not on the first page, one
// button per page with the current one active, and next when not on the last
// page. A single page needs no controls.
func Controls(p Page) []Control {
	if p.TotalPages <= 1 {
		return nil
	}
	out := make([]Control, 0, p.TotalPages+2)
	if p.HasPrev() {
		out = append(out, Control{Kind: ControlPrev, Page: p.Number - 1})
	}
	for i := 1; i <= p.TotalPages; i++ {
		out = append(out, Control{Kind: ControlPage, Page: i, Active: i == p.Number})
	}
	if p.HasNext() {
		out = append(out, Control{Kind: ControlNext, Page: p.Number + 1})
	}
	return out
}
