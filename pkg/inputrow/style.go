package inputrow

// Style selects the CSS classes of a rendered term pair.
type Style int

const (
	// StyleEllipsis marks generic field rows whose labels may be clipped.
	StyleEllipsis Style = iota
	// StyleLabel marks the grouped sub-table header.
	StyleLabel
	// StyleDetail marks zipped grouped rows.
	StyleDetail
)

// Classes returns the dt and dd class names for the style.
func (s Style) Classes() (dt, dd string) {
	switch s {
	case StyleLabel:
		return "custom-label", "custom-label"
	case StyleDetail:
		return "custom-detail-field", "custom-detail-field"
	default:
		return "custom-term-ellipsis", ""
	}
}

func (s Style) String() string {
	switch s {
	case StyleLabel:
		return "label"
	case StyleDetail:
		return "detail"
	default:
		return "ellipsis"
	}
}

// MarshalText lets term pairs serialize their style by name.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TermPair is one label/value entry of the definition list.
type TermPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Style Style  `json:"style"`
}
