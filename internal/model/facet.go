package model

// Facet identifies one of the known locations of the household log. The sheet
// stores the Thai display names, so those are the canonical values; anything
// unknown maps to FacetOther rather than failing.
type Facet string

const (
	// FacetCondo is the primary residence. It is the only location with
	// parking floors, so the floor histogram is scoped to it.
	FacetCondo Facet = "คอนโด"
	// FacetSchool is the morning school drop-off.
	FacetSchool Facet = "โรงเรียน"
	// FacetOffice is the workplace.
	FacetOffice Facet = "ออฟฟิศ"
	// FacetOther covers ad-hoc locations (malls, visits, ...).
	FacetOther Facet = "อื่นๆ"
)

// FacetOf maps a location string to its facet. Unknown locations are
// FacetOther, never an error.
func FacetOf(location string) Facet {
	switch Facet(location) {
	case FacetCondo, FacetSchool, FacetOffice:
		return Facet(location)
	default:
		return FacetOther
	}
}

// FacetStyle holds the display attributes of a facet for the dashboard
// legend.
type FacetStyle struct {
	Location string `json:"location"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

// facetStyles is the one place that assigns display attributes to facets.
// The table is total: every facet, FacetOther included, has an entry.
var facetStyles = map[Facet]FacetStyle{
	FacetCondo:  {Location: string(FacetCondo), Color: "#4F46E5", Icon: "home"},
	FacetSchool: {Location: string(FacetSchool), Color: "#F59E0B", Icon: "school"},
	FacetOffice: {Location: string(FacetOffice), Color: "#10B981", Icon: "briefcase"},
	FacetOther:  {Location: string(FacetOther), Color: "#6B7280", Icon: "map-pin"},
}

// StyleOf returns the display attributes for a location. The lookup goes
// through FacetOf, so it is total as well.
func StyleOf(location string) FacetStyle {
	return facetStyles[FacetOf(location)]
}

// Legend returns the full facet style table in a fixed order, for the
// /api/facets response.
func Legend() []FacetStyle {
	return []FacetStyle{
		facetStyles[FacetCondo],
		facetStyles[FacetSchool],
		facetStyles[FacetOffice],
		facetStyles[FacetOther],
	}
}
