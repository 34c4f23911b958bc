package factors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/ghgcalc/internal/units"
)

// ActivityQuery is the registry's view of an activity during resolution.
// The engine builds one per activity; the registry never sees engine types.
type ActivityQuery struct {
	Scope int

	// Unit is the activity's quantity unit. A candidate factor must be
	// expressed in a unit the activity unit converts into.
	Unit string

	// FuelType selects Scope 1 combustion factors.
	FuelType string

	// GridSubregion and Country locate Scope 2 grid factors. Subregion is
	// preferred; country is the fallback.
	GridSubregion string
	Country       string

	// Scope3Category is the numbered GHG Protocol category (1–15).
	Scope3Category int

	// MethodHint optionally narrows Scope 3 resolution, e.g. "spend_based"
	// or "average_data".
	MethodHint string
}

// Resolution is a resolved factor plus any notes the caller must surface
// (fallback substitutions are explicit, never silent).
type Resolution struct {
	Factor *Factor
	Notes  []string
}

// ResolveForActivity finds the applicable factor for an activity, or nil
// when no factor fits. A nil return is not an error: the caller decides
// whether an override saves the activity or the calculation fails.
func (r *Registry) ResolveForActivity(q ActivityQuery) *Resolution {
	switch q.Scope {
	case 1:
		return r.resolveScope1(q)
	case 2:
		return r.resolveScope2(q)
	case 3:
		return r.resolveScope3(q)
	default:
		return nil
	}
}

// resolveScope1 matches combustion factors by fuel type and unit
// compatibility. A factor expressed in the activity's own unit beats any
// merely convertible one; id order breaks the remaining ties so resolution
// is deterministic when a fuel is cataloged in several units.
func (r *Registry) resolveScope1(q ActivityQuery) *Resolution {
	if q.FuelType == "" {
		return nil
	}
	fuel := strings.ToLower(q.FuelType)

	var candidates []*Factor
	for i := range r.factors {
		f := &r.factors[i]
		if !f.HasCategory("scope1") || !f.HasCategory(fuel) {
			continue
		}
		if !units.Compatible(q.Unit, f.Unit) {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		return nil
	}
	return &Resolution{Factor: pickPreferredUnit(candidates, q.Unit)}
}

// pickPreferredUnit narrows candidates to those expressed in the activity's
// unit when any are, then returns the lowest id.
func pickPreferredUnit(candidates []*Factor, activityUnit string) *Factor {
	if want, err := units.Normalize(activityUnit); err == nil {
		var exact []*Factor
		for _, f := range candidates {
			if got, err := units.Normalize(f.Unit); err == nil && got == want {
				exact = append(exact, f)
			}
		}
		if len(exact) > 0 {
			candidates = exact
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates[0]
}

// resolveScope2 prefers the eGRID subregion factor, falls back to the
// country-level grid factor, and finally to the world-average factor.
// Every fallback step is recorded as a note.
func (r *Registry) resolveScope2(q ActivityQuery) *Resolution {
	var notes []string

	if sub := strings.ToLower(strings.TrimSpace(q.GridSubregion)); sub != "" {
		if f, ok := r.byID["egrid_"+sub]; ok && units.Compatible(q.Unit, f.Unit) {
			return &Resolution{Factor: f, Notes: notes}
		}
		notes = append(notes, fmt.Sprintf("grid subregion %q has no factor; falling back to country-level factor", q.GridSubregion))
	}

	if country := strings.ToLower(strings.TrimSpace(q.Country)); country != "" {
		if f, ok := r.byID["grid_"+country]; ok && units.Compatible(q.Unit, f.Unit) {
			return &Resolution{Factor: f, Notes: notes}
		}
		notes = append(notes, fmt.Sprintf("country %q has no grid factor; falling back to world-average factor", q.Country))
	} else if q.GridSubregion == "" {
		notes = append(notes, "using world-average grid factor because region unspecified")
	}

	if f, ok := r.byID["grid_world"]; ok && units.Compatible(q.Unit, f.Unit) {
		return &Resolution{Factor: f, Notes: notes}
	}
	return nil
}

// resolveScope3 matches by numbered category tag, narrowed by the method
// hint when one is given and any candidate carries it.
func (r *Registry) resolveScope3(q ActivityQuery) *Resolution {
	if q.Scope3Category < 1 || q.Scope3Category > 15 {
		return nil
	}
	tag := fmt.Sprintf("scope3_cat%d", q.Scope3Category)

	var candidates []*Factor
	for i := range r.factors {
		f := &r.factors[i]
		if !f.HasCategory(tag) {
			continue
		}
		if !units.Compatible(q.Unit, f.Unit) {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		return nil
	}

	if hint := strings.ToLower(strings.TrimSpace(q.MethodHint)); hint != "" {
		var hinted []*Factor
		for _, f := range candidates {
			if f.HasCategory(hint) {
				hinted = append(hinted, f)
			}
		}
		if len(hinted) > 0 {
			candidates = hinted
		}
	}

	return &Resolution{Factor: pickPreferredUnit(candidates, q.Unit)}
}
