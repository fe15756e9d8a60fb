package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Facet is one dimension of an analysis filter: either every value (the
// wire sentinel "all") or a specific set of accepted values. The zero
// value selects everything, so an absent filter key means no restriction.
// Modeled as a variant rather than a magic string so a facet value that
// happens to be named "all" still filters correctly.
type Facet struct {
	values []string
	some   bool
}

// AllFacet returns the facet that accepts every value.
func AllFacet() Facet {
	return Facet{}
}

// FacetOf returns a facet restricted to the given values, deduplicated
// and sorted. No values means match nothing, which is valid (zero games).
func FacetOf(values ...string) Facet {
	seen := make(map[string]struct{}, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)
	return Facet{values: distinct, some: true}
}

// IsAll reports whether the facet places no restriction.
func (f Facet) IsAll() bool {
	return !f.some
}

// Matches tests a candidate value against the facet. Comparison is exact;
// facet values are small sets so a linear scan is fine.
func (f Facet) Matches(v string) bool {
	if !f.some {
		return true
	}
	for _, fv := range f.values {
		if fv == v {
			return true
		}
	}
	return false
}

// Values returns the restricted set, nil for the all facet.
func (f Facet) Values() []string {
	if !f.some {
		return nil
	}
	return f.values
}

func (f Facet) MarshalJSON() ([]byte, error) {
	if !f.some {
		return json.Marshal("all")
	}
	vals := f.values
	if vals == nil {
		vals = []string{}
	}
	return json.Marshal(vals)
}

// UnmarshalJSON accepts the sentinel "all", an array of values, or a bare
// string as a one-element set. A value literally named "all" must use the
// array form.
func (f *Facet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("facet: %w", err)
		}
		if strings.EqualFold(s, "all") {
			*f = AllFacet()
			return nil
		}
		*f = FacetOf(s)
		return nil
	}
	if string(trimmed) == "null" {
		*f = AllFacet()
		return nil
	}

	var vals []string
	if err := json.Unmarshal(trimmed, &vals); err != nil {
		return fmt.Errorf("facet: %w", err)
	}
	*f = FacetOf(vals...)
	return nil
}

// AnalysisFilter selects which participant pairs a detailed analysis
// covers. Within a facet membership is OR; across facets AND. The zero
// value applies no filtering at all.
type AnalysisFilter struct {
	Character         Facet `json:"character"`
	Opponent          Facet `json:"opponent"`
	OpponentCharacter Facet `json:"opponent_character"`
}

// IsAll reports whether the filter restricts nothing.
func (f AnalysisFilter) IsAll() bool {
	return f.Character.IsAll() && f.Opponent.IsAll() && f.OpponentCharacter.IsAll()
}
