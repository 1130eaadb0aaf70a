package loot

import "math"

// State is threaded through one resolution pass. Every method returns a new
// State; slices are copied so sibling branches never share backing arrays.
type State struct {
	Breadcrumb       []string
	Modifiers        []string
	PendingMaterials []string
	RunningValue     float64
	ActiveMaxValue   *float64
	TerminalTable    string
	Depth            int
}

func (s State) clone() State {
	next := s
	next.Breadcrumb = append([]string(nil), s.Breadcrumb...)
	next.Modifiers = append([]string(nil), s.Modifiers...)
	next.PendingMaterials = append([]string(nil), s.PendingMaterials...)
	if s.ActiveMaxValue != nil {
		next.ActiveMaxValue = Float(*s.ActiveMaxValue)
	}
	return next
}

// Visit appends table to the breadcrumb unless it is already the last entry
func (s State) Visit(table string) State {
	next := s.clone()
	if n := len(next.Breadcrumb); n > 0 && next.Breadcrumb[n-1] == table {
		return next
	}
	next.Breadcrumb = append(next.Breadcrumb, table)
	return next
}

// WithModifiers merges tags into the modifier list. The special materials
// tag goes to the pending list instead.
func (s State) WithModifiers(tags Tags) State {
	next := s.clone()
	for _, tag := range tags {
		if tag == SpecialMaterialsTag {
			next.PendingMaterials = append(next.PendingMaterials, tag)
			continue
		}
		next.Modifiers = append(next.Modifiers, tag)
	}
	return next
}

// AddValue adds v to the running total
func (s State) AddValue(v float64) State {
	next := s.clone()
	next.RunningValue += v
	return next
}

// WithCeiling sets the active max value unless a tighter one is already set
func (s State) WithCeiling(maxValue float64) State {
	next := s.clone()
	if next.ActiveMaxValue == nil || maxValue < *next.ActiveMaxValue {
		next.ActiveMaxValue = Float(maxValue)
	}
	return next
}

// WithTerminal records the table whose entries will produce the leaf
func (s State) WithTerminal(table string) State {
	next := s.clone()
	next.TerminalTable = table
	return next
}

// Descend counts one more table hop
func (s State) Descend() State {
	next := s.clone()
	next.Depth++
	return next
}

// ForMember returns the state a set member starts from: same path, zero value
func (s State) ForMember() State {
	next := s.clone()
	next.RunningValue = 0
	return next
}

// OverCeiling reports whether the running value broke the active max value
func (s State) OverCeiling() bool {
	return s.ActiveMaxValue != nil && s.RunningValue > *s.ActiveMaxValue
}

// WithMaterial records an applied special material as a modifier
func (s State) WithMaterial(name string) State {
	next := s.clone()
	next.Modifiers = append(next.Modifiers, name)
	return next
}

// Scale multiplies the running value and floors the result
func (s State) Scale(multiplier float64) State {
	next := s.clone()
	next.RunningValue = math.Floor(next.RunningValue * multiplier)
	return next
}

// ClearPending drops the pending material tags once they are applied
func (s State) ClearPending() State {
	next := s.clone()
	next.PendingMaterials = nil
	return next
}
