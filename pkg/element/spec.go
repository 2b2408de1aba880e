package element

import (
	"github.com/brain-sim/antmaze/pkg/errors"
)

// Spec is one element declaration as it appears in a document.
// Value is optional; when nil the value is resolved by reserved-name
// defaulting and then smallest-unused auto-assignment.
type Spec struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token"`
	Value *int   `yaml:"value,omitempty"`
}

// ResolveDefaults shifts preferred reserved values past any blocked values.
// Used by the occupancy kinds, where cell and wall elements share one value
// space: a cell default of 0 must move if a wall element already took 0.
func ResolveDefaults(preferred map[string]int, blocked map[int]bool) map[string]int {
	resolved := make(map[string]int, len(preferred))
	used := make(map[int]bool, len(blocked))
	for v := range blocked {
		used[v] = true
	}
	for name, value := range preferred {
		for used[value] {
			value++
		}
		resolved[name] = value
		used[value] = true
	}
	return resolved
}

// FromSpecs builds a Set from document declarations.
//
// Value resolution, in declaration order:
//  1. Explicit values are taken as-is (duplicates rejected).
//  2. A declaration without a value whose lowercased name appears in
//     reserved takes the reserved default, unless an explicit value
//     already claimed it.
//  3. Anything still unresolved takes the smallest non-negative integer
//     not yet used, explicitly claimed, reserved, or blocked.
//
// blocked values (may be nil) are never auto-assigned; they belong to a
// sibling set sharing the same value space.
func FromSpecs(specs []Spec, reserved map[string]int, blocked map[int]bool) (*Set, error) {
	if len(specs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "elements list cannot be empty")
	}

	explicit := make(map[int]bool)
	for _, spec := range specs {
		if spec.Value == nil {
			continue
		}
		if explicit[*spec.Value] {
			return nil, errors.New(errors.ErrCodeDuplicateValue, "duplicate element value: %d", *spec.Value)
		}
		explicit[*spec.Value] = true
	}

	// Reserved defaults apply only when no explicit value collides;
	// on collision the name falls back to auto-assignment.
	reservedValues := make(map[string]int)
	claimed := make(map[int]bool)
	for _, spec := range specs {
		if spec.Value != nil {
			continue
		}
		lower := toLower(spec.Name)
		value, ok := reserved[lower]
		if !ok || explicit[value] || claimed[value] {
			continue
		}
		reservedValues[lower] = value
		claimed[value] = true
	}

	set := &Set{
		byName:  make(map[string]int, len(specs)),
		byToken: make(map[rune]int, len(specs)),
		byValue: make(map[int]int, len(specs)),
	}
	used := make(map[int]bool)
	for _, spec := range specs {
		token, err := parseToken(spec.Token)
		if err != nil {
			return nil, err
		}

		var value int
		switch {
		case spec.Value != nil:
			value = *spec.Value
		default:
			if v, ok := reservedValues[toLower(spec.Name)]; ok {
				value = v
				break
			}
			value = nextAvailable(used, explicit, claimed, blocked)
		}

		if used[value] {
			return nil, errors.New(errors.ErrCodeDuplicateValue, "duplicate element value: %d", value)
		}
		used[value] = true

		if err := set.Add(Element{Name: spec.Name, Token: token, Value: value}); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Specs exports the set in declaration order for serialization.
func (s *Set) Specs() []Spec {
	out := make([]Spec, len(s.elements))
	for i, e := range s.elements {
		v := e.Value
		out[i] = Spec{Name: e.Name, Token: string(e.Token), Value: &v}
	}
	return out
}

func parseToken(token string) (rune, error) {
	runes := []rune(token)
	if len(runes) != 1 {
		return 0, errors.New(errors.ErrCodeInvalidToken, "element token must be a single character, got %q", token)
	}
	return runes[0], nil
}

func nextAvailable(sets ...map[int]bool) int {
	for candidate := 0; ; candidate++ {
		taken := false
		for _, set := range sets {
			if set[candidate] {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
	}
}
