// Package element implements the symbol catalogs used by maze layouts.
//
// A maze grid stores integer values; each value is declared by an Element
// carrying a unique name, a single-character display token, and the integer
// value itself. Elements are grouped into Sets (one per element kind, cell
// or wall), which provide O(1) lookup by name, token, and value and preserve
// declaration order for serialization.
//
// Sets are built either directly from resolved elements or from document
// declarations via FromSpecs, which applies reserved-name defaulting
// ("open" and "wall" prefer values 0 and 1) before auto-assigning the
// smallest unused non-negative value in declaration order.
package element

import (
	"unicode"

	"github.com/brain-sim/antmaze/pkg/errors"
)

// Element is a named, tokenized, integer-valued symbol.
type Element struct {
	Name  string // unique within a set
	Token rune   // single non-whitespace character, never '|'
	Value int    // unique within a set
}

// Validate checks the element's own field constraints.
// Uniqueness against other elements is enforced by Set.Add.
func (e Element) Validate() error {
	if e.Name == "" {
		return errors.New(errors.ErrCodeInvalidName, "element name must be a non-empty string")
	}
	if e.Token == 0 || unicode.IsSpace(e.Token) {
		return errors.New(errors.ErrCodeInvalidToken, "element token cannot be whitespace")
	}
	if e.Token == '|' {
		return errors.New(errors.ErrCodeInvalidToken, "element token cannot be '|'")
	}
	return nil
}

// Set is an ordered collection of one element kind with indexed lookup.
// The zero value is not usable; use NewSet.
type Set struct {
	elements []Element
	byName   map[string]int
	byToken  map[rune]int
	byValue  map[int]int
}

// NewSet creates a set from the given elements, in order.
// Returns an error on invalid elements or duplicate name/token/value.
func NewSet(elements ...Element) (*Set, error) {
	s := &Set{
		byName:  make(map[string]int, len(elements)),
		byToken: make(map[rune]int, len(elements)),
		byValue: make(map[int]int, len(elements)),
	}
	for _, e := range elements {
		if err := s.Add(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends an element, rejecting duplicates of name, token, or value.
func (s *Set) Add(e Element) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if _, ok := s.byName[e.Name]; ok {
		return errors.New(errors.ErrCodeDuplicateName, "duplicate element name: %s", e.Name)
	}
	if _, ok := s.byToken[e.Token]; ok {
		return errors.New(errors.ErrCodeDuplicateToken, "duplicate element token: %c", e.Token)
	}
	if _, ok := s.byValue[e.Value]; ok {
		return errors.New(errors.ErrCodeDuplicateValue, "duplicate element value: %d", e.Value)
	}
	i := len(s.elements)
	s.elements = append(s.elements, e)
	s.byName[e.Name] = i
	s.byToken[e.Token] = i
	s.byValue[e.Value] = i
	return nil
}

// ByName returns the element with the given name.
func (s *Set) ByName(name string) (Element, error) {
	if i, ok := s.byName[name]; ok {
		return s.elements[i], nil
	}
	return Element{}, errors.New(errors.ErrCodeUnknownName, "unknown element name: %s", name)
}

// ByToken returns the element with the given token.
func (s *Set) ByToken(token rune) (Element, error) {
	if i, ok := s.byToken[token]; ok {
		return s.elements[i], nil
	}
	return Element{}, errors.New(errors.ErrCodeUnknownToken, "unknown element token: %c", token)
}

// ByValue returns the element with the given value.
func (s *Set) ByValue(value int) (Element, error) {
	if i, ok := s.byValue[value]; ok {
		return s.elements[i], nil
	}
	return Element{}, errors.New(errors.ErrCodeUnknownValue, "unknown element value: %d", value)
}

// ValueOf returns the value of the element with the given name,
// matched case-insensitively. Used for the reserved connector elements
// whose declarations may vary in case.
func (s *Set) ValueOf(name string) (int, error) {
	lower := toLower(name)
	for _, e := range s.elements {
		if toLower(e.Name) == lower {
			return e.Value, nil
		}
	}
	return 0, errors.New(errors.ErrCodeMissingElement, "missing required element: %s", name)
}

// Contains reports whether an element with the given name exists,
// matched case-insensitively.
func (s *Set) Contains(name string) bool {
	_, err := s.ValueOf(name)
	return err == nil
}

// Elements returns the elements in declaration order.
// The returned slice is a copy and safe to modify.
func (s *Set) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Len returns the number of elements in the set.
func (s *Set) Len() int { return len(s.elements) }

// Values returns the set of integer values in use.
func (s *Set) Values() map[int]bool {
	out := make(map[int]bool, len(s.elements))
	for _, e := range s.elements {
		out[e.Value] = true
	}
	return out
}

// Clone returns an independent deep copy of the set.
func (s *Set) Clone() *Set {
	c, err := NewSet(s.elements...)
	if err != nil {
		// Elements in an existing set already passed validation.
		panic("element: clone of valid set failed: " + err.Error())
	}
	return c
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}
