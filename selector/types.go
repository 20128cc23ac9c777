// Package selector builds CSS selector strings from typed fragments.
//
// A Simple selector accumulates fragments (element, id, class, attribute,
// pseudo-class, pseudo-element) and enforces CSS ordering and cardinality
// rules on every append. Combine joins already built selectors with a
// combinator into a Combined selector. All values are immutable - every
// append returns a fresh selector and never touches its receiver, so any
// intermediate selector can be reused or shared freely.
package selector

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a selector fragment. Declaration order is the
// required CSS order within one compound selector: element, id, class,
// attribute, pseudo-class, pseudo-element.
type Kind int

const (
	Element Kind = iota
	ID
	Class
	Attribute
	PseudoClass
	PseudoElement
)

// String returns the human readable fragment kind name.
func (k Kind) String() string {
	switch k {
	case Element:
		return "element"
	case ID:
		return "id"
	case Class:
		return "class"
	case Attribute:
		return "attribute"
	case PseudoClass:
		return "pseudo-class"
	case PseudoElement:
		return "pseudo-element"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Unique reports whether fragments of this kind may occur at most once in a
// compound selector.
func (k Kind) Unique() bool {
	return k == Element || k == ID || k == PseudoElement
}

// Fragment is a single selector atom. Raw values are rendered verbatim - no
// syntax validation is performed on them.
type Fragment struct {
	Kind  Kind
	Value string
}

// Text returns the CSS text of the fragment.
func (f Fragment) Text() string {
	switch f.Kind {
	case ID:
		return "#" + f.Value
	case Class:
		return "." + f.Value
	case Attribute:
		return "[" + f.Value + "]"
	case PseudoClass:
		return ":" + f.Value
	case PseudoElement:
		return "::" + f.Value
	default:
		return f.Value
	}
}

// OrderError is returned when a fragment is appended after a fragment of a
// higher-ranked kind.
type OrderError struct {
	Appended Kind // kind being appended
	Last     Kind // kind of the most recently appended fragment
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s fragment cannot follow %s fragment: required order is element, id, class, attribute, pseudo-class, pseudo-element", e.Appended, e.Last)
}

// DuplicateError is returned when a second element, id or pseudo-element
// fragment is appended to the same compound selector.
type DuplicateError struct {
	Kind Kind
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s fragment already present: element, id and pseudo-element may occur at most once", e.Kind)
}

// Selector is any renderable selector - either a compound Simple selector or
// a Combined one.
type Selector interface {
	Stringify() string
}

// Simple is a compound selector under construction. The zero value is an
// empty selector ready for use. Simple is a value type: append methods return
// a new Simple sharing no writable state with the receiver.
type Simple struct {
	fragments []Fragment
}

// New returns an empty compound selector.
func New() Simple {
	return Simple{}
}

// Element appends an element fragment.
func (s Simple) Element(value string) (Simple, error) {
	return s.with(Fragment{Kind: Element, Value: value})
}

// ID appends an id fragment.
func (s Simple) ID(value string) (Simple, error) {
	return s.with(Fragment{Kind: ID, Value: value})
}

// Class appends a class fragment. Classes may repeat.
func (s Simple) Class(value string) (Simple, error) {
	return s.with(Fragment{Kind: Class, Value: value})
}

// Attr appends an attribute fragment. The value is the full attribute
// expression without brackets, e.g. `href$=".png"`. Attributes may repeat.
func (s Simple) Attr(value string) (Simple, error) {
	return s.with(Fragment{Kind: Attribute, Value: value})
}

// PseudoClass appends a pseudo-class fragment. Pseudo-classes may repeat.
func (s Simple) PseudoClass(value string) (Simple, error) {
	return s.with(Fragment{Kind: PseudoClass, Value: value})
}

// PseudoElement appends a pseudo-element fragment.
func (s Simple) PseudoElement(value string) (Simple, error) {
	return s.with(Fragment{Kind: PseudoElement, Value: value})
}

// with validates the fragment against ordering and cardinality rules and
// returns a new selector with the fragment appended.
func (s Simple) with(f Fragment) (Simple, error) {
	if n := len(s.fragments); n > 0 {
		if last := s.fragments[n-1].Kind; last > f.Kind {
			return Simple{}, &OrderError{Appended: f.Kind, Last: last}
		}
	}
	if f.Kind.Unique() {
		for _, have := range s.fragments {
			if have.Kind == f.Kind {
				return Simple{}, &DuplicateError{Kind: f.Kind}
			}
		}
	}
	// full copy so chains branching from the same selector never share a
	// backing array
	fragments := make([]Fragment, len(s.fragments), len(s.fragments)+1)
	copy(fragments, s.fragments)
	return Simple{fragments: append(fragments, f)}, nil
}

// Fragments returns a copy of the accumulated fragments in append order.
func (s Simple) Fragments() []Fragment {
	out := make([]Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Len returns the number of accumulated fragments.
func (s Simple) Len() int {
	return len(s.fragments)
}

// Stringify renders the compound selector by concatenating fragment texts in
// append order.
func (s Simple) Stringify() string {
	var sb strings.Builder
	for _, f := range s.fragments {
		sb.WriteString(f.Text())
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (s Simple) String() string {
	return s.Stringify()
}

// Combinator is the token joining two selectors in a Combined selector.
type Combinator string

const (
	Descendant  Combinator = " "
	Child       Combinator = ">"
	NextSibling Combinator = "+"
	Sibling     Combinator = "~"
)

// Combined is a selector produced by joining two selectors with a
// combinator. It stores the rendered text of its operands, so operands may
// change or be discarded afterwards without affecting the combined result.
type Combined struct {
	parts []string
}

// Combine joins the rendered forms of left and right with the combinator.
// The combinator is rendered as given and is not checked against the CSS
// combinator set, mirroring the permissive behavior of the pre-existing API.
func Combine(left Selector, comb Combinator, right Selector) Combined {
	return Combined{parts: []string{left.Stringify(), string(comb), right.Stringify()}}
}

// Stringify joins the stored parts with single spaces. A descendant (space)
// combinator therefore renders as three spaces between operands - inherited
// behavior, kept verbatim.
func (c Combined) Stringify() string {
	return strings.Join(c.parts, " ")
}

// String implements fmt.Stringer.
func (c Combined) String() string {
	return c.Stringify()
}
