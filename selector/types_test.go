package selector_test

import (
	"errors"
	"strings"
	"testing"

	"cssb/selector"
)

// mustAppend returns a helper that unwraps an append result, failing the test
// on error. Returning a closure lets append calls feed it directly, keeping
// chained construction readable in tests.
func mustAppend(t *testing.T) func(selector.Simple, error) selector.Simple {
	return func(s selector.Simple, err error) selector.Simple {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected append error: %v", err)
		}
		return s
	}
}

func TestSimple_Stringify(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) selector.Simple
		want  string
	}{
		{
			name: "id with repeated classes",
			build: func(t *testing.T) selector.Simple {
				must := mustAppend(t)
				s := must(selector.New().ID("main"))
				s = must(s.Class("container"))
				s = must(s.Class("editable"))
				return s
			},
			want: "#main.container.editable",
		},
		{
			name: "element attribute pseudo-class",
			build: func(t *testing.T) selector.Simple {
				must := mustAppend(t)
				s := must(selector.New().Element("a"))
				s = must(s.Attr(`href$=".png"`))
				s = must(s.PseudoClass("focus"))
				return s
			},
			want: `a[href$=".png"]:focus`,
		},
		{
			name: "all kinds in order",
			build: func(t *testing.T) selector.Simple {
				must := mustAppend(t)
				s := must(selector.New().Element("div"))
				s = must(s.ID("main"))
				s = must(s.Class("container"))
				s = must(s.Attr("disabled"))
				s = must(s.PseudoClass("hover"))
				s = must(s.PseudoElement("before"))
				return s
			},
			want: "div#main.container[disabled]:hover::before",
		},
		{
			name: "repeated attributes and pseudo-classes",
			build: func(t *testing.T) selector.Simple {
				must := mustAppend(t)
				s := must(selector.New().Attr("type=text"))
				s = must(s.Attr("required"))
				s = must(s.PseudoClass("focus"))
				s = must(s.PseudoClass("valid"))
				return s
			},
			want: "[type=text][required]:focus:valid",
		},
		{
			name: "empty values pass through verbatim",
			build: func(t *testing.T) selector.Simple {
				must := mustAppend(t)
				s := must(selector.New().Element(""))
				s = must(s.Class(""))
				return s
			},
			want: ".",
		},
		{
			name:  "zero value renders empty",
			build: func(t *testing.T) selector.Simple { return selector.Simple{} },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.build(t)
			if got := s.Stringify(); got != tt.want {
				t.Errorf("Stringify() = %q, want %q", got, tt.want)
			}
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSimple_OrderViolations(t *testing.T) {
	tests := []struct {
		name   string
		build  func(t *testing.T) (selector.Simple, error)
		wantIn selector.Kind // kind whose append must fail
	}{
		{
			name: "element after id",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().ID("main")).Element("div")
			},
			wantIn: selector.Element,
		},
		{
			name: "id after class",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().Class("container")).ID("main")
			},
			wantIn: selector.ID,
		},
		{
			name: "class after attribute",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().Attr("disabled")).Class("container")
			},
			wantIn: selector.Class,
		},
		{
			name: "attribute after pseudo-class",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().PseudoClass("hover")).Attr("disabled")
			},
			wantIn: selector.Attribute,
		},
		{
			name: "pseudo-class after pseudo-element",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().PseudoElement("before")).PseudoClass("hover")
			},
			wantIn: selector.PseudoClass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(t)
			var orderErr *selector.OrderError
			if !errors.As(err, &orderErr) {
				t.Fatalf("expected OrderError, got %v", err)
			}
			if orderErr.Appended != tt.wantIn {
				t.Errorf("OrderError.Appended = %s, want %s", orderErr.Appended, tt.wantIn)
			}
		})
	}
}

func TestSimple_DuplicateViolations(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) (selector.Simple, error)
		want  selector.Kind
	}{
		{
			name: "second element",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().Element("div")).Element("span")
			},
			want: selector.Element,
		},
		{
			name: "second id",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().ID("main")).ID("other")
			},
			want: selector.ID,
		},
		{
			name: "second pseudo-element",
			build: func(t *testing.T) (selector.Simple, error) {
				return mustAppend(t)(selector.New().PseudoElement("before")).PseudoElement("after")
			},
			want: selector.PseudoElement,
		},
		{
			name: "second id separated by classes",
			build: func(t *testing.T) (selector.Simple, error) {
				must := mustAppend(t)
				s := must(selector.New().ID("main"))
				s = must(s.Class("container"))
				return s.ID("other")
			},
			want: selector.ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(t)
			var dupErr *selector.DuplicateError
			if !errors.As(err, &dupErr) {
				t.Fatalf("expected DuplicateError, got %v", err)
			}
			if dupErr.Kind != tt.want {
				t.Errorf("DuplicateError.Kind = %s, want %s", dupErr.Kind, tt.want)
			}
		})
	}
}

func TestSimple_ErrorMessages(t *testing.T) {
	must := mustAppend(t)

	_, err := must(selector.New().ID("main")).Element("div")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "required order is element, id, class, attribute, pseudo-class, pseudo-element"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("OrderError message %q does not mention %q", got, want)
	}

	_, err = must(selector.New().Element("div")).Element("span")
	if err == nil {
		t.Fatal("expected error")
	}
	want = "element, id and pseudo-element may occur at most once"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("DuplicateError message %q does not mention %q", got, want)
	}
}

func TestSimple_Immutability(t *testing.T) {
	must := mustAppend(t)

	base := must(selector.New().Element("div"))

	left := must(base.ID("left"))
	right := must(base.ID("right"))

	if got := base.Stringify(); got != "div" {
		t.Errorf("base changed after branching: %q", got)
	}
	if got := left.Stringify(); got != "div#left" {
		t.Errorf("left branch = %q, want %q", got, "div#left")
	}
	if got := right.Stringify(); got != "div#right" {
		t.Errorf("right branch = %q, want %q", got, "div#right")
	}

	// extending one branch must not leak into the other
	left = must(left.Class("a"))
	if got := right.Stringify(); got != "div#right" {
		t.Errorf("right branch changed after extending left: %q", got)
	}
	if got := left.Stringify(); got != "div#left.a" {
		t.Errorf("left branch = %q, want %q", got, "div#left.a")
	}
}

func TestSimple_FragmentsCopy(t *testing.T) {
	must := mustAppend(t)

	s := must(selector.New().Element("div"))
	s = must(s.Class("container"))

	frags := s.Fragments()
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	frags[0].Value = "span"

	if got := s.Stringify(); got != "div.container" {
		t.Errorf("selector changed through Fragments() copy: %q", got)
	}
}

func TestCombine(t *testing.T) {
	must := mustAppend(t)

	a := must(selector.New().Element("p"))
	b := must(selector.New().Element("code"))

	got := selector.Combine(a, selector.Child, b).Stringify()
	if want := "p > code"; got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
}

func TestCombine_DoesNotMutateOperands(t *testing.T) {
	must := mustAppend(t)

	a := must(selector.New().Element("p"))
	b := must(selector.New().Element("code"))

	before := a.Stringify()
	_ = selector.Combine(a, selector.NextSibling, b)
	if after := a.Stringify(); after != before {
		t.Errorf("left operand changed by Combine: %q -> %q", before, after)
	}
	if got := b.Stringify(); got != "code" {
		t.Errorf("right operand changed by Combine: %q", got)
	}
}

func TestCombine_FreeTextCombinator(t *testing.T) {
	must := mustAppend(t)

	a := must(selector.New().Element("p"))
	b := must(selector.New().Element("code"))

	// the combinator is rendered as given, without validation
	got := selector.Combine(a, selector.Combinator("||"), b).Stringify()
	if want := "p || code"; got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
}

func TestCombine_Nested(t *testing.T) {
	must := mustAppend(t)

	a := must(selector.New().Element("div"))
	a = must(a.ID("main"))
	a = must(a.Class("container"))
	a = must(a.Class("draggable"))

	b := must(selector.New().Element("table"))
	b = must(b.ID("data"))

	c := must(selector.New().Element("tr"))
	c = must(c.PseudoClass("nth-of-type(even)"))

	d := must(selector.New().Element("td"))
	d = must(d.PseudoClass("nth-of-type(even)"))

	combined := selector.Combine(a, selector.NextSibling,
		selector.Combine(b, selector.Sibling,
			selector.Combine(c, selector.Descendant, d)))

	// the descendant combinator is itself a space, so joining produces the
	// wide gap between tr and td
	want := "div#main.container.draggable + table#data ~ tr:nth-of-type(even)   td:nth-of-type(even)"
	if got := combined.Stringify(); got != want {
		t.Errorf("nested Combine() = %q, want %q", got, want)
	}

	// operands still render on their own
	if got := a.Stringify(); got != "div#main.container.draggable" {
		t.Errorf("operand a = %q after combine", got)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind selector.Kind
		want string
	}{
		{selector.Element, "element"},
		{selector.ID, "id"},
		{selector.Class, "class"},
		{selector.Attribute, "attribute"},
		{selector.PseudoClass, "pseudo-class"},
		{selector.PseudoElement, "pseudo-element"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
