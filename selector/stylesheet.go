package selector

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single property declaration inside a rule. Values are
// rendered verbatim.
type Declaration struct {
	Property string
	Value    string
}

// Rule pairs a selector with its declarations.
type Rule struct {
	Selector     Selector
	Declarations []Declaration
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// Append adds a rule to the stylesheet.
func (s *Stylesheet) Append(sel Selector, decls ...Declaration) {
	s.Rules = append(s.Rules, Rule{Selector: sel, Declarations: decls})
}

// WriteTo writes the stylesheet to w in rule order, implementing
// io.WriterTo. Declarations keep their given order.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, rule := range s.Rules {
		n, err := writeRule(w, &rule)
		total += int64(n)
		if err != nil {
			return total, err
		}

		// blank line between rules (except after last)
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector.Stringify())
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "  %s: %s;\n", d.Property, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
