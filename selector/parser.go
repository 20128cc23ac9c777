package selector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser turns CSS selector text back into selector values. Parsed fragments
// are appended through the regular builder methods, so parsed text is held to
// the same ordering and cardinality rules as programmatic construction.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new selector parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("selector-parser")}
}

// token is a single lexed CSS token.
type token struct {
	tt   css.TokenType
	data string
}

// tokenize lexes the whole input, dropping comments. Leading and trailing
// whitespace tokens are trimmed.
func (p *Parser) tokenize(text string) ([]token, error) {
	l := css.NewLexer(parse.NewInput(strings.NewReader(text)))

	var tokens []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenizing selector %q: %w", text, err)
			}
			break
		}
		if tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, token{tt: tt, data: string(data)})
	}

	for len(tokens) > 0 && tokens[0].tt == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].tt == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens, nil
}

// ParseSimple parses a single compound selector - no combinators allowed.
func (p *Parser) ParseSimple(text string) (Simple, error) {
	tokens, err := p.tokenize(text)
	if err != nil {
		return Simple{}, err
	}
	if len(tokens) == 0 {
		return Simple{}, errors.New("empty selector")
	}

	compound, next, err := p.compound(tokens, 0)
	if err != nil {
		return Simple{}, err
	}
	if next != len(tokens) {
		return Simple{}, fmt.Errorf("selector %q is not a single compound selector", text)
	}
	p.log.Debug("parsed compound selector", zap.String("text", text), zap.Int("fragments", compound.Len()))
	return compound, nil
}

// Parse parses selector text that may contain descendant, child, next-sibling
// and general-sibling combinators. Compounds are folded left to right, so
// "a b > c" parses as Combine(Combine(a, ' ', b), '>', c).
func (p *Parser) Parse(text string) (Selector, error) {
	tokens, err := p.tokenize(text)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.New("empty selector")
	}

	var result Selector
	comb := Descendant
	i := 0
	for {
		compound, next, err := p.compound(tokens, i)
		if err != nil {
			return nil, err
		}
		i = next

		if result == nil {
			result = compound
		} else {
			result = Combine(result, comb, compound)
		}

		comb = Descendant
		explicit := false
		for i < len(tokens) {
			t := tokens[i]
			if t.tt == css.WhitespaceToken {
				i++
				continue
			}
			if t.tt == css.DelimToken && isCombinator(t.data) {
				if explicit {
					return nil, fmt.Errorf("unexpected combinator %q in selector %q", t.data, text)
				}
				comb = Combinator(t.data)
				explicit = true
				i++
				continue
			}
			break
		}
		if i >= len(tokens) {
			if explicit {
				return nil, fmt.Errorf("selector %q ends with a combinator", text)
			}
			p.log.Debug("parsed selector", zap.String("text", text), zap.String("rendered", result.Stringify()))
			return result, nil
		}
	}
}

func isCombinator(data string) bool {
	return data == ">" || data == "+" || data == "~"
}

// compound consumes one compound selector starting at tokens[i] and returns
// it together with the index of the first unconsumed token. It stops at
// whitespace and combinator tokens.
func (p *Parser) compound(tokens []token, i int) (Simple, int, error) {
	cur := New()

	var err error
loop:
	for i < len(tokens) {
		t := tokens[i]
		switch {
		case t.tt == css.WhitespaceToken:
			break loop

		case t.tt == css.DelimToken && isCombinator(t.data):
			break loop

		case t.tt == css.IdentToken:
			cur, err = cur.Element(t.data)
			i++

		case t.tt == css.DelimToken && t.data == "*":
			cur, err = cur.Element("*")
			i++

		case t.tt == css.HashToken:
			cur, err = cur.ID(strings.TrimPrefix(t.data, "#"))
			i++

		case t.tt == css.DelimToken && t.data == ".":
			if i+1 >= len(tokens) || tokens[i+1].tt != css.IdentToken {
				return Simple{}, i, errors.New("expected class name after '.'")
			}
			cur, err = cur.Class(tokens[i+1].data)
			i += 2

		case t.tt == css.LeftBracketToken:
			var value string
			value, i, err = attrValue(tokens, i+1)
			if err != nil {
				return Simple{}, i, err
			}
			cur, err = cur.Attr(value)

		case t.tt == css.ColonToken:
			i++
			element := false
			if i < len(tokens) && tokens[i].tt == css.ColonToken {
				element = true
				i++
			}
			var name string
			name, i, err = pseudoName(tokens, i)
			if err != nil {
				return Simple{}, i, err
			}
			if element {
				cur, err = cur.PseudoElement(name)
			} else {
				cur, err = cur.PseudoClass(name)
			}

		case t.tt == css.CommaToken:
			return Simple{}, i, errors.New("selector lists are not supported")

		default:
			return Simple{}, i, fmt.Errorf("unexpected token %q in selector", t.data)
		}
		if err != nil {
			return Simple{}, i, err
		}
	}

	if cur.Len() == 0 {
		return Simple{}, i, errors.New("empty compound selector")
	}
	return cur, i, nil
}

// attrValue collects the raw attribute expression between brackets.
func attrValue(tokens []token, i int) (string, int, error) {
	var sb strings.Builder
	for i < len(tokens) {
		if tokens[i].tt == css.RightBracketToken {
			return sb.String(), i + 1, nil
		}
		sb.WriteString(tokens[i].data)
		i++
	}
	return "", i, errors.New("unterminated attribute selector")
}

// pseudoName collects a pseudo-class or pseudo-element name, including
// functional arguments like nth-of-type(even).
func pseudoName(tokens []token, i int) (string, int, error) {
	if i >= len(tokens) {
		return "", i, errors.New("expected name after ':'")
	}
	t := tokens[i]
	switch t.tt {
	case css.IdentToken:
		return t.data, i + 1, nil
	case css.FunctionToken:
		// function token text includes the opening parenthesis
		var sb strings.Builder
		sb.WriteString(t.data)
		depth := 1
		i++
		for i < len(tokens) && depth > 0 {
			switch tokens[i].tt {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
			}
			sb.WriteString(tokens[i].data)
			i++
		}
		if depth != 0 {
			return "", i, errors.New("unbalanced parentheses in pseudo arguments")
		}
		return sb.String(), i, nil
	default:
		return "", i, fmt.Errorf("unexpected token %q after ':'", t.data)
	}
}
