// Package notation implements the mini-notation parser plugged into the
// engine's single NotationParser injection point. It is a small
// recursive-descent parser: split the source into tokens first, then
// recursively build structure out of them.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cbegin/cyclo"
)

// Parse turns mini-notation source text into a Pattern. It matches the
// cyclo.NotationParser shape and is meant to be installed with
// cyclo.WithParser(notation.Parse) or
// cyclo.DefaultRuntime().SetParser(notation.Parse).
func Parse(text string) (cyclo.Pattern, error) {
	p := &parser{tokens: tokenize(text)}
	seq, err := p.parseStack()
	if err != nil {
		return cyclo.Pattern{}, err
	}
	if p.pos != len(p.tokens) {
		return cyclo.Pattern{}, fmt.Errorf("notation: unexpected trailing token %q", p.tokens[p.pos])
	}
	return seq, nil
}

// tokenize splits source into a flat token stream: words, numbers, and the
// punctuation mini-notation needs ([ ] < > { } , * / ! @). Whitespace
// separates tokens and is otherwise insignificant. A rest ~ is not split
// out as punctuation: it is read as a word, so it is a rest only when it
// stands alone.
func tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r':
			flush()
		case '[', ']', '<', '>', '{', '}', ',', '*', '/', '!', '@':
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

// parseStack parses a top-level comma-separated list of sequences as
// simultaneous layers (cyclo.Stack), the notation's "," combinator.
func (p *parser) parseStack() (cyclo.Pattern, error) {
	var layers []cyclo.Pattern
	seq, err := p.parseSequence(stopSet("", ",", "}", "]"))
	if err != nil {
		return cyclo.Pattern{}, err
	}
	layers = append(layers, seq)
	for p.peek() == "," {
		p.next()
		seq, err := p.parseSequence(stopSet("", ",", "}", "]"))
		if err != nil {
			return cyclo.Pattern{}, err
		}
		layers = append(layers, seq)
	}
	if len(layers) == 1 {
		return layers[0], nil
	}
	return cyclo.Stack(layers...), nil
}

func stopSet(tokens ...string) map[string]bool {
	out := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		out[t] = true
	}
	return out
}

// parseSequence parses space-separated elements until a stop token (or
// end of input). Unweighted elements combine with FastCat, one slot per
// element; when any element carries an @n weight the slots are allocated
// proportionally with StepCat instead.
func (p *parser) parseSequence(stop map[string]bool) (cyclo.Pattern, error) {
	var elems []cyclo.Pattern
	var weights []cyclo.Rational
	weighted := false
	for !stop[p.peek()] {
		el, w, err := p.parseModified()
		if err != nil {
			return cyclo.Pattern{}, err
		}
		if !w.Equal(cyclo.One) {
			weighted = true
		}
		elems = append(elems, el)
		weights = append(weights, w)
	}
	if len(elems) == 0 {
		return cyclo.Silence(), nil
	}
	if len(elems) == 1 && !weighted {
		return elems[0], nil
	}
	if !weighted {
		return cyclo.FastCat(elems...), nil
	}
	for i := range elems {
		w := weights[i]
		elems[i].Steps = &w
	}
	return cyclo.StepCat(elems...), nil
}

// parseModified parses one base element followed by any postfix modifiers
// (*n speeds it up, /n slows it down, !n repeats it n times in place, @n
// weights its slot within the enclosing sequence).
func (p *parser) parseModified() (cyclo.Pattern, cyclo.Rational, error) {
	weight := cyclo.One
	base, err := p.parseElement()
	if err != nil {
		return cyclo.Pattern{}, weight, err
	}
	for {
		switch p.peek() {
		case "*":
			p.next()
			n, err := p.parseNumber()
			if err != nil {
				return cyclo.Pattern{}, weight, err
			}
			base = base.Fast(cyclo.FromFloat(n))
		case "/":
			p.next()
			n, err := p.parseNumber()
			if err != nil {
				return cyclo.Pattern{}, weight, err
			}
			base = base.Slow(cyclo.FromFloat(n))
		case "!":
			p.next()
			n, err := p.parseNumber()
			if err != nil {
				return cyclo.Pattern{}, weight, err
			}
			count := int(n)
			if count < 1 {
				count = 1
			}
			reps := make([]cyclo.Pattern, count)
			for i := range reps {
				reps[i] = base
			}
			base = cyclo.FastCat(reps...)
		case "@":
			p.next()
			n, err := p.parseNumber()
			if err != nil {
				return cyclo.Pattern{}, weight, err
			}
			weight = cyclo.FromFloat(n)
		default:
			return base, weight, nil
		}
	}
}

func (p *parser) parseNumber() (float64, error) {
	tok := p.next()
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("notation: expected number, got %q", tok)
	}
	return f, nil
}

// parseElement parses a single word, rest, bracketed group, alternation,
// or polymeter block.
func (p *parser) parseElement() (cyclo.Pattern, error) {
	tok := p.peek()
	switch tok {
	case "":
		return cyclo.Pattern{}, fmt.Errorf("notation: unexpected end of input")
	case "~":
		p.next()
		return cyclo.Silence(), nil
	case "[":
		p.next()
		inner, err := p.parseStack()
		if err != nil {
			return cyclo.Pattern{}, err
		}
		if p.peek() != "]" {
			return cyclo.Pattern{}, fmt.Errorf("notation: expected ']'")
		}
		p.next()
		return inner, nil
	case "<":
		p.next()
		var elems []cyclo.Pattern
		for p.peek() != ">" {
			if p.peek() == "" {
				return cyclo.Pattern{}, fmt.Errorf("notation: expected '>'")
			}
			el, _, err := p.parseModified()
			if err != nil {
				return cyclo.Pattern{}, err
			}
			elems = append(elems, el)
		}
		p.next()
		if len(elems) == 0 {
			return cyclo.Silence(), nil
		}
		return cyclo.SlowCat(elems...), nil
	case "{":
		p.next()
		var layers []cyclo.Pattern
		layer, err := p.parseSequence(stopSet(",", "}"))
		if err != nil {
			return cyclo.Pattern{}, err
		}
		layers = append(layers, layer)
		for p.peek() == "," {
			p.next()
			layer, err := p.parseSequence(stopSet(",", "}"))
			if err != nil {
				return cyclo.Pattern{}, err
			}
			layers = append(layers, layer)
		}
		if p.peek() != "}" {
			return cyclo.Pattern{}, fmt.Errorf("notation: expected '}'")
		}
		p.next()
		return cyclo.Polymeter(layers...), nil
	case "]", ">", "}", ",", "*", "/", "!", "@":
		return cyclo.Pattern{}, fmt.Errorf("notation: unexpected token %q", tok)
	default:
		p.next()
		return cyclo.Pure(tok), nil
	}
}
