// Package mailparse turns survey-generated request emails into typed records.
//
// A request body is an HTML document whose body text holds one KEY:value pair
// per line. Lines are split on the first colon only, so values may contain
// colons. Keys outside the schema are dropped.
package mailparse

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrParse is wrapped by every parse failure.
var ErrParse = errors.New("mailparse: malformed request")

// Schema lists the keys a request must and may carry.
type Schema struct {
	Required []string
	Optional []string
}

func (s Schema) accepts(key string) bool {
	return slices.Contains(s.Required, key) || slices.Contains(s.Optional, key)
}

// ParseContents extracts every required key from an HTML body.
func ParseContents(body string, required []string) (map[string]string, error) {
	return Extract(body, Schema{Required: required})
}

// Extract returns the schema's keys found in body. Every required key must
// be present; values may be empty.
func Extract(body string, schema Schema) (map[string]string, error) {
	text, err := BodyText(body)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(schema.Required)+len(schema.Optional))
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line without a colon: %q", ErrParse, line)
		}
		key = strings.TrimSpace(key)
		if schema.accepts(key) {
			fields[key] = strings.TrimSpace(val)
		}
	}

	var missing []string
	for _, k := range schema.Required {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required keys %s", ErrParse, strings.Join(missing, ", "))
	}

	return fields, nil
}

// BodyText returns the text content of the document's body element, with
// line breaks at block boundaries.
func BodyText(doc string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}

	body := findBody(root)
	if body == nil {
		return "", fmt.Errorf("%w: no body section", ErrParse)
	}

	var sb strings.Builder
	writeText(&sb, body)
	return sb.String(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head:
			return
		case atom.Br:
			sb.WriteByte('\n')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}

	if n.Type == html.ElementNode && isBlock(n.DataAtom) {
		sb.WriteByte('\n')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Tr, atom.Li, atom.H1, atom.H2, atom.H3, atom.Table, atom.Ul, atom.Ol, atom.Pre:
		return true
	}
	return false
}
