// SPDX-License-Identifier: Apache-2.0

package webconfig

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

var (
	// ErrNotFound is returned by Load when the document does not exist.
	ErrNotFound = fmt.Errorf("web.config not found: %w", fs.ErrNotExist)

	errNoRoot = errors.New("document has no root element")
)

var byteOrderMark = []byte("\ufeff")

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "document"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %v", where, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Attr is an element attribute. Prefixed names keep their prefix ("xdt:Transform").
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the parsed document tree.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	// Text is the concatenated character data directly inside the element.
	Text string

	parent *Element
}

// Document is a parsed configuration file.
type Document struct {
	Path string
	Root *Element
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := parse(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse parses a document from r.
func Parse(r io.Reader) (*Document, error) {
	return parse(r, "")
}

// parse builds the element tree. The decoder never resolves DTDs or
// external entities; only the predefined XML entities are accepted.
func parse(r io.Reader, path string) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = nil
	dec.CharsetReader = charsetReader

	fail := func(err error) (*Document, error) {
		line, _ := dec.InputPos()
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			line = syntaxErr.Line
		}
		return nil, &ParseError{Path: path, Line: line, Err: err}
	}

	var (
		root  *Element
		stack []*Element
		text  []*strings.Builder
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return fail(errors.New("multiple root elements"))
			}
			el := &Element{Name: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				name := qualifiedName(a.Name)
				if _, dup := el.Attr(name); dup {
					return fail(fmt.Errorf("attribute %q redefined on <%s>", name, el.Name))
				}
				el.Attrs = append(el.Attrs, Attr{Name: name, Value: a.Value})
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				el.parent = parent
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			if len(stack) == 0 {
				return fail(fmt.Errorf("unexpected end element </%s>", qualifiedName(t.Name)))
			}
			top := stack[len(stack)-1]
			if name := qualifiedName(t.Name); name != top.Name {
				return fail(fmt.Errorf("element <%s> closed by </%s>", top.Name, name))
			}
			top.Text = text[len(text)-1].String()
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(bytes.TrimPrefix(t, byteOrderMark))) > 0 {
					return fail(errors.New("character data outside the root element"))
				}
				continue
			}
			text[len(text)-1].Write(t)
		}
	}

	if len(stack) > 0 {
		return fail(fmt.Errorf("element <%s> is not closed", stack[len(stack)-1].Name))
	}
	if root == nil {
		return fail(errNoRoot)
	}
	return &Document{Path: path, Root: root}, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child element with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find follows names through first matching children. Nil-safe.
func (e *Element) Find(names ...string) *Element {
	cur := e
	for _, name := range names {
		if cur == nil {
			return nil
		}
		cur = cur.Child(name)
	}
	return cur
}

// FindAll returns every element reached by following names from e, in
// document order.
func (e *Element) FindAll(names ...string) []*Element {
	if len(names) == 0 {
		return []*Element{e}
	}
	var found []*Element
	for _, c := range e.Children {
		if c.Name == names[0] {
			found = append(found, c.FindAll(names[1:]...)...)
		}
	}
	return found
}

// Descendants returns every element below e with the given name, in
// document order.
func (e *Element) Descendants(name string) []*Element {
	var found []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		for _, c := range el.Children {
			if c.Name == name {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(e)
	return found
}

// Path returns the absolute location path of e. Steps that have same-named
// siblings carry a 1-based position predicate.
func (e *Element) Path() string {
	var steps []string
	for cur := e; cur != nil; cur = cur.parent {
		steps = append(steps, cur.step())
	}
	var b strings.Builder
	for i := len(steps) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(steps[i])
	}
	return b.String()
}

func (e *Element) step() string {
	if e.parent == nil {
		return e.Name
	}
	pos, count := 0, 0
	for _, sib := range e.parent.Children {
		if sib.Name != e.Name {
			continue
		}
		count++
		if sib == e {
			pos = count
		}
	}
	if count == 1 {
		return e.Name
	}
	return fmt.Sprintf("%s[%d]", e.Name, pos)
}
