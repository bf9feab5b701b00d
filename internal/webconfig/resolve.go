// SPDX-License-Identifier: Apache-2.0

package webconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// ErrInvalidLocator is returned when a locator is not a valid XPath expression.
var ErrInvalidLocator = errors.New("invalid locator")

// Resolve evaluates locator against the document at path and returns the
// string value of the first selected node. found is false when nothing
// matches.
func Resolve(path, locator string) (value string, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return resolve(data, path, locator)
}

// ResolveDocument is Resolve for a document read from r.
func ResolveDocument(r io.Reader, locator string) (string, bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("failed to read document: %w", err)
	}
	return resolve(data, "", locator)
}

func resolve(data []byte, path, locator string) (string, bool, error) {
	expr, err := xpath.Compile(locator)
	if err != nil {
		return "", false, fmt.Errorf("%w %q: %v", ErrInvalidLocator, locator, err)
	}

	// The strict loader vets the document before xmlquery builds its own tree.
	if _, err := parse(bytes.NewReader(data), path); err != nil {
		return "", false, err
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return "", false, &ParseError{Path: path, Err: err}
	}

	switch v := expr.Evaluate(xmlquery.CreateXPathNavigator(doc)).(type) {
	case *xpath.NodeIterator:
		if !v.MoveNext() {
			return "", false, nil
		}
		first := v.Current()
		node, ok := textNode(first)
		if !ok {
			return first.Value(), true, nil
		}
		// A text() step can select several runs under one element (split by
		// comments, or CDATA sections). Their concatenation is the value.
		var b strings.Builder
		b.WriteString(node.Data)
		for v.MoveNext() {
			next, ok := textNode(v.Current())
			if !ok || next.Parent != node.Parent {
				break
			}
			b.WriteString(next.Data)
		}
		return b.String(), true, nil
	case string:
		return v, true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	default:
		return fmt.Sprint(v), true, nil
	}
}

func textNode(nav xpath.NodeNavigator) (*xmlquery.Node, bool) {
	qn, ok := nav.(*xmlquery.NodeNavigator)
	if !ok {
		return nil, false
	}
	n := qn.Current()
	if n.Type == xmlquery.TextNode || n.Type == xmlquery.CharDataNode {
		return n, true
	}
	return nil, false
}
