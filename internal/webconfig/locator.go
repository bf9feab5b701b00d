// SPDX-License-Identifier: Apache-2.0

package webconfig

import (
	"strings"
)

// selectBy returns "<base>/<step>[@<attr>=<value>]".
func selectBy(base, step, attr, value string) string {
	return base + "/" + step + "[@" + attr + "=" + literal(value) + "]"
}

func attributeOf(path, attr string) string {
	return path + "/@" + attr
}

// literal quotes s as an XPath string literal. XPath 1.0 has no escapes, so a
// value holding both quote kinds is spelled as concat() of quoted runs.
func literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	args := make([]string, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			args = append(args, `"'"`)
		}
		if p != "" {
			args = append(args, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}
