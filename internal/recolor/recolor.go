// Package recolor rewrites hex color literals in installed theme files.
package recolor

import (
	"os"
	"regexp"
	"strings"

	"github.com/huectl/huectl/internal/colormap"
)

// RecolorFile applies a substitution table to a text file in a single
// pass. The case style of each matched literal is preserved: fully
// uppercase literals get uppercase replacements, anything else gets the
// map's lowercase value. The file is rewritten only when its content
// actually changes. Returns whether the file was modified.
func RecolorFile(path string, m colormap.ColorMap) (bool, error) {
	if len(m) == 0 {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	text := string(data)

	// The alternation matches map keys only, never map values, which is
	// what makes a second pass with the same map a no-op.
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, regexp.QuoteMeta(key))
	}
	pattern, err := regexp.Compile("(?i)(" + strings.Join(keys, "|") + ")")
	if err != nil {
		return false, err
	}

	replaced := pattern.ReplaceAllStringFunc(text, func(match string) string {
		next, ok := m[strings.ToLower(match)]
		if !ok {
			return match
		}
		if isUpperHex(match[1:]) {
			return "#" + strings.ToUpper(next[1:])
		}
		return next
	})

	if replaced == text {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(replaced), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// isUpperHex reports whether the hex digits contain at least one letter
// and every letter is uppercase.
func isUpperHex(digits string) bool {
	hasLetter := false
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		switch {
		case c >= 'A' && c <= 'F':
			hasLetter = true
		case c >= 'a' && c <= 'f':
			return false
		}
	}
	return hasLetter
}
