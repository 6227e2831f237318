package checker

import (
	"bufio"
	"bytes"
	"docscan/internal/engine/compliance"
	"regexp"
	"strconv"
	"strings"
)

var (
	// path/to/file.py:12 in public function `load`:
	headerPattern = regexp.MustCompile(`^(.+):(\d+)\s+(?:at|in)\s.*:\s*$`)
	// indented "D103: Missing docstring in public function"
	detailPattern = regexp.MustCompile(`^\s+([A-Z]+\d+):\s*(.*)$`)
	trailingParen = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
)

// ParseOutput reads pydocstyle's default two-line report format. Lines that
// match neither the header nor the detail pattern are ignored.
func ParseOutput(out []byte) []compliance.Violation {
	var violations []compliance.Violation
	line := 0
	pending := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		if m := headerPattern.FindStringSubmatch(text); m != nil && !strings.HasPrefix(text, " ") && !strings.HasPrefix(text, "\t") {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				pending = false
				continue
			}
			line = n
			pending = true
			continue
		}
		if !pending {
			continue
		}
		if m := detailPattern.FindStringSubmatch(text); m != nil {
			code := m[1]
			violations = append(violations, compliance.Violation{
				Code:      code,
				Message:   code + ": " + strings.TrimSpace(m[2]),
				Line:      line,
				ShortDesc: shortDesc(m[2]),
			})
			pending = false
		}
	}
	return violations
}

// shortDesc drops the trailing "(found 0)" style context pydocstyle appends.
func shortDesc(message string) string {
	message = strings.TrimSpace(message)
	trimmed := strings.TrimSpace(trailingParen.ReplaceAllString(message, ""))
	if trimmed == "" {
		return message
	}
	return trimmed
}
