// Package coverage counts documented entities per kind.
package coverage

import "docscan/internal/engine/parser"

// Summary holds the documentation counts of one file. The module is always
// counted once in Total, whether or not it appears in the entity list.
type Summary struct {
	Functions           int
	Classes             int
	DocumentedFunctions int
	DocumentedClasses   int
	HasModuleDoc        bool

	Total      int
	Documented int
	Missing    int
	Percentage float64
}

// Aggregate reduces an entity list to its coverage summary.
func Aggregate(entities []parser.Entity) Summary {
	var s Summary
	for _, e := range entities {
		switch e.Kind {
		case parser.KindFunction:
			s.Functions++
			if e.HasDocstring {
				s.DocumentedFunctions++
			}
		case parser.KindClass:
			s.Classes++
			if e.HasDocstring {
				s.DocumentedClasses++
			}
		case parser.KindModule:
			if e.HasDocstring {
				s.HasModuleDoc = true
			}
		}
	}

	s.Total = s.Functions + s.Classes + 1
	s.Documented = s.DocumentedFunctions + s.DocumentedClasses
	if s.HasModuleDoc {
		s.Documented++
	}
	s.Missing = s.Total - s.Documented
	s.Percentage = Percentage(s.Documented, s.Total)
	return s
}

// Percentage returns part/total*100, or 100 when total is zero.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 100.0
	}
	return float64(part) / float64(total) * 100
}
