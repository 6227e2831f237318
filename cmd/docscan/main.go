// Command docscan reports docstring coverage for Python sources, generates
// the missing docstrings and gates commits on coverage and PEP 257 checks.
package main

import (
	"docscan/internal/cliapp"
	"os"
)

func main() {
	os.Exit(cliapp.Run(os.Args[1:]))
}
