// Package version carries build metadata, overridable at link time:
//
//	go build -ldflags "-X docscan/internal/shared/version.Version=1.2.0"
package version

import "fmt"

var (
	Version = "0.3.0"
	Commit  = ""
)

// String renders the version line printed by -version.
func String() string {
	if Commit == "" {
		return fmt.Sprintf("docscan v%s", Version)
	}
	return fmt.Sprintf("docscan v%s (%s)", Version, Commit)
}
