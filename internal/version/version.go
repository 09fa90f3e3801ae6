// Package version carries build-time identifiers for the statutree
// binary, set via ldflags:
//
//	go build -ldflags "-X github.com/statutree/statutree/internal/version.Version=1.0.0 ..."
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the bare version.
func String() string {
	return Version
}

// Full renders the multi-line report printed by the version command.
func Full() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("statutree %s\n", String()))
	sb.WriteString(fmt.Sprintf("  Commit:     %s\n", Commit))
	sb.WriteString(fmt.Sprintf("  Built:      %s\n", BuildDate))
	sb.WriteString(fmt.Sprintf("  Go version: %s\n", runtime.Version()))
	sb.WriteString(fmt.Sprintf("  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH))
	return sb.String()
}
