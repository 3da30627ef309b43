// Package version exposes build identification for the CLIs.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the release version, overridden at build time:
//
//	go build -ldflags "-X github.com/ptouch-protocol/ptouch-go/pkg/version.Version=v1.2.3"
var Version = "dev"

// String returns a single-line build description.
func String() string {
	return fmt.Sprintf("%s (%s, %s/%s)", Version, goVersion(), runtime.GOOS, runtime.GOARCH)
}

func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.GoVersion != "" {
		return info.GoVersion
	}
	return runtime.Version()
}
