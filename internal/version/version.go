// Package version provides the current release version of the server.
package version

import "fmt"

// Version is the service version, injected at build time.
var Version = "0.3.0"

// DevVersion is the suffix appended in dev mode.
var DevVersion = fmt.Sprintf("%s-dev", Version)

func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return DevVersion
}
