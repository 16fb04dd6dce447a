package version

import "fmt"

// set via ldflags, e.g. -X github.com/mpapenbr/ghostlap-go/version.Version=v1.0.0
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var FullVersion = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
