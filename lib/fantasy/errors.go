package fantasy

import (
	"fmt"
	"strings"
)

// MalformedArtifactError is returned when a table, scraped or previously
// rendered, does not have the expected columns or shape.
type MalformedArtifactError struct {
	// where the table came from, a file path or a source name
	Source string
	// expected header, empty when the shape of a row is the problem
	Expected []string
	Found    []string
	Reason   string
}

func (e *MalformedArtifactError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "malformed artifact %s", e.Source)
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, " (expected columns [%s], found [%s])",
			strings.Join(e.Expected, ", "),
			strings.Join(e.Found, ", "),
		)
	}
	return b.String()
}
