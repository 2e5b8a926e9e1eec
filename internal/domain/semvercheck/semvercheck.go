package semvercheck

import (
	"fmt"
	"strings"

	semver "github.com/blang/semver/v4"
)

// Result describes how a build version string relates to semantic versioning.
type Result struct {
	Raw     string
	Valid   bool
	Version semver.Version
	Reason  string
}

// Check parses value tolerantly (leading "v", missing minor/patch). When
// require is set an unparsable value is returned as an error; otherwise the
// failure is only reported through Result.
func Check(value string, require bool) (Result, error) {
	res := Result{Raw: value}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		res.Reason = "empty version"
		if require {
			return res, fmt.Errorf("version %q is not a semantic version: %s", value, res.Reason)
		}
		return res, nil
	}

	parsed, err := semver.ParseTolerant(trimmed)
	if err != nil {
		res.Reason = err.Error()
		if require {
			return res, fmt.Errorf("version %q is not a semantic version: %w", value, err)
		}
		return res, nil
	}

	res.Valid = true
	res.Version = parsed
	return res, nil
}
