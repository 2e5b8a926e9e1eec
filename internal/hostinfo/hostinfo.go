// Package hostinfo derives a source descriptor for builds that do not name
// one explicitly.
package hostinfo

import (
	"os"
	"runtime"
	"strings"
)

// UnknownHost is used when the hostname cannot be determined.
const UnknownHost = "unknown-host"

// Probe gathers the facts used to describe the building machine.
type Probe struct {
	Hostname func() (string, error)
	GOOS     string
	GOARCH   string
}

// Default returns a probe backed by the running process.
func Default() Probe {
	return Probe{
		Hostname: os.Hostname,
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
	}
}

// Source returns "<hostname>, <os>/<arch>".
func (p Probe) Source() string {
	return p.hostname() + ", " + p.platform()
}

func (p Probe) hostname() string {
	if p.Hostname == nil {
		return UnknownHost
	}
	name, err := p.Hostname()
	if err != nil {
		return UnknownHost
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownHost
	}
	return name
}

func (p Probe) platform() string {
	goos := p.GOOS
	if goos == "" {
		goos = "unknown"
	}
	if p.GOARCH == "" {
		return goos
	}
	return goos + "/" + p.GOARCH
}
