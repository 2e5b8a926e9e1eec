// Package templates holds the template text bundled into the wych binary.
package templates

import (
	_ "embed"
)

// AppVersionName is the logical name of the bundled template. It doubles as
// the file name of the generated Elm module.
const AppVersionName = "AppVersion.elm"

//go:embed AppVersion.elm
var appVersionElm string

// Store is an immutable holder of raw, uncompiled template text.
type Store struct {
	name string
	text string
}

// Load returns the store for the embedded AppVersion.elm template.
func Load() Store {
	return Store{name: AppVersionName, text: appVersionElm}
}

// New returns a store wrapping the provided text.
func New(name, text string) Store {
	return Store{name: name, text: text}
}

// Name reports the logical template name.
func (s Store) Name() string {
	return s.name
}

// Text returns the raw template text.
func (s Store) Text() string {
	return s.text
}
