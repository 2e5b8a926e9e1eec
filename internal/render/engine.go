// Package render compiles the bundled template once and renders version
// records against it.
package render

import (
	"bytes"
	"errors"
	"text/template"

	"github.com/launchbynttdata/wych/internal/domain/appversion"
	"github.com/launchbynttdata/wych/internal/templates"
)

const templateName = "app_version_template"

var errNotInitialized = errors.New("engine is not initialized")

// Engine renders records against a single compiled template. It is safe for
// concurrent use.
type Engine struct {
	tmpl *template.Template
}

// New compiles the store's text. Field references are not checked against the
// record shape here; mismatches surface from Render.
func New(store templates.Store) (*Engine, error) {
	tmpl, err := template.New(templateName).Option("missingkey=error").Parse(store.Text())
	if err != nil {
		return nil, &CompileError{Template: templateName, Cause: err}
	}
	return &Engine{tmpl: tmpl}, nil
}

// Render substitutes the record's fields into the template. Output is only
// returned when the whole template executed successfully.
func (e *Engine) Render(record appversion.Record) (string, error) {
	if e == nil || e.tmpl == nil {
		return "", &RenderError{Template: templateName, Cause: errNotInitialized}
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, templateName, record); err != nil {
		return "", &RenderError{Template: templateName, Cause: err}
	}
	return buf.String(), nil
}
