// Package secrets loads the local secret file that keys the HTTP cache.
package secrets

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Template is the file content users are asked to create.
const Template = `{
    "httpCache": "<arbitrarily generated string>"
}`

// Secrets is the content of the secret file.
type Secrets struct {
	HTTPCache string `json:"httpCache" env:"CHART_HTTP_CACHE_KEY"`
}

// SetupError reports a missing or incomplete secret file. Its message tells
// the user which file to create and what to put in it.
type SetupError struct {
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("Create this file at %q:\n%s", e.Path, Template)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ErrMissingKey is wrapped by SetupError when the file has no cache key.
var ErrMissingKey = errors.New("httpCache key missing")

// Load reads the secret file at path. CHART_HTTP_CACHE_KEY overrides the
// file value. A missing file or an empty key yields a *SetupError.
func Load(path string) (*Secrets, error) {
	var s Secrets

	if _, err := os.Stat(path); err != nil {
		return nil, &SetupError{Path: path, Err: err}
	}
	if err := cleanenv.ReadConfig(path, &s); err != nil {
		return nil, &SetupError{Path: path, Err: err}
	}
	if s.HTTPCache == "" {
		return nil, &SetupError{Path: path, Err: ErrMissingKey}
	}

	return &s, nil
}
