package service

import "errors"

var (
	// ErrImportFailed wraps the joined save failures of an import in
	// must-propagate mode.
	ErrImportFailed = errors.New("import failed")
)
