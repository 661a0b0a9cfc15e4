package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldModule    = "module"
	FieldFamily    = "family"
	FieldArgument  = "argument"
	FieldOption    = "option"
	FieldStoreKey  = "store_key"
	FieldSource    = "source"
	FieldFile      = "file"
	FieldFormat    = "format"
	FieldCount     = "count"
	FieldError     = "error"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Host struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Host {
//	    return &Host{logger: logger.ComponentLogger("host")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
