package xproc

import "errors"

var (
	ErrStylesheetNotFound = errors.New("stylesheet not found")
	ErrStylesheetInvalid  = errors.New("stylesheet rejected by engine")
	ErrInputNotFound      = errors.New("input document not found")
	ErrTransformFailed    = errors.New("transformation failed")
	ErrParameterSet       = errors.New("parameter can not be set")
	ErrParameterGet       = errors.New("parameter can not be read")
	ErrOutputPropertySet  = errors.New("output property can not be set")
)
