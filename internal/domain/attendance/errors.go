package attendance

import "errors"

// Attendance domain errors
var (
	// Merge errors
	ErrMissingColumn   = errors.New("required column not found")
	ErrEmptySheet      = errors.New("worksheet is empty")
	ErrUnsupportedFile = errors.New("unsupported file type: only xlsx and xls allowed")

	// Template errors
	ErrTemplateNotFound = errors.New("monthly template not found")
	ErrInvalidDate      = errors.New("date must be in dd.mm.yyyy format")
)
