package absentee

import "errors"

var (
	ErrReportNotFound = errors.New("absentee report not found")
	ErrInvalidBucket  = errors.New("bucket must be one of 3, 6, 10, new")
)
