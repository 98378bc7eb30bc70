package metrics

import "errors"

var (
	// ErrInvalidTimeUnit is returned when AddTime is given a unit other
	// than "ms" or "s".
	ErrInvalidTimeUnit = errors.New(`time metrics accept units "ms" and "s"`)

	// ErrInvalidSizeUnit is returned when AddSize is given a unit other
	// than "MB", "kB" or "GB".
	ErrInvalidSizeUnit = errors.New(`size metrics accept units "MB", "kB" and "GB"`)
)
