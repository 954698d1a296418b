package engine

import "errors"

var (
	// ErrSystemAlreadyRegistered indicates a duplicate system name in the registry.
	ErrSystemAlreadyRegistered = errors.New("engine: system already registered")
	// ErrSystemNotRegistered signals enable/disable of an unknown system name.
	ErrSystemNotRegistered = errors.New("engine: system not registered")
	// ErrNilSystem is returned when registration receives a nil system.
	ErrNilSystem = errors.New("engine: nil system")
	// ErrCalendarStalled indicates a day/month/year simulation whose calendar
	// singleton stopped advancing, which would otherwise loop forever.
	ErrCalendarStalled = errors.New("engine: calendar did not advance during tick")
)
