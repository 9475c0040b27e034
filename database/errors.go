package database

import "errors"

var (
	// ErrNotConnected is returned when the database handle is used before Connect.
	ErrNotConnected = errors.New("database not connected")

	// ErrDoctorNotFound is returned when no doctor has the requested id.
	ErrDoctorNotFound = errors.New("doctor not found")
)
