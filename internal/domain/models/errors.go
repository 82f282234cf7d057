package models

import "errors"

var (
	// ErrCardNotFound is a terminal negative lookup result.
	ErrCardNotFound = errors.New("card not found")
	// ErrUpstreamUnavailable marks a transport failure talking to a remote provider.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInvalidInput marks a request that failed boundary validation.
	ErrInvalidInput = errors.New("invalid input")
)
