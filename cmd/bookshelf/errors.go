package main

import "errors"

var (
	errInvalidLogFormat = errors.New("invalid log format")
	errInvalidData      = errors.New("--data must be valid JSON")
	errMissingEndpoint  = errors.New("must specify an endpoint")
)
