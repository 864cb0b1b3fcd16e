package tokenstore

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrHealthcheckFailed            = errors.New("token store healthcheck failed")
	ErrEmptyKey                     = errors.New("token key must not be empty")
	ErrUnknownDriver                = errors.New("unknown token store driver")
	ErrCorruptTokenFile             = errors.New("token file is not valid JSON")
	ErrNoFilePath                   = errors.New("cannot determine token file location")
)
