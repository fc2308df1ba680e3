package config

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadingConfig = errors.New("error loading config")
)
