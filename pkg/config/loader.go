package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache holds one parsed copy per configuration type
	cache sync.Map // reflect.Type -> any

	dotenvOnce sync.Once
)

// loadDotenv reads ./.env into the process environment once.
// Variables already set in the environment take precedence.
func loadDotenv() {
	dotenvOnce.Do(func() {
		// The file is optional
		_ = godotenv.Load()
	})
}

// Load populates v from the environment and caches the result per type.
// Subsequent calls for the same type return the cached copy without re-reading the environment.
//
// Example:
//
//	var api config.API
//	if err := config.Load(&api); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDotenv()

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	parsed, err := Parse[T]()
	if err != nil {
		return err
	}

	actual, _ := cache.LoadOrStore(key, parsed)
	*v = actual.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse reads T from the current environment, bypassing the cache.
func Parse[T any]() (T, error) {
	loadDotenv()

	var out T
	if err := env.Parse(&out); err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return out, nil
}

// Reset drops all cached configurations. Intended for tests.
func Reset() {
	cache.Clear()
}
