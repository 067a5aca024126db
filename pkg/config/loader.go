package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load populates the configuration struct from environment variables. It
// loads the default .env file once per process first; a missing .env file is
// not an error.
//
// Example:
//
//	type EntitlementConfig struct {
//		CatalogPath string `env:"ENTITLEMENT_CATALOG_PATH"`
//		AuditBuffer int    `env:"ENTITLEMENT_AUDIT_BUFFER" envDefault:"256"`
//	}
//
//	var cfg EntitlementConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
