package gating

import (
	"context"
	"log/slog"

	"github.com/csoai/entitlement/pkg/audit"
	"github.com/csoai/entitlement/pkg/config"
	"github.com/csoai/entitlement/pkg/entitlement"
)

// Config holds the environment-driven settings for the gating module.
type Config struct {
	// CatalogPath optionally overrides the built-in tier catalog with a YAML
	// file, letting operations tune plan entitlements without a rebuild.
	CatalogPath string `env:"ENTITLEMENT_CATALOG_PATH"`
}

// LoadConfig reads the module configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	err := config.Load(&cfg)
	return cfg, err
}

// NewGuard constructs a Guard from module configuration: the YAML catalog
// when configured, the built-in default otherwise. Both paths validate the
// catalog and the operation table at startup.
func NewGuard(ctx context.Context, cfg Config, log *slog.Logger, auditor audit.Logger) (*entitlement.Guard, error) {
	opts := []entitlement.GuardOption{
		entitlement.WithLogger(log),
		entitlement.WithAuditLogger(auditor),
	}

	if cfg.CatalogPath != "" {
		catalog, err := entitlement.NewYAMLSource(cfg.CatalogPath).Load(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, entitlement.WithCatalog(catalog))
	}

	return entitlement.NewGuard(opts...)
}
