package entitlement

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSource loads the tier catalog from a YAML file so operations can tune
// plan entitlements without a code change. The file maps tier names to
// permission records:
//
//	pro:
//	  api_access: true
//	  ai_systems: 25
//	  compliance_frameworks: [EU-AI-Act, NIST-AI-RMF]
//	  support_level: priority
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source reading the catalog from path on every Load.
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

// Load parses the file and validates the resulting catalog, including tier
// name validity: an unknown tier key in the file is a configuration error,
// not a silent extra entry.
func (s *yamlSource) Load(_ context.Context) (Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var raw map[string]FeaturePermissions
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	catalog := make(Catalog, len(raw))
	for name, perms := range raw {
		tier, err := ParseTier(name)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadCatalog,
				fmt.Errorf("catalog file %s: %w", s.path, err))
		}
		catalog[tier] = perms
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}
