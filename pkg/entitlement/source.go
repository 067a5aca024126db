package entitlement

import "context"

// Source defines how a tier catalog is loaded into the service. The default
// catalog ships in code; a Source lets deployments override it from
// configuration without a rebuild.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}

// inMemSource implements Source over an in-memory catalog.
type inMemSource struct {
	catalog Catalog
}

// NewInMemSource returns a Source serving a deep copy of the given catalog,
// so later mutation of the argument cannot leak into loaded configuration.
// A nil catalog serves the built-in default.
func NewInMemSource(c Catalog) Source {
	if c == nil {
		c = defaultCatalog
	}
	return &inMemSource{catalog: c.clone()}
}

// Load returns a copy of the catalog.
func (s *inMemSource) Load(_ context.Context) (Catalog, error) {
	return s.catalog.clone(), nil
}
