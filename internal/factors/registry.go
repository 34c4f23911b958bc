package factors

import (
	"embed"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

//go:embed data/dataset.yaml
var datasetFS embed.FS

// datasetConstraint gates the embedded dataset's schema version. Bumping the
// dataset to a new major schema requires touching the loader too.
const datasetConstraint = "~1"

// dataset is the on-disk shape of the embedded factor catalog.
type dataset struct {
	Version   string   `yaml:"version"`
	Published string   `yaml:"published"`
	Factors   []Factor `yaml:"factors"`
}

// Registry is the load-once, read-many store of emission factors. It is
// immutable after construction and safe for concurrent use. Pass it by
// reference into the calculation engine rather than holding it as ambient
// global state, so tests can substitute a synthetic registry.
type Registry struct {
	factors []Factor
	byID    map[string]*Factor
	version *semver.Version
}

// Load parses and validates the embedded factor dataset.
func Load() (*Registry, error) {
	raw, err := datasetFS.ReadFile("data/dataset.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded factor dataset: %w", err)
	}

	var ds dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parsing factor dataset: %w", err)
	}

	version, err := semver.NewVersion(ds.Version)
	if err != nil {
		return nil, fmt.Errorf("factor dataset version %q: %w", ds.Version, err)
	}
	constraint, err := semver.NewConstraint(datasetConstraint)
	if err != nil {
		return nil, fmt.Errorf("dataset version constraint: %w", err)
	}
	if !constraint.Check(version) {
		return nil, fmt.Errorf("factor dataset version %s does not satisfy %s", version, datasetConstraint)
	}

	registry, err := New(ds.Factors)
	if err != nil {
		return nil, err
	}
	registry.version = version
	return registry, nil
}

// New builds a Registry from an explicit factor list, validating every
// record. Intended for tests and for callers with their own catalogs.
func New(records []Factor) (*Registry, error) {
	byID := make(map[string]*Factor, len(records))
	factorsCopy := make([]Factor, len(records))
	copy(factorsCopy, records)

	for i := range factorsCopy {
		f := &factorsCopy[i]
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("invalid factor record %d: %w", i, err)
		}
		if _, dup := byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate factor id %q", f.ID)
		}
		byID[f.ID] = f
	}

	return &Registry{factors: factorsCopy, byID: byID}, nil
}

// LookupByID returns the factor with the given id, or ErrFactorNotFound
// wrapped with the id.
func (r *Registry) LookupByID(id string) (*Factor, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFactorNotFound, id)
	}
	return f, nil
}

// Count returns the number of factors in the registry.
func (r *Registry) Count() int { return len(r.factors) }

// Version returns the dataset version, or "" for registries built with New.
func (r *Registry) Version() string {
	if r.version == nil {
		return ""
	}
	return r.version.String()
}

// All returns the factors sorted by id. The returned slice is a copy.
func (r *Registry) All() []Factor {
	out := make([]Factor, len(r.factors))
	copy(out, r.factors)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
