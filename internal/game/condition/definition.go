package condition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Def is the static, user-facing description of a condition, loaded from YAML.
type Def struct {
	ID          Kind   `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Hidden conditions are tracked by the engine but not shown to players.
	Hidden bool `yaml:"hidden"`
}

// Validate checks that d has a name and that hidden matches the kind.
func (d *Def) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("condition %s: name must not be empty", d.ID))
	}
	if d.ID.Internal() && !d.Hidden {
		errs = append(errs, fmt.Errorf("condition %s: engine-internal condition must be hidden", d.ID))
	}
	return errors.Join(errs...)
}

// Registry holds the Def of each known condition.
type Registry struct {
	defs map[Kind]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Kind]*Def)}
}

// Register adds def to the registry, overwriting any existing entry for the same kind.
// Precondition: def must not be nil.
func (r *Registry) Register(def *Def) {
	r.defs[def.ID] = def
}

// Get returns the Def for k, or (nil, false) if not found.
func (r *Registry) Get(k Kind) (*Def, bool) {
	d, ok := r.defs[k]
	return d, ok
}

// Visible reports whether k should be shown to players. Unregistered
// user-facing kinds are visible.
func (r *Registry) Visible(k Kind) bool {
	if d, ok := r.defs[k]; ok {
		return !d.Hidden
	}
	return !k.Internal()
}

// All returns every registered Def ordered by kind.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *Def) int { return int(a.ID) - int(b.ID) })
	return out
}

// Missing returns every Kind with no registered Def.
func (r *Registry) Missing() []Kind {
	var out []Kind
	for _, k := range All() {
		if _, ok := r.defs[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Def,
// and returns a populated Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
