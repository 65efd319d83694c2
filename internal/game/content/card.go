package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
)

// decodeStrict unmarshals one YAML document into v, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// ParseCard parses and validates a single card from raw YAML bytes.
//
// Postcondition: Returns a card with a non-empty ID and name and at least one
// ability, or an error naming the first offending field.
func ParseCard(data []byte) (*combat.Card, error) {
	var doc cardDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing card YAML: %w", err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("card: id must not be empty")
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("card %q: name must not be empty", doc.ID)
	}
	if len(doc.Abilities) == 0 {
		return nil, fmt.Errorf("card %q: at least one ability is required", doc.ID)
	}
	abs, err := abilities(doc.Abilities)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", doc.ID, err)
	}
	return &combat.Card{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: strings.TrimSpace(doc.Description),
		StaminaCost: doc.StaminaCost,
		Abilities:   abs,
	}, nil
}

// LoadCards reads every *.yaml file in dir as a card, in file name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all cards or the first parse error; on error the
// partial result is discarded.
func LoadCards(dir string) ([]*combat.Card, error) {
	return loadDir(dir, "card", ParseCard)
}

func loadDir[T any](dir, what string, parse func([]byte) (T, error)) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s dir %q: %w", what, dir, err)
	}
	var out []T
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		v, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		out = append(out, v)
	}
	return out, nil
}
