package inventory

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedItems is the catalog used when no other source is configured.
func SeedItems() []Item {
	return []Item{
		{ID: "SKU-001", Name: "planchas de yeso", Aliases: []string{"yeso", "planchas yeso"}, Available: 50, Location: "almacén A"},
		{ID: "SKU-002", Name: "tornillos 4mm", Aliases: []string{"tornillos", "tornillo"}, Available: 200, Location: "almacén B"},
		{ID: "SKU-003", Name: "cemento saco 25kg", Aliases: []string{"cemento 25kg", "saco cemento"}, Available: 30, Location: "almacén A"},
	}
}

type catalogFile struct {
	Items []Item `yaml:"items"`
}

// LoadFile reads a YAML catalog of the form:
//
//	items:
//	  - id: SKU-001
//	    name: planchas de yeso
//	    aliases: [yeso]
//	    available: 50
//	    location: almacén A
func LoadFile(path string) ([]Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return DecodeYAML(raw)
}

func DecodeYAML(raw []byte) ([]Item, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return f.Items, nil
}
