package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

//go:embed plants.yaml
var embeddedPlants []byte

// Catalog is the ordered, read-only plant list.
// Order is curated easy to advanced and breaks ties in recommendations.
type Catalog struct {
	plants []domain.Plant
	bySlug map[string]int
}

// New builds a catalog from plants in the given order
func New(plants []domain.Plant) (*Catalog, error) {
	c := &Catalog{
		plants: slices.Clone(plants),
		bySlug: make(map[string]int, len(plants)),
	}

	names := make(map[string]bool, len(plants))
	for i, p := range c.plants {
		if names[p.Name] {
			return nil, fmt.Errorf("duplicate plant name %q", p.Name)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate plant slug %q", p.Slug)
		}
		names[p.Name] = true
		c.bySlug[p.Slug] = i
	}

	return c, nil
}

// Load returns the embedded catalog
func Load() (*Catalog, error) {
	return LoadWithOverlays("")
}

// LoadWithOverlays returns the embedded catalog followed by the plants of
// every file matching pattern (doublestar syntax, e.g. "catalog/**/*.yaml").
// Overlay files are appended in path order.
func LoadWithOverlays(pattern string) (*Catalog, error) {
	v, err := newSchemaValidator()
	if err != nil {
		return nil, err
	}

	plants, err := decode(v, "plants.yaml", embeddedPlants)
	if err != nil {
		return nil, err
	}

	if pattern != "" {
		paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand catalog pattern %q: %w", pattern, err)
		}
		slices.Sort(paths)

		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read catalog overlay: %w", err)
			}
			extra, err := decode(v, path, data)
			if err != nil {
				return nil, err
			}
			plants = append(plants, extra...)
		}
	}

	return New(plants)
}

// decode validates each record against the schema before decoding it
func decode(v *schemaValidator, source string, data []byte) ([]domain.Plant, error) {
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	for i, record := range records {
		if err := v.validate(record); err != nil {
			return nil, fmt.Errorf("%s: plant #%d (%v): %w", source, i+1, record["name"], err)
		}
	}

	var plants []domain.Plant
	if err := yaml.Unmarshal(data, &plants); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return plants, nil
}

// All returns every plant in catalog order
func (c *Catalog) All() []domain.Plant {
	return slices.Clone(c.plants)
}

// Len returns the number of plants
func (c *Catalog) Len() int {
	return len(c.plants)
}

// BySlug finds a plant by its URL slug
func (c *Catalog) BySlug(slug string) (domain.Plant, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.Plant{}, domain.ErrPlantNotFound
	}
	return c.plants[i], nil
}

// ByCareLevel returns the plants of one care level, in catalog order
func (c *Catalog) ByCareLevel(level domain.CareLevel) []domain.Plant {
	var out []domain.Plant
	for _, p := range c.plants {
		if p.CareLevel == level {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to n other plants with the same care level
func (c *Catalog) Related(plant domain.Plant, n int) []domain.Plant {
	var out []domain.Plant
	for _, p := range c.plants {
		if len(out) == n {
			break
		}
		if p.CareLevel == plant.CareLevel && p.Name != plant.Name {
			out = append(out, p)
		}
	}
	return out
}
