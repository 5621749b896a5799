// Package refdata ships the immutable genre and MPA-rating catalogs.
// The catalog is embedded at build time so both storage backends start from
// the same reference rows.
package refdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"filmgraph/internal/models"
)

//go:embed catalog.yml
var catalogYAML []byte

type catalog struct {
	Genres     []models.Genre     `yaml:"genres"`
	MpaRatings []models.MpaRating `yaml:"mpa_ratings"`
}

// Load parses the embedded catalog and returns the genre and MPA rows.
func Load() ([]models.Genre, []models.MpaRating, error) {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, nil, fmt.Errorf("failed to parse reference catalog: %w", err)
	}
	if len(c.Genres) == 0 || len(c.MpaRatings) == 0 {
		return nil, nil, fmt.Errorf("reference catalog is incomplete: %d genres, %d ratings",
			len(c.Genres), len(c.MpaRatings))
	}
	return c.Genres, c.MpaRatings, nil
}
