// Package levels loads the set of authored maps the server can run.
package levels

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"mazebots.ai/internal/sim/cells"
)

//go:embed levels.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("levels.schema.json", schemaJSON)

type Config struct {
	DefaultLevelID string      `yaml:"default_level_id" json:"default_level_id"`
	Levels         []LevelSpec `yaml:"levels" json:"levels"`
}

type LevelSpec struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	SeedOffset int64  `yaml:"seed_offset,omitempty" json:"seed_offset,omitempty"`
	Map        string `yaml:"map" json:"map"`
}

// DemoMap is the built-in level used when no levels.yaml is configured.
const DemoMap = `█╞╦╗╔╦╩╡╚══════╗
╞═╬╣╠╬╦╡╔══════╝
██║║╠╣║█║╔═════╗
╞═╩╝╠╣║█║║╔════╝
╔╗╔╗╚╝║█║║║╔╦╦╦╗
╝╚╝╚╗╔╝█║║╚╩╩╩╩╝
████╚╝██║╚═════╗
████╔╗██╚══════╝
`

func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := validateSchema(b); err != nil {
		return cfg, fmt.Errorf("levels.yaml: %w", err)
	}
	cfg = Config{}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("levels.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("levels.yaml: %w", err)
	}
	return cfg, nil
}

// validateSchema checks the raw document shape. The yaml tree is round-tripped
// through JSON so the validator sees plain JSON values.
func validateSchema(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	jb, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(jb, &v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

func defaults() Config {
	return Config{
		DefaultLevelID: "demo",
		Levels: []LevelSpec{
			{ID: "demo", Name: "Demo", Map: DemoMap},
		},
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	for i := range c.Levels {
		c.Levels[i].ID = strings.TrimSpace(c.Levels[i].ID)
		if c.Levels[i].Name == "" {
			c.Levels[i].Name = c.Levels[i].ID
		}
	}
	if strings.TrimSpace(c.DefaultLevelID) == "" && len(c.Levels) > 0 {
		c.DefaultLevelID = c.Levels[0].ID
	}
}

func (c Config) Validate() error {
	c.Normalize()
	if len(c.Levels) == 0 {
		return fmt.Errorf("levels must not be empty")
	}
	seen := map[string]bool{}
	for _, l := range c.Levels {
		if l.ID == "" {
			return fmt.Errorf("level id must not be empty")
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate level id: %s", l.ID)
		}
		seen[l.ID] = true
		if _, err := cells.Parse(l.Map); err != nil {
			return fmt.Errorf("level %s map: %w", l.ID, err)
		}
	}
	if !seen[c.DefaultLevelID] {
		return fmt.Errorf("default_level_id %q not found in levels", c.DefaultLevelID)
	}
	return nil
}

func (c Config) LevelByID(id string) (LevelSpec, bool) {
	for _, l := range c.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return LevelSpec{}, false
}

// Cells parses the level map.
func (l LevelSpec) Cells() (*cells.Cells, error) {
	g, err := cells.Parse(l.Map)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return g, nil
}
