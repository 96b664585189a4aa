package listing

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var skillsYAML []byte

// SkillTrack is one area of a skill guide.
type SkillTrack struct {
	Category  string   `yaml:"category"`
	Skills    []string `yaml:"skills"`
	Resources []string `yaml:"resources"`
}

type skillCatalog struct {
	Default string                  `yaml:"default"`
	Guides  map[string][]SkillTrack `yaml:"guides"`
}

var loadCatalog = sync.OnceValues(func() (*skillCatalog, error) {
	var c skillCatalog
	if err := yaml.Unmarshal(skillsYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse skill guides: %w", err)
	}
	return &c, nil
})

// SkillGuide returns the learning tracks for a profession. Professions
// without a guide of their own get the default one.
func SkillGuide(profession string) ([]SkillTrack, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	for name, tracks := range c.Guides {
		if strings.EqualFold(name, strings.TrimSpace(profession)) {
			return tracks, nil
		}
	}
	return c.Guides[c.Default], nil
}
