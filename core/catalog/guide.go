package catalog

import "github.com/pkg/errors"

var ErrGuideNotFound = errors.New("guide not found")

type (
	Step struct {
		Order       int      `yaml:"order" json:"order"`
		Title       string   `yaml:"title" json:"title"`
		Description string   `yaml:"description" json:"description"`
		MenuPath    string   `yaml:"menuPath,omitempty" json:"menuPath,omitempty"`
		Substeps    []string `yaml:"substeps,omitempty" json:"substeps,omitempty"`
		Warning     string   `yaml:"warning,omitempty" json:"warning,omitempty"`
		Tip         string   `yaml:"tip,omitempty" json:"tip,omitempty"`
	}

	GuideSection struct {
		Title    string   `yaml:"title" json:"title"`
		Content  string   `yaml:"content" json:"content"`
		Steps    []Step   `yaml:"steps,omitempty" json:"steps,omitempty"`
		Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
		Tips     []string `yaml:"tips,omitempty" json:"tips,omitempty"`
		MenuPath string   `yaml:"menuPath,omitempty" json:"menuPath,omitempty"`
	}

	Guide struct {
		ID          string         `yaml:"id" json:"id"`
		Title       string         `yaml:"title" json:"title"`
		Category    Category       `yaml:"category" json:"category"`
		Icon        string         `yaml:"icon" json:"icon"`
		Description string         `yaml:"description" json:"description"`
		Difficulty  string         `yaml:"difficulty" json:"difficulty"` // beginner | intermediate | advanced
		Sections    []GuideSection `yaml:"sections" json:"sections"`
	}
)

func (c *Catalog) Guides() []Guide {
	guides := make([]Guide, len(c.guides))
	copy(guides, c.guides)
	return guides
}

func (c *Catalog) Guide(id string) (Guide, error) {
	for _, g := range c.guides {
		if g.ID == id {
			return g, nil
		}
	}
	return Guide{}, errors.Wrapf(ErrGuideNotFound, "%q", id)
}
