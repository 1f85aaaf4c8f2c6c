package catalog

// Briefing is the dashboard content shown while a period is current.
type Briefing struct {
	Period      Period   `yaml:"period" json:"period"`
	Description string   `yaml:"description" json:"description"`
	Notices     []string `yaml:"notices" json:"notices"`
	Guides      []string `yaml:"guides" json:"guides"` // recommended guide ids
}

// Briefing returns the briefing of period `p`. A period without one gets an empty briefing.
func (c *Catalog) Briefing(p Period) Briefing {
	for _, b := range c.briefings {
		if b.Period == p {
			return b
		}
	}
	return Briefing{Period: p, Notices: []string{}, Guides: []string{}}
}

// RecommendedGuides returns the guides recommended for period `p`, in briefing order.
func (c *Catalog) RecommendedGuides(p Period) []Guide {
	ids := c.Briefing(p).Guides
	guides := make([]Guide, 0, len(ids))
	for _, id := range ids {
		if g, err := c.Guide(id); err == nil {
			guides = append(guides, g)
		}
	}
	return guides
}
