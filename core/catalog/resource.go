package catalog

// Resource is an external reference (site, phone line, community) listed next to the FAQs.
type Resource struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"` // official | education | community | support
}

var resourceCategoryLabels = map[string]string{
	"official":  "공식 자료",
	"education": "교육청 자료",
	"community": "커뮤니티",
	"support":   "지원/상담",
}

func ResourceCategoryLabel(category string) string {
	return resourceCategoryLabels[category]
}

func (c *Catalog) Resources() []Resource {
	resources := make([]Resource, len(c.resources))
	copy(resources, c.resources)
	return resources
}
