package catalog

import "sort"

type (
	SubItem struct {
		ID   string `yaml:"id" json:"id"`
		Text string `yaml:"text" json:"text"`
	}

	// Item is an immutable checklist item definition.
	// Its own checked flag is independent of its sub-items' flags.
	Item struct {
		ID       string    `yaml:"id" json:"id"`
		Text     string    `yaml:"text" json:"text"`
		Category Category  `yaml:"category" json:"category"`
		Period   Period    `yaml:"period" json:"period"`
		Order    int       `yaml:"order" json:"order"`
		SubItems []SubItem `yaml:"subItems,omitempty" json:"subItems,omitempty"`
	}

	CategoryGroup struct {
		Category Category `json:"category"`
		Label    string   `json:"label"`
		Items    []Item   `json:"items"`
	}
)

func (it Item) HasSubItems() bool {
	return len(it.SubItems) > 0
}

// SortByOrder sorts items ascending by Order in place. Ties keep their current relative order.
func SortByOrder(items []Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
}

// GroupByCategory groups items by category, in the order categories are first seen.
func GroupByCategory(items []Item) []CategoryGroup {
	idx := make(map[Category]int)
	groups := make([]CategoryGroup, 0)
	for _, it := range items {
		i, ok := idx[it.Category]
		if !ok {
			i = len(groups)
			idx[it.Category] = i
			groups = append(groups, CategoryGroup{Category: it.Category, Label: it.Category.Label()})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// FilterByCategory returns the items of category `c`, preserving order.
// CategoryAll (or an empty category) returns `items` unchanged.
func FilterByCategory(items []Item, c Category) []Item {
	if c == CategoryAll || c == "" {
		return items
	}
	filtered := make([]Item, 0)
	for _, it := range items {
		if it.Category == c {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// ScopeIDs lists the ids of `items` and of all their sub-items.
// Resetting a scope must name sub-item ids explicitly, nothing cascades from a parent.
func ScopeIDs(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
		for _, sub := range it.SubItems {
			ids = append(ids, sub.ID)
		}
	}
	return ids
}
