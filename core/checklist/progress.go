package checklist

import (
	"encoding/json"

	"github.com/iwneis/neishelper/core/catalog"
)

// Progress is a checked/total count over a set of catalog items.
type Progress struct {
	Checked int
	Total   int
}

// Percent rounds 100*Checked/Total half up; an empty set is 0%.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return (200*p.Checked + p.Total) / (2 * p.Total)
}

func (p Progress) Complete() bool {
	return p.Total > 0 && p.Checked == p.Total
}

func (p Progress) Add(o Progress) Progress {
	return Progress{Checked: p.Checked + o.Checked, Total: p.Total + o.Total}
}

func (p Progress) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Checked int `json:"checked"`
		Total   int `json:"total"`
		Percent int `json:"percent"`
	}{p.Checked, p.Total, p.Percent()})
}

// Count counts `items` and their sub-items against `state`.
// Each sub-item and each item counts once; a parent is never derived from its children.
func Count(items []catalog.Item, state State) Progress {
	var p Progress
	for _, it := range items {
		for _, sub := range it.SubItems {
			p.Total++
			if state[sub.ID] {
				p.Checked++
			}
		}
		p.Total++
		if state[it.ID] {
			p.Checked++
		}
	}
	return p
}

func CountPeriod(c *catalog.Catalog, period catalog.Period, state State) Progress {
	return Count(c.ItemsForPeriod(period), state)
}

func CountCategory(c *catalog.Catalog, period catalog.Period, category catalog.Category, state State) Progress {
	return Count(catalog.FilterByCategory(c.ItemsForPeriod(period), category), state)
}

// CountAll counts the whole catalog, PeriodAlways included.
func CountAll(c *catalog.Catalog, state State) Progress {
	return Count(c.Items(), state)
}

type (
	CategoryProgress struct {
		Category catalog.Category `json:"category"`
		Label    string           `json:"label"`
		Progress Progress         `json:"progress"`
	}

	PeriodProgress struct {
		Period     catalog.Period     `json:"period"`
		Label      string             `json:"label"`
		Progress   Progress           `json:"progress"`
		Categories []CategoryProgress `json:"categories"`
	}

	Report struct {
		Overall Progress         `json:"overall"`
		Periods []PeriodProgress `json:"periods"`
	}
)

// NewReport breaks progress down by period (the active ones, then PeriodAlways) and by category
// within each period, in first-seen category order.
func NewReport(c *catalog.Catalog, state State) Report {
	periods := append(append([]catalog.Period{}, catalog.ActivePeriods...), catalog.PeriodAlways)

	r := Report{
		Overall: CountAll(c, state),
		Periods: make([]PeriodProgress, 0, len(periods)),
	}
	for _, period := range periods {
		items := c.ItemsForPeriod(period)
		pp := PeriodProgress{
			Period:     period,
			Label:      period.Label(),
			Progress:   Count(items, state),
			Categories: make([]CategoryProgress, 0),
		}
		for _, g := range catalog.GroupByCategory(items) {
			pp.Categories = append(pp.Categories, CategoryProgress{
				Category: g.Category,
				Label:    g.Label,
				Progress: Count(g.Items, state),
			})
		}
		r.Periods = append(r.Periods, pp)
	}
	return r
}

func (r Report) Period(p catalog.Period) (PeriodProgress, bool) {
	for _, pp := range r.Periods {
		if pp.Period == p {
			return pp, true
		}
	}
	return PeriodProgress{}, false
}
