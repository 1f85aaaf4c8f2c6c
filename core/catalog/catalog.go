package catalog

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/iwneis/neishelper/fs"
)

var ErrDuplicateID = errors.New("duplicate id")

// Dataset is the hand-authored content a Catalog is built from.
// It may be split over several YAML documents; see Decode.
type Dataset struct {
	Items       []Item            `yaml:"items"`
	Schedules   []MonthlySchedule `yaml:"schedules"`
	FAQs        []FAQ             `yaml:"faqs"`
	PopularFAQs []string          `yaml:"popularFaqs"`
	Guides      []Guide           `yaml:"guides"`
	Resources   []Resource        `yaml:"resources"`
	Briefings   []Briefing        `yaml:"briefings"`
}

func (ds *Dataset) merge(other Dataset) {
	ds.Items = append(ds.Items, other.Items...)
	ds.Schedules = append(ds.Schedules, other.Schedules...)
	ds.FAQs = append(ds.FAQs, other.FAQs...)
	ds.PopularFAQs = append(ds.PopularFAQs, other.PopularFAQs...)
	ds.Guides = append(ds.Guides, other.Guides...)
	ds.Resources = append(ds.Resources, other.Resources...)
	ds.Briefings = append(ds.Briefings, other.Briefings...)
}

// Decode reads every YAML document of `r` into a single Dataset.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	for {
		var doc Dataset
		err := dec.Decode(&doc)
		if err == io.EOF {
			return ds, nil
		}
		if err != nil {
			return Dataset{}, errors.Wrap(err, "decoding catalog yaml")
		}
		ds.merge(doc)
	}
}

// Catalog is the read-only dataset the application serves. It is safe for concurrent use.
type Catalog struct {
	items       []Item
	itemsByID   map[string]Item
	schedules   []MonthlySchedule
	faqs        []FAQ
	popularFAQs []string
	guides      []Guide
	resources   []Resource
	briefings   []Briefing
}

// Load builds the Catalog from the embedded dataset.
func Load() (*Catalog, error) {
	return LoadFS(appfs.FS, "catalog")
}

// LoadFS builds a Catalog from every *.yaml file of `dir`, in lexical file order.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.Wrap(err, "listing catalog files")
	}
	sort.Strings(paths)

	var ds Dataset
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", p)
		}
		doc, err := Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", p)
		}
		ds.merge(doc)
	}
	return New(ds)
}

// New validates `ds` and builds a Catalog from it.
func New(ds Dataset) (*Catalog, error) {
	if err := validate(ds); err != nil {
		return nil, err
	}

	c := &Catalog{
		items:       ds.Items,
		itemsByID:   make(map[string]Item, len(ds.Items)),
		schedules:   ds.Schedules,
		faqs:        ds.FAQs,
		popularFAQs: ds.PopularFAQs,
		guides:      ds.Guides,
		resources:   ds.Resources,
		briefings:   ds.Briefings,
	}
	for _, it := range ds.Items {
		c.itemsByID[it.ID] = it
	}
	for i, b := range c.briefings {
		if b.Notices == nil {
			c.briefings[i].Notices = []string{}
		}
		if b.Guides == nil {
			c.briefings[i].Guides = []string{}
		}
	}
	sort.SliceStable(c.schedules, func(i, j int) bool { return c.schedules[i].Month < c.schedules[j].Month })
	return c, nil
}

func validate(ds Dataset) error {
	// items and sub-items share one id namespace
	ids := make(map[string]struct{})
	checkID := func(id string) error {
		if id == "" {
			return errors.New("empty checklist id")
		}
		if _, dup := ids[id]; dup {
			return errors.Wrapf(ErrDuplicateID, "%q", id)
		}
		ids[id] = struct{}{}
		return nil
	}
	for _, it := range ds.Items {
		if err := checkID(it.ID); err != nil {
			return err
		}
		for _, sub := range it.SubItems {
			if err := checkID(sub.ID); err != nil {
				return err
			}
		}
		if !it.Period.Valid() {
			return errors.Wrapf(ErrUnknownPeriod, "item %q: %q", it.ID, it.Period)
		}
		if !it.Category.Valid() {
			return errors.Wrapf(ErrUnknownCategory, "item %q: %q", it.ID, it.Category)
		}
	}

	months := make(map[int]struct{})
	for _, s := range ds.Schedules {
		if s.Month < 1 || s.Month > 12 {
			return errors.Errorf("schedule %q: month %d out of range", s.Title, s.Month)
		}
		if _, dup := months[s.Month]; dup {
			return errors.Errorf("schedule for month %d defined twice", s.Month)
		}
		months[s.Month] = struct{}{}
		if !s.Period.Valid() {
			return errors.Wrapf(ErrUnknownPeriod, "schedule %d: %q", s.Month, s.Period)
		}
		for _, t := range s.Tasks {
			if !t.Category.Valid() {
				return errors.Wrapf(ErrUnknownCategory, "schedule %d task %q: %q", s.Month, t.Title, t.Category)
			}
			if !t.Priority.Valid() {
				return errors.Errorf("schedule %d task %q: unknown priority %q", s.Month, t.Title, t.Priority)
			}
		}
	}

	faqIDs := make(map[string]struct{})
	for _, f := range ds.FAQs {
		if _, dup := faqIDs[f.ID]; dup {
			return errors.Wrapf(ErrDuplicateID, "faq %q", f.ID)
		}
		faqIDs[f.ID] = struct{}{}
		if !f.Category.Valid() {
			return errors.Wrapf(ErrUnknownCategory, "faq %q: %q", f.ID, f.Category)
		}
	}
	for _, id := range ds.PopularFAQs {
		if _, ok := faqIDs[id]; !ok {
			return errors.Errorf("popular faq %q is not defined", id)
		}
	}

	guideIDs := make(map[string]struct{})
	for _, g := range ds.Guides {
		if _, dup := guideIDs[g.ID]; dup {
			return errors.Wrapf(ErrDuplicateID, "guide %q", g.ID)
		}
		guideIDs[g.ID] = struct{}{}
		if !g.Category.Valid() {
			return errors.Wrapf(ErrUnknownCategory, "guide %q: %q", g.ID, g.Category)
		}
	}

	briefed := make(map[Period]struct{})
	for _, b := range ds.Briefings {
		if !b.Period.Valid() {
			return errors.Wrapf(ErrUnknownPeriod, "briefing %q", b.Period)
		}
		if _, dup := briefed[b.Period]; dup {
			return errors.Errorf("briefing for %s defined twice", b.Period)
		}
		briefed[b.Period] = struct{}{}
		for _, id := range b.Guides {
			if _, ok := guideIDs[id]; !ok {
				return errors.Errorf("briefing %s: guide %q is not defined", b.Period, id)
			}
		}
	}
	return nil
}

// Items returns every checklist item, all periods included, in declaration order.
func (c *Catalog) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.itemsByID[id]
	return it, ok
}

// ItemsForPeriod returns the items of period `p` sorted by Order (stable on declaration order).
func (c *Catalog) ItemsForPeriod(p Period) []Item {
	items := make([]Item, 0)
	for _, it := range c.items {
		if it.Period == p {
			items = append(items, it)
		}
	}
	SortByOrder(items)
	return items
}
