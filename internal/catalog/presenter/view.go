package presenter

import "tembea/pkg/model"

const EmptyMessage = "No results found"

type View struct {
	Category      model.Category `json:"category"`
	Renderer      Renderer       `json:"renderer"`
	State         State          `json:"state"`
	Items         []model.Card   `json:"items"`
	EmptyMessage  string         `json:"empty_message,omitempty"`
	PartialError  bool           `json:"partial_error"`
	FailedSources []string       `json:"failed_sources,omitempty"`
	// Counts holds the unfiltered item count per category slug.
	Counts map[string]int `json:"counts"`

	page *Page
}

// Dispatch selects the source list for category from results, which are
// keyed by source category, and wraps it in a settled view.
func Dispatch(category model.Category, results map[model.Category][]model.Card, failed []string) (*View, error) {
	route, err := RouteFor(category)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(routes))
	for _, c := range model.AllCategories() {
		counts[c.Slug()] = len(results[routes[c].Source])
	}

	items := results[route.Source]
	if items == nil {
		items = []model.Card{}
	}

	v := &View{
		Category:      category,
		Renderer:      route.Renderer,
		Items:         items,
		FailedSources: failed,
		Counts:        counts,
		page:          NewPage(),
	}
	if err := v.settle(); err != nil {
		return nil, err
	}
	return v, nil
}

// Refine replaces the items with fn(items) and settles the view again.
func (v *View) Refine(fn func([]model.Card) []model.Card) error {
	v.Items = fn(v.Items)
	if v.Items == nil {
		v.Items = []model.Card{}
	}
	return v.settle()
}

func (v *View) settle() error {
	if err := v.page.Begin(); err != nil {
		return err
	}
	if err := v.page.Resolve(len(v.Items), len(v.FailedSources) > 0); err != nil {
		return err
	}
	v.State = v.page.State()
	v.PartialError = v.page.PartialError()
	v.EmptyMessage = ""
	if v.State == StateEmpty {
		v.EmptyMessage = EmptyMessage
	}
	return nil
}
