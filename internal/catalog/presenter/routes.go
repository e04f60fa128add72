package presenter

import (
	"fmt"
	catalogerrors "tembea/internal/catalog/errors"
	"tembea/pkg/model"
)

type Renderer string

const (
	RendererStay        Renderer = "stay-card"
	RendererExperience  Renderer = "experience-card"
	RendererDestination Renderer = "destination-card"
	RendererFood        Renderer = "food-card"
	RendererTransport   Renderer = "transport-card"
	RendererGuide       Renderer = "guide-card"
	RendererEvent       Renderer = "event-card"
)

// Route names the category whose source list feeds a view and the renderer
// that draws it.
type Route struct {
	Source   model.Category
	Renderer Renderer
}

var routes = map[model.Category]Route{
	model.CategoryStays:         {Source: model.CategoryStays, Renderer: RendererStay},
	model.CategoryExperiences:   {Source: model.CategoryExperiences, Renderer: RendererExperience},
	model.CategoryThingsToDo:    {Source: model.CategoryExperiences, Renderer: RendererExperience},
	model.CategoryDestinations:  {Source: model.CategoryDestinations, Renderer: RendererDestination},
	model.CategoryFoodNightlife: {Source: model.CategoryFoodNightlife, Renderer: RendererFood},
	model.CategoryTransport:     {Source: model.CategoryTransport, Renderer: RendererTransport},
	model.CategoryTravelGuide:   {Source: model.CategoryTravelGuide, Renderer: RendererGuide},
	model.CategoryEvents:        {Source: model.CategoryEvents, Renderer: RendererEvent},
}

func RouteFor(category model.Category) (Route, error) {
	r, ok := routes[category]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", catalogerrors.ErrUnknownCategory, category)
	}
	return r, nil
}

type CategoryInfo struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Renderer Renderer `json:"renderer"`
	Live     bool     `json:"live"`
}

// Categories lists every category in display order. live reports whether a
// category's source is pushed to stream subscribers.
func Categories(live func(model.Category) bool) []CategoryInfo {
	all := model.AllCategories()
	out := make([]CategoryInfo, 0, len(all))
	for _, c := range all {
		r := routes[c]
		out = append(out, CategoryInfo{
			Name:     c.String(),
			Slug:     c.Slug(),
			Renderer: r.Renderer,
			Live:     live != nil && live(c),
		})
	}
	return out
}
