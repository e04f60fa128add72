package presenter

import (
	catalogerrors "tembea/internal/catalog/errors"
	"tembea/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteFor_Exhaustive(t *testing.T) {
	want := map[model.Category]Renderer{
		model.CategoryStays:         RendererStay,
		model.CategoryExperiences:   RendererExperience,
		model.CategoryThingsToDo:    RendererExperience,
		model.CategoryDestinations:  RendererDestination,
		model.CategoryFoodNightlife: RendererFood,
		model.CategoryTransport:     RendererTransport,
		model.CategoryTravelGuide:   RendererGuide,
		model.CategoryEvents:        RendererEvent,
	}

	for _, c := range model.AllCategories() {
		r, err := RouteFor(c)
		require.NoError(t, err, c)
		assert.Equal(t, want[c], r.Renderer, c)
	}

	things, _ := RouteFor(model.CategoryThingsToDo)
	assert.Equal(t, model.CategoryExperiences, things.Source)

	_, err := RouteFor(model.Category("Cruises"))
	assert.ErrorIs(t, err, catalogerrors.ErrUnknownCategory)
}

func TestDispatch(t *testing.T) {
	results := map[model.Category][]model.Card{
		model.CategoryStays:        {{ID: "s1"}, {ID: "s2"}},
		model.CategoryExperiences:  {{ID: "e1"}},
		model.CategoryDestinations: {},
	}

	tests := []struct {
		name        string
		category    model.Category
		failed      []string
		wantIDs     int
		wantState   State
		wantPartial bool
		wantMessage string
	}{
		{"populated", model.CategoryStays, nil, 2, StatePopulated, false, ""},
		{"shared source", model.CategoryThingsToDo, nil, 1, StatePopulated, false, ""},
		{"empty", model.CategoryEvents, nil, 0, StateEmpty, false, EmptyMessage},
		{"partial with populated", model.CategoryStays, []string{"events"}, 2, StatePopulated, true, ""},
		{"partial with empty", model.CategoryEvents, []string{"events"}, 0, StateEmpty, true, EmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Dispatch(tt.category, results, tt.failed)
			require.NoError(t, err)
			assert.Len(t, v.Items, tt.wantIDs)
			assert.NotNil(t, v.Items)
			assert.Equal(t, tt.wantState, v.State)
			assert.Equal(t, tt.wantPartial, v.PartialError)
			assert.Equal(t, tt.wantMessage, v.EmptyMessage)
			assert.Equal(t, 2, v.Counts["stays"])
			assert.Equal(t, 1, v.Counts["things-to-do"])
			assert.Equal(t, 0, v.Counts["events"])
			assert.Len(t, v.Counts, 8)
		})
	}
}

func TestView_Refine(t *testing.T) {
	v, err := Dispatch(model.CategoryStays, map[model.Category][]model.Card{
		model.CategoryStays: {{ID: "s1"}},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, StatePopulated, v.State)

	require.NoError(t, v.Refine(func([]model.Card) []model.Card { return nil }))

	assert.Equal(t, StateEmpty, v.State)
	assert.Equal(t, EmptyMessage, v.EmptyMessage)
	assert.NotNil(t, v.Items)
	assert.Equal(t, 1, v.Counts["stays"], "counts stay unfiltered")
}

func TestPage_Transitions(t *testing.T) {
	p := NewPage()
	assert.Equal(t, StateIdle, p.State())

	assert.ErrorIs(t, p.Resolve(1, false), catalogerrors.ErrInvalidTransition)

	require.NoError(t, p.Begin())
	assert.Equal(t, StateLoading, p.State())
	assert.ErrorIs(t, p.Begin(), catalogerrors.ErrInvalidTransition)

	require.NoError(t, p.Resolve(3, true))
	assert.Equal(t, StatePopulated, p.State())
	assert.True(t, p.PartialError())
	assert.ErrorIs(t, p.Resolve(0, false), catalogerrors.ErrInvalidTransition)

	require.NoError(t, p.Begin())
	assert.False(t, p.PartialError())
	require.NoError(t, p.Resolve(0, false))
	assert.Equal(t, StateEmpty, p.State())
}

func TestCategories(t *testing.T) {
	got := Categories(func(c model.Category) bool { return c == model.CategoryExperiences })

	require.Len(t, got, 8)
	assert.Equal(t, "Stays", got[0].Name)
	assert.Equal(t, "stays", got[0].Slug)
	assert.Equal(t, RendererStay, got[0].Renderer)
	assert.False(t, got[0].Live)
	assert.True(t, got[1].Live)
}
