package validator

import (
	"errors"
	"tembea/pkg/logger"
	"tembea/pkg/model"
	"testing"
)

func TestSearchValidator_Validate(t *testing.T) {
	v := NewSearchValidator(logger.Discard())

	tests := []struct {
		name       string
		req        model.SearchRequest
		wantFields []string
	}{
		{name: "empty request", req: model.SearchRequest{}},
		{name: "category display name", req: model.SearchRequest{Category: "Things To Do"}},
		{name: "category slug", req: model.SearchRequest{Category: "food-nightlife"}},
		{name: "unknown category", req: model.SearchRequest{Category: "cruises"}, wantFields: []string{"category"}},
		{name: "valid origin", req: model.SearchRequest{Lat: "-1.2921", Lng: "36.8219"}},
		{name: "lat without lng", req: model.SearchRequest{Lat: "-1.2921"}, wantFields: []string{"lng"}},
		{name: "lng without lat", req: model.SearchRequest{Lng: "36.8219"}, wantFields: []string{"lat"}},
		{name: "lat out of range", req: model.SearchRequest{Lat: "95", Lng: "36.8"}, wantFields: []string{"lat"}},
		{name: "lng not a number", req: model.SearchRequest{Lat: "1", Lng: "east"}, wantFields: []string{"lng"}},
		{name: "location too long", req: model.SearchRequest{Location: string(make([]byte, 121))}, wantFields: []string{"location"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(verrs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %v", len(tt.wantFields), verrs)
			}
			for i, f := range tt.wantFields {
				if verrs[i].Field != f {
					t.Errorf("error %d: expected field %s, got %s", i, f, verrs[i].Field)
				}
			}
		})
	}
}

func TestSearchRequest_Query(t *testing.T) {
	q, err := model.SearchRequest{Category: "things-to-do", Sub: "Boat", Lat: "-1.29", Lng: "36.82"}.Query()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ActiveCategory != model.CategoryThingsToDo {
		t.Errorf("expected Things To Do, got %s", q.ActiveCategory)
	}
	if q.Origin == nil || q.Origin.Lat != -1.29 || q.Origin.Lng != 36.82 {
		t.Errorf("unexpected origin %+v", q.Origin)
	}

	q, err = model.SearchRequest{}.Query()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ActiveCategory != model.CategoryStays || q.Origin != nil {
		t.Errorf("expected Stays without origin, got %+v", q)
	}
}
