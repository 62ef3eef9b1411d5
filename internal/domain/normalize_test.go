package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

// fromJSON decodes a raw feed payload the way the feed clients do.
func fromJSON(t *testing.T, payload string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("invalid test payload: %v", err)
	}
	return raw
}

func TestNormalize_FullRecord(t *testing.T) {
	raw := fromJSON(t, `{
		"id": "ladakh-7d",
		"title": "Leh Ladakh Expedition",
		"route": "Leh - Nubra - Pangong",
		"description": "High altitude circuit",
		"location": "India",
		"locationType": "domestic",
		"category": "Adventure, Trekking | Himalaya",
		"price": "₹32,500",
		"duration": "7D/6N",
		"tags": ["bike", "camping"],
		"availableDates": [
			{"month": "June", "dates": [
				{"date": "12 Jun", "enabled": true},
				{"date": "19 Jun", "enabled": false},
				{"range": "26 Jun - 2 Jul"}
			]}
		],
		"gallery": [
			"https://cdn.example.com/leh.jpg",
			{"srcSetWebp": "leh.webp 1x", "srcFallback": "leh.png"}
		]
	}`)

	r := Normalize(raw)

	if r.ExternalID != "ladakh-7d" {
		t.Errorf("expected external id 'ladakh-7d', got %q", r.ExternalID)
	}
	if r.Title != "Leh Ladakh Expedition" {
		t.Errorf("unexpected title %q", r.Title)
	}
	wantCategories := []string{"Adventure", "Trekking", "Himalaya"}
	if !reflect.DeepEqual(r.Categories, wantCategories) {
		t.Errorf("categories = %v, want %v", r.Categories, wantCategories)
	}
	if len(r.Availability) != 1 || len(r.Availability[0].Dates) != 3 {
		t.Fatalf("unexpected availability shape: %+v", r.Availability)
	}
	dates := r.Availability[0].Dates
	if !dates[0].Enabled {
		t.Error("explicitly enabled date should be enabled")
	}
	if dates[1].Enabled {
		t.Error("explicitly disabled date should be disabled")
	}
	if !dates[2].Enabled {
		t.Error("date without enabled flag should default to enabled")
	}
	if dates[2].Label != "26 Jun - 2 Jul" {
		t.Errorf("range label not picked up, got %q", dates[2].Label)
	}
	if len(r.Gallery) != 2 {
		t.Fatalf("expected 2 gallery entries, got %d", len(r.Gallery))
	}
	if r.Gallery[0].SrcFallback != "https://cdn.example.com/leh.jpg" {
		t.Errorf("bare string gallery entry not unified: %+v", r.Gallery[0])
	}
	if r.Gallery[1].SrcSetWebp != "leh.webp 1x" || r.Gallery[1].SrcFallback != "leh.png" {
		t.Errorf("object gallery entry not unified: %+v", r.Gallery[1])
	}
}

func TestNormalize_NumericID(t *testing.T) {
	raw := fromJSON(t, `{"id": 42, "title": "Numbered", "price": 12500}`)

	r := Normalize(raw)
	if r.ExternalID != "42" {
		t.Errorf("numeric id should coerce to string, got %q", r.ExternalID)
	}
	if r.Price != "12500" {
		t.Errorf("numeric price should coerce to string, got %q", r.Price)
	}
	if amount, ok := r.PriceAmount(); !ok || amount != 12500 {
		t.Errorf("coerced price should parse, got %v %v", amount, ok)
	}
}

func TestNormalize_CategoryArray(t *testing.T) {
	raw := fromJSON(t, `{"category": ["Beach", " Islands "]}`)

	r := Normalize(raw)
	want := []string{"Beach", "Islands"}
	if !reflect.DeepEqual(r.Categories, want) {
		t.Errorf("categories = %v, want %v", r.Categories, want)
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"nil input", nil},
		{"empty object", map[string]any{}},
		{"wrong types everywhere", fromJSON(t, `{
			"id": {"nested": true},
			"title": 7,
			"category": 3.5,
			"tags": "not-an-array",
			"availableDates": "nope",
			"gallery": {"also": "nope"},
			"price": null,
			"duration": null
		}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Normalize(tt.raw) // must not panic
			if r == nil {
				t.Fatal("Normalize returned nil")
			}
			if r.HasEnabledDeparture() {
				t.Error("record without availability reports a departure")
			}
			if _, ok := r.PriceAmount(); ok {
				t.Error("absent price should not parse")
			}
			if r.DurationDays() != DurationUnknown {
				t.Error("absent duration should be unknown")
			}
		})
	}
}

func TestNormalize_WrongTypedTitleStaysEmpty(t *testing.T) {
	r := Normalize(fromJSON(t, `{"title": 7}`))
	// Wrong-typed fields become absent, never defaults that look like data.
	if r.Title != "" {
		t.Errorf("expected empty title, got %q", r.Title)
	}
}
