package domain

import (
	"strconv"
	"strings"
)

// categoryDelimiters splits legacy delimited category strings.
var categoryDelimiters = []string{",", "|", ";"}

// Normalize coerces a raw feed object into the canonical Record shape.
//
// Feeds are loosely schemed: fields may be missing, wrongly typed, or carry
// legacy shapes (delimited category strings, bare-string gallery entries,
// numeric ids and prices). Normalize never panics; anything it cannot make
// sense of is left zero-valued so downstream filters fail closed.
func Normalize(raw map[string]any) *Record {
	r := &Record{}
	if raw == nil {
		return r
	}

	// id and price legitimately arrive as numbers in older feed dumps; the
	// text fields do not, so a wrong-typed title stays empty rather than
	// becoming a default that looks like real data.
	r.ExternalID = coerceString(raw["id"])
	r.Price = coerceString(raw["price"])
	r.Title = stringOnly(raw["title"])
	r.Route = stringOnly(raw["route"])
	r.Description = stringOnly(raw["description"])
	r.Location = stringOnly(raw["location"])
	r.LocationType = stringOnly(raw["locationType"])
	r.Duration = stringOnly(raw["duration"])
	r.Categories = coerceCategories(raw["category"])
	r.Tags = coerceStringSlice(raw["tags"])
	r.Availability = coerceAvailability(raw["availableDates"])
	r.Gallery = coerceGallery(raw["gallery"])

	return r
}

// stringOnly returns the value when it is a string, otherwise "".
func stringOnly(v any) string {
	s, _ := v.(string)
	return s
}

// coerceString converts a raw JSON value to a string. Numbers are formatted
// without a trailing ".0"; anything else becomes the empty string.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// coerceCategories accepts either an array of category names or a single
// delimited string ("Adventure, Trekking | Himalaya") and returns trimmed
// pieces with original casing.
func coerceCategories(v any) []string {
	switch t := v.(type) {
	case []any:
		return coerceStringSlice(t)
	case string:
		return splitCategories(t)
	default:
		return nil
	}
}

// splitCategories splits a delimited category string into trimmed pieces.
func splitCategories(s string) []string {
	for _, delim := range categoryDelimiters[1:] {
		s = strings.ReplaceAll(s, delim, categoryDelimiters[0])
	}
	pieces := strings.Split(s, categoryDelimiters[0])
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// coerceStringSlice converts a raw JSON array to trimmed non-empty strings.
func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(coerceString(item)); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// coerceAvailability converts the raw availableDates shape:
//
//	[{month: "May", dates: [{date: "12 May", enabled: true}, ...]}, ...]
//
// A date entry is enabled unless the feed explicitly set enabled to false.
// Entries may label the slot under "date" or "range".
func coerceAvailability(v any) []MonthAvailability {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]MonthAvailability, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		month := MonthAvailability{Month: coerceString(obj["month"])}
		dates, _ := obj["dates"].([]any)
		for _, d := range dates {
			dateObj, ok := d.(map[string]any)
			if !ok {
				continue
			}
			label := coerceString(dateObj["date"])
			if label == "" {
				label = coerceString(dateObj["range"])
			}
			enabled := true
			if flag, isBool := dateObj["enabled"].(bool); isBool && !flag {
				enabled = false
			}
			month.Dates = append(month.Dates, DepartureDate{Label: label, Enabled: enabled})
		}
		out = append(out, month)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// coerceGallery unifies gallery entries. Legacy feeds send bare URL strings,
// newer ones send {srcSetWebp, srcFallback} objects.
func coerceGallery(v any) []GalleryImage {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]GalleryImage, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if t != "" {
				out = append(out, GalleryImage{SrcFallback: t})
			}
		case map[string]any:
			img := GalleryImage{
				SrcSetWebp:  coerceString(t["srcSetWebp"]),
				SrcFallback: coerceString(t["srcFallback"]),
			}
			if img.SrcSetWebp != "" || img.SrcFallback != "" {
				out = append(out, img)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
