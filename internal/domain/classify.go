package domain

// shortTripMaxDays is the inclusive day-count ceiling for the short-trips
// section.
const shortTripMaxDays = 4

// Sections partitions a record set into the listing page's section buckets.
// Membership is mutually exclusive; Other is the exact complement of the
// first three within the input set.
type Sections struct {
	Short         []*Record `json:"short"`
	Domestic      []*Record `json:"domestic"`
	International []*Record `json:"international"`
	Other         []*Record `json:"other"`
}

// SectionCounts holds per-bucket counts for UI badges.
type SectionCounts struct {
	Short         int `json:"short"`
	Domestic      int `json:"domestic"`
	International int `json:"international"`
	Other         int `json:"other"`
}

// Counts returns the per-bucket sizes.
func (s *Sections) Counts() SectionCounts {
	return SectionCounts{
		Short:         len(s.Short),
		Domestic:      len(s.Domestic),
		International: len(s.International),
		Other:         len(s.Other),
	}
}

// Total returns the number of classified records across all buckets.
func (s *Sections) Total() int {
	return len(s.Short) + len(s.Domestic) + len(s.International) + len(s.Other)
}

// Classify assigns each record to exactly one section bucket. Rules apply in
// priority order, so a record can appear in at most one bucket:
//
//  1. short: duration ≤ 4 days and at least one enabled departure date.
//     Unknown durations parse to DurationUnknown and never qualify.
//  2. domestic: duration > 4 days, tagged "domestic", enabled departure.
//  3. international: tagged "international", enabled departure. A ≤4-day
//     international trip is already captured by rule 1 — that ordering is
//     load-bearing for the listing pages and must not change.
//  4. other: everything else (disabled dates, unknown location type, ...).
//
// Input order is preserved within each bucket.
func Classify(records []*Record) *Sections {
	sections := &Sections{
		Short:         []*Record{},
		Domestic:      []*Record{},
		International: []*Record{},
		Other:         []*Record{},
	}

	for _, r := range records {
		if r == nil {
			continue
		}

		days := r.DurationDays()
		departing := r.HasEnabledDeparture()

		switch {
		case days <= shortTripMaxDays && departing:
			sections.Short = append(sections.Short, r)
		case days > shortTripMaxDays && r.isDomesticTagged() && departing:
			sections.Domestic = append(sections.Domestic, r)
		case r.isInternationalTagged() && departing:
			sections.International = append(sections.International, r)
		default:
			sections.Other = append(sections.Other, r)
		}
	}

	return sections
}
