package models

import (
	"strings"

	"github.com/samber/lo"
)

// SearchFilter is a subscriber's stored search profile. List-valued fields
// are kept as comma-joined columns; use the accessors. The filter is written
// by the settings surface and read-only to the collection core.
type SearchFilter struct {
	UserID     int64 `gorm:"primaryKey"`
	Keywords   string
	Locations  string
	SalaryMin  *int
	SalaryMax  *int
	Experience Experience
	Sources    string
}

func NewSearchFilter(userID int64, keywords, locations []string, salaryMin, salaryMax *int,
	experience Experience, sources []Source) SearchFilter {

	if len(sources) == 0 {
		sources = DefaultSources()
	}
	return SearchFilter{
		UserID:     userID,
		Keywords:   strings.Join(keywords, ","),
		Locations:  strings.Join(locations, ","),
		SalaryMin:  salaryMin,
		SalaryMax:  salaryMax,
		Experience: experience,
		Sources: strings.Join(lo.Map(sources, func(s Source, _ int) string {
			return string(s)
		}), ","),
	}
}

func (f SearchFilter) KeywordsAsArray() []string {
	return splitList(f.Keywords)
}

// PrimaryLocation is the first configured location; it drives grouping and
// the upstream search query. Empty when the subscriber set no locations.
func (f SearchFilter) PrimaryLocation() string {
	locations := f.LocationsAsArray()
	if len(locations) == 0 {
		return ""
	}
	return locations[0]
}

func (f SearchFilter) LocationsAsArray() []string {
	return splitList(f.Locations)
}

func (f SearchFilter) SourcesAsArray() []Source {
	parts := splitList(f.Sources)
	if len(parts) == 0 {
		return DefaultSources()
	}
	return lo.Map(parts, func(s string, _ int) Source { return Source(s) })
}

func (f *SearchFilter) SetSources(sources []Source) {
	f.Sources = strings.Join(lo.Map(sources, func(s Source, _ int) string {
		return string(s)
	}), ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
}
