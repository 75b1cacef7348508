package matching

import (
	"strings"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
)

// Engine evaluates vacancies against subscriber filters. It holds only
// lookup tables and is safe for concurrent use; every method is pure.
type Engine struct {
	locationAliases map[string][]string
}

func NewEngine(locationAliases map[string][]string) *Engine {
	if locationAliases == nil {
		locationAliases = DefaultLocationAliases()
	}
	return &Engine{locationAliases: locationAliases}
}

// Matches applies all predicates with AND semantics, short-circuiting on the
// first failure. The order is fixed: keyword, location, salary, experience,
// source.
func (e *Engine) Matches(vacancy models.Vacancy, filter models.SearchFilter) bool {
	return e.matchesKeywords(vacancy, filter.KeywordsAsArray()) &&
		e.matchesLocation(vacancy, filter.LocationsAsArray()) &&
		e.matchesSalary(vacancy, filter.SalaryMin, filter.SalaryMax) &&
		e.matchesExperience(vacancy, filter.Experience) &&
		e.matchesSource(vacancy, filter.SourcesAsArray())
}

// Apply returns the vacancies passing Matches, preserving input order.
func (e *Engine) Apply(vacancies []models.Vacancy, filter models.SearchFilter) []models.Vacancy {
	var matched []models.Vacancy
	for _, vacancy := range vacancies {
		if e.Matches(vacancy, filter) {
			matched = append(matched, vacancy)
		}
	}
	return matched
}

func (e *Engine) matchesKeywords(vacancy models.Vacancy, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}

	searchable := strings.ToLower(vacancy.Title + " " + vacancy.Description + " " + vacancy.Company)
	for _, keyword := range keywords {
		if strings.Contains(searchable, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func (e *Engine) matchesLocation(vacancy models.Vacancy, locations []string) bool {
	if len(locations) == 0 {
		return true
	}

	vacancyLocation := strings.ToLower(vacancy.Location)
	for _, location := range locations {
		location = strings.ToLower(location)

		if strings.Contains(vacancyLocation, location) {
			return true
		}

		for _, aliases := range e.locationAliases {
			if !containsString(aliases, location) {
				continue
			}
			for _, alias := range aliases {
				if strings.Contains(vacancyLocation, alias) {
					return true
				}
			}
		}
	}
	return false
}

// matchesSalary intentionally keeps the historical asymmetry: the filter's
// upper bound is only checked against the vacancy's minimum.
func (e *Engine) matchesSalary(vacancy models.Vacancy, filterMin, filterMax *int) bool {
	if !vacancy.HasSalary() {
		return true
	}

	if filterMin != nil {
		upper := vacancy.SalaryMax
		if upper == nil {
			upper = vacancy.SalaryMin
		}
		if upper != nil && *upper < *filterMin {
			return false
		}
	}

	if filterMax != nil && vacancy.SalaryMin != nil && *vacancy.SalaryMin > *filterMax {
		return false
	}

	return true
}

func (e *Engine) matchesExperience(vacancy models.Vacancy, experience models.Experience) bool {
	if experience == "" || experience == models.AnyExperience {
		return true
	}
	if vacancy.Experience == models.AnyExperience {
		return true
	}
	return vacancy.Experience == experience
}

func (e *Engine) matchesSource(vacancy models.Vacancy, sources []models.Source) bool {
	if len(sources) == 0 {
		return true
	}

	// user-submitted postings are always shown, unless the subscriber removed
	// the source explicitly
	if vacancy.Source == models.SourceUserPost {
		return containsSource(sources, models.SourceUserPost)
	}

	return containsSource(sources, vacancy.Source)
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsSource(haystack []models.Source, needle models.Source) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
