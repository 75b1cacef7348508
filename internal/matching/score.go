package matching

import (
	"strings"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
)

const maxScore = 100

// Score rates how well a vacancy fits a filter on a 0-100 scale. It is used
// for ranking only and is independent of Matches: a vacancy can score high
// yet still be filtered out by a hard predicate.
//
// Weights: keyword overlap 40, location 20, salary 20, experience 20.
func (e *Engine) Score(vacancy models.Vacancy, filter models.SearchFilter) int {
	score := 0

	keywords := filter.KeywordsAsArray()
	if len(keywords) > 0 {
		searchable := strings.ToLower(vacancy.Title + " " + vacancy.Description)
		matched := 0
		for _, keyword := range keywords {
			if strings.Contains(searchable, strings.ToLower(keyword)) {
				matched++
			}
		}
		score += int(float64(matched) / float64(len(keywords)) * 40)
	} else {
		score += 20
	}

	locations := filter.LocationsAsArray()
	if len(locations) > 0 {
		if e.matchesLocation(vacancy, locations) {
			score += 20
		}
	} else {
		score += 10
	}

	score += salaryScore(vacancy, filter.SalaryMin)
	score += experienceScore(vacancy.Experience, filter.Experience)

	if score > maxScore {
		score = maxScore
	}
	return score
}

func salaryScore(vacancy models.Vacancy, filterMin *int) int {
	if filterMin == nil || !vacancy.HasSalary() {
		return 10
	}
	if vacancy.SalaryMax != nil && *vacancy.SalaryMax >= *filterMin {
		return 20
	}
	if vacancy.SalaryMin != nil && float64(*vacancy.SalaryMin) >= float64(*filterMin)*0.8 {
		return 15
	}
	return 0
}

func experienceScore(vacancy, filter models.Experience) int {
	if filter == "" || filter == models.AnyExperience || vacancy == "" {
		return 10
	}
	if vacancy == filter {
		return 20
	}
	if vacancy == models.AnyExperience &&
		(filter == models.Between1and3 || filter == models.Between3and6) {
		return 15
	}
	return 0
}
