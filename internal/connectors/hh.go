package connectors

import (
	"context"
	"strings"

	"github.com/muzaffarov/vacancy-bot/internal/clients/hh"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/muzaffarov/vacancy-bot/internal/logger"
	"github.com/muzaffarov/vacancy-bot/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const hhPageSize = 50

type HHConnector struct {
	client *hh.Client
	rates  CurrencyRates
}

func NewHHConnector(client *hh.Client, rates CurrencyRates) *HHConnector {
	if rates == nil {
		rates = DefaultCurrencyRates()
	}
	return &HHConnector{client: client, rates: rates}
}

func (c *HHConnector) Source() models.Source {
	return models.SourceHH
}

func (c *HHConnector) Fetch(ctx context.Context, keywords []string, location string, pageBudget int) []models.Vacancy {

	var vacancies []models.Vacancy

	for page := 0; page < pageBudget; page++ {

		result, err := c.client.GetVacancies(ctx, hh.SearchParameters{
			Keywords: keywords,
			AreaID:   hh.AreaIDFor(location),
			Page:     page,
			PerPage:  hhPageSize,
		})
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).
				Errorf("failed to get vacancies page %d: %v", page, err)
			break
		}

		for _, item := range result.Vacancies {
			if item.Closed() {
				continue
			}
			vacancy := c.toVacancy(item)
			if err := vacancy.Validate(); err != nil {
				log.Warnf("skipping malformed hh vacancy %q: %v", item.ID, err)
				continue
			}
			vacancies = append(vacancies, vacancy)
		}

		if len(result.Vacancies) < hhPageSize || page >= result.Pages-1 {
			break
		}
	}

	metrics.FetchedVacanciesCounter.WithLabelValues(string(models.SourceHH)).Add(float64(len(vacancies)))
	return vacancies
}

func (c *HHConnector) toVacancy(item hh.Vacancy) models.Vacancy {

	vacancy := models.Vacancy{
		ExternalID:  "hh_uz_" + item.ID,
		Title:       item.Name,
		Company:     item.Employer.Name,
		Location:    item.Area.Name,
		Experience:  experienceFrom(item.Experience.ID),
		Description: cleanSnippet(item.Snippet),
		Url:         item.Url,
		Source:      models.SourceHH,
		PublishedAt: item.PublishedAt.UTC(),
	}
	if vacancy.Url == "" {
		vacancy.Url = "https://hh.uz/vacancy/" + item.ID
	}
	if item.Salary != nil {
		vacancy.SalaryMin = c.rates.Convert(item.Salary.From, item.Salary.Currency)
		vacancy.SalaryMax = c.rates.Convert(item.Salary.To, item.Salary.Currency)
	}
	return vacancy
}

func experienceFrom(id string) models.Experience {
	switch id {
	case "noExperience":
		return models.NoExperience
	case "between1And3":
		return models.Between1and3
	case "between3And6":
		return models.Between3and6
	case "moreThan6":
		return models.MoreThan6
	default:
		return models.AnyExperience
	}
}

var snippetTags = strings.NewReplacer(
	"<highlighttext>", "", "</highlighttext>", "",
	"<strong>", "", "</strong>", "",
)

func cleanSnippet(snippet hh.Snippet) string {
	description := strings.TrimSpace(snippet.Responsibility + " " + snippet.Requirement)
	return snippetTags.Replace(description)
}
