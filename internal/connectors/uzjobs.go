package connectors

import (
	"context"
	"fmt"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/clients/uzjobs"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/muzaffarov/vacancy-bot/internal/logger"
	"github.com/muzaffarov/vacancy-bot/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type UzJobsConnector struct {
	client *uzjobs.Client
}

func NewUzJobsConnector(client *uzjobs.Client) *UzJobsConnector {
	return &UzJobsConnector{client: client}
}

func (c *UzJobsConnector) Source() models.Source {
	return models.SourceUzJobs
}

// Fetch scrapes a single results page; the site has no usable pagination, so
// pageBudget is ignored. The listing carries no salary, experience or date
// metadata and those fields default.
func (c *UzJobsConnector) Fetch(ctx context.Context, keywords []string, _ string, _ int) []models.Vacancy {

	listings, err := c.client.Search(ctx, keywords)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeScrape).
			Errorf("uzjobs search failed: %v", err)
		return nil
	}

	var vacancies []models.Vacancy
	for _, listing := range listings {
		vacancy := toVacancy(listing)
		if err := vacancy.Validate(); err != nil {
			log.Warnf("skipping malformed uzjobs listing %q: %v", listing.ID, err)
			continue
		}
		vacancies = append(vacancies, vacancy)
	}

	metrics.FetchedVacanciesCounter.WithLabelValues(string(models.SourceUzJobs)).Add(float64(len(vacancies)))
	return vacancies
}

func toVacancy(listing uzjobs.Listing) models.Vacancy {

	company := listing.Company
	if company == "" {
		company = "Noma'lum"
	}
	location := listing.Location
	if location == "" {
		location = "Tashkent"
	}

	return models.Vacancy{
		ExternalID:  "uzjobs_" + listing.ID,
		Title:       listing.Title,
		Company:     company,
		Location:    location,
		Experience:  models.AnyExperience,
		Description: fmt.Sprintf("Vakansiya: %s (%s)", listing.Title, company),
		Url:         listing.Url,
		Source:      models.SourceUzJobs,
		PublishedAt: time.Now().UTC(),
	}
}
