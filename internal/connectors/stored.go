package connectors

import (
	"context"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/muzaffarov/vacancy-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

type storedVacancies interface {
	GetBySource(ctx context.Context, source models.Source, since time.Time) ([]models.Vacancy, error)
}

// StoreConnector serves sources whose postings are already in the store:
// channel messages ingested once per run by the channel ingester, and
// user-submitted postings written by the posting surface. It performs no
// network round trip; a fetch is a store read bounded by a recency window.
type StoreConnector struct {
	vacancies storedVacancies
	source    models.Source
	window    time.Duration
}

func NewTelegramConnector(vacancies storedVacancies, window time.Duration) *StoreConnector {
	return &StoreConnector{vacancies: vacancies, source: models.SourceTelegram, window: window}
}

func NewUserPostConnector(vacancies storedVacancies, window time.Duration) *StoreConnector {
	return &StoreConnector{vacancies: vacancies, source: models.SourceUserPost, window: window}
}

func (c *StoreConnector) Source() models.Source {
	return c.source
}

func (c *StoreConnector) Fetch(ctx context.Context, _ []string, _ string, _ int) []models.Vacancy {

	since := time.Now().UTC().Add(-c.window)

	vacancies, err := c.vacancies.GetBySource(ctx, c.source, since)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to read %s vacancies: %v", c.source, err)
		return nil
	}
	return vacancies
}
