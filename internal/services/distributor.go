package services

import (
	"context"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/muzaffarov/vacancy-bot/internal/logger"
	"github.com/muzaffarov/vacancy-bot/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// Sender delivers one vacancy notification to one subscriber.
type Sender interface {
	SendVacancy(ctx context.Context, userID int64, vacancy models.Vacancy, score int) error
}

type sentVacanciesRepository interface {
	IsSentToUser(ctx context.Context, userID int64, vacancyID string) (bool, error)
	RecordAsSentToUser(ctx context.Context, userID int64, vacancyID string) error
}

// ScoredVacancy pairs a vacancy with its rank for one concrete subscriber.
type ScoredVacancy struct {
	models.Vacancy
	Score int
}

type VacancyDistributor struct {
	vacancies  sentVacanciesRepository
	sender     Sender
	sendDelay  time.Duration
	freeCap    int
	premiumCap int
}

func NewVacancyDistributor(vacancies sentVacanciesRepository, sender Sender,
	sendDelay time.Duration, freeCap, premiumCap int) *VacancyDistributor {

	return &VacancyDistributor{
		vacancies:  vacancies,
		sender:     sender,
		sendDelay:  sendDelay,
		freeCap:    freeCap,
		premiumCap: premiumCap,
	}
}

// Distribute delivers matches to one subscriber. The ranked list is cut down
// to the tier cap first, then already-seen candidates inside that window are
// skipped, so a run never reaches past the top N. A failed send is logged and
// skipped, not retried within the run. The sent record is written only after
// a successful send, so a send that succeeds right before a failed write may
// repeat once in a later run. Returns the number of notifications delivered.
func (d *VacancyDistributor) Distribute(ctx context.Context, subscriber models.Subscriber,
	matches []ScoredVacancy) int {

	sendCap := d.freeCap
	if subscriber.IsPremium(time.Now()) {
		sendCap = d.premiumCap
	}
	if len(matches) > sendCap {
		matches = matches[:sendCap]
	}

	sentCount := 0
	for _, match := range matches {
		select {
		case <-ctx.Done():
			return sentCount
		default:
		}

		wasSent, err := d.vacancies.IsSentToUser(ctx, subscriber.ID, match.ExternalID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to check if vacancy was sent to user: %v", err)
			continue
		}
		if wasSent {
			continue
		}

		if err = d.sender.SendVacancy(ctx, subscriber.ID, match.Vacancy, match.Score); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
				Errorf("failed to send vacancy %v to user %v: %v", match.ExternalID, subscriber.ID, err)
			continue
		}

		if err = d.vacancies.RecordAsSentToUser(ctx, subscriber.ID, match.ExternalID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to record vacancy as sent to user: %v", err)
		}

		metrics.SentVacanciesCounter.Inc()
		sentCount++

		time.Sleep(d.sendDelay)
	}

	return sentCount
}
