package services

import (
	"context"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type vacancyCleanupRepository interface {
	RemoveOld(ctx context.Context, expirationTime time.Time) (removedVacancies, removedSentRecords int64, err error)
}

// VacanciesCleaner retires vacancies past the retention window once a day.
// Sent records age out on the same schedule so the dedup table does not grow
// with postings that no longer exist.
type VacanciesCleaner struct {
	vacancies            vacancyCleanupRepository
	cron                 *cron.Cron
	expirationTimeInDays int
}

func NewVacanciesCleaner(vacancies vacancyCleanupRepository, expirationInDays int) (*VacanciesCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	vc := &VacanciesCleaner{
		vacancies:            vacancies,
		cron:                 cron.New(),
		expirationTimeInDays: expirationInDays,
	}

	_, err := vc.cron.AddFunc("0 0 * * *", vc.cleanOldVacancies)
	if err != nil {
		return nil, err
	}

	vc.cron.Start()
	log.Infof("vacancies cleaner started, expiration in days: %d", vc.expirationTimeInDays)
	return vc, nil
}

func (vc *VacanciesCleaner) Stop() {
	vc.cron.Stop()
}

func (vc *VacanciesCleaner) cleanOldVacancies() {
	expirationTime := time.Now().Add(-time.Duration(vc.expirationTimeInDays) * 24 * time.Hour)

	removedVacancies, removedSent, err := vc.vacancies.RemoveOld(context.Background(), expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to clean up vacancies older than %v: %v", expirationTime, err)
		return
	}

	log.Infof("cleaned up vacancies older than %v: %d vacancies, %d sent records",
		expirationTime, removedVacancies, removedSent)
}
