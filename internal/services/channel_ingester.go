package services

import (
	"context"

	"github.com/muzaffarov/vacancy-bot/internal/clients/tgpreview"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/muzaffarov/vacancy-bot/internal/logger"
	"github.com/muzaffarov/vacancy-bot/internal/matching"
	"github.com/muzaffarov/vacancy-bot/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type channelClient interface {
	RecentMessages(ctx context.Context, channel string, limit int) ([]tgpreview.Message, error)
}

type vacancyStore interface {
	AddIfAbsent(ctx context.Context, vacancies []models.Vacancy) (int64, error)
}

// ChannelIngester pulls recent posts from the configured channels once per
// collection run, keeps the ones that look like job postings and stores them
// for the telegram connector to serve. A failing channel only costs its own
// postings.
type ChannelIngester struct {
	client          channelClient
	vacancies       vacancyStore
	classifier      *matching.Classifier
	channels        []string
	messagesPerChan int
}

func NewChannelIngester(client channelClient, vacancies vacancyStore,
	classifier *matching.Classifier, channels []string, messagesPerChannel int) *ChannelIngester {

	if classifier == nil {
		classifier = matching.NewClassifier(nil, nil)
	}
	return &ChannelIngester{
		client:          client,
		vacancies:       vacancies,
		classifier:      classifier,
		channels:        channels,
		messagesPerChan: messagesPerChannel,
	}
}

// Ingest returns the number of newly stored vacancies.
func (i *ChannelIngester) Ingest(ctx context.Context) int64 {

	var stored int64

	for _, channel := range i.channels {

		select {
		case <-ctx.Done():
			return stored
		default:
		}

		messages, err := i.client.RecentMessages(ctx, channel, i.messagesPerChan)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
				Errorf("failed to read channel %s: %v", channel, err)
			continue
		}

		var vacancies []models.Vacancy
		for _, message := range messages {
			if !i.classifier.IsVacancy(message.Text) {
				continue
			}
			vacancy := VacancyFromMessage(message)
			if err := vacancy.Validate(); err != nil {
				log.Warnf("skipping malformed channel vacancy %q: %v", vacancy.ExternalID, err)
				continue
			}
			vacancies = append(vacancies, vacancy)
		}

		added, err := i.vacancies.AddIfAbsent(ctx, vacancies)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to store vacancies from %s: %v", channel, err)
			continue
		}

		metrics.FetchedVacanciesCounter.WithLabelValues(string(models.SourceTelegram)).Add(float64(added))
		log.Infof("channel %s: %d messages, %d new vacancies", channel, len(messages), added)
		stored += added
	}

	return stored
}
