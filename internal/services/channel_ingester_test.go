package services

import (
	"context"
	"testing"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/clients/tgpreview"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChannelClient struct {
	messages map[string][]tgpreview.Message
	failFor  map[string]bool
}

func (m *mockChannelClient) RecentMessages(_ context.Context, channel string, _ int) ([]tgpreview.Message, error) {
	if m.failFor[channel] {
		return nil, errors.New("channel unavailable")
	}
	return m.messages[channel], nil
}

func Test_Ingest_StoresOnlyVacancyLookingMessages(t *testing.T) {

	client := &mockChannelClient{
		messages: map[string][]tgpreview.Message{
			"jobs": {
				{ID: 1, Channel: "jobs", Text: "Vakansiya: Python developer kerak, kompaniya TechCorp", Date: time.Now()},
				{ID: 2, Channel: "jobs", Text: "Salom hammaga, yaxshimisiz do'stlar bugun ob-havo ajoyib", Date: time.Now()},
				{ID: 3, Channel: "jobs", Text: "Reklama: katta chegirma faqat bugun!", Date: time.Now()},
			},
		},
	}

	store := &mockVacancyStore{}
	ingester := NewChannelIngester(client, store, nil, []string{"jobs"}, 30)

	stored := ingester.Ingest(context.Background())

	assert.EqualValues(t, 1, stored)
	require.Len(t, store.added, 1)
	assert.Equal(t, "tg_jobs_1", store.added[0].ExternalID)
	assert.Equal(t, models.SourceTelegram, store.added[0].Source)
}

func Test_Ingest_FailingChannelDoesNotStopOthers(t *testing.T) {

	client := &mockChannelClient{
		messages: map[string][]tgpreview.Message{
			"good": {
				{ID: 10, Channel: "good", Text: "Hiring: senior backend developer, python va django tajribasi kerak", Date: time.Now()},
			},
		},
		failFor: map[string]bool{"bad": true},
	}

	store := &mockVacancyStore{}
	ingester := NewChannelIngester(client, store, nil, []string{"bad", "good"}, 30)

	stored := ingester.Ingest(context.Background())

	assert.EqualValues(t, 1, stored)
	require.Len(t, store.added, 1)
	assert.Equal(t, "tg_good_10", store.added[0].ExternalID)
}
