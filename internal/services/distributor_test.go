package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type mockSentRepo struct {
	sent        map[string]bool
	failOnCheck bool
}

func newMockSentRepo() *mockSentRepo {
	return &mockSentRepo{sent: map[string]bool{}}
}

func (m *mockSentRepo) IsSentToUser(_ context.Context, userID int64, vacancyID string) (bool, error) {
	if m.failOnCheck {
		return false, errors.New("db is down")
	}
	return m.sent[sentKey(userID, vacancyID)], nil
}

func (m *mockSentRepo) RecordAsSentToUser(_ context.Context, userID int64, vacancyID string) error {
	m.sent[sentKey(userID, vacancyID)] = true
	return nil
}

func sentKey(userID int64, vacancyID string) string {
	return fmt.Sprintf("%d|%s", userID, vacancyID)
}

type mockSender struct {
	delivered []string
	failFor   map[string]bool
}

func newMockSender() *mockSender {
	return &mockSender{failFor: map[string]bool{}}
}

func (m *mockSender) SendVacancy(_ context.Context, _ int64, vacancy models.Vacancy, _ int) error {
	if m.failFor[vacancy.ExternalID] {
		return errors.New("telegram api error")
	}
	m.delivered = append(m.delivered, vacancy.ExternalID)
	return nil
}

func scoredVacancies(ids ...string) []ScoredVacancy {
	var result []ScoredVacancy
	for i, id := range ids {
		result = append(result, ScoredVacancy{
			Vacancy: models.Vacancy{ExternalID: id, Title: "title " + id},
			Score:   100 - i,
		})
	}
	return result
}

func Test_Distribute_RespectsFreeTierCap(t *testing.T) {

	sender := newMockSender()
	distributor := NewVacancyDistributor(newMockSentRepo(), sender, 0, 3, 5)

	sent := distributor.Distribute(context.Background(), models.Subscriber{ID: 1},
		scoredVacancies("v1", "v2", "v3", "v4", "v5", "v6"))

	assert.Equal(t, 3, sent)
	assert.Equal(t, []string{"v1", "v2", "v3"}, sender.delivered)
}

func Test_Distribute_PremiumGetsHigherCap(t *testing.T) {

	premiumUntil := time.Now().Add(24 * time.Hour)
	sender := newMockSender()
	distributor := NewVacancyDistributor(newMockSentRepo(), sender, 0, 3, 5)

	sent := distributor.Distribute(context.Background(),
		models.Subscriber{ID: 1, PremiumUntil: &premiumUntil},
		scoredVacancies("v1", "v2", "v3", "v4", "v5", "v6"))

	assert.Equal(t, 5, sent)
}

func Test_Distribute_SentCandidatesDoNotOpenSlotsBelowTheCap(t *testing.T) {

	repo := newMockSentRepo()
	for _, id := range []string{"v1", "v2", "v3"} {
		_ = repo.RecordAsSentToUser(context.Background(), 1, id)
	}

	sender := newMockSender()
	distributor := NewVacancyDistributor(repo, sender, 0, 3, 5)

	sent := distributor.Distribute(context.Background(), models.Subscriber{ID: 1},
		scoredVacancies("v1", "v2", "v3", "v4", "v5", "v6"))

	// the top 3 were all delivered before, lower ranks must not slide in
	assert.Equal(t, 0, sent)
	assert.Empty(t, sender.delivered)
}

func Test_Distribute_SkipsAlreadySentVacancies(t *testing.T) {

	repo := newMockSentRepo()
	_ = repo.RecordAsSentToUser(context.Background(), 1, "v1")

	sender := newMockSender()
	distributor := NewVacancyDistributor(repo, sender, 0, 3, 5)

	sent := distributor.Distribute(context.Background(), models.Subscriber{ID: 1},
		scoredVacancies("v1", "v2"))

	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"v2"}, sender.delivered)
}

func Test_Distribute_FailedSendDoesNotAbortTheBatch(t *testing.T) {

	repo := newMockSentRepo()
	sender := newMockSender()
	sender.failFor["v1"] = true
	distributor := NewVacancyDistributor(repo, sender, 0, 3, 5)

	subscriber := models.Subscriber{ID: 1}
	matches := scoredVacancies("v1", "v2")

	sent := distributor.Distribute(context.Background(), subscriber, matches)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"v2"}, sender.delivered)

	// v2 is recorded, v1 never was; the next pass delivers only v1
	sender.failFor["v1"] = false
	sent = distributor.Distribute(context.Background(), subscriber, matches)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"v2", "v1"}, sender.delivered)
}

func Test_Distribute_ContinuesAfterRepositoryError(t *testing.T) {

	repo := newMockSentRepo()
	repo.failOnCheck = true
	sender := newMockSender()
	distributor := NewVacancyDistributor(repo, sender, 0, 3, 5)

	sent := distributor.Distribute(context.Background(), models.Subscriber{ID: 1},
		scoredVacancies("v1", "v2"))

	assert.Equal(t, 0, sent)
	assert.Empty(t, sender.delivered)
}
