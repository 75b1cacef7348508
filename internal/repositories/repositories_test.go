package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDbContext(t *testing.T) *DbContext {
	dbContext, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func testVacancy(externalID string, publishedAt time.Time) models.Vacancy {
	return models.Vacancy{
		ExternalID:  externalID,
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    "Tashkent",
		Experience:  models.AnyExperience,
		Source:      models.SourceHH,
		PublishedAt: publishedAt,
	}
}

func Test_Vacancies_AddIfAbsentSkipsDuplicates(t *testing.T) {
	repo := NewVacanciesRepository(setupDbContext(t).DB)
	ctx := context.Background()

	added, err := repo.AddIfAbsent(ctx, []models.Vacancy{
		testVacancy("hh_uz_1", time.Now()),
		testVacancy("hh_uz_2", time.Now()),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, added)

	added, err = repo.AddIfAbsent(ctx, []models.Vacancy{
		testVacancy("hh_uz_2", time.Now()),
		testVacancy("hh_uz_3", time.Now()),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, added)

	exists, err := repo.Exists(ctx, "hh_uz_2")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "hh_uz_999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_Vacancies_GetBySourceRespectsRecencyWindow(t *testing.T) {
	repo := NewVacanciesRepository(setupDbContext(t).DB)
	ctx := context.Background()

	fresh := testVacancy("tg_jobs_100", time.Now().Add(-time.Hour))
	fresh.Source = models.SourceTelegram
	stale := testVacancy("tg_jobs_99", time.Now().Add(-30*24*time.Hour))
	stale.Source = models.SourceTelegram
	other := testVacancy("hh_uz_5", time.Now())

	_, err := repo.AddIfAbsent(ctx, []models.Vacancy{fresh, stale, other})
	require.NoError(t, err)

	got, err := repo.GetBySource(ctx, models.SourceTelegram, time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tg_jobs_100", got[0].ExternalID)
}

func Test_Vacancies_SentToUserIsIdempotent(t *testing.T) {
	repo := NewVacanciesRepository(setupDbContext(t).DB)
	ctx := context.Background()

	sent, err := repo.IsSentToUser(ctx, 42, "hh_uz_1")
	require.NoError(t, err)
	assert.False(t, sent)

	require.NoError(t, repo.RecordAsSentToUser(ctx, 42, "hh_uz_1"))
	require.NoError(t, repo.RecordAsSentToUser(ctx, 42, "hh_uz_1"))

	sent, err = repo.IsSentToUser(ctx, 42, "hh_uz_1")
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = repo.IsSentToUser(ctx, 43, "hh_uz_1")
	require.NoError(t, err)
	assert.False(t, sent)
}

func Test_Vacancies_RemoveOld(t *testing.T) {
	dbContext := setupDbContext(t)
	repo := NewVacanciesRepository(dbContext.DB)
	ctx := context.Background()

	old := testVacancy("hh_uz_1", time.Now())
	old.CreatedAt = time.Now().Add(-60 * 24 * time.Hour)
	recent := testVacancy("hh_uz_2", time.Now())

	_, err := repo.AddIfAbsent(ctx, []models.Vacancy{old, recent})
	require.NoError(t, err)

	require.NoError(t, repo.RecordAsSentToUser(ctx, 42, "hh_uz_1"))
	staleSent := models.SentVacancy{UserID: 42, VacancyID: "hh_uz_0", SentAt: time.Now().Add(-60 * 24 * time.Hour)}
	require.NoError(t, dbContext.DB.Create(&staleSent).Error)

	removedVacancies, removedSent, err := repo.RemoveOld(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removedVacancies)
	assert.EqualValues(t, 1, removedSent)

	exists, err := repo.Exists(ctx, "hh_uz_2")
	require.NoError(t, err)
	assert.True(t, exists)

	sent, err := repo.IsSentToUser(ctx, 42, "hh_uz_1")
	require.NoError(t, err)
	assert.True(t, sent)
}

func Test_Subscribers_GetActiveAndPremium(t *testing.T) {
	repo := NewSubscribersRepository(setupDbContext(t).DB)
	ctx := context.Background()

	premiumUntil := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, repo.Save(ctx, models.Subscriber{ID: 1, Username: "alice", Active: true, PremiumUntil: &premiumUntil}))
	require.NoError(t, repo.Save(ctx, models.Subscriber{ID: 2, Username: "bob", Active: true}))
	require.NoError(t, repo.Save(ctx, models.Subscriber{ID: 3, Username: "gone", Active: false}))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	premium, err := repo.IsPremium(ctx, 1)
	require.NoError(t, err)
	assert.True(t, premium)

	premium, err = repo.IsPremium(ctx, 2)
	require.NoError(t, err)
	assert.False(t, premium)
}

func Test_Subscribers_GetFilterReturnsDefaultWhenMissing(t *testing.T) {
	repo := NewSubscribersRepository(setupDbContext(t).DB)
	ctx := context.Background()

	filter, err := repo.GetFilter(ctx, 42)
	require.NoError(t, err)
	assert.EqualValues(t, 42, filter.UserID)
	assert.Empty(t, filter.KeywordsAsArray())
	assert.Equal(t, models.DefaultSources(), filter.SourcesAsArray())

	saved := models.NewSearchFilter(42, []string{"python", "django"}, []string{"Tashkent"},
		nil, nil, models.Between1and3, nil)
	require.NoError(t, repo.SaveFilter(ctx, saved))

	filter, err = repo.GetFilter(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "django"}, filter.KeywordsAsArray())
	assert.Equal(t, "Tashkent", filter.PrimaryLocation())
}
