package services

import (
	"testing"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/clients/tgpreview"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_VacancyFromMessage_ParsesTypicalPost(t *testing.T) {

	message := tgpreview.Message{
		ID:      123,
		Channel: "UstozShogird",
		Text: "🔥 Python Developer kerak\n" +
			"Kompaniya: TechCorp LLC\n" +
			"Maosh: 5-10 млн\n" +
			"Joylashuv: Toshkent\n" +
			"Talab: middle, 1-3 yillik tajriba\n" +
			"Django va PostgreSQL bilan ishlash tajribasi kerak.",
		Date: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	vacancy := VacancyFromMessage(message)

	assert.Equal(t, "tg_UstozShogird_123", vacancy.ExternalID)
	assert.Equal(t, "Python Developer kerak", vacancy.Title)
	assert.Equal(t, "TechCorp LLC", vacancy.Company)
	assert.Equal(t, "Tashkent", vacancy.Location)
	require.NotNil(t, vacancy.SalaryMin)
	require.NotNil(t, vacancy.SalaryMax)
	assert.Equal(t, 5000000, *vacancy.SalaryMin)
	assert.Equal(t, 10000000, *vacancy.SalaryMax)
	assert.Equal(t, models.Between1and3, vacancy.Experience)
	assert.Equal(t, "https://t.me/UstozShogird/123", vacancy.Url)
	assert.Equal(t, models.SourceTelegram, vacancy.Source)
	assert.Equal(t, message.Date, vacancy.PublishedAt)

	assert.NoError(t, vacancy.Validate())
}

func Test_VacancyFromMessage_ShortTitleTakesSecondLine(t *testing.T) {

	message := tgpreview.Message{
		ID:      1,
		Channel: "jobs",
		Text:    "💼 Kerak\nSenior Java Engineer\nKatta kompaniyaga ishga olamiz",
	}

	vacancy := VacancyFromMessage(message)
	assert.Equal(t, "Kerak Senior Java Engineer", vacancy.Title)
	assert.Equal(t, models.MoreThan6, vacancy.Experience)
}

func Test_VacancyFromMessage_DefaultsWhenNothingRecognized(t *testing.T) {

	message := tgpreview.Message{
		ID:      2,
		Channel: "jobs",
		Text:    "🔥\nПросто длинное сообщение без всякой полезной информации для парсера",
	}

	vacancy := VacancyFromMessage(message)
	assert.Equal(t, unknownCompany, vacancy.Company)
	assert.Equal(t, defaultLocation, vacancy.Location)
	assert.Nil(t, vacancy.SalaryMin)
	assert.Nil(t, vacancy.SalaryMax)
	assert.Equal(t, models.AnyExperience, vacancy.Experience)
}

func Test_ExtractSalary_LargeFiguresAreNotScaled(t *testing.T) {

	min, max := extractSalary("Зарплата 5000000 - 8000000 сум")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 5000000, *min)
	assert.Equal(t, 8000000, *max)

	min, max = extractSalary("от 3000000 сум")
	require.NotNil(t, min)
	assert.Nil(t, max)
	assert.Equal(t, 3000000, *min)
}

func Test_ExtractTitle_TruncatesLongFirstLine(t *testing.T) {

	long := ""
	for i := 0; i < 40; i++ {
		long += "senior"
	}

	title := extractTitle(long)
	assert.Len(t, []rune(title), maxTitleLen)
}
