package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Vacancies struct {
	db *gorm.DB
}

func NewVacanciesRepository(db *gorm.DB) *Vacancies {
	return &Vacancies{db: db}
}

// AddIfAbsent inserts the given vacancies, silently skipping any whose
// external_id is already stored. Returns the number of new rows.
func (v Vacancies) AddIfAbsent(ctx context.Context, vacancies []models.Vacancy) (int64, error) {
	if len(vacancies) == 0 {
		return 0, nil
	}

	res := v.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(&vacancies)
	return res.RowsAffected, res.Error
}

func (v Vacancies) Exists(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := v.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("external_id = ?", externalID).
		Count(&count).Error
	return count > 0, err
}

func (v Vacancies) GetBySource(ctx context.Context, source models.Source, since time.Time) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := v.db.WithContext(ctx).
		Where("source = ? AND published_at >= ?", source, since).
		Order("published_at DESC").
		Find(&vacancies).Error
	return vacancies, err
}

func (v Vacancies) IsSentToUser(ctx context.Context, userID int64, vacancyID string) (bool, error) {
	var sent models.SentVacancy
	err := v.db.WithContext(ctx).
		Where("user_id = ? AND vacancy_id = ?", userID, vacancyID).
		First(&sent).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (v Vacancies) RecordAsSentToUser(ctx context.Context, userID int64, vacancyID string) error {
	return v.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SentVacancy{
			UserID:    userID,
			VacancyID: vacancyID,
			SentAt:    time.Now(),
		}).Error
}

// RemoveOld drops vacancies created before expirationTime together with the
// sent records that aged out with them, returning both counts.
func (v Vacancies) RemoveOld(ctx context.Context, expirationTime time.Time) (removedVacancies, removedSentRecords int64, err error) {
	res := v.db.WithContext(ctx).Delete(&models.Vacancy{}, "created_at < ?", expirationTime)
	if res.Error != nil {
		return res.RowsAffected, 0, res.Error
	}

	sent := v.db.WithContext(ctx).Delete(&models.SentVacancy{}, "sent_at < ?", expirationTime)
	return res.RowsAffected, sent.RowsAffected, sent.Error
}
