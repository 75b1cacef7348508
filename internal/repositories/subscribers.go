package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"gorm.io/gorm"
)

type Subscribers struct {
	db *gorm.DB
}

func NewSubscribersRepository(db *gorm.DB) *Subscribers {
	return &Subscribers{db: db}
}

func (repo *Subscribers) Save(ctx context.Context, subscriber models.Subscriber) error {
	return repo.db.WithContext(ctx).Save(&subscriber).Error
}

func (repo *Subscribers) GetActive(ctx context.Context) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	if err := repo.db.WithContext(ctx).Find(&subscribers, "active = ?", true).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (repo *Subscribers) IsPremium(ctx context.Context, userID int64) (bool, error) {
	var subscriber models.Subscriber
	err := repo.db.WithContext(ctx).First(&subscriber, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return subscriber.IsPremium(time.Now()), nil
}

func (repo *Subscribers) Deactivate(ctx context.Context, userID int64) error {
	return repo.db.WithContext(ctx).Model(&models.Subscriber{}).
		Where("id = ?", userID).
		Update("active", false).Error
}

// GetFilter returns the stored filter for the user, or a default filter
// matching everything from the default sources when none was saved yet.
func (repo *Subscribers) GetFilter(ctx context.Context, userID int64) (models.SearchFilter, error) {
	var filter models.SearchFilter
	err := repo.db.WithContext(ctx).First(&filter, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewSearchFilter(userID, nil, nil, nil, nil, models.AnyExperience, nil), nil
		}
		return filter, err
	}
	return filter, nil
}

func (repo *Subscribers) SaveFilter(ctx context.Context, filter models.SearchFilter) error {
	return repo.db.WithContext(ctx).Save(&filter).Error
}
