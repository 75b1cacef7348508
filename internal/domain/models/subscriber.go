package models

import "time"

type Subscriber struct {
	ID           int64 `gorm:"primaryKey"`
	Username     string
	Active       bool
	PremiumUntil *time.Time
	CreatedAt    time.Time
}

func (s Subscriber) IsPremium(now time.Time) bool {
	return s.PremiumUntil != nil && s.PremiumUntil.After(now)
}

type SentVacancy struct {
	ID        int
	UserID    int64
	VacancyID string
	SentAt    time.Time
}
