package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Source string

const (
	SourceHH       Source = "hh_uz"
	SourceUzJobs   Source = "uzjobs"
	SourceTelegram Source = "telegram"
	SourceUserPost Source = "user_post"
)

// DefaultSources is the base set every subscriber starts with. The telegram
// source is not part of it: it is added per run for premium subscribers only.
func DefaultSources() []Source {
	return []Source{SourceHH, SourceUzJobs, SourceUserPost}
}

type Experience string

const (
	NoExperience  Experience = "no_experience"
	Between1and3  Experience = "between_1_and_3"
	Between3and6  Experience = "between_3_and_6"
	MoreThan6     Experience = "more_than_6"
	AnyExperience Experience = "not_specified"
)

type Vacancy struct {
	ID          int    `gorm:"primaryKey"`
	ExternalID  string `gorm:"column:external_id" validate:"required"`
	Title       string `validate:"required"`
	Company     string
	Location    string
	SalaryMin   *int
	SalaryMax   *int
	Experience  Experience `validate:"required"`
	Description string
	Url         string
	Source      Source `validate:"required"`
	PublishedAt time.Time
	CreatedAt   time.Time
}

var validate = validator.New()

// Validate checks the vacancy shape at construction time, so malformed items
// are rejected at the connector boundary instead of somewhere downstream.
func (v Vacancy) Validate() error {
	return validate.Struct(v)
}

func (v Vacancy) HasSalary() bool {
	return v.SalaryMin != nil || v.SalaryMax != nil
}
