package hh

import (
	"encoding/json"
	"fmt"
	"time"
)

type Vacancy struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Url         string     `json:"alternate_url"`
	Archived    bool       `json:"archived"`
	Type        Type       `json:"type"`
	Employer    Employer   `json:"employer"`
	Salary      *Salary    `json:"salary"`
	Area        Area       `json:"area"`
	Snippet     Snippet    `json:"snippet"`
	Experience  Experience `json:"experience"`
	PublishedAt CustomTime `json:"published_at"`
}

// Closed reports whether the source has shut the vacancy down; such items
// must never be surfaced upstream.
func (v Vacancy) Closed() bool {
	return v.Archived || v.Type.ID == "closed"
}

type Type struct {
	ID string `json:"id"`
}

type Employer struct {
	Name string `json:"name"`
}

type Salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

type Area struct {
	Name string `json:"name"`
}

type Snippet struct {
	Responsibility string `json:"responsibility"`
	Requirement    string `json:"requirement"`
}

type Experience struct {
	ID string `json:"id"`
}

type CustomTime struct {
	time.Time
}

func (dt *CustomTime) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	t, err := time.Parse("2006-01-02T15:04:05-0700", str)
	if err != nil {
		return fmt.Errorf("parsing time %s: %v", str, err)
	}
	dt.Time = t
	return nil
}
