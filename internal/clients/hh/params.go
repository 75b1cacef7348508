package hh

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type SearchParameters struct {
	Keywords []string
	AreaID   string
	Page     int
	PerPage  int
}

func (s SearchParameters) Validate() error {

	if s.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage <= 0 || s.PerPage > 100 {
		return fmt.Errorf("per page must be between 1 and 100")
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("text", strings.Join(s.Keywords, " "))

	if s.AreaID != "" {
		params.Add("area", s.AreaID)
	}

	params.Add("page", strconv.Itoa(s.Page))
	params.Add("per_page", strconv.Itoa(s.PerPage))

	return params
}
