package model

import "time"

// Location is a target city managed by an operator. Reference data: every
// workflow reads it, only the locations CRUD surface writes it.
type Location struct {
	ID           string    `json:"id"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	StateAbbr    string    `json:"state_abbr"`
	County       string    `json:"county,omitempty"`
	Population   int       `json:"population,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	ZipCodes     []string  `json:"zip_codes,omitempty"`
	PriorityRank int       `json:"priority_rank,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
