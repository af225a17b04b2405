package user

import (
	"encoding/json"
	"time"

	"github.com/sudo-init-do/restful-users/internal/apperr"
)

// User is the resource exposed under /users.
type User struct {
	ID       int       `json:"id" db:"id"`
	Name     string    `json:"name" db:"name" validate:"min=2"`
	JoinDate time.Time `json:"joinDate" db:"join_date" validate:"past"`
	Password string    `json:"password" db:"password"`
	SSN      string    `json:"ssn" db:"ssn"`
}

// Link is an advertised related-resource reference.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Resource wraps a user with its related links for single-item responses.
type Resource struct {
	User
	Links []Link `json:"links"`
}

// joinDateLayouts are tried in order when decoding a request joinDate.
var joinDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// JoinDate decodes the joinDate of a request body. Besides RFC 3339 it
// accepts a zone offset without a colon (2022-01-05T14:28:43.576+0000)
// and a bare date, which is taken as midnight UTC.
type JoinDate time.Time

func (d *JoinDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return invalidJoinDate(string(b))
	}
	for _, layout := range joinDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = JoinDate(t)
			return nil
		}
	}
	return invalidJoinDate(s)
}

func invalidJoinDate(v string) error {
	return apperr.ValidationFailed([]apperr.Violation{{
		Field:         "joinDate",
		RejectedValue: v,
		Message:       "joinDate must be a timestamp such as 2022-01-05T14:28:43.576+0000 or a date such as 2022-01-05",
	}})
}

// request is the body accepted by POST and PUT /users.
type request struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	JoinDate JoinDate `json:"joinDate"`
	Password string   `json:"password"`
	SSN      string   `json:"ssn"`
}

func (r request) user() User {
	return User{
		ID:       r.ID,
		Name:     r.Name,
		JoinDate: time.Time(r.JoinDate),
		Password: r.Password,
		SSN:      r.SSN,
	}
}
