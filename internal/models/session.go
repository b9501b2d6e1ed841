package models

import "time"

// Session is the page state of one operator's browser session. It lives
// only in memory; the agency remains the source of truth.
type Session struct {
	Id        string
	Roster    *Roster
	Loaded    bool
	LoadError string
	Form      CatForm
	FormError string
	Editing   *SalaryEdit
	Alert     string
	LastSeen  time.Time
}

// SalaryEdit is a roster row in edit mode with the raw input.
type SalaryEdit struct {
	CatId int64
	Input string
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		Id:       id,
		Roster:   NewRoster(nil),
		LastSeen: now,
	}
}

// TakeAlert returns the pending alert and clears it.
func (s *Session) TakeAlert() string {
	alert := s.Alert
	s.Alert = ""
	return alert
}

func (s *Session) IsEditing(catId int64) bool {
	return s.Editing != nil && s.Editing.CatId == catId
}
