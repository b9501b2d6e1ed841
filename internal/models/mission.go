package models

type Mission struct {
	Id        int64    `json:"id"`
	Completed bool     `json:"is_completed"`
	Targets   []Target `json:"targets"`
}

func (m Mission) Status() string {
	if m.Completed {
		return "Completed"
	}
	return "In Progress"
}
