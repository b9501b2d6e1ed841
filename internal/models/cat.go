package models

import "fmt"

type Cat struct {
	Id                int64    `json:"id"`
	Name              string   `json:"name"`
	YearsOfExperience int      `json:"years_of_experience"`
	Breed             string   `json:"breed"`
	Salary            float64  `json:"salary"`
	Mission           *Mission `json:"mission,omitempty"`
}

// CatCreate is the body of a registration request.
type CatCreate struct {
	Name              string  `json:"name"`
	YearsOfExperience int     `json:"years_of_experience"`
	Breed             string  `json:"breed"`
	Salary            float64 `json:"salary"`
}

type CatUpdate struct {
	Salary float64 `json:"salary"`
}

// CatForm holds the raw registration form values as the operator typed them.
type CatForm struct {
	Name              string `form:"name" binding:"required,notblank"`
	YearsOfExperience string `form:"years_of_experience" binding:"required,wholenumber"`
	Breed             string `form:"breed" binding:"required,breed"`
	Salary            string `form:"salary" binding:"required,nonnegative"`
}

func (c Cat) HasMission() bool {
	return c.Mission != nil
}

func FormatSalary(salary float64) string {
	return fmt.Sprintf("%.2f", salary)
}
