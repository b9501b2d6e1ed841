package spycatconsole

import (
	"html/template"

	"github.com/4oBuko/spy-cat-console/internal/models"
)

var templateFuncs = template.FuncMap{
	"salary": models.FormatSalary,
}

type catRow struct {
	models.Cat
	Editing     bool
	SalaryInput string
}

type missionCard struct {
	CatName string
	Mission models.Mission
}

type indexView struct {
	LoadError string
	Alert     string
	Form      models.CatForm
	FormError string
	Breeds    []string
	Cats      []catRow
	Missions  []missionCard
}

type confirmView struct {
	Question string
	Cat      models.Cat
	Action   string
}

// newIndexView snapshots the session for rendering and consumes its alert.
func newIndexView(sess *models.Session) indexView {
	view := indexView{
		LoadError: sess.LoadError,
		Alert:     sess.TakeAlert(),
		Form:      sess.Form,
		FormError: sess.FormError,
		Breeds:    models.Breeds(),
	}
	for _, cat := range sess.Roster.Cats() {
		row := catRow{Cat: cat}
		if sess.IsEditing(cat.Id) {
			row.Editing = true
			row.SalaryInput = sess.Editing.Input
		}
		view.Cats = append(view.Cats, row)
	}
	for _, cat := range sess.Roster.Missions() {
		view.Missions = append(view.Missions, missionCard{CatName: cat.Name, Mission: *cat.Mission})
	}
	return view
}
