package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderRoster(w io.Writer, cats []models.Cat) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No cats registered yet.")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "EXPERIENCE (YEARS)", "BREED", "SALARY", "MISSION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, cat := range cats {
		mission := "-"
		if cat.HasMission() {
			mission = cat.Mission.Status()
		}
		t.Row(
			strconv.FormatInt(cat.Id, 10),
			cat.Name,
			strconv.Itoa(cat.YearsOfExperience),
			cat.Breed,
			models.FormatSalary(cat.Salary),
			mission,
		)
	}
	fmt.Fprintln(w, t.Render())
}

func renderMissions(w io.Writer, roster *models.Roster) {
	missions := roster.Missions()
	if len(missions) == 0 {
		fmt.Fprintln(w, "No missions assigned yet.")
		return
	}
	fmt.Fprintln(w, "Missions Overview")
	for _, cat := range missions {
		fmt.Fprintf(w, "\n%s's Mission\nStatus: %s\n", cat.Name, cat.Mission.Status())
		for _, target := range cat.Mission.Targets {
			mark := "[ ]"
			if target.Completed {
				mark = "[x]"
			}
			fmt.Fprintf(w, "  %s #%d %s - %s\n", mark, target.Id, target.Name, target.Country)
			if target.Notes != "" {
				fmt.Fprintf(w, "      %s\n", target.Notes)
			}
		}
	}
}
