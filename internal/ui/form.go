package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charlesng35/favorites/internal/client"
	"github.com/charlesng35/favorites/internal/models"
)

const (
	fieldTitle = iota
	fieldType
	fieldDirector
	fieldBudget
	fieldLocation
	fieldDuration
	fieldYearTime
	fieldDescription
	fieldCount
)

type formField struct {
	label       string
	placeholder string
	required    string
}

var formFields = [fieldCount]formField{
	fieldTitle:       {"Title", "Inception", "Title is required"},
	fieldType:        {"Type", "MOVIE or TV_SHOW", "Type must be MOVIE or TV_SHOW"},
	fieldDirector:    {"Director", "Christopher Nolan", "Director is required"},
	fieldBudget:      {"Budget", "$160M", "Budget is required"},
	fieldLocation:    {"Location", "Los Angeles, Paris", "Location is required"},
	fieldDuration:    {"Duration", "148 min", "Duration is required"},
	fieldYearTime:    {"Year", "2010", "Year is required"},
	fieldDescription: {"Description", "optional", ""},
}

// formModel is the add/edit dialog.
type formModel struct {
	inputs  []textinput.Model
	focus   int
	editing *models.Favorite
	errors  map[int]string
}

func newForm(editing *models.Favorite) formModel {
	f := formModel{
		inputs:  make([]textinput.Model, fieldCount),
		editing: editing,
		errors:  map[int]string{},
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = formFields[i].placeholder
		in.CharLimit = 256
		in.Width = 48
		f.inputs[i] = in
	}

	if editing != nil {
		f.inputs[fieldTitle].SetValue(editing.Title)
		f.inputs[fieldType].SetValue(string(editing.Type))
		f.inputs[fieldDirector].SetValue(editing.Director)
		f.inputs[fieldBudget].SetValue(editing.Budget)
		f.inputs[fieldLocation].SetValue(editing.Location)
		f.inputs[fieldDuration].SetValue(editing.Duration)
		f.inputs[fieldYearTime].SetValue(editing.YearTime)
		if editing.Description != nil {
			f.inputs[fieldDescription].SetValue(*editing.Description)
		}
	}

	f.inputs[0].Focus()
	return f
}

func (f *formModel) setFocus(index int) {
	f.inputs[f.focus].Blur()
	f.focus = (index + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formModel) lastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f *formModel) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *formModel) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

func (f *formModel) favoriteType() models.FavoriteType {
	raw := strings.ToUpper(f.value(fieldType))
	raw = strings.ReplaceAll(raw, " ", "_")
	return models.FavoriteType(raw)
}

// validate applies the same required-field rules as the server and records
// a message per failing field.
func (f *formModel) validate() bool {
	f.errors = map[int]string{}
	for i, field := range formFields {
		if field.required == "" {
			continue
		}
		if f.value(i) == "" {
			f.errors[i] = field.required
		}
	}
	if _, missing := f.errors[fieldType]; !missing && !f.favoriteType().Valid() {
		f.errors[fieldType] = formFields[fieldType].required
	}
	return len(f.errors) == 0
}

func (f *formModel) input() client.FavoriteInput {
	in := client.FavoriteInput{
		Title:    f.value(fieldTitle),
		Type:     f.favoriteType(),
		Director: f.value(fieldDirector),
		Budget:   f.value(fieldBudget),
		Location: f.value(fieldLocation),
		Duration: f.value(fieldDuration),
		YearTime: f.value(fieldYearTime),
	}
	if description := f.value(fieldDescription); description != "" {
		in.Description = &description
	}
	return in
}

// patch sends every field, like the original form does on edit. An existing
// description that was cleared is sent as an empty string.
func (f *formModel) patch() client.FavoritePatch {
	in := f.input()
	patch := client.FavoritePatch{
		Title:    &in.Title,
		Type:     &in.Type,
		Director: &in.Director,
		Budget:   &in.Budget,
		Location: &in.Location,
		Duration: &in.Duration,
		YearTime: &in.YearTime,
	}
	switch {
	case in.Description != nil:
		patch.Description = in.Description
	case f.editing != nil && f.editing.Description != nil:
		empty := ""
		patch.Description = &empty
	}
	return patch
}

func (f *formModel) view() string {
	var b strings.Builder
	title := "Add Favorite"
	if f.editing != nil {
		title = "Edit Favorite"
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		b.WriteString(styles.label.Render(formFields[i].label))
		b.WriteString(in.View())
		b.WriteString("\n")
		if msg, ok := f.errors[i]; ok {
			b.WriteString(styles.label.Render(""))
			b.WriteString(styles.err.Render(msg))
			b.WriteString("\n")
		}
	}
	return b.String()
}
