package tui

import (
	"strings"

	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/Makepad-fr/menuadmin/internal/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label string
	input textinput.Model
}

// editor is the add/edit form shown in place of the list.
type editor struct {
	tab    tabID
	id     string // "" when adding
	fields []field
	focus  int
	err    string
}

func newEditor(tab tabID, id string, labels, values, placeholders []string) *editor {
	e := &editor{tab: tab, id: id}
	for i, label := range labels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 500
		if i < len(placeholders) {
			ti.Placeholder = placeholders[i]
		}
		if i < len(values) {
			ti.SetValue(values[i])
			ti.CursorEnd()
		}
		e.fields = append(e.fields, field{label: label, input: ti})
	}
	e.fields[0].input.Focus()
	return e
}

func newCategoryEditor(c *model.Category) *editor {
	labels := []string{"Name", "Description", "Image"}
	placeholders := []string{"Desserts", "optional", "URL or local file"}
	if c == nil {
		return newEditor(categoriesTab, "", labels, nil, placeholders)
	}
	f := form.CategoryFormFrom(*c)
	return newEditor(categoriesTab, c.ID, labels, []string{f.Name, f.Description, f.Image}, placeholders)
}

func newMenuItemEditor(m *model.MenuItem) *editor {
	labels := []string{"Name", "Description", "Price", "Category", "Image"}
	placeholders := []string{"Tiramisu", "optional", "6.50", "category id", "URL or local file"}
	if m == nil {
		return newEditor(menuItemsTab, "", labels, nil, placeholders)
	}
	f := form.MenuItemFormFrom(*m)
	return newEditor(menuItemsTab, m.ID, labels, []string{f.Name, f.Description, f.Price, f.CategoryID, f.Image}, placeholders)
}

func (e *editor) value(i int) string { return e.fields[i].input.Value() }

func (e *editor) categoryForm() form.CategoryForm {
	return form.CategoryForm{Name: e.value(0), Description: e.value(1), Image: e.value(2)}
}

func (e *editor) menuItemForm() form.MenuItemForm {
	return form.MenuItemForm{
		Name:        e.value(0),
		Description: e.value(1),
		Price:       e.value(2),
		CategoryID:  e.value(3),
		Image:       e.value(4),
	}
}

func (e *editor) validate() error {
	if e.tab == categoriesTab {
		return e.categoryForm().Validate()
	}
	return e.menuItemForm().Validate()
}

// move shifts focus by delta, wrapping around.
func (e *editor) move(delta int) tea.Cmd {
	e.fields[e.focus].input.Blur()
	e.focus = (e.focus + delta + len(e.fields)) % len(e.fields)
	return e.fields[e.focus].input.Focus()
}

func (e *editor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.fields[e.focus].input, cmd = e.fields[e.focus].input.Update(msg)
	return cmd
}

func (e *editor) view(noun string) string {
	t := ui.Current()
	title := "Add " + noun
	if e.id != "" {
		title = "Edit " + noun
	}
	var b strings.Builder
	b.WriteString(t.Title.Render(title))
	if e.err != "" {
		b.WriteString("  " + t.Error.Render(e.err))
	}
	b.WriteString("\n\n")
	for i, f := range e.fields {
		label := f.label
		if i == e.focus {
			label = t.Accent.Render(label)
		} else {
			label = t.Muted.Render(label)
		}
		b.WriteString(label + "\n" + f.input.View() + "\n")
	}
	b.WriteString("\n" + t.Muted.Render("tab next field • enter save • esc cancel"))
	return b.String()
}
