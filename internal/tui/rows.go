package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/Makepad-fr/menuadmin/internal/ui"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// row adapts a category or menu item to bubbles/list.Item.
type row interface {
	list.Item
	ID() string
	Title() string
	Detail() string
}

type categoryRow struct{ c model.Category }

func (r categoryRow) ID() string          { return r.c.ID }
func (r categoryRow) Title() string       { return r.c.Name }
func (r categoryRow) Detail() string      { return model.Deref(r.c.Description) }
func (r categoryRow) FilterValue() string { return r.c.Name }

type menuItemRow struct {
	m        model.MenuItem
	category string // label of m.CategoryID, "" when dangling
}

func (r menuItemRow) ID() string    { return r.m.ID }
func (r menuItemRow) Title() string { return r.m.Name }
func (r menuItemRow) Detail() string {
	price := strconv.FormatFloat(r.m.Price, 'f', 2, 64)
	if r.category == "" {
		return price
	}
	return price + "  " + r.category
}
func (r menuItemRow) FilterValue() string { return r.m.Name + " " + r.category }

func categoryRows(cats []model.Category) []list.Item {
	out := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryRow{c: c})
	}
	return out
}

func menuItemRows(items []model.MenuItem, cats []model.Category) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, m := range items {
		out = append(out, menuItemRow{m: m, category: model.CategoryLabel(cats, m.CategoryID)})
	}
	return out
}

// rowDelegate renders each row on a single line.
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	t := ui.Current()
	line := ui.Truncate(r.Title(), 40)
	if detail := r.Detail(); detail != "" {
		line += "  " + t.Muted.Render(ui.Truncate(detail, 60))
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}
