// Package tui is the interactive two-tab admin: one tab for categories,
// one for menu items.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Makepad-fr/menuadmin/internal/controller"
	"github.com/Makepad-fr/menuadmin/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tabID int

const (
	categoriesTab tabID = iota
	menuItemsTab
)

func (t tabID) String() string {
	if t == menuItemsTab {
		return "Menu Items"
	}
	return "Categories"
}

func (t tabID) noun() string {
	if t == menuItemsTab {
		return "menu item"
	}
	return "category"
}

const noteTTL = 4 * time.Second

type keyMap struct {
	Next, Prev, Add, Edit, Delete, Refresh, Quit key.Binding
	Confirm, Cancel                              key.Binding
	Submit, NextField, PrevField                 key.Binding
}

var keys = keyMap{
	Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Confirm:   key.NewBinding(key.WithKeys("y", "Y")),
	Cancel:    key.NewBinding(key.WithKeys("n", "N", "esc")),
	Submit:    key.NewBinding(key.WithKeys("enter")),
	NextField: key.NewBinding(key.WithKeys("tab", "down")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up")),
}

type (
	loadedMsg struct{ err error }
	// resultMsg reports a finished create, update or delete.
	resultMsg struct {
		tab  tabID
		verb string
		name string
		err  error
	}
	clearNoteMsg struct{ seq int }
)

type notice struct {
	text string
	err  bool
}

type Model struct {
	ctx   context.Context
	cats  *controller.CategoryTab
	items *controller.MenuItemTab

	active  tabID
	lists   [2]list.Model
	loading bool
	form    *editor
	confirm row // row awaiting delete confirmation
	note    notice
	noteSeq int
	// actions dispatched per tab and not yet reported back
	submitting, deleting [2]int

	width, height int
}

func New(ctx context.Context, cats *controller.CategoryTab, items *controller.MenuItemTab) Model {
	m := Model{ctx: ctx, cats: cats, items: items, loading: true, width: 80, height: 24}
	for i := range m.lists {
		m.lists[i] = newList(tabID(i))
	}
	m.resize()
	return m
}

func newList(id tabID) list.Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	t := ui.Current()
	l.Title = id.String()
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = t.Muted
	l.Styles.PaginationStyle = t.Muted
	l.FilterInput.Prompt = "/ "
	if id == menuItemsTab {
		l.SetStatusBarItemName("menu item", "menu items")
	} else {
		l.SetStatusBarItemName("category", "categories")
	}
	extra := func() []key.Binding {
		return []key.Binding{keys.Next, keys.Add, keys.Edit, keys.Delete, keys.Refresh}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	return l
}

// Run starts the admin and blocks until the user quits or ctx ends.
func Run(ctx context.Context, cats *controller.CategoryTab, items *controller.MenuItemTab) error {
	defer cats.Cancel()
	defer items.Cancel()
	p := tea.NewProgram(New(ctx, cats, items), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd { return m.load() }

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: controller.LoadAll(m.ctx, m.cats, m.items)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		m.loading = false
		cmd := m.sync()
		if msg.err != nil {
			return m, tea.Batch(cmd, m.notify("could not load menu: "+msg.err.Error(), true))
		}
		return m, cmd

	case resultMsg:
		m.settle(msg)
		cmd := m.sync()
		switch {
		case errors.Is(msg.err, controller.ErrSuperseded):
			return m, cmd
		case msg.err != nil:
			return m, tea.Batch(cmd, m.notify(failure(msg), true))
		}
		return m, tea.Batch(cmd, m.notify(fmt.Sprintf("%s %q %s", msg.tab.noun(), msg.name, msg.verb), false))

	case clearNoteMsg:
		if msg.seq == m.noteSeq {
			m.note = notice{}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.form != nil:
			return m.updateForm(msg)
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.lists[m.active].FilterState() == list.Filtering:
			// typed keys belong to the filter input
		default:
			if next, cmd, ok := m.updateKeys(msg); ok {
				return next, cmd
			}
		}
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, keys.Next), key.Matches(msg, keys.Prev):
		// two tabs: both directions toggle
		m.active = 1 - m.active
		return m, nil, true
	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.load(), true
	case key.Matches(msg, keys.Add):
		if m.active == categoriesTab {
			m.form = newCategoryEditor(nil)
		} else {
			m.form = newMenuItemEditor(nil)
		}
		return m, nil, true
	case key.Matches(msg, keys.Edit):
		r := m.selected()
		if r == nil {
			return m, nil, true
		}
		switch r := r.(type) {
		case categoryRow:
			m.form = newCategoryEditor(&r.c)
		case menuItemRow:
			m.form = newMenuItemEditor(&r.m)
		}
		return m, nil, true
	case key.Matches(msg, keys.Delete):
		m.confirm = m.selected()
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.form = nil
		return m, nil
	case key.Matches(msg, keys.NextField):
		return m, m.form.move(1)
	case key.Matches(msg, keys.PrevField):
		return m, m.form.move(-1)
	case key.Matches(msg, keys.Submit):
		if err := m.form.validate(); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		e := m.form
		m.form = nil
		m.submitting[e.tab]++
		return m, m.submit(e)
	}
	return m, m.form.update(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		r := m.confirm
		m.confirm = nil
		cmd := m.remove(r)
		if cmd != nil {
			m.deleting[m.active]++
		}
		return m, cmd
	case key.Matches(msg, keys.Cancel):
		m.confirm = nil
	}
	return m, nil
}

func (m Model) submit(e *editor) tea.Cmd {
	verb := "created"
	if e.id != "" {
		verb = "updated"
	}
	ctx := m.ctx
	if e.tab == categoriesTab {
		f := e.categoryForm()
		return func() tea.Msg {
			c, err := m.cats.Submit(ctx, e.id, f)
			return resultMsg{tab: categoriesTab, verb: verb, name: pick(c.Name, f.Name), err: err}
		}
	}
	f := e.menuItemForm()
	return func() tea.Msg {
		it, err := m.items.Submit(ctx, e.id, f)
		return resultMsg{tab: menuItemsTab, verb: verb, name: pick(it.Name, f.Name), err: err}
	}
}

func (m Model) remove(r row) tea.Cmd {
	ctx := m.ctx
	switch r.(type) {
	case categoryRow:
		return func() tea.Msg {
			return resultMsg{tab: categoriesTab, verb: "deleted", name: r.Title(), err: m.cats.Delete(ctx, r.ID())}
		}
	case menuItemRow:
		return func() tea.Msg {
			return resultMsg{tab: menuItemsTab, verb: "deleted", name: r.Title(), err: m.items.Delete(ctx, r.ID())}
		}
	}
	return nil
}

// settle forgets the dispatched action msg reports on.
func (m *Model) settle(msg resultMsg) {
	counter := &m.submitting[msg.tab]
	if msg.verb == "deleted" {
		counter = &m.deleting[msg.tab]
	}
	if *counter > 0 {
		*counter--
	}
}

func (m Model) selected() row {
	r, _ := m.lists[m.active].SelectedItem().(row)
	return r
}

// sync copies both controller lists into the list widgets.
func (m *Model) sync() tea.Cmd {
	cats := m.cats.Items()
	return tea.Batch(
		m.lists[categoriesTab].SetItems(categoryRows(cats)),
		m.lists[menuItemsTab].SetItems(menuItemRows(m.items.Items(), cats)),
	)
}

func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.noteSeq++
	seq := m.noteSeq
	m.note = notice{text: text, err: isErr}
	return tea.Tick(noteTTL, func(time.Time) tea.Msg { return clearNoteMsg{seq: seq} })
}

func (m *Model) resize() {
	for i := range m.lists {
		m.lists[i].SetSize(max(m.width-4, 20), max(m.height-7, 5))
	}
}

func failure(msg resultMsg) string {
	var up *controller.UploadError
	if errors.As(msg.err, &up) {
		return up.Error()
	}
	verb := strings.TrimSuffix(msg.verb, "d")
	return fmt.Sprintf("could not %s %s: %v", verb, msg.tab.noun(), msg.err)
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

func (m Model) View() string {
	t := ui.Current()

	tabs := make([]string, 0, 2)
	for i := range m.lists {
		id := tabID(i)
		label := fmt.Sprintf("%s (%d)", id, len(m.lists[i].Items()))
		if id == m.active {
			tabs = append(tabs, t.TabOn.Render(label))
		} else {
			tabs = append(tabs, t.TabOff.Render(label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if status := m.status(); status != "" {
		header += "  " + t.Pending.Render(status)
	}

	var body string
	switch {
	case m.form != nil:
		body = m.form.view(m.form.tab.noun())
	default:
		body = m.lists[m.active].View()
	}

	lines := []string{header, "", body}
	if m.confirm != nil {
		lines = append(lines, t.Error.Render(fmt.Sprintf("Delete %s %q? (y/n)", m.active.noun(), m.confirm.Title())))
	}
	if m.note.text != "" {
		if m.note.err {
			lines = append(lines, t.Error.Render(t.SymFail+" "+m.note.text))
		} else {
			lines = append(lines, t.Success.Render(t.SymOK+" "+m.note.text))
		}
	}
	return ui.PanelString(strings.Join(lines, "\n"))
}

func (m Model) status() string {
	if m.loading {
		return "• loading"
	}
	switch {
	case m.submitting[m.active] > 0:
		return "• " + controller.Submitting.String()
	case m.deleting[m.active] > 0:
		return "• " + controller.Deleting.String()
	}
	var st controller.State
	if m.active == categoriesTab {
		st = m.cats.State()
	} else {
		st = m.items.State()
	}
	if st == controller.Idle {
		return ""
	}
	return "• " + st.String()
}
