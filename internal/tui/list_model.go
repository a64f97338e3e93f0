package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/taskbit/internal/filter"
	"github.com/balkashynov/taskbit/internal/inflight"
	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/parser"
)

// TaskService is what the list view needs from the API client
type TaskService interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status models.Status) (*models.Task, error)
}

// ErrSessionEnded is reported by the list view when the backend ended the session
var ErrSessionEnded = errors.New("session ended")

// ListModel represents the TUI model for listing tasks
type ListModel struct {
	width  int
	height int

	service   TaskService
	tracker   *inflight.Tracker
	isExpired func(error) bool
	now       func() time.Time

	// all is the last known server state, visible the filtered view of it
	all      []models.Task
	visible  []models.Task
	spec     models.FilterSpec
	selected int // index in visible

	// UI state
	focus   Focus
	search  textinput.Model
	spinner spinner.Model
	loading bool
	notice  string
	err     error

	// Pagination
	currentPage  int
	tasksPerPage int
}

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
)

// tasksLoadedMsg carries the answer to a full list refresh
type tasksLoadedMsg struct {
	ticket inflight.Ticket
	tasks  []models.Task
	err    error
}

// statusUpdatedMsg carries the answer to a single status change
type statusUpdatedMsg struct {
	ticket inflight.Ticket
	id     int64
	task   *models.Task
	err    error
}

// NewListModel creates a new list TUI model. isExpired tells session expiry
// apart from other errors; it may be nil.
func NewListModel(service TaskService, tracker *inflight.Tracker, spec models.FilterSpec, isExpired func(error) bool) ListModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title contains..."
	search.CharLimit = 100
	search.SetValue(spec.SearchTitle)
	search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	if spec.SortBy == "" {
		spec.SortBy = models.SortNone
	}
	if spec.SortOrder == "" {
		spec.SortOrder = models.SortAsc
	}
	if isExpired == nil {
		isExpired = func(error) bool { return false }
	}

	return ListModel{
		service:      service,
		tracker:      tracker,
		isExpired:    isExpired,
		now:          time.Now,
		spec:         spec,
		focus:        FocusTable,
		search:       search,
		spinner:      sp,
		tasksPerPage: 10,
		visible:      []models.Task{},
		loading:      true,
	}
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh())
}

// Err returns the error that closed the view, if any
func (m ListModel) Err() error { return m.err }

// refresh starts a full list fetch tagged with a new list ticket
func (m ListModel) refresh() tea.Cmd {
	ticket := m.tracker.Begin(inflight.TasksKey)
	service := m.service
	return func() tea.Msg {
		tasks, err := service.ListTasks(context.Background())
		return tasksLoadedMsg{ticket: ticket, tasks: tasks, err: err}
	}
}

// setStatus updates the selected task optimistically and sends the change
func (m ListModel) setStatus(status models.Status) (ListModel, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok || task.Status == status {
		return m, nil
	}

	ticket := m.tracker.Begin(inflight.TaskKey(task.ID))
	m.replaceTask(func(t *models.Task) bool { return t.ID == task.ID }, func(t *models.Task) { t.Status = status })
	m.notice = fmt.Sprintf("Updating #%d → %s...", task.ID, status)

	service := m.service
	id := task.ID
	return m, func() tea.Msg {
		updated, err := service.UpdateTaskStatus(context.Background(), id, status)
		return statusUpdatedMsg{ticket: ticket, id: id, task: updated, err: err}
	}
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// header, filter bar, help and borders
		availableHeight := m.height - 12
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.tasksPerPage = availableHeight
		m.clampSelection()
		return m, nil

	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg)

	case statusUpdatedMsg:
		return m.handleStatusUpdated(msg)

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg)
		}
		return m.handleTableKeys(msg)
	}

	return m, nil
}

func (m ListModel) handleTasksLoaded(msg tasksLoadedMsg) (ListModel, tea.Cmd) {
	// a newer refresh is on its way
	if !m.tracker.Current(msg.ticket) {
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		if m.isExpired(msg.err) {
			m.err = ErrSessionEnded
			return m, tea.Quit
		}
		m.notice = "Error: " + msg.err.Error()
		return m, nil
	}

	// keep local versions of tasks whose own update started after this fetch
	merged := make([]models.Task, 0, len(msg.tasks))
	for _, fetched := range msg.tasks {
		if m.tracker.ChangedSince(inflight.TaskKey(fetched.ID), msg.ticket.Seq) {
			if local, ok := m.findTask(fetched.ID); ok {
				merged = append(merged, local)
				continue
			}
		}
		merged = append(merged, fetched)
	}
	m.all = merged
	m.notice = fmt.Sprintf("Loaded %d tasks", len(merged))
	m.recompute()
	return m, nil
}

func (m ListModel) handleStatusUpdated(msg statusUpdatedMsg) (ListModel, tea.Cmd) {
	if !m.tracker.Current(msg.ticket) {
		return m, nil
	}

	if msg.err != nil {
		if m.isExpired(msg.err) {
			m.err = ErrSessionEnded
			return m, tea.Quit
		}
		// the optimistic change may be wrong; reload the truth
		m.notice = "Error: " + msg.err.Error()
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.refresh())
	}

	if msg.task != nil {
		updated := *msg.task
		m.replaceTask(func(t *models.Task) bool { return t.ID == msg.id }, func(t *models.Task) { *t = updated })
	}
	m.notice = fmt.Sprintf("Task #%d updated", msg.id)
	return m, nil
}

// handleTableKeys handles key input when the table has focus
func (m ListModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		return m.moveSelection(-1), nil

	case "down", "j":
		return m.moveSelection(1), nil

	case "left", "h":
		return m.changePage(-1), nil

	case "right", "l":
		return m.changePage(1), nil

	case "/":
		m.focus = FocusSearch
		cmd := m.search.Focus()
		return m, cmd

	case "s":
		m.spec.Status = cycle(append([]models.Status{""}, models.Statuses...), m.spec.Status)
		m.recompute()
		return m, nil

	case "p":
		m.spec.Priority = cycle(append([]models.Priority{""}, models.Priorities...), m.spec.Priority)
		m.recompute()
		return m, nil

	case "c":
		m.spec.Course = cycle(append([]string{""}, filter.Courses(m.all)...), m.spec.Course)
		m.recompute()
		return m, nil

	case "o":
		m.spec.SortBy = cycle(models.SortKeys, m.spec.SortBy)
		m.recompute()
		return m, nil

	case "r":
		if m.spec.SortOrder == models.SortDesc {
			m.spec.SortOrder = models.SortAsc
		} else {
			m.spec.SortOrder = models.SortDesc
		}
		m.recompute()
		return m, nil

	case "x":
		m.spec = models.DefaultFilterSpec()
		m.search.SetValue("")
		m.recompute()
		return m, nil

	case "R":
		m.loading = true
		m.notice = "Refreshing..."
		return m, tea.Batch(m.spinner.Tick, m.refresh())

	case "d":
		return m.setStatus(models.StatusCompleted)

	case "i":
		return m.setStatus(models.StatusInProgress)

	case "u":
		return m.setStatus(models.StatusPending)
	}

	return m, nil
}

// handleSearchKeys handles key input when in search mode. The view filters as you type.
func (m ListModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = FocusTable
		m.search.Blur()
		m.search.SetValue("")
		m.spec.SearchTitle = ""
		m.recompute()
		return m, nil

	case "enter":
		m.focus = FocusTable
		m.search.Blur()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.spec.SearchTitle = m.search.Value()
	m.recompute()
	return m, cmd
}

// recompute derives the visible rows from all and spec
func (m *ListModel) recompute() {
	m.visible = filter.Apply(m.all, m.spec)
	m.clampSelection()
}

func (m *ListModel) clampSelection() {
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if m.tasksPerPage > 0 {
		m.currentPage = m.selected / m.tasksPerPage
	}
}

func (m *ListModel) replaceTask(match func(*models.Task) bool, apply func(*models.Task)) {
	all := slices.Clone(m.all)
	for i := range all {
		if match(&all[i]) {
			apply(&all[i])
		}
	}
	m.all = all
	m.recompute()
}

func (m ListModel) findTask(id int64) (models.Task, bool) {
	for _, t := range m.all {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (m ListModel) selectedTask() (models.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return models.Task{}, false
	}
	return m.visible[m.selected], true
}

func (m ListModel) moveSelection(delta int) ListModel {
	next := m.selected + delta
	if next < 0 || next >= len(m.visible) {
		return m
	}
	m.selected = next
	m.clampSelection()
	return m
}

func (m ListModel) changePage(delta int) ListModel {
	maxPages := (len(m.visible) + m.tasksPerPage - 1) / m.tasksPerPage
	page := m.currentPage + delta
	if page < 0 || page >= maxPages {
		return m
	}
	m.selected = page * m.tasksPerPage
	m.clampSelection()
	return m
}

// cycle returns the value after current in values, wrapping around
func cycle[T comparable](values []T, current T) T {
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}

// View renders the TUI
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTaskTable(leftWidth),
		" ",
		m.renderTaskDetails(rightWidth),
	)

	bottom := m.renderHelpBar()
	if m.focus == FocusSearch {
		bottom = m.renderSearchBar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderFilterBar(),
		content,
		m.renderNotice(),
		bottom,
	)
}

// renderFilterBar shows the active filters and per-status counters
func (m ListModel) renderFilterBar() string {
	counts := filter.CountByStatus(m.all)
	parts := []string{}
	for _, s := range models.Statuses {
		parts = append(parts, fmt.Sprintf("%s %d", s, counts[s]))
	}

	active := []string{}
	if m.spec.Status != "" {
		active = append(active, "status="+string(m.spec.Status))
	}
	if m.spec.Priority != "" {
		active = append(active, "priority="+string(m.spec.Priority))
	}
	if m.spec.Course != "" {
		active = append(active, "course="+m.spec.Course)
	}
	if m.spec.SearchTitle != "" {
		active = append(active, fmt.Sprintf("title~%q", m.spec.SearchTitle))
	}
	if m.spec.SortBy != models.SortNone {
		active = append(active, fmt.Sprintf("sort=%s %s", m.spec.SortBy, m.spec.SortOrder))
	}
	if len(active) == 0 {
		active = append(active, "no filters")
	}

	left := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("taskbit")
	stats := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(strings.Join(parts, " · "))
	filters := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(strings.Join(active, "  "))

	return lipgloss.NewStyle().Width(m.width).Render(left + "  " + stats + "\n" + filters)
}

// renderTaskTable renders the left panel with the task table
func (m ListModel) renderTaskTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	header := fmt.Sprintf("Tasks (%d/%d)", len(m.visible), len(m.all))
	if m.loading {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		msg := "No tasks found"
		if m.spec.IsActive() {
			msg = "No tasks match the current filters (x to clear)"
		}
		b.WriteString(emptyStyle.Render(msg))
		return m.panel(width).Render(b.String())
	}

	availableWidth := width - 4
	idWidth := 5
	statusWidth := 12
	prioWidth := 6
	dueWidth := 9
	titleWidth := availableWidth - idWidth - statusWidth - prioWidth - dueWidth - 6
	if titleWidth < 15 {
		titleWidth = 15
	}

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Padding(0, 1)
	headers := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
		idWidth, "ID",
		titleWidth, "TITLE",
		statusWidth, "STATUS",
		prioWidth, "PRIO",
		dueWidth, "DUE")
	b.WriteString(columnHeaderStyle.Render(headers))
	b.WriteString("\n")

	startIndex := m.currentPage * m.tasksPerPage
	endIndex := min(startIndex+m.tasksPerPage, len(m.visible))
	today := models.DateOf(m.now())

	for i := startIndex; i < endIndex; i++ {
		task := m.visible[i]

		title := truncate(task.Title, titleWidth)
		status := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor(string(task.Status)))).
			Render(fmt.Sprintf("%-*s", statusWidth, string(task.Status)))
		prio := lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(task.Priority.Weight()))).
			Render(fmt.Sprintf("%-*s", prioWidth, orDash(string(task.Priority))))

		dueText, dueColor := "-", ColorDisabledText
		if task.HasDueDate() {
			days := int(task.DueDate.Sub(today.Time).Hours() / 24)
			switch {
			case task.IsCompleted():
				dueText, dueColor = task.DueDate.Format("02/01"), ColorDisabledText
			case days < 0:
				dueText, dueColor = "OVERDUE", ColorError
			case days == 0:
				dueText, dueColor = "TODAY", ColorWarning
			case days == 1:
				dueText, dueColor = "TOMORROW", ColorWarning
			case days <= 7:
				dueText, dueColor = fmt.Sprintf("%dd", days), ColorAccentBright
			default:
				dueText, dueColor = task.DueDate.Format("02/01"), ColorPrimaryText
			}
		}
		due := lipgloss.NewStyle().Foreground(lipgloss.Color(dueColor)).Render(fmt.Sprintf("%-*s", dueWidth, dueText))

		row := fmt.Sprintf("%-*s %-*s %s %s %s",
			idWidth, fmt.Sprintf("#%d", task.ID),
			titleWidth, title,
			status, prio, due)

		if i == m.selected {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorAccentBright)).
				Bold(true).
				Render("›" + row))
		} else {
			b.WriteString(" " + row)
		}
		b.WriteString("\n")
	}

	if m.tasksPerPage < len(m.visible) {
		totalPages := (len(m.visible) + m.tasksPerPage - 1) / m.tasksPerPage
		pageInfo := fmt.Sprintf("Page %d/%d", m.currentPage+1, totalPages)
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1).
			Render(pageInfo))
	}

	return m.panel(width).Render(b.String())
}

// renderTaskDetails renders the right panel with task details
func (m ListModel) renderTaskDetails(width int) string {
	var b strings.Builder

	task, ok := m.selectedTask()
	if !ok {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width - 2).
			Render("taskbit"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(2).
			Render("Select a task to view details"))
		return m.panel(width).Render(b.String())
	}

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Width(width - 2).
		Render(task.Title))
	b.WriteString("\n\n")

	field := func(label, value, color string) {
		if value == "" {
			return
		}
		b.WriteString(label + ": ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(value))
		b.WriteString("\n")
	}

	field("Status", string(task.Status), statusColor(string(task.Status)))
	field("Priority", string(task.Priority), priorityColor(task.Priority.Weight()))
	field("Course", task.Course, ColorAccentBright)
	field("Due", parser.FormatDueDate(task.DueDate, m.now()), ColorWarning)
	if task.CompletedAt != nil {
		field("Completed", task.CompletedAt.Local().Format("02/01/2006 15:04"), ColorSuccess)
	}

	if task.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Width(width - 4).
			Render(task.Description))
	}

	return m.panel(width).Render(b.String())
}

func (m ListModel) panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)
}

func (m ListModel) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	color := ColorSecondaryText
	if strings.HasPrefix(m.notice, "Error") {
		color = ColorError
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.notice)
}

// renderSearchBar renders the search bar when active
func (m ListModel) renderSearchBar() string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(m.width - 2).
		Render(m.search.View())
}

// renderHelpBar renders the help bar with hotkey hints
func (m ListModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("↑/↓ nav · ←/→ page · / search · s status · p prio · c course · o sort · r reverse · x clear · d done · i start · u reopen · R refresh · q quit")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
