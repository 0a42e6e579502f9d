package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chronoscope/scope"
	"chronoscope/theme"
	"chronoscope/timeinput"
	"chronoscope/timeutil"
	"chronoscope/tui/components"
)

// changeMsg carries an onChange notification into the program loop.
type changeMsg struct {
	Range timeutil.TimeRange
	Meta  scope.ChangeMeta
}

// liveToggledMsg carries an onToggle notification into the program loop.
type liveToggledMsg struct{ Live bool }

type clockMsg time.Time

type side int

const (
	fromSide side = iota
	toSide
)

type absFocus int

const (
	focusCalendar absFocus = iota
	focusTime
)

// hitbox remembers where the last frame drew the toolbar and dropdown so
// pointer presses can be classified as inside or outside the picker.
type hitbox struct {
	mu            sync.Mutex
	toolbar       components.Toolbar
	toolbarHeight int
	dropX, dropY  int
	dropW, dropH  int
}

func (h *hitbox) set(tb components.Toolbar, tbHeight, x, y, w, hgt int) {
	h.mu.Lock()
	h.toolbar, h.toolbarHeight = tb, tbHeight
	h.dropX, h.dropY, h.dropW, h.dropH = x, y, w, hgt
	h.mu.Unlock()
}

// Contains reports whether ev landed on the toolbar or the dropdown.
func (h *hitbox) Contains(ev scope.PointerEvent) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ev.Y >= 0 && ev.Y < h.toolbarHeight {
		return true
	}
	return ev.X >= h.dropX && ev.X < h.dropX+h.dropW &&
		ev.Y >= h.dropY && ev.Y < h.dropY+h.dropH
}

func (h *hitbox) toolbarHit(x, y int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if y < 0 || y >= h.toolbarHeight {
		return "", false
	}
	return h.toolbar.Hit(x)
}

// Model is the bubbletea model driving one picker.
type Model struct {
	picker      *scope.ChronoScope
	theme       theme.Theme
	bus         *scope.PointerBus
	hits        *hitbox
	logger      *zap.Logger
	now         func() time.Time
	showSeconds bool

	width  int
	height int

	filter      textinput.Model
	quickCursor int

	relValue  textinput.Model
	unitIndex int

	side      side
	absFocus  absFocus
	dayCursor [2]int
	timeField [2]int

	live        bool
	lastRefresh time.Time
	last        *changeMsg
	quitting    bool
}

func newModel(picker *scope.ChronoScope, bus *scope.PointerBus, hits *hitbox, th theme.Theme, showSeconds bool, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	filter := textinput.New()
	filter.Placeholder = "Search ranges…"
	filter.Prompt = "⌕ "
	filter.CharLimit = 40

	rel := textinput.New()
	rel.Prompt = ""
	rel.CharLimit = 6
	rel.Width = 6
	rel.SetValue(picker.Relative.Value())

	m := Model{
		picker:      picker,
		theme:       th,
		bus:         bus,
		hits:        hits,
		logger:      logger,
		now:         time.Now,
		showSeconds: showSeconds,
		width:       100,
		height:      30,
		filter:      filter,
		relValue:    rel,
		live:        picker.Live.IsLive(),
	}
	for i, u := range picker.Relative.TimeUnits() {
		if u.Value == picker.Relative.Unit() {
			m.unitIndex = i
		}
	}
	return m
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

// Init starts the cursor blink and the status clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, clockTick())
}

// Update handles terminal events and picker notifications.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case clockMsg:
		return m, clockTick()

	case changeMsg:
		m.last = &msg
		if msg.Meta.Source == scope.SourceLive {
			m.lastRefresh = m.now()
		}
		m.syncInputs()
		return m, nil

	case liveToggledMsg:
		m.live = msg.Live
		m.lastRefresh = m.now()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			cmd := m.press(msg.X, msg.Y)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

// press publishes a pointer event, then runs any toolbar action under it.
func (m *Model) press(x, y int) tea.Cmd {
	m.bus.Publish(scope.PointerEvent{X: x, Y: y})

	name, ok := m.hits.toolbarHit(x, y)
	if !ok {
		m.syncFocus()
		return nil
	}
	m.logger.Debug("toolbar press", zap.String("button", name))
	switch name {
	case "trigger":
		m.picker.Range.Toggle()
	case "shift-back":
		m.picker.Nav.ShiftBack()
	case "shift-forward":
		m.picker.Nav.ShiftForward()
	case "zoom-in":
		m.picker.Nav.ZoomIn()
	case "zoom-out":
		m.picker.Nav.ZoomOut()
	case "live":
		m.picker.Live.Toggle()
		m.live = m.picker.Live.IsLive()
	}
	return m.syncFocus()
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.picker.Range.IsOpen() {
		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "enter", " ", "o":
			m.picker.Range.Open()
			if m.picker.Mode() == scope.ModeAbsolute {
				m.enterAbsolute()
			}
		case "[":
			m.picker.Nav.ShiftBack()
		case "]":
			m.picker.Nav.ShiftForward()
		case "-":
			m.picker.Nav.ZoomOut()
		case "+", "=":
			m.picker.Nav.ZoomIn()
		case "l":
			m.picker.Live.Toggle()
			m.live = m.picker.Live.IsLive()
		}
		cmd := m.syncFocus()
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.picker.Range.Close()
		cmd := m.syncFocus()
		return m, cmd
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = -1
		}
		m.picker.SetMode(components.NextMode(m.picker.Mode(), step))
		if m.picker.Mode() == scope.ModeAbsolute {
			m.enterAbsolute()
		}
		cmd := m.syncFocus()
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.picker.Mode() {
	case scope.ModeQuick:
		cmd = m.quickKey(msg)
	case scope.ModeRelative:
		cmd = m.relativeKey(msg)
	case scope.ModeAbsolute:
		m.absoluteKey(msg)
	}
	focus := m.syncFocus()
	return m, tea.Batch(cmd, focus)
}

func (m *Model) quickKey(msg tea.KeyMsg) tea.Cmd {
	ranges := SelectableRanges(m.picker.Quick.Groups())
	switch msg.String() {
	case "up", "ctrl+p":
		m.quickCursor = clampCursor(m.quickCursor-1, len(ranges))
		return nil
	case "down", "ctrl+n":
		m.quickCursor = clampCursor(m.quickCursor+1, len(ranges))
		return nil
	case "enter":
		if len(ranges) == 0 {
			return nil
		}
		m.picker.Quick.Select(ranges[clampCursor(m.quickCursor, len(ranges))])
		m.quickCursor = 0
		m.syncInputs()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != m.picker.Quick.Filter() {
		m.picker.Quick.SetFilter(m.filter.Value())
		m.quickCursor = 0
	}
	return cmd
}

func (m *Model) relativeKey(msg tea.KeyMsg) tea.Cmd {
	units := m.picker.Relative.TimeUnits()
	switch msg.String() {
	case "left", "right":
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		m.unitIndex = ((m.unitIndex+step)%len(units) + len(units)) % len(units)
		m.picker.Relative.SetUnit(units[m.unitIndex].Value)
		return nil
	case "enter":
		m.picker.Relative.Apply()
		return nil
	}

	var cmd tea.Cmd
	m.relValue, cmd = m.relValue.Update(msg)
	m.picker.Relative.SetValue(m.relValue.Value())
	return cmd
}

// enterAbsolute points both calendars at their ends of the range.
func (m *Model) enterAbsolute() {
	r := m.picker.Range.Range()
	m.picker.FromCalendar().GoToMonth(r.From.Year(), r.From.Month())
	m.picker.ToCalendar().GoToMonth(r.To.Year(), r.To.Month())
	m.dayCursor = [2]int{r.From.Day(), r.To.Day()}
}

func (m *Model) absoluteKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "f":
		m.side = fromSide
		return
	case "t":
		m.side = toSide
		return
	case "c":
		m.absFocus = focusCalendar
		return
	case "e":
		m.absFocus = focusTime
		return
	case "ctrl+s":
		m.picker.ApplyAbsolute()
		return
	}

	if m.absFocus == focusCalendar {
		m.calendarKey(msg)
		return
	}
	m.timeKey(msg)
}

func (m *Model) calendarKey(msg tea.KeyMsg) {
	cal := m.picker.FromCalendar()
	if m.side == toSide {
		cal = m.picker.ToCalendar()
	}
	cursor := &m.dayCursor[m.side]

	switch msg.String() {
	case "left", "h":
		*cursor--
	case "right", "l":
		*cursor++
	case "up", "k":
		*cursor -= 7
	case "down", "j":
		*cursor += 7
	case "<", "pgup":
		cal.PrevMonth()
	case ">", "pgdown":
		cal.NextMonth()
	case "enter", " ":
		cal.SelectDay(*cursor)
	}

	days := timeutil.DaysInMonth(cal.ViewYear(), cal.ViewMonth())
	if *cursor < 1 {
		*cursor = 1
	}
	if *cursor > days {
		*cursor = days
	}
}

func (m *Model) timeKey(msg tea.KeyMsg) {
	ti := m.picker.FromTime()
	if m.side == toSide {
		ti = m.picker.ToTime()
	}
	fields := components.TimeFields(m.showSeconds, ti.TwelveHour())
	pos := &m.timeField[m.side]
	*pos = clampCursor(*pos, len(fields))

	switch msg.String() {
	case "left", "h":
		*pos = clampCursor(*pos-1, len(fields))
	case "right", "l":
		*pos = clampCursor(*pos+1, len(fields))
	case "up", "k":
		step(ti, fields[*pos], 1)
	case "down", "j":
		step(ti, fields[*pos], -1)
	case "a":
		ti.SetPeriod(timeinput.AM)
	case "p":
		ti.SetPeriod(timeinput.PM)
	case "enter":
		m.picker.ApplyAbsolute()
	}
}

func step(ti *timeinput.TimeInput, field, dir int) {
	switch field {
	case components.FieldHours:
		if dir > 0 {
			ti.IncrementHours()
		} else {
			ti.DecrementHours()
		}
	case components.FieldMinutes:
		if dir > 0 {
			ti.IncrementMinutes()
		} else {
			ti.DecrementMinutes()
		}
	case components.FieldSeconds:
		if dir > 0 {
			ti.IncrementSeconds()
		} else {
			ti.DecrementSeconds()
		}
	case components.FieldPeriod:
		if ti.Period() == timeinput.AM {
			ti.SetPeriod(timeinput.PM)
		} else {
			ti.SetPeriod(timeinput.AM)
		}
	}
}

// syncInputs copies core-owned text back into the text inputs.
func (m *Model) syncInputs() {
	if m.filter.Value() != m.picker.Quick.Filter() {
		m.filter.SetValue(m.picker.Quick.Filter())
	}
	if m.relValue.Value() != m.picker.Relative.Value() {
		m.relValue.SetValue(m.picker.Relative.Value())
	}
}

// syncFocus focuses the text input of the visible panel, if any.
func (m *Model) syncFocus() tea.Cmd {
	open := m.picker.Range.IsOpen()
	mode := m.picker.Mode()

	var cmd tea.Cmd
	if open && mode == scope.ModeQuick {
		if !m.filter.Focused() {
			cmd = m.filter.Focus()
		}
	} else {
		m.filter.Blur()
	}
	if open && mode == scope.ModeRelative {
		if !m.relValue.Focused() {
			cmd = m.relValue.Focus()
		}
	} else {
		m.relValue.Blur()
	}
	return cmd
}
