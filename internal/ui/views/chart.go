package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gantt/internal/ai"
	"gantt/internal/dateutil"
	"gantt/internal/db"
	"gantt/internal/export"
	"gantt/internal/logging"
	"gantt/internal/models"
	"gantt/internal/share"
	"gantt/internal/timeline"
	"gantt/internal/ui/keys"
	"gantt/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// Form field order in the task editor
const (
	fieldName = iota
	fieldGroup
	fieldStart
	fieldEnd
	fieldColor
	fieldProgress
	fieldNotes
	fieldRelated
	fieldSave
	fieldCount
)

// taskForm holds the task editor state
type taskForm struct {
	taskID        string
	name          textinput.Model
	start         textinput.Model
	end           textinput.Model
	color         textinput.Model
	progress      textinput.Model
	notes         textarea.Model
	groupIdx      int
	related       map[string]bool
	relatedCursor int
	focusIdx      int
}

// ChartView is the main Gantt chart screen: the timeline canvas plus the
// overlays for editing tasks, groups, the document title, day summaries and
// AI generation.
type ChartView struct {
	db     *db.DB
	log    *logging.Logger
	ai     *ai.Client
	styles *styles.Styles
	keys   keys.KeyMap

	// Authoritative data. The timeline package only ever sees copies and
	// hands back commits; this view is the sole writer.
	doc   models.Document
	today time.Time

	zoom timeline.Zoom
	drag timeline.Machine
	sel  timeline.Selection

	width  int
	height int

	scrollX int
	scrollY int

	// jumpRequests counts explicit "jump to today" triggers. Each request
	// recenters even if the target offset is unchanged.
	jumpRequests int

	// Task editor
	editing    bool
	editingNew bool
	form       taskForm

	// Group manager
	managingGroups bool
	groupCursor    int
	groupInput     textinput.Model
	groupEditing   bool
	groupEditID    string

	// Title editor
	editingTitle  bool
	titleInput    textinput.Model
	subtitleInput textinput.Model
	titleFocusIdx int

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// AI prompt
	aiPromptOpen bool
	aiInput      textarea.Model
	aiBusy       bool

	// Day summary overlay
	summaryDate *time.Time

	showHelp bool

	status    string
	statusErr bool
	loaded    bool
}

// NewChartView creates the chart screen
func NewChartView(database *db.DB, logger *logging.Logger, suggester *ai.Client) *ChartView {
	s := styles.NewStyles()

	groupInput := textinput.New()
	groupInput.Placeholder = "Group name"
	groupInput.CharLimit = 60

	titleInput := textinput.New()
	titleInput.Placeholder = "Project title"
	titleInput.CharLimit = 100

	subtitleInput := textinput.New()
	subtitleInput.Placeholder = "Subtitle"
	subtitleInput.CharLimit = 100

	aiInput := textarea.New()
	aiInput.Placeholder = "e.g. plan a two-week marketing campaign starting Monday..."
	aiInput.CharLimit = 2000
	aiInput.SetWidth(60)
	aiInput.SetHeight(6)
	aiInput.ShowLineNumbers = false

	return &ChartView{
		db:            database,
		log:           logger,
		ai:            suggester,
		styles:        s,
		keys:          keys.DefaultKeyMap(),
		today:         dateutil.Today(),
		groupInput:    groupInput,
		titleInput:    titleInput,
		subtitleInput: subtitleInput,
		aiInput:       aiInput,
	}
}

type docLoadedMsg struct {
	doc  models.Document
	zoom timeline.Zoom
}

type savedMsg struct {
	label string
}

type aiResultMsg struct {
	tasks []models.Task
}

type errMsg struct {
	err error
}

// Init loads the document
func (v *ChartView) Init() tea.Cmd {
	return v.loadDocument
}

func (v *ChartView) loadDocument() tea.Msg {
	doc, err := v.db.LoadDocument(v.log)
	if err != nil {
		return errMsg{err}
	}
	zoomName, err := v.db.GetSetting(db.SettingZoom)
	if err != nil {
		return errMsg{err}
	}
	return docLoadedMsg{doc: *doc, zoom: timeline.ParseZoom(zoomName)}
}

// Geometry helpers shared by update and render.

func (v *ChartView) laneColumnWidth() int {
	if v.width > 0 && v.width < 100 {
		return 14
	}
	return 20
}

func (v *ChartView) dayWidth() int {
	return timeline.DayWidth(v.zoom, v.width)
}

func (v *ChartView) dates() []time.Time {
	return timeline.VisibleRange(v.doc.Tasks, v.zoom, v.today)
}

func (v *ChartView) lanes() []timeline.Lane {
	return timeline.LayoutGroups(v.doc.Groups, v.doc.Tasks)
}

// Layout constants: one title row, two header rows, one status row.
const (
	titleRows  = 1
	headerRows = 2
	statusRows = 1
)

func (v *ChartView) bodyHeight() int {
	h := v.height - titleRows - headerRows - statusRows
	if h < 1 {
		h = 1
	}
	return h
}

func (v *ChartView) timelineWidth() int {
	w := v.width - v.laneColumnWidth()
	if w < 1 {
		w = 1
	}
	return w
}

func (v *ChartView) clampScroll() {
	dates := v.dates()
	v.scrollX = timeline.ClampScroll(v.scrollX, len(dates)*v.dayWidth(), v.timelineWidth())
	v.scrollY = timeline.ClampScroll(v.scrollY, timeline.TotalHeight(v.lanes()), v.bodyHeight())
}

// Update handles messages
func (v *ChartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := clamp(v.width-20, 24, 60)
		v.aiInput.SetWidth(inputWidth)
		if v.editing {
			v.form.notes.SetWidth(inputWidth)
		}
		v.clampScroll()
		return v, nil

	case docLoadedMsg:
		v.doc = msg.doc
		v.zoom = msg.zoom
		v.loaded = true
		v.clampScroll()
		return v, nil

	case savedMsg:
		v.status = msg.label
		v.statusErr = false
		return v, v.loadDocument

	case aiResultMsg:
		v.aiBusy = false
		v.aiPromptOpen = false
		v.aiInput.Reset()
		v.status = fmt.Sprintf("Generated %d tasks", len(msg.tasks))
		v.statusErr = false
		return v, v.loadDocument

	case errMsg:
		v.aiBusy = false
		v.status = msg.err.Error()
		v.statusErr = true
		v.log.Printf("error: %v", msg.err)
		return v, nil

	case tea.MouseMsg:
		return v.updateMouse(msg)

	case tea.KeyMsg:
		if v.showHelp {
			v.showHelp = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.managingGroups {
			return v.updateManagingGroups(msg)
		}
		if v.editingTitle {
			return v.updateEditingTitle(msg)
		}
		if v.aiPromptOpen {
			return v.updateAIPrompt(msg)
		}
		if v.summaryDate != nil {
			if key.Matches(msg, v.keys.Back) || key.Matches(msg, v.keys.Quit) || key.Matches(msg, v.keys.Summary) {
				v.summaryDate = nil
			}
			return v, nil
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *ChartView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		v.sel.Clear()
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelp = true
		return v, nil

	case key.Matches(msg, v.keys.Left):
		v.scrollX -= v.dayWidth()
		v.clampScroll()
		return v, nil

	case key.Matches(msg, v.keys.Right):
		v.scrollX += v.dayWidth()
		v.clampScroll()
		return v, nil

	case key.Matches(msg, v.keys.Up):
		v.scrollY--
		v.clampScroll()
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.scrollY++
		v.clampScroll()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.cycleSelection(1)
		return v, nil

	case msg.String() == "shift+tab":
		v.cycleSelection(-1)
		return v, nil

	case key.Matches(msg, v.keys.Today):
		v.jumpToToday()
		return v, nil

	case key.Matches(msg, v.keys.ZoomIn):
		return v, v.setZoom(v.zoom.In())

	case key.Matches(msg, v.keys.ZoomOut):
		return v, v.setZoom(v.zoom.Out())

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if t := v.doc.Task(v.sel.ID()); t != nil {
			v.startEditTask(*t)
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t := v.doc.Task(v.sel.ID()); t != nil {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Name
		}
		return v, nil

	case key.Matches(msg, v.keys.Groups):
		v.managingGroups = true
		v.groupCursor = 0
		return v, nil

	case key.Matches(msg, v.keys.Title):
		v.editingTitle = true
		v.titleInput.SetValue(v.doc.Title)
		v.subtitleInput.SetValue(v.doc.Subtitle)
		v.titleFocusIdx = 0
		v.titleInput.Focus()
		v.subtitleInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.AI):
		if v.ai.Available() {
			v.aiPromptOpen = true
			return v, v.aiInput.Focus()
		}
		v.status = "AI generation is unavailable (no API key)"
		v.statusErr = true
		return v, nil

	case key.Matches(msg, v.keys.Share):
		return v, v.copyShareToken

	case key.Matches(msg, v.keys.Export):
		return v, v.exportFiles

	case key.Matches(msg, v.keys.Summary):
		d := v.today
		v.summaryDate = &d
		return v, nil
	}

	return v, nil
}

// cycleSelection moves the selection through the tasks in lane order and
// scrolls the selected bar into view.
func (v *ChartView) cycleSelection(dir int) {
	var order []string
	lanes := v.lanes()
	for _, lane := range lanes {
		for _, t := range lane.Tasks {
			order = append(order, t.ID)
		}
	}
	if len(order) == 0 {
		return
	}

	current := -1
	for i, id := range order {
		if id == v.sel.ID() {
			current = i
			break
		}
	}
	next := (current + dir + len(order)) % len(order)
	if current == -1 && dir < 0 {
		next = len(order) - 1
	}
	if order[next] != v.sel.ID() {
		v.sel.Toggle(order[next])
	}

	task := v.doc.Task(order[next])
	dates := v.dates()
	if task == nil || len(dates) == 0 {
		return
	}
	v.scrollX = timeline.CenterOn(task.StartDate, dates[0], v.dayWidth(), v.width, v.laneColumnWidth())

	for _, lane := range lanes {
		for idx, t := range lane.Tasks {
			if t.ID != task.ID {
				continue
			}
			rowY := lane.RowY(idx)
			if rowY < v.scrollY {
				v.scrollY = rowY
			} else if rowY+timeline.RowHeight > v.scrollY+v.bodyHeight() {
				v.scrollY = rowY + timeline.RowHeight - v.bodyHeight()
			}
		}
	}
	v.clampScroll()
}

// jumpToToday recenters the viewport on today's column. Edge-triggered: each
// request recomputes, so jumping after a manual scroll works every time.
func (v *ChartView) jumpToToday() {
	v.jumpRequests++
	dates := v.dates()
	if len(dates) == 0 {
		return
	}
	v.scrollX = timeline.CenterOn(v.today, dates[0], v.dayWidth(), v.width, v.laneColumnWidth())
	v.clampScroll()
}

func (v *ChartView) setZoom(z timeline.Zoom) tea.Cmd {
	if z == v.zoom {
		return nil
	}
	v.zoom = z
	v.clampScroll()
	return func() tea.Msg {
		if err := v.db.SetSetting(db.SettingZoom, z.String()); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// updateMouse drives scrolling and the drag state machine. The machine
// ignores motion while idle, so stray events between gestures are no-ops.
func (v *ChartView) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.anyOverlayOpen() {
		return v, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.scrollY--
			v.clampScroll()
		case tea.MouseButtonWheelDown:
			v.scrollY++
			v.clampScroll()
		case tea.MouseButtonWheelLeft:
			v.scrollX -= v.dayWidth()
			v.clampScroll()
		case tea.MouseButtonWheelRight:
			v.scrollX += v.dayWidth()
			v.clampScroll()
		case tea.MouseButtonLeft:
			v.mouseDown(msg.X, msg.Y)
		}
		return v, nil

	case tea.MouseActionMotion:
		if v.drag.Active() {
			v.drag.Move(msg.X, v.dayWidth())
		}
		return v, nil

	case tea.MouseActionRelease:
		return v, v.mouseUp()
	}

	return v, nil
}

// mouseDown hit-tests the press: a date header cell opens the day summary, a
// bar begins a drag (body = move, edge cells = resize), anywhere else clears
// the selection.
func (v *ChartView) mouseDown(x, y int) {
	dates := v.dates()
	if len(dates) == 0 {
		return
	}
	laneCol := v.laneColumnWidth()
	w := v.dayWidth()

	// Date header: click a day to see its summary.
	if y >= titleRows && y < titleRows+headerRows && x >= laneCol {
		dayIdx := (x - laneCol + v.scrollX) / w
		if dayIdx >= 0 && dayIdx < len(dates) {
			d := dates[dayIdx]
			v.summaryDate = &d
		}
		return
	}

	bodyTop := titleRows + headerRows
	if y < bodyTop || y >= bodyTop+v.bodyHeight() || x < laneCol {
		v.sel.Clear()
		return
	}

	row := y - bodyTop + v.scrollY
	cellX := x - laneCol + v.scrollX

	task, onBarLine := v.hitTask(row)
	if task == nil || !onBarLine {
		v.sel.Clear()
		return
	}

	rangeStart := dates[0]
	barX := timeline.DateToX(task.StartDate, rangeStart, w)
	barW := task.Span() * w
	if cellX < barX || cellX >= barX+barW {
		v.sel.Clear()
		return
	}

	highlights := timeline.HighlightSet(&v.doc, v.sel.ID())
	dimmed := timeline.Dimmed(task.ID, v.sel.ID(), highlights)

	kind := timeline.DragMove
	if timeline.HandlesEnabled(barW, dimmed) {
		switch cellX {
		case barX:
			kind = timeline.DragResizeStart
		case barX + barW - 1:
			kind = timeline.DragResizeEnd
		}
	}
	if dimmed && kind != timeline.DragMove {
		kind = timeline.DragMove
	}

	v.drag.Begin(kind, *task, x)
}

// hitTask maps a body row to the task whose slot it falls in, and whether
// the row is the bar line (as opposed to the label line above it).
func (v *ChartView) hitTask(row int) (*models.Task, bool) {
	for _, lane := range v.lanes() {
		if row < lane.StartY || row >= lane.StartY+lane.Height {
			continue
		}
		idx := (row - lane.StartY) / timeline.RowHeight
		if idx >= len(lane.Tasks) {
			return nil, false
		}
		onBarLine := (row-lane.StartY)%timeline.RowHeight == 1
		return v.doc.Task(lane.Tasks[idx].ID), onBarLine
	}
	return nil, false
}

// mouseUp ends a gesture: movement commits the preview, a motionless press
// is a click that toggles selection.
func (v *ChartView) mouseUp() tea.Cmd {
	moved := v.drag.Moved()
	preview, ok := v.drag.Release()
	if !ok {
		return nil
	}

	if !moved {
		v.sel.Toggle(preview.TaskID)
		return nil
	}

	task := v.doc.Task(preview.TaskID)
	if task == nil {
		return nil
	}
	*task = preview.Apply(*task)
	committed := *task
	v.log.Printf("commit %s: %s..%s", committed.ID, dateutil.Format(committed.StartDate), dateutil.Format(committed.EndDate))

	return func() tea.Msg {
		if err := v.db.UpdateTaskSpan(committed.ID, committed); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (v *ChartView) anyOverlayOpen() bool {
	return v.editing || v.managingGroups || v.editingTitle || v.aiPromptOpen ||
		v.confirmingDelete || v.summaryDate != nil || v.showHelp
}

// --- Delete confirmation ---

func (v *ChartView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := v.deleteTargetID
		v.confirmingDelete = false
		if v.sel.ID() == id {
			v.sel.Clear()
		}
		return v, func() tea.Msg {
			if err := v.db.DeleteTask(id); err != nil {
				return errMsg{err}
			}
			return savedMsg{label: "Task deleted"}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

// --- Task editor ---

func (v *ChartView) startNewTask() {
	groupID := ""
	if len(v.doc.Groups) > 0 {
		groupID = v.doc.Groups[0].ID
	}
	task := models.NewTask(groupID, v.today)
	v.editingNew = true
	v.startEditTask(task)
}

func (v *ChartView) startEditTask(task models.Task) {
	f := taskForm{taskID: task.ID, related: map[string]bool{}}

	f.name = textinput.New()
	f.name.CharLimit = 120
	f.name.SetValue(task.Name)
	f.name.Focus()

	f.start = textinput.New()
	f.start.Placeholder = dateutil.DateFormat
	f.start.CharLimit = 10
	f.start.SetValue(dateutil.Format(task.StartDate))

	f.end = textinput.New()
	f.end.Placeholder = dateutil.DateFormat
	f.end.CharLimit = 10
	f.end.SetValue(dateutil.Format(task.EndDate))

	f.color = textinput.New()
	f.color.Placeholder = "#6366f1"
	f.color.CharLimit = 7
	f.color.SetValue(task.Color)

	f.progress = textinput.New()
	f.progress.Placeholder = "0-100"
	f.progress.CharLimit = 3
	f.progress.SetValue(strconv.Itoa(task.Progress))

	f.notes = textarea.New()
	f.notes.Placeholder = "Notes"
	f.notes.CharLimit = 2000
	f.notes.SetWidth(clamp(v.width-20, 24, 60))
	f.notes.SetHeight(3)
	f.notes.ShowLineNumbers = false
	f.notes.SetValue(task.Notes)

	f.groupIdx = 0
	for i, g := range v.doc.Groups {
		if g.ID == task.GroupID {
			f.groupIdx = i
			break
		}
	}
	for _, id := range task.RelatedTaskIDs {
		f.related[id] = true
	}

	v.form = f
	v.editing = true
}

func (v *ChartView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &v.form

	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		v.editingNew = false
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		f.focusIdx = (f.focusIdx + 1) % fieldCount
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		f.focusIdx = (f.focusIdx + fieldCount - 1) % fieldCount
		v.updateEditFocus()
		return v, nil
	}

	switch f.focusIdx {
	case fieldGroup:
		switch {
		case key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Up):
			if f.groupIdx > 0 {
				f.groupIdx--
			}
		case key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Down):
			if f.groupIdx < len(v.doc.Groups)-1 {
				f.groupIdx++
			}
		}
		return v, nil

	case fieldRelated:
		others := v.relatedCandidates()
		switch {
		case key.Matches(msg, v.keys.Up):
			if f.relatedCursor > 0 {
				f.relatedCursor--
			}
		case key.Matches(msg, v.keys.Down):
			if f.relatedCursor < len(others)-1 {
				f.relatedCursor++
			}
		case msg.String() == " ", key.Matches(msg, v.keys.Enter):
			if f.relatedCursor < len(others) {
				id := others[f.relatedCursor].ID
				f.related[id] = !f.related[id]
			}
		}
		return v, nil

	case fieldSave:
		if key.Matches(msg, v.keys.Enter) {
			return v, v.saveTask()
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldStart:
		f.start, cmd = f.start.Update(msg)
	case fieldEnd:
		f.end, cmd = f.end.Update(msg)
	case fieldColor:
		f.color, cmd = f.color.Update(msg)
	case fieldProgress:
		f.progress, cmd = f.progress.Update(msg)
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	}
	return v, cmd
}

func (v *ChartView) updateEditFocus() {
	f := &v.form
	f.name.Blur()
	f.start.Blur()
	f.end.Blur()
	f.color.Blur()
	f.progress.Blur()
	f.notes.Blur()

	switch f.focusIdx {
	case fieldName:
		f.name.Focus()
	case fieldStart:
		f.start.Focus()
	case fieldEnd:
		f.end.Focus()
	case fieldColor:
		f.color.Focus()
	case fieldProgress:
		f.progress.Focus()
	case fieldNotes:
		f.notes.Focus()
	}
}

// relatedCandidates lists every task except the one being edited.
func (v *ChartView) relatedCandidates() []models.Task {
	var others []models.Task
	for _, t := range v.doc.Tasks {
		if t.ID != v.form.taskID {
			others = append(others, t)
		}
	}
	return others
}

func (v *ChartView) saveTask() tea.Cmd {
	f := &v.form

	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		v.status = "Task name is required"
		v.statusErr = true
		return nil
	}

	start, err := dateutil.Parse(strings.TrimSpace(f.start.Value()))
	if err != nil {
		v.status = "Start date must be YYYY-MM-DD"
		v.statusErr = true
		return nil
	}
	end, err := dateutil.Parse(strings.TrimSpace(f.end.Value()))
	if err != nil {
		v.status = "End date must be YYYY-MM-DD"
		v.statusErr = true
		return nil
	}
	if dateutil.DiffDays(end, start) < 1 {
		end = dateutil.AddDays(start, 1)
	}

	progress := 0
	if p, err := strconv.Atoi(strings.TrimSpace(f.progress.Value())); err == nil {
		progress = clamp(p, 0, 100)
	}

	color := strings.TrimSpace(f.color.Value())
	if color == "" {
		color = models.DefaultTaskColor
	}

	groupID := ""
	if len(v.doc.Groups) > 0 {
		groupID = v.doc.Groups[clamp(f.groupIdx, 0, len(v.doc.Groups)-1)].ID
	}

	var related []string
	for id, on := range f.related {
		if on {
			related = append(related, id)
		}
	}

	task := models.Task{
		ID:             f.taskID,
		Name:           name,
		StartDate:      start,
		EndDate:        end,
		Color:          color,
		Progress:       progress,
		Notes:          f.notes.Value(),
		GroupID:        groupID,
		RelatedTaskIDs: related,
	}

	isNew := v.editingNew
	v.editing = false
	v.editingNew = false

	return func() tea.Msg {
		var err error
		if isNew {
			err = v.db.CreateTask(task)
		} else {
			err = v.db.UpdateTask(task)
		}
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{label: "Task saved"}
	}
}

// --- Group manager ---

func (v *ChartView) updateManagingGroups(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.groupEditing {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.groupEditing = false
			v.groupInput.Blur()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			name := strings.TrimSpace(v.groupInput.Value())
			if name == "" {
				return v, nil
			}
			id := v.groupEditID
			v.groupEditing = false
			v.groupInput.Blur()
			v.groupInput.Reset()
			return v, func() tea.Msg {
				var err error
				if id == "" {
					_, err = v.db.CreateGroup(models.NewID(), name)
				} else {
					err = v.db.RenameGroup(id, name)
				}
				if err != nil {
					return errMsg{err}
				}
				return savedMsg{label: "Groups updated"}
			}
		}
		var cmd tea.Cmd
		v.groupInput, cmd = v.groupInput.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Groups):
		v.managingGroups = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.groupCursor > 0 {
			v.groupCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.groupCursor < len(v.doc.Groups)-1 {
			v.groupCursor++
		}
		return v, nil

	case msg.String() == "K", msg.String() == "shift+up":
		return v, v.moveGroup(-1)

	case msg.String() == "J", msg.String() == "shift+down":
		return v, v.moveGroup(1)

	case key.Matches(msg, v.keys.New):
		v.groupEditing = true
		v.groupEditID = ""
		v.groupInput.Reset()
		return v, v.groupInput.Focus()

	case msg.String() == "r", key.Matches(msg, v.keys.Enter):
		if v.groupCursor < len(v.doc.Groups) {
			g := v.doc.Groups[v.groupCursor]
			v.groupEditing = true
			v.groupEditID = g.ID
			v.groupInput.SetValue(g.Name)
			return v, v.groupInput.Focus()
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if v.groupCursor < len(v.doc.Groups) {
			id := v.doc.Groups[v.groupCursor].ID
			return v, func() tea.Msg {
				if err := v.db.DeleteGroup(id); err != nil {
					return errMsg{err}
				}
				return savedMsg{label: "Group deleted (its tasks moved to Unassigned)"}
			}
		}
		return v, nil
	}

	return v, nil
}

func (v *ChartView) moveGroup(dir int) tea.Cmd {
	i := v.groupCursor
	j := i + dir
	if i < 0 || j < 0 || i >= len(v.doc.Groups) || j >= len(v.doc.Groups) {
		return nil
	}
	a, b := v.doc.Groups[i], v.doc.Groups[j]
	v.groupCursor = j
	return func() tea.Msg {
		if err := v.db.SwapGroupPositions(a, b); err != nil {
			return errMsg{err}
		}
		return savedMsg{label: "Groups reordered"}
	}
}

// --- Title editor ---

func (v *ChartView) updateEditingTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editingTitle = false
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.titleFocusIdx = 1 - v.titleFocusIdx
		if v.titleFocusIdx == 0 {
			v.subtitleInput.Blur()
			v.titleInput.Focus()
		} else {
			v.titleInput.Blur()
			v.subtitleInput.Focus()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		title := strings.TrimSpace(v.titleInput.Value())
		subtitle := strings.TrimSpace(v.subtitleInput.Value())
		v.editingTitle = false
		return v, func() tea.Msg {
			if err := v.db.SetSetting(db.SettingTitle, title); err != nil {
				return errMsg{err}
			}
			if err := v.db.SetSetting(db.SettingSubtitle, subtitle); err != nil {
				return errMsg{err}
			}
			return savedMsg{label: "Title updated"}
		}
	}

	var cmd tea.Cmd
	if v.titleFocusIdx == 0 {
		v.titleInput, cmd = v.titleInput.Update(msg)
	} else {
		v.subtitleInput, cmd = v.subtitleInput.Update(msg)
	}
	return v, cmd
}

// --- AI prompt ---

func (v *ChartView) updateAIPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		if !v.aiBusy {
			v.aiPromptOpen = false
			v.aiInput.Blur()
		}
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.submitAIPrompt()
	}

	if v.aiBusy {
		return v, nil
	}
	var cmd tea.Cmd
	v.aiInput, cmd = v.aiInput.Update(msg)
	return v, cmd
}

// submitAIPrompt kicks off the suggestion call. No-op while a call is
// pending.
func (v *ChartView) submitAIPrompt() tea.Cmd {
	if v.aiBusy {
		return nil
	}
	input := strings.TrimSpace(v.aiInput.Value())
	if input == "" {
		return nil
	}

	v.aiBusy = true
	base := v.today
	groupID := ""
	if len(v.doc.Groups) > 0 {
		groupID = v.doc.Groups[0].ID
	}
	client := v.ai
	database := v.db

	return func() tea.Msg {
		suggestions, err := client.Suggest(context.Background(), input, base)
		if err != nil {
			return errMsg{fmt.Errorf("generation failed: %w", err)}
		}
		tasks := models.Materialize(suggestions, base, groupID)
		for _, t := range tasks {
			if err := database.CreateTask(t); err != nil {
				return errMsg{err}
			}
		}
		return aiResultMsg{tasks: tasks}
	}
}

// --- Share and export ---

func (v *ChartView) copyShareToken() tea.Msg {
	token, err := share.Encode(&v.doc)
	if err != nil {
		return errMsg{err}
	}
	if err := clipboard.WriteAll(token); err != nil {
		// Headless terminals have no clipboard; the log still gets it.
		v.log.Printf("share token: %s", token)
		return savedMsg{label: "Clipboard unavailable; token written to log"}
	}
	return savedMsg{label: "Share token copied to clipboard"}
}

func (v *ChartView) exportFiles() tea.Msg {
	base := exportBaseName(v.doc.Title)
	doc := v.doc
	if err := export.CSVFile(base+".csv", &doc); err != nil {
		return errMsg{err}
	}
	if err := export.JSONFile(base+".json", &doc); err != nil {
		return errMsg{err}
	}
	return savedMsg{label: fmt.Sprintf("Exported %s.csv and %s.json", base, base)}
}

func exportBaseName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "schedule"
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "schedule"
	}
	return b.String()
}
