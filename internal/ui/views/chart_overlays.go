package views

import (
	"fmt"
	"strings"

	"gantt/internal/dateutil"
	"gantt/internal/models"
	"gantt/internal/timeline"
)

func (v *ChartView) renderOverlay() string {
	switch {
	case v.showHelp:
		return v.renderHelp()
	case v.confirmingDelete:
		return v.renderConfirmDelete()
	case v.editing:
		return v.renderTaskEditor()
	case v.managingGroups:
		return v.renderGroupManager()
	case v.editingTitle:
		return v.renderTitleEditor()
	case v.aiPromptOpen:
		return v.renderAIPrompt()
	case v.summaryDate != nil:
		return v.renderDaySummary()
	}
	return ""
}

func (v *ChartView) overlayBox(title string, lines ...string) string {
	var b strings.Builder
	b.WriteString(v.styles.OverlayTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	return v.styles.Overlay.Render(b.String())
}

func (v *ChartView) fieldLabel(label string, idx int) string {
	if v.form.focusIdx == idx {
		return v.styles.InputFocused.Render("› " + label)
	}
	return v.styles.Label.Render("  " + label)
}

func (v *ChartView) renderTaskEditor() string {
	f := &v.form

	title := "Edit task"
	if v.editingNew {
		title = "New task"
	}

	groupName := timeline.UnassignedName
	if len(v.doc.Groups) > 0 {
		groupName = v.doc.Groups[clamp(f.groupIdx, 0, len(v.doc.Groups)-1)].Name
	}
	groupLine := fmt.Sprintf("◀ %s ▶", groupName)
	if f.focusIdx != fieldGroup {
		groupLine = groupName
	}

	var related []string
	others := v.relatedCandidates()
	if f.focusIdx == fieldRelated {
		for i, t := range others {
			mark := "[ ]"
			if f.related[t.ID] {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s", mark, truncate(t.Name, 40))
			if i == f.relatedCursor {
				related = append(related, v.styles.ListSelected.Render(line))
			} else {
				related = append(related, v.styles.ListItem.Render(line))
			}
		}
		if len(others) == 0 {
			related = append(related, v.styles.Help.Render("  no other tasks"))
		}
	} else {
		n := 0
		for _, on := range f.related {
			if on {
				n++
			}
		}
		related = append(related, v.styles.Help.Render(fmt.Sprintf("  %d linked", n)))
	}

	save := v.styles.Button.Render("[ Save ]")
	if f.focusIdx == fieldSave {
		save = v.styles.ButtonPrimary.Render("[ Save ]")
	}

	lines := []string{
		v.fieldLabel("Name", fieldName),
		f.name.View(),
		v.fieldLabel("Group", fieldGroup),
		groupLine,
		v.fieldLabel("Start", fieldStart),
		f.start.View(),
		v.fieldLabel("End", fieldEnd),
		f.end.View(),
		v.fieldLabel("Color", fieldColor),
		f.color.View(),
		v.fieldLabel("Progress", fieldProgress),
		f.progress.View(),
		v.fieldLabel("Notes", fieldNotes),
		f.notes.View(),
		v.fieldLabel("Related tasks", fieldRelated),
	}
	lines = append(lines, related...)
	lines = append(lines, "", save, "",
		v.styles.Help.Render("tab next field · space toggle link · esc cancel"))

	return v.overlayBox(title, lines...)
}

func (v *ChartView) renderGroupManager() string {
	var lines []string
	for i, g := range v.doc.Groups {
		line := fmt.Sprintf("%d. %s", g.Position+1, g.Name)
		if i == v.groupCursor {
			lines = append(lines, v.styles.ListSelected.Render(line))
		} else {
			lines = append(lines, v.styles.ListItem.Render(line))
		}
	}
	if len(v.doc.Groups) == 0 {
		lines = append(lines, v.styles.Help.Render("  no groups yet"))
	}

	if v.groupEditing {
		verb := "New group"
		if v.groupEditID != "" {
			verb = "Rename group"
		}
		lines = append(lines, "",
			v.styles.Label.Render(verb),
			v.groupInput.View(),
			v.styles.Help.Render("enter save · esc cancel"))
	} else {
		lines = append(lines, "",
			v.styles.Help.Render("n new · r rename · d delete · J/K reorder · esc close"))
	}

	return v.overlayBox("Groups", lines...)
}

func (v *ChartView) renderTitleEditor() string {
	titleLabel := v.styles.Label.Render("  Title")
	subtitleLabel := v.styles.Label.Render("  Subtitle")
	if v.titleFocusIdx == 0 {
		titleLabel = v.styles.InputFocused.Render("› Title")
	} else {
		subtitleLabel = v.styles.InputFocused.Render("› Subtitle")
	}

	return v.overlayBox("Document title",
		titleLabel,
		v.titleInput.View(),
		subtitleLabel,
		v.subtitleInput.View(),
		"",
		v.styles.Help.Render("tab switch · enter save · esc cancel"))
}

func (v *ChartView) renderAIPrompt() string {
	lines := []string{
		v.styles.Label.Render("Describe the schedule to generate:"),
		v.aiInput.View(),
		"",
	}
	if v.aiBusy {
		lines = append(lines, v.styles.StatusOK.Render("Generating..."))
	} else {
		lines = append(lines, v.styles.Help.Render("ctrl+s generate · esc cancel"))
	}
	return v.overlayBox("Generate tasks", lines...)
}

func (v *ChartView) renderDaySummary() string {
	day := *v.summaryDate

	var active []models.Task
	for _, t := range v.doc.Tasks {
		if t.ActiveOn(day) {
			active = append(active, t)
		}
	}

	var lines []string
	if len(active) == 0 {
		lines = append(lines, v.styles.Help.Render("  nothing scheduled"))
	}
	for _, t := range active {
		expected := t.ExpectedProgress(day)
		line := fmt.Sprintf("%s — %d%% done, %d%% expected",
			truncate(t.Name, 36), t.Progress, expected)
		switch {
		case t.Delayed(day):
			lines = append(lines, v.styles.BarLabelDelayed.Render(line+"  behind"))
		case t.Progress >= expected:
			lines = append(lines, v.styles.StatusOK.Render(line))
		default:
			lines = append(lines, v.styles.ListItem.Render(line))
		}
	}
	lines = append(lines, "", v.styles.Help.Render("esc close"))

	return v.overlayBox(dateutil.Format(day), lines...)
}

func (v *ChartView) renderConfirmDelete() string {
	return v.overlayBox("Delete task",
		fmt.Sprintf("Delete %q?", v.deleteTargetName),
		"",
		v.styles.Help.Render("y delete · n keep"))
}

func (v *ChartView) renderHelp() string {
	rows := []struct{ k, d string }{
		{"click bar", "select (click again to deselect)"},
		{"drag bar", "move task, span preserved"},
		{"drag edge", "resize task (1 day minimum)"},
		{"click date", "day summary"},
		{"tab", "cycle task selection"},
		{"t", "jump to today"},
		{"+ / -", "zoom in / out"},
		{"arrows, wheel", "scroll"},
		{"n / e / d", "new / edit / delete task"},
		{"g", "manage groups"},
		{"T", "edit title"},
		{"y", "today's summary"},
		{"a", "generate tasks with AI"},
		{"s", "copy share token"},
		{"x", "export CSV and JSON"},
		{"q", "quit"},
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s  %s",
			v.styles.HelpKey.Render(fmt.Sprintf("%-14s", r.k)),
			v.styles.HelpDesc.Render(r.d)))
	}
	lines = append(lines, "", v.styles.Help.Render("press any key to close"))

	return v.overlayBox("Keys", lines...)
}
