package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gantt/internal/ai"
	"gantt/internal/db"
	"gantt/internal/logging"
	"gantt/internal/ui/views"
)

type App struct {
	db     *db.DB
	chart  *views.ChartView
	width  int
	height int
}

// Creates the application around its single chart screen
func NewApp(database *db.DB, logger *logging.Logger, suggester *ai.Client) *App {
	return &App{
		db:    database,
		chart: views.NewChartView(database, logger, suggester),
	}
}

func (a *App) Init() tea.Cmd {
	return a.chart.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
	}

	_, cmd := a.chart.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.chart.View()
}
