package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/gofinances/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/gofinances/internal/config"
	"github.com/MrJamesThe3rd/gofinances/internal/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/importer"
	"github.com/MrJamesThe3rd/gofinances/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/gofinances/internal/matching/store"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
	txStore "github.com/MrJamesThe3rd/gofinances/internal/transaction/store"
)

type model struct {
	userID           string
	txService        *transaction.Service
	matchingService  *matching.Service
	importService    *importer.Service
	dashboardService *dashboard.Service

	currentView View

	listingView  view.ListingModel
	registerView view.RegisterModel
	resumeView   view.ResumeModel
	importView   view.ImportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewListing  View = 1
	ViewRegister View = 2
	ViewResume   View = 3
	ViewImport   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dialect, err := database.ParseDialect(cfg.Store.Driver)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(dialect, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))
	impSvc := importer.NewService(txSvc, matchSvc)
	dashSvc := dashboard.NewService(txSvc, summary.NewEngine(nil))
	userID := cfg.TUI.UserID

	return model{
		userID:           userID,
		txService:        txSvc,
		matchingService:  matchSvc,
		importService:    impSvc,
		dashboardService: dashSvc,
		currentView:      ViewMenu,
		listingView:      view.NewListingModel(dashSvc, userID),
		registerView:     view.NewRegisterModel(txSvc, matchSvc, userID),
		resumeView:       view.NewResumeModel(dashSvc, userID, time.Now()),
		importView:       view.NewImportModel(impSvc, userID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewListing
				m.listingView = view.NewListingModel(m.dashboardService, m.userID)

				return m, m.listingView.Init()
			case "2":
				m.currentView = ViewRegister
				m.registerView = view.NewRegisterModel(m.txService, m.matchingService, m.userID)

				return m, m.registerView.Init()
			case "3":
				m.currentView = ViewResume
				m.resumeView = view.NewResumeModel(m.dashboardService, m.userID, time.Now())

				return m, m.resumeView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.userID)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewListing:
		var newModel tea.Model
		newModel, cmd = m.listingView.Update(msg)
		m.listingView = newModel.(view.ListingModel)
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewResume:
		var newModel tea.Model
		newModel, cmd = m.resumeView.Update(msg)
		m.resumeView = newModel.(view.ResumeModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) active() view.View {
	switch m.currentView {
	case ViewListing:
		return m.listingView
	case ViewRegister:
		return m.registerView
	case ViewResume:
		return m.resumeView
	case ViewImport:
		return m.importView
	}

	return nil
}

func (m model) View() string {
	v := m.active()
	if v == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"GoFinances\n\n" +
				"1. Listagem\n" +
				"2. Cadastrar\n" +
				"3. Resumo\n" +
				"4. Importar\n\n" +
				"q. Sair",
		)
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(2).Render(v.Title() + " · " + v.ShortHelp())

	return v.View() + "\n" + help
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
