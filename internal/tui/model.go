package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/ports"
)

type step int

const (
	stepOrientation step = iota
	stepWindowSize
	stepDistance
	stepObstruction
	stepResult
)

// productsPerPlant is how many listings the result screen shows per plant
const productsPerPlant = 3

type question struct {
	prompt  string
	options []string
}

var questions = [...]question{
	stepOrientation: {"Which way does the window face?", labels(domain.Orientations)},
	stepWindowSize:  {"How big is the window?", labels(domain.WindowSizes)},
	stepDistance:    {"How far from the window will the plant stand?", labels(domain.Distances)},
	stepObstruction: {"Is something outside blocking the light?", []string{"No", "Yes"}},
}

func labels[T interface{ Label() string }](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Label()
	}
	return out
}

// productsMsg carries one lookup result tagged with the run it belongs to
type productsMsg struct {
	gen    uint64
	result domain.PlantProducts
}

// Model is the questionnaire: four questions, then the diagnosis with
// shop listings filling in as each lookup completes
type Model struct {
	catalog []domain.Plant
	session *ports.LookupSession
	baseURL string

	ctx       context.Context
	updates   chan productsMsg
	listening bool

	step    step
	cursor  int
	answers [len(questions)]int

	diagnosis *domain.Diagnosis
	shareURL  string
	gen       uint64
	results   map[string]domain.PlantProducts
	spinner   spinner.Model
}

// NewModel creates a questionnaire preset to the default room profile.
// ctx bounds every product lookup the model starts.
func NewModel(ctx context.Context, catalog []domain.Plant, session *ports.LookupSession, baseURL string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cursorStyle

	m := Model{
		catalog: catalog,
		session: session,
		baseURL: baseURL,
		ctx:     ctx,
		updates: make(chan productsMsg, 2*domain.MaxRecommendations),
		spinner: s,
	}
	m.answers = defaultAnswers()
	m.cursor = m.answers[stepOrientation]
	return m
}

func defaultAnswers() [len(questions)]int {
	p := domain.DefaultRoomProfile()
	var answers [len(questions)]int
	answers[stepOrientation] = indexOf(domain.Orientations, p.Orientation)
	answers[stepWindowSize] = indexOf(domain.WindowSizes, p.WindowSize)
	answers[stepDistance] = indexOf(domain.Distances, p.Distance)
	return answers
}

func indexOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}

// Profile returns the room profile described by the current answers
func (m Model) Profile() domain.RoomProfile {
	return domain.RoomProfile{
		Orientation:    domain.Orientations[m.answers[stepOrientation]],
		WindowSize:     domain.WindowSizes[m.answers[stepWindowSize]],
		Distance:       domain.Distances[m.answers[stepDistance]],
		HasObstruction: m.answers[stepObstruction] == 1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case productsMsg:
		m.listening = false
		if msg.gen == m.gen && m.diagnosis != nil {
			m.results[msg.result.Plant.Slug] = msg.result
		}
		if m.loading() {
			return m.listen()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		m.session.Cancel()
		return m, tea.Quit
	}

	if m.step == stepResult {
		if key == "r" {
			return m.restart(), nil
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(questions[m.step].options)-1 {
			m.cursor++
		}
	case "esc", "backspace":
		if m.step > stepOrientation {
			m.step--
			m.cursor = m.answers[m.step]
		}
	case "enter", " ":
		m.answers[m.step] = m.cursor
		m.step++
		if m.step == stepResult {
			return m.diagnose()
		}
		m.cursor = m.answers[m.step]
	}
	return m, nil
}

// diagnose computes the result and starts the product lookup for it.
// Starting a lookup supersedes any run still in flight.
func (m Model) diagnose() (tea.Model, tea.Cmd) {
	profile := m.Profile()
	d := domain.Diagnose(profile, m.catalog)
	m.diagnosis = &d
	m.shareURL = domain.ShareURL(m.baseURL, profile)
	m.results = make(map[string]domain.PlantProducts, len(d.Plants))

	if len(d.Plants) == 0 {
		m.gen = 0
		return m, nil
	}

	updates, ctx := m.updates, m.ctx
	m.gen = m.session.Start(ctx, d.Plants, func(gen uint64, result domain.PlantProducts) {
		select {
		case updates <- productsMsg{gen: gen, result: result}:
		case <-ctx.Done():
		}
	})

	next, listenCmd := m.listen()
	return next, tea.Batch(listenCmd, m.spinner.Tick)
}

// restart returns to the first question, keeping the previous answers
func (m Model) restart() Model {
	m.session.Cancel()
	m.gen = 0
	m.diagnosis = nil
	m.shareURL = ""
	m.results = nil
	m.step = stepOrientation
	m.cursor = m.answers[stepOrientation]
	return m
}

// listen waits for the next lookup result; only one listener is kept
func (m Model) listen() (Model, tea.Cmd) {
	if m.listening {
		return m, nil
	}
	m.listening = true
	updates := m.updates
	return m, func() tea.Msg {
		return <-updates
	}
}

func (m Model) loading() bool {
	return m.diagnosis != nil && m.gen != 0 && len(m.results) < len(m.diagnosis.Plants)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Leafit · sunlight diagnosis"))
	b.WriteString("\n\n")

	if m.step == stepResult && m.diagnosis != nil {
		b.WriteString(cardStyle.Render(strings.TrimRight(RenderDiagnosis(*m.diagnosis, m.shareURL), "\n")))
		b.WriteString("\n\n")
		b.WriteString(m.productsView())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("r: start over · q: quit"))
		b.WriteString("\n")
		return b.String()
	}

	q := questions[m.step]
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("Question %d of %d", int(m.step)+1, len(questions))))
	fmt.Fprintf(&b, "%s\n\n", headingStyle.Render(q.prompt))
	for i, option := range q.options {
		if i == m.cursor {
			fmt.Fprintf(&b, "%s %s\n", cursorStyle.Render(">"), cursorStyle.Render(option))
		} else {
			fmt.Fprintf(&b, "  %s\n", option)
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓: choose · enter: next · esc: back · q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) productsView() string {
	if len(m.diagnosis.Plants) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Where to buy"))
	b.WriteString("\n")
	for _, plant := range m.diagnosis.Plants {
		result, ok := m.results[plant.Slug]
		if !ok {
			fmt.Fprintf(&b, "%s %s %s\n", m.spinner.View(), plant.Name, mutedStyle.Render("searching shops…"))
			continue
		}
		b.WriteString(renderProducts(result, productsPerPlant))
	}
	return b.String()
}
