package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// phase represents which prompt the review screen is on.
type phase int

const (
	phaseReviewerID   phase = iota // asking for ORCID/URI
	phaseReviewerName              // asking for display name
	phaseDecision                  // showing a mapping, awaiting y/n/r
	phaseComment                   // awaiting justification text
	phaseDone                      // review complete, file written
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(14)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the Bubble Tea model for an interactive review run.
type Model struct {
	session *Session
	outDir  string

	input    textinput.Model
	phase    phase
	index    int
	decision Decision

	savedPath string
	aborted   bool
	err       error
}

// NewModel creates the review TUI over a loaded session.
func NewModel(session *Session, outDir string) Model {
	ti := textinput.New()
	ti.Placeholder = "ORCID or identifying URI"
	ti.Width = 60
	ti.CharLimit = 512
	ti.Focus()

	return Model{
		session: session,
		outDir:  outDir,
		input:   ti,
		phase:   phaseReviewerID,
	}
}

// SavedPath returns the output file path, once written.
func (m Model) SavedPath() string { return m.savedPath }

// Aborted reports whether the user quit before saving.
func (m Model) Aborted() bool { return m.aborted }

// Err returns the error that ended the review, if any.
func (m Model) Err() error { return m.err }

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input across the review phases.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	if keyMsg.String() == "ctrl+c" {
		if m.phase != phaseDone {
			m.aborted = true
		}
		return m, tea.Quit
	}

	switch m.phase {
	case phaseReviewerID:
		if keyMsg.String() == "enter" {
			id := strings.TrimSpace(m.input.Value())
			if id == "" {
				return m, nil
			}
			m.session.SetReviewer(Reviewer{ID: normalizeReviewerID(id)})
			m.input.SetValue("")
			m.input.Placeholder = "Your name"
			m.phase = phaseReviewerName
			return m, nil
		}
		return m.updateInput(msg)

	case phaseReviewerName:
		if keyMsg.String() == "enter" {
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			reviewer := m.session.Reviewer()
			reviewer.Name = name
			m.session.SetReviewer(reviewer)
			m.input.Blur()
			if len(m.session.Mappings()) == 0 {
				return m.finish()
			}
			m.phase = phaseDecision
			return m, nil
		}
		return m.updateInput(msg)

	case phaseDecision:
		switch keyMsg.String() {
		case "y":
			return m.choose(DecisionAccept)
		case "n":
			return m.choose(DecisionReject)
		case "r":
			return m.choose(DecisionRefine)
		case "enter":
			return m.choose(DecisionUnspecified)
		}
		return m, nil

	case phaseComment:
		if keyMsg.String() == "enter" {
			if err := m.session.Annotate(m.index, m.decision, strings.TrimSpace(m.input.Value())); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.index++
			if m.index >= len(m.session.Mappings()) {
				return m.finish()
			}
			m.input.Blur()
			m.phase = phaseDecision
			return m, nil
		}
		return m.updateInput(msg)

	case phaseDone:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) choose(d Decision) (tea.Model, tea.Cmd) {
	m.decision = d
	m.input.SetValue("")
	m.input.Placeholder = "Justification for your decision"
	m.input.Focus()
	m.phase = phaseComment
	return m, textinput.Blink
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	path, err := m.session.Save(m.outDir)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.savedPath = path
	m.phase = phaseDone
	return m, tea.Quit
}

// View renders the current phase.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SSSOM Mapping Review"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseReviewerID:
		b.WriteString("Reviewer id (an ORCID is recommended; bare ORCIDs get the orcid: prefix):\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: confirm  ctrl+c: quit"))

	case phaseReviewerName:
		b.WriteString("Reviewer name:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: confirm  ctrl+c: quit"))

	case phaseDecision, phaseComment:
		mapping := m.session.Mappings()[m.index]
		b.WriteString(progressStyle.Render(
			fmt.Sprintf("Mapping %d of %d", m.index+1, len(m.session.Mappings()))))
		b.WriteString("\n\n")
		b.WriteString(renderField("subject", mapping.SubjectID))
		b.WriteString(renderField("predicate", mapping.PredicateID))
		b.WriteString(renderField("object", mapping.ObjectID))
		if mapping.Confidence != nil {
			b.WriteString(renderField("confidence", fmt.Sprintf("%g", *mapping.Confidence)))
		}
		if mapping.CurationRule != "" {
			b.WriteString(renderField("curation rule", mapping.CurationRule))
		}
		b.WriteString("\n")
		if m.phase == phaseDecision {
			b.WriteString("Is this mapping acceptable?\n\n")
			b.WriteString(helpStyle.Render("y: accept  n: reject  r: needs refinement  enter: unspecified  ctrl+c: quit"))
		} else {
			b.WriteString(fmt.Sprintf("Decision: %s\n\n", valueStyle.Render(string(m.decision))))
			b.WriteString(m.input.View())
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("enter: confirm  ctrl+c: quit"))
		}

	case phaseDone:
		b.WriteString("Review complete.\n")
		b.WriteString(renderField("written to", m.savedPath))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	return b.String()
}

func renderField(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value) + "\n"
}

// normalizeReviewerID prefixes bare ORCID-style ids with "orcid:".
// Anything already carrying a scheme or prefix passes through.
func normalizeReviewerID(id string) string {
	if strings.Contains(id, ":") || strings.Contains(id, "/") {
		return id
	}
	return "orcid:" + id
}
