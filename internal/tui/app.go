// Package tui renders discovered video entries as a scrollable gallery.
// Sensitive entries stay masked until explicitly revealed.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidshelf/vidshelf/internal/discover"
	"github.com/vidshelf/vidshelf/internal/gallery"
	"github.com/vidshelf/vidshelf/internal/source"
	"github.com/vidshelf/vidshelf/internal/util"
)

// galleryItem is a gallery.VideoEntry plus local view state.
type galleryItem struct {
	gallery.VideoEntry
	Sensitive bool
	Revealed  bool
}

// Messages
type entriesMsg struct{ entries []gallery.VideoEntry }

type errMsg struct{ err error }

type statusClearMsg struct{ id int }

// Model is the main Bubble Tea model.
type Model struct {
	pipeline   *discover.Pipeline
	classifier gallery.Classifier
	siteRoot   string
	items      []galleryItem
	cursor     int
	offset     int
	height     int
	width      int
	filter     string
	spinner    spinner.Model
	loading    bool
	err        error
	statusMsg  string
	statusID   int
}

// NewModel creates the TUI model. siteRoot is prepended to relative entry
// URLs when copying, so the clipboard always receives a playable link.
func NewModel(pipeline *discover.Pipeline, classifier gallery.Classifier, siteRoot string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		pipeline:   pipeline,
		classifier: classifier,
		siteRoot:   siteRoot,
		spinner:    s,
		height:     20,
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.discoverCmd())
}

func (m Model) discoverCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.pipeline.Discover(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return entriesMsg{entries}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 6 // title, count, status bar
		if m.height < 3 {
			m.height = 3
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case entriesMsg:
		m.items = make([]galleryItem, len(msg.entries))
		for i, e := range msg.entries {
			m.items[i] = galleryItem{
				VideoEntry: e,
				Sensitive:  m.classifier.IsSensitive(e),
			}
		}
		m.cursor = 0
		m.offset = 0
		m.loading = false
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case statusClearMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.height)
	case "pgdown":
		m.moveCursor(m.height)
	case "home":
		m.cursor = 0
		m.offset = 0
	case "end":
		m.cursor = len(m.visible()) - 1
		m.clampViewport()

	case "r":
		if sel := m.selected(); sel != nil && sel.Sensitive {
			sel.Revealed = !sel.Revealed
		}

	case "c":
		if sel := m.selected(); sel != nil {
			if err := clipboard.WriteAll(m.absoluteURL(sel.URL)); err != nil {
				return m.setStatus(errorStyle.Render("Copy failed: " + err.Error()))
			}
			return m.setStatus(successStyle.Render("Copied URL to clipboard"))
		}

	case "R":
		m.loading = true
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, m.discoverCmd())

	case "esc":
		m.filter = ""
		m.cursor = 0
		m.offset = 0

	case "backspace":
		if m.filter != "" {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
			m.cursor = 0
			m.offset = 0
		}

	default:
		if len(msg.String()) == 1 {
			m.filter += strings.ToLower(msg.String())
			m.cursor = 0
			m.offset = 0
		}
	}
	return m, nil
}

func (m *Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusID++
	id := m.statusID
	return *m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{id}
	})
}

func (m Model) absoluteURL(entryURL string) string {
	lower := strings.ToLower(entryURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return entryURL
	}
	return strings.TrimRight(m.siteRoot, "/") + "/" + entryURL
}

func (m *Model) visible() []int {
	indices := make([]int, 0, len(m.items))
	q := strings.TrimSpace(m.filter)
	for i, it := range m.items {
		if q == "" || strings.Contains(strings.ToLower(it.Name), q) {
			indices = append(indices, i)
		}
	}
	return indices
}

func (m *Model) selected() *galleryItem {
	visible := m.visible()
	if m.cursor >= 0 && m.cursor < len(visible) {
		return &m.items[visible[m.cursor]]
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampViewport()
}

func (m *Model) clampViewport() {
	total := len(m.visible())
	if total == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= total {
		m.cursor = total - 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("vidshelf"))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(fmt.Sprintf("\n  %s Discovering videos...\n", m.spinner.View()))
		return sb.String()
	}

	if m.err != nil {
		sb.WriteString("\n")
		if errors.Is(m.err, source.ErrNoMedia) {
			sb.WriteString(errorStyle.Render("  No manifest and no videos in the directory listing."))
		} else {
			sb.WriteString(errorStyle.Render(fmt.Sprintf("  Discovery failed: %v", m.err)))
		}
		sb.WriteString("\n\n")
		sb.WriteString(helpStyle.Render("  R retry  q quit"))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(m.items) == 0 {
		sb.WriteString("\n  No videos found.\n\n")
		sb.WriteString(helpStyle.Render("  R refresh  q quit"))
		sb.WriteString("\n")
		return sb.String()
	}

	if m.filter != "" {
		sb.WriteString(helpStyle.Render(fmt.Sprintf("  Filter: %q", m.filter)))
		sb.WriteString("\n")
	}

	visible := m.visible()
	m.clampViewport()
	if len(visible) == 0 {
		sb.WriteString(helpStyle.Render("  No matches for current filter."))
		sb.WriteString("\n")
		sb.WriteString(m.statusBar(0))
		return sb.String()
	}

	end := m.offset + m.height
	if end > len(visible) {
		end = len(visible)
	}

	rowWidth := m.width - selectedStyle.GetHorizontalFrameSize()
	if rowWidth < 20 {
		rowWidth = 20
	}
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.renderRow(m.items[visible[i]], rowWidth, i == m.cursor))
		sb.WriteString("\n")
	}

	if len(visible) > m.height {
		sb.WriteString(helpStyle.Render(
			fmt.Sprintf("  %d/%d videos", m.cursor+1, len(visible)),
		))
		sb.WriteString("\n")
	}

	sb.WriteString(m.statusBar(len(visible)))
	return sb.String()
}

func (m Model) renderRow(it galleryItem, rowWidth int, isSelected bool) string {
	var label string
	switch {
	case it.Sensitive && !it.Revealed:
		label = maskedStyle.Render("████████ ") + sensitiveBadge.Render("sensitive — r to reveal")
	case it.Sensitive:
		label = nameStyle.Render(truncateText(it.Name, max(12, rowWidth-30))) +
			" " + sensitiveBadge.Render("[sensitive]")
	default:
		label = nameStyle.Render(truncateText(it.Name, max(12, rowWidth-30)))
	}

	badge := "   "
	if it.Poster != "" {
		badge = posterBadge.Render(" ▣ ")
	}

	line := fmt.Sprintf("  %s%s  %s",
		badge,
		label,
		urlStyle.Render(util.TruncatePath(it.URL, max(10, rowWidth/3))),
	)

	if isSelected {
		return selectedStyle.Render(padToWidth(line, rowWidth))
	}
	return normalStyle.Render(padToWidth(line, rowWidth))
}

func (m Model) statusBar(count int) string {
	if m.statusMsg != "" {
		return statusBarStyle.Render(m.statusMsg)
	}
	return statusBarStyle.Render(
		fmt.Sprintf("%d videos  ·  c copy url  r reveal  R refresh  esc clear filter  q quit", count),
	)
}

func truncateText(s string, maxWidth int) string {
	if maxWidth < 4 {
		return s
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	r := []rune(s)
	if len(r) <= maxWidth {
		return s
	}
	return string(r[:maxWidth-3]) + "..."
}

func padToWidth(s string, width int) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the TUI.
func Run(pipeline *discover.Pipeline, classifier gallery.Classifier, siteRoot string) error {
	p := tea.NewProgram(NewModel(pipeline, classifier, siteRoot), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
