package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/isograph/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FileListModel - Interactive graph file selection
// =============================================================================

// GraphFile describes a GraphML file offered for conversion.
type GraphFile struct {
	Name     string
	Protein  string
	Size     int64
	Modified time.Time
	Retained bool
}

// listGraphFiles returns the GraphML files in dir, marking those whose
// protein id is in retained.
func listGraphFiles(dir string, retained []string) ([]GraphFile, error) {
	names, err := pipeline.AvailableFiles(dir)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(retained))
	for _, id := range retained {
		keep[id] = true
	}

	files := make([]GraphFile, 0, len(names))
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		id := pipeline.ProteinID(name)
		files = append(files, GraphFile{
			Name:     name,
			Protein:  id,
			Size:     info.Size(),
			Modified: info.ModTime(),
			Retained: keep[id],
		})
	}
	return files, nil
}

// FileListModel is the bubbletea model for interactive graph selection.
type FileListModel struct {
	Files    []GraphFile
	Cursor   int
	Selected *GraphFile
	Height   int
	Offset   int
}

// NewFileListModel creates a new file list model.
func NewFileListModel(files []GraphFile) FileListModel {
	return FileListModel{
		Files:  files,
		Height: 15,
	}
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Files) == 0 {
				return m, tea.Quit
			}
			f := m.Files[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ convert  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Files) {
		end = len(m.Files)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		retained := ""
		if f.Retained {
			retained = "✓"
		}
		rows = append(rows, []string{cursor, f.Name, f.Protein, formatSize(f.Size), formatRelativeTime(f.Modified), retained})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Protein", "Size", "Modified", "Ledger").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Files) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				if col < 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// pickGraphFile runs the interactive picker. It returns nil if the user
// quit without selecting.
func pickGraphFile(files []GraphFile) (*GraphFile, error) {
	result, err := tea.NewProgram(NewFileListModel(files)).Run()
	if err != nil {
		return nil, err
	}
	return result.(FileListModel).Selected, nil
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
