package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matterframe/matterframe/pkg/core/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// treeCommand creates the tree command for browsing the containment tree.
func (c *CLI) treeCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Browse the containment tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.openEngine(args[0])
			if err != nil {
				return err
			}
			c.recordSession(cmd.Context(), args[0], eng.Scene().Count())

			rows, err := buildTreeRows(eng.Scene())
			if err != nil {
				return err
			}

			if plain {
				for _, row := range rows {
					fmt.Println(row.plain())
				}
				return nil
			}

			model := NewTreeModel(eng.Scene(), rows)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the tree without the interactive browser")

	return cmd
}

// treeRow is one line of the flattened containment tree.
type treeRow struct {
	id     scene.ID
	depth  int
	kind   scene.Kind
	label  string
	layout bool
}

func (r treeRow) plain() string {
	return strings.Repeat("  ", r.depth) + r.label
}

// buildTreeRows flattens the scene into display rows, roots first, children
// in insertion order.
func buildTreeRows(s *scene.Scene) ([]treeRow, error) {
	var rows []treeRow
	var walk func(id scene.ID, depth int) error
	walk = func(id scene.ID, depth int) error {
		rec, err := s.Get(id)
		if err != nil {
			return err
		}

		label := fmt.Sprintf("#%d %s", id, rec.Kind())
		layoutOn := false
		if rec.IsContainer() {
			label += fmt.Sprintf(" [%s]", rec.ContainerSizing())
			if rec.LayoutEnabled() {
				label += " ⊞"
				layoutOn = true
			}
		}
		rows = append(rows, treeRow{id: id, depth: depth, kind: rec.Kind(), label: label, layout: layoutOn})

		if rec.IsContainer() {
			kids, err := s.Children(id)
			if err != nil {
				return err
			}
			for _, kid := range kids {
				if err := walk(kid, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, root := range s.Roots() {
		if err := walk(root, 0); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// TreeModel is the bubbletea model for interactive tree browsing.
type TreeModel struct {
	Scene  *scene.Scene
	Rows   []treeRow
	Cursor int
	Height int
	Offset int
}

// NewTreeModel creates a new tree browser model.
func NewTreeModel(s *scene.Scene, rows []treeRow) TreeModel {
	return TreeModel{
		Scene:  s,
		Rows:   rows,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scene Hierarchy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + row.plain()
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case row.kind == scene.KindLeaf:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// detailView renders the selected object's pose and layout state.
func (m TreeModel) detailView() string {
	if len(m.Rows) == 0 {
		return listDimStyle.Render("  empty scene")
	}

	id := m.Rows[m.Cursor].id
	rec, err := m.Scene.Get(id)
	if err != nil {
		return listDimStyle.Render("  " + err.Error())
	}

	var parts []string
	if world, err := m.Scene.WorldTransform(id); err == nil {
		parts = append(parts, fmt.Sprintf("world %s", fmtVec(world.Position[0], world.Position[1], world.Position[2])))
	}
	parts = append(parts, "extents "+fmtExtents(rec.Extents()))
	if rec.IsContainer() {
		if cfg := rec.Layout(); cfg != nil && cfg.Enabled {
			parts = append(parts, fmt.Sprintf("layout %s gap %.2f", fmtAxes(cfg.Direction), cfg.Gap))
		}
	}
	return listDimStyle.Render("  " + strings.Join(parts, " · "))
}
