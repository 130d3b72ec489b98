package arcade

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// ChestVariant selects which chest art to display.
type ChestVariant int

const (
	ChestClosed ChestVariant = iota // nothing affordable
	ChestReady                      // at least one chest affordable
)

const chestClosed = `╔═══════════╗
║▓▓▓▓▓▓▓▓▓▓▓║
╠═════╦═════╣
║     ╩     ║
╚═══════════╝`

const chestReady = `  ✦       ✦
╔═══════════╗
║▓▓▓▓▓▓▓▓▓▓▓║
╠═════╦═════╣
║     ◆     ║
╚═══════════╝`

// RenderChest returns the chest art for the given variant.
func RenderChest(v ChestVariant) string {
	art, fg := chestClosed, theme.TextDim
	if v == ChestReady {
		art, fg = chestReady, theme.ArcadeYellow
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
