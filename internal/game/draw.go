package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBackground = color.RGBA{0, 0, 0, 255}
	colorClosed     = color.RGBA{50, 50, 50, 255}
	colorOpen       = color.RGBA{200, 200, 200, 255}
	colorGoal       = color.RGBA{0, 255, 0, 255}
	colorPlayer1    = color.RGBA{0, 0, 255, 255}
	colorPlayer2    = color.RGBA{255, 0, 255, 255}
	colorAdversary  = color.RGBA{255, 0, 0, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
)

const (
	winMessage  = "You win! Press R to restart or Q to quit."
	loseMessage = "Game Over! Press R to restart or Q to quit."
)

var instructionLines = []string{
	"Quantum Adventure Game",
	"",
	"Use the arrow keys to move the blue player",
	"The pink player is quantum entangled and moves in mirrored directions",
	"Avoid the red enemies",
	"Try to reach the green goal with either player",
	"The maze paths (white squares) are generated using quantum superposition",
	"The enemy movements are random walks",
	"The game ends when either:",
	"- One of the players reaches the goal (you win!)",
	"- One of the players collides with an enemy (game over)",
	"",
	"Press any key to start...",
}

const (
	instructionTextSize = 16
	instructionLineStep = 26
	instructionTopY     = 40
	bannerTextSize      = 22
)

func (a *App) drawInstructions(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	face := &text.GoTextFace{Source: a.fontSource, Size: instructionTextSize}
	for i, line := range instructionLines {
		if line == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(a.width)/2, float64(instructionTopY+i*instructionLineStep))
		op.ColorScale.ScaleWithColor(colorText)
		op.PrimaryAlign = text.AlignCenter
		text.Draw(screen, line, face, op)
	}
}

// drawBoard paints the maze, then the goal, then both agents, then the
// adversaries. Adversaries go last so a capture is visible on the final
// frame.
func (a *App) drawBoard(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g := a.session.Grid()
	if g == nil {
		return
	}
	cs := float32(a.cellSize)
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			clr := colorClosed
			if g.Open(Point{X: x, Y: y}) {
				clr = colorOpen
			}
			vector.FillRect(screen, float32(x)*cs, float32(y)*cs, cs, cs, clr, false)
		}
	}
	a.fillCell(screen, g.Goal(), colorGoal)
	p1, p2 := a.session.Agents()
	a.fillCell(screen, p1, colorPlayer1)
	a.fillCell(screen, p2, colorPlayer2)
	for _, p := range a.session.AdversaryPositions() {
		a.fillCell(screen, p, colorAdversary)
	}
}

func (a *App) fillCell(screen *ebiten.Image, p Point, clr color.RGBA) {
	cs := float32(a.cellSize)
	vector.FillRect(screen, float32(p.X)*cs, float32(p.Y)*cs, cs, cs, clr, false)
}

func (a *App) drawBanner(screen *ebiten.Image, msg string) {
	face := &text.GoTextFace{Source: a.fontSource, Size: bannerTextSize}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(a.width)/2, float64(a.height)/2)
	op.ColorScale.ScaleWithColor(colorText)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, msg, face, op)
}

func (a *App) drawNotice(screen *ebiten.Image) {
	if a.noticeTicks <= 0 {
		return
	}
	ebitenutil.DebugPrintAt(screen, a.noticeText, 4, a.height-16)
}
