package game

import (
	"bytes"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/goregular"
)

// noticeDuration is how long transient overlay messages stay on screen.
const noticeDuration = 3 * TicksPerSecond

// App owns the window side of a Session: keyboard handling, rendering
// and the clipboard report shortcut. All rule decisions stay in Session.
type App struct {
	session *Session

	cellSize int
	width    int
	height   int

	prevKeys map[ebiten.Key]bool

	fontSource *text.GoTextFaceSource

	noticeText  string
	noticeTicks int
}

// NewApp wraps an existing session for interactive play. The session is
// expected to be freshly constructed and still on the instructions screen.
func NewApp(s *Session) (*App, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("game: load font: %w", err)
	}
	cfg := s.Config()
	w, h := cfg.WindowSize()
	return &App{
		session:    s,
		cellSize:   cfg.CellSize(),
		width:      w,
		height:     h,
		prevKeys:   make(map[ebiten.Key]bool),
		fontSource: src,
	}, nil
}

// Update runs one fixed-rate tick: read the keyboard, feed the session,
// and age the notice overlay.
func (a *App) Update() error {
	currentKeys := map[ebiten.Key]bool{}
	for _, k := range watchedKeys {
		currentKeys[k] = ebiten.IsKeyPressed(k)
	}
	pressed := func(k ebiten.Key) bool {
		return currentKeys[k] && !a.prevKeys[k]
	}

	if a.noticeTicks > 0 {
		a.noticeTicks--
	}

	if a.session.Phase() != PhaseInstructions && pressed(ebiten.KeyC) {
		a.copyReport()
	}

	var err error
	switch a.session.Phase() {
	case PhaseInstructions:
		// Any key dismisses the instructions and starts the first episode.
		if len(inpututil.AppendJustPressedKeys(nil)) > 0 {
			err = a.session.Reset()
		}
	case PhasePlaying:
		if pressed(ebiten.KeyR) {
			err = a.session.Reset()
		} else {
			a.session.Advance(arrowStep(pressed))
		}
	case PhaseWon, PhaseLost:
		switch {
		case pressed(ebiten.KeyQ):
			a.prevKeys = currentKeys
			return ebiten.Termination
		case pressed(ebiten.KeyR):
			err = a.session.Reset()
		}
	}

	a.prevKeys = currentKeys
	return err
}

// watchedKeys is every key the play loop edge-triggers on. Polling the
// whole set each frame keeps prevKeys fresh across phase changes.
var watchedKeys = []ebiten.Key{
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeyR,
	ebiten.KeyQ,
	ebiten.KeyC,
}

// arrowStep maps freshly pressed arrow keys onto a single move for the
// tick. One direction per tick; up and down take priority over left and
// right when several arrows land on the same frame.
func arrowStep(pressed func(ebiten.Key) bool) (int, int) {
	switch {
	case pressed(ebiten.KeyArrowUp):
		return 0, -1
	case pressed(ebiten.KeyArrowDown):
		return 0, 1
	case pressed(ebiten.KeyArrowLeft):
		return -1, 0
	case pressed(ebiten.KeyArrowRight):
		return 1, 0
	}
	return 0, 0
}

func (a *App) copyReport() {
	if err := clipboard.WriteAll(EpisodeReport(a.session)); err != nil {
		log.Warnf("clipboard copy failed: %v", err)
		a.notice("clipboard copy failed")
		return
	}
	a.notice("episode report copied to clipboard")
}

func (a *App) notice(msg string) {
	a.noticeText = msg
	a.noticeTicks = noticeDuration
}

// Layout reports the fixed logical screen size. The window never resizes
// mid-session because the grid size is fixed at construction.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Draw renders the current phase.
func (a *App) Draw(screen *ebiten.Image) {
	if a.session.Phase() == PhaseInstructions {
		a.drawInstructions(screen)
		return
	}
	a.drawBoard(screen)
	switch a.session.Phase() {
	case PhaseWon:
		a.drawBanner(screen, winMessage)
	case PhaseLost:
		a.drawBanner(screen, loseMessage)
	}
	a.drawNotice(screen)
}
