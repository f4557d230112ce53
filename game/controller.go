package game

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const exitLabel = "Press any key to exit "

// GameController runs a session inside a tview application. All board
// changes happen on the application's event goroutine.
type GameController struct {
	session  *Session
	renderer *Renderer
	app      *tview.Application
	log      logrus.FieldLogger
}

func NewGameController(session *Session, renderer *Renderer, log logrus.FieldLogger) *GameController {
	c := &GameController{
		session:  session,
		renderer: renderer,
		app:      tview.NewApplication(),
		log:      log,
	}
	c.handleInput()
	return c
}

// SetScreen replaces the terminal screen the application draws on.
func (c *GameController) SetScreen(screen tcell.Screen) {
	c.app.SetScreen(screen)
}

// StartGame draws the board and blocks until the player quits or ctx is
// cancelled.
func (c *GameController) StartGame(ctx context.Context) error {
	c.session.Start()
	c.app.SetRoot(c.renderer.Layout(), true).SetFocus(c.renderer.input)

	// Stop is a no-op until Run has a screen; the first draw proves it does.
	var (
		drawn     = make(chan struct{})
		drawnOnce sync.Once
	)
	c.app.SetAfterDrawFunc(func(tcell.Screen) {
		drawnOnce.Do(func() { close(drawn) })
	})

	appDone := make(chan struct{})
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(appDone)
		return c.app.Run()
	})
	g.Go(func() error {
		select {
		case <-gCtx.Done():
		case <-appDone:
			return nil
		}
		select {
		case <-drawn:
			c.TerminateGame()
		case <-appDone:
		}
		return nil
	})
	return g.Wait()
}

func (c *GameController) TerminateGame() {
	c.log.Info("terminating the game")
	c.app.Stop()
}

func (c *GameController) handleInput() {
	input := c.renderer.input
	input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if c.session.Over() {
			c.TerminateGame()
			return nil
		}
		return event
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			line := input.GetText()
			input.SetText("")
			if _, err := c.session.Submit(line); err == nil && c.session.Over() {
				input.SetLabel(exitLabel)
			}
		case tcell.KeyEscape:
			c.TerminateGame()
		}
	})
}
