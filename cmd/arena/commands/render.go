package commands

import (
	"errors"
	"fmt"

	"github.com/battlesnakeio/arena/rules"
	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	playerColor  = termbox.ColorGreen
	foodColor    = termbox.ColorYellow

	// World pixels covered by one terminal column at zoom 1. Cells are about
	// twice as tall as they are wide.
	cellWidth  = 24.0
	cellHeight = 48.0
)

var rivalColors = []termbox.Attribute{
	termbox.ColorRed,
	termbox.ColorMagenta,
	termbox.ColorCyan,
	termbox.ColorBlue,
	termbox.ColorWhite,
}

// viewport maps world positions onto the terminal around the camera focus.
type viewport struct {
	world        rules.World
	focus        rules.Point
	cellW, cellH float64
	left, top    int
	width        int
	height       int
}

func newViewport(frame *rules.Snapshot, left, top, width, height int) viewport {
	zoom := frame.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return viewport{
		world:  frame.World,
		focus:  frame.Camera.Focus,
		cellW:  cellWidth / zoom,
		cellH:  cellHeight / zoom,
		left:   left,
		top:    top,
		width:  width,
		height: height,
	}
}

// cell returns the terminal cell showing p, if it is on screen. Positions
// are measured the short way around the torus from the focus.
func (v viewport) cell(p rules.Point) (int, int, bool) {
	d := v.world.Delta(v.focus, p)
	x := v.width/2 + int(d.X/v.cellW)
	y := v.height/2 + int(d.Y/v.cellH)
	if x < 0 || x >= v.width || y < 0 || y >= v.height {
		return 0, 0, false
	}
	return v.left + x, v.top + y, true
}

func (v viewport) set(p rules.Point, ch rune, fg termbox.Attribute) {
	if x, y, ok := v.cell(p); ok {
		termbox.SetCell(x, y, ch, fg, bgColor)
	}
}

func render(frame *rules.Snapshot) error {
	if frame == nil {
		return errors.New("received nil frame")
	}
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}

	w, h := termbox.Size()
	left, top := 1, 2
	v := newViewport(frame, left, top, w-2, h-4)

	renderTitle(left, frame)
	renderBoard(left, top, v.width, v.height)
	for _, f := range frame.Food {
		v.set(f.Pos, '·', foodColor)
	}
	for i, r := range frame.Rivals {
		renderEntity(v, r, rivalColors[i%len(rivalColors)])
	}
	if frame.State == rules.StateAlive {
		renderEntity(v, frame.Player, playerColor)
	}
	if frame.Message != "" {
		tbprint(left, top+v.height+1, termbox.ColorRed|termbox.AttrBold, defaultColor, frame.Message)
	}

	return termbox.Flush()
}

func renderEntity(v viewport, e rules.EntityView, color termbox.Attribute) {
	body := 'o'
	head := 'O'
	if e.Kind == rules.KindPlayer {
		body, head = '#', '@'
	}
	if e.Boosting {
		color |= termbox.AttrBold
	}
	for _, p := range e.Body {
		v.set(p, body, color)
	}
	v.set(e.Head, head, color|termbox.AttrBold)
}

func renderTitle(left int, frame *rules.Snapshot) {
	text := fmt.Sprintf("Arena - Turn %d  Score %d  Length %.0f  Zoom %.2f",
		frame.Turn, frame.Score, frame.Player.LengthPx, frame.Camera.Zoom)
	tbprint(left, 0, defaultColor, defaultColor, text)
}

func renderBoard(left, top, width, height int) {
	bottom := top + height
	right := left + width
	for i := top; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(right, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top-1, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(right, top-1, '┐', defaultColor, bgColor)
	termbox.SetCell(right, bottom, '┘', defaultColor, bgColor)

	fill(left, top-1, width, 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, width, 1, termbox.Cell{Ch: '─'})
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
