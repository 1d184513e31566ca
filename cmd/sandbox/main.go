// Command sandbox is a terminal playground for the collision system: walk
// into walls and corners and pick up coins.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/adventure-engine/engine/core"
)

var defaultLayout = []string{
	"##############################",
	"#@           #               #",
	"#    *       #      *        #",
	"#            #               #",
	"#     ####        ###        #",
	"#     ####        ###   *    #",
	"#                            #",
	"#   *        ##              #",
	"#            ##         #    #",
	"##############################",
}

var styles = map[Cell]struct {
	r     rune
	style tcell.Style
}{
	CellFloor:  {' ', tcell.StyleDefault},
	CellWall:   {'█', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	CellCoin:   {'*', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	CellPlayer: {'@', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)},
}

func draw(screen tcell.Screen, s *Sandbox, tick uint64) {
	screen.Clear()
	for y, row := range s.Grid() {
		for x, c := range row {
			st := styles[c]
			screen.SetContent(x, y, st.r, nil, st.style)
		}
	}
	status := fmt.Sprintf("coins %d  bumps %d  tick %d  [arrows/wasd] move [q] quit", s.Coins, s.Bumps, tick)
	for i, r := range status {
		screen.SetContent(i, s.Height+1, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}

func main() {
	tps := flag.Float64("tps", 60, "simulation ticks per second")
	speed := flag.Float64("speed", 0.25, "player speed in world units per tick")
	flag.Parse()

	term := NewTerminal()
	sb, err := NewSandbox(defaultLayout, term, *speed)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen: %v", err)
	}
	defer screen.Fini()

	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				term.Feed(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	loop := core.NewGameLoop(*tps, sb.Step)
	loop.Play()
	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()
	for range frame.C {
		if term.Quit() {
			return
		}
		loop.Update()
		draw(screen, sb, loop.CurrentTick())
	}
}
