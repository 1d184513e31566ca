package scene

import (
	"fmt"
	"log"
)

// Director runs a stack of scenes. The top scene is updated every frame;
// a scene that sets Next pauses under it, a finished scene is popped and
// the one below resumes. JumpToExit pops everything.
type Director struct {
	Log *log.Logger

	stack   []Scene
	entered map[Scene]bool
}

func NewDirector(logger *log.Logger, first Scene) *Director {
	if logger == nil {
		logger = log.Default()
	}
	d := &Director{Log: logger, entered: make(map[Scene]bool)}
	if first != nil {
		d.stack = append(d.stack, first)
	}
	return d
}

// Current returns the scene on top of the stack, nil when done
func (d *Director) Current() Scene {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

// Done reports whether every scene exited
func (d *Director) Done() bool { return len(d.stack) == 0 }

// Push enters a scene on top of the current one
func (d *Director) Push(s Scene) { d.stack = append(d.stack, s) }

// Update advances the current scene one frame and applies the transition it asked for
func (d *Director) Update(dt float64) error {
	cur := d.Current()
	if cur == nil {
		return nil
	}
	if !d.entered[cur] {
		d.Log.Printf("entering scene %s", cur.Name())
		if err := cur.OnEnter(); err != nil {
			d.pop()
			return fmt.Errorf("enter scene %s: %w", cur.Name(), err)
		}
		d.entered[cur] = true
	}

	cur.Update(dt)
	st := cur.State()

	next := st.Next
	st.Next = nil
	if st.Finished {
		d.exit(cur)
		if st.JumpToExit {
			for !d.Done() {
				d.exit(d.Current())
			}
			return nil
		}
	}
	if next != nil {
		d.Push(next)
	}
	return nil
}

func (d *Director) exit(s Scene) {
	d.Log.Printf("exiting scene %s", s.Name())
	if d.entered[s] {
		s.OnExit()
	}
	d.pop()
}

func (d *Director) pop() {
	top := d.Current()
	delete(d.entered, top)
	d.stack[len(d.stack)-1] = nil
	d.stack = d.stack[:len(d.stack)-1]
}
