package systems

import (
	"log"

	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/event"
)

// TaskStatus tells the cutscene runner whether a task needs more frames
type TaskStatus uint8

const (
	TaskContinue TaskStatus = iota
	TaskFinished
)

// Task is one step of a cutscene. Advance is called once per frame until it
// reports TaskFinished.
type Task interface {
	Advance(w *core.World) TaskStatus
}

// FuncTask calls Fn once per frame, Times times in total (at least once)
type FuncTask struct {
	Fn    func(w *core.World)
	Times int
	calls int
}

func (t *FuncTask) Advance(w *core.World) TaskStatus {
	if t.Fn != nil {
		t.Fn(w)
	}
	t.calls++
	if t.calls >= max(t.Times, 1) {
		return TaskFinished
	}
	return TaskContinue
}

// WaitTask does nothing for Frames frames
type WaitTask struct {
	Frames  int
	elapsed int
}

func (t *WaitTask) Advance(*core.World) TaskStatus {
	t.elapsed++
	if t.elapsed >= t.Frames {
		return TaskFinished
	}
	return TaskContinue
}

// MoveTask attaches a Move to Entity on its first frame and finishes once the
// kinetic pass removed it again, or the entity is gone
type MoveTask struct {
	Entity       core.EntityID
	GoalX, GoalY float64
	Speed        float64
	started      bool
}

func (t *MoveTask) Advance(w *core.World) TaskStatus {
	if !w.Alive(t.Entity) {
		return TaskFinished
	}
	if !t.started {
		t.started = true
		if err := w.AddComponent(t.Entity, core.NewMove(t.GoalX, t.GoalY, t.Speed)); err != nil {
			return TaskFinished
		}
		return TaskContinue
	}
	if core.Has[*core.Move](w, t.Entity) {
		return TaskContinue
	}
	return TaskFinished
}

// CutsceneFinished is emitted once every task list of a cutscene completed
type CutsceneFinished struct {
	Name string
}

// Cutscene is a named set of task lists. Lists run in parallel; within a
// list tasks run one after another.
type Cutscene struct {
	Name  string
	Lists [][]Task
}

type runningCutscene struct {
	name    string
	lists   [][]Task
	cursors []int
}

func (r *runningCutscene) done() bool {
	for i, l := range r.lists {
		if r.cursors[i] < len(l) {
			return false
		}
	}
	return true
}

// CutsceneSystem advances the current task of every list of every running
// cutscene once per frame
type CutsceneSystem struct {
	Log     *log.Logger
	queue   *event.Queue
	running []*runningCutscene
	started []*runningCutscene
}

func NewCutsceneSystem(logger *log.Logger) *CutsceneSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &CutsceneSystem{Log: logger, queue: event.NewQueue()}
}

func (s *CutsceneSystem) Priority() int { return 8 }

func (s *CutsceneSystem) Events() *event.Queue { return s.queue }

// Start schedules a cutscene; it first advances on the next update
func (s *CutsceneSystem) Start(c Cutscene) {
	r := &runningCutscene{name: c.Name, lists: c.Lists, cursors: make([]int, len(c.Lists))}
	s.started = append(s.started, r)
	s.Log.Printf("cutscene %q started with %d task lists", c.Name, len(c.Lists))
}

// Running reports whether a cutscene with that name is in progress
func (s *CutsceneSystem) Running(name string) bool {
	for _, r := range s.running {
		if r.name == name {
			return true
		}
	}
	for _, r := range s.started {
		if r.name == name {
			return true
		}
	}
	return false
}

// Active returns how many cutscenes are in progress
func (s *CutsceneSystem) Active() int { return len(s.running) + len(s.started) }

// Update adopts cutscenes started since the last frame, including ones a
// task started during the previous update
func (s *CutsceneSystem) Update(w *core.World, _ float64) {
	s.running = append(s.running, s.started...)
	clear(s.started)
	s.started = s.started[:0]

	kept := s.running[:0]
	for _, r := range s.running {
		for i, l := range r.lists {
			if r.cursors[i] >= len(l) {
				continue
			}
			if l[r.cursors[i]].Advance(w) == TaskFinished {
				r.cursors[i]++
			}
		}
		if r.done() {
			s.Log.Printf("cutscene %q finished", r.name)
			s.queue.Add(CutsceneFinished{Name: r.name})
			continue
		}
		kept = append(kept, r)
	}
	clear(s.running[len(kept):])
	s.running = kept
}
