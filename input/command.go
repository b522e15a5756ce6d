// Package input translates host pointer events into engine commands.
package input

import "fmt"

// Kind identifies a pointer command.
type Kind uint8

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	Click
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// Command is a pointer command in world coordinates.
type Command struct {
	Kind Kind
	X, Y float64
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%.1f,%.1f)", c.Kind, c.X, c.Y)
}

// Down, Move, Up and ClickAt build commands.
func Down(x, y float64) Command    { return Command{Kind: PointerDown, X: x, Y: y} }
func Move(x, y float64) Command    { return Command{Kind: PointerMove, X: x, Y: y} }
func Up(x, y float64) Command      { return Command{Kind: PointerUp, X: x, Y: y} }
func ClickAt(x, y float64) Command { return Command{Kind: Click, X: x, Y: y} }

// Queue buffers commands between ticks. Hosts push as events arrive and
// drain once per tick before stepping the engine.
type Queue struct {
	cmds []Command
}

// Push appends a command.
func (q *Queue) Push(c Command) {
	q.cmds = append(q.cmds, c)
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Drain returns pending commands in arrival order and empties the queue.
func (q *Queue) Drain() []Command {
	out := q.cmds
	q.cmds = nil
	return out
}
