// Package mutation описывает изменение списка как команду с явными состояниями.
package mutation

import (
	"context"
	"fmt"
)

// State — состояние команды.
type State int

const (
	Pending State = iota
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Observer получает каждый переход состояния; удобно для тестов.
type Observer func(name string, s State)

// Command — одно изменение списка.
// Optimistic (если задан) применяется до запроса; Do — запрос к серверу;
// Commit применяется после успеха, Rollback — после ошибки.
type Command struct {
	Name       string
	Optimistic func()
	Do         func(ctx context.Context) error
	Commit     func()
	Rollback   func(err error)
	Observer   Observer

	state State
}

// State возвращает текущее состояние.
func (c *Command) State() State { return c.state }

// Run выполняет команду и возвращает ошибку Do.
func (c *Command) Run(ctx context.Context) error {
	c.transition(Pending)
	if c.Optimistic != nil {
		c.Optimistic()
	}
	if err := c.Do(ctx); err != nil {
		if c.Rollback != nil {
			c.Rollback(err)
		}
		c.transition(RolledBack)
		return err
	}
	if c.Commit != nil {
		c.Commit()
	}
	c.transition(Committed)
	return nil
}

func (c *Command) transition(s State) {
	c.state = s
	if c.Observer != nil {
		c.Observer(c.Name, s)
	}
}
