package planner

import (
	"errors"
	"fmt"

	"github.com/talgya/loom/internal/store"
)

var (
	// ErrDomainAlreadyRegistered indicates a duplicate domain name.
	ErrDomainAlreadyRegistered = errors.New("planner: domain already registered")
	// ErrDuplicateTaskLabel indicates two tasks in one domain sharing a label.
	ErrDuplicateTaskLabel = errors.New("planner: duplicate task label")
)

// Status is an action's verdict for the current tick.
type Status int

const (
	// StatusRunning means the task needs more ticks; the planner re-invokes
	// the same task next tick without replanning.
	StatusRunning Status = iota
	// StatusSucceeded means the task completed; the agent replans next tick.
	StatusSucceeded
	// StatusFailed means the task could not complete; the agent replans next
	// tick.
	StatusFailed
)

func (st Status) String() string {
	switch st {
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(st))
	}
}

// WorldState is an agent's working memory for one planning pass, built by the
// domain's Sense function from a read-only store view. It is scratch data:
// discarded after the pass, never written back to the store.
type WorldState map[string]any

// Condition gates a task against working memory.
type Condition func(ws WorldState) bool

// Action performs one tick of a task. It reads the store, queues mutations on
// the changeset, and reports whether the task is done.
type Action func(cs *Changeset, s store.Store, agent store.EntityID, ws WorldState) Status

// Task is one labeled behavior in a domain. Conditions are conjunctive; a
// task with no conditions always applies.
type Task struct {
	Label      string
	Conditions []Condition
	Action     Action
}

func (t Task) applicable(ws WorldState) bool {
	for _, cond := range t.Conditions {
		if !cond(ws) {
			return false
		}
	}
	return true
}

// Domain is a named task network plus the Sense function that builds working
// memory for its agents. Tasks are tried in declaration order.
type Domain struct {
	Name  string
	Sense func(s store.Store, agent store.EntityID) WorldState
	Tasks []Task
}

func (d Domain) task(label string) (Task, bool) {
	for _, t := range d.Tasks {
		if t.Label == label {
			return t, true
		}
	}
	return Task{}, false
}

// Agent is the component row driving planned behavior. Domain names the
// registered domain; Task holds the label of an in-progress task, or "" when
// the agent should plan afresh.
type Agent struct {
	Domain string
	Task   string
}
