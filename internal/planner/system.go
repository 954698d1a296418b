package planner

import (
	"fmt"
	"sort"

	"github.com/talgya/loom/internal/store"
)

// SystemName is the planner's registry name.
const SystemName = "planner"

// System drives every Agent row through its domain's task network once per
// tick.
type System struct {
	domains map[string]Domain
	order   []string
}

// NewSystem creates a planner with no domains registered.
func NewSystem() *System {
	return &System{domains: make(map[string]Domain)}
}

// RegisterDomain adds a domain to the registry. Names and task labels must be
// unique.
func (p *System) RegisterDomain(d Domain) error {
	if _, dup := p.domains[d.Name]; dup {
		return fmt.Errorf("%w: %s", ErrDomainAlreadyRegistered, d.Name)
	}
	seen := make(map[string]struct{}, len(d.Tasks))
	for _, t := range d.Tasks {
		if _, dup := seen[t.Label]; dup {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateTaskLabel, d.Name, t.Label)
		}
		seen[t.Label] = struct{}{}
	}
	p.domains[d.Name] = d
	p.order = append(p.order, d.Name)
	return nil
}

// DomainNames returns registered domain names in registration order.
func (p *System) DomainNames() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// Name implements the system contract.
func (p *System) Name() string { return SystemName }

// Initialize registers the Agent table.
func (p *System) Initialize(s store.Store) (store.Store, error) {
	return store.RegisterTable[Agent](s)
}

// Run processes agents in sorted id order. Each agent's queued changes are
// folded into the store before the next agent is sensed, so later agents
// observe earlier agents' effects within the same tick.
func (p *System) Run(s store.Store) (store.Store, error) {
	agents, err := store.Table[Agent](s)
	if err != nil {
		return s, err
	}
	ids := make([]store.EntityID, 0, len(agents))
	for id := range agents {
		ids = append(ids, id)
	}
	sortIDs(ids)

	for _, id := range ids {
		// Re-read the row: an earlier agent's changes may have touched it.
		agent, ok := store.Lookup[Agent](s, id)
		if !ok {
			continue
		}
		domain, ok := p.domains[agent.Domain]
		if !ok {
			// Unknown domain is a soft condition, not a wiring error.
			continue
		}
		s, err = p.runAgent(s, id, agent, domain)
		if err != nil {
			return s, fmt.Errorf("planner: agent %s: %w", id, err)
		}
	}
	return s, nil
}

// Shutdown is a no-op; agent rows belong to the world, not the planner.
func (p *System) Shutdown(s store.Store) (store.Store, error) {
	return s, nil
}

func (p *System) runAgent(s store.Store, id store.EntityID, agent Agent, domain Domain) (store.Store, error) {
	ws := WorldState{}
	if domain.Sense != nil {
		ws = domain.Sense(s, id)
	}

	var task Task
	var found bool
	replanned := false

	if agent.Task != "" {
		task, found = domain.task(agent.Task)
	}
	if !found {
		replanned = true
		for _, t := range domain.Tasks {
			if t.applicable(ws) {
				task, found = t, true
				break
			}
		}
	}
	if !found {
		// No applicable task this tick; drop any stale label.
		if agent.Task != "" {
			return store.Insert(s, id, Agent{Domain: agent.Domain})
		}
		return s, nil
	}

	cs := &Changeset{}
	status := task.Action(cs, s, id, ws)
	s, err := cs.fold(s)
	if err != nil {
		return s, fmt.Errorf("task %s: %w", task.Label, err)
	}

	next := Agent{Domain: agent.Domain}
	if status == StatusRunning {
		next.Task = task.Label
	}
	if next != agent || replanned {
		if s, err = store.Insert(s, id, next); err != nil {
			return s, err
		}
	}
	return s, nil
}

func sortIDs(ids []store.EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
