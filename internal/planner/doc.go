// Package planner runs task-network behavior for agent entities.
//
// A Domain names an agent behavior: a Sense function that distills the store
// into per-agent working memory, and an ordered list of labeled tasks. Each
// tick the planner walks every agent row in sorted id order, resolves the
// agent's domain by name, and either resumes the agent's stored task or picks
// the first task whose conditions all hold against fresh working memory.
//
// Actions never mutate the store directly. They queue mutations through a
// Changeset; the queued operations are folded into the store after the action
// returns, so a failing action leaves no partial writes behind.
//
// INVARIANTS:
//   - Agents are processed in sorted id order; each agent's queued changes
//     are applied before the next agent is sensed.
//   - An agent naming an unregistered domain is skipped without error.
//   - StatusRunning stores the task label on the agent row and suppresses
//     replanning next tick; StatusSucceeded and StatusFailed clear it.
package planner
