// Package planner coordinates daily-plan generation, local editing
// and persistence. The AI gateway does the scheduling; the planner
// owns the state machine around it.
package planner

import (
	"context"
	"errors"
	"sync"

	"taskpilot/backend/types"
)

type State string

const (
	StateEmpty      State = "empty"
	StateGenerating State = "generating"
	StateReady      State = "ready"
	StateEditing    State = "editing"
)

var (
	ErrGenerating = errors.New("a plan generation is already in flight")
	ErrEditing    = errors.New("plan edits in progress, save or cancel first")
	ErrNoPlan     = errors.New("no plan to edit")
	ErrNotEditing = errors.New("not in edit mode")
	ErrBadIndex   = errors.New("block index out of range")
)

// Gateway is the slice of the AI client the planner needs. The model
// choice is bound by whoever constructs the gateway, so the planner
// never imports the AI package.
type Gateway interface {
	GenerateDailyPlan(ctx context.Context, tasks []types.Task, prefs types.PlanPreferences) types.DailyPlan
}

// Sink receives the authoritative plan whenever it changes.
type Sink interface {
	SetDailyPlan(plan types.DailyPlan)
}

type Planner struct {
	mu      sync.Mutex
	state   State
	plan    types.DailyPlan
	scratch []types.TimeBlock
	gateway Gateway
	sink    Sink
}

func New(gw Gateway, sink Sink) *Planner {
	return &Planner{state: StateEmpty, gateway: gw, sink: sink}
}

func (p *Planner) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Plan returns the authoritative plan. While editing, the scratch
// copy is returned so the caller sees the in-progress order.
func (p *Planner) Plan() types.DailyPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateEditing {
		plan := p.plan
		plan.TimeBlocks = append([]types.TimeBlock(nil), p.scratch...)
		return plan
	}
	return p.plan
}

// Generate replaces any existing plan wholesale. A second Generate
// while one is in flight is rejected instead of racing it, and an
// edit session must be saved or cancelled first so scratch changes
// are never silently discarded.
func (p *Planner) Generate(ctx context.Context, tasks []types.Task, prefs types.PlanPreferences) (types.DailyPlan, error) {
	p.mu.Lock()
	if p.state == StateGenerating {
		p.mu.Unlock()
		return types.DailyPlan{}, ErrGenerating
	}
	if p.state == StateEditing {
		p.mu.Unlock()
		return types.DailyPlan{}, ErrEditing
	}
	p.state = StateGenerating
	p.scratch = nil
	p.mu.Unlock()

	// The gateway degrades internally; this call cannot fail.
	plan := p.gateway.GenerateDailyPlan(ctx, tasks, prefs)

	p.mu.Lock()
	p.plan = plan
	p.state = StateReady
	p.mu.Unlock()

	if p.sink != nil {
		p.sink.SetDailyPlan(plan)
	}
	return plan, nil
}

// BeginEdit clones the plan's blocks into a scratch list. Reordering
// touches only the scratch list until Save commits it.
func (p *Planner) BeginEdit() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case StateReady:
	case StateEditing:
		return nil
	default:
		return ErrNoPlan
	}
	p.scratch = append([]types.TimeBlock(nil), p.plan.TimeBlocks...)
	p.state = StateEditing
	return nil
}

// MoveBlock removes the block at from and reinserts it at to. All
// other blocks keep their relative order.
func (p *Planner) MoveBlock(from, to int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateEditing {
		return ErrNotEditing
	}
	if from < 0 || from >= len(p.scratch) || to < 0 || to >= len(p.scratch) {
		return ErrBadIndex
	}
	if from == to {
		return nil
	}
	block := p.scratch[from]
	p.scratch = append(p.scratch[:from], p.scratch[from+1:]...)
	p.scratch = append(p.scratch[:to], append([]types.TimeBlock{block}, p.scratch[to:]...)...)
	return nil
}

// Save commits the scratch order as the authoritative plan.
func (p *Planner) Save() error {
	p.mu.Lock()
	if p.state != StateEditing {
		p.mu.Unlock()
		return ErrNotEditing
	}
	p.plan.TimeBlocks = p.scratch
	p.scratch = nil
	p.state = StateReady
	plan := p.plan
	p.mu.Unlock()

	if p.sink != nil {
		p.sink.SetDailyPlan(plan)
	}
	return nil
}

// Cancel discards the scratch list and reverts to the last-saved plan.
func (p *Planner) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateEditing {
		return ErrNotEditing
	}
	p.scratch = nil
	p.state = StateReady
	return nil
}
