package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"ahorro/internal/core"
	"ahorro/internal/savings"
)

// PlansState is the sealed state of the plan list screen. Exactly one
// of PlansLoading, PlansSuccess, PlansEmpty or PlansError is current
// at any time; consumers switch exhaustively over the variants.
type PlansState interface{ plansState() }

type (
	// PlansLoading is the initial state and the state re-entered on
	// every load.
	PlansLoading struct{}

	// PlansSuccess carries a non-empty list of plans.
	PlansSuccess struct{ Plans []core.Plan }

	// PlansEmpty means the service returned zero plans.
	PlansEmpty struct{}

	// PlansError carries a displayable failure message.
	PlansError struct{ Message string }
)

func (PlansLoading) plansState() {}
func (PlansSuccess) plansState() {}
func (PlansEmpty) plansState()   {}
func (PlansError) plansState()   {}

const fallbackPlansError = "Error desconocido"

// PlanListViewModel drives the plan list screen.
type PlanListViewModel struct {
	repo  savings.Repository
	state *State[PlansState]
}

func NewPlanListViewModel(repo savings.Repository) *PlanListViewModel {
	return &PlanListViewModel{
		repo:  repo,
		state: NewState[PlansState](PlansLoading{}),
	}
}

// State exposes the observable state cell.
func (vm *PlanListViewModel) State() *State[PlansState] { return vm.state }

// LoadPlans fetches all plans and publishes the resulting state. It
// runs in the calling goroutine; run it with `go` so the UI keeps
// responding while the call is outstanding. Re-invocable at any time
// (retry, pull-to-refresh); each invocation restarts from
// PlansLoading and discards the prior state. A second invocation
// while one is in flight is allowed; whichever finishes last
// publishes the final state.
func (vm *PlanListViewModel) LoadPlans(ctx context.Context) {
	vm.state.Set(PlansLoading{})

	plans, err := vm.repo.ListPlans(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Loading plans failed", "error", err)
		vm.state.Set(PlansError{Message: errMessage(err, fallbackPlansError)})
		return
	}
	if len(plans) == 0 {
		vm.state.Set(PlansEmpty{})
		return
	}
	vm.state.Set(PlansSuccess{Plans: plans})
}

// errMessage returns the error's message, or fallback when there is
// nothing displayable.
func errMessage(err error, fallback string) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return fallback
	}
	return err.Error()
}
