package viewmodel

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"ahorro/internal/core"
	"ahorro/internal/savings"
)

// DetailState is the sealed state of the plan detail screen.
type DetailState interface{ detailState() }

type (
	DetailLoading struct{}

	// DetailSuccess carries the fully aggregated view of the plan.
	DetailSuccess struct{ Detail core.PlanDetail }

	DetailError struct{ Message string }
)

func (DetailLoading) detailState() {}
func (DetailSuccess) detailState() {}
func (DetailError) detailState()   {}

const fallbackDetailError = "Error cargando plan"

// PlanDetailViewModel drives the plan detail screen: one plan, its
// members and its payments, aggregated into a progress view.
type PlanDetailViewModel struct {
	repo  savings.Repository
	state *State[DetailState]
}

func NewPlanDetailViewModel(repo savings.Repository) *PlanDetailViewModel {
	return &PlanDetailViewModel{
		repo:  repo,
		state: NewState[DetailState](DetailLoading{}),
	}
}

// State exposes the observable state cell.
func (vm *PlanDetailViewModel) State() *State[DetailState] { return vm.state }

// LoadPlanDetails fetches the plan, its members and its payments with
// all three calls in flight at once, joins on them, and publishes the
// aggregated result. The plan fetch is authoritative: its failure is
// the screen's failure no matter what the other two returned. Member
// and payment failures are tolerated by aggregating over an empty
// list instead, so a degraded detail view still renders.
func (vm *PlanDetailViewModel) LoadPlanDetails(ctx context.Context, planID string) {
	vm.state.Set(DetailLoading{})

	var (
		plan     core.Plan
		planErr  error
		members  []core.Member
		payments []core.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		plan, planErr = vm.repo.GetPlan(gctx, planID)
		return nil
	})
	g.Go(func() error {
		ms, err := vm.repo.ListMembers(gctx, planID)
		if err != nil {
			slog.WarnContext(gctx, "Loading members failed, continuing without them",
				"plan_id", planID, "error", err)
			return nil
		}
		members = ms
		return nil
	})
	g.Go(func() error {
		ps, err := vm.repo.ListPayments(gctx, planID)
		if err != nil {
			slog.WarnContext(gctx, "Loading payments failed, continuing without them",
				"plan_id", planID, "error", err)
			return nil
		}
		payments = ps
		return nil
	})
	// Goroutines above never return errors; Wait is a pure join.
	_ = g.Wait()

	if planErr != nil {
		vm.state.Set(DetailError{Message: errMessage(planErr, fallbackDetailError)})
		return
	}
	vm.state.Set(DetailSuccess{Detail: core.BuildPlanDetail(plan, members, payments)})
}
