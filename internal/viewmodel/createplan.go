package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"ahorro/internal/core"
	"ahorro/internal/savings"
)

// CreatePlanState is the sealed state of the create-plan screen.
type CreatePlanState interface{ createPlanState() }

type (
	CreateIdle    struct{}
	CreateLoading struct{}
	CreateSuccess struct{}
	CreateError   struct{ Message string }
)

func (CreateIdle) createPlanState()    {}
func (CreateLoading) createPlanState() {}
func (CreateSuccess) createPlanState() {}
func (CreateError) createPlanState()   {}

// Fixed validation and failure messages shown to the user.
const (
	MsgNameEmpty      = "El nombre no puede estar vacío"
	MsgTargetNotPos   = "La meta debe ser mayor a 0"
	MsgMonthsNotPos   = "Los meses deben ser mayor a 0"
	MsgNoMembers      = "Debe agregar al menos un miembro"
	MsgMembersPartial = "Error creando algunos miembros"

	fallbackCreatePlanError = "Error creando el plan"
)

// MemberInput is the user-supplied data for one initial member of a
// plan being created.
type MemberInput struct {
	Name                 string
	ContributionPerMonth decimal.Decimal
}

// CreatePlanViewModel drives the create-plan screen: validate the
// form, create the plan, then create its initial members.
type CreatePlanViewModel struct {
	repo  savings.Repository
	state *State[CreatePlanState]
}

func NewCreatePlanViewModel(repo savings.Repository) *CreatePlanViewModel {
	return &CreatePlanViewModel{
		repo:  repo,
		state: NewState[CreatePlanState](CreateIdle{}),
	}
}

// State exposes the observable state cell.
func (vm *CreatePlanViewModel) State() *State[CreatePlanState] { return vm.state }

// ResetState returns the machine to CreateIdle so the form can be
// reused after a terminal state.
func (vm *CreatePlanViewModel) ResetState() {
	vm.state.Set(CreateIdle{})
}

// CreatePlan validates the inputs in order, short-circuiting on the
// first failure without touching the network, then creates the plan
// and each supplied member in sequence. Member creation attempts all
// inputs even after one fails; any member failure surfaces as
// MsgMembersPartial. The plan and any members already created stay
// persisted server-side, there is no rollback.
func (vm *CreatePlanViewModel) CreatePlan(
	ctx context.Context,
	name, motive string,
	targetAmount decimal.Decimal,
	months int,
	members []MemberInput,
) {
	vm.state.Set(CreateLoading{})

	if strings.TrimSpace(name) == "" {
		vm.state.Set(CreateError{Message: MsgNameEmpty})
		return
	}
	if targetAmount.Sign() <= 0 {
		vm.state.Set(CreateError{Message: MsgTargetNotPos})
		return
	}
	if months <= 0 {
		vm.state.Set(CreateError{Message: MsgMonthsNotPos})
		return
	}
	if len(members) == 0 {
		vm.state.Set(CreateError{Message: MsgNoMembers})
		return
	}

	plan, err := vm.repo.CreatePlan(ctx, core.CreatePlanRequest{
		Name:         name,
		Motive:       motive,
		TargetAmount: targetAmount,
		Months:       months,
	})
	if err != nil {
		slog.WarnContext(ctx, "Creating plan failed", "error", err)
		vm.state.Set(CreateError{Message: errMessage(err, fallbackCreatePlanError)})
		return
	}

	allCreated := true
	for _, input := range members {
		_, err := vm.repo.CreateMember(ctx, core.CreateMemberRequest{
			Name:                 input.Name,
			PlanID:               plan.ID,
			ContributionPerMonth: input.ContributionPerMonth,
		})
		if err != nil {
			slog.WarnContext(ctx, "Creating member failed",
				"plan_id", plan.ID, "member", input.Name, "error", err)
			allCreated = false
		}
	}

	if !allCreated {
		vm.state.Set(CreateError{Message: MsgMembersPartial})
		return
	}
	vm.state.Set(CreateSuccess{})
}
