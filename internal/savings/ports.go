// Package savings defines the data-access port for the savings
// service: one operation per remote capability. Implementations live
// in savings/rest (the real service) and savings/memory (dev/test).
package savings

import (
	"context"

	"ahorro/internal/core"
)

// Repository is the uniform data-access boundary consumed by the
// view-models. Every operation resolves to a value or a non-nil error
// carrying a displayable message; implementations never panic past
// this boundary and never return a nil value together with a nil
// error.
type Repository interface {
	// ListPlans returns all savings plans.
	ListPlans(ctx context.Context) ([]core.Plan, error)

	// GetPlan returns a single plan by id.
	GetPlan(ctx context.Context, id string) (core.Plan, error)

	// CreatePlan creates a plan; the service assigns id and createdAt.
	CreatePlan(ctx context.Context, req core.CreatePlanRequest) (core.Plan, error)

	// ListMembers returns the members of a plan.
	ListMembers(ctx context.Context, planID string) ([]core.Member, error)

	// CreateMember adds a member to an existing plan.
	CreateMember(ctx context.Context, req core.CreateMemberRequest) (core.Member, error)

	// ListPayments returns the payments recorded against a plan.
	ListPayments(ctx context.Context, planID string) ([]core.Payment, error)

	// RegisterPayment records a payment by a member toward a plan.
	RegisterPayment(ctx context.Context, req core.PaymentRequest) (core.Payment, error)
}
