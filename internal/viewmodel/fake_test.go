package viewmodel

import (
	"context"
	"errors"
	"sync"

	"ahorro/internal/core"
)

// fakeRepo is a hand-written savings.Repository double. Tests assign
// the functions they expect to be hit; any unassigned operation fails
// loudly. Every invocation is recorded so tests can assert that no
// remote call happened at all.
type fakeRepo struct {
	mu    sync.Mutex
	calls []string

	listPlansFn       func(ctx context.Context) ([]core.Plan, error)
	getPlanFn         func(ctx context.Context, id string) (core.Plan, error)
	createPlanFn      func(ctx context.Context, req core.CreatePlanRequest) (core.Plan, error)
	listMembersFn     func(ctx context.Context, planID string) ([]core.Member, error)
	createMemberFn    func(ctx context.Context, req core.CreateMemberRequest) (core.Member, error)
	listPaymentsFn    func(ctx context.Context, planID string) ([]core.Payment, error)
	registerPaymentFn func(ctx context.Context, req core.PaymentRequest) (core.Payment, error)
}

var errUnexpectedCall = errors.New("unexpected repository call")

func (f *fakeRepo) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeRepo) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRepo) ListPlans(ctx context.Context) ([]core.Plan, error) {
	f.record("ListPlans")
	if f.listPlansFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listPlansFn(ctx)
}

func (f *fakeRepo) GetPlan(ctx context.Context, id string) (core.Plan, error) {
	f.record("GetPlan")
	if f.getPlanFn == nil {
		return core.Plan{}, errUnexpectedCall
	}
	return f.getPlanFn(ctx, id)
}

func (f *fakeRepo) CreatePlan(ctx context.Context, req core.CreatePlanRequest) (core.Plan, error) {
	f.record("CreatePlan")
	if f.createPlanFn == nil {
		return core.Plan{}, errUnexpectedCall
	}
	return f.createPlanFn(ctx, req)
}

func (f *fakeRepo) ListMembers(ctx context.Context, planID string) ([]core.Member, error) {
	f.record("ListMembers")
	if f.listMembersFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listMembersFn(ctx, planID)
}

func (f *fakeRepo) CreateMember(ctx context.Context, req core.CreateMemberRequest) (core.Member, error) {
	f.record("CreateMember")
	if f.createMemberFn == nil {
		return core.Member{}, errUnexpectedCall
	}
	return f.createMemberFn(ctx, req)
}

func (f *fakeRepo) ListPayments(ctx context.Context, planID string) ([]core.Payment, error) {
	f.record("ListPayments")
	if f.listPaymentsFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listPaymentsFn(ctx, planID)
}

func (f *fakeRepo) RegisterPayment(ctx context.Context, req core.PaymentRequest) (core.Payment, error) {
	f.record("RegisterPayment")
	if f.registerPaymentFn == nil {
		return core.Payment{}, errUnexpectedCall
	}
	return f.registerPaymentFn(ctx, req)
}
