// Package memory is an in-memory savings.Repository. It backs the
// development server and serves as the offline backend for the CLI
// and the view-model tests. State lives for the process only.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ahorro/internal/core"
	"ahorro/internal/savings"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

var (
	ErrPlanNotFound = errors.New("Plan no encontrado")
)

type Store struct {
	mu       sync.Mutex
	plans    []core.Plan
	members  []core.Member
	payments []core.Payment

	now func() time.Time
}

// Ensure interface conformance
var _ savings.Repository = (*Store)(nil)

func New() *Store {
	return &Store{now: time.Now}
}

// NewSeeded returns a store preloaded with a demo plan, members and
// payments so the CLI has something to show without a server.
func NewSeeded() *Store {
	s := New()
	ctx := context.Background()
	plan, _ := s.CreatePlan(ctx, core.CreatePlanRequest{
		Name:         "Vacaciones familiares",
		Motive:       "Viaje a la costa",
		TargetAmount: dec("3000"),
		Months:       6,
	})
	juan, _ := s.CreateMember(ctx, core.CreateMemberRequest{
		Name: "Juan", PlanID: plan.ID, ContributionPerMonth: dec("250"),
	})
	ana, _ := s.CreateMember(ctx, core.CreateMemberRequest{
		Name: "Ana", PlanID: plan.ID, ContributionPerMonth: dec("250"),
	})
	s.RegisterPayment(ctx, core.PaymentRequest{MemberID: juan.ID, PlanID: plan.ID, Amount: dec("250")})
	s.RegisterPayment(ctx, core.PaymentRequest{MemberID: ana.ID, PlanID: plan.ID, Amount: dec("250")})
	s.RegisterPayment(ctx, core.PaymentRequest{MemberID: juan.ID, PlanID: plan.ID, Amount: dec("250")})
	return s
}

func (s *Store) ListPlans(_ context.Context) ([]core.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Plan(nil), s.plans...), nil
}

func (s *Store) GetPlan(_ context.Context, id string) (core.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Plan{}, ErrPlanNotFound
}

func (s *Store) CreatePlan(_ context.Context, req core.CreatePlanRequest) (core.Plan, error) {
	if err := req.Validate(); err != nil {
		return core.Plan{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	plan := core.Plan{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Motive:       req.Motive,
		TargetAmount: req.TargetAmount,
		Months:       req.Months,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}
	s.plans = append(s.plans, plan)
	return plan, nil
}

func (s *Store) ListMembers(_ context.Context, planID string) ([]core.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Member
	for _, m := range s.members {
		if m.PlanID == planID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) CreateMember(_ context.Context, req core.CreateMemberRequest) (core.Member, error) {
	if err := req.Validate(); err != nil {
		return core.Member{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.planExistsLocked(req.PlanID) {
		return core.Member{}, ErrPlanNotFound
	}
	member := core.Member{
		ID:                   uuid.NewString(),
		PlanID:               req.PlanID,
		Name:                 req.Name,
		ContributionPerMonth: req.ContributionPerMonth,
		JoinedAt:             s.now().UTC().Format(time.RFC3339),
	}
	s.members = append(s.members, member)
	return member, nil
}

func (s *Store) ListPayments(_ context.Context, planID string) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Payment
	for _, p := range s.payments {
		if p.PlanID == planID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) RegisterPayment(_ context.Context, req core.PaymentRequest) (core.Payment, error) {
	if err := req.Validate(); err != nil {
		return core.Payment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.planExistsLocked(req.PlanID) {
		return core.Payment{}, ErrPlanNotFound
	}
	payment := core.Payment{
		ID:       uuid.NewString(),
		MemberID: req.MemberID,
		PlanID:   req.PlanID,
		Amount:   req.Amount,
		Date:     s.now().UTC().Format(time.RFC3339),
	}
	s.payments = append(s.payments, payment)
	return payment, nil
}

func (s *Store) planExistsLocked(id string) bool {
	for _, p := range s.plans {
		if p.ID == id {
			return true
		}
	}
	return false
}
