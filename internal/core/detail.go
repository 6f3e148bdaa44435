package core

import "github.com/shopspring/decimal"

// UnknownMemberName is shown for payments whose member id does not
// match any member in the loaded set.
const UnknownMemberName = "Desconocido"

// PlanDetail is the per-screen view of a plan: its members, payments,
// payments resolved to member names, and computed totals. It is
// rebuilt from scratch on every successful load and never persisted.
type PlanDetail struct {
	Plan               Plan
	Members            []Member
	Payments           []Payment
	PaymentsWithMember []PaymentWithMember
	TotalPaid          decimal.Decimal
	Progress           int
}

// BuildPlanDetail joins payments to members by member id and computes
// the plan's totals. Every payment and member returned by the service
// is included; a payment whose member is missing from the set resolves
// to UnknownMemberName rather than being dropped. Duplicate member ids
// are not expected but tolerated, last one wins.
func BuildPlanDetail(plan Plan, members []Member, payments []Payment) PlanDetail {
	byID := make(map[string]Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	withNames := make([]PaymentWithMember, 0, len(payments))
	totalPaid := decimal.Zero
	for _, p := range payments {
		name := UnknownMemberName
		if m, ok := byID[p.MemberID]; ok {
			name = m.Name
		}
		withNames = append(withNames, PaymentWithMember{Payment: p, MemberName: name})
		totalPaid = totalPaid.Add(p.Amount)
	}

	return PlanDetail{
		Plan:               plan,
		Members:            members,
		Payments:           payments,
		PaymentsWithMember: withNames,
		TotalPaid:          totalPaid,
		Progress:           CalculateProgress(plan.TargetAmount, totalPaid),
	}
}
