// Package core holds the savings domain: plans, members, payments and
// the derived progress/detail views built from them.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote service speaks JSON numbers for amounts, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type (
	// Plan is a savings goal. ID and CreatedAt are assigned by the
	// remote service and are empty until the plan has been created.
	Plan struct {
		ID           string          `json:"_id"`
		Name         string          `json:"name"`
		Motive       string          `json:"motive"`
		TargetAmount decimal.Decimal `json:"targetAmount"`
		Months       int             `json:"months"`
		CreatedAt    string          `json:"createdAt,omitempty"`
	}

	// Member is a participant contributing toward a plan.
	Member struct {
		ID                   string          `json:"_id"`
		PlanID               string          `json:"planId"`
		Name                 string          `json:"name"`
		ContributionPerMonth decimal.Decimal `json:"contributionPerMonth"`
		JoinedAt             string          `json:"createdAt,omitempty"`
	}

	// Payment is a recorded contribution by a member toward a plan.
	// PlanID is denormalized so payments can be queried per plan.
	Payment struct {
		ID       string          `json:"_id"`
		MemberID string          `json:"memberId"`
		PlanID   string          `json:"planId"`
		Amount   decimal.Decimal `json:"amount"`
		Date     string          `json:"date"`
	}

	// PaymentWithMember pairs a payment with the display name of the
	// member who made it. Never persisted; built per load.
	PaymentWithMember struct {
		Payment    Payment
		MemberName string
	}

	// CreatePlanRequest is the payload for creating a plan.
	CreatePlanRequest struct {
		Name         string          `json:"name"`
		Motive       string          `json:"motive"`
		TargetAmount decimal.Decimal `json:"targetAmount"`
		Months       int             `json:"months"`
	}

	// CreateMemberRequest is the payload for adding a member to a plan.
	CreateMemberRequest struct {
		Name                 string          `json:"name"`
		PlanID               string          `json:"planId"`
		ContributionPerMonth decimal.Decimal `json:"contributionPerMonth"`
	}

	// PaymentRequest is the payload for registering a payment.
	PaymentRequest struct {
		MemberID string          `json:"memberId"`
		PlanID   string          `json:"planId"`
		Amount   decimal.Decimal `json:"amount"`
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidTarget = errors.New("target amount must be greater than zero")
	ErrInvalidMonths = errors.New("months must be greater than zero")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrEmptyPlanID   = errors.New("empty plan id")
	ErrEmptyMemberID = errors.New("empty member id")
)

func (r CreatePlanRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.TargetAmount.Sign() <= 0 {
		return ErrInvalidTarget
	}
	if r.Months <= 0 {
		return ErrInvalidMonths
	}
	return nil
}

func (r CreateMemberRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.PlanID == "" {
		return ErrEmptyPlanID
	}
	if r.ContributionPerMonth.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r PaymentRequest) Validate() error {
	if r.MemberID == "" {
		return ErrEmptyMemberID
	}
	if r.PlanID == "" {
		return ErrEmptyPlanID
	}
	if r.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
