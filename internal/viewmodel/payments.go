package viewmodel

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"ahorro/internal/core"
	"ahorro/internal/savings"
)

// PaymentState is the sealed state of the register-payment screen.
type PaymentState interface{ paymentState() }

type (
	PaymentIdle    struct{}
	PaymentLoading struct{}
	PaymentSuccess struct{}
	PaymentError   struct{ Message string }
)

func (PaymentIdle) paymentState()    {}
func (PaymentLoading) paymentState() {}
func (PaymentSuccess) paymentState() {}
func (PaymentError) paymentState()   {}

const (
	MsgAmountNotPos = "El monto debe ser mayor a 0"

	fallbackPaymentError = "Error registrando pago"
)

// PaymentsViewModel drives the register-payment screen.
type PaymentsViewModel struct {
	repo  savings.Repository
	state *State[PaymentState]
}

func NewPaymentsViewModel(repo savings.Repository) *PaymentsViewModel {
	return &PaymentsViewModel{
		repo:  repo,
		state: NewState[PaymentState](PaymentIdle{}),
	}
}

// State exposes the observable state cell.
func (vm *PaymentsViewModel) State() *State[PaymentState] { return vm.state }

// ResetState returns the machine to PaymentIdle.
func (vm *PaymentsViewModel) ResetState() {
	vm.state.Set(PaymentIdle{})
}

// RegisterPayment validates the amount locally (no remote call on
// failure) and submits the payment.
func (vm *PaymentsViewModel) RegisterPayment(ctx context.Context, memberID, planID string, amount decimal.Decimal) {
	vm.state.Set(PaymentLoading{})

	if amount.Sign() <= 0 {
		vm.state.Set(PaymentError{Message: MsgAmountNotPos})
		return
	}

	_, err := vm.repo.RegisterPayment(ctx, core.PaymentRequest{
		MemberID: memberID,
		PlanID:   planID,
		Amount:   amount,
	})
	if err != nil {
		slog.WarnContext(ctx, "Registering payment failed",
			"plan_id", planID, "member_id", memberID, "error", err)
		vm.state.Set(PaymentError{Message: errMessage(err, fallbackPaymentError)})
		return
	}
	vm.state.Set(PaymentSuccess{})
}
