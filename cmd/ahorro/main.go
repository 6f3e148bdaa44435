// Command ahorro is a terminal client for the family savings service.
//
// Usage:
//
//	ahorro plans
//	ahorro plan <id>
//	ahorro create -name <name> -motive <motive> -target <amount> -months <n> -member nombre:cuota [-member ...]
//	ahorro pay -plan <id> -member <id> -amount <amount>
//
// Configuration comes from the environment (see internal/config):
// API_BASE_URL selects the service, DATA_BACKEND=memory runs against
// a seeded in-process store for trying the client offline.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"ahorro/internal/cli"
	"ahorro/internal/config"
	"ahorro/internal/savings"
	"ahorro/internal/savings/memory"
	"ahorro/internal/savings/rest"
	"ahorro/internal/viewmodel"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	repo := buildRepository(cfg)
	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	var exit int
	switch os.Args[1] {
	case "plans":
		exit = runPlans(ctx, repo)
	case "plan":
		exit = runPlanDetail(ctx, repo, os.Args[2:])
	case "create":
		exit = runCreate(ctx, repo, os.Args[2:])
	case "pay":
		exit = runPay(ctx, repo, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		exit = 2
	}
	os.Exit(exit)
}

func usage() {
	fmt.Fprintln(os.Stderr, `ahorro - cliente de planes de ahorro familiar

commands:
  plans                       list all savings plans
  plan <id>                   show one plan with members, payments and progress
  create [flags]              create a plan with its initial members
  pay [flags]                 register a payment

create flags:
  -name     plan name
  -motive   free-text motive
  -target   target amount (e.g. 3000 or 3000.50)
  -months   duration in months
  -member   nombre:cuota, repeatable (e.g. -member Juan:250 -member Ana:250)

pay flags:
  -plan     plan id
  -member   member id
  -amount   payment amount`)
}

func buildRepository(cfg *config.Config) savings.Repository {
	if cfg.DataBackend == "memory" {
		return memory.NewSeeded()
	}
	return rest.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})
}

func runPlans(ctx context.Context, repo savings.Repository) int {
	vm := viewmodel.NewPlanListViewModel(repo)
	ch, cancel := vm.State().Subscribe()
	defer cancel()

	go vm.LoadPlans(ctx)

	for {
		select {
		case <-ctx.Done():
			return 1
		case state := <-ch:
			switch s := state.(type) {
			case viewmodel.PlansLoading:
				fmt.Println(renderLoading("Cargando planes..."))
			case viewmodel.PlansEmpty:
				fmt.Println(renderEmpty("No hay planes todavía."))
				return 0
			case viewmodel.PlansSuccess:
				fmt.Println(renderPlanList(s.Plans))
				return 0
			case viewmodel.PlansError:
				fmt.Println(renderError(s.Message))
				return 1
			}
		}
	}
}

func runPlanDetail(ctx context.Context, repo savings.Repository, args []string) int {
	if len(args) < 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "usage: ahorro plan <id>")
		return 2
	}
	planID := args[0]

	vm := viewmodel.NewPlanDetailViewModel(repo)
	ch, cancel := vm.State().Subscribe()
	defer cancel()

	go vm.LoadPlanDetails(ctx, planID)

	for {
		select {
		case <-ctx.Done():
			return 1
		case state := <-ch:
			switch s := state.(type) {
			case viewmodel.DetailLoading:
				fmt.Println(renderLoading("Cargando plan..."))
			case viewmodel.DetailSuccess:
				fmt.Println(renderPlanDetail(s.Detail))
				return 0
			case viewmodel.DetailError:
				fmt.Println(renderError(s.Message))
				return 1
			}
		}
	}
}

// memberList collects repeated -member nombre:cuota flags.
type memberList []viewmodel.MemberInput

func (m *memberList) String() string { return fmt.Sprintf("%d members", len(*m)) }

func (m *memberList) Set(value string) error {
	name, quota, found := strings.Cut(value, ":")
	if !found || strings.TrimSpace(name) == "" {
		return fmt.Errorf("member must be nombre:cuota, got %q", value)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(quota))
	if err != nil {
		return fmt.Errorf("invalid cuota in %q: %w", value, err)
	}
	*m = append(*m, viewmodel.MemberInput{
		Name:                 strings.TrimSpace(name),
		ContributionPerMonth: amount,
	})
	return nil
}

func runCreate(ctx context.Context, repo savings.Repository, args []string) int {
	fs := newFlagSet("create")
	name := fs.String("name", "", "plan name")
	motive := fs.String("motive", "", "motive")
	target := fs.String("target", "0", "target amount")
	months := fs.Int("months", 0, "duration in months")
	var members memberList
	fs.Var(&members, "member", "nombre:cuota, repeatable")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	targetAmount, err := decimal.NewFromString(*target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -target %q\n", *target)
		return 2
	}

	vm := viewmodel.NewCreatePlanViewModel(repo)
	ch, cancel := vm.State().Subscribe()
	defer cancel()

	go vm.CreatePlan(ctx, *name, *motive, targetAmount, *months, members)

	for {
		select {
		case <-ctx.Done():
			return 1
		case state := <-ch:
			switch s := state.(type) {
			case viewmodel.CreateIdle:
				// Not reachable after the trigger; keep waiting.
			case viewmodel.CreateLoading:
				fmt.Println(renderLoading("Creando plan..."))
			case viewmodel.CreateSuccess:
				fmt.Println(renderSuccess("Plan creado."))
				return 0
			case viewmodel.CreateError:
				fmt.Println(renderError(s.Message))
				return 1
			}
		}
	}
}

func runPay(ctx context.Context, repo savings.Repository, args []string) int {
	fs := newFlagSet("pay")
	planID := fs.String("plan", "", "plan id")
	memberID := fs.String("member", "", "member id")
	amountStr := fs.String("amount", "0", "payment amount")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	amount, err := decimal.NewFromString(*amountStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -amount %q\n", *amountStr)
		return 2
	}

	vm := viewmodel.NewPaymentsViewModel(repo)
	ch, cancel := vm.State().Subscribe()
	defer cancel()

	go vm.RegisterPayment(ctx, *memberID, *planID, amount)

	for {
		select {
		case <-ctx.Done():
			return 1
		case state := <-ch:
			switch s := state.(type) {
			case viewmodel.PaymentIdle:
				// Not reachable after the trigger; keep waiting.
			case viewmodel.PaymentLoading:
				fmt.Println(renderLoading("Registrando pago..."))
			case viewmodel.PaymentSuccess:
				fmt.Println(renderSuccess("Pago registrado."))
				return 0
			case viewmodel.PaymentError:
				fmt.Println(renderError(s.Message))
				return 1
			}
		}
	}
}
