package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ahorro/internal/core"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client()), srv
}

func TestListPlansSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/plans" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"plan1","name":"Viaje","motive":"vacaciones","targetAmount":1000,"months":6}]`))
	}))

	plans, err := client.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	if plans[0].ID != "plan1" || plans[0].Months != 6 {
		t.Errorf("unexpected plan decoded: %+v", plans[0])
	}
	if !plans[0].TargetAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("TargetAmount = %s, want 1000", plans[0].TargetAmount)
	}
}

func TestListPlansEmptyArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	plans, err := client.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("an empty list is not a failure: %v", err)
	}
	if len(plans) != 0 {
		t.Fatalf("got %d plans, want 0", len(plans))
	}
}

func TestListPlansStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListPlans(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); got != "Error: 500 - Internal Server Error" {
		t.Fatalf("message = %q", got)
	}
}

func TestListPlansStatusErrorWithReason(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "parámetro inválido"})
	}))

	_, err := client.ListPlans(context.Background())
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if got := err.Error(); got != "Error: 400 - parámetro inválido" {
		t.Fatalf("message = %q", got)
	}
}

func TestGetPlanNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetPlan(context.Background(), "missing")
	if err == nil || err.Error() != "Plan no encontrado" {
		t.Fatalf("err = %v, want Plan no encontrado", err)
	}
}

func TestGetPlanEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with no body at all
	}))

	_, err := client.GetPlan(context.Background(), "plan1")
	if err == nil || err.Error() != "Plan no encontrado" {
		t.Fatalf("err = %v, want Plan no encontrado", err)
	}
}

func TestCreatePlanSendsBodyAndDecodes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/plans" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req core.CreatePlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Name != "Viaje" || req.Months != 6 {
			t.Errorf("unexpected request payload: %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(core.Plan{
			ID:           "generated",
			Name:         req.Name,
			Motive:       req.Motive,
			TargetAmount: req.TargetAmount,
			Months:       req.Months,
			CreatedAt:    "2025-01-01T00:00:00Z",
		})
	}))

	plan, err := client.CreatePlan(context.Background(), core.CreatePlanRequest{
		Name:         "Viaje",
		Motive:       "vacaciones",
		TargetAmount: decimal.NewFromInt(1000),
		Months:       6,
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if plan.ID != "generated" || plan.CreatedAt == "" {
		t.Errorf("created plan missing server-assigned fields: %+v", plan)
	}
}

func TestCreatePlanStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := client.CreatePlan(context.Background(), core.CreatePlanRequest{Name: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "Error creando plan: 400 - Bad Request" {
		t.Fatalf("message = %q", got)
	}
}

func TestCreateMemberStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	_, err := client.CreateMember(context.Background(), core.CreateMemberRequest{Name: "Ana", PlanID: "p1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "Error creando miembro: 409 - Conflict" {
		t.Fatalf("message = %q", got)
	}
}

func TestListMembersStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListMembers(context.Background(), "plan1")
	if err == nil || err.Error() != "Error obteniendo miembros" {
		t.Fatalf("err = %v, want Error obteniendo miembros", err)
	}
}

func TestListPaymentsStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.ListPayments(context.Background(), "plan1")
	if err == nil || err.Error() != "No se encontraron pagos" {
		t.Fatalf("err = %v, want No se encontraron pagos", err)
	}
}

func TestRegisterPaymentStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	_, err := client.RegisterPayment(context.Background(), core.PaymentRequest{
		MemberID: "m1", PlanID: "p1", Amount: decimal.NewFromInt(10),
	})
	if err == nil || err.Error() != "Error registrando pago" {
		t.Fatalf("err = %v, want Error registrando pago", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(srv.URL, nil)
	srv.Close() // connection refused from here on

	_, err := client.ListPlans(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !strings.HasPrefix(err.Error(), "No se pudo conectar: ") {
		t.Fatalf("message = %q, want the connection failure prefix", err.Error())
	}
}

func TestMalformedBodyIsFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))

	if _, err := client.ListPlans(context.Background()); err == nil {
		t.Fatal("expected decode error for malformed list body")
	}
	if _, err := client.GetPlan(context.Background(), "p1"); err == nil {
		t.Fatal("expected decode error for malformed object body")
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL+"/", srv.Client())
	if _, err := client.ListPlans(context.Background()); err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if gotPath != "/api/plans" {
		t.Fatalf("path = %q, want /api/plans", gotPath)
	}
}
