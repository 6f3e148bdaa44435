// Package rest implements savings.Repository against the remote
// JSON-over-HTTP savings service.
//
// All transport failures, non-2xx statuses and empty success bodies
// are folded into plain error values here; nothing above this layer
// ever sees an HTTP response.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ahorro/internal/core"
	"ahorro/internal/savings"
)

// Client talks to the savings service. Construct it with New and
// inject it where a savings.Repository is needed.
type Client struct {
	base string
	http *http.Client
}

// Ensure interface conformance
var _ savings.Repository = (*Client)(nil)

// New creates a client for the service at baseURL. A nil httpClient
// falls back to a client with a 10 second timeout; the timeout is the
// only place a remote call can hang, so callers relying on a faster
// bound should pass their own client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

func (c *Client) ListPlans(ctx context.Context) ([]core.Plan, error) {
	resp, err := c.get(ctx, "/api/plans")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if !ok(resp) {
		return nil, fmt.Errorf("Error: %d - %s", resp.StatusCode, reason(resp))
	}
	plans, err := decodeList[core.Plan](resp.Body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("Error: %d - %s", resp.StatusCode, "respuesta vacía")
		}
		return nil, fmt.Errorf("decode plans: %w", err)
	}
	return plans, nil
}

func (c *Client) GetPlan(ctx context.Context, id string) (core.Plan, error) {
	resp, err := c.get(ctx, "/api/plans/"+url.PathEscape(id))
	if err != nil {
		return core.Plan{}, err
	}
	defer resp.Body.Close()
	if !ok(resp) {
		return core.Plan{}, errors.New("Plan no encontrado")
	}
	plan, err := decodeBody[core.Plan](resp.Body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.Plan{}, errors.New("Plan no encontrado")
		}
		return core.Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	return plan, nil
}

func (c *Client) CreatePlan(ctx context.Context, req core.CreatePlanRequest) (core.Plan, error) {
	resp, err := c.post(ctx, "/api/plans", req)
	if err != nil {
		return core.Plan{}, err
	}
	defer resp.Body.Close()
	if !ok(resp) {
		return core.Plan{}, fmt.Errorf("Error creando plan: %d - %s", resp.StatusCode, reason(resp))
	}
	plan, err := decodeBody[core.Plan](resp.Body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.Plan{}, fmt.Errorf("Error creando plan: %d - %s", resp.StatusCode, "respuesta vacía")
		}
		return core.Plan{}, fmt.Errorf("decode created plan: %w", err)
	}
	return plan, nil
}

func (c *Client) ListMembers(ctx context.Context, planID string) ([]core.Member, error) {
	resp, err := c.get(ctx, "/api/members/plan/"+url.PathEscape(planID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if !ok(resp) {
		return nil, errors.New("Error obteniendo miembros")
	}
	members, err := decodeList[core.Member](resp.Body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("Error obteniendo miembros")
		}
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return members, nil
}

func (c *Client) CreateMember(ctx context.Context, req core.CreateMemberRequest) (core.Member, error) {
	resp, err := c.post(ctx, "/api/members", req)
	if err != nil {
		return core.Member{}, err
	}
	defer resp.Body.Close()
	if !ok(resp) {
		return core.Member{}, fmt.Errorf("Error creando miembro: %d - %s", resp.StatusCode, reason(resp))
	}
	member, err := decodeBody[core.Member](resp.Body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.Member{}, fmt.Errorf("Error creando miembro: %d - %s", resp.StatusCode, "respuesta vacía")
		}
		return core.Member{}, fmt.Errorf("decode created member: %w", err)
	}
	return member, nil
}

func (c *Client) ListPayments(ctx context.Context, planID string) ([]core.Payment, error) {
	resp, err := c.get(ctx, "/api/payments/plan/"+url.PathEscape(planID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if !ok(resp) {
		return nil, errors.New("No se encontraron pagos")
	}
	payments, err := decodeList[core.Payment](resp.Body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("No se encontraron pagos")
		}
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (c *Client) RegisterPayment(ctx context.Context, req core.PaymentRequest) (core.Payment, error) {
	resp, err := c.post(ctx, "/api/payments", req)
	if err != nil {
		return core.Payment{}, err
	}
	defer resp.Body.Close()
	if !ok(resp) {
		return core.Payment{}, errors.New("Error registrando pago")
	}
	payment, err := decodeBody[core.Payment](resp.Body)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.Payment{}, errors.New("Error registrando pago")
		}
		return core.Payment{}, fmt.Errorf("decode created payment: %w", err)
	}
	return payment, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("No se pudo conectar: %w", err)
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("No se pudo conectar: %w", err)
	}
	return resp, nil
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// reason extracts a human-readable cause from an error response. The
// service is not contractually required to send one; when the body is
// not the optional {"error": "..."} shape the HTTP status text is used.
func reason(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

// decodeBody decodes a single JSON object. io.EOF is returned
// unwrapped when the body is empty so callers can map it to their
// operation's fixed message.
func decodeBody[T any](r io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// decodeList decodes a JSON array. An absent body surfaces as io.EOF
// so callers can fail with their operation's message; a present but
// empty array is a legitimate empty result.
func decodeList[T any](r io.Reader) ([]T, error) {
	var vs []T
	if err := json.NewDecoder(r).Decode(&vs); err != nil {
		return nil, err
	}
	return vs, nil
}
