// Package server exposes the savings REST contract over an in-memory
// store. It exists so the client can be developed and demoed without
// the real backend; nothing here survives a restart.
package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"ahorro/internal/core"
	"ahorro/internal/savings/memory"
)

type Handler struct {
	store *memory.Store
}

// New wires the savings routes onto a fresh echo instance.
func New(store *memory.Store) *echo.Echo {
	h := &Handler{store: store}
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.GET("/plans", h.ListPlans)
	api.GET("/plans/:id", h.GetPlan)
	api.POST("/plans", h.CreatePlan)
	api.GET("/members/plan/:planId", h.ListMembers)
	api.POST("/members", h.CreateMember)
	api.GET("/payments/plan/:planId", h.ListPayments)
	api.POST("/payments", h.RegisterPayment)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPlans(c echo.Context) error {
	plans, err := h.store.ListPlans(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if plans == nil {
		plans = []core.Plan{}
	}
	return c.JSON(http.StatusOK, plans)
}

func (h *Handler) GetPlan(c echo.Context) error {
	plan, err := h.store.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, memory.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) CreatePlan(c echo.Context) error {
	var req core.CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	plan, err := h.store.CreatePlan(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, plan)
}

func (h *Handler) ListMembers(c echo.Context) error {
	members, err := h.store.ListMembers(c.Request().Context(), c.Param("planId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if members == nil {
		members = []core.Member{}
	}
	return c.JSON(http.StatusOK, members)
}

func (h *Handler) CreateMember(c echo.Context) error {
	var req core.CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	member, err := h.store.CreateMember(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, memory.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plan not found"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *Handler) ListPayments(c echo.Context) error {
	payments, err := h.store.ListPayments(c.Request().Context(), c.Param("planId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if payments == nil {
		payments = []core.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *Handler) RegisterPayment(c echo.Context) error {
	var req core.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	payment, err := h.store.RegisterPayment(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, memory.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plan not found"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, payment)
}
