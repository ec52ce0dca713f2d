package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"meumuseu/application/ports"
	"meumuseu/pkg/common"
	pkgerrors "meumuseu/pkg/errors"
)

// PlanHandler handles subscription tier reads and the simulated upgrade
type PlanHandler struct {
	plans      ports.PlanStore
	paymentURL func() string
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewPlanHandler creates a new plan handler. paymentURL is read per request
// so hot-reloaded configuration takes effect immediately.
func NewPlanHandler(plans ports.PlanStore, paymentURL func() string, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		plans:      plans,
		paymentURL: paymentURL,
		errors:     errorHandler,
		logger:     logger,
	}
}

// PlanResponse describes the caller's tier and its quotas
type PlanResponse struct {
	Plan   string     `json:"plan"`
	Limits PlanLimits `json:"limits"`
}

// PlanLimits mirrors the tier quotas; -1 means unlimited
type PlanLimits struct {
	MaxRooms           int `json:"maxRooms"`
	MaxMemoriesPerRoom int `json:"maxMemoriesPerRoom"`
}

// UpgradeResponse carries the external checkout link
type UpgradeResponse struct {
	Plan       string `json:"plan"`
	PaymentURL string `json:"paymentUrl"`
}

// Get handles GET /api/v1/plan
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	plan, err := h.plans.Current(r.Context(), userID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	limits := plan.Limits()
	common.RespondJSON(w, http.StatusOK, PlanResponse{
		Plan: plan.String(),
		Limits: PlanLimits{
			MaxRooms:           limits.MaxRooms,
			MaxMemoriesPerRoom: limits.MaxMemoriesPerRoom,
		},
	})
}

// Upgrade handles POST /api/v1/plan/upgrade. The flag flips immediately;
// the returned link points at the external checkout the client opens.
func (h *PlanHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.plans.UpgradeToPremium(r.Context(), userID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, UpgradeResponse{
		Plan:       "premium",
		PaymentURL: h.paymentURL(),
	})
}
