package plans

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/NIRMITI18/health-care-agent/internal/agents"
	"github.com/NIRMITI18/health-care-agent/internal/api/middleware"
	"github.com/NIRMITI18/health-care-agent/internal/domain/profile"
	"github.com/NIRMITI18/health-care-agent/pkg/errors"
	"github.com/NIRMITI18/health-care-agent/pkg/logger"
)

// maxBodyBytes caps the profile payload.
const maxBodyBytes = 64 << 10

// Planner computes plans for a profile. Implemented by *agents.Orchestrator.
type Planner interface {
	ComputeMealPlan(ctx context.Context, p profile.HealthProfile) (string, error)
	ComputeFitnessPlan(ctx context.Context, p profile.HealthProfile) (string, error)
	ComputeFullPlan(ctx context.Context, p profile.HealthProfile) (*agents.CompositePlan, error)
}

// Handler serves the plan generation endpoints
type Handler struct {
	planner Planner
	log     *logger.Logger
}

// NewHandler creates a plans handler
func NewHandler(planner Planner) *Handler {
	return &Handler{
		planner: planner,
		log:     logger.Get().With("component", "plans_handler"),
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
	Role   string `json:"role,omitempty"`
	Stage  string `json:"stage,omitempty"`
}

// HandleMealPlan handles POST /meal-plan
func (h *Handler) HandleMealPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	plan, err := h.planner.ComputeMealPlan(r.Context(), p)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"meal_plan": plan})
}

// HandleFitnessPlan handles POST /fitness-plan
func (h *Handler) HandleFitnessPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	plan, err := h.planner.ComputeFitnessPlan(r.Context(), p)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"fitness_plan": plan})
}

// HandleFullPlan handles POST /full-health-plan
func (h *Handler) HandleFullPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	plan, err := h.planner.ComputeFullPlan(r.Context(), p)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"full_health_plan": plan.Content})
}

// decodeProfile reads, defaults and validates the request body.
// On failure the response is already written.
func (h *Handler) decodeProfile(w http.ResponseWriter, r *http.Request) (profile.HealthProfile, bool) {
	var p profile.HealthProfile

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "method not allowed"})
		return p, false
	}

	var req healthRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Detail: "must be " + typeErr.Type.String() + ", got " + typeErr.Value,
				Field:  typeErr.Field,
			})
			return p, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: fmt.Sprintf("invalid request body: %v", err)})
		return p, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body: unexpected data after JSON object"})
		return p, false
	}

	p, err := req.toProfile()
	if err != nil {
		writeValidationError(w, err)
		return p, false
	}

	p.ApplyDefaults()

	if err := p.Validate(); err != nil {
		writeValidationError(w, err)
		return p, false
	}

	return p, true
}

func writeValidationError(w http.ResponseWriter, err error) {
	resp := errorResponse{Detail: err.Error()}
	var verr *errors.ValidationError
	if errors.As(err, &verr) {
		resp.Detail = verr.Message
		resp.Field = verr.Field
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Detail: err.Error()}

	var failure *agents.GenerationFailure
	if errors.As(err, &failure) {
		resp.Role = failure.Role.String()
		resp.Stage = string(failure.Stage)
	}

	h.log.Warnw("Plan generation failed",
		"path", r.URL.Path,
		"request_id", middleware.RequestID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
