package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"dock-allocation-service/internal/api/dto"
	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/ports"
	"dock-allocation-service/internal/services"

	"github.com/rs/zerolog"
)

// AllocationRunner runs one allocation over an ordered company list.
type AllocationRunner interface {
	Run(ctx context.Context, req services.RunAllocationRequest) (*domain.Report, error)
}

type AllocationHandler struct {
	Runner  AllocationRunner
	Reports ports.ReportRepository
	// Network, companies and bounds used when a request omits them.
	Defaults services.RunAllocationRequest
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxCompanies     = 1000
)

// Collection serves /allocations: POST runs, GET lists.
func (h *AllocationHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Run(w, r)
	case http.MethodGet:
		h.List(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Run starts an allocation run and returns its report.
func (h *AllocationHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var body dto.AllocationRequest
	if r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		defer r.Body.Close()
		dec.DisallowUnknownFields()

		if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}
	}

	req, msg := h.buildRequest(body)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	report, err := h.Runner.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProblem) || errors.Is(err, domain.ErrInvalidBounds) || errors.Is(err, domain.ErrInvalidWindow) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("allocation run failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewReportResponse(report))
}

func (h *AllocationHandler) buildRequest(body dto.AllocationRequest) (services.RunAllocationRequest, string) {
	req := h.Defaults

	if len(body.Companies) > 0 {
		if len(body.Companies) > maxCompanies {
			return req, "too many companies"
		}
		req.Companies = make([]domain.Company, 0, len(body.Companies))
		for i, c := range body.Companies {
			id := strings.TrimSpace(c.ID)
			if id == "" {
				return req, "company #" + strconv.Itoa(i+1) + ": id is required"
			}
			req.Companies = append(req.Companies, domain.Company{ID: id, Depot: c.Depot})
		}
	}
	if len(req.Companies) == 0 {
		return req, "companies are required"
	}

	if body.Opening != nil {
		req.Bounds.Opening = *body.Opening
	}
	if body.Closing != nil {
		req.Bounds.Closing = *body.Closing
	}
	if body.UnloadBuffer != nil {
		req.Bounds.UnloadBuffer = *body.UnloadBuffer
	}
	if body.MaxVehicles != nil {
		if *body.MaxVehicles < 1 || *body.MaxVehicles > services.DefaultMaxVehicles {
			return req, "max_vehicles must be between 1 and " + strconv.Itoa(services.DefaultMaxVehicles)
		}
		req.MaxVehicles = *body.MaxVehicles
	}
	if body.PoolOrder != "" {
		order, err := services.ParsePoolOrder(body.PoolOrder)
		if err != nil {
			return req, err.Error()
		}
		req.PoolOrder = order
	}
	return req, ""
}

// List returns the most recent reports, newest first.
func (h *AllocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	reports, err := h.Reports.ListReports(r.Context(), limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list reports failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListReportsResponse{Reports: make([]dto.ReportListItem, 0, len(reports))}
	for _, rep := range reports {
		res.Reports = append(res.Reports, dto.ReportListItem{
			RunID:     rep.RunID,
			CreatedAt: rep.CreatedAt,
			Summary:   dto.NewSummaryResponse(rep.Summary),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one stored report by run id.
func (h *AllocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	runID := strings.TrimSpace(r.PathValue("run_id"))
	if runID == "" {
		writeError(w, r, http.StatusBadRequest, "run id is required")
		return
	}

	report, err := h.Reports.GetReport(r.Context(), runID)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("run_id", runID).Msg("get report failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewReportResponse(report))
}
