/*
handlers.go - HTTP API handlers for the booking engine

PURPOSE:
  Exposes the booking engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Appointments:
    GET    /api/appointments            List (optionally ?date=YYYY-MM-DD)
    POST   /api/appointments            Book (409 on conflict)
    PUT    /api/appointments/{id}       Edit (no conflict re-check)
    DELETE /api/appointments/{id}       Delete live booking only
    POST   /api/appointments/advance    Run the completion sweep

  Services:
    GET    /api/services                List catalog
    POST   /api/services                Create service
    PUT    /api/services/{id}           Edit title/price
    DELETE /api/services/{id}           Remove from catalog

  Earnings & stats:
    GET    /api/earnings/summary        ?window=day|week|month
    GET    /api/earnings/trophies       Milestone progress
    GET    /api/stats/weekly            Weekday + per-service buckets

  Admin:
    POST   /api/reset                   Clear ledger + archive (dev only)

COMPLETION PRECONDITION:
  Summary and stats handlers run the completion sweep before reading, so
  clients always see derived data that reflects every overdue booking.
  Clients may also trigger the sweep explicitly via /advance.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Scheduling conflict
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/booking-engine/booking"
	"github.com/warp/booking-engine/earnings"
	"github.com/warp/booking-engine/stats"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine       *booking.Engine
	Catalog      *booking.ServiceCatalog
	Transitioner *booking.Transitioner
	Ledger       *earnings.Ledger
	Trophies     *earnings.TrophyBoard
	Stats        *stats.Aggregator
	Archive      *stats.Archive
}

// NewHandler wires a handler over one storage backend. Every dependency is
// passed in explicitly; nothing is discovered ambiently.
func NewHandler(engine *booking.Engine, catalog *booking.ServiceCatalog, tr *booking.Transitioner,
	ledger *earnings.Ledger, archive *stats.Archive) *Handler {
	return &Handler{
		Engine:       engine,
		Catalog:      catalog,
		Transitioner: tr,
		Ledger:       ledger,
		Trophies:     earnings.NewTrophyBoard(ledger),
		Stats:        stats.NewAggregator(archive),
		Archive:      archive,
	}
}

// =============================================================================
// APPOINTMENT HANDLERS
// =============================================================================

// ListAppointments returns all appointments, or the sorted day view when
// ?date=YYYY-MM-DD is given.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	var appts []booking.Appointment
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date, want YYYY-MM-DD", err)
			return
		}
		appts = h.Engine.AppointmentsOn(date)
	} else {
		appts = h.Engine.Store.All()
	}

	dtos := make([]AppointmentDTO, len(appts))
	for i, a := range appts {
		dtos[i] = toAppointmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAppointment books a new appointment.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	req, svc, start, ok := h.decodeAppointmentRequest(w, r)
	if !ok {
		return
	}

	appt, err := h.Engine.Add(req.CustomerName, svc, req.DurationMinutes, start)
	if err != nil {
		if booking.IsConflict(err) {
			conflictsRejected.Inc()
			writeError(w, http.StatusConflict, "Slot not available", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to book appointment", err)
		return
	}

	appointmentsCreated.Inc()
	writeJSON(w, http.StatusCreated, toAppointmentDTO(appt))
}

// UpdateAppointment edits an existing appointment. Overlap created by an
// edit is accepted: conflict detection runs on add only.
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, found := h.Engine.Store.Get(id); !found {
		writeError(w, http.StatusNotFound, "Appointment not found", nil)
		return
	}

	req, svc, start, ok := h.decodeAppointmentRequest(w, r)
	if !ok {
		return
	}

	h.Engine.Update(id, req.CustomerName, svc, req.DurationMinutes, start)
	appt, _ := h.Engine.Store.Get(id)
	writeJSON(w, http.StatusOK, toAppointmentDTO(appt))
}

// DeleteAppointment removes the live booking. Ledger and archive records
// derived from it are kept.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.Engine.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// AdvanceCompletions runs the completion sweep.
func (h *Handler) AdvanceCompletions(w http.ResponseWriter, r *http.Request) {
	n := h.Transitioner.Advance()
	completionsRecorded.Add(float64(n))
	writeJSON(w, http.StatusOK, AdvanceDTO{Transitioned: n})
}

func (h *Handler) decodeAppointmentRequest(w http.ResponseWriter, r *http.Request) (AppointmentRequest, booking.Service, time.Time, bool) {
	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return req, booking.Service{}, time.Time{}, false
	}
	if req.CustomerName == "" || req.DurationMinutes <= 0 {
		writeError(w, http.StatusBadRequest, "customer_name and a positive duration_minutes are required", nil)
		return req, booking.Service{}, time.Time{}, false
	}

	svc, found := h.Catalog.Get(req.ServiceID)
	if !found {
		writeError(w, http.StatusBadRequest, "Unknown service_id", nil)
		return req, booking.Service{}, time.Time{}, false
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_time, want RFC 3339", err)
		return req, booking.Service{}, time.Time{}, false
	}
	return req, svc, start, true
}

// =============================================================================
// SERVICE HANDLERS
// =============================================================================

// ListServices returns the service catalog.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services := h.Catalog.List()
	dtos := make([]ServiceDTO, len(services))
	for i, s := range services {
		dtos[i] = toServiceDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateService adds a service to the catalog.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	req, price, ok := decodeServiceRequest(w, r)
	if !ok {
		return
	}
	svc := h.Catalog.Add(req.Title, price)
	writeJSON(w, http.StatusCreated, toServiceDTO(svc))
}

// UpdateService edits a service's title and price.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, found := h.Catalog.Get(id); !found {
		writeError(w, http.StatusNotFound, "Service not found", nil)
		return
	}

	req, price, ok := decodeServiceRequest(w, r)
	if !ok {
		return
	}
	h.Catalog.Update(id, req.Title, price)
	svc, _ := h.Catalog.Get(id)
	writeJSON(w, http.StatusOK, toServiceDTO(svc))
}

// DeleteService removes a service from the catalog. Existing appointments
// keep their value copy.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	h.Catalog.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func decodeServiceRequest(w http.ResponseWriter, r *http.Request) (ServiceRequest, decimal.Decimal, bool) {
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return req, decimal.Zero, false
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required", nil)
		return req, decimal.Zero, false
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must be a non-negative decimal string", err)
		return req, decimal.Zero, false
	}
	return req, price, true
}

// =============================================================================
// EARNINGS & STATS HANDLERS
// =============================================================================

// GetEarningsSummary returns the aggregate for ?window=day|week|month.
func (h *Handler) GetEarningsSummary(w http.ResponseWriter, r *http.Request) {
	window := earnings.Window(r.URL.Query().Get("window"))
	switch window {
	case earnings.WindowDay, earnings.WindowWeek, earnings.WindowMonth:
	case "":
		window = earnings.WindowDay
	default:
		writeError(w, http.StatusBadRequest, "window must be day, week or month", nil)
		return
	}

	n := h.Transitioner.Advance()
	completionsRecorded.Add(float64(n))
	writeJSON(w, http.StatusOK, toSummaryDTO(window, h.Ledger.Aggregate(window)))
}

// GetTrophies returns milestone progress.
func (h *Handler) GetTrophies(w http.ResponseWriter, r *http.Request) {
	n := h.Transitioner.Advance()
	completionsRecorded.Add(float64(n))
	writeJSON(w, http.StatusOK, TrophiesDTO{
		TotalShaveCount: h.Trophies.TotalShaveCount(),
		Milestones:      earnings.Milestones,
		EarnedIndexes:   h.Trophies.EarnedIndexes(),
	})
}

// GetWeeklyStats returns the current week's weekday and per-service
// buckets. The refresh is time-boxed; within the threshold the cached view
// is served.
func (h *Handler) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	n := h.Transitioner.Advance()
	completionsRecorded.Add(float64(n))

	h.Stats.Refresh()
	writeJSON(w, http.StatusOK, toWeeklyStatsDTO(h.Stats.CompletedPerWeekday(), h.Stats.CompletedPerService()))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// Reset wipes the ledger and the archive. Dev/test only.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Ledger.ClearAll()
	h.Archive.ClearAll()
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
