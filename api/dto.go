/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/booking-engine/booking"
	"github.com/warp/booking-engine/earnings"
	"github.com/warp/booking-engine/stats"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ServiceDTO represents a service in API responses.
type ServiceDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// ServiceRequest creates or updates a service. Price is a decimal string.
type ServiceRequest struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// AppointmentDTO represents an appointment in API responses.
type AppointmentDTO struct {
	ID              string     `json:"id"`
	CustomerName    string     `json:"customer_name"`
	Service         ServiceDTO `json:"service"`
	DurationMinutes int        `json:"duration_minutes"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Completed       bool       `json:"completed"`
}

// AppointmentRequest creates or updates an appointment. StartTime is
// RFC 3339; ServiceID must reference an existing catalog entry.
type AppointmentRequest struct {
	CustomerName    string `json:"customer_name"`
	ServiceID       string `json:"service_id"`
	DurationMinutes int    `json:"duration_minutes"`
	StartTime       string `json:"start_time"`
}

// SummaryDTO is a windowed earnings aggregate.
type SummaryDTO struct {
	Window      string `json:"window"`
	TotalAmount string `json:"total_amount"`
	Count       int    `json:"count"`
}

// TrophiesDTO reports milestone progress.
type TrophiesDTO struct {
	TotalShaveCount int   `json:"total_shave_count"`
	Milestones      []int `json:"milestones"`
	EarnedIndexes   []int `json:"earned_indexes"`
}

// WeeklyStatsDTO is the weekly activity view. PerWeekday is indexed
// 0=Monday through 6=Sunday.
type WeeklyStatsDTO struct {
	PerWeekday [7]int         `json:"per_weekday"`
	PerService map[string]int `json:"per_service"`
}

// AdvanceDTO reports the result of a completion sweep.
type AdvanceDTO struct {
	Transitioned int `json:"transitioned"`
}

// ErrorResponse is the shape of all error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toServiceDTO(s booking.Service) ServiceDTO {
	return ServiceDTO{ID: s.ID, Title: s.Title, Price: s.Price.String()}
}

func toAppointmentDTO(a booking.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              a.ID,
		CustomerName:    a.CustomerName,
		Service:         toServiceDTO(a.Service),
		DurationMinutes: a.DurationMinutes,
		StartTime:       a.StartTime.Format(time.RFC3339),
		EndTime:         a.EndTime.Format(time.RFC3339),
		Completed:       a.Completed,
	}
}

func toSummaryDTO(w earnings.Window, s earnings.Summary) SummaryDTO {
	return SummaryDTO{Window: string(w), TotalAmount: s.TotalAmount.String(), Count: s.Count}
}

func toWeeklyStatsDTO(perWeekday stats.WeekdayCount, perService map[string]int) WeeklyStatsDTO {
	return WeeklyStatsDTO{PerWeekday: perWeekday, PerService: perService}
}
