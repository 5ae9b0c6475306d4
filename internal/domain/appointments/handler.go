package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", bookAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))

		// Opciones para registrar tratamientos
		ar.Get("/choices", appointmentChoicesHandler(svc))

		ar.Patch("/{appointID}/status", updateStatusHandler(svc))
	})
}

// bookAppointmentRequest es el cuerpo para reservar un turno.
type bookAppointmentRequest struct {
	PatientID   int64  `json:"patient_id"`
	DoctorID    int64  `json:"doctor_id"`
	AppointDate string `json:"appoint_date" example:"2025-03-14"` // YYYY-MM-DD
	Status      Status `json:"status" enums:"Scheduled,Completed,Cancelled"` // opcional
}

type updateStatusRequest struct {
	Status Status `json:"status" enums:"Scheduled,Completed,Cancelled"`
}

// appointmentResponse es el turno tal como queda guardado.
type appointmentResponse struct {
	AppointID   int64  `json:"appoint_id"`
	PatientID   int64  `json:"patient_id"`
	DoctorID    int64  `json:"doctor_id"`
	AppointDate string `json:"appoint_date"`
	Status      Status `json:"status"`
}

// appointmentViewResponse es la fila del listado con nombres resueltos.
type appointmentViewResponse struct {
	AppointID   int64  `json:"appoint_id"`
	Patient     string `json:"patient"`
	Doctor      string `json:"doctor"`
	Specialty   string `json:"specialty"`
	AppointDate string `json:"appoint_date"`
	Status      Status `json:"status"`
}

type choiceResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// bookAppointmentHandler godoc
// @Summary Reservar turno
// @Description Reserva un turno para un paciente con un médico. Ambos deben existir. status por defecto: Scheduled.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body bookAppointmentRequest true "Datos del turno; appoint_date en formato YYYY-MM-DD"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / appoint_date inválido / paciente o médico inexistente"
// @Failure 500 {string} string "internal error"
// @Router /appointments [post]
func bookAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse(DateLayout, strings.TrimSpace(req.AppointDate))
		if err != nil {
			http.Error(w, "appoint_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Book(r.Context(), BookInput{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			Date:      d,
			Status:    string(req.Status),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar turnos
// @Description Turnos con nombre de paciente, médico y especialidad, más recientes primero.
// @Tags appointments
// @Produce json
// @Param status query string false "Scheduled | Completed | Cancelled"
// @Param doctor_id query int false "Filtra por médico"
// @Param patient_id query int false "Filtra por paciente"
// @Param from query string false "Fecha mínima (YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD)"
// @Param limit query int false "Máximo de filas (mayor a 0, se recorta a 500). Por defecto 100"
// @Success 200 {array} appointmentViewResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 500 {string} string "internal error"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]appointmentViewResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toViewResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// appointmentChoicesHandler godoc
// @Summary Opciones de turno
// @Description Pares id/label para el formulario de tratamientos.
// @Tags appointments
// @Produce json
// @Success 200 {array} choiceResponse
// @Router /appointments/choices [get]
func appointmentChoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Choices(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]choiceResponse, 0, len(items))
		for _, c := range items {
			out = append(out, choiceResponse{ID: c.ID, Label: c.Label})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado de un turno
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointID path int true "ID del turno"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "status inválido"
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "appointID"), 10, 64)
		if err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateStatus(r.Context(), id, string(req.Status))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	// Valores por encima de MaxLimit los recorta el servicio.
	filter := ListFilter{Limit: DefaultLimit}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return ListFilter{}, errors.New("limit must be a positive integer")
		}
		filter.Limit = n
	}

	if v := strings.TrimSpace(q.Get("status")); v != "" {
		st, ok := ParseStatus(v)
		if !ok {
			return ListFilter{}, errors.New("status must be Scheduled, Completed or Cancelled")
		}
		filter.Status = st
	}

	if v := strings.TrimSpace(q.Get("doctor_id")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return ListFilter{}, errors.New("doctor_id must be a positive integer")
		}
		filter.DoctorID = n
	}
	if v := strings.TrimSpace(q.Get("patient_id")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return ListFilter{}, errors.New("patient_id must be a positive integer")
		}
		filter.PatientID = n
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be YYYY-MM-DD")
		}
		filter.To = &t
	}

	return filter, nil
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		AppointID:   a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		AppointDate: a.Date.Format(DateLayout),
		Status:      a.Status,
	}
}

func toViewResponse(v View) appointmentViewResponse {
	return appointmentViewResponse{
		AppointID:   v.ID,
		Patient:     v.Patient,
		Doctor:      v.Doctor,
		Specialty:   v.Specialty,
		AppointDate: v.Date.Format(DateLayout),
		Status:      v.Status,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
