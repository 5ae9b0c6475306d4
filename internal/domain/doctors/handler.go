package doctors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/doctors", func(dr chi.Router) {
		dr.Post("/", createDoctorHandler(svc))
		dr.Get("/", listDoctorsHandler(svc))

		// Opciones para el formulario de turnos
		dr.Get("/choices", doctorChoicesHandler(svc))

		dr.Get("/{doctorID}", getDoctorHandler(svc))
	})
}

// createDoctorRequest es el cuerpo para dar de alta un médico.
type createDoctorRequest struct {
	FirstName  string  `json:"first_name"`
	Specialty  string  `json:"specialty" example:"Cardiology"`
	HourlyRate float64 `json:"hourly_rate"`
}

// doctorResponse representa una fila de la tabla doctors.
type doctorResponse struct {
	DoctorID   int64   `json:"doctor_id"`
	FirstName  string  `json:"first_name"`
	Specialty  string  `json:"specialty"`
	HourlyRate float64 `json:"hourly_rate"`
}

type choiceResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// createDoctorHandler godoc
// @Summary Alta de médico
// @Description Registra un médico. first_name y specialty son obligatorios (máx. 50 caracteres); hourly_rate >= 0.
// @Tags doctors
// @Accept json
// @Produce json
// @Param payload body createDoctorRequest true "Datos del médico"
// @Success 201 {object} doctorResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 500 {string} string "internal error"
// @Router /doctors [post]
func createDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			FirstName:  req.FirstName,
			Specialty:  req.Specialty,
			HourlyRate: req.HourlyRate,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDoctorResponse(d))
	}
}

// listDoctorsHandler godoc
// @Summary Listar médicos
// @Tags doctors
// @Produce json
// @Success 200 {array} doctorResponse
// @Failure 500 {string} string "internal error"
// @Router /doctors [get]
func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]doctorResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoctorResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getDoctorHandler godoc
// @Summary Obtener médico
// @Tags doctors
// @Produce json
// @Param doctorID path int true "ID del médico"
// @Success 200 {object} doctorResponse
// @Failure 404 {string} string "doctor not found"
// @Router /doctors/{doctorID} [get]
func getDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "doctorID"), 10, 64)
		if err != nil {
			http.Error(w, "doctor not found", http.StatusNotFound)
			return
		}

		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(d))
	}
}

// doctorChoicesHandler godoc
// @Summary Opciones de médico
// @Description Pares id/label para el formulario de turnos, con label "Dr. <nombre> - <especialidad>".
// @Tags doctors
// @Produce json
// @Success 200 {array} choiceResponse
// @Router /doctors/choices [get]
func doctorChoicesHandler(svc *Service) http.HandlerFunc {
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

func toDoctorResponse(d Doctor) doctorResponse {
	return doctorResponse{
		DoctorID:   d.ID,
		FirstName:  d.FirstName,
		Specialty:  d.Specialty,
		HourlyRate: d.HourlyRate,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "doctor not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en cada módulo, igual que en el resto de handlers.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
