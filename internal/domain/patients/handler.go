package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", registerPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))
		pr.Get("/choices", patientChoicesHandler(svc))
		pr.Get("/{patientID}", getPatientHandler(svc))
	})
}

type registerPatientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone" example:"9848000001"`
}

type patientResponse struct {
	PatientID int64  `json:"patient_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

type choiceResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// registerPatientHandler godoc
// @Summary Registrar paciente
// @Description name (máx. 50) y phone (máx. 15) son obligatorios.
// @Tags patients
// @Accept json
// @Produce json
// @Param payload body registerPatientRequest true "Datos del paciente"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "name and phone required"
// @Router /patients [post]
func registerPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Register(r.Context(), RegisterInput{Name: req.Name, Phone: req.Phone})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// listPatientsHandler godoc
// @Summary Listar pacientes
// @Description Últimos registrados primero.
// @Tags patients
// @Produce json
// @Success 200 {array} patientResponse
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPatientHandler godoc
// @Summary Obtener paciente
// @Tags patients
// @Produce json
// @Param patientID path int true "ID del paciente"
// @Success 200 {object} patientResponse
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "patientID"), 10, 64)
		if err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

// patientChoicesHandler godoc
// @Summary Opciones de paciente
// @Tags patients
// @Produce json
// @Success 200 {array} choiceResponse
// @Router /patients/choices [get]
func patientChoicesHandler(svc *Service) http.HandlerFunc {
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

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{PatientID: p.ID, Name: p.Name, Phone: p.Phone}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "patient not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
