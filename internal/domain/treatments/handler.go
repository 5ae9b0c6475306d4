package treatments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// dateLayout coincide con appointments.DateLayout.
const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/treatments", func(tr chi.Router) {
		tr.Post("/", recordTreatmentHandler(svc))
		tr.Get("/", listTreatmentsHandler(svc))
	})
}

type recordTreatmentRequest struct {
	AppointID   int64   `json:"appoint_id"`
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
}

type treatmentResponse struct {
	TreatmentID int64   `json:"treatment_id"`
	AppointID   int64   `json:"appoint_id"`
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
}

type treatmentViewResponse struct {
	TreatmentID int64   `json:"treatment_id"`
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
	AppointDate string  `json:"appoint_date"`
	Patient     string  `json:"patient"`
	Doctor      string  `json:"doctor"`
}

// recordTreatmentHandler godoc
// @Summary Registrar tratamiento
// @Description Registra un servicio realizado en un turno existente. service_name obligatorio (máx. 50), cost >= 0.
// @Tags treatments
// @Accept json
// @Produce json
// @Param payload body recordTreatmentRequest true "Datos del tratamiento"
// @Success 201 {object} treatmentResponse
// @Failure 400 {string} string "Service name is required / turno inexistente"
// @Router /treatments [post]
func recordTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordTreatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Record(r.Context(), RecordInput{
			AppointID:   req.AppointID,
			ServiceName: req.ServiceName,
			Cost:        req.Cost,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, treatmentResponse{
			TreatmentID: t.ID,
			AppointID:   t.AppointID,
			ServiceName: t.ServiceName,
			Cost:        t.Cost,
		})
	}
}

// listTreatmentsHandler godoc
// @Summary Listar tratamientos
// @Tags treatments
// @Produce json
// @Success 200 {array} treatmentViewResponse
// @Router /treatments [get]
func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]treatmentViewResponse, 0, len(items))
		for _, v := range items {
			out = append(out, treatmentViewResponse{
				TreatmentID: v.ID,
				ServiceName: v.ServiceName,
				Cost:        v.Cost,
				AppointDate: v.AppointDate.Format(dateLayout),
				Patient:     v.Patient,
				Doctor:      v.Doctor,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
