package treatments

import "time"

// Treatment es un servicio realizado durante un turno.
type Treatment struct {
	ID          int64   `json:"treatment_id"`
	AppointID   int64   `json:"appoint_id"`
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
}

// View es la fila del listado con fecha, paciente y médico del turno.
type View struct {
	ID          int64
	AppointID   int64
	ServiceName string
	Cost        float64
	AppointDate time.Time
	Patient     string
	Doctor      string
}
