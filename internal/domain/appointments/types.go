package appointments

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Statuses en el orden en que se ofrecen en el formulario.
var Statuses = []Status{StatusScheduled, StatusCompleted, StatusCancelled}

// ParseStatus acepta cualquier capitalización y devuelve la forma canónica.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// DateLayout es el formato de appoint_date en la base (columna texto).
const DateLayout = "2006-01-02"

// truncateDay descarta la hora: un turno es por día.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
