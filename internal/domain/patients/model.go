package patients

// Patient es un paciente registrado en la clínica.
type Patient struct {
	ID    int64  `json:"patient_id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Choice struct {
	ID    int64
	Label string
}
