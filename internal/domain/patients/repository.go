package patients

import "context"

type Repository interface {
	Create(ctx context.Context, p Patient) (int64, error)
	GetByID(ctx context.Context, id int64) (Patient, error)
	// List ordena por patient_id descendente (últimos registrados primero).
	List(ctx context.Context) ([]Patient, error)
}
