package doctors

import "context"

type Repository interface {
	Create(ctx context.Context, d Doctor) (int64, error)
	GetByID(ctx context.Context, id int64) (Doctor, error)
	// List ordena por doctor_id ascendente.
	List(ctx context.Context) ([]Doctor, error)
}
