package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) (int64, error)
	// ListViews ordena por treatment_id descendente.
	ListViews(ctx context.Context) ([]View, error)
}
