package out

import (
	"context"
	"time"

	"fitterm/internal/modules/progress/domain"
)

// Store is the server-side progress resource.
type Store interface {
	Week(ctx context.Context, from, to time.Time) ([]domain.Entry, error)
	SaveDay(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	ToggleCompletion(ctx context.Context, dayKey string, kind domain.ItemKind, index int) (domain.Entry, error)
}
