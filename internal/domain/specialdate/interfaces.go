package specialdate

import "context"

// Repository provides persistence for special dates.
type Repository interface {
	Create(ctx context.Context, sd *SpecialDate) error
	List(ctx context.Context, match func(SpecialDate) bool) ([]SpecialDate, error)
	Get(ctx context.Context, id string) (*SpecialDate, error)
	Update(ctx context.Context, id string, apply func(*SpecialDate) error) (*SpecialDate, error)
	Delete(ctx context.Context, id string) (*SpecialDate, error)
}
