package attendance

import "context"

// Repository provides persistence for attendance records.
type Repository interface {
	Create(ctx context.Context, att *Attendance) error
	List(ctx context.Context, match func(Attendance) bool) ([]Attendance, error)
	Get(ctx context.Context, id string) (*Attendance, error)
	Update(ctx context.Context, id string, apply func(*Attendance) error) (*Attendance, error)
	Delete(ctx context.Context, id string) (*Attendance, error)
}
