package specialdate_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/collection"
	"github.com/ganot/po-manager/internal/domain/specialdate"
	"github.com/ganot/po-manager/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *specialdate.Service {
	t.Helper()
	store, err := collection.Bootstrap[specialdate.SpecialDate](context.Background(), collection.FileBackendIn(t.TempDir(), "special_date"))
	require.NoError(t, err)
	return specialdate.NewService(store, nil)
}

func ptr[T any](v T) *T { return &v }

func TestSpecialDateService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	newYear, err := svc.Create(ctx, specialdate.CreateRequest{
		StartTime: caldate.New(2025, time.January, 1),
		DateType:  specialdate.DateTypeInclude,
	})
	require.NoError(t, err)
	require.Nil(t, newYear.EndTime)

	makeup, err := svc.Create(ctx, specialdate.CreateRequest{
		StartTime: caldate.New(2025, time.January, 26),
		EndTime:   ptr(caldate.New(2025, time.January, 26)),
		DateType:  specialdate.DateTypeExclude,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, specialdate.Filter{})
	require.NoError(t, err)
	require.Equal(t, []specialdate.SpecialDate{*makeup, *newYear}, all)

	included, err := svc.List(ctx, specialdate.Filter{DateType: ptr(specialdate.DateTypeInclude)})
	require.NoError(t, err)
	require.Equal(t, []specialdate.SpecialDate{*newYear}, included)

	byEnd, err := svc.List(ctx, specialdate.Filter{EndTime: ptr(caldate.New(2025, time.January, 26))})
	require.NoError(t, err)
	require.Equal(t, []specialdate.SpecialDate{*makeup}, byEnd)

	updated, err := svc.Update(ctx, newYear.ID, specialdate.Patch{EndTime: ptr(caldate.New(2025, time.January, 3))})
	require.NoError(t, err)
	require.Equal(t, caldate.New(2025, time.January, 1), updated.StartTime)
	require.Equal(t, caldate.New(2025, time.January, 3), *updated.EndTime)

	_, err = svc.Delete(ctx, makeup.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, makeup.ID)
	require.ErrorIs(t, err, specialdate.ErrSpecialDateNotFound)
}

func TestSpecialDateService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, specialdate.CreateRequest{DateType: specialdate.DateTypeInclude})
	require.ErrorIs(t, err, specialdate.ErrInvalidInput)

	_, err = svc.Create(ctx, specialdate.CreateRequest{StartTime: caldate.New(2025, time.May, 1), DateType: "Holiday"})
	require.ErrorIs(t, err, specialdate.ErrInvalidInput)

	_, err = svc.Create(ctx, specialdate.CreateRequest{
		StartTime: caldate.New(2025, time.May, 5),
		EndTime:   ptr(caldate.New(2025, time.May, 1)),
		DateType:  specialdate.DateTypeInclude,
	})
	require.ErrorIs(t, err, specialdate.ErrInvalidInput)

	sd, err := svc.Create(ctx, specialdate.CreateRequest{
		StartTime: caldate.New(2025, time.May, 1),
		EndTime:   ptr(caldate.New(2025, time.May, 5)),
		DateType:  specialdate.DateTypeInclude,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, sd.ID, specialdate.Patch{StartTime: ptr(caldate.New(2025, time.May, 6))})
	require.ErrorIs(t, err, specialdate.ErrInvalidInput)
}

func TestSpecialDateService_PersistFailureIsWrapped(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository[specialdate.SpecialDate]{}
	repo.On("Update", ctx, "sd1", mock.Anything).Return(nil, errors.New("read-only file system"))

	_, err := specialdate.NewService(repo, nil).Update(ctx, "sd1", specialdate.Patch{DateType: ptr(specialdate.DateTypeExclude)})
	require.ErrorContains(t, err, "updating special date: read-only file system")
	require.NotErrorIs(t, err, specialdate.ErrInvalidInput)
	repo.AssertExpectations(t)
}

func TestParseFilter(t *testing.T) {
	f, err := specialdate.ParseFilter(url.Values{"date_type": {"Exclude"}, "end_time": {"2025-01-26"}})
	require.NoError(t, err)
	require.Equal(t, specialdate.DateTypeExclude, *f.DateType)
	require.Equal(t, caldate.New(2025, time.January, 26), *f.EndTime)
	require.Nil(t, f.StartTime)

	_, err = specialdate.ParseFilter(url.Values{"date_type": {"Maybe"}})
	require.ErrorIs(t, err, specialdate.ErrInvalidInput)
}

func TestSpecialDate_Validate(t *testing.T) {
	ok := specialdate.SpecialDate{ID: "d1", StartTime: caldate.New(2025, time.October, 1), DateType: specialdate.DateTypeExclude}
	require.NoError(t, ok.Validate())

	missing := ok
	missing.StartTime = caldate.Date{}
	require.ErrorContains(t, missing.Validate(), "start_time is missing")

	unknown := ok
	unknown.DateType = "Holiday"
	require.ErrorContains(t, unknown.Validate(), `unknown date_type "Holiday"`)
}
