package project_test

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/collection"
	"github.com/ganot/po-manager/internal/domain/project"
	"github.com/ganot/po-manager/internal/repository"
	"github.com/ganot/po-manager/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *project.Service {
	t.Helper()
	store, err := collection.Bootstrap[project.Project](context.Background(), collection.FileBackendIn(t.TempDir(), "project"))
	require.NoError(t, err)
	return project.NewService(store, nil)
}

func portal() project.CreateRequest {
	return project.CreateRequest{
		Name:             "Customer Portal",
		Code:             "PRJ-001",
		ReleaseDate:      caldate.New(2025, time.March, 3),
		PlanDeliveryDate: caldate.New(2025, time.June, 30),
		TechDays:         40,
		TestDays:         10,
		Price:            120000,
		PM:               "Zhang Wei",
	}
}

func billing() project.CreateRequest {
	return project.CreateRequest{
		Name:             "Billing Engine",
		Code:             "PRJ-002",
		ReleaseDate:      caldate.New(2024, time.November, 12),
		PlanDeliveryDate: caldate.New(2025, time.February, 1),
		TechDays:         30,
		TestDays:         20,
		Price:            98000.5,
		PM:               "Li Na",
	}
}

func ptr[T any](v T) *T { return &v }

func TestProjectService_CreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		proj, err := svc.Create(ctx, portal())
		require.NoError(t, err)
		require.NotEmpty(t, proj.ID)
		require.False(t, seen[proj.ID], "duplicate id %s", proj.ID)
		seen[proj.ID] = true
	}
}

func TestProjectService_CreatePrepends(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, err := svc.Create(ctx, portal())
	require.NoError(t, err)
	second, err := svc.Create(ctx, billing())
	require.NoError(t, err)

	all, err := svc.List(ctx, project.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, second.ID, all[0].ID)
	require.Equal(t, first.ID, all[1].ID)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository[project.Project]{}
	svc := project.NewService(repo, nil)

	cases := map[string]func(*project.CreateRequest){
		"name":       func(r *project.CreateRequest) { r.Name = " " },
		"code":       func(r *project.CreateRequest) { r.Code = "" },
		"pm":         func(r *project.CreateRequest) { r.PM = "" },
		"release":    func(r *project.CreateRequest) { r.ReleaseDate = caldate.Date{} },
		"delivery":   func(r *project.CreateRequest) { r.PlanDeliveryDate = caldate.Date{} },
		"negative":   func(r *project.CreateRequest) { r.TestDays = -1 },
		"free price": func(r *project.CreateRequest) { r.Price = -5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := portal()
			mutate(&req)
			_, err := svc.Create(ctx, req)
			require.ErrorIs(t, err, project.ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a, err := svc.Create(ctx, portal())
	require.NoError(t, err)
	b, err := svc.Create(ctx, billing())
	require.NoError(t, err)

	cases := []struct {
		name   string
		filter project.Filter
		want   []string
	}{
		{"empty", project.Filter{}, []string{b.ID, a.ID}},
		{"id", project.Filter{ID: &a.ID}, []string{a.ID}},
		{"name substring", project.Filter{NameOrCode: ptr("Portal")}, []string{a.ID}},
		{"code substring", project.Filter{NameOrCode: ptr("-002")}, []string{b.ID}},
		{"shared code prefix", project.Filter{NameOrCode: ptr("PRJ")}, []string{b.ID, a.ID}},
		{"case sensitive", project.Filter{NameOrCode: ptr("portal")}, []string{}},
		{"pm", project.Filter{PM: ptr("Wei")}, []string{a.ID}},
		{"release year", project.Filter{ReleaseDateFuzzy: ptr("2024")}, []string{b.ID}},
		{"delivery month", project.Filter{PlanDeliveryDateFuzzy: ptr("2025-06")}, []string{a.ID}},
		{"price", project.Filter{Price: ptr(98000.5)}, []string{b.ID}},
		{"total days", project.Filter{Days: ptr(50)}, []string{b.ID, a.ID}},
		{"total days miss", project.Filter{Days: ptr(40)}, []string{}},
		{"combined", project.Filter{Days: ptr(50), PM: ptr("Li")}, []string{b.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(ctx, tc.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			require.Equal(t, tc.want, ids)
		})
	}
}

func TestProjectService_UpdateIsMinimal(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, portal())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, project.Patch{
		TestDays:         ptr(15),
		PlanDeliveryDate: ptr(caldate.New(2025, time.July, 15)),
	})
	require.NoError(t, err)

	want := *created
	want.TestDays = 15
	want.PlanDeliveryDate = caldate.New(2025, time.July, 15)
	require.Equal(t, want, *updated)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, want, *got)
}

func TestProjectService_UpdateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, portal())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, project.Patch{Name: ptr("")})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Update(ctx, created.ID, project.Patch{TechDays: ptr(-3)})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, *created, *got)
}

func TestProjectService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Update(ctx, "missing", project.Patch{Name: ptr("x")})
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Delete(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a, err := svc.Create(ctx, portal())
	require.NoError(t, err)
	b, err := svc.Create(ctx, billing())
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, *a, *removed)

	all, err := svc.List(ctx, project.Filter{})
	require.NoError(t, err)
	require.Equal(t, []project.Project{*b}, all)
}

func TestProjectService_Names(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a, err := svc.Create(ctx, portal())
	require.NoError(t, err)

	names, err := svc.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{a.ID: "Customer Portal"}, names)
}

func TestProjectService_WrapsRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	diskErr := errors.New("disk full")

	repo := &mocks.Repository[project.Project]{}
	repo.On("Create", ctx, mock.Anything).Return(diskErr)
	repo.On("Get", ctx, "p1").Return(nil, repository.ErrNotFound)
	repo.On("Delete", ctx, "p2").Return(nil, diskErr)

	svc := project.NewService(repo, nil)

	_, err := svc.Create(ctx, portal())
	require.ErrorIs(t, err, diskErr)
	require.ErrorContains(t, err, "creating project")

	_, err = svc.Get(ctx, "p1")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Delete(ctx, "p2")
	require.ErrorIs(t, err, diskErr)
	require.NotErrorIs(t, err, project.ErrProjectNotFound)
	repo.AssertExpectations(t)
}

func TestParseFilter(t *testing.T) {
	f, err := project.ParseFilter(url.Values{
		"name_or_code":       {"PRJ"},
		"release_date_fuzzy": {"2025"},
		"price":              {"100.5"},
		"days":               {"30"},
		"employee":           {"ignored"},
	})
	require.NoError(t, err)
	require.Equal(t, "PRJ", *f.NameOrCode)
	require.Equal(t, "2025", *f.ReleaseDateFuzzy)
	require.Equal(t, 100.5, *f.Price)
	require.Equal(t, 30, *f.Days)
	require.Nil(t, f.ID)
	require.Nil(t, f.PM)

	_, err = project.ParseFilter(url.Values{"days": {"many"}})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectStore_RejectsSnapshotWithoutDates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	snapshot := `[{"id":"a","name":"x","code":"c","tech_days":1,"test_days":1,"price":1,"pm":"p"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.json"), []byte(snapshot), 0o644))

	_, err := collection.Bootstrap[project.Project](ctx, collection.FileBackendIn(dir, "project"))
	require.ErrorIs(t, err, repository.ErrInvalidRecord)
	require.ErrorContains(t, err, "release_date is missing")
}

func TestProjectStore_PersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := collection.Bootstrap[project.Project](ctx, collection.FileBackendIn(dir, "project"))
	require.NoError(t, err)
	svc := project.NewService(store, nil)

	created, err := svc.Create(ctx, portal())
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.ID, project.Patch{Price: ptr(1.5)})
	require.NoError(t, err)

	reloaded, err := collection.Bootstrap[project.Project](ctx, collection.FileBackendIn(dir, "project"))
	require.NoError(t, err)
	got, err := project.NewService(reloaded, nil).Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1.5, got.Price)
	require.Equal(t, created.ReleaseDate, got.ReleaseDate)
}
