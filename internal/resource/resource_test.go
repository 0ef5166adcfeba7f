package resource_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/ganot/po-manager/internal/collection"
	"github.com/ganot/po-manager/internal/domain/employee"
	"github.com/ganot/po-manager/internal/repository/mocks"
	"github.com/ganot/po-manager/internal/resource"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func employees(repo employee.Repository) resource.Resource {
	return resource.New[employee.CreateRequest, employee.Patch, employee.Filter, employee.Employee, employee.View](
		employee.NewService(repo, nil),
		resource.Options[employee.Filter]{
			Kind:        "employee",
			ParseFilter: employee.ParseFilter,
			NotFound:    employee.ErrEmployeeNotFound,
			Invalid:     employee.ErrInvalidInput,
		},
	)
}

func newResource(t *testing.T) resource.Resource {
	t.Helper()
	store, err := collection.Bootstrap[employee.Employee](context.Background(), collection.FileBackendIn(t.TempDir(), "employee"))
	require.NoError(t, err)
	return employees(store)
}

func TestResource_CRUD(t *testing.T) {
	ctx := context.Background()
	res := newResource(t)
	require.Equal(t, "employee", res.Kind())

	out, err := res.Create(ctx, []byte(`{"name":"Alice","position":"Dev"}`))
	require.NoError(t, err)
	created := out.(*employee.Employee)
	require.Equal(t, employee.StatusWorking, created.Status)

	out, err = res.List(ctx, url.Values{"name": {"lic"}})
	require.NoError(t, err)
	views := out.([]employee.View)
	require.Len(t, views, 1)
	require.Equal(t, "on project", views[0].StatusMeaning)

	out, err = res.Update(ctx, created.ID, []byte(`{"status":"Leave"}`))
	require.NoError(t, err)
	require.Equal(t, employee.StatusLeave, out.(*employee.Employee).Status)
	require.Equal(t, "Alice", out.(*employee.Employee).Name)

	out, err = res.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, out.(*employee.Employee).ID)

	_, err = res.Delete(ctx, created.ID)
	require.NoError(t, err)

	out, err = res.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, out)

	out, err = res.List(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestResource_Classification(t *testing.T) {
	ctx := context.Background()
	res := newResource(t)

	cases := []struct {
		name string
		call func() error
		want resource.Class
	}{
		{"empty body", func() error { _, err := res.Create(ctx, nil); return err }, resource.ClassInput},
		{"bad json", func() error { _, err := res.Create(ctx, []byte(`{"name":`)); return err }, resource.ClassInput},
		{"wrong type", func() error { _, err := res.Create(ctx, []byte(`{"name":7}`)); return err }, resource.ClassInput},
		{"missing name", func() error { _, err := res.Create(ctx, []byte(`{}`)); return err }, resource.ClassInput},
		{"bad filter", func() error { _, err := res.List(ctx, url.Values{"status": {"Away"}}); return err }, resource.ClassInput},
		{"update unknown", func() error { _, err := res.Update(ctx, "nope", []byte(`{"name":"x"}`)); return err }, resource.ClassNotFound},
		{"delete unknown", func() error { _, err := res.Delete(ctx, "nope"); return err }, resource.ClassNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			require.Equal(t, tc.want, resource.ClassOf(err))
		})
	}

	_, err := res.Create(ctx, []byte(`{"name":`))
	require.ErrorIs(t, err, resource.ErrMalformed)
	_, err = res.Delete(ctx, "nope")
	require.EqualError(t, err, "employee not found")
}

func TestResource_InternalFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.Repository[employee.Employee]{}
	repo.On("Get", ctx, "e1").Return(nil, errors.New("disk on fire"))

	_, err := employees(repo).Get(ctx, "e1")
	require.Error(t, err)
	require.Equal(t, resource.ClassInternal, resource.ClassOf(err))
	require.Equal(t, resource.ClassInternal, resource.ClassOf(errors.New("plain")))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
