// Package app assembles the record collections, their services and the
// resources the transports serve.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ganot/po-manager/internal/collection"
	"github.com/ganot/po-manager/internal/config"
	"github.com/ganot/po-manager/internal/domain/attendance"
	"github.com/ganot/po-manager/internal/domain/employee"
	"github.com/ganot/po-manager/internal/domain/employeechange"
	"github.com/ganot/po-manager/internal/domain/project"
	"github.com/ganot/po-manager/internal/domain/specialdate"
	"github.com/ganot/po-manager/internal/metrics"
	"github.com/ganot/po-manager/internal/resource"
	"github.com/ganot/po-manager/internal/sqlite"
)

// Collection names double as file names, SQLite buckets and URL prefixes.
const (
	KindProject        = "project"
	KindEmployee       = "employee"
	KindEmployeeChange = "employee_change"
	KindAttendance     = "attendance"
	KindSpecialDate    = "special_date"
)

// Services holds the record service of every kind.
type Services struct {
	Projects        *project.Service
	Employees       *employee.Service
	EmployeeChanges *employeechange.Service
	Attendance      *attendance.Service
	SpecialDates    *specialdate.Service
}

// App is a loaded set of collections.
type App struct {
	Services  Services
	Resources []resource.Resource
	db        *sqlite.DB
}

// New opens the configured backend and bootstraps every collection.
// recorder may be nil.
func New(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger, recorder *metrics.Recorder) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{}

	backend, err := a.backendFactory(cfg)
	if err != nil {
		return nil, err
	}
	opts := func(kind string) []collection.Option {
		o := []collection.Option{collection.WithLogger(logger)}
		if recorder != nil {
			o = append(o, collection.WithObserver(recorder.StoreObserver(kind)))
		}
		return o
	}

	projects, err := collection.Bootstrap[project.Project](ctx, backend(KindProject), opts(KindProject)...)
	if err != nil {
		return nil, a.fail(err)
	}
	employees, err := collection.Bootstrap[employee.Employee](ctx, backend(KindEmployee), opts(KindEmployee)...)
	if err != nil {
		return nil, a.fail(err)
	}
	changes, err := collection.Bootstrap[employeechange.EmployeeChange](ctx, backend(KindEmployeeChange), opts(KindEmployeeChange)...)
	if err != nil {
		return nil, a.fail(err)
	}
	attendances, err := collection.Bootstrap[attendance.Attendance](ctx, backend(KindAttendance), opts(KindAttendance)...)
	if err != nil {
		return nil, a.fail(err)
	}
	specialDates, err := collection.Bootstrap[specialdate.SpecialDate](ctx, backend(KindSpecialDate), opts(KindSpecialDate)...)
	if err != nil {
		return nil, a.fail(err)
	}

	projectSvc := project.NewService(projects, logger)
	employeeSvc := employee.NewService(employees, logger)
	a.Services = Services{
		Projects:        projectSvc,
		Employees:       employeeSvc,
		EmployeeChanges: employeechange.NewService(changes, employeeSvc, projectSvc, logger),
		Attendance:      attendance.NewService(attendances, logger),
		SpecialDates:    specialdate.NewService(specialDates, logger),
	}
	a.Resources = resources(a.Services)
	return a, nil
}

// Close releases the SQLite database when one is open.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) fail(err error) error {
	_ = a.Close()
	return err
}

func (a *App) backendFactory(cfg config.StoreConfig) (func(kind string) collection.Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureDir(cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("prepare sqlite path: %w", err)
		}
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db = db
		return func(kind string) collection.Backend {
			return sqlite.NewSnapshotBackend(db, kind)
		}, nil
	case config.DriverJSON, "":
		return func(kind string) collection.Backend {
			return collection.FileBackendIn(cfg.DataDir, kind)
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
