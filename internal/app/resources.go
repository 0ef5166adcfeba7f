package app

import (
	"github.com/ganot/po-manager/internal/domain/attendance"
	"github.com/ganot/po-manager/internal/domain/employee"
	"github.com/ganot/po-manager/internal/domain/employeechange"
	"github.com/ganot/po-manager/internal/domain/project"
	"github.com/ganot/po-manager/internal/domain/specialdate"
	"github.com/ganot/po-manager/internal/resource"
)

func resources(s Services) []resource.Resource {
	return []resource.Resource{
		resource.New[project.CreateRequest, project.Patch, project.Filter, project.Project, project.Project](
			s.Projects, resource.Options[project.Filter]{
				Kind:        KindProject,
				ParseFilter: project.ParseFilter,
				NotFound:    project.ErrProjectNotFound,
				Invalid:     project.ErrInvalidInput,
			}),
		resource.New[employee.CreateRequest, employee.Patch, employee.Filter, employee.Employee, employee.View](
			s.Employees, resource.Options[employee.Filter]{
				Kind:        KindEmployee,
				ParseFilter: employee.ParseFilter,
				NotFound:    employee.ErrEmployeeNotFound,
				Invalid:     employee.ErrInvalidInput,
			}),
		resource.New[employeechange.CreateRequest, employeechange.Patch, employeechange.Filter, employeechange.EmployeeChange, employeechange.View](
			s.EmployeeChanges, resource.Options[employeechange.Filter]{
				Kind:        KindEmployeeChange,
				ParseFilter: employeechange.ParseFilter,
				NotFound:    employeechange.ErrEmployeeChangeNotFound,
				Invalid:     employeechange.ErrInvalidInput,
			}),
		resource.New[attendance.CreateRequest, attendance.Patch, attendance.Filter, attendance.Attendance, attendance.Attendance](
			s.Attendance, resource.Options[attendance.Filter]{
				Kind:        KindAttendance,
				ParseFilter: attendance.ParseFilter,
				NotFound:    attendance.ErrAttendanceNotFound,
				Invalid:     attendance.ErrInvalidInput,
			}),
		resource.New[specialdate.CreateRequest, specialdate.Patch, specialdate.Filter, specialdate.SpecialDate, specialdate.SpecialDate](
			s.SpecialDates, resource.Options[specialdate.Filter]{
				Kind:        KindSpecialDate,
				ParseFilter: specialdate.ParseFilter,
				NotFound:    specialdate.ErrSpecialDateNotFound,
				Invalid:     specialdate.ErrInvalidInput,
			}),
	}
}
