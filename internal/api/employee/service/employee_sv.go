package employeeService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/employee"
	employeeRepository "IntelliguardGolang/internal/api/employee/repository"
	"IntelliguardGolang/internal/entity"
	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/mailer"
)

func (s *employeeService) Create(c context.Context, req employee.CreateEmployeeRequest, actor entity.EmployeeLoginData, ipAddress string) (employee.EmployeeResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.employeeRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return employee.EmployeeResponse{}, err
	}

	hashed, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return employee.EmployeeResponse{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := entity.Employee{
		ID:           id,
		Username:     req.Username,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Department:   req.Department,
		Role:         req.Role,
		IsActive:     true,
	}

	if err := repo.Employees.Create(c, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.recordAudit(c, repo, actor.ID, "employee_created", "created employee "+req.Username, ipAddress)

	s.notifyAdmins(c, repo, emp)

	created, err := repo.Employees.GetByID(c, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return makeEmployeeResponse(created), nil
}

func (s *employeeService) GetByID(c context.Context, id string) (employee.EmployeeResponse, error) {
	repo, err := s.employeeRepo.NewClient(false)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := repo.Employees.GetByID(c, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return makeEmployeeResponse(emp), nil
}

func (s *employeeService) List(c context.Context, filter employee.ListEmployeesQuery) (employee.ListEmployeesResponse, error) {
	repo, err := s.employeeRepo.NewClient(false)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := repo.Employees.List(c, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	res := employee.ListEmployeesResponse{
		Employees: make([]employee.EmployeeResponse, 0, len(employees)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for _, emp := range employees {
		res.Employees = append(res.Employees, makeEmployeeResponse(emp))
	}

	return res, nil
}

func (s *employeeService) Update(c context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.employeeRepo.NewClient(false)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := repo.Employees.GetByID(c, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FirstName != "" {
		emp.FirstName = req.FirstName
	}
	if req.LastName != "" {
		emp.LastName = req.LastName
	}
	if req.Email != "" {
		emp.Email = req.Email
	}
	if req.Department != "" {
		emp.Department = req.Department
	}
	if req.Role != "" {
		emp.Role = req.Role
	}

	if err := repo.Employees.Update(c, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"employee_id": id,
	}).Info("Employee updated")

	return makeEmployeeResponse(emp), nil
}

func (s *employeeService) Deactivate(c context.Context, id string, actor entity.EmployeeLoginData, ipAddress string) error {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.employeeRepo.NewClient(false)
	if err != nil {
		return err
	}

	emp, err := repo.Employees.GetByID(c, id)
	if err != nil {
		return err
	}

	if err := repo.Employees.SetActive(c, emp.ID, false); err != nil {
		return err
	}

	s.recordAudit(c, repo, actor.ID, "employee_deactivated", "deactivated employee "+emp.Username, ipAddress)

	// Deactivated employees must stop matching on the face channel.
	if _, err := s.ReloadRegistry(c); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to reload face registry after deactivation")
	}

	return nil
}

func (s *employeeService) notifyAdmins(c context.Context, repo employeeRepository.Client, emp entity.Employee) {
	requestID := contextPkg.GetRequestID(c)

	recipients, err := repo.Employees.ListAdminsEmails(c)
	if err != nil || len(recipients) == 0 {
		return
	}

	notice := mailer.RegistrationNotice{
		Username:   emp.Username,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Email:      emp.Email,
		Department: emp.Department,
		Role:       emp.Role,
	}

	if err := s.mailer.SendRegistrationNotice(notice, recipients); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send registration notice")
	}
}

func (s *employeeService) recordAudit(c context.Context, repo employeeRepository.Client, actorID, action, details, ipAddress string) {
	requestID := contextPkg.GetRequestID(c)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return
	}

	if err := repo.AuditLogs.Create(c, entity.AuditLog{
		ID:         id,
		EmployeeID: actorID,
		Action:     action,
		Details:    details,
		IPAddress:  ipAddress,
	}); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to write audit log")
	}
}

func makeEmployeeResponse(emp entity.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		Username:     emp.Username,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		Email:        emp.Email,
		Department:   emp.Department,
		Role:         emp.Role,
		FaceEnrolled: emp.FaceEncoding != "",
		IsActive:     emp.IsActive,
		CreatedAt:    emp.CreatedAt,
		UpdatedAt:    emp.UpdatedAt,
	}
}
