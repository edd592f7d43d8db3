package employeeService

import (
	"context"
	"errors"
	"image"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/employee"
	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/facematch"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *employeeService) EnrollFace(c context.Context, id string, frame image.Image) (employee.EnrollFaceResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.employeeRepo.NewClient(false)
	if err != nil {
		return employee.EnrollFaceResponse{}, err
	}

	emp, err := repo.Employees.GetByID(c, id)
	if err != nil {
		return employee.EnrollFaceResponse{}, err
	}

	if !emp.IsActive {
		return employee.EnrollFaceResponse{}, employee.ErrEmployeeInactive
	}

	encoding, err := s.matcher.Encode(frame)
	if err != nil {
		switch {
		case errors.Is(err, facematch.ErrNoFaceDetected):
			return employee.EnrollFaceResponse{}, employee.ErrNoFaceInImage
		case errors.Is(err, facematch.ErrMultipleFacesDetected):
			return employee.EnrollFaceResponse{}, employee.ErrMultipleFacesInImage
		default:
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Face encoding failed")
			return employee.EnrollFaceResponse{}, err
		}
	}

	raw, err := json.Marshal(encoding)
	if err != nil {
		return employee.EnrollFaceResponse{}, err
	}

	if err := repo.Employees.UpdateFaceEncoding(c, emp.ID, string(raw)); err != nil {
		return employee.EnrollFaceResponse{}, err
	}

	size, err := s.ReloadRegistry(c)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to reload face registry after enrollment")
		return employee.EnrollFaceResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"employee_id": emp.ID,
		"username":    emp.Username,
	}).Info("Face enrolled")

	return employee.EnrollFaceResponse{
		EmployeeID:     emp.ID,
		Username:       emp.Username,
		EncodingLength: len(encoding),
		RegistrySize:   size,
	}, nil
}

// ReloadRegistry rebuilds the in-memory face registry from active employees
// that have a stored encoding. The swap is atomic, recognition queries keep
// working while the reload runs.
func (s *employeeService) ReloadRegistry(c context.Context) (int, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.employeeRepo.NewClient(false)
	if err != nil {
		return 0, err
	}

	employees, err := repo.Employees.ListEnrolled(c)
	if err != nil {
		return 0, err
	}

	enrollments := make([]facematch.Enrollment, 0, len(employees))
	for _, emp := range employees {
		var encoding facematch.Encoding
		if err := json.Unmarshal([]byte(emp.FaceEncoding), &encoding); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"employee_id": emp.ID,
				"error":       err.Error(),
			}).Warn("Skipping employee with malformed face encoding")
			continue
		}
		enrollments = append(enrollments, facematch.Enrollment{
			IdentityKey: emp.Username,
			Encoding:    encoding,
		})
	}

	s.matcher.Registry().Reload(enrollments)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"size":       len(enrollments),
	}).Info("Face registry reloaded")

	return len(enrollments), nil
}
