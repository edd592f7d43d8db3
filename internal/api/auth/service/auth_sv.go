package authService

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/api/auth"
	authRepository "IntelliguardGolang/internal/api/auth/repository"
	"IntelliguardGolang/internal/entity"
	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/facematch"
	jwtPkg "IntelliguardGolang/pkg/jwt"
)

const (
	accessTokenTTL  = time.Hour * 1
	refreshTokenTTL = time.Hour * 24 * 7
)

func (s *authService) Login(c context.Context, req auth.LoginRequest, ipAddress string) (auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.TokenResponse{}, err
	}

	employee, err := repo.Employees.GetByUsername(c, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrEmployeeNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"username":   req.Username,
			}).Warn("Login attempt for unknown username")
			return auth.TokenResponse{}, auth.ErrInvalidUsernameOrPassword
		}
		return auth.TokenResponse{}, err
	}

	if !employee.IsActive {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   req.Username,
		}).Warn("Login attempt for deactivated employee")
		return auth.TokenResponse{}, auth.ErrEmployeeInactive
	}

	if err := s.bcryptUtils.ComparePassword(employee.PasswordHash, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   req.Username,
		}).Warn("Password comparison failed")
		return auth.TokenResponse{}, auth.ErrInvalidUsernameOrPassword
	}

	res, err := s.issueTokens(c, employee)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	s.recordAudit(c, repo, employee.ID, "login", "password login", ipAddress)

	return res, nil
}

func (s *authService) Refresh(c context.Context, req auth.RefreshRequest) (auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	stored, err := s.redisServer.GetSession(c, req.EmployeeID)
	if err != nil || stored != req.RefreshToken {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"employee_id": req.EmployeeID,
		}).Warn("Refresh token mismatch")
		return auth.TokenResponse{}, auth.ErrInvalidRefreshToken
	}

	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	employee, err := repo.Employees.GetByID(c, req.EmployeeID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if !employee.IsActive {
		return auth.TokenResponse{}, auth.ErrEmployeeInactive
	}

	return s.issueTokens(c, employee)
}

func (s *authService) Logout(c context.Context, employeeID string) error {
	requestID := contextPkg.GetRequestID(c)

	if err := s.redisServer.DeleteSession(c, employeeID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"employee_id": employeeID,
			"error":       err.Error(),
		}).Error("Failed to delete session")
		return err
	}

	return nil
}

func (s *authService) FaceLogin(c context.Context, frame image.Image, ipAddress string) (auth.FaceLoginResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	match, err := s.matcher.Recognize(frame)
	if err != nil {
		switch {
		case errors.Is(err, facematch.ErrNoFaceDetected):
			return auth.FaceLoginResponse{}, auth.ErrNoFaceInImage
		case errors.Is(err, facematch.ErrNotRecognized):
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Face login with unrecognized face")
			return auth.FaceLoginResponse{}, auth.ErrFaceNotRecognized
		default:
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Face recognition failed")
			return auth.FaceLoginResponse{}, err
		}
	}

	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		return auth.FaceLoginResponse{}, err
	}

	employee, err := repo.Employees.GetByUsername(c, match.IdentityKey)
	if err != nil {
		if errors.Is(err, auth.ErrEmployeeNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"username":   match.IdentityKey,
			}).Warn("Recognized face maps to missing employee")
			return auth.FaceLoginResponse{}, auth.ErrFaceNotRecognized
		}
		return auth.FaceLoginResponse{}, err
	}

	if !employee.IsActive {
		return auth.FaceLoginResponse{}, auth.ErrEmployeeInactive
	}

	tokens, err := s.issueTokens(c, employee)
	if err != nil {
		return auth.FaceLoginResponse{}, err
	}

	s.recordAudit(c, repo, employee.ID, "face_login", "face recognition login", ipAddress)

	return auth.FaceLoginResponse{
		TokenResponse:   tokens,
		MatchConfidence: match.Confidence,
	}, nil
}

// recordAudit logs failures but never fails the login itself.
func (s *authService) recordAudit(c context.Context, repo authRepository.Client, employeeID, action, details, ipAddress string) {
	requestID := contextPkg.GetRequestID(c)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate audit log id")
		return
	}

	if err := repo.AuditLogs.Create(c, entity.AuditLog{
		ID:         id,
		EmployeeID: employeeID,
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

func (s *authService) issueTokens(c context.Context, employee entity.Employee) (auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	claims := map[string]interface{}{
		"id":       employee.ID,
		"username": employee.Username,
		"email":    employee.Email,
		"role":     employee.Role,
	}

	token, expiresAt, err := jwtPkg.Sign(claims, accessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.TokenResponse{}, err
	}

	refreshToken, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := s.redisServer.SetSession(c, employee.ID, refreshToken, refreshTokenTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store refresh session")
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:  token,
		ExpiresAt:    expiresAt,
		RefreshToken: refreshToken,
		Employee: auth.EmployeeSummary{
			ID:         employee.ID,
			Username:   employee.Username,
			FirstName:  employee.FirstName,
			LastName:   employee.LastName,
			Email:      employee.Email,
			Department: employee.Department,
			Role:       employee.Role,
		},
	}, nil
}
