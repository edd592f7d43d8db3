package authService

import (
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/auth"
	authRepository "IntelliguardGolang/internal/api/auth/repository"
	"IntelliguardGolang/pkg/bcrypt"
	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/redis"
	"IntelliguardGolang/pkg/utils"
)

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginRequest, ipAddress string) (auth.TokenResponse, error)
	Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error)
	Logout(ctx context.Context, employeeID string) error
	FaceLogin(ctx context.Context, frame image.Image, ipAddress string) (auth.FaceLoginResponse, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository
	redisServer    redis.IRedis
	bcryptUtils    bcrypt.IBcrypt
	utils          utils.IUtils
	matcher        *facematch.Matcher
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	matcher *facematch.Matcher,
) IAuthService {
	return &authService{
		log:            log,
		authRepository: authRepo,
		redisServer:    redisServer,
		bcryptUtils:    bcryptUtils,
		utils:          utils,
		matcher:        matcher,
	}
}
