package employeeService

import (
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/employee"
	employeeRepository "IntelliguardGolang/internal/api/employee/repository"
	"IntelliguardGolang/internal/entity"
	"IntelliguardGolang/pkg/bcrypt"
	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/mailer"
	"IntelliguardGolang/pkg/utils"
)

type IEmployeeService interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest, actor entity.EmployeeLoginData, ipAddress string) (employee.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
	List(ctx context.Context, filter employee.ListEmployeesQuery) (employee.ListEmployeesResponse, error)
	Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	Deactivate(ctx context.Context, id string, actor entity.EmployeeLoginData, ipAddress string) error
	EnrollFace(ctx context.Context, id string, frame image.Image) (employee.EnrollFaceResponse, error)
	ReloadRegistry(ctx context.Context) (int, error)
}

type employeeService struct {
	log          *logrus.Logger
	employeeRepo employeeRepository.Repository
	bcryptUtils  bcrypt.IBcrypt
	utils        utils.IUtils
	mailer       mailer.ItfMailer
	matcher      *facematch.Matcher
}

func New(log *logrus.Logger,
	employeeRepo employeeRepository.Repository,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	mailer mailer.ItfMailer,
	matcher *facematch.Matcher,
) IEmployeeService {
	return &employeeService{
		log:          log,
		employeeRepo: employeeRepo,
		bcryptUtils:  bcryptUtils,
		utils:        utils,
		mailer:       mailer,
		matcher:      matcher,
	}
}
