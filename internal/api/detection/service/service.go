package detectionService

import (
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/detection"
	detectionRepository "IntelliguardGolang/internal/api/detection/repository"
	"IntelliguardGolang/internal/entity"
	"IntelliguardGolang/pkg/facematch"
	"IntelliguardGolang/pkg/gemini"
	"IntelliguardGolang/pkg/inference"
	"IntelliguardGolang/pkg/mailer"
	"IntelliguardGolang/pkg/s3"
	"IntelliguardGolang/pkg/utils"
)

type IDetectionService interface {
	ProcessUpload(ctx context.Context, frame image.Image, raw []byte, req detection.ProcessDetectionRequest, actor entity.EmployeeLoginData) (detection.DetectionResponse, error)
	ProcessFrame(frame []byte) detection.FrameResult
	GetByID(ctx context.Context, id string) (detection.DetectionResponse, error)
	List(ctx context.Context, filter detection.ListDetectionsQuery) (detection.ListDetectionsResponse, error)
	Identify(ctx context.Context, frame image.Image) (detection.IdentifyResponse, error)
	Describe(ctx context.Context, base64Image string) (detection.DescribeResponse, error)
}

type detectionService struct {
	log           *logrus.Logger
	detectionRepo detectionRepository.Repository
	inference     inference.IInference
	matcher       *facematch.Matcher
	s3Client      s3.ItfS3
	gemini        gemini.IGemini
	mailer        mailer.ItfMailer
	utils         utils.IUtils
}

func New(log *logrus.Logger,
	detectionRepo detectionRepository.Repository,
	inferenceClient inference.IInference,
	matcher *facematch.Matcher,
	s3Client s3.ItfS3,
	gemini gemini.IGemini,
	mailer mailer.ItfMailer,
	utils utils.IUtils,
) IDetectionService {
	return &detectionService{
		log:           log,
		detectionRepo: detectionRepo,
		inference:     inferenceClient,
		matcher:       matcher,
		s3Client:      s3Client,
		gemini:        gemini,
		mailer:        mailer,
		utils:         utils,
	}
}
