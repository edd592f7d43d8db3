package detectionHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"IntelliguardGolang/internal/api/detection"
	contextPkg "IntelliguardGolang/pkg/context"
	"IntelliguardGolang/pkg/handlerUtil"
	jwtPkg "IntelliguardGolang/pkg/jwt"
	"IntelliguardGolang/pkg/log"
)

func (h *DetectionHandler) HandleProcess(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req detection.ProcessDetectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrInvalidFrame, ctx.Path(), "parse_image_file")
	}

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
	}

	frame, raw, err := h.utils.DecodeImageFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrInvalidFrame, ctx.Path(), "decode_image_file")
	}

	actor, err := jwtPkg.GetEmployeeLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "invalid session")
	}

	res, err := h.detectionService.ProcessUpload(c, frame, raw, req, actor)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_detection")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":   requestID,
			"detection_id": res.ID,
			"status":       res.Report.ComplianceStatus,
		}).Info("Detection processed")
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, res)
	}
}

func (h *DetectionHandler) HandleList(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var filter detection.ListDetectionsQuery
	if err := ctx.QueryParser(&filter); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_query")
	}

	if err := h.validator.Struct(filter); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.detectionService.List(c, filter)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_detections")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *DetectionHandler) HandleGetByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.detectionService.GetByID(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_detection")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *DetectionHandler) HandleIdentify(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrNoFaceInImage, ctx.Path(), "parse_image_file")
	}

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
	}

	frame, _, err := h.utils.DecodeImageFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrInvalidFrame, ctx.Path(), "decode_image_file")
	}

	res, err := h.detectionService.Identify(c, frame)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "identify_face")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *DetectionHandler) HandleDescribe(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrInvalidFrame, ctx.Path(), "parse_image_file")
	}

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
	}

	src, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrInvalidFrame, ctx.Path(), "open_image_file")
	}
	defer src.Close()

	base64Image, err := h.utils.ConvertFileToBase64(src)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "encode_image_file")
	}

	res, err := h.detectionService.Describe(c, base64Image)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "describe_scene")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
