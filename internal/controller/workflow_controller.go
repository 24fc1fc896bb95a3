package controller

import (
	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/serverutils"
	"contract-workflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkflowController interface {
	RegisterRoutes(r fiber.Router)
	Execute(ctx *fiber.Ctx) error
	Enqueue(ctx *fiber.Ctx) error
}

type workflowController struct {
	service service.IWorkflowService
}

func NewWorkflowController(service service.IWorkflowService) IWorkflowController {
	return &workflowController{service: service}
}

func (c *workflowController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workflow/v1")
	h.Post("/execute", c.Execute)
	h.Post("/enqueue", c.Enqueue)
}

// Execute always answers with the final state. A failed workflow is a 422
// whose message is the state's error.
func (c *workflowController) Execute(ctx *fiber.Ctx) error {
	var req dto.WorkflowInput
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	state := c.service.Execute(ctx.UserContext(), req)
	if state.Status == dto.StatusFailed {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.BaseResponse[dto.WorkflowState]{
			Success: false,
			Code:    fiber.StatusUnprocessableEntity,
			Message: state.Error,
			Data:    state,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Workflow completed", state))
}

func (c *workflowController) Enqueue(ctx *fiber.Ctx) error {
	var req dto.ProcessDocumentMessage
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Enqueue(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.BaseResponse[*dto.EnqueueDocumentResponse]{
		Success: true,
		Code:    fiber.StatusAccepted,
		Message: "Document queued",
		Data:    res,
	})
}
