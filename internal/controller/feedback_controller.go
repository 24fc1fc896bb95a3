package controller

import (
	"contract-workflow-be/internal/pkg/serverutils"
	"contract-workflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type feedbackController struct {
	service service.IFeedbackStoreService
}

func NewFeedbackController(service service.IFeedbackStoreService) IFeedbackController {
	return &feedbackController{service: service}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback/v1")
	h.Get("/:contractId", c.List)
}

func (c *feedbackController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext(), ctx.Params("contractId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get contract feedback", res))
}
