package controller

import (
	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/serverutils"
	"contract-workflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultHistoryLimit = 20

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("/search", c.Search)
	h.Get("/search/history", c.History)
	h.Put("/:id", c.Update)
	h.Put("/:id/archive", c.Archive)
	h.Delete("/:id", c.Delete)
}

func (c *documentController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}

func (c *documentController) History(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", defaultHistoryLimit)

	res, err := c.service.History(ctx.UserContext(), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get search history", res))
}

func (c *documentController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update document", res))
}

func (c *documentController) Archive(ctx *fiber.Ctx) error {
	if err := c.service.Archive(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success archive document", nil))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
