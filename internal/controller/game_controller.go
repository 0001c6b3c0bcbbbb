package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameController{gameService: gameService, logger: logger}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame(middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetStatus(c *fiber.Ctx) error {
	status, err := gc.gameService.Status(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(status)
}

func (gc *GameController) SelectSquare(c *fiber.Ctx) error {
	var body ws.SelectPayload
	if err := c.BodyParser(&body); err != nil || body.Validate() != nil {
		return badRequest(c)
	}
	sel, err := gc.gameService.SelectSquare(c.Params("gameId"), middleware.PlayerID(c), *body.Square)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(sel)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var body ws.MovePayload
	if err := c.BodyParser(&body); err != nil || body.Validate() != nil {
		return badRequest(c)
	}
	result, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), *body.From, *body.To)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var body ws.PromotePayload
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c)
	}
	status, err := gc.gameService.Promote(c.Params("gameId"), middleware.PlayerID(c), body.Piece)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(status)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	state, err := gc.gameService.Reset(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId"), middleware.PlayerID(c)); err != nil {
		return gc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		gc.logger.Error("game request failed",
			zap.String("game_id", c.Params("gameId")),
			zap.Error(err),
		)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
}

// statusFor maps service and engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidSquare), errors.Is(err, model.ErrInvalidPromotion):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrPromotionPending),
		errors.Is(err, model.ErrNoPromotionPending),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
