package controller

import (
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// SetupRoutes mounts the REST API under /api and the game socket under /ws.
func SetupRoutes(app *fiber.App, gameService *service.GameService, origins []string, logger *zap.Logger) {
	gameController := NewGameController(gameService, logger)
	wsController := NewWebSocketController(gameService, logger)

	app.Use("/ws/*", middleware.EnsurePlayerID(logger))
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api", middleware.EnsurePlayerID(logger))

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/status", gameController.GetStatus)
	gameRoutes.Post("/:gameId/select", gameController.SelectSquare)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/promote", gameController.Promote)
	gameRoutes.Post("/:gameId/reset", gameController.Reset)
	gameRoutes.Delete("/:gameId", gameController.DeleteGame)
}
