package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

var errUnknownMessage = errors.New("unknown message type")

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection serves one owner socket until it disconnects.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	logger := wsc.logger.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.Info("rejected websocket connection", zap.Error(err))
		closeMsg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		_ = c.WriteMessage(websocket.CloseMessage, closeMsg)
		_ = c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, c)
	logger.Debug("websocket connected")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Debug("websocket action rejected", zap.String("type", string(msg.Type)), zap.Error(err))
			wsc.gameService.SendError(gameID, err)
		}
	}
	logger.Debug("websocket disconnected")
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var p ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		_, err := wsc.gameService.SelectSquare(gameID, playerID, *p.Square)
		return err

	case ws.MessageTypeMove:
		var p ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, *p.From, *p.To)
		return err

	case ws.MessageTypePromote:
		var p ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.gameService.Promote(gameID, playerID, p.Piece)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID, playerID)
		return err

	default:
		return fmt.Errorf("%w: %s", errUnknownMessage, msg.Type)
	}
}
