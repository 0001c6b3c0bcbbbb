package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"go.uber.org/zap"
)

type GameService struct {
	gameManager *GameManager
	connections *GameConnections
	logger      *zap.Logger
}

func NewGameService(gameManager *GameManager, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	gs := &GameService{
		gameManager: gameManager,
		connections: NewGameConnections(),
		logger:      logger,
	}
	gameManager.OnExpire(gs.connections.Drop)
	return gs
}

func (gs *GameService) CreateGame(playerID string) (string, error) {
	gameID, err := gs.gameManager.CreateGame(playerID)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) DeleteGame(gameID string, playerID string) error {
	if err := gs.gameManager.RemoveGame(gameID, playerID); err != nil {
		return err
	}
	gs.connections.Drop(gameID)
	return nil
}

func (gs *GameService) GetGameState(gameID string, playerID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Snapshot(), nil
}

func (gs *GameService) Status(gameID string, playerID string) (model.Status, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.Status{}, err
	}
	return game.Status()
}

func (gs *GameService) SelectSquare(gameID string, playerID string, square model.Position) (model.Selection, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.Selection{}, err
	}
	sel, err := game.SelectSquare(square)
	if err != nil {
		return sel, err
	}
	gs.pushState(gameID, game)
	return sel, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, from, to model.Position) (model.MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.MoveResult{}, err
	}
	result, err := game.AttemptMove(from, to)
	if err != nil {
		return result, err
	}
	gs.logger.Debug("move applied",
		zap.String("game_id", gameID),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Bool("requires_promotion", result.RequiresPromotion),
		zap.Bool("game_over", result.Status.GameOver),
	)
	gs.pushState(gameID, game)
	return result, nil
}

func (gs *GameService) Promote(gameID string, playerID string, piece model.PieceType) (model.Status, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.Status{}, err
	}
	status, err := game.ResolvePromotion(piece)
	if err != nil {
		return status, err
	}
	gs.pushState(gameID, game)
	return status, nil
}

func (gs *GameService) Reset(gameID string, playerID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}
	game.Reset()
	gs.pushState(gameID, game)
	return game.Snapshot(), nil
}

// RegisterConnection attaches the owner's socket and sends it the current state.
func (gs *GameService) RegisterConnection(gameID string, playerID string, w StateWriter) error {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return err
	}
	if err := gs.connections.Register(gameID, w); err != nil {
		return err
	}
	gs.pushState(gameID, game)
	return nil
}

func (gs *GameService) UnregisterConnection(gameID string, w StateWriter) {
	gs.connections.Unregister(gameID, w)
}

// SendError reports a failed socket action back to the owner.
func (gs *GameService) SendError(gameID string, cause error) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		gs.logger.Error("failed to marshal error", zap.Error(err))
		return
	}
	if err := gs.connections.Send(gameID, msg); err != nil {
		gs.logger.Warn("failed to send error", zap.String("game_id", gameID), zap.Error(err))
	}
}

func (gs *GameService) pushState(gameID string, game *model.Game) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, game.Snapshot())
	if err != nil {
		gs.logger.Error("failed to marshal state", zap.String("game_id", gameID), zap.Error(err))
		return
	}
	if err := gs.connections.Send(gameID, msg); err != nil {
		gs.logger.Warn("failed to push state, dropping connection", zap.String("game_id", gameID), zap.Error(err))
		gs.connections.Drop(gameID)
	}
}
