package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
)

type recordingWriter struct {
	mu   sync.Mutex
	msgs []ws.Message
	fail error
}

func (r *recordingWriter) WriteJSON(v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.msgs = append(r.msgs, v.(ws.Message))
	return nil
}

func (r *recordingWriter) last(t *testing.T) ws.Message {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		t.Fatal("no messages written")
	}
	return r.msgs[len(r.msgs)-1]
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

func newTestService(t *testing.T) *GameService {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return NewGameService(NewGameManager(time.Hour, logger), logger)
}

func TestGameServiceOwnership(t *testing.T) {
	gs := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := gs.GetGameState(gameID, "alice"); err != nil {
		t.Errorf("owner GetGameState error: %v", err)
	}
	if _, err := gs.GetGameState(gameID, "bob"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("stranger GetGameState error = %v, want ErrNotOwner", err)
	}
	if _, err := gs.HandleMove(gameID, "bob", pos(6, 4), pos(4, 4)); !errors.Is(err, ErrNotOwner) {
		t.Errorf("stranger HandleMove error = %v, want ErrNotOwner", err)
	}
	if _, err := gs.Status("missing", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("missing game error = %v, want ErrGameNotFound", err)
	}
	if err := gs.DeleteGame(gameID, "bob"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("stranger DeleteGame error = %v, want ErrNotOwner", err)
	}
	if err := gs.DeleteGame(gameID, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := gs.GetGameState(gameID, "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("deleted game error = %v, want ErrGameNotFound", err)
	}
}

func TestGameServicePlayPushesState(t *testing.T) {
	gs := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatal(err)
	}
	w := &recordingWriter{}
	if err := gs.RegisterConnection(gameID, "alice", w); err != nil {
		t.Fatal(err)
	}
	if got := w.last(t).Type; got != ws.MessageTypeGameState {
		t.Errorf("initial push type = %s", got)
	}
	if err := gs.RegisterConnection(gameID, "alice", &recordingWriter{}); !errors.Is(err, ErrConnectionExists) {
		t.Errorf("duplicate connection error = %v, want ErrConnectionExists", err)
	}

	sel, err := gs.SelectSquare(gameID, "alice", pos(6, 4))
	if err != nil {
		t.Fatal(err)
	}
	if sel.Phase != model.PhaseSelected || len(sel.LegalMoves) != 2 {
		t.Errorf("selection = %+v", sel)
	}
	res, err := gs.HandleMove(gameID, "alice", pos(6, 4), pos(4, 4))
	if err != nil || !res.Applied {
		t.Fatalf("HandleMove = %+v, %v", res, err)
	}

	var pushed struct {
		ToMove model.Color `json:"toMove"`
		Phase  model.Phase `json:"phase"`
	}
	if err := json.Unmarshal(w.last(t).Payload, &pushed); err != nil {
		t.Fatal(err)
	}
	if pushed.ToMove != model.Black || pushed.Phase != model.PhaseIdle {
		t.Errorf("pushed state toMove=%s phase=%s", pushed.ToMove, pushed.Phase)
	}

	if _, err := gs.HandleMove(gameID, "alice", pos(6, 0), pos(5, 0)); !errors.Is(err, model.ErrIllegalMove) {
		t.Errorf("white moving on black's turn error = %v, want ErrIllegalMove", err)
	}

	snap, err := gs.Reset(gameID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if snap.ToMove != model.White || len(snap.MoveHistory) != 0 {
		t.Errorf("after reset toMove=%s history=%d", snap.ToMove, len(snap.MoveHistory))
	}

	gs.UnregisterConnection(gameID, w)
	count := len(w.msgs)
	if _, err := gs.HandleMove(gameID, "alice", pos(6, 3), pos(4, 3)); err != nil {
		t.Fatal(err)
	}
	if len(w.msgs) != count {
		t.Error("state pushed to an unregistered connection")
	}
}

func TestGameServicePromotion(t *testing.T) {
	gs := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gs.Promote(gameID, "alice", model.Queen); !errors.Is(err, model.ErrNoPromotionPending) {
		t.Errorf("Promote without pending error = %v, want ErrNoPromotionPending", err)
	}
}

func TestGameServiceSendError(t *testing.T) {
	gs := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatal(err)
	}
	w := &recordingWriter{}
	if err := gs.RegisterConnection(gameID, "alice", w); err != nil {
		t.Fatal(err)
	}
	gs.SendError(gameID, model.ErrIllegalMove)

	msg := w.last(t)
	var payload ws.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	want := ws.ErrorPayload{Error: "illegal move"}
	if diff := cmp.Diff(want, payload); diff != "" || msg.Type != ws.MessageTypeError {
		t.Errorf("error message type=%s (-want +got):\n%s", msg.Type, diff)
	}
}

func TestPushFailureDropsConnection(t *testing.T) {
	gs := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatal(err)
	}
	w := &recordingWriter{fail: errors.New("broken pipe")}
	if err := gs.RegisterConnection(gameID, "alice", w); err != nil {
		t.Fatal(err)
	}
	// the failed initial push released the slot
	if err := gs.RegisterConnection(gameID, "alice", &recordingWriter{}); err != nil {
		t.Errorf("re-register after failure error = %v", err)
	}
}

func TestExpiredGameReleasesConnection(t *testing.T) {
	logger := zaptest.NewLogger(t)
	gm := NewGameManager(10*time.Minute, logger)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	gm.now = func() time.Time { return clock }
	gs := NewGameService(gm, logger)

	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatal(err)
	}
	w := &recordingWriter{}
	if err := gs.RegisterConnection(gameID, "alice", w); err != nil {
		t.Fatal(err)
	}

	clock = clock.Add(11 * time.Minute)
	if n := gm.sweep(); n != 1 {
		t.Fatalf("sweep expired %d games, want 1", n)
	}

	count := len(w.msgs)
	gs.SendError(gameID, model.ErrIllegalMove)
	if len(w.msgs) != count {
		t.Error("expired game still writes to its socket")
	}
	if err := gs.connections.Register(gameID, &recordingWriter{}); err != nil {
		t.Errorf("slot still held after expiry: %v", err)
	}
}
