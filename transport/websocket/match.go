package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	gws "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

var (
	errConnectionLost = errors.New("connection lost")
	errMissingField   = errors.New("missing field")
)

type inbound struct {
	player entity.Player
	data   []byte
	err    error
}

// stageHandler processes one message. done ends the stage; an error aborts the match.
type stageHandler func(ctx context.Context, run *matchRun, player entity.Player, msg *Message) (done bool, err error)

type matchRun struct {
	logger  *slog.Logger
	session *usecase.MatchSession
	peers   [2]*peer
}

// Each stage only answers its own actions, anything else is ignored.
var (
	addingHandlers   = map[string]stageHandler{actionShipAdd: handleShipAdd}
	guessingHandlers = map[string]stageHandler{actionGuess: handleGuess}
)

func (that *Server) runMatch(ctx context.Context, peers [2]*peer) {
	session := that.newSession()

	run := &matchRun{
		logger:  that.logger.With("matchID", session.ID()),
		session: session,
		peers:   peers,
	}

	that.registry.Add(session)
	defer that.registry.Remove(session.ID())

	done := make(chan struct{})
	defer close(done)

	messages := make(chan inbound)
	for i, p := range peers {
		go readLoop(p, entity.Player(i), messages, done)
	}

	if err := run.play(ctx, messages); err != nil {
		run.logger.Error("match aborted", "error", err)
		run.closeAll(gws.CloseInternalServerErr, closeReasonError)

		return
	}

	run.logger.Info("match finished")
	run.closeAll(gws.CloseNormalClosure, closeReasonFinished)
}

func readLoop(p *peer, player entity.Player, messages chan<- inbound, done <-chan struct{}) {
	for {
		_, data, err := p.conn.ReadMessage()

		select {
		case messages <- inbound{player: player, data: data, err: err}:
		case <-done:
			return
		}

		if err != nil {
			return
		}
	}
}

func (that *matchRun) play(ctx context.Context, messages <-chan inbound) error {
	if err := that.broadcastInfo("Game started!"); err != nil {
		return err
	}

	if err := that.sendAdding(); err != nil {
		return err
	}

	if err := that.runStage(ctx, messages, addingHandlers); err != nil {
		return fmt.Errorf("adding stage: %w", err)
	}

	that.logger.Info("all ships received, guessing started")

	if err := that.runStage(ctx, messages, guessingHandlers); err != nil {
		return fmt.Errorf("guessing stage: %w", err)
	}

	return nil
}

func (that *matchRun) runStage(ctx context.Context, messages <-chan inbound, handlers map[string]stageHandler) error {
	for {
		var in inbound

		select {
		case <-ctx.Done():
			return ctx.Err()
		case in = <-messages:
		}

		if in.err != nil {
			return fmt.Errorf("%w: %s: %w", errConnectionLost, in.player, in.err)
		}

		var msg Message
		if err := json.Unmarshal(in.data, &msg); err != nil {
			that.logger.Debug("ignoring malformed message", "player", in.player.Number(), "error", err)
			continue
		}

		handler, ok := handlers[msg.Action]
		if !ok {
			that.logger.Debug("ignoring message", "player", in.player.Number(), "action", msg.Action)
			continue
		}

		done, err := handler(ctx, that, in.player, &msg)
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

func handleShipAdd(ctx context.Context, run *matchRun, player entity.Player, msg *Message) (bool, error) {
	var payload ShipAddPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return false, run.replyError(player, fmt.Errorf("invalid ship:add payload: %w", err))
	}

	switch {
	case payload.Loc == nil:
		return false, run.replyError(player, fmt.Errorf("invalid ship:add payload: %w: loc", errMissingField))
	case payload.Dir == nil:
		return false, run.replyError(player, fmt.Errorf("invalid ship:add payload: %w: dir", errMissingField))
	}

	started, err := run.session.PlaceVessel(ctx, player, *payload.Loc, *payload.Dir)
	if err != nil {
		if apperror.IsProtocolError(err) {
			return false, err
		}

		if err = run.replyError(player, err); err != nil {
			return false, err
		}
	}

	if err = run.sendAdding(); err != nil {
		return false, err
	}

	return started, nil
}

func handleGuess(ctx context.Context, run *matchRun, player entity.Player, msg *Message) (bool, error) {
	var payload GuessPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return false, run.replyError(player, fmt.Errorf("invalid guess payload: %w", err))
	}

	if payload.Loc == nil {
		return false, run.replyError(player, fmt.Errorf("invalid guess payload: %w: loc", errMissingField))
	}

	loc := *payload.Loc

	outcome, err := run.session.Guess(ctx, player, loc)
	if err != nil {
		return false, err
	}

	verb := "missed"
	if outcome.Hit {
		verb = "destroyed"
	}

	result := GuessResultPayload{
		Player:  player.Number(),
		Loc:     loc,
		Hit:     outcome.Hit,
		Message: fmt.Sprintf("%s has guessed %s and %s an enemy ship!", player, loc, verb),
	}

	if err = run.broadcast(actionGuessResult, result); err != nil {
		return false, err
	}

	if outcome.Winner == nil {
		return false, nil
	}

	won := WonPayload{
		Winner:  outcome.Winner.Number(),
		Message: fmt.Sprintf("%s has won the game!", *outcome.Winner),
	}

	if err = run.broadcast(actionStateWon, won); err != nil {
		return false, err
	}

	return true, nil
}

// sendAdding tells each player where their own ships are.
func (that *matchRun) sendAdding() error {
	fleets := that.session.Fleets()

	for i, p := range that.peers {
		ships := fleets[i]
		if ships == nil {
			ships = [][]entity.Coordinate{}
		}

		if err := p.sendMessage(actionStateAdding, AddingPayload{Ships: ships}); err != nil {
			return err
		}
	}

	return nil
}

func (that *matchRun) replyError(player entity.Player, err error) error {
	return that.peers[player].sendError(err)
}

func (that *matchRun) broadcast(action string, payload any) error {
	for _, p := range that.peers {
		if err := p.sendMessage(action, payload); err != nil {
			return err
		}
	}

	return nil
}

func (that *matchRun) broadcastInfo(text string) error {
	return that.broadcast(actionInfo, InfoPayload{Message: text})
}

func (that *matchRun) closeAll(code int, reason string) {
	for _, p := range that.peers {
		p.close(code, reason)
	}
}
