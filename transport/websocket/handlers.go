package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payload, err := decodePayload(msg)
	if err != nil {
		that.sendError(client, msg.Action, "malformed payload")
		return err
	}

	sessionID := client.sessionID
	if payload.SessionID != "" {
		sessionID = payload.SessionID
	}

	snapshot, err := that.sessions.Connect(ctx, sessionID)
	if err != nil {
		that.sendError(client, msg.Action, "failed to connect to the session")
		return fmt.Errorf("failed to connect: %w", err)
	}

	client.sessionID = snapshot.SessionID

	log.Info("player connected", "session_id", snapshot.SessionID)

	return that.sendSnapshot(client, msg.Action, snapshot)
}

func (that *Server) handleSelectCell(ctx context.Context, client *client, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		that.sendError(client, msg.Action, "malformed payload")
		return err
	}

	if payload.Cell == nil {
		that.sendError(client, msg.Action, "cell is required")
		return nil
	}

	return that.applyEvent(ctx, client, msg.Action, func(ctx context.Context, id string) (entity.Snapshot, error) {
		return that.sessions.SelectCell(ctx, id, *payload.Cell)
	})
}

func (that *Server) handleNewRound(ctx context.Context, client *client, msg *Message) error {
	return that.applyEvent(ctx, client, msg.Action, that.sessions.NewRound)
}

func (that *Server) handleNewMatch(ctx context.Context, client *client, msg *Message) error {
	return that.applyEvent(ctx, client, msg.Action, that.sessions.NewMatch)
}

func (that *Server) applyEvent(
	ctx context.Context,
	client *client,
	action string,
	event func(ctx context.Context, id string) (entity.Snapshot, error),
) error {
	snapshot, err := event(ctx, client.sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.sendError(client, action, "session not found, connect first")
		return nil
	}

	if err != nil {
		that.sendError(client, action, "failed to update the session")
		return fmt.Errorf("failed to apply %s: %w", action, err)
	}

	return that.sendSnapshot(client, action, snapshot)
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
