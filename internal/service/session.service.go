package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
	"github.com/MrfksIv/morf-stream/internal/repository/participant"
)

type ConnectParticipantParams struct {
	ParticipantId string
}

type ConnectParticipantResponse struct {
	// CurrentVideoUrl is the late-joiner catch-up value; empty when no video
	// has been selected yet.
	CurrentVideoUrl string
}

// ConnectParticipant registers the participant and reports the catch-up
// value. The connection is not yet part of the broadcast set; the caller
// enqueues the catch-up frame first and then admits it via AdmitConn, so
// a racing video change can never land ahead of the catch-up.
func (s service) ConnectParticipant(ctx context.Context, params *ConnectParticipantParams) (ConnectParticipantResponse, error) {
	if err := s.participantRepo.Add(params.ParticipantId); err != nil {
		return ConnectParticipantResponse{}, fmt.Errorf("failed to add participant: %w", err)
	}

	return ConnectParticipantResponse{
		CurrentVideoUrl: s.sessionRepo.Current(),
	}, nil
}

type AdmitConnParams struct {
	Conn          *connection.Conn
	ParticipantId string
}

// AdmitConn adds the connection to the broadcast set. On failure the
// participant registration is rolled back.
func (s service) AdmitConn(ctx context.Context, params *AdmitConnParams) error {
	if err := s.connRepo.Add(params.Conn, params.ParticipantId); err != nil {
		s.participantRepo.Remove(params.ParticipantId)
		return fmt.Errorf("failed to add connection: %w", err)
	}

	return nil
}

type JoinUserParams struct {
	SenderId    string
	DisplayName string
}

type JoinUserResponse struct {
	Roster []string
	// Conns holds every live connection; the roster broadcast does not
	// exclude the sender.
	Conns []*connection.Conn
}

func (s service) JoinUser(ctx context.Context, params *JoinUserParams) (JoinUserResponse, error) {
	if err := s.participantRepo.SetDisplayName(params.SenderId, params.DisplayName); err != nil {
		return JoinUserResponse{}, fmt.Errorf("failed to set display name: %w", err)
	}

	return JoinUserResponse{
		Roster: s.participantRepo.DisplayNames(),
		Conns:  s.connRepo.GetConns(),
	}, nil
}

type DisconnectParticipantParams struct {
	ParticipantId string
}

type DisconnectParticipantResponse struct {
	// RosterChanged is false for participants that never identified; their
	// removal is invisible to everyone else.
	RosterChanged bool
	Roster        []string
	Conns         []*connection.Conn
}

func (s service) DisconnectParticipant(ctx context.Context, params *DisconnectParticipantParams) (DisconnectParticipantResponse, error) {
	conn, err := s.connRepo.RemoveByParticipantId(params.ParticipantId)
	if err != nil {
		if !errors.Is(err, connection.ErrNotFound) {
			return DisconnectParticipantResponse{}, fmt.Errorf("failed to remove connection: %w", err)
		}
	} else {
		conn.Close()
	}

	removed, err := s.participantRepo.Remove(params.ParticipantId)
	if err != nil {
		if errors.Is(err, participant.ErrNotFound) {
			// disconnect of an unknown id is a no-op, not a fault
			return DisconnectParticipantResponse{}, nil
		}

		return DisconnectParticipantResponse{}, fmt.Errorf("failed to remove participant: %w", err)
	}

	if !removed.Identified {
		return DisconnectParticipantResponse{}, nil
	}

	return DisconnectParticipantResponse{
		RosterChanged: true,
		Roster:        s.participantRepo.DisplayNames(),
		Conns:         s.connRepo.GetConns(),
	}, nil
}
