// File: internal/transport/envelope.go
// Project: EC4X Engine
// Description: Encrypted event-stream transport: msgpack payloads wrapped in NIP-44 envelopes (§4.12, §6.3)
// Version: 1.0.0
// Created: 2026-07-30

// Package transport carries order packets and player-state payloads
// between the authoritative engine and remote player clients. Every
// payload is msgpack-encoded, then sealed in a crypto.Encrypt envelope
// addressed to the recipient's long-term X25519 public key (§4.12). Two
// outbound event kinds exist — full state and turn delta (§6.3) — plus a
// single inbound kind for order packets.
package transport

import (
	"fmt"

	"github.com/ec4x/engine/internal/crypto"
	"github.com/ec4x/engine/internal/intel"
	"github.com/ec4x/engine/internal/orders"
	"github.com/vmihailenco/msgpack/v5"
)

// EventKind is the wire-level discriminator carried alongside (not inside)
// every envelope, analogous to a Nostr event kind (§6.3).
type EventKind int

const (
	// KindFullState carries a complete intel.PlayerState snapshot.
	KindFullState EventKind = 30402
	// KindTurnDelta carries an intel.PlayerStateDelta for one turn.
	KindTurnDelta EventKind = 30403
	// KindOrderPacket carries one house's orders.CommandPacket upload.
	KindOrderPacket EventKind = 30404
)

// Event is one published or received item on the transport's event stream:
// the event kind, the recipient's (or sender's) public key, and the sealed
// envelope bytes. It never carries plaintext — Open must be called with the
// matching private key to recover the payload.
type Event struct {
	Kind      EventKind
	PublicKey [32]byte // recipient for outbound, sender for inbound
	Envelope  []byte
}

// PublishFullState msgpack-encodes state and seals it for recipientPub,
// producing the "full state" event §6.3 defines.
func PublishFullState(state *intel.PlayerState, recipientPub [32]byte) (Event, error) {
	payload, err := msgpack.Marshal(state)
	if err != nil {
		return Event{}, fmt.Errorf("transport: marshal player state: %w", err)
	}
	env, err := crypto.Encrypt(payload, recipientPub)
	if err != nil {
		return Event{}, fmt.Errorf("transport: encrypt player state: %w", err)
	}
	return Event{Kind: KindFullState, PublicKey: recipientPub, Envelope: env}, nil
}

// PublishTurnDelta msgpack-encodes delta and seals it for recipientPub,
// producing the "turn delta" event §6.3 defines. Delta application on the
// client is idempotent per Turn, so redelivery of the same envelope is
// always safe.
func PublishTurnDelta(delta *intel.PlayerStateDelta, recipientPub [32]byte) (Event, error) {
	payload, err := msgpack.Marshal(delta)
	if err != nil {
		return Event{}, fmt.Errorf("transport: marshal player delta: %w", err)
	}
	env, err := crypto.Encrypt(payload, recipientPub)
	if err != nil {
		return Event{}, fmt.Errorf("transport: encrypt player delta: %w", err)
	}
	return Event{Kind: KindTurnDelta, PublicKey: recipientPub, Envelope: env}, nil
}

// UploadOrderPacket msgpack-encodes packet and seals it for the engine's
// long-term public key, the single inbound event kind (§6.3).
func UploadOrderPacket(packet orders.CommandPacket, enginePub [32]byte) (Event, error) {
	payload, err := msgpack.Marshal(packet)
	if err != nil {
		return Event{}, fmt.Errorf("transport: marshal command packet: %w", err)
	}
	env, err := crypto.Encrypt(payload, enginePub)
	if err != nil {
		return Event{}, fmt.Errorf("transport: encrypt command packet: %w", err)
	}
	return Event{Kind: KindOrderPacket, PublicKey: enginePub, Envelope: env}, nil
}

// OpenFullState decrypts and decodes a KindFullState event using the
// recipient's private key.
func OpenFullState(ev Event, recipientPriv [32]byte) (*intel.PlayerState, error) {
	if ev.Kind != KindFullState {
		return nil, fmt.Errorf("transport: unknown event kind %d", ev.Kind)
	}
	plaintext, err := crypto.Decrypt(ev.Envelope, recipientPriv)
	if err != nil {
		return nil, err
	}
	var state intel.PlayerState
	if err := msgpack.Unmarshal(plaintext, &state); err != nil {
		return nil, fmt.Errorf("transport: decode player state: %w", err)
	}
	return &state, nil
}

// OpenTurnDelta decrypts and decodes a KindTurnDelta event.
func OpenTurnDelta(ev Event, recipientPriv [32]byte) (*intel.PlayerStateDelta, error) {
	if ev.Kind != KindTurnDelta {
		return nil, fmt.Errorf("transport: unknown event kind %d", ev.Kind)
	}
	plaintext, err := crypto.Decrypt(ev.Envelope, recipientPriv)
	if err != nil {
		return nil, err
	}
	var delta intel.PlayerStateDelta
	if err := msgpack.Unmarshal(plaintext, &delta); err != nil {
		return nil, fmt.Errorf("transport: decode player delta: %w", err)
	}
	return &delta, nil
}

// OpenOrderPacket decrypts and decodes a KindOrderPacket event using the
// engine's long-term private key.
func OpenOrderPacket(ev Event, enginePriv [32]byte) (orders.CommandPacket, error) {
	var packet orders.CommandPacket
	if ev.Kind != KindOrderPacket {
		return packet, fmt.Errorf("transport: unknown event kind %d", ev.Kind)
	}
	plaintext, err := crypto.Decrypt(ev.Envelope, enginePriv)
	if err != nil {
		return packet, err
	}
	if err := msgpack.Unmarshal(plaintext, &packet); err != nil {
		return packet, fmt.Errorf("transport: decode command packet: %w", err)
	}
	return packet, nil
}
