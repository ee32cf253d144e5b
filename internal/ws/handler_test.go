package ws

import (
	"testing"

	"github.com/slithergg/tournament-backend/internal/hub"
	"github.com/slithergg/tournament-backend/internal/protocol"
)

func TestToHubMsgJoin(t *testing.T) {
	sess := newSession()
	m, err := protocol.Decode([]byte(`{"type":"player_join","data":{"id":"p1","name":"ana"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	msg, err := toHubMsg(m, "t1", sess)
	if err != nil {
		t.Fatalf("toHubMsg: %v", err)
	}
	join, ok := msg.(hub.Join)
	if !ok {
		t.Fatalf("want hub.Join, got %T", msg)
	}
	if join.TournamentID != "t1" || join.PlayerID != "p1" || join.Name != "ana" || join.Sess != sess {
		t.Fatalf("unexpected join: %+v", join)
	}
}

func TestToHubMsgMoveUsesEnvelopePlayerID(t *testing.T) {
	m, err := protocol.Decode([]byte(`{"type":"player_move","playerId":"p1","data":{"x":1,"y":2,"direction":3}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	msg, err := toHubMsg(m, "t1", newSession())
	if err != nil {
		t.Fatalf("toHubMsg: %v", err)
	}
	move, ok := msg.(hub.Move)
	if !ok {
		t.Fatalf("want hub.Move, got %T", msg)
	}
	if move.PlayerID != "p1" || move.X != 1 || move.Y != 2 || move.Direction != 3 {
		t.Fatalf("unexpected move: %+v", move)
	}
}

func TestToHubMsgBoostAndOrb(t *testing.T) {
	m, err := protocol.Decode([]byte(`{"type":"player_boost","playerId":"p1","data":{"boosting":true}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	msg, err := toHubMsg(m, "t1", newSession())
	if err != nil {
		t.Fatalf("toHubMsg: %v", err)
	}
	if b, ok := msg.(hub.Boost); !ok || !b.Boosting {
		t.Fatalf("unexpected boost: %+v", msg)
	}

	m, err = protocol.Decode([]byte(`{"type":"orb_collected","playerId":"p1","data":{"orbId":"o9"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	msg, err = toHubMsg(m, "t1", newSession())
	if err != nil {
		t.Fatalf("toHubMsg: %v", err)
	}
	if o, ok := msg.(hub.OrbCollected); !ok || o.OrbID != "o9" || o.PlayerID != "p1" {
		t.Fatalf("unexpected orb: %+v", msg)
	}
}

func TestToHubMsgRejectsMissingPayload(t *testing.T) {
	m := protocol.ClientMessage{Type: protocol.TypePlayerMove, PlayerID: "p1"}
	if _, err := toHubMsg(m, "t1", newSession()); err == nil {
		t.Fatalf("expected payload error")
	}
}

func TestSessionTrySendAfterClose(t *testing.T) {
	s := newSession()
	if !s.TrySend([]byte("x")) {
		t.Fatalf("fresh session should accept sends")
	}
	s.Close()
	s.Close() // idempotent
	if s.TrySend([]byte("y")) {
		t.Fatalf("closed session must skip sends")
	}
}

func TestSessionTrySendFullOutbox(t *testing.T) {
	s := newSession()
	for i := 0; i < outboxSize; i++ {
		if !s.TrySend([]byte("x")) {
			t.Fatalf("send %d should fit in the outbox", i)
		}
	}
	if s.TrySend([]byte("overflow")) {
		t.Fatalf("full outbox must report a skipped send")
	}
}
