// Package ws accepts game client connections and bridges them onto the hub.
package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/slithergg/tournament-backend/internal/hub"
	"github.com/slithergg/tournament-backend/internal/protocol"
)

const (
	writeTimeout = 3 * time.Second
	readTimeout  = 60 * time.Second
)

// DefaultTournament is joined when the connect URL names no tournament.
const DefaultTournament = "casual"

func Handler(h *hub.Hub, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.URL.Query().Get("tournament")
		if tournamentID == "" {
			tournamentID = DefaultTournament
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // clients are served from another origin
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		log.Debugw("player connecting", "tournament", tournamentID)

		sess := newSession()
		defer sess.Close()

		// Initial state push, then the hub starts addressing this session.
		h.Post(hub.Connect{TournamentID: tournamentID, Sess: sess})
		defer h.Post(hub.Disconnect{TournamentID: tournamentID, Sess: sess})

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go writePump(writeCtx, conn, sess)

		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Clean close, going-away and read errors all end the same
				// way: the deferred Disconnect cleans up.
				return
			}

			m, err := protocol.Decode(data)
			if err != nil {
				// Malformed input is logged and dropped; the connection
				// stays open.
				h.Metrics().IncMalformed()
				log.Debugw("dropping message", "tournament", tournamentID, "err", err)
				continue
			}
			msg, err := toHubMsg(m, tournamentID, sess)
			if err != nil {
				h.Metrics().IncMalformed()
				log.Debugw("dropping message", "tournament", tournamentID, "type", m.Type, "err", err)
				continue
			}
			h.Post(msg)
		}
	}
}

// toHubMsg maps a decoded envelope onto its hub command. Decode has already
// rejected unknown tags, so the default arm is unreachable.
func toHubMsg(m protocol.ClientMessage, tournamentID string, sess *Session) (hub.Msg, error) {
	switch m.Type {
	case protocol.TypePlayerJoin:
		d, err := protocol.DecodePayload[protocol.JoinData](m)
		if err != nil {
			return nil, err
		}
		return hub.Join{TournamentID: tournamentID, Sess: sess, PlayerID: d.ID, Name: d.Name}, nil
	case protocol.TypePlayerMove:
		d, err := protocol.DecodePayload[protocol.MoveData](m)
		if err != nil {
			return nil, err
		}
		return hub.Move{PlayerID: m.PlayerID, X: d.X, Y: d.Y, Direction: d.Direction}, nil
	case protocol.TypePlayerBoost:
		d, err := protocol.DecodePayload[protocol.BoostData](m)
		if err != nil {
			return nil, err
		}
		return hub.Boost{PlayerID: m.PlayerID, Boosting: d.Boosting}, nil
	default: // protocol.TypeOrbCollected
		d, err := protocol.DecodePayload[protocol.OrbData](m)
		if err != nil {
			return nil, err
		}
		return hub.OrbCollected{PlayerID: m.PlayerID, OrbID: d.OrbID}, nil
	}
}

func writePump(ctx context.Context, conn *websocket.Conn, sess *Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sess.done:
			return
		case b := <-sess.outbox:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, b)
			cancel()
			if err != nil {
				sess.Close()
				return
			}
		}
	}
}
