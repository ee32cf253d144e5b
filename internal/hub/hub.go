// Package hub runs the authoritative game state. One goroutine owns the
// tournament registry and processes every client message, lifecycle timer
// and game tick in turn, so handlers mutate state without locks and every
// broadcast observes a consistent post-mutation snapshot.
package hub

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slithergg/tournament-backend/internal/game"
	"github.com/slithergg/tournament-backend/internal/protocol"
)

type Options struct {
	Log          *zap.SugaredLogger
	TickInterval time.Duration // defaults to 50ms (20 ticks/second)
	Quorum       int           // defaults to game.Quorum
	CleanupDelay time.Duration // defaults to 5 minutes after finish
	Archive      game.Archiver // optional; nil disables the results archive
}

type Hub struct {
	inbox        chan Msg
	tournaments  map[string]*game.Tournament
	tickInterval time.Duration
	quorum       int
	cleanupDelay time.Duration
	archive      game.Archiver
	metrics      *Metrics
	log          *zap.SugaredLogger
	rng          *rand.Rand
	joinSeq      int
	ctx          context.Context
	cancel       context.CancelFunc
}

func New(parent context.Context, opts Options) *Hub {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 50 * time.Millisecond
	}
	if opts.Quorum <= 0 {
		opts.Quorum = game.Quorum
	}
	if opts.CleanupDelay <= 0 {
		opts.CleanupDelay = 5 * time.Minute
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:        make(chan Msg, 256),
		tournaments:  make(map[string]*game.Tournament),
		tickInterval: opts.TickInterval,
		quorum:       opts.Quorum,
		cleanupDelay: opts.CleanupDelay,
		archive:      opts.Archive,
		metrics:      &Metrics{},
		log:          opts.Log,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		ctx:          ctx,
		cancel:       cancel,
	}
	go h.loop()
	return h
}

// Post delivers a message to the hub loop. It never blocks past shutdown.
func (h *Hub) Post(m Msg) {
	select {
	case h.inbox <- m:
	case <-h.ctx.Done():
	}
}

func (h *Hub) Metrics() *Metrics { return h.metrics }

func (h *Hub) loop() {
	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-h.ctx.Done():
			return

		case <-ticker.C:
			h.tick()

		case m := <-h.inbox:
			h.metrics.IncHandled()
			switch msg := m.(type) {
			case Connect:
				h.handleConnect(msg)
			case Join:
				h.handleJoin(msg)
			case Move:
				h.handleMove(msg)
			case Boost:
				h.handleBoost(msg)
			case OrbCollected:
				h.handleOrb(msg)
			case Disconnect:
				h.handleDisconnect(msg)
			case Create:
				t := h.ensure(msg.Cfg)
				msg.Reply <- t.Summary()
			case List:
				msg.Reply <- h.summaries()
			case Start:
				h.startTournament(msg.TournamentID)
			case End:
				h.endTournament(msg.TournamentID)
			case Remove:
				delete(h.tournaments, msg.TournamentID)
			case GetState:
				msg.Reply <- h.view(msg.TournamentID)
			case Shutdown:
				h.cancel()
				return
			}
		}
	}
}

// ensure returns the tournament for cfg.ID, creating it when absent.
// Creation is idempotent: an existing id wins over any new config, which
// closes the overwrite race between explicit create and join auto-create.
func (h *Hub) ensure(cfg game.Config) *game.Tournament {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if t, ok := h.tournaments[cfg.ID]; ok {
		return t
	}
	t := game.New(cfg, time.Now())
	h.tournaments[t.ID] = t
	h.log.Infow("tournament created", "id", t.ID, "name", t.Name, "maxPlayers", t.MaxPlayers)
	return t
}

func (h *Hub) handleConnect(m Connect) {
	t, ok := h.tournaments[m.TournamentID]
	if !ok {
		return
	}
	b, err := protocol.Encode(protocol.ServerMessage{
		Type: protocol.TypeTournamentState,
		Data: protocol.TournamentStateData{
			TournamentID: t.ID,
			Players:      t.PlayerStates(),
			Status:       t.Status,
			StartTime:    t.StartTime,
		},
	})
	if err != nil {
		return
	}
	if !m.Sess.TrySend(b) {
		h.metrics.AddSkipped(1)
	}
}

func (h *Hub) handleJoin(m Join) {
	t := h.ensure(game.Config{ID: m.TournamentID, Name: "Tournament " + m.TournamentID})
	if t.Full() {
		h.metrics.IncRejected()
		b, err := protocol.Encode(protocol.ServerMessage{
			Type:    protocol.TypeError,
			Message: "Tournament is full",
		})
		if err == nil && !m.Sess.TrySend(b) {
			h.metrics.AddSkipped(1)
		}
		return
	}

	x, y := game.SpawnPosition(h.rng)
	h.joinSeq++
	p := &game.Player{
		ID:           m.PlayerID,
		Name:         m.Name,
		Conn:         m.Sess,
		X:            x,
		Y:            y,
		Alive:        true,
		TournamentID: t.ID,
		JoinOrder:    h.joinSeq,
	}
	t.Players[p.ID] = p
	h.metrics.IncAccepted()

	h.broadcast(t, protocol.ServerMessage{
		Type:     protocol.TypePlayerJoin,
		PlayerID: p.ID,
		Data:     protocol.PlayerJoinData{PlayerID: p.ID, Player: p.State()},
	}, "")
	h.log.Infow("player joined", "player", p.Name, "tournament", t.ID,
		"players", len(t.Players), "maxPlayers", t.MaxPlayers)

	if t.Status == game.StatusWaiting && len(t.Players) >= h.quorum {
		h.startTournament(t.ID)
	}
}

// findPlayer scans all tournaments; the single-membership invariant makes
// the first match the only one.
func (h *Hub) findPlayer(playerID string) (*game.Tournament, *game.Player) {
	for _, t := range h.tournaments {
		if p, ok := t.Players[playerID]; ok {
			return t, p
		}
	}
	return nil, nil
}

func (h *Hub) handleMove(m Move) {
	t, p := h.findPlayer(m.PlayerID)
	if p == nil {
		return
	}
	p.X = m.X
	p.Y = m.Y
	p.Direction = m.Direction
	h.broadcast(t, protocol.ServerMessage{
		Type:     protocol.TypePlayerMove,
		PlayerID: p.ID,
		Data:     protocol.MoveData{X: p.X, Y: p.Y, Direction: p.Direction},
	}, p.ID)
}

func (h *Hub) handleBoost(m Boost) {
	_, p := h.findPlayer(m.PlayerID)
	if p == nil {
		return
	}
	// Boost movement is client predicted; the server only records intent.
	p.Boosting = m.Boosting
	h.log.Debugw("player boost", "player", p.ID, "boosting", p.Boosting)
}

func (h *Hub) handleOrb(m OrbCollected) {
	t, p := h.findPlayer(m.PlayerID)
	if p == nil {
		return
	}
	// Orb validity is trusted from the client; see the trust boundary notes.
	p.Score += game.OrbScore
	h.broadcast(t, protocol.ServerMessage{
		Type:     protocol.TypeOrbCollected,
		PlayerID: p.ID,
		Data:     protocol.OrbCollectedData{OrbID: m.OrbID, NewScore: p.Score},
	}, "")
}

func (h *Hub) handleDisconnect(m Disconnect) {
	t, ok := h.tournaments[m.TournamentID]
	if !ok {
		return
	}
	for id, p := range t.Players {
		if p.Conn == m.Sess {
			delete(t.Players, id)
			h.broadcast(t, protocol.ServerMessage{
				Type:     protocol.TypePlayerLeft,
				PlayerID: id,
				Data:     struct{}{},
			}, "")
			h.log.Infow("player left", "player", p.Name, "tournament", t.ID)
			return
		}
	}
}

func (h *Hub) startTournament(id string) {
	t, ok := h.tournaments[id]
	if !ok || t.Status != game.StatusWaiting {
		return
	}
	t.Status = game.StatusActive
	t.StartTime = time.Now().UnixMilli()
	h.log.Infow("tournament starting", "id", t.ID, "name", t.Name, "players", len(t.Players))

	h.broadcast(t, protocol.ServerMessage{
		Type: protocol.TypeTournamentStart,
		Data: protocol.TournamentStartData{StartTime: t.StartTime},
	}, "")

	time.AfterFunc(time.Duration(t.Duration)*time.Minute, func() {
		h.Post(End{TournamentID: id})
	})
}

func (h *Hub) endTournament(id string) {
	t, ok := h.tournaments[id]
	if !ok || t.Status != game.StatusActive {
		// Already finished or removed; a stale timer fire lands here.
		return
	}
	t.Status = game.StatusFinished

	winners := game.RankWinners(t.Players)
	prizes := game.PrizeSplit(t.PrizePool, len(winners))

	summaries := make([]protocol.WinnerSummary, 0, len(winners))
	for _, w := range winners {
		summaries = append(summaries, protocol.WinnerSummary{ID: w.ID, Name: w.Name, Score: w.Score})
	}
	h.broadcast(t, protocol.ServerMessage{
		Type: protocol.TypeTournamentEnd,
		Data: protocol.TournamentEndData{Winners: summaries, PrizeDistribution: prizes},
	}, "")
	h.log.Infow("tournament ended", "id", t.ID, "name", t.Name, "winners", len(winners))

	if h.archive != nil {
		result := game.BuildResult(t, winners, prizes, time.Now())
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.archive.SaveResult(ctx, result); err != nil {
				h.log.Warnw("archive save failed", "tournament", result.TournamentID, "err", err)
			}
		}()
	}

	time.AfterFunc(h.cleanupDelay, func() {
		h.Post(Remove{TournamentID: id})
	})
}

// tick snapshots every active tournament and fans the state out to its
// sessions. Waiting and finished tournaments cost nothing here.
func (h *Hub) tick() {
	h.metrics.IncTick()
	now := time.Now().UnixMilli()
	for _, t := range h.tournaments {
		if t.Status != game.StatusActive {
			continue
		}
		h.broadcast(t, protocol.ServerMessage{
			Type: protocol.TypeGameUpdate,
			Data: protocol.GameUpdateData{Players: t.PlayerStates(), Timestamp: now},
		}, "")
	}
}

// broadcast encodes once and delivers to every session in the tournament,
// skipping excludePlayerID and any peer that is closed or backed up. Send
// failures are never fatal and never retried.
func (h *Hub) broadcast(t *game.Tournament, msg protocol.ServerMessage, excludePlayerID string) {
	b, err := protocol.Encode(msg)
	if err != nil {
		h.log.Warnw("broadcast encode failed", "type", msg.Type, "err", err)
		return
	}
	var skipped int64
	for id, p := range t.Players {
		if id == excludePlayerID || p.Conn == nil {
			continue
		}
		if !p.Conn.TrySend(b) {
			skipped++
		}
	}
	h.metrics.IncBroadcast()
	if skipped > 0 {
		h.metrics.AddSkipped(skipped)
	}
}

func (h *Hub) summaries() []game.Summary {
	out := make([]game.Summary, 0, len(h.tournaments))
	for _, t := range h.tournaments {
		out = append(out, t.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (h *Hub) view(id string) View {
	t, ok := h.tournaments[id]
	if !ok {
		return View{}
	}
	scores := make(map[string]int, len(t.Players))
	for pid, p := range t.Players {
		scores[pid] = p.Score
	}
	return View{
		Exists:     true,
		Status:     t.Status,
		NumPlayers: len(t.Players),
		StartTime:  t.StartTime,
		Scores:     scores,
	}
}
