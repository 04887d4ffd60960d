package simulation

import (
	"fmt"
	"time"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/obligation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// SnapshotVersion is bumped whenever the snapshot layout changes
const SnapshotVersion = 2

// Snapshot is the full serializable session. Every counter is stored
// verbatim; nothing derived is persisted.
type Snapshot struct {
	Version     int              `json:"version"`
	ID          string           `json:"id"`
	Turn        int              `json:"turn"`
	Current     string           `json:"current"`
	SavedAt     time.Time        `json:"saved_at"`
	Random      []byte           `json:"random,omitempty"`
	EventSeq    uint64           `json:"event_seq"`
	Locations   []location.State `json:"locations"`
	Ship        ledger.State     `json:"ship"`
	Profile     player.Profile   `json:"profile"`
	Obligations obligation.State `json:"obligations"`
}

type statefulRandom interface {
	State() ([]byte, error)
	Restore(state []byte) error
}

// Snapshot captures the session, including the random generator position
// when the source supports it
func (g *Game) Snapshot() (Snapshot, error) {
	snap := Snapshot{
		Version:     SnapshotVersion,
		ID:          g.id,
		Turn:        g.turn,
		Current:     g.current,
		SavedAt:     g.clock.Now(),
		EventSeq:    g.emitter.Seq(),
		Ship:        g.ship.Snapshot(),
		Profile:     *g.profile.Clone(),
		Obligations: g.engine.Snapshot(),
	}
	for _, name := range g.order {
		snap.Locations = append(snap.Locations, g.locations[name].Snapshot())
	}
	if sr, ok := g.rng.(statefulRandom); ok {
		state, err := sr.State()
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to capture random state: %w", err)
		}
		snap.Random = state
	}
	return snap, nil
}

// Restore resumes a session from a snapshot. random must be a fresh source;
// its position is restored from the snapshot when possible.
func Restore(cfg Config, snap Snapshot, random shared.RandomSource, clock shared.Clock, metrics common.MetricsRecorder) (*Game, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if len(snap.Random) > 0 {
		if sr, ok := random.(statefulRandom); ok {
			if err := sr.Restore(snap.Random); err != nil {
				return nil, fmt.Errorf("failed to restore random state: %w", err)
			}
		}
	}

	locations := make([]*location.Location, 0, len(snap.Locations))
	for _, ls := range snap.Locations {
		loc, err := location.RestoreLocation(ls)
		if err != nil {
			return nil, fmt.Errorf("location %s: %w", ls.Name, err)
		}
		locations = append(locations, loc)
	}
	ship, err := ledger.RestoreShip(snap.Ship, clock)
	if err != nil {
		return nil, fmt.Errorf("ship: %w", err)
	}
	profile := snap.Profile.Clone()

	g, err := newGame(cfg, Setup{
		ID:        snap.ID,
		Turn:      snap.Turn,
		Locations: locations,
		Current:   snap.Current,
		Ship:      ship,
		Profile:   profile,
		Random:    random,
		Clock:     clock,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, err
	}
	g.emitter.Reset(snap.EventSeq)
	g.engine, err = obligation.RestoreEngine(snap.Obligations, cfg.Obligations, g.rng, g)
	if err != nil {
		return nil, fmt.Errorf("obligations: %w", err)
	}
	return g, nil
}
