package sim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/engine"
	"github.com/vovakirdan/runes/internal/levels"
	"github.com/vovakirdan/runes/internal/multiplayer"
)

// Options configures a headless run.
type Options struct {
	Game       config.GameConfig
	Level      levels.Level
	Seed       int64
	FrameRate  int     // frames per simulated second
	MaxSeconds float64 // simulated time limit, required for endless stages
	Pilot      *Pilot  // nil uses NewPilot(Seed)

	// MirrorEvery exports the field to a replica every n frames through a
	// multiplayer link. Zero disables mirroring.
	MirrorEvery int

	Logger *log.Logger
}

// Report summarises a finished run.
type Report struct {
	Stage    string
	Over     bool
	Won      bool
	Score    int
	Kills    int
	Health   int
	Frames   int
	Elapsed  float64
	Strokes  int
	Misses   int
	Snapshot uint64

	Deltas        int // deltas applied to the replica
	ReplicaScore  int // score the replica last heard from the field
	ReplicaAlive  int // enemies alive on the replica at the end
	FieldAlive    int // enemies alive on the field at the end
	ReplicaFaults int // deltas the replica could not fully apply
}

// ErrNoLimit is returned for endless runs without a time limit.
var ErrNoLimit = errors.New("sim: endless stage needs a time limit")

// Run plays the stage until it ends, the time limit passes or ctx is done.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	if opts.Level.Endless() && opts.MaxSeconds <= 0 {
		return Report{}, ErrNoLimit
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Pilot == nil {
		opts.Pilot = NewPilot(opts.Seed)
	}

	field, err := engine.New(engine.Options{
		Config: opts.Game,
		Level:  opts.Level,
		Logger: opts.Logger.WithPrefix("field"),
		Seed:   opts.Seed,
	})
	if err != nil {
		return Report{}, fmt.Errorf("sim: %w", err)
	}

	var (
		local   *multiplayer.Mirror
		link    *multiplayer.Link
		replica *replicaSide
	)
	if opts.MirrorEvery > 0 {
		local = multiplayer.NewMirror(field, multiplayer.WithLogger(opts.Logger))
		link = multiplayer.NewLink(64)
		replica, err = newReplica(opts)
		if err != nil {
			return Report{}, err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	var rep Report
	g.Go(func() error {
		if link != nil {
			defer link.Close()
		}
		dt := 1 / float64(opts.FrameRate)
		for !field.GameOver() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if opts.MaxSeconds > 0 && field.State().Elapsed >= opts.MaxSeconds {
				break
			}
			field.Update(dt)
			opts.Pilot.Step(field, dt)
			rep.Frames++
			if local != nil && rep.Frames%opts.MirrorEvery == 0 {
				link.Send(local.Export(rep.Frames%(opts.MirrorEvery*10) == 0))
			}
		}
		if local != nil {
			link.Send(local.Export(true))
		}
		return nil
	})
	if replica != nil {
		g.Go(func() error {
			return replica.follow(link)
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	st := field.State()
	rep.Stage = field.Level().StageID()
	rep.Over, rep.Won = st.GameOver, st.Won
	rep.Score, rep.Kills, rep.Health = st.Score, st.Kills, st.Health
	rep.Elapsed = st.Elapsed
	rep.Strokes, rep.Misses = opts.Pilot.Strokes(), opts.Pilot.Misses()
	rep.Snapshot = field.Snapshot()
	rep.FieldAlive = len(field.Enemies())
	if replica != nil {
		rep.Deltas = replica.applied
		rep.ReplicaFaults = replica.faults
		rep.ReplicaScore = replica.mirror.Peer().Score
		rep.ReplicaAlive = len(replica.field.Enemies())
	}
	opts.Logger.Info("run finished", "stage", rep.Stage, "won", rep.Won, "score", rep.Score, "frames", rep.Frames)
	return rep, nil
}

// replicaSide is a field driven only by deltas from a link.
type replicaSide struct {
	field   *engine.Engine
	mirror  *multiplayer.Mirror
	logger  *log.Logger
	applied int
	faults  int
}

func newReplica(opts Options) (*replicaSide, error) {
	logger := opts.Logger.WithPrefix("replica")
	field, err := engine.New(engine.Options{
		Config: opts.Game,
		Level:  opts.Level,
		Logger: logger,
		Seed:   opts.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: replica: %w", err)
	}
	return &replicaSide{
		field:  field,
		mirror: multiplayer.NewMirror(field, multiplayer.WithLogger(logger)),
		logger: logger,
	}, nil
}

// follow applies deltas until the link closes, then drains what is left.
func (r *replicaSide) follow(link *multiplayer.Link) error {
	for {
		select {
		case d := <-link.Deltas():
			r.apply(d)
		case <-link.Done():
			for _, d := range link.Drain() {
				r.apply(d)
			}
			return nil
		}
	}
}

func (r *replicaSide) apply(d multiplayer.Delta) {
	if err := r.mirror.Apply(d); err != nil {
		r.faults++
		r.logger.Warn("delta not fully applied", "err", err)
	}
	r.field.Settle()
	r.applied++
}
