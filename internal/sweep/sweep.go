// Package sweep exhaustively checks the Montgomery arithmetic over ranges of
// inputs, splitting each range across goroutines.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/KarpelesLab/montgomery"
)

// Operation names.
const (
	OpReduce    = "reduce"
	OpMul       = "mul"
	OpRoundTrip = "roundtrip"
)

// Workers poll for cancellation once per this many inputs.
const pollInterval = 1 << 16

// ErrRange is returned when the requested range is empty or leaves the
// operation's input type.
var ErrRange = errors.New("range outside the operation's domain")

// Config selects the half-open input range [Lo, Hi) of a sweep.
type Config struct {
	Lo, Hi int64
	// Workers defaults to GOMAXPROCS when zero or negative.
	Workers int
	// Log may be nil.
	Log *zerolog.Logger
}

// Report summarizes a successful sweep.
type Report struct {
	Op      string
	Lo, Hi  int64
	Checked uint64
	Elapsed time.Duration
}

// Violation describes an input for which a property does not hold.
type Violation struct {
	Op   string
	A, B int64
	Got  int64
	Want string
}

func (v *Violation) Error() string {
	if v.Op == OpMul {
		return fmt.Sprintf("%s(%d, %d) = %d, want %s", v.Op, v.A, v.B, v.Got, v.Want)
	}
	return fmt.Sprintf("%s(%d) = %d, want %s", v.Op, v.A, v.Got, v.Want)
}

// DefaultRange returns the full supported input range of op.
func DefaultRange(op string) (lo, hi int64, err error) {
	switch op {
	case OpReduce:
		return -montgomery.MaxInput, montgomery.MaxInput, nil
	case OpMul:
		return 0, montgomery.Q, nil
	case OpRoundTrip:
		return math.MinInt16, math.MaxInt16 + 1, nil
	}
	return 0, 0, errors.Errorf("unknown operation %q", op)
}

func modQ(a int64) int64 {
	r := a % montgomery.Q
	if r < 0 {
		r += montgomery.Q
	}
	return r
}

// Reduce checks (Reduce(a) * R) mod q == a mod q for every a in [Lo, Hi), and
// that the result lies in (-q, q) whenever |a| < MaxInput.
func Reduce(ctx context.Context, cfg Config) (Report, error) {
	if err := checkBounds(cfg, math.MinInt32, math.MaxInt32+1); err != nil {
		return Report{}, err
	}
	return run(ctx, OpReduce, cfg, 1, func(a int64) error {
		r := int64(montgomery.Reduce(int32(a)))
		if modQ(r*montgomery.R) != modQ(a) {
			return &Violation{Op: OpReduce, A: a, Got: r, Want: fmt.Sprintf("r*R = %d mod q", modQ(a))}
		}
		if a > -montgomery.MaxInput && a < montgomery.MaxInput && (r <= -montgomery.Q || r >= montgomery.Q) {
			return &Violation{Op: OpReduce, A: a, Got: r, Want: "a value in (-q, q)"}
		}
		return nil
	})
}

// Mul checks Mul(a, b) == a*b mod q for every a in [Lo, Hi) and every b in
// [0, q).
func Mul(ctx context.Context, cfg Config) (Report, error) {
	if err := checkBounds(cfg, math.MinInt16, math.MaxInt16+1); err != nil {
		return Report{}, err
	}
	return run(ctx, OpMul, cfg, montgomery.Q, func(a int64) error {
		for b := int64(0); b < montgomery.Q; b++ {
			got := int64(montgomery.Mul(int16(a), int16(b)))
			if want := modQ(a * b); got != want {
				return &Violation{Op: OpMul, A: a, B: b, Got: got, Want: fmt.Sprint(want)}
			}
		}
		return nil
	})
}

// RoundTrip checks FromMontgomery(ToMontgomery(a)) == a mod q for every a in
// [Lo, Hi), and that converting the result again gives the same value.
func RoundTrip(ctx context.Context, cfg Config) (Report, error) {
	if err := checkBounds(cfg, math.MinInt16, math.MaxInt16+1); err != nil {
		return Report{}, err
	}
	return run(ctx, OpRoundTrip, cfg, 1, func(a int64) error {
		x := montgomery.ToMontgomery(int16(a))
		if modQ(int64(x)) != modQ(a*montgomery.R) {
			return &Violation{Op: "toMontgomery", A: a, Got: int64(x), Want: fmt.Sprintf("%d mod q", modQ(a*montgomery.R))}
		}
		once := montgomery.FromMontgomery(x)
		if int64(once) != modQ(a) {
			return &Violation{Op: OpRoundTrip, A: a, Got: int64(once), Want: fmt.Sprint(modQ(a))}
		}
		if twice := montgomery.FromMontgomery(montgomery.ToMontgomery(once)); twice != once {
			return &Violation{Op: OpRoundTrip, A: int64(once), Got: int64(twice), Want: fmt.Sprint(once)}
		}
		return nil
	})
}

func checkBounds(cfg Config, lower, upper int64) error {
	if cfg.Lo >= cfg.Hi || cfg.Lo < lower || cfg.Hi > upper {
		return errors.Wrapf(ErrRange, "[%d, %d) not within [%d, %d)", cfg.Lo, cfg.Hi, lower, upper)
	}
	return nil
}

type shard struct {
	lo, hi int64
}

func split(lo, hi int64, n int) []shard {
	size := (hi - lo + int64(n) - 1) / int64(n)
	shards := make([]shard, 0, n)
	for start := lo; start < hi; start += size {
		end := start + size
		if end > hi {
			end = hi
		}
		shards = append(shards, shard{start, end})
	}
	return shards
}

func run(ctx context.Context, op string, cfg Config, perInput uint64, check func(a int64) error) (Report, error) {
	log := cfg.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if span := cfg.Hi - cfg.Lo; int64(workers) > span {
		workers = int(span)
	}

	start := time.Now()
	var checked atomic.Uint64
	shards := split(cfg.Lo, cfg.Hi, workers)
	// Each worker writes only its own slot; the log is written after Wait.
	done := make([]time.Duration, len(shards))
	finished := make([]bool, len(shards))
	group, ctx := errgroup.WithContext(ctx)
	for i, s := range shards {
		group.Go(func() error {
			shardStart := time.Now()
			for a := s.lo; a < s.hi; a++ {
				if (a-s.lo)%pollInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := check(a); err != nil {
					return err
				}
			}
			checked.Add(uint64(s.hi-s.lo) * perInput)
			done[i] = time.Since(shardStart)
			finished[i] = true
			return nil
		})
	}

	err := group.Wait()
	for i, s := range shards {
		if finished[i] {
			log.Debug().Str("op", op).Int("shard", i).Int64("lo", s.lo).Int64("hi", s.hi).
				Dur("elapsed", done[i]).Msg("shard done")
		}
	}
	report := Report{Op: op, Lo: cfg.Lo, Hi: cfg.Hi, Checked: checked.Load(), Elapsed: time.Since(start)}
	if err != nil {
		return report, errors.Wrapf(err, "%s sweep over [%d, %d)", op, cfg.Lo, cfg.Hi)
	}
	log.Info().Str("op", op).Int64("lo", cfg.Lo).Int64("hi", cfg.Hi).
		Uint64("checked", report.Checked).Dur("elapsed", report.Elapsed).Msg("sweep passed")
	return report, nil
}
