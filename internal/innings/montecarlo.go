package innings

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

var ErrNoTrials = errors.New("trials must be > 0")

// OddsParams describes a batch of independent simulated chases.
type OddsParams struct {
	Config  Config
	Lineup  []string      // batting order, ids resolved through Source
	Source  ProfileSource // shared read-only by every trial
	Trials  int
	Seed    uint64 // trial i draws from PCG(Seed, i+1)
	Workers int    // <= 0 means GOMAXPROCS
}

// Stats summarizes integer samples.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples for callers that want histograms
	Samples []int `json:"-"`
}

// Odds is the outcome distribution over all trials.
type Odds struct {
	Trials   int     `json:"trials"`
	Won      int     `json:"won"`
	Tied     int     `json:"tied"`
	Lost     int     `json:"lost"`
	AllOut   int     `json:"all_out"`
	WinRate  float64 `json:"win_rate"`
	TieRate  float64 `json:"tie_rate"`
	LossRate float64 `json:"loss_rate"`
	Score    Stats   `json:"score"`
	Wickets  Stats   `json:"wickets"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	sorted := append([]int(nil), xs...)
	sort.Ints(sorted)
	percentile := func(p float64) float64 {
		if n == 1 {
			return float64(sorted[0])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(sorted[n-1])
		}
		return float64(sorted[i])*(1-f) + float64(sorted[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne plays one chase on its own engine, lineup and players.
func simulateOne(p OddsParams, trial int) (Result, error) {
	lineup := NewLineup(p.Source)
	for _, id := range p.Lineup {
		lineup.Enqueue(id)
	}
	rng := &seededRNG{r: rand.New(rand.NewPCG(p.Seed, uint64(trial)+1))}
	e, err := NewEngine(p.Config, lineup, WithRandomSource(rng))
	if err != nil {
		return Result{}, err
	}
	return e.Run()
}

// RunMonteCarlo repeats the chase p.Trials times across p.Workers goroutines.
// Results depend only on p.Seed, not on the worker count.
func RunMonteCarlo(ctx context.Context, p OddsParams) (Odds, error) {
	if p.Trials <= 0 {
		return Odds{}, ErrNoTrials
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, p.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p.Trials; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := simulateOne(p, i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Odds{}, err
	}
	if err := ctx.Err(); err != nil {
		return Odds{}, err
	}

	odds := Odds{Trials: p.Trials}
	scores := make([]int, p.Trials)
	wickets := make([]int, p.Trials)
	for i, r := range results {
		scores[i] = r.Score
		wickets[i] = r.Wickets
		switch r.State {
		case StateWon:
			odds.Won++
		case StateTied:
			odds.Tied++
		case StateAllOut:
			odds.AllOut++
			odds.Lost++
		default:
			odds.Lost++
		}
	}
	n := float64(p.Trials)
	odds.WinRate = float64(odds.Won) / n
	odds.TieRate = float64(odds.Tied) / n
	odds.LossRate = float64(odds.Lost) / n
	odds.Score = calcStats(scores)
	odds.Wickets = calcStats(wickets)
	return odds, nil
}
