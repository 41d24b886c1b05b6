package analysis

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many candidates are scored between context checks.
const cancelCheckInterval = 256

// Score counts the pointer occurrences that equal a string offset plus base.
// A word referenced n times contributes n. Offsets that would overflow 32 bits
// once base is added are skipped.
func Score(pt *PointerTable, st *StringTable, base uint32) uint64 {
	return score(pt, st.Offsets(), base)
}

func score(pt *PointerTable, offsets []uint32, base uint32) uint64 {
	limit := math.MaxUint32 - base
	var matches uint64
	for _, off := range offsets {
		if off > limit {
			// offsets ascend, so every later one overflows too
			break
		}
		matches += uint64(pt.Count(off + base))
	}
	return matches
}

// Search tests every base address from 0 up to cfg.SearchCeiling in steps of
// cfg.SearchStep and returns the cfg.TopK best candidates, highest score first.
func Search(ctx context.Context, pt *PointerTable, st *StringTable, cfg Config) ([]Candidate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	total := cfg.Candidates()
	workers := uint64(max(cfg.Workers, 1))
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		top := NewTopK(cfg.TopK)
		if err := searchRange(ctx, pt, st.Offsets(), cfg, 0, total, top); err != nil {
			return nil, err
		}
		return top.Sorted(), nil
	}

	tops := make([]*TopK, workers)
	chunk := (total + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, total)
		tops[w] = NewTopK(cfg.TopK)
		top := tops[w]
		g.Go(func() error {
			return searchRange(gctx, pt, st.Offsets(), cfg, lo, hi, top)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewTopK(cfg.TopK)
	for _, top := range tops {
		merged.Merge(top)
	}
	return merged.Sorted(), nil
}

// searchRange scores candidates with index in [lo, hi).
func searchRange(ctx context.Context, pt *PointerTable, offsets []uint32, cfg Config, lo, hi uint64, top *TopK) error {
	step := uint64(cfg.SearchStep)
	for i := lo; i < hi; i++ {
		if (i-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		base := uint32(i * step)
		top.Offer(Candidate{Address: base, Matches: score(pt, offsets, base)})
	}
	return nil
}
