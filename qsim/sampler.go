package qsim

import (
	"math/rand/v2"
	"sync"
)

// minShotsPerWorker keeps tiny jobs on the calling goroutine.
const minShotsPerWorker = 256

// sampleShots draws shots indices from cdf and returns per-index counts.
//
// With more than one worker the shots are split into contiguous chunks. Each
// worker owns a random stream seeded from rng and a private histogram; the
// histograms are summed once every worker has finished, so no counter is
// shared between goroutines.
func sampleShots(cdf []float64, shots, workers int, rng *rand.Rand) []int {
	workers = min(workers, shots/minShotsPerWorker)
	if workers < 2 {
		return sampleChunk(cdf, shots, rng)
	}

	streams := make([]*rand.Rand, workers)
	for i := range streams {
		streams[i] = rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
	}

	partial := make([][]int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		n := shots / workers
		if w < shots%workers {
			n++
		}
		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()
			partial[w] = sampleChunk(cdf, n, streams[w])
		}(w, n)
	}
	wg.Wait()

	hist := make([]int, len(cdf))
	for _, p := range partial {
		for i, n := range p {
			hist[i] += n
		}
	}
	return hist
}

func sampleChunk(cdf []float64, shots int, src Source) []int {
	hist := make([]int, len(cdf))
	for i := 0; i < shots; i++ {
		hist[sampleIndex(cdf, src.Float64())]++
	}
	return hist
}
