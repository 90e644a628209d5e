// Command scfbench drives a scalable cuckoo filter with a synthetic
// workload and logs its final item count, capacity, storage bits and
// number of internal filters. It exists
// to exercise the library end to end, not as a supported CLI surface.
package main

import (
	"fmt"
	"math/rand"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"scf"
)

type scfbenchArgs struct {
	Capacity uint64  `arg:"--capacity" default:"10000"`
	Fpp      float64 `arg:"--fpp" default:"0.001"`
	Inserts  uint64  `arg:"--inserts" default:"100000"`
	Seed     int64   `arg:"--seed" default:"1"`
}

func main() {
	var flags scfbenchArgs
	arg.MustParse(&flags)

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("scfbench flags", zap.Any("flags", flags))

	opts := scf.DefaultOptions().WithLogger(logger)
	f, err := scf.New(flags.Capacity, flags.Fpp, opts)
	if err != nil {
		logger.Fatal("failed to construct filter", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(flags.Seed))
	for i := uint64(0); i < flags.Inserts; i++ {
		f.Insert([]byte(fmt.Sprintf("%d", rng.Uint64())))
	}

	logger.Info("workload complete",
		zap.Uint64("len", f.Len()),
		zap.Uint64("capacity", f.Capacity()),
		zap.Uint64("bits", f.Bits()),
		zap.Int("filter_count", len(f.Filters())),
	)
}
