package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"softmax-geometry/internal/model"
)

const (
	defaultSeed            = 42
	defaultSamplesPerClass = 1000
)

var (
	// ErrNoClusters indicates no cluster centres were configured.
	ErrNoClusters = errors.New("dataset: at least one cluster centre is required")
	// ErrSamples indicates a non-positive per-class sample count.
	ErrSamples = errors.New("dataset: samples per class must be > 0")
	// ErrSigma indicates a non-positive standard deviation.
	ErrSigma = errors.New("dataset: sigma must be > 0")
)

// ClusterOptions configures the Gaussian cluster generator.
type ClusterOptions struct {
	Seed            int64
	SamplesPerClass int
	Centers         [][2]float64
	Sigma           float64
}

// DefaultCenters are the centres of classes 0, 1 and 2.
func DefaultCenters() [][2]float64 {
	return [][2]float64{{0, 0}, {4, 4}, {4, 0}}
}

// DefaultClusterOptions returns the options used by the rendered figure.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		Seed:            defaultSeed,
		SamplesPerClass: defaultSamplesPerClass,
		Centers:         DefaultCenters(),
		Sigma:           1,
	}
}

// Generate draws SamplesPerClass isotropic Gaussian points around every
// centre. Points are laid out in class order and class k carries label k.
// The same options always yield the same batch.
func Generate(opts ClusterOptions) (model.Batch, error) {
	if len(opts.Centers) == 0 {
		return model.Batch{}, ErrNoClusters
	}
	if opts.SamplesPerClass <= 0 {
		return model.Batch{}, fmt.Errorf("%w (got %d)", ErrSamples, opts.SamplesPerClass)
	}
	if opts.Sigma <= 0 {
		return model.Batch{}, fmt.Errorf("%w (got %g)", ErrSigma, opts.Sigma)
	}
	if opts.Seed == 0 {
		opts.Seed = defaultSeed
	}

	noise := distuv.Normal{
		Mu:    0,
		Sigma: opts.Sigma,
		Src:   rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)^0x9e3779b97f4a7c15),
	}

	total := opts.SamplesPerClass * len(opts.Centers)
	data := make([]float64, 0, total*2)
	labels := make([]int, 0, total)
	for label, center := range opts.Centers {
		for i := 0; i < opts.SamplesPerClass; i++ {
			data = append(data, center[0]+noise.Rand(), center[1]+noise.Rand())
			labels = append(labels, label)
		}
	}
	return model.Batch{Points: mat.NewDense(total, 2, data), Labels: labels}, nil
}
