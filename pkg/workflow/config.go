package workflow

import (
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/pkg/pipeline"

	"github.com/cenkalti/backoff/v5"
)

// Defaults fill any option a WorkflowInput leaves unset.
type Defaults struct {
	IncludeSimilarContracts bool
	ValidateResults         bool
	MaxRetries              int
}

type Config struct {
	Defaults Defaults
	// NewBackOff paces retries. It is called once per Execute.
	NewBackOff func() backoff.BackOff
	Now        func() time.Time
}

func DefaultConfig() Config {
	return Config{
		Defaults: Defaults{
			IncludeSimilarContracts: true,
			ValidateResults:         true,
			MaxRetries:              3,
		},
		NewBackOff: func() backoff.BackOff {
			return ExponentialBackOff(500*time.Millisecond, 10*time.Second)
		},
		Now: time.Now,
	}
}

// ExponentialBackOff is the retry pacing used outside tests.
func ExponentialBackOff(initial, max time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if initial > 0 {
		b.InitialInterval = initial
	}
	if max > 0 {
		b.MaxInterval = max
	}
	return b
}

type resolvedOptions struct {
	pipeline.Options
	MaxRetries int
}

func (c Config) resolve(o dto.WorkflowOptions) resolvedOptions {
	r := resolvedOptions{
		Options: pipeline.Options{
			IncludeSimilarContracts: c.Defaults.IncludeSimilarContracts,
			ValidateResults:         c.Defaults.ValidateResults,
		},
		MaxRetries: c.Defaults.MaxRetries,
	}
	if o.IncludeSimilarContracts != nil {
		r.IncludeSimilarContracts = *o.IncludeSimilarContracts
	}
	if o.ValidateResults != nil {
		r.ValidateResults = *o.ValidateResults
	}
	if o.MaxRetries != nil {
		r.MaxRetries = *o.MaxRetries
	}
	if r.MaxRetries < 0 {
		r.MaxRetries = 0
	}
	return r
}
