package challenge

import (
	"context"

	"github.com/pratama/phoneverify/services/verification"
)

// StaticProvider hands out a fixed proof and accepts it back. For trusted
// server-to-server deployments where no anti-abuse check is wanted.
type StaticProvider struct {
	proof string
}

// NewStaticProvider creates a static challenge provider
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{proof: "trusted"}
}

// Issue returns the fixed proof
func (p *StaticProvider) Issue(ctx context.Context) (string, error) {
	return p.proof, nil
}

// Invalidate is a no-op
func (p *StaticProvider) Invalidate(ctx context.Context, proof string) error {
	return nil
}

// Validate accepts the fixed proof only
func (p *StaticProvider) Validate(ctx context.Context, proof string) error {
	if proof != p.proof {
		return verification.ErrInvalidChallenge
	}
	return nil
}
