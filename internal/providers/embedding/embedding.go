package embedding

import (
	"context"
	"math"
)

// Provider computes fixed-dimension unit vectors for texts. Index build and
// query embedding must go through the same Provider instance; a mismatch is
// a correctness bug the system cannot detect at runtime.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// NormalizeL2 scales v to unit length in place and returns it. Zero vectors
// are left untouched.
func NormalizeL2(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
	return v
}
