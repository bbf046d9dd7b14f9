package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultHashingDimensions matches the width of common small sentence models.
const DefaultHashingDimensions = 384

// HashingProvider is an offline provider that maps tokens into a fixed number
// of buckets and L2-normalizes the counts. Identical text always yields the
// identical vector.
type HashingProvider struct {
	dimensions int
}

func NewHashingProvider(dimensions int) *HashingProvider {
	if dimensions <= 0 {
		dimensions = DefaultHashingDimensions
	}
	return &HashingProvider{dimensions: dimensions}
}

// Dimensions returns the vector length produced by the provider.
func (p *HashingProvider) Dimensions() int { return p.dimensions }

func (p *HashingProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = p.embed(text)
	}
	return out, nil
}

func (p *HashingProvider) embed(text string) []float32 {
	vec := make([]float32, p.dimensions)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum32()
		sign := float32(1)
		if sum&1 == 1 {
			sign = -1
		}
		vec[int(sum>>1)%p.dimensions] += sign
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
