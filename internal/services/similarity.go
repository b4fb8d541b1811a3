package services

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
)

// SimilarityService maps two text blobs to a 0..100 semantic compatibility
// score via embedding cosine similarity.
type SimilarityService interface {
	SemanticScore(ctx context.Context, textA, textB string) (int, error)
}

type similarityService struct {
	log    *logger.Logger
	client EmbeddingClient
	cache  *redis.Client
	ttl    time.Duration
}

// NewSimilarityService builds the scorer. cache may be nil; embeddings are
// then fetched from the provider on every call.
func NewSimilarityService(log *logger.Logger, client EmbeddingClient, cache *redis.Client, cacheTTL time.Duration) SimilarityService {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &similarityService{
		log:    log.With("service", "SimilarityService"),
		client: client,
		cache:  cache,
		ttl:    cacheTTL,
	}
}

// SemanticScore fetches both embeddings concurrently, then combines:
// L2-normalize, cosine, rescale [-1,1] -> [0,100]. Empty text on either side
// short-circuits that side to a nil embedding and the score to 0 without a
// provider round trip.
func (s *similarityService) SemanticScore(ctx context.Context, textA, textB string) (int, error) {
	var embA, embB []float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vec, err := s.embed(gctx, textA)
		if err != nil {
			return err
		}
		embA = vec
		return nil
	})
	g.Go(func() error {
		vec, err := s.embed(gctx, textB)
		if err != nil {
			return err
		}
		embB = vec
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if embA == nil || embB == nil {
		return 0, nil
	}
	return cosineToScore(cosineSimilarity(embA, embB)), nil
}

// embed returns nil (not an error) for empty text.
func (s *similarityService) embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	key := s.cacheKey(text)
	if vec, ok := s.cacheGet(ctx, key); ok {
		return vec, nil
	}

	vecs, err := s.client.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, nil
	}

	s.cacheSet(ctx, key, vecs[0])
	return vecs[0], nil
}

// Embeddings are only comparable within one model, so the model name is part
// of the key.
func (s *similarityService) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(s.client.Model() + "|" + text))
	return "emb:" + hex.EncodeToString(sum[:])
}

func (s *similarityService) cacheGet(ctx context.Context, key string) ([]float32, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Debug("Embedding cache read failed", "error", err)
		}
		return nil, false
	}
	if len(raw) == 0 || len(raw)%4 != 0 {
		return nil, false
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return vec, true
}

func (s *similarityService) cacheSet(ctx context.Context, key string, vec []float32) {
	if s.cache == nil {
		return
	}
	raw := make([]byte, len(vec)*4)
	for i, f := range vec {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Debug("Embedding cache write failed", "error", err)
	}
}

// cosineSimilarity L2-normalizes both vectors and returns their dot product.
// Zero-magnitude or mismatched vectors yield 0 instead of dividing by zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// cosineToScore linearly rescales cosine in [-1,1] to an integer in [0,100].
// math.Round gives round-half-away-from-zero.
func cosineToScore(cosine float64) int {
	if cosine > 1 {
		cosine = 1
	}
	if cosine < -1 {
		cosine = -1
	}
	return int(math.Round(((cosine + 1) / 2) * 100))
}
