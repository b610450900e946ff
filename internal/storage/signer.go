package storage

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Presigner produces a time-limited GET URL for an object key.
type Presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// SignObserver is told the outcome of every signing attempt: "signed",
// "cached", "external" or "error".
type SignObserver interface {
	ObserveSign(result string)
}

type nopObserver struct{}

func (nopObserver) ObserveSign(string) {}

type SignerOptions struct {
	URLTTL      time.Duration
	Concurrency int
	CacheTTL    time.Duration
	Cache       Cache
	Observer    SignObserver
	Logger      *zap.Logger
}

// Signer turns stored object keys into signed URLs. A failure to sign one key
// never fails the caller; that key simply has no URL.
type Signer struct {
	presigner   Presigner
	urlTTL      time.Duration
	concurrency int
	cacheTTL    time.Duration
	cache       Cache
	observer    SignObserver
	log         *zap.Logger
	now         func() time.Time
}

func NewSigner(p Presigner, opts SignerOptions) *Signer {
	s := &Signer{
		presigner:   p,
		urlTTL:      opts.URLTTL,
		concurrency: opts.Concurrency,
		cacheTTL:    opts.CacheTTL,
		cache:       opts.Cache,
		observer:    opts.Observer,
		log:         opts.Logger,
		now:         time.Now,
	}
	if s.urlTTL <= 0 {
		s.urlTTL = time.Hour
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}
	if s.cache == nil {
		s.cache = NoopCache{}
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.cacheTTL = EffectiveCacheTTL(s.urlTTL, s.cacheTTL)
	return s
}

// EffectiveCacheTTL is how long a signed URL stays cached. A cached URL must
// outlive its cache entry, so anything not below urlTTL becomes urlTTL/2.
func EffectiveCacheTTL(urlTTL, cacheTTL time.Duration) time.Duration {
	if cacheTTL <= 0 || cacheTTL >= urlTTL {
		return urlTTL / 2
	}
	return cacheTTL
}

// CacheTTL reports the cache lifetime the signer applies.
func (s *Signer) CacheTTL() time.Duration {
	return s.cacheTTL
}

// Sign returns the URL for key, or nil when key is empty or cannot be signed.
func (s *Signer) Sign(ctx context.Context, key string) *string {
	if key == "" {
		return nil
	}
	if IsExternal(key) {
		s.observer.ObserveSign("external")
		return &key
	}

	cacheKey := s.cacheKey(key)
	if u, ok := s.cache.Get(ctx, cacheKey); ok {
		s.observer.ObserveSign("cached")
		return &u
	}

	u, err := s.presigner.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		s.observer.ObserveSign("error")
		s.log.Warn("sign object key", zap.String("key", key), zap.Error(err))
		return nil
	}
	s.observer.ObserveSign("signed")
	s.cache.Set(ctx, cacheKey, u, s.cacheTTL)
	return &u
}

// SignAll signs the distinct non-empty keys with at most Concurrency requests
// in flight. Keys that could not be signed are absent from the result.
func (s *Signer) SignAll(ctx context.Context, keys []string) map[string]string {
	distinct := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		distinct = append(distinct, k)
	}

	results := make([]*string, len(distinct))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, key := range distinct {
		g.Go(func() error {
			results[i] = s.Sign(ctx, key)
			return nil
		})
	}
	_ = g.Wait()

	signed := make(map[string]string, len(distinct))
	for i, key := range distinct {
		if results[i] != nil {
			signed[key] = *results[i]
		}
	}
	return signed
}

// cacheKey buckets entries per minute so a URL is reused only briefly.
func (s *Signer) cacheKey(key string) string {
	bucket := s.now().Truncate(time.Minute).Unix()
	return key + "@" + strconv.FormatInt(bucket, 10)
}
