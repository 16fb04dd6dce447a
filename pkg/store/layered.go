package store

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/utils/cache"
	"github.com/mpapenbr/ghostlap-go/pkg/utils/cache/loadercache"
)

const (
	resultUser    = "user"
	resultBundled = "bundled"
	resultMiss    = "miss"
)

// Layered looks up records in the writable user store first and falls back
// to a read-only bundle of default records. Writes always go to the user
// store.
type Layered struct {
	user    Store
	bundled fs.FS
	cache   cache.Cache[Key, entry]
	l       *log.Logger
	loads   metric.Int64Counter
	saves   metric.Int64Counter
}

type entry struct {
	data  []byte
	found bool
	from  string
}

type LayeredOption func(s *Layered)

// WithBundled sets the read-only fallback. Files are looked up by
// Key.FileName at the root of fsys.
func WithBundled(fsys fs.FS) LayeredOption {
	return func(s *Layered) {
		s.bundled = fsys
	}
}

// WithCache keeps lookup results in memory. Save and Delete invalidate.
func WithCache(expiration time.Duration) LayeredOption {
	return func(s *Layered) {
		s.cache = loadercache.New(
			loadercache.WithExpiration[Key, entry](expiration),
			loadercache.WithLoader(s.lookup),
			loadercache.WithLogger[Key, entry](s.l.Named("cache")),
		)
	}
}

func WithLogger(l *log.Logger) LayeredOption {
	return func(s *Layered) {
		s.l = l
	}
}

func NewLayered(user Store, opts ...LayeredOption) *Layered {
	s := &Layered{
		user: user,
		l:    log.Default().Named("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	meter := otel.Meter("github.com/mpapenbr/ghostlap-go/pkg/store")
	var err error
	if s.loads, err = meter.Int64Counter("ghostlap.store.loads",
		metric.WithDescription("record lookups by result")); err != nil {
		s.l.Warn("could not create loads counter", log.ErrorField(err))
	}
	if s.saves, err = meter.Int64Counter("ghostlap.store.saves",
		metric.WithDescription("records written")); err != nil {
		s.l.Warn("could not create saves counter", log.ErrorField(err))
	}
	return s
}

// Lookup returns the record for key. found is false if neither the user
// store nor the bundle has it; this is not an error.
func (s *Layered) Lookup(ctx context.Context, key Key) (data []byte, found bool, err error) {
	var e *entry
	if s.cache != nil {
		e, err = s.cache.Get(ctx, key)
	} else {
		e, err = s.lookup(ctx, key)
	}
	if err != nil {
		return nil, false, err
	}
	if s.loads != nil {
		s.loads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", e.from)))
	}
	return e.data, e.found, nil
}

func (s *Layered) lookup(ctx context.Context, key Key) (*entry, error) {
	data, err := s.user.Load(ctx, key)
	if err == nil {
		s.l.Debug("loaded from user store", log.String("key", key.String()))
		return &entry{data: data, found: true, from: resultUser}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if s.bundled != nil {
		data, err = fs.ReadFile(s.bundled, key.FileName())
		switch {
		case err == nil:
			s.l.Debug("loaded from bundle", log.String("key", key.String()))
			return &entry{data: data, found: true, from: resultBundled}, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}
	s.l.Debug("no record", log.String("key", key.String()))
	return &entry{from: resultMiss}, nil
}

func (s *Layered) Save(ctx context.Context, key Key, data []byte) error {
	if err := s.user.Save(ctx, key, data); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, key)
	}
	if s.saves != nil {
		s.saves.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(key.Kind))))
	}
	s.l.Debug("saved", log.String("key", key.String()), log.Int("bytes", len(data)))
	return nil
}

// Delete removes the user record. Bundled defaults become visible again.
func (s *Layered) Delete(ctx context.Context, key Key) error {
	if err := s.user.Delete(ctx, key); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, key)
	}
	return nil
}

func (s *Layered) Close() error {
	return s.user.Close()
}
