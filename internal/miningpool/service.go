package miningpool

import (
	"context"
	"errors"
	"fmt"

	"github.com/robsahakyan/mining-pools/internal/models"
	"github.com/robsahakyan/mining-pools/internal/seedlock"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no pool matches the requested id
var ErrNotFound = errors.New("mining pool not found")

// Service defines mining pool service operations
type Service interface {
	EnsureSeeded(ctx context.Context) error
	ListSummaries(ctx context.Context) ([]models.PoolSummary, error)
	GetDetail(ctx context.Context, id string) (*models.PoolDetail, error)
}

// SeedLocker guards the count-then-insert seeding sequence
type SeedLocker interface {
	TryLock(ctx context.Context) (seedlock.UnlockFunc, bool, error)
}

// SeedObserver is notified with the number of records a seed run inserted
type SeedObserver interface {
	Seeded(count int)
}

// Option configures the service
type Option func(*service)

// WithSeedLocker sets the lock taken around seeding
func WithSeedLocker(locker SeedLocker) Option {
	return func(s *service) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// WithSeedObserver sets the observer notified after seeding
func WithSeedObserver(observer SeedObserver) Option {
	return func(s *service) {
		s.observer = observer
	}
}

type service struct {
	repo     Repository
	locker   SeedLocker
	observer SeedObserver
	seed     func() []*models.MiningPool
}

// NewService creates a new mining pool service. Seeding is not performed
// here; call EnsureSeeded once at startup.
func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:   repo,
		locker: seedlock.Noop{},
		seed:   SeedPools,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) EnsureSeeded(ctx context.Context) error {
	unlock, acquired, err := s.locker.TryLock(ctx)
	if err != nil {
		return fmt.Errorf("acquire seed lock: %w", err)
	}
	if !acquired {
		logrus.Info("Another instance is seeding mining pools, skipping")
		return nil
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			logrus.WithError(err).Warn("Failed to release seed lock")
		}
	}()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count mining pools: %w", err)
	}
	if count > 0 {
		logrus.WithField("count", count).Debug("Mining pools already seeded")
		return nil
	}

	pools := s.seed()
	if err := s.repo.CreateBatch(ctx, pools); err != nil {
		return fmt.Errorf("seed mining pools: %w", err)
	}

	logrus.WithField("count", len(pools)).Info("Seeded mining pools")
	if s.observer != nil {
		s.observer.Seeded(len(pools))
	}
	return nil
}

func (s *service) ListSummaries(ctx context.Context) ([]models.PoolSummary, error) {
	pools, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PoolSummary, 0, len(pools))
	for _, pool := range pools {
		summaries = append(summaries, pool.ToSummary())
	}
	return summaries, nil
}

func (s *service) GetDetail(ctx context.Context, id string) (*models.PoolDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	pool, err := s.repo.GetByPoolID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	detail := pool.ToDetail()
	return &detail, nil
}
