package dashboard

import (
	"context"
	"sync"

	"github.com/robsahakyan/mining-pools/internal/models"
	"github.com/sirupsen/logrus"
)

// Gateway fetches pools from the API
type Gateway interface {
	FetchAll(ctx context.Context) ([]models.PoolSummary, error)
	FetchOne(ctx context.Context, id string) (*models.PoolDetail, error)
}

// Store owns the dashboard state and applies every transition through Reduce.
// Concurrent fetches are not de-duplicated; the last one to settle wins.
type Store struct {
	gateway Gateway

	mu        sync.RWMutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// NewStore creates a store in its initial state
func NewStore(gateway Gateway) *Store {
	return &Store{
		gateway:   gateway,
		state:     InitialState(),
		listeners: make(map[int]func(State)),
	}
}

// Dispatch applies action and notifies subscribers with the new state
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	snapshot := s.state.clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"action":  action.Type(),
		"loading": snapshot.Loading,
	}).Debug("Dispatched")

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Subscribe registers fn to run after every dispatch. The returned function
// removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Pools() []models.PoolSummary     { return s.State().Pools }
func (s *Store) SelectedPool() *models.PoolDetail { return s.State().SelectedPool }
func (s *Store) Loading() bool                    { return s.State().Loading }
func (s *Store) Err() string                      { return s.State().Error }

// FetchPools loads the pool list
func (s *Store) FetchPools(ctx context.Context) error {
	s.Dispatch(FetchPoolsPending{})

	pools, err := s.gateway.FetchAll(ctx)
	if err != nil {
		s.Dispatch(FetchPoolsRejected{Err: err})
		return err
	}

	s.Dispatch(FetchPoolsFulfilled{Pools: pools})
	return nil
}

// FetchPoolDetail loads one pool into SelectedPool
func (s *Store) FetchPoolDetail(ctx context.Context, id string) error {
	s.Dispatch(FetchPoolDetailPending{ID: id})

	pool, err := s.gateway.FetchOne(ctx, id)
	if err != nil {
		s.Dispatch(FetchPoolDetailRejected{ID: id, Err: err})
		return err
	}

	s.Dispatch(FetchPoolDetailFulfilled{Pool: pool})
	return nil
}

// ClearSelectedPool drops the selected detail
func (s *Store) ClearSelectedPool() {
	s.Dispatch(ClearSelectedPool{})
}
