// Package dashboard holds the client-side mining pool state and the
// renderers that draw it.
package dashboard

import (
	"slices"

	"github.com/robsahakyan/mining-pools/internal/models"
)

const (
	defaultFetchPoolsError  = "Failed to fetch mining pools"
	defaultFetchDetailError = "Failed to fetch mining pool details"
)

// State is the client view of the mining pool collection.
// An empty Error means no error.
type State struct {
	Pools        []models.PoolSummary
	SelectedPool *models.PoolDetail
	Loading      bool
	Error        string
}

// InitialState returns the state before any fetch
func InitialState() State {
	return State{Pools: []models.PoolSummary{}}
}

// clone copies the state so callers cannot mutate store internals
func (s State) clone() State {
	out := s
	out.Pools = slices.Clone(s.Pools)
	if s.SelectedPool != nil {
		pool := *s.SelectedPool
		out.SelectedPool = &pool
	}
	return out
}

// Action is a state transition request
type Action interface {
	Type() string
}

type (
	FetchPoolsPending   struct{}
	FetchPoolsFulfilled struct{ Pools []models.PoolSummary }
	FetchPoolsRejected  struct{ Err error }

	FetchPoolDetailPending   struct{ ID string }
	FetchPoolDetailFulfilled struct{ Pool *models.PoolDetail }
	FetchPoolDetailRejected  struct {
		ID  string
		Err error
	}

	ClearSelectedPool struct{}
)

func (FetchPoolsPending) Type() string        { return "miningPools/fetchPools/pending" }
func (FetchPoolsFulfilled) Type() string      { return "miningPools/fetchPools/fulfilled" }
func (FetchPoolsRejected) Type() string       { return "miningPools/fetchPools/rejected" }
func (FetchPoolDetailPending) Type() string   { return "miningPools/fetchPoolDetail/pending" }
func (FetchPoolDetailFulfilled) Type() string { return "miningPools/fetchPoolDetail/fulfilled" }
func (FetchPoolDetailRejected) Type() string  { return "miningPools/fetchPoolDetail/rejected" }
func (ClearSelectedPool) Type() string        { return "miningPools/clearSelectedPool" }

// Reduce returns the state that results from applying action to state.
// It never mutates its input.
func Reduce(state State, action Action) State {
	next := state.clone()

	switch a := action.(type) {
	case FetchPoolsPending, FetchPoolDetailPending:
		next.Loading = true
		next.Error = ""
	case FetchPoolsFulfilled:
		next.Loading = false
		next.Pools = slices.Clone(a.Pools)
		if next.Pools == nil {
			next.Pools = []models.PoolSummary{}
		}
	case FetchPoolsRejected:
		next.Loading = false
		next.Error = errorMessage(a.Err, defaultFetchPoolsError)
	case FetchPoolDetailFulfilled:
		next.Loading = false
		if a.Pool != nil {
			pool := *a.Pool
			next.SelectedPool = &pool
		} else {
			next.SelectedPool = nil
		}
	case FetchPoolDetailRejected:
		next.Loading = false
		next.Error = errorMessage(a.Err, defaultFetchDetailError)
	case ClearSelectedPool:
		next.SelectedPool = nil
	}

	return next
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
