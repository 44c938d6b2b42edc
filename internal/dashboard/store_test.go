package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robsahakyan/mining-pools/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGateway struct {
	mock.Mock
	release chan struct{}
}

func (m *MockGateway) FetchAll(ctx context.Context) ([]models.PoolSummary, error) {
	if m.release != nil {
		<-m.release
	}
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PoolSummary), args.Error(1)
}

func (m *MockGateway) FetchOne(ctx context.Context, id string) (*models.PoolDetail, error) {
	if m.release != nil {
		<-m.release
	}
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PoolDetail), args.Error(1)
}

func TestStore_FetchPools(t *testing.T) {
	gateway := &MockGateway{release: make(chan struct{})}
	store := NewStore(gateway)

	pools := []models.PoolSummary{summaryA, summaryB}
	gateway.On("FetchAll").Return(pools, nil)

	pending := make(chan State, 1)
	unsubscribe := store.Subscribe(func(s State) {
		if s.Loading {
			select {
			case pending <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	done := make(chan error, 1)
	go func() { done <- store.FetchPools(context.Background()) }()

	select {
	case s := <-pending:
		assert.True(t, s.Loading)
		assert.Empty(t, s.Error)
		assert.True(t, store.Loading())
	case <-time.After(2 * time.Second):
		t.Fatal("pending state was never published")
	}

	close(gateway.release)
	require.NoError(t, <-done)

	assert.False(t, store.Loading())
	assert.Empty(t, store.Err())
	assert.Equal(t, pools, store.Pools())
	gateway.AssertExpectations(t)
}

func TestStore_FetchPoolsClearsPreviousError(t *testing.T) {
	gateway := new(MockGateway)
	store := NewStore(gateway)

	gateway.On("FetchAll").Return(nil, errors.New("Network Error")).Once()
	assert.Error(t, store.FetchPools(context.Background()))
	assert.Equal(t, "Network Error", store.Err())

	gateway.On("FetchAll").Return([]models.PoolSummary{summaryA}, nil).Once()
	assert.NoError(t, store.FetchPools(context.Background()))
	assert.Empty(t, store.Err())
	assert.Equal(t, []models.PoolSummary{summaryA}, store.Pools())
}

func TestStore_FetchPoolDetail(t *testing.T) {
	gateway := new(MockGateway)
	store := NewStore(gateway)

	gateway.On("FetchOne", "pool-1").Return(detailA, nil)

	require.NoError(t, store.FetchPoolDetail(context.Background(), "pool-1"))
	assert.False(t, store.Loading())
	assert.Equal(t, detailA, store.SelectedPool())
}

func TestStore_FetchPoolDetailFailure(t *testing.T) {
	gateway := new(MockGateway)
	store := NewStore(gateway)

	gateway.On("FetchOne", "pool-1").Return(detailA, nil)
	require.NoError(t, store.FetchPoolDetail(context.Background(), "pool-1"))

	gateway.On("FetchOne", "x").Return(nil, errors.New("Request failed with status code 404"))
	err := store.FetchPoolDetail(context.Background(), "x")
	require.Error(t, err)

	state := store.State()
	assert.False(t, state.Loading)
	assert.Equal(t, "Request failed with status code 404", state.Error)
	assert.Equal(t, detailA, state.SelectedPool, "a failed detail fetch leaves the selection unchanged")
}

func TestStore_ClearSelectedPool(t *testing.T) {
	gateway := new(MockGateway)
	store := NewStore(gateway)

	gateway.On("FetchOne", "pool-1").Return(detailA, nil)
	require.NoError(t, store.FetchPoolDetail(context.Background(), "pool-1"))

	store.ClearSelectedPool()
	assert.Nil(t, store.SelectedPool())
}

func TestStore_StateIsACopy(t *testing.T) {
	gateway := new(MockGateway)
	store := NewStore(gateway)

	gateway.On("FetchAll").Return([]models.PoolSummary{summaryA}, nil)
	require.NoError(t, store.FetchPools(context.Background()))

	state := store.State()
	state.Pools[0].Name = "changed"
	assert.Equal(t, "US East Pool", store.Pools()[0].Name)
}

func TestStore_Unsubscribe(t *testing.T) {
	store := NewStore(new(MockGateway))

	var calls int
	unsubscribe := store.Subscribe(func(State) { calls++ })
	store.ClearSelectedPool()
	unsubscribe()
	store.ClearSelectedPool()

	assert.Equal(t, 1, calls)
}

func TestStore_ConcurrentFetchesDoNotDeadlock(t *testing.T) {
	gateway := new(MockGateway)
	store := NewStore(gateway)

	gateway.On("FetchAll").Return([]models.PoolSummary{summaryA}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.FetchPools(context.Background()))
		}()
	}
	wg.Wait()

	assert.False(t, store.Loading())
	assert.Equal(t, []models.PoolSummary{summaryA}, store.Pools())
}
