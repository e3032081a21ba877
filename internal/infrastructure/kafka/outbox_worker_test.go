package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOutboxRepo struct {
	mu        sync.Mutex
	pending   []*usecase.OutboxEvent
	processed []int64
}

func (m *mockOutboxRepo) Add(ctx context.Context, event *usecase.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, event)
	return nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return nil, nil
	}
	n := min(limit, len(m.pending))
	batch := m.pending[:n]
	m.pending = m.pending[n:]
	return batch, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed = append(m.processed, id)
	return nil
}

func (m *mockOutboxRepo) processedIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.processed...)
}

type mockMessageProducer struct {
	mu      sync.Mutex
	WriteFn func(ctx context.Context, req *usecase.WriteRawMessageReq) error
	written []*usecase.WriteRawMessageReq
}

func (m *mockMessageProducer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	m.mu.Lock()
	m.written = append(m.written, req)
	m.mu.Unlock()
	if m.WriteFn != nil {
		return m.WriteFn(ctx, req)
	}
	return nil
}

func (m *mockMessageProducer) messages() []*usecase.WriteRawMessageReq {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*usecase.WriteRawMessageReq(nil), m.written...)
}

func pendingEvent(id int64, productID int64) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:        id,
		EventID:   "evt-" + time.Now().Format("150405.000000000"),
		EventType: usecase.EventProductCreated,
		ProductID: productID,
		Payload:   []byte(`{"event_type":"product.created"}`),
	}
}

func TestOutboxWorker_DrainsPendingEventsOnStartup(t *testing.T) {
	repo := &mockOutboxRepo{}
	producer := &mockMessageProducer{}

	require.NoError(t, repo.Add(context.Background(), pendingEvent(1, 10)))
	require.NoError(t, repo.Add(context.Background(), pendingEvent(2, 20)))

	worker := NewOutboxWorker(repo, producer, logger.NewSlogLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	require.Eventually(t, func() bool {
		return len(producer.messages()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	worker.Wait()

	msgs := producer.messages()
	assert.Equal(t, "10", msgs[0].Key, "messages are keyed by product id to keep per-product ordering")
	assert.Equal(t, "20", msgs[1].Key)
	assert.ElementsMatch(t, []int64{1, 2}, repo.processedIDs())
}

func TestOutboxWorker_FailedPublishIsNotMarkedProcessed(t *testing.T) {
	repo := &mockOutboxRepo{}
	producer := &mockMessageProducer{
		WriteFn: func(ctx context.Context, req *usecase.WriteRawMessageReq) error {
			return errors.New("broker unreachable")
		},
	}

	require.NoError(t, repo.Add(context.Background(), pendingEvent(1, 10)))

	worker := NewOutboxWorker(repo, producer, logger.NewSlogLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	require.Eventually(t, func() bool {
		return len(producer.messages()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	worker.Wait()

	assert.Empty(t, repo.processedIDs())
}
