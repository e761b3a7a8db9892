package discovery_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/usecase/dto"
	"github.com/facility-discovery/internal/worker/discovery"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockDiscoverer is a mock of Discoverer
type MockDiscoverer struct {
	mock.Mock
}

func (m *MockDiscoverer) Discover(ctx context.Context, req dto.DiscoverRequest) (*dto.DiscoverResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DiscoverResponse), args.Error(1)
}

func ptrFloat64(v float64) *float64 {
	return &v
}

func TestWorker_Name(t *testing.T) {
	worker := discovery.NewWorker(&MockStreamRepository{}, &MockDiscoverer{}, "test-group", zap.NewNop())

	assert.Equal(t, "facility-discovery", worker.Name())
}

func TestWorker_Stop(t *testing.T) {
	worker := discovery.NewWorker(&MockStreamRepository{}, &MockDiscoverer{}, "test-group", zap.NewNop())

	assert.NoError(t, worker.Stop())
	// Повторный stop безопасен
	assert.NoError(t, worker.Stop())
}

func TestWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	worker := discovery.NewWorker(mockStream, &MockDiscoverer{}, "test-group", zap.NewNop())

	msgChan := make(chan domain.StreamMessage)
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamDiscoveryJobs, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamDiscoveryJobs, "test-group", mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(msgChan), nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	mockStream.AssertExpectations(t)
}

func TestWorker_ProcessJob(t *testing.T) {
	jobID := uuid.New()
	job := domain.FacilityDiscoveryJob{
		JobID:        jobID,
		Latitude:     ptrFloat64(35.6909),
		Longitude:    ptrFloat64(139.7002),
		Category:     domain.CategoryConvenienceStore,
		TravelMode:   domain.TravelModeWalking,
		RadiusMeters: 800,
		ResultLimit:  3,
	}
	jobJSON, _ := json.Marshal(job)

	t.Run("successful job publishes result and acks", func(t *testing.T) {
		mockStream := &MockStreamRepository{}
		mockDiscoverer := &MockDiscoverer{}
		worker := discovery.NewWorker(mockStream, mockDiscoverer, "test-group", zap.NewNop())

		msgChan := make(chan domain.StreamMessage, 1)
		msgChan <- domain.StreamMessage{ID: "1234567890-0", Data: string(jobJSON)}

		mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamDiscoveryJobs, "test-group").
			Return(nil)
		mockStream.On("ConsumeStream", mock.Anything, domain.StreamDiscoveryJobs, "test-group", mock.AnythingOfType("string")).
			Return((<-chan domain.StreamMessage)(msgChan), nil)

		duration := 260.0
		mockDiscoverer.On("Discover", mock.Anything, mock.MatchedBy(func(req dto.DiscoverRequest) bool {
			return req.Category == "convenience_store" && req.HasCoordinates()
		})).Return(&dto.DiscoverResponse{
			Origin:     domain.Coordinate{Lat: 35.6909, Lon: 139.7002},
			TravelMode: domain.TravelModeWalking,
			Facilities: []dto.FacilityDTO{
				{
					ExternalID:      "p1",
					Name:            "Lawson Shinjuku",
					Lat:             35.6912,
					Lon:             139.7002,
					Brand:           "lawson",
					DistanceMeters:  310,
					DurationSeconds: &duration,
				},
			},
		}, nil)

		mockStream.On("PublishToStream", mock.Anything, domain.StreamDiscoveryDone, mock.MatchedBy(func(data interface{}) bool {
			done, ok := data.(domain.FacilityDiscoveryDone)
			return ok && done.JobID == jobID && done.Error == "" && len(done.Facilities) == 1
		})).Return(nil)
		mockStream.On("AckMessage", mock.Anything, domain.StreamDiscoveryJobs, "test-group", "1234567890-0").
			Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- worker.Start(ctx)
		}()

		time.Sleep(200 * time.Millisecond)
		cancel()
		<-done

		mockStream.AssertExpectations(t)
		mockDiscoverer.AssertExpectations(t)
	})

	t.Run("failed job publishes error result", func(t *testing.T) {
		mockStream := &MockStreamRepository{}
		mockDiscoverer := &MockDiscoverer{}
		worker := discovery.NewWorker(mockStream, mockDiscoverer, "test-group", zap.NewNop())

		msgChan := make(chan domain.StreamMessage, 1)
		msgChan <- domain.StreamMessage{ID: "1234567890-1", Data: string(jobJSON)}

		mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamDiscoveryJobs, "test-group").
			Return(nil)
		mockStream.On("ConsumeStream", mock.Anything, domain.StreamDiscoveryJobs, "test-group", mock.AnythingOfType("string")).
			Return((<-chan domain.StreamMessage)(msgChan), nil)

		mockDiscoverer.On("Discover", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		mockStream.On("PublishToStream", mock.Anything, domain.StreamDiscoveryDone, mock.MatchedBy(func(data interface{}) bool {
			done, ok := data.(domain.FacilityDiscoveryDone)
			return ok && done.JobID == jobID && done.Error != ""
		})).Return(nil)
		mockStream.On("AckMessage", mock.Anything, domain.StreamDiscoveryJobs, "test-group", "1234567890-1").
			Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- worker.Start(ctx)
		}()

		time.Sleep(200 * time.Millisecond)
		cancel()
		<-done

		mockStream.AssertExpectations(t)
	})

	t.Run("job with negative result limit is processed", func(t *testing.T) {
		// В стриме нет HTTP-валидатора, поэтому воркер обязан переживать
		// произвольные числовые поля задания
		badJob := domain.FacilityDiscoveryJob{
			JobID:        jobID,
			Latitude:     ptrFloat64(35.6909),
			Longitude:    ptrFloat64(139.7002),
			Category:     domain.CategoryConvenienceStore,
			TravelMode:   domain.TravelModeWalking,
			RadiusMeters: 800,
			ResultLimit:  -1,
		}
		badJSON, _ := json.Marshal(badJob)

		mockStream := &MockStreamRepository{}
		mockDiscoverer := &MockDiscoverer{}
		worker := discovery.NewWorker(mockStream, mockDiscoverer, "test-group", zap.NewNop())

		msgChan := make(chan domain.StreamMessage, 1)
		msgChan <- domain.StreamMessage{ID: "1234567890-3", Data: string(badJSON)}

		mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamDiscoveryJobs, "test-group").
			Return(nil)
		mockStream.On("ConsumeStream", mock.Anything, domain.StreamDiscoveryJobs, "test-group", mock.AnythingOfType("string")).
			Return((<-chan domain.StreamMessage)(msgChan), nil)

		mockDiscoverer.On("Discover", mock.Anything, mock.MatchedBy(func(req dto.DiscoverRequest) bool {
			return req.ResultLimit == -1
		})).Return(&dto.DiscoverResponse{
			Origin:     domain.Coordinate{Lat: 35.6909, Lon: 139.7002},
			TravelMode: domain.TravelModeWalking,
			Facilities: []dto.FacilityDTO{},
		}, nil)

		mockStream.On("PublishToStream", mock.Anything, domain.StreamDiscoveryDone, mock.MatchedBy(func(data interface{}) bool {
			done, ok := data.(domain.FacilityDiscoveryDone)
			return ok && done.JobID == jobID && done.Error == ""
		})).Return(nil)
		mockStream.On("AckMessage", mock.Anything, domain.StreamDiscoveryJobs, "test-group", "1234567890-3").
			Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- worker.Start(ctx)
		}()

		time.Sleep(200 * time.Millisecond)
		cancel()
		<-done

		mockStream.AssertExpectations(t)
		mockDiscoverer.AssertExpectations(t)
	})

	t.Run("malformed message is acked without publishing", func(t *testing.T) {
		mockStream := &MockStreamRepository{}
		mockDiscoverer := &MockDiscoverer{}
		worker := discovery.NewWorker(mockStream, mockDiscoverer, "test-group", zap.NewNop())

		msgChan := make(chan domain.StreamMessage, 1)
		msgChan <- domain.StreamMessage{ID: "1234567890-2", Data: "not json"}

		mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamDiscoveryJobs, "test-group").
			Return(nil)
		mockStream.On("ConsumeStream", mock.Anything, domain.StreamDiscoveryJobs, "test-group", mock.AnythingOfType("string")).
			Return((<-chan domain.StreamMessage)(msgChan), nil)
		mockStream.On("AckMessage", mock.Anything, domain.StreamDiscoveryJobs, "test-group", "1234567890-2").
			Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- worker.Start(ctx)
		}()

		time.Sleep(200 * time.Millisecond)
		cancel()
		<-done

		mockStream.AssertExpectations(t)
		mockDiscoverer.AssertNotCalled(t, "Discover")
	})
}
