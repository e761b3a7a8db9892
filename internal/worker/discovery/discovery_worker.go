package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
	"github.com/facility-discovery/internal/usecase/dto"
	"github.com/facility-discovery/internal/worker"
)

// Discoverer выполняет конвейер поиска для одного запроса
type Discoverer interface {
	Discover(ctx context.Context, req dto.DiscoverRequest) (*dto.DiscoverResponse, error)
}

// Worker выполняет задания поиска объектов из Redis Stream асинхронно.
// Используется backend-ом путеводителя, когда результат не нужен немедленно
// (предрасчёт объектов после бронирования жилья).
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	discoveryUC  Discoverer
	consumerName string
}

// NewWorker создает новый discovery worker
func NewWorker(
	streamRepo repository.StreamRepository,
	discoveryUC Discoverer,
	consumerGroup string,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("facility-discovery", consumerGroup, logger),
		streamRepo:   streamRepo,
		discoveryUC:  discoveryUC,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting discovery worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamDiscoveryJobs, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamDiscoveryJobs, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.processMessage(ctx, msg)
		}
	}
}

// processMessage обрабатывает одно задание и публикует результат.
// Невалидное сообщение подтверждается сразу, чтобы не зациклить очередь.
func (w *Worker) processMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var job domain.FacilityDiscoveryJob
	if err := json.Unmarshal([]byte(msg.Data), &job); err != nil {
		logger.Error("Failed to unmarshal discovery job",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	logger.Info("Processing discovery job",
		zap.String("job_id", job.JobID.String()),
		zap.String("category", string(job.Category)))

	done := w.runJob(ctx, job)

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamDiscoveryDone, done); err != nil {
		// Результат не опубликован - сообщение не подтверждаем, его
		// переиграет другой consumer
		logger.Error("Failed to publish discovery result",
			zap.String("job_id", job.JobID.String()),
			zap.Error(err))
		return
	}

	w.ack(ctx, msg.ID)
}

// runJob выполняет конвейер поиска для одного задания
func (w *Worker) runJob(ctx context.Context, job domain.FacilityDiscoveryJob) domain.FacilityDiscoveryDone {
	req := dto.DiscoverRequest{
		Address:      job.Address,
		Latitude:     job.Latitude,
		Longitude:    job.Longitude,
		Category:     string(job.Category),
		RadiusMeters: job.RadiusMeters,
		TravelMode:   string(job.TravelMode),
		ResultLimit:  job.ResultLimit,
	}
	if job.Brand != nil {
		req.Brand = string(*job.Brand)
	}

	result, err := w.discoveryUC.Discover(ctx, req)
	if err != nil {
		return domain.FacilityDiscoveryDone{
			JobID: job.JobID,
			Error: err.Error(),
		}
	}

	facilities := make([]domain.RankedFacility, 0, len(result.Facilities))
	for _, f := range result.Facilities {
		duration := f.DurationSeconds
		facilities = append(facilities, domain.RankedFacility{
			Candidate: domain.NormalizedCandidate{
				RawCandidate: domain.RawCandidate{
					ExternalID: f.ExternalID,
					Name:       f.Name,
					Address:    f.Address,
					Location:   domain.Coordinate{Lat: f.Lat, Lon: f.Lon},
				},
				BrandToken: f.Brand,
			},
			DistanceMeters:  f.DistanceMeters,
			DurationSeconds: duration,
			Estimated:       f.Estimated,
		})
	}

	origin := result.Origin
	return domain.FacilityDiscoveryDone{
		JobID:          job.JobID,
		Origin:         &origin,
		PlaceName:      result.PlaceName,
		Facilities:     facilities,
		EstimatedCount: result.EstimatedCount,
	}
}

func (w *Worker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamDiscoveryJobs, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
