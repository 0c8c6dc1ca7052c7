// Package predict orchestrates the prediction pipelines. Every operation
// follows the same strict sequence: validate, build features, infer,
// shape the response. A failure at any checkpoint short-circuits the rest;
// no partial results are ever returned.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/disaster-predict/internal/domain"
	"github.com/couchcryptid/disaster-predict/internal/ml"
	"github.com/couchcryptid/disaster-predict/internal/observability"
	"github.com/couchcryptid/disaster-predict/internal/registry"
)

// Endpoint names used for metrics labels and audit events.
const (
	EndpointEarthquakeSeverity = "earthquake_severity"
	EndpointCyclonePath        = "cyclone_path"
	EndpointCycloneSpeedDir    = "cyclone_speed_dir"
	EndpointCycloneSeverity    = "cyclone_severity"
)

// SeverityResponse is the body of both severity endpoints.
type SeverityResponse struct {
	Severity string `json:"severity"`
}

// PathPrediction is the data payload of the cyclone path endpoint.
type PathPrediction struct {
	PredictedLat float64 `json:"Predicted_LAT"`
	PredictedLon float64 `json:"Predicted_LON"`
}

// SpeedDirResponse carries one prediction per input row; single-sample
// requests always produce length-1 arrays.
type SpeedDirResponse struct {
	PredictedSpeed     []float64 `json:"predicted_speed"`
	PredictedDirection []float64 `json:"predicted_direction"`
}

// Service runs the prediction pipelines against an immutable model
// registry. It holds no per-request state, so one instance serves all
// requests concurrently.
type Service struct {
	registry  *registry.Registry
	audit     AuditPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	threshold float64
}

// NewService wires a Service. audit may be nil to disable the audit trail;
// threshold is the reconstruction-error level flagged as anomalous.
func NewService(reg *registry.Registry, audit AuditPublisher, logger *slog.Logger, metrics *observability.Metrics, threshold float64) *Service {
	return &Service{
		registry:  reg,
		audit:     audit,
		logger:    logger,
		metrics:   metrics,
		threshold: threshold,
	}
}

// EarthquakeSeverity classifies an earthquake observation into a severity
// label via the scaler → autoencoder → clustering pipeline.
func (s *Service) EarthquakeSeverity(ctx context.Context, payload domain.Payload) (SeverityResponse, error) {
	start := time.Now()
	resp, err := s.earthquakeSeverity(payload)
	s.finish(ctx, EndpointEarthquakeSeverity, payload, resp, err, start)
	return resp, err
}

func (s *Service) earthquakeSeverity(payload domain.Payload) (SeverityResponse, error) {
	if errs := domain.ValidateEarthquakeInput(payload); len(errs) > 0 {
		return SeverityResponse{}, &ValidationError{Violations: errs}
	}

	req := domain.EarthquakeFromPayload(payload)
	features := domain.EarthquakeFeatures(req)

	scaler, err := s.registry.Scaler("earthquake_scaler")
	if err != nil {
		return SeverityResponse{}, err
	}
	scaled, err := scaler.Transform(features[0])
	if err != nil {
		return SeverityResponse{}, err
	}

	autoencoder, err := s.registry.Autoencoder("autoencoder")
	if err != nil {
		return SeverityResponse{}, err
	}
	latent, err := autoencoder.Encode(scaled)
	if err != nil {
		return SeverityResponse{}, err
	}
	reconstructed, err := autoencoder.Reconstruct(scaled)
	if err != nil {
		return SeverityResponse{}, err
	}

	// Anomaly diagnostic: observed and logged, never part of the response.
	mse := ml.ReconstructionError(scaled, reconstructed)
	s.metrics.ReconstructionError.Observe(mse)
	s.logger.Debug("autoencoder reconstruction",
		"mse", mse,
		"anomaly", mse > s.threshold,
	)

	knn, err := s.registry.Classifier("knn_model")
	if err != nil {
		return SeverityResponse{}, err
	}
	cluster, err := knn.Classify(latent)
	if err != nil {
		return SeverityResponse{}, err
	}

	return SeverityResponse{Severity: domain.SeverityLabel(cluster)}, nil
}

// CyclonePath predicts the next storm center position with the LSTM path
// model, inverse-scaling its output back to coordinates.
func (s *Service) CyclonePath(ctx context.Context, payload domain.Payload) (PathPrediction, error) {
	start := time.Now()
	resp, err := s.cyclonePath(payload)
	s.finish(ctx, EndpointCyclonePath, payload, resp, err, start)
	return resp, err
}

func (s *Service) cyclonePath(payload domain.Payload) (PathPrediction, error) {
	if errs := domain.ValidateCycloneInput(payload); len(errs) > 0 {
		return PathPrediction{}, &ValidationError{Violations: errs}
	}

	req := domain.CycloneFromPayload(payload)
	features, err := domain.CyclonePathFeatures(req)
	if err != nil {
		return PathPrediction{}, err
	}

	scalerX, err := s.registry.Scaler("scaler_X")
	if err != nil {
		return PathPrediction{}, err
	}
	scaled, err := scalerX.Transform(features[0])
	if err != nil {
		return PathPrediction{}, err
	}

	lstm, err := s.registry.SequenceRegressor("lstm_model")
	if err != nil {
		return PathPrediction{}, err
	}
	// Single-sample request: a one-timestep sequence.
	predicted, err := lstm.PredictSequence([][]float64{scaled})
	if err != nil {
		return PathPrediction{}, err
	}

	scalerY, err := s.registry.Scaler("scaler_y")
	if err != nil {
		return PathPrediction{}, err
	}
	coords, err := scalerY.InverseTransform(predicted)
	if err != nil {
		return PathPrediction{}, err
	}
	if len(coords) != 2 {
		return PathPrediction{}, fmt.Errorf("path model produced %d outputs, expected 2", len(coords))
	}

	return PathPrediction{
		PredictedLat: round4(coords[0]),
		PredictedLon: round4(coords[1]),
	}, nil
}

// CycloneSpeedDir predicts translation speed and heading with the two
// boosted-tree regressors. The feature vector is used unscaled.
func (s *Service) CycloneSpeedDir(ctx context.Context, payload domain.Payload) (SpeedDirResponse, error) {
	start := time.Now()
	resp, err := s.cycloneSpeedDir(payload)
	s.finish(ctx, EndpointCycloneSpeedDir, payload, resp, err, start)
	return resp, err
}

func (s *Service) cycloneSpeedDir(payload domain.Payload) (SpeedDirResponse, error) {
	if errs := domain.ValidateCycloneInput(payload); len(errs) > 0 {
		return SpeedDirResponse{}, &ValidationError{Violations: errs}
	}

	req := domain.CycloneFromPayload(payload)
	features, err := domain.CycloneSpeedDirFeatures(req)
	if err != nil {
		return SpeedDirResponse{}, err
	}

	speedModel, err := s.registry.Regressor("speed_model")
	if err != nil {
		return SpeedDirResponse{}, err
	}
	dirModel, err := s.registry.Regressor("dir_model")
	if err != nil {
		return SpeedDirResponse{}, err
	}

	resp := SpeedDirResponse{
		PredictedSpeed:     make([]float64, 0, len(features)),
		PredictedDirection: make([]float64, 0, len(features)),
	}
	for _, row := range features {
		speed, err := speedModel.Predict(row)
		if err != nil {
			return SpeedDirResponse{}, err
		}
		dir, err := dirModel.Predict(row)
		if err != nil {
			return SpeedDirResponse{}, err
		}
		resp.PredictedSpeed = append(resp.PredictedSpeed, speed)
		resp.PredictedDirection = append(resp.PredictedDirection, dir)
	}

	return resp, nil
}

// CycloneSeverity classifies a cyclone observation via the scaler →
// encoder → clustering pipeline.
func (s *Service) CycloneSeverity(ctx context.Context, payload domain.Payload) (SeverityResponse, error) {
	start := time.Now()
	resp, err := s.cycloneSeverity(payload)
	s.finish(ctx, EndpointCycloneSeverity, payload, resp, err, start)
	return resp, err
}

func (s *Service) cycloneSeverity(payload domain.Payload) (SeverityResponse, error) {
	if errs := domain.ValidateSeverityInput(payload); len(errs) > 0 {
		return SeverityResponse{}, &ValidationError{Violations: errs}
	}

	req := domain.CycloneFromPayload(payload)
	features := domain.CycloneSeverityFeatures(req)

	scaler, err := s.registry.Scaler("severity_scaler")
	if err != nil {
		return SeverityResponse{}, err
	}
	if !scaler.Fitted() {
		return SeverityResponse{}, fmt.Errorf("severity scaler is not fitted")
	}
	scaled, err := scaler.Transform(features[0])
	if err != nil {
		return SeverityResponse{}, err
	}

	encoder, err := s.registry.Network("severity_encoder")
	if err != nil {
		return SeverityResponse{}, err
	}
	if len(scaled) != encoder.InputDim() {
		return SeverityResponse{}, fmt.Errorf("expected %d features, got %d", encoder.InputDim(), len(scaled))
	}
	latent, err := encoder.Forward(scaled)
	if err != nil {
		return SeverityResponse{}, err
	}

	kmeans, err := s.registry.Clusterer("severity_kmeans")
	if err != nil {
		return SeverityResponse{}, err
	}
	cluster, err := kmeans.Assign(latent)
	if err != nil {
		return SeverityResponse{}, err
	}

	return SeverityResponse{Severity: domain.SeverityLabel(cluster)}, nil
}

// finish records metrics for the completed pipeline and, on success,
// publishes an audit event.
func (s *Service) finish(ctx context.Context, endpoint string, payload domain.Payload, resp any, err error, start time.Time) {
	switch {
	case err == nil:
		s.metrics.PredictionsTotal.WithLabelValues(endpoint, "success").Inc()
		s.metrics.InferenceDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		s.publishAudit(ctx, endpoint, payload, resp)
	case isValidation(err):
		s.metrics.PredictionsTotal.WithLabelValues(endpoint, "validation_error").Inc()
		s.metrics.ValidationFailures.WithLabelValues(endpoint).Inc()
	default:
		s.metrics.PredictionsTotal.WithLabelValues(endpoint, "error").Inc()
		s.logger.Error("prediction failed", "endpoint", endpoint, "error", err)
	}
}

func (s *Service) publishAudit(ctx context.Context, endpoint string, payload domain.Payload, resp any) {
	if s.audit == nil {
		return
	}
	event := AuditEvent{
		Endpoint:    endpoint,
		Request:     payload,
		Response:    resp,
		ProcessedAt: domain.Now(),
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		s.metrics.AuditErrors.Inc()
		s.logger.Warn("audit publish failed", "endpoint", endpoint, "error", err)
		return
	}
	s.metrics.AuditPublished.Inc()
}

func isValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// round4 rounds to four decimal places, the precision of the path response.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
