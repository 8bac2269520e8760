package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleResult() domain.AnalysisResult {
	return domain.AnalysisResult{
		RunID: "5f1c2a0e-8d4b-4e57-9a55-1c9e8a7b6d21",
		Region: domain.Region{
			ID:     "test-forest",
			Name:   "Test Forest",
			Bounds: domain.Bounds{Center: domain.Coordinate{Lat: 10, Lng: 20}},
			Area:   1000,
		},
		Prediction: &domain.PredictionData{Region: "Test Forest", TotalArea: 1000, Confidence: 0.9},
		Simulation: &domain.SimulationData{
			Region:          "Test Forest",
			TimeSteps:       domain.SimulationTimeSteps,
			TotalBurnedArea: domain.BurnedAreaSeries,
			SpreadRate:      domain.SpreadRateSeries,
			SpreadData:      map[int][]domain.SpreadPoint{1: {{Lat: 10, Lng: 20, Intensity: 0.5, Timestamp: 1}}},
		},
		CompletedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	result := sampleResult()

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte(result.RunID), msg.Key)
	assert.Equal(t, result.CompletedAt, msg.Time)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "region_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("test-forest"), msg.Headers[0].Value)
	assert.Equal(t, "completed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-03-14T09:30:00Z"), msg.Headers[1].Value)

	var decoded domain.AnalysisResult
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, result.RunID, decoded.RunID)
	assert.Len(t, decoded.Simulation.SpreadData[1], 1)
}

func TestSerializeToMessage_UnencodableValue(t *testing.T) {
	result := sampleResult()
	result.Prediction.Confidence = math.NaN()

	_, err := serializeToMessage(result)
	require.ErrorContains(t, err, "serialize analysis result")
}

func TestWriter_PublishResult(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, w.PublishResult(context.Background(), sampleResult()))
	require.Len(t, fw.msgs, 1)

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}

func TestWriter_PublishResult_WriteError(t *testing.T) {
	boom := errors.New("leader not available")
	w := &Writer{writer: &fakeWriter{err: boom}, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := w.PublishResult(context.Background(), sampleResult())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), sampleResult().RunID)
}
