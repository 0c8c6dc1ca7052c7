package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/disaster-predict/internal/domain"
	"github.com/couchcryptid/disaster-predict/internal/predict"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 8, 15, 12, 30, 0, 0, time.UTC)
	event := predict.AuditEvent{
		Endpoint: predict.EndpointEarthquakeSeverity,
		Request: domain.Payload{
			"magnitude": 5.5,
			"depth":     10.0,
			"latitude":  25.0,
			"longitude": 80.0,
		},
		Response:    predict.SeverityResponse{Severity: domain.SeverityMild},
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("earthquake_severity"), msg.Key)
	assert.Contains(t, string(msg.Value), `"endpoint":"earthquake_severity"`)
	assert.Contains(t, string(msg.Value), `"severity":"Mild"`)

	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "endpoint", msg.Headers[0].Key)
	assert.Equal(t, []byte("earthquake_severity"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_UnmarshalableResponse(t *testing.T) {
	event := predict.AuditEvent{
		Endpoint: predict.EndpointCyclonePath,
		Response: make(chan int),
	}

	_, err := serializeToMessage(event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize audit event")
}

var _ predict.AuditPublisher = (*AuditWriter)(nil)
