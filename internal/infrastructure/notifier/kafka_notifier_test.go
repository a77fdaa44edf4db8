package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menvo.backend/internal/config"
	"menvo.backend/internal/domain/entities"
)

type recordingWriter struct {
	msgs        []kafka.Message
	hasDeadline bool
	err         error
	closed      bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, w.hasDeadline = ctx.Deadline()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() *entities.AppointmentEvent {
	return &entities.AppointmentEvent{
		Type:           entities.EventAppointmentBooked,
		Recipient:      entities.UserRoleMentor,
		RecipientEmail: "ana@menvo.com.br",
		AppointmentID:  uuid.New(),
		MentorID:       uuid.New(),
		MentorName:     "Ana Souza",
		MenteeID:       uuid.New(),
		MenteeName:     "Bruno",
		ScheduledAt:    time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC),
		Duration:       60,
		Status:         entities.AppointmentStatusScheduled,
		OccurredAt:     time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaNotifier_Publish(t *testing.T) {
	w := &recordingWriter{}
	n := &KafkaNotifier{writer: w, topic: "menvo.appointments"}
	event := sampleEvent()

	require.NoError(t, n.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)
	assert.True(t, w.hasDeadline, "publish runs with a timeout")

	msg := w.msgs[0]
	assert.Equal(t, event.AppointmentID.String(), string(msg.Key))
	assert.Equal(t, "appointment.booked", string(msg.Headers[0].Value))
	assert.Equal(t, "mentor", string(msg.Headers[1].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "ana@menvo.com.br", decoded["recipientEmail"])
	assert.Equal(t, "Ana Souza", decoded["mentorName"])

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifier_PublishError(t *testing.T) {
	n := &KafkaNotifier{writer: &recordingWriter{err: errors.New("broker down")}, topic: "t"}
	err := n.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Contains(t, err.Error(), "appointment.booked")
}

func TestNewKafkaNotifier_Config(t *testing.T) {
	n := NewKafkaNotifier(config.KafkaConfig{Broker: "localhost:9092", Topic: "menvo.appointments", Username: "u", Password: "p"})
	w, ok := n.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "menvo.appointments", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)

	transport, ok := w.Transport.(*kafka.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.SASL)
	assert.NotNil(t, transport.TLS)

	plainText := NewKafkaNotifier(config.KafkaConfig{Broker: "localhost:9092", Topic: "t"})
	assert.Nil(t, plainText.writer.(*kafka.Writer).Transport.(*kafka.Transport).SASL)
}

func TestLogNotifier_DropsEvents(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Publish(context.Background(), sampleEvent()))
}
