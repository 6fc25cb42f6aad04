package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-attendance/internal/config"
	"ms-attendance/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
	Topics config.TopicConfig
}

func NewProducer(brokers []string, topics config.TopicConfig) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer, Topics: topics}
}

// PublishRegistrationCreated streams a new registration to Kafka.
func (p *Producer) PublishRegistrationCreated(eventID int64, studentID string) error {
	return p.publish(p.Topics.RegistrationCreated, models.RegistrationEvent{
		EventID:   eventID,
		StudentID: studentID,
		Action:    "created",
		At:        time.Now(),
	}, eventID)
}

// PublishRegistrationCancelled streams a cancellation to Kafka.
func (p *Producer) PublishRegistrationCancelled(eventID int64, studentID string) error {
	return p.publish(p.Topics.RegistrationCancelled, models.RegistrationEvent{
		EventID:   eventID,
		StudentID: studentID,
		Action:    "cancelled",
		At:        time.Now(),
	}, eventID)
}

// PublishAttendanceMarked streams an attendance upsert to Kafka.
func (p *Producer) PublishAttendanceMarked(eventID int64, studentID, attended string) error {
	return p.publish(p.Topics.AttendanceMarked, models.AttendanceEvent{
		EventID:   eventID,
		StudentID: studentID,
		Attended:  attended,
		At:        time.Now(),
	}, eventID)
}

func (p *Producer) publish(topic string, payload interface{}, eventID int64) error {
	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(strconv.FormatInt(eventID, 10)),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
