package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bahadricoz/shift/internal/dto"
)

// ScheduleProducer publishes segment change events to a single Kafka
// topic. It is an integration aid: callers treat publication as
// best-effort and never fail a committed mutation on a send error.
type ScheduleProducer struct {
	sp           sarama.SyncProducer
	topicChanges string
	source       string
	log          zerolog.Logger
}

type Config struct {
	TopicChanges string
	Source       string
}

func NewScheduleProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *ScheduleProducer {
	return &ScheduleProducer{
		sp:           sp,
		topicChanges: cfg.TopicChanges,
		source:       cfg.Source,
		log:          log.With().Str("component", "ScheduleProducer").Logger(),
	}
}

func (p *ScheduleProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

// ProduceSegmentChange publishes one change event. The message key is the
// member id so one member's changes stay ordered within a partition.
func (p *ScheduleProducer) ProduceSegmentChange(ctx context.Context, messageID uuid.UUID, action string, seg dto.ShiftSegment) error {
	env := Envelope{
		Action:    action,
		MessageID: messageID.String(),
		Payload: SegmentPayload{
			SegmentID:     seg.ID,
			DepartmentID:  seg.DepartmentID,
			TeamMemberID:  seg.TeamMemberID,
			Date:          seg.Date,
			WorkType:      seg.WorkType,
			FoodPayment:   seg.FoodPayment,
			ShiftStart:    seg.ShiftStart,
			ShiftEnd:      seg.ShiftEnd,
			OvertimeStart: seg.OvertimeStart,
			OvertimeEnd:   seg.OvertimeEnd,
		},
		Timestamp: time.Now().UTC(),
		Source:    p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal change envelope: %w", err)
	}

	key := fmt.Sprintf("member-%d", seg.TeamMemberID)

	return p.send(ctx, p.topicChanges, key, body, map[string]string{
		"event-kind":   "segment-" + action,
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *ScheduleProducer) send(_ context.Context, topic, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", topic).
		Str("key", key).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}
