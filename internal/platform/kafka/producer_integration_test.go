//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"bordereau/internal/platform/config"
	"bordereau/internal/platform/kafka"
	"bordereau/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *ProducerSuite) TestPublishAndConsume() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "bordereau.audit.test"
	producer, err := kafka.NewProducer(config.KafkaConfig{
		Brokers:    s.redpanda.Brokers,
		AuditTopic: topic,
	}, nil)
	s.Require().NoError(err)
	defer producer.Close()

	s.Run("ensure topic is idempotent", func() {
		s.Require().NoError(producer.EnsureTopic(ctx, 1, 1))
		s.Require().NoError(producer.EnsureTopic(ctx, 1, 1))
	})

	s.Run("published records are consumed in order", func() {
		err := producer.Publish(ctx, []kafka.Message{
			{Key: []byte("bsda:BSDA-1"), Value: []byte(`{"action":"bsda_created"}`)},
			{Key: []byte("bsda:BSDA-1"), Value: []byte(`{"action":"bsda_signed"}`)},
		})
		s.Require().NoError(err)

		consumer, err := kgo.NewClient(
			kgo.SeedBrokers(s.redpanda.Brokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		)
		s.Require().NoError(err)
		defer consumer.Close()

		var values []string
		for len(values) < 2 {
			fetches := consumer.PollFetches(ctx)
			s.Require().NoError(ctx.Err())
			fetches.EachRecord(func(r *kgo.Record) {
				values = append(values, string(r.Value))
			})
		}
		s.Equal([]string{`{"action":"bsda_created"}`, `{"action":"bsda_signed"}`}, values)
	})
}
