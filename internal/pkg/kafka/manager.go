package kafka

import (
	"Plaza/internal/api/config"
	"Plaza/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager owns every Kafka consumer group of the process.
type ConsumerManager struct {
	likesConsumer sarama.ConsumerGroup
	likesHandler  sarama.ConsumerGroupHandler

	followsConsumer sarama.ConsumerGroup
	followsHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(
	cfg *config.Config,
	notificationService service.NotificationService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	likesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLikesConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	likesHandler := NewLikesHandler(notificationService)

	followsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaFollowsConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	followsHandler := NewFollowsHandler(notificationService)

	return &ConsumerManager{
		likesConsumer:   likesConsumer,
		likesHandler:    likesHandler,
		followsConsumer: followsConsumer,
		followsHandler:  followsHandler,
	}, nil
}

// Start runs every consumer until ctx is cancelled, then closes them.
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaLikesConsumer.Topic
		log.Info("likes consumer started", "topic", topic)
		for {
			if err := m.likesConsumer.Consume(ctx, []string{topic}, m.likesHandler); err != nil {
				log.Error("error from likes consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaFollowsConsumer.Topic
		log.Info("follows consumer started", "topic", topic)
		for {
			if err := m.followsConsumer.Consume(ctx, []string{topic}, m.followsHandler); err != nil {
				log.Error("error from follows consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("kafka manager shutting down")

	if err := m.likesConsumer.Close(); err != nil {
		log.Error("failed to close likes consumer", "err", err)
	}
	if err := m.followsConsumer.Close(); err != nil {
		log.Error("failed to close follows consumer", "err", err)
	}

	return nil
}
