package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"dipsport/config"
	"dipsport/infras/kafka"
	"dipsport/infras/otel"
	"dipsport/infras/rabbitmq"
	"dipsport/shared/constant"

	"github.com/rs/zerolog/log"
)

// Message is a rendered notification handed to the mail worker.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Ref     string `json:"ref"`
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the notifier selected by NOTIFIER_DRIVER. The returned cleanup releases broker connections.
func New(cfg *config.Config, otel otel.Otel) (Notifier, func(), error) {
	switch cfg.Notifier.Driver {
	case config.NotifierDriverKafka:
		producer := kafka.New(cfg)

		return &kafkaNotifier{producer: producer, topic: cfg.Notifier.Topic, otel: otel}, func() {
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close kafka producer")
			}
		}, nil
	case config.NotifierDriverRabbitMQ:
		publisher, err := rabbitmq.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create rabbitmq notifier: %w", err)
		}

		return &rabbitNotifier{publisher: publisher, queue: cfg.Notifier.Topic, otel: otel}, func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close rabbitmq publisher")
			}
		}, nil
	case config.NotifierDriverLog, constant.Empty:
		return &logNotifier{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown notifier driver %q", cfg.Notifier.Driver)
	}
}

type kafkaNotifier struct {
	producer kafka.Producer
	topic    string
	otel     otel.Otel
}

func NewKafka(producer kafka.Producer, topic string, otel otel.Otel) Notifier {
	return &kafkaNotifier{producer: producer, topic: topic, otel: otel}
}

func (n *kafkaNotifier) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".notifier.kafka.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return n.producer.SendMessages(ctx, n.topic, kafka.Message{Key: msg.Ref, Value: msg}) //nolint:wrapcheck
}

type rabbitNotifier struct {
	publisher rabbitmq.Publisher
	queue     string
	otel      otel.Otel
}

func NewRabbitMQ(publisher rabbitmq.Publisher, queue string, otel otel.Otel) Notifier {
	return &rabbitNotifier{publisher: publisher, queue: queue, otel: otel}
}

func (n *rabbitNotifier) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".notifier.rabbitmq.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return n.publisher.PublishJSON(ctx, n.queue, msg) //nolint:wrapcheck
}

type logNotifier struct{}

func (logNotifier) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("ref", msg.Ref).
		Msg(msg.Body)

	return nil
}
