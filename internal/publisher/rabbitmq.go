package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"content_mirror/internal/domain"
)

const ActionCampaignCreate = "campaign.create"

var ErrNotConfirmed = errors.New("broker did not confirm message")

// RabbitMQ requests one campaign per item by publishing a persistent message
// on a channel in confirm mode. A campaign counts as created only once the
// broker has confirmed the message.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
	now        func() time.Time
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	fail := func(step string, err error) (*RabbitMQ, error) {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return fail("declare exchange", err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fail("bind queue", err)
	}

	if err := ch.Confirm(false); err != nil {
		return fail("enable confirms", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "campaign_publisher"),
		now:        time.Now,
	}, nil
}

type CampaignMessage struct {
	Action     string      `json:"action"`
	CampaignID string      `json:"campaignId"`
	Kind       domain.Kind `json:"kind"`
	Item       domain.Item `json:"item"`
	Timestamp  time.Time   `json:"timestamp"`
}

func NewCampaignMessage(item *domain.Item, campaignID string, now time.Time) CampaignMessage {
	return CampaignMessage{
		Action:     ActionCampaignCreate,
		CampaignID: campaignID,
		Kind:       item.Kind,
		Item:       *item,
		Timestamp:  now.UTC(),
	}
}

// CreateCampaign publishes a campaign request for item and waits for the
// broker confirm. It returns the generated campaign id.
func (r *RabbitMQ) CreateCampaign(ctx context.Context, item *domain.Item) (string, error) {
	campaignID := uuid.NewString()
	now := r.now()

	body, err := json.Marshal(NewCampaignMessage(item, campaignID, now))
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}

	confirm, err := r.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    campaignID,
			Body:         body,
			Timestamp:    now,
		},
	)
	if err != nil {
		return "", fmt.Errorf("publish message: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return "", fmt.Errorf("wait for confirm: %w", err)
	}
	if !acked {
		return "", ErrNotConfirmed
	}

	r.logger.Debug("campaign requested",
		"id", item.ID,
		"kind", item.Kind,
		"campaign_id", campaignID,
	)

	return campaignID, nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
