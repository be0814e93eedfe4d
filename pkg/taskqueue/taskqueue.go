// Package taskqueue publishes and consumes the monitor tasks that drive the
// orchestrator's asynchronous polling loops, backed by AMQP instead of the
// in-process goroutines a single-process design would use, so a worker
// restart doesn't drop an in-flight monitor.
package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

// TaskKind names a monitor task's handler.
type TaskKind string

const (
	MonitorStack        TaskKind = "monitor_stack"
	MonitorClusterNet   TaskKind = "monitor_cluster_network"
	MonitorClusterNodes TaskKind = "monitor_cluster_nodes"
	MonitorDecommission TaskKind = "monitor_decommission"
)

// Task is the envelope published for every monitor task. StackKey
// distinguishes a tier's primary/support VPC stacks and a cluster's
// network/nodes stacks; InterimOperation suppresses marking the
// jurisdiction active on stack completion, for stacks that are one step in
// a multi-stack provision. ActivateOnAllComplete is set on a tier's
// per-label stack monitors: the jurisdiction activates only once every
// sibling stack under StackKey has reached terminal success, not on this
// one stack's completion alone.
type Task struct {
	Kind                  TaskKind `json:"kind"`
	JurisdictionID        int64    `json:"jurisdiction_id"`
	StackKey              string   `json:"stack_key,omitempty"`
	InterimOperation      bool     `json:"interim_operation,omitempty"`
	ActivateOnAllComplete bool     `json:"activate_on_all_complete,omitempty"`
	NodesStackID          string   `json:"nodes_stack_id,omitempty"`
	NetStackID            string   `json:"net_stack_id,omitempty"`
}

// Publisher publishes tasks onto the provisioning queue.
type Publisher struct {
	ch    *amqp.Channel
	queue string
}

// NewPublisher declares the queue (idempotent) and returns a Publisher
// bound to it.
func NewPublisher(conn *amqp.Connection, queue string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errs.Wrap(errs.CloudError, err, "error opening AMQP channel")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, errs.Wrapf(errs.CloudError, err, "error declaring queue %s", queue)
	}
	return &Publisher{ch: ch, queue: queue}, nil
}

// Publish enqueues t as a persistent, JSON-encoded message.
func (p *Publisher) Publish(ctx context.Context, t Task) error {
	body, err := json.Marshal(t)
	if err != nil {
		return errs.Wrap(errs.CloudError, err, "error marshaling task")
	}
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error publishing %s task for jurisdiction %d", t.Kind, t.JurisdictionID)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// Handler processes one task. An error causes the delivery to be nacked
// without requeue, so the task is dropped and the error logged; handlers
// are expected to be idempotent since AMQP delivery here is at-least-once.
type Handler func(ctx context.Context, t Task) error

// Consumer drains a queue, dispatching each delivery to Handler.
type Consumer struct {
	ch       *amqp.Channel
	queue    string
	log      *logrus.Logger
	handlers map[TaskKind]Handler
}

// NewConsumer declares the queue, sets the channel's prefetch count, and
// returns a Consumer ready to have handlers registered.
func NewConsumer(conn *amqp.Connection, queue string, prefetch int, log *logrus.Logger) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errs.Wrap(errs.CloudError, err, "error opening AMQP channel")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, errs.Wrapf(errs.CloudError, err, "error declaring queue %s", queue)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, errs.Wrap(errs.CloudError, err, "error setting channel QoS")
	}
	return &Consumer{ch: ch, queue: queue, log: log, handlers: map[TaskKind]Handler{}}, nil
}

// On registers the handler invoked for deliveries of the given kind.
func (c *Consumer) On(kind TaskKind, h Handler) {
	c.handlers[kind] = h
}

// Run consumes until ctx is cancelled. Deliveries of an unregistered kind
// are acked and dropped with a warning log, rather than looping forever.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error consuming from queue %s", c.queue)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for queue %s closed", c.queue)
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	var t Task
	if err := json.Unmarshal(d.Body, &t); err != nil {
		c.log.WithError(err).Error("error decoding task, dropping delivery")
		_ = d.Ack(false)
		return
	}

	h, ok := c.handlers[t.Kind]
	if !ok {
		c.log.WithField("kind", t.Kind).Warn("no handler registered for task kind, dropping delivery")
		_ = d.Ack(false)
		return
	}

	if err := h(ctx, t); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"kind":            t.Kind,
			"jurisdiction_id": t.JurisdictionID,
		}).Error("task handler failed, dropping delivery")
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}
