package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/lander2k2/silenus-provisioner/pkg/config"
	"github.com/lander2k2/silenus-provisioner/pkg/orchestrator"
	"github.com/lander2k2/silenus-provisioner/pkg/store"
	"github.com/lander2k2/silenus-provisioner/pkg/taskqueue"

	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	log := logrus.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.ProcessWorker()
	if err != nil {
		log.Fatalf("error loading configuration: %s", err)
	}

	st, err := store.New(ctx, cfg.Store.DSN())
	if err != nil {
		log.Fatalf("error connecting to store: %s", err)
	}
	defer st.Close()

	conn, err := amqp.Dial(cfg.Queue.URL)
	if err != nil {
		log.Fatalf("error connecting to queue: %s", err)
	}
	defer conn.Close()

	pub, err := taskqueue.NewPublisher(conn, cfg.Queue.MonitorQueue)
	if err != nil {
		log.Fatalf("error creating task publisher: %s", err)
	}
	defer pub.Close()

	consumer, err := taskqueue.NewConsumer(conn, cfg.Queue.MonitorQueue, cfg.Queue.PrefetchCount, log)
	if err != nil {
		log.Fatalf("error creating task consumer: %s", err)
	}

	deps := &orchestrator.Deps{
		Store:     st,
		Services:  orchestrator.AWSServiceFactory{AWS: cfg.AWS},
		Publisher: pub,
		Monitor:   cfg.Monitor,
		Log:       log,
	}

	consumer.On(taskqueue.MonitorStack, deps.MonitorStack)
	consumer.On(taskqueue.MonitorClusterNet, deps.MonitorClusterNetwork)
	consumer.On(taskqueue.MonitorClusterNodes, deps.MonitorClusterNodes)
	consumer.On(taskqueue.MonitorDecommission, deps.MonitorDecommission)

	log.WithField("queue", cfg.Queue.MonitorQueue).Info("provisioner-worker consuming")
	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("error running consumer: %s", err)
	}
}
