package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lander2k2/silenus-provisioner/pkg/config"
	"github.com/lander2k2/silenus-provisioner/pkg/httpapi"
	"github.com/lander2k2/silenus-provisioner/pkg/orchestrator"
	"github.com/lander2k2/silenus-provisioner/pkg/store"
	"github.com/lander2k2/silenus-provisioner/pkg/taskqueue"

	amqp "github.com/rabbitmq/amqp091-go"
)

const httpShutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.ProcessAPI()
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

	deps := &orchestrator.Deps{
		Store:     st,
		Services:  orchestrator.AWSServiceFactory{AWS: cfg.AWS},
		Publisher: pub,
		Log:       log,
	}

	srv := &httpapi.Server{Store: st, Orchestrator: deps, Log: log}

	httpSrv := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("error shutting down http server")
		}
	}()

	log.WithField("addr", cfg.BindAddr).Info("provisioner-api listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("error serving http: %s", err)
	}
}
