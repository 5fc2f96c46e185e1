package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/bahadricoz/shift/internal/api"
	"github.com/bahadricoz/shift/internal/config"
	"github.com/bahadricoz/shift/internal/exchange/producer"
	"github.com/bahadricoz/shift/internal/repository/accesslink"
	"github.com/bahadricoz/shift/internal/repository/department"
	"github.com/bahadricoz/shift/internal/repository/member"
	"github.com/bahadricoz/shift/internal/repository/schema"
	"github.com/bahadricoz/shift/internal/repository/shift"
	"github.com/bahadricoz/shift/library/pg"
	"github.com/bahadricoz/shift/library/yamlreader"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	cfg := MustNewConfig(parseFlags())

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	pgClient, err := pg.NewPG(rootCtx, cfg.Postgres.Conn.Value, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgClient.Close()

	if err := schema.Apply(rootCtx, pgClient.Pool()); err != nil {
		log.Fatal().Err(err).Msg("schema apply failed")
	}

	departmentRepo := department.NewRepository(pgClient.Pool())
	memberRepo := member.NewRepository(pgClient.Pool())
	shiftRepo := shift.NewRepository(pgClient.Pool())
	linkRepo := accesslink.NewRepository(pgClient.Pool())

	deps := api.ServiceDeps{
		Port:           cfg.API.Port.Value,
		BaseURL:        cfg.API.BaseURL.Value,
		SetupKey:       cfg.API.SetupKey.Value,
		DepartmentRepo: departmentRepo,
		MemberRepo:     memberRepo,
		ShiftRepo:      shiftRepo,
		LinkRepo:       linkRepo,
	}

	// The change feed is optional: no bootstrap address means no producer
	// and the API publishes nothing.
	if cfg.Kafka.Bootstrap.Value != "" {
		scheduleProducer, err := initScheduleProducer(cfg.Kafka)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka producer init failed")
		}
		defer func() { _ = scheduleProducer.Close() }()

		deps.Producer = scheduleProducer
	} else {
		log.Info().Msg("kafka bootstrap not configured, change feed disabled")
	}

	apiService := api.NewService(deps)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Msg("starting HTTP API")
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API exited with error")

			return err
		}

		log.Info().Msg("HTTP API stopped")

		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		<-done
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initScheduleProducer(kafkaConfig config.KafkaConfig) (*producer.ScheduleProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	sCfg.ClientID = kafkaConfig.ProducerClientID.Value
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer([]string{kafkaConfig.Bootstrap.Value}, sCfg)
	if err != nil {
		return nil, err
	}

	return producer.NewScheduleProducer(
		sp,
		producer.Config{
			TopicChanges: kafkaConfig.Topics.Changes.Value,
			Source:       "shift-planner-api",
		},
		log.Logger,
	), nil
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)

	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("failed to read application config")
		return nil
	}

	return cfg
}

func parseFlags() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	godotenv.Load(".env")

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath
}
