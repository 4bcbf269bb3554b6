// Command checkpoint generates a reader checkpoint for a Kinesis stream and
// optionally persists it, so a consumer can resume from the printed positions.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	checkpoint "github.com/alexgridx/kinesis-checkpoint"
	redisstore "github.com/alexgridx/kinesis-checkpoint/store/redis"
)

const maxAttempts = 3

var (
	applicationName  = flag.String("application.name", "checkpoint", "Consumer app name")
	kinesisAWSRegion = flag.String("kinesis.region", "us-west-2", "AWS Region")
	kinesisEndpoint  = flag.String("kinesis.endpoint", "", "Kinesis endpoint (set for kinesalite et al.)")
	kinesisStream    = flag.String("kinesis.stream", "", "Stream name")
	startingPosition = flag.String("starting.position", "latest", "Starting position: latest, trim-horizon or at-timestamp")
	startingTime     = flag.String("starting.timestamp", "", "RFC3339 timestamp for at-timestamp")
	redisAddr        = flag.String("redis.addr", "", "Persist the snapshot in Redis at this address")
	resume           = flag.Bool("resume", false, "Reconcile against the snapshot persisted in Redis")
)

func main() {
	flag.Parse()

	if *kinesisStream == "" {
		slog.Error("must provide stream name")
		os.Exit(1)
	}

	sp, err := startingPoint()
	if err != nil {
		slog.Error("starting point error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// client
	loadOptions := []func(*config.LoadOptions) error{
		config.WithRegion(*kinesisAWSRegion),
	}
	if *kinesisEndpoint != "" {
		loadOptions = append(loadOptions,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("user", "pass", "token")),
		)
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		slog.Error("unable to load SDK config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	client := checkpoint.NewClient(kinesis.NewFromConfig(cfg, func(o *kinesis.Options) {
		if *kinesisEndpoint != "" {
			o.BaseEndpoint = kinesisEndpoint
		}
	}))

	opts := []checkpoint.Option{
		checkpoint.WithLogger(slog.Default()),
		checkpoint.WithMetricRegistry(prometheus.DefaultRegisterer),
	}

	var store checkpoint.Store
	if *redisAddr != "" {
		redisStore, err := redisstore.New(*applicationName,
			redisstore.WithClient(redis.NewClient(&redis.Options{Addr: *redisAddr})))
		if err != nil {
			slog.Error("store error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store = redisStore
		opts = append(opts, checkpoint.WithStore(store))
	}

	generator, err := checkpoint.New(*kinesisStream, sp, opts...)
	if err != nil {
		slog.Error("generator error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var snapshot checkpoint.ReaderCheckpoint
	for attempt := 1; ; attempt++ {
		if *resume {
			snapshot, err = generator.Resume(ctx, client)
		} else {
			snapshot, err = generator.Generate(ctx, client)
		}
		if err == nil {
			break
		}
		if attempt < maxAttempts && checkpoint.IsRecoverable(err) {
			slog.Warn("transient generate error, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		slog.Error("generate error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if store != nil {
		if err := store.SetReaderCheckpoint(ctx, *kinesisStream, snapshot); err != nil {
			slog.Error("store error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		slog.Error("encode error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func startingPoint() (checkpoint.StartingPoint, error) {
	switch *startingPosition {
	case "latest":
		return checkpoint.Latest(), nil
	case "trim-horizon":
		return checkpoint.TrimHorizon(), nil
	case "at-timestamp":
		t, err := time.Parse(time.RFC3339, *startingTime)
		if err != nil {
			return checkpoint.StartingPoint{}, fmt.Errorf("parse starting.timestamp: %w", err)
		}
		return checkpoint.AtTimestamp(t)
	default:
		return checkpoint.StartingPoint{}, fmt.Errorf("unknown starting position %q", *startingPosition)
	}
}
