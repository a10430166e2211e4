// Package main implements the queue seeder: it lists the documents of a
// store collection and enqueues one detection job per document, which the
// worker then drains.
package main

import (
	"context"
	"flag"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/assetflow/labelworker/internal/config"
	"github.com/assetflow/labelworker/internal/platform/logger"
	"github.com/assetflow/labelworker/internal/platform/nuxeo"
	"github.com/assetflow/labelworker/internal/platform/sqsqueue"
	"github.com/assetflow/labelworker/internal/service"
)

func main() {
	collectionID := flag.String("collection", "", "collection to seed jobs from (required)")
	bucketName := flag.String("bucket", "", "S3 bucket holding the binaries (required)")
	keyPrefix := flag.String("prefix", "asset-binary", "key prefix of binaries in the bucket")
	flag.Parse()

	if *collectionID == "" || *bucketName == "" {
		flag.Usage()
		log.Fatal("both -collection and -bucket are required")
	}

	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load AWS configuration: %v", err)
	}

	primaryQueue, err := sqsqueue.NewQueue(appLogger, awssqs.NewFromConfig(awsCfg), cfg.Queue.PrimaryURL)
	if err != nil {
		log.Fatalf("failed to create queue: %v", err)
	}

	nuxeoClient, err := nuxeo.NewClient(appLogger, cfg.Nuxeo)
	if err != nil {
		log.Fatalf("failed to create document store client: %v", err)
	}
	lister, err := nuxeo.NewLister(appLogger, nuxeoClient)
	if err != nil {
		log.Fatalf("failed to create lister: %v", err)
	}

	seeder, err := service.NewSeeder(appLogger, lister, primaryQueue, *bucketName, *keyPrefix)
	if err != nil {
		log.Fatalf("failed to create seeder: %v", err)
	}

	sent, err := seeder.Seed(ctx, *collectionID)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	appLogger.Info("seeding complete", "collection_id", *collectionID, "enqueued", sent)
}
