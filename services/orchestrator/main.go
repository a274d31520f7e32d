// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/meetmindai/meetmind/services/llm"
	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
	"github.com/meetmindai/meetmind/services/orchestrator/directory"
	"github.com/meetmindai/meetmind/services/orchestrator/handlers"
	"github.com/meetmindai/meetmind/services/orchestrator/observability"
	"github.com/meetmindai/meetmind/services/orchestrator/recommend"
	"github.com/meetmindai/meetmind/services/orchestrator/routes"
	"github.com/meetmindai/meetmind/services/orchestrator/staffindex"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "meetmind-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("meetmind-orchestrator")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// connectWeaviate parses the configured URL and returns a client, or nil
// when the URL is absent or malformed (lightweight mode).
func connectWeaviate() *weaviate.Client {
	weaviateURL := os.Getenv("WEAVIATE_SERVICE_URL")
	// Trim quotes and whitespace in case the container runtime passes them literally
	weaviateURL = strings.Trim(weaviateURL, "\"' ")

	if weaviateURL == "" || !strings.Contains(weaviateURL, "http") {
		slog.Info("WEAVIATE_SERVICE_URL not set or empty. Running in lightweight mode (directory only).")
		return nil
	}

	parsedURL, err := url.Parse(weaviateURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		slog.Warn("WEAVIATE_SERVICE_URL is invalid. Running in lightweight mode.",
			"url", weaviateURL, "error", err)
		return nil
	}

	client, err := weaviate.NewClient(weaviate.Config{
		Host:   parsedURL.Host,
		Scheme: parsedURL.Scheme,
	})
	if err != nil {
		slog.Error("Failed to create Weaviate client", "error", err)
		return nil
	}
	datatypes.EnsureWeaviateSchema(client)
	return client
}

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	port := os.Getenv("ORCHESTRATOR_PORT")
	if port == "" {
		port = "12210"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	metrics := observability.InitMetrics()

	weaviateClient := connectWeaviate()

	log.Println("Configuring the LLM Client")
	llmClient, err := llm.NewClientFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	staffDBPath := os.Getenv("STAFF_DB_PATH")
	if staffDBPath == "" {
		staffDBPath = "/data/staff"
		slog.Warn("STAFF_DB_PATH not set, defaulting to /data/staff")
	}
	storeCfg := directory.DefaultConfig(staffDBPath)
	storeCfg.Logger = logger
	store, err := directory.Open(storeCfg)
	if err != nil {
		log.Fatalf("Failed to open the staff directory store: %v", err)
	}
	defer store.Close()

	synonyms, err := recommend.LoadDefaultSynonyms()
	if err != nil {
		log.Fatalf("Failed to load the synonym table: %v", err)
	}
	expander := recommend.NewKeywordExpander(synonyms)

	generate := func(ctx context.Context, prompt string, temperature float32) (string, error) {
		t := temperature
		return llmClient.Generate(ctx, prompt, llm.GenerationParams{Temperature: &t})
	}
	ranker := recommend.NewLLMAssigneeRanker(generate, recommend.DefaultRankerConfig())

	var recommender handlers.AssigneeRecommender
	var syncer *staffindex.Syncer
	if weaviateClient != nil {
		searcher := recommend.NewWeaviateStaffRetriever(weaviateClient)
		recommender = recommend.NewRecommender(expander, searcher, ranker, store, metrics)
		syncer = staffindex.NewSyncer(weaviateClient, metrics)
	} else {
		slog.Warn("Assignee recommendation and search admin routes disabled in lightweight mode")
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("meetmind-orchestrator"))

	routes.SetupRoutes(router, weaviateClient, recommender, store, syncer)

	log.Println("Starting the orchestrator server on port ", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
