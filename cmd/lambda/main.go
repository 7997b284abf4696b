package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"crsc/internal/platform/config"
	"crsc/internal/platform/logger"
	"crsc/internal/platform/tracer"
	"crsc/internal/statuscheck"
	"crsc/internal/transport/lambda"
)

// main serves the status lookup from API Gateway proxy events.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	svc := statuscheck.New(
		statuscheck.WithLogger(log),
		statuscheck.WithTracer(tracer.NewOTel(nil)),
	)

	log.Info("starting lambda handler", "environment", cfg.Environment)
	awslambda.Start(lambda.NewAdapter(svc).Handle)
}
