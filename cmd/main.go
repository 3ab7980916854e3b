package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/lissani/devfest-vivid-stroy/application/services"
	"github.com/lissani/devfest-vivid-stroy/config"
	"github.com/lissani/devfest-vivid-stroy/infrastructure/adapters"
	"github.com/lissani/devfest-vivid-stroy/infrastructure/gin_interface/controllers"
	mockbackends "github.com/lissani/devfest-vivid-stroy/mock"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	scriptConfig, err := config.GetScriptConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get script config")
	}

	imageGenConfig, err := config.GetImageGenConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get image generation config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	scriptStreamer := adapters.NewScriptStreamGenerator(scriptConfig, workerPool, zeroLogger)
	styleDeriver := adapters.NewStyleDeriver(contentFetcher, scriptConfig, zeroLogger)
	imageGenerator := adapters.NewImageGenerator(contentFetcher, imageGenConfig, zeroLogger)
	speechGenerator := adapters.NewSpeechGenerator(contentFetcher, elevenLabsConfig, zeroLogger)

	mediaStore := adapters.NewS3MediaStore(s3Client, s3Config, zeroLogger)
	runStore := adapters.NewDynamoRunStore(zeroLogger, dynamoClient, dynamoConfig)

	pageTextGenerator := services.NewPageTextGenerator(zeroLogger, scriptStreamer)
	mediaRenderer := services.NewPageMediaRenderer(zeroLogger, imageGenerator, speechGenerator,
		mediaStore, workerPool, pipelineConfig.CallTimeout, pipelineConfig.MaxAttempts)
	styleDirector := services.NewStyleDirector(zeroLogger, styleDeriver,
		pipelineConfig.CallTimeout, pipelineConfig.MaxAttempts)
	runRecorder := services.NewRunRecorder(zeroLogger, workerPool, runStore)

	orchestrator := services.NewStoryPipelineOrchestrator(zeroLogger, workerPool,
		pageTextGenerator, mediaRenderer, styleDirector, runRecorder,
		pipelineConfig.MaxConcurrentPages)

	storyController := controllers.NewStoryController(zeroLogger, orchestrator, pipelineConfig)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	if os.Getenv("MOCK_BACKENDS") == "true" {
		mockbackends.Init(router, zeroLogger)
	}

	storyController.RegisterRoutes(router, workerPool)

	if err := router.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
