package adapters

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/config"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

type dynamoRunItem struct {
	StoryId        string  `dynamodbav:"story_id"`
	Prompt         string  `dynamodbav:"prompt"`
	PageCount      int     `dynamodbav:"page_count"`
	DegradedPages  int     `dynamodbav:"degraded_pages"`
	ScriptStageMs  int64   `dynamodbav:"script_stage_ms"`
	MediaStageMs   int64   `dynamodbav:"media_stage_ms"`
	StartedAtEpoch int64   `dynamodbav:"started_at"`
	TTL            int64   `dynamodbav:"ttl"`
	DegradedRatio  float64 `dynamodbav:"degraded_ratio"`
}

type dynamoRunStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoRunStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	dynamoConfig *config.DynamoConfig) outbound.RunStorePort {
	return &dynamoRunStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (c *dynamoRunStore) Save(ctx context.Context, run domain.PipelineRun) error {
	item := dynamoRunItem{
		StoryId:        run.StoryID,
		Prompt:         run.Prompt,
		PageCount:      run.PageCount,
		DegradedPages:  run.DegradedPages,
		ScriptStageMs:  run.ScriptStage.Milliseconds(),
		MediaStageMs:   run.MediaStage.Milliseconds(),
		StartedAtEpoch: run.StartedAt.Unix(),
		TTL:            time.Now().Add(time.Duration(c.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	if run.PageCount > 0 {
		item.DegradedRatio = float64(run.DegradedPages) / float64(run.PageCount)
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to marshal run item", map[string]interface{}{
			"story_id": run.StoryID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.TableName),
	}

	_, err = c.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to save run item", map[string]interface{}{
			"story_id": run.StoryID,
		})
		return err
	}

	return nil
}
