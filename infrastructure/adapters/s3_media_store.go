package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/config"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

type s3MediaStore struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3MediaStore(s3Svc *s3.S3, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.MediaStorePort {
	return &s3MediaStore{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3MediaStore) Save(ctx context.Context, media domain.PageMedia) (string, error) {
	itemPath := s.getItemPath(media)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(media.Content),
		ContentLength: aws.Int64(int64(len(media.Content))),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload media to S3", map[string]interface{}{
			"bucket":   s.s3Config.BucketName,
			"story_id": media.StoryID,
			"page":     media.PageIndex,
			"type":     media.Type,
		})
		return "", err
	}

	locator := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, itemPath)
	s.logger.DebugWithFields("Uploaded media to S3", map[string]interface{}{
		"locator": locator,
	})

	return locator, nil
}

func (s *s3MediaStore) getItemPath(media domain.PageMedia) string {
	extension := "webp"
	if media.Type == domain.AudioMediaType {
		extension = "mp3"
	}
	return fmt.Sprintf("story/%s/%s/page_%d.%s", media.StoryID, media.Type, media.PageIndex, extension)
}
