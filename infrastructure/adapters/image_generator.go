package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/config"
)

type imageApiRequest struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model"`
	Size           string `json:"size"`
	Number         int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type imageApiResponse struct {
	Data []struct {
		B64Json string `json:"b64_json"`
	} `json:"data"`
}

type imageGenerator struct {
	ContentFetcher
	logger         outbound.LoggerPort
	imageGenConfig *config.ImageGenConfig
}

func NewImageGenerator(contentFetcher ContentFetcher, imageGenConfig *config.ImageGenConfig,
	logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &imageGenerator{
		logger:         logger,
		ContentFetcher: contentFetcher,
		imageGenConfig: imageGenConfig,
	}
}

func (i *imageGenerator) Generate(ctx context.Context, description string) ([]byte, error) {
	req, err := i.getRequest(ctx, description)
	if err != nil {
		i.logger.Error(err, "Failed to create the image HTTP request")
		return nil, err
	}

	rawRes, err := i.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var imageRes imageApiResponse
	err = json.Unmarshal(rawRes, &imageRes)
	if err != nil {
		i.logger.Error(err, "Failed to unmarshal the image response")
		return nil, err
	}

	if len(imageRes.Data) == 0 {
		return nil, fmt.Errorf("image response contains no data")
	}

	decodedImage, err := base64.StdEncoding.DecodeString(imageRes.Data[0].B64Json)
	if err != nil {
		i.logger.Error(err, "Failed to decode the image payload")
		return nil, err
	}

	return decodedImage, nil
}

func (i *imageGenerator) getRequest(ctx context.Context, description string) (*http.Request, error) {
	reqBody := imageApiRequest{
		Prompt:         fmt.Sprintf("%s, children's book illustration style", description),
		Model:          i.imageGenConfig.Model,
		Size:           i.imageGenConfig.Size,
		Number:         1,
		ResponseFormat: "b64_json",
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		i.logger.Error(err, "Failed to marshal the image request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", i.imageGenConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		i.logger.Error(err, "Failed to create the image HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+i.imageGenConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
