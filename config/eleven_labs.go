package config

import (
	"fmt"
	"os"
	"strconv"
)

type ElevenLabsConfig struct {
	ApiUrl          string
	ApiKey          string
	ModelId         string
	Stability       float64
	SimilarityBoost float64
}

func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiUrl := os.Getenv("ELEVEN_LABS_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_URL must be set")
	}
	apiKey := os.Getenv("ELEVEN_LABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_KEY must be set")
	}
	modelId := os.Getenv("ELEVEN_LABS_MODEL_ID")
	if modelId == "" {
		modelId = "eleven_multilingual_v2"
	}
	stabilityVal := 0.4
	if stability := os.Getenv("ELEVEN_LABS_STABILITY"); stability != "" {
		parsed, err := strconv.ParseFloat(stability, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ELEVEN_LABS_STABILITY: %w", err)
		}
		stabilityVal = parsed
	}
	similarityBoostVal := 0.7
	if similarityBoost := os.Getenv("ELEVEN_LABS_SIMILARITY_BOOST"); similarityBoost != "" {
		parsed, err := strconv.ParseFloat(similarityBoost, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ELEVEN_LABS_SIMILARITY_BOOST: %w", err)
		}
		similarityBoostVal = parsed
	}

	return &ElevenLabsConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		ModelId:         modelId,
		Stability:       stabilityVal,
		SimilarityBoost: similarityBoostVal,
	}, nil
}
