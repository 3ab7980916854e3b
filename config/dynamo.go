package config

import (
	"fmt"
	"os"
	"strconv"
)

type DynamoConfig struct {
	TableName  string
	TtlMinutes int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("RUNS_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("RUNS_TABLE_NAME must be set")
	}

	ttlMinutes := 60 * 24
	if ttl := os.Getenv("RUNS_TTL_MINUTES"); ttl != "" {
		parsed, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RUNS_TTL_MINUTES: %w", err)
		}
		ttlMinutes = parsed
	}

	return &DynamoConfig{
		TableName:  tableName,
		TtlMinutes: ttlMinutes,
	}, nil
}
