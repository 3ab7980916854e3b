package dto

import "github.com/lissani/devfest-vivid-stroy/domain"

type CreateStoryRequest struct {
	Prompt              string `json:"prompt" binding:"required"`
	Style               string `json:"style"`
	VoiceID             string `json:"voice_id"`
	PageCount           int    `json:"page_count"`
	UseStyleConsistency bool   `json:"use_style_consistency"`
	OrderedDelivery     bool   `json:"ordered_delivery"`
}

type CreateStoryResponse struct {
	StoryID string        `json:"story_id"`
	Prompt  string        `json:"prompt"`
	Pages   []domain.Page `json:"pages"`
}
