// Package gemini implements the food classifier on Google's Gemini
// API. The model reads one chat message plus a profile snapshot and
// answers with a calorie estimate and the reply to send back.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"

	apperrors "calorie-coach-bot/internal/common/errors"
	"calorie-coach-bot/internal/features/chat"
)

const systemPrompt = `You are a friendly personal nutrition assistant called "Calorie Coach".

Tasks:
1. Analyze the user's chat message for food they just ate.
2. Estimate calories aggressively but fairly.
3. Answer ONLY with JSON in this exact format:
{
  "calories_detected": number (0 if the message is not about food),
  "response_message": string (a casual chat reply; mention the user's remaining calories for today; use an emoji or two)
}`

type Classifier struct {
	client *genai.Client
	model  string
}

func NewClassifier(ctx context.Context, apiKey, model string) (*Classifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Classifier{client: client, model: model}, nil
}

// Classify implements chat.Classifier. Any transport or parse failure
// comes back as a classifier error; the caller drops the turn.
func (c *Classifier) Classify(ctx context.Context, displayName, text string, snap chat.Snapshot) (*chat.ClassifierResult, error) {
	userPrompt := fmt.Sprintf(
		"User: %s\n"+
			"Current status: consumed %d / target %d kcal today.\n"+
			"Profile: age %d, height %.0f cm, weight %.1f kg, goal %s.\n\n"+
			"User message: %s",
		displayName, snap.CaloriesConsumedToday, snap.DailyCalorieTarget,
		snap.AgeYears, snap.HeightCm, snap.WeightKg, snap.Goal, text)

	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr(float32(0.2)),
		},
	)
	if err != nil {
		return nil, apperrors.NewClassifierError("generate content", err)
	}

	return parseResult(resp.Text())
}

type modelOutput struct {
	// Fractional estimates are allowed in the raw output and rounded
	// before they reach the ledger.
	CaloriesDetected *float64 `json:"calories_detected"`
	ResponseMessage  string   `json:"response_message"`
}

// parseResult extracts the JSON object from the raw model text. The
// model occasionally wraps its answer in markdown fences or leading
// prose despite the JSON response type, so strip down to the outermost
// braces before unmarshaling.
func parseResult(raw string) (*chat.ClassifierResult, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, apperrors.NewClassifierError("no JSON object in model output", nil)
	}

	var out modelOutput
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &out); err != nil {
		return nil, apperrors.NewClassifierError("malformed model output", err)
	}
	if out.CaloriesDetected == nil || out.ResponseMessage == "" {
		return nil, apperrors.NewClassifierError("incomplete model output", nil)
	}

	return &chat.ClassifierResult{
		CaloriesDetected: int(math.Round(*out.CaloriesDetected)),
		ResponseMessage:  out.ResponseMessage,
	}, nil
}
