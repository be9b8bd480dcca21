package llm

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/prepview/server/domain/entities"
	"github.com/prepview/server/domain/repositories"
)

const (
	defaultModel          = "gemini-2.0-flash"
	defaultTemperature    = 0.7
	defaultMaxTokens      = 256
	defaultTimeoutSeconds = 20
	maxAttempts           = 3
)

// GeminiConfig holds configuration for the GeminiFeedback adapter
// Required fields:
// - APIKey: Your Google AI API key
// Optional fields with defaults:
// - Model: The model ID to use (default: "gemini-2.0-flash")
// - Temperature: Sampling temperature between 0 and 1 (default: 0.7)
// - MaxOutputTokens: Response length cap (default: 256)
// - TimeoutSeconds: Per-call timeout (default: 20)
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	TimeoutSeconds  int
}

// NewGeminiConfigFromEnv creates a GeminiConfig from environment variables
func NewGeminiConfigFromEnv() GeminiConfig {
	config := GeminiConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	}

	if tempStr := os.Getenv("GEMINI_TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 32); err == nil && temp >= 0 && temp <= 1 {
			config.Temperature = float32(temp)
		}
	}

	if timeoutStr := os.Getenv("GEMINI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			config.TimeoutSeconds = timeout
		}
	}

	return config
}

// ValidateGeminiConfig validates the GeminiConfig
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("Google AI API key is required")
	}

	if config.Temperature != 0 && (config.Temperature < 0 || config.Temperature > 1) {
		return fmt.Errorf("temperature must be between 0 and 1, got %f", config.Temperature)
	}

	if config.MaxOutputTokens < 0 {
		return fmt.Errorf("maxOutputTokens must be positive, got %d", config.MaxOutputTokens)
	}

	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}

	return nil
}

// GeminiFeedback implements the FeedbackGenerator interface using Google's
// Gemini API. Each call is a single-turn generation: the style prompt sets
// the interviewer persona and the user prompt carries the question plus the
// candidate's transcript.
type GeminiFeedback struct {
	client          *genai.Client
	logger          *zap.Logger
	model           string
	temperature     float32
	maxOutputTokens int
	timeoutSeconds  int
}

var _ repositories.FeedbackGenerator = (*GeminiFeedback)(nil)

// NewGeminiFeedback creates a new Gemini feedback generator
func NewGeminiFeedback(config GeminiConfig, logger *zap.Logger) (*GeminiFeedback, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = float32(defaultTemperature)
	}

	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = defaultMaxTokens
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	return &GeminiFeedback{
		client:          client,
		logger:          logger,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		timeoutSeconds:  timeoutSeconds,
	}, nil
}

// GenerateFollowup implements repositories.FeedbackGenerator
func (g *GeminiFeedback) GenerateFollowup(ctx context.Context, style entities.InterviewerStyle, question string, transcript string) (string, error) {
	systemPrompt := neutralSystemPrompt
	if style == entities.StyleChallenging {
		systemPrompt = challengingSystemPrompt
	}

	userText := transcript
	if userText == "" {
		userText = "(no transcript; only voice features are available)"
	}

	userPrompt := fmt.Sprintf(
		"You just asked the interview question: %q\n"+
			"The candidate answered (ASR transcript or summary):\n%s\n\n"+
			"Give your reaction as the interviewer.\n"+
			"Remember:\n"+
			"- You expect STAR structure (Situation, Task, Action, Result).\n"+
			"- You only provide feedback, you do NOT ask new questions.\n"+
			"- If the answer is clearly off-topic, nonsense, or unrelated to the question, "+
			"explicitly mention this and recommend that they refocus on the question.\n"+
			"- Respond in 2-3 natural spoken-style sentences.",
		question, userText)

	contents := []*genai.Content{
		genai.NewContentFromText(systemPrompt, genai.RoleUser),
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	generateConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: int32(g.maxOutputTokens),
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.timeoutSeconds)*time.Second)
	defer cancel()

	var response *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		response, err = g.client.Models.GenerateContent(ctx, g.model, contents, generateConfig)
		if err == nil {
			break
		}

		g.logger.Warn("Failed to generate followup, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if attempt < maxAttempts-1 {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate followup: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var followup string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			followup += part.Text
		}
	}
	followup = strings.TrimSpace(followup)
	if followup == "" {
		return "", fmt.Errorf("empty response")
	}

	g.logger.Info("Generated followup",
		zap.String("style", string(style)),
		zap.String("preview", followup[:min(50, len(followup))]))

	return followup, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
