package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"football_assistance_backend/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is one model call: a system instruction, prior turns and the new prompt.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	History           []AIChatMessage
	Prompt            string
}

// Generator produces a single text completion.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GeminiGenerator calls Google Gemini through the generative-ai-go SDK.
type GeminiGenerator struct {
	Client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{Client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := g.Client.GenerativeModel(req.Model)
	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemInstruction)},
		}
	}

	cs := model.StartChat()
	for _, h := range req.History {
		role := "user"
		if h.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(h.Content)},
		})
	}

	res, err := cs.SendMessage(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned an empty answer")
	}
	return sb.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.Client.Close()
}

// OpenAIGenerator talks to any OpenAI-compatible /chat/completions endpoint.
type OpenAIGenerator struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAIGenerator(baseURL, apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	messages := make([]AIChatMessage, 0, len(req.History)+2)
	if req.SystemInstruction != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: req.SystemInstruction})
	}
	messages = append(messages, req.History...)
	messages = append(messages, AIChatMessage{Role: "user", Content: req.Prompt})

	jsonData, err := json.Marshal(chatCompletionRequest{Model: req.Model, Messages: messages})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// AIService owns the configured generator and the model names, which may change on config reload.
type AIService struct {
	Generator Generator

	mu         sync.RWMutex
	model      string
	videoModel string
}

func NewAIService(ctx context.Context, cfg config.AIConfig) (*AIService, error) {
	var gen Generator
	switch cfg.Provider {
	case ProviderOpenAI:
		gen = NewOpenAIGenerator(cfg.BaseURL, cfg.APIKey)
	case ProviderGemini, "":
		g, err := NewGeminiGenerator(ctx, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		gen = g
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
	s := NewAIServiceWithGenerator(gen)
	s.SetModels(cfg.Model, cfg.VideoModel)
	return s, nil
}

func NewAIServiceWithGenerator(gen Generator) *AIService {
	return &AIService{Generator: gen, model: "gemini-1.5-flash", videoModel: "gemini-1.5-flash"}
}

func (s *AIService) SetModels(model, videoModel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if model != "" {
		s.model = model
	}
	if videoModel != "" {
		s.videoModel = videoModel
	} else if model != "" {
		s.videoModel = model
	}
}

func (s *AIService) models() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model, s.videoModel
}

// Coach answers a player's question. history is oldest first and may be empty.
func (s *AIService) Coach(ctx context.Context, profile *CoachProfile, history []AIChatMessage, message string) (string, error) {
	model, _ := s.models()
	return s.Generator.Generate(ctx, GenerateRequest{
		Model:             model,
		SystemInstruction: CoachSystemPrompt(profile),
		History:           history,
		Prompt:            message,
	})
}

// AnalyzeScene writes match feedback from the reflection context. The video itself is not inspected.
func (s *AIService) AnalyzeScene(ctx context.Context, scene AnalysisContext) (string, error) {
	_, model := s.models()
	return s.Generator.Generate(ctx, GenerateRequest{
		Model:  model,
		Prompt: AnalysisPrompt(scene),
	})
}

// unavailableGenerator stands in when no AI provider could be configured.
type unavailableGenerator struct{ cause error }

func (g unavailableGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	return "", fmt.Errorf("AI provider not configured: %w", g.cause)
}

// NewUnavailableAIService keeps the rest of the API running when the provider fails to initialise.
func NewUnavailableAIService(cause error) *AIService {
	return NewAIServiceWithGenerator(unavailableGenerator{cause: cause})
}
