package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"softshell.com/assistant-service/internal/config"
)

const assistantSystemContext = "You are an AI assistant for SoftShell, a software license marketplace that helps users sell their unused software licenses. " +
	"Respond to user queries about the platform with friendly, concise answers. " +
	"If you don't know the answer to a question, guide the user to contact support via the contact form.\n\n" +
	"Key information about SoftShell:\n" +
	"- SoftShell allows users to sell unused software licenses for immediate revenue\n" +
	"- The platform connects sellers with buyers\n" +
	"- SoftShell handles compliance and ensures secure transactions\n" +
	"- The selling process involves: 1) Upload license, 2) Get valuation, 3) Get paid\n" +
	"- Payments are typically processed within 48 hours\n" +
	"- SoftShell supports major software vendors"

// LLMService wraps the Gemini client. Each completion is attempted against a
// primary model first and, on failure, against a fallback model with one
// flattened prompt. Different API tiers expose different model availability,
// so callers must not assume the primary model exists.
type LLMService struct {
	client        *genai.Client
	primaryModel  string
	fallbackModel string

	// attempt performs one generation against one model. Swappable in tests.
	attempt func(ctx context.Context, modelName string, history []*genai.Content, prompt string) (string, error)
}

func NewLLMService() *LLMService {
	s := &LLMService{
		primaryModel:  config.AppConfig.PrimaryModel,
		fallbackModel: config.AppConfig.FallbackModel,
	}
	s.attempt = s.generate

	if config.AppConfig.GeminiAPIKey == "" {
		return s
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}
	s.client = client
	return s
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

// Complete resolves a user query against Gemini, forwarding the prior
// transcript as conversational context. Any failure comes back as a
// *RemoteError so the orchestrator can pick the right presentation.
func (s *LLMService) Complete(ctx context.Context, query string, history []Message) (string, error) {
	contents := formatHistory(history)

	text, primaryErr := s.attempt(ctx, s.primaryModel, contents, query)
	if primaryErr == nil && text != "" {
		return text, nil
	}
	if primaryErr != nil {
		log.Printf("Primary model %s failed, retrying with %s: %v", s.primaryModel, s.fallbackModel, primaryErr)
	}

	flattened := fmt.Sprintf("%s\n\nUser question: %s\n\nPlease provide a helpful response:", assistantSystemContext, query)
	text, fallbackErr := s.attempt(ctx, s.fallbackModel, nil, flattened)
	if fallbackErr == nil && text != "" {
		return text, nil
	}
	if fallbackErr == nil {
		fallbackErr = fmt.Errorf("empty completion from model %s", s.fallbackModel)
	}
	log.Printf("Fallback model %s failed: %v", s.fallbackModel, fallbackErr)

	return "", classifyRemoteErr(fallbackErr)
}

// generate performs a single generation against the named model. With history
// the request runs as a chat session carrying the system instruction;
// without, the prompt is sent as-is (the flattened form already embeds the
// product context).
func (s *LLMService) generate(ctx context.Context, modelName string, history []*genai.Content, prompt string) (string, error) {
	if s.client == nil {
		return "", errors.New("no gemini client configured")
	}

	model := s.client.GenerativeModel(modelName)

	var resp *genai.GenerateContentResponse
	var err error
	if history != nil {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(assistantSystemContext)},
		}
		session := model.StartChat()
		session.History = history
		resp, err = session.SendMessage(ctx, genai.Text(prompt))
	} else {
		resp, err = model.GenerateContent(ctx, genai.Text(prompt))
	}
	if err != nil {
		return "", fmt.Errorf("gemini generate with model %s failed: %w", modelName, err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini response had no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("gemini response contained no text parts")
	}
	return b.String(), nil
}

// formatHistory maps prior transcript messages to Gemini chat turns. The
// seeded greeting is skipped so the model does not treat our scripted opener
// as its own earlier output.
func formatHistory(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		if msg.ID <= 1 {
			continue
		}
		role := "model"
		if msg.FromUser {
			role = "user"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return contents
}
