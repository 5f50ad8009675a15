package nlu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/parrillasur/reservabot/internal/domain/conversation"
	"github.com/parrillasur/reservabot/pkg/logger"
)

const defaultModel = "gemini-2.0-flash"

// Gemini implementa las capacidades de clasificación, extracción y
// respuesta sobre la API de Gemini
type Gemini struct {
	client *genai.Client
	model  string
	log    logger.Logger
	now    func() time.Time
}

// NewGemini crea un nuevo cliente de NLU respaldado en Gemini
func NewGemini(ctx context.Context, apiKey, model string, log logger.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error al crear cliente de GenAI: %w", err)
	}

	if model == "" {
		model = defaultModel
	}

	return &Gemini{
		client: client,
		model:  model,
		log:    log,
		now:    time.Now,
	}, nil
}

// Classify clasifica el mensaje dentro del vocabulario cerrado de
// intenciones; una etiqueta desconocida se degrada a OTRO
func (g *Gemini) Classify(ctx context.Context, text string) (conversation.Intent, error) {
	raw, err := g.generate(ctx, classifierPrompt(), nil, text, true)
	if err != nil {
		return conversation.IntentOtro, err
	}

	label := conversation.Intent(strings.ToUpper(strings.TrimSpace(raw)))
	if !conversation.ValidIntent(label) {
		g.log.Warn("Intención fuera del vocabulario, degradando a OTRO", "label", string(label))
		return conversation.IntentOtro, nil
	}

	g.log.Info("Intención identificada", "intent", string(label))
	return label, nil
}

// Extract convierte el mensaje en campos candidatos de reserva
func (g *Gemini) Extract(ctx context.Context, text string, history []conversation.Turn) (*conversation.Extraction, error) {
	raw, err := g.generate(ctx, extractionPrompt(g.now()), history, text, true)
	if err != nil {
		return nil, err
	}

	g.log.Debug("Resultado de extracción", "raw", raw)
	return decodeExtraction(raw)
}

// Reply genera una respuesta conversacional con el prompt de sistema y el
// historial recibidos
func (g *Gemini) Reply(ctx context.Context, system string, history []conversation.Turn, text string) (string, error) {
	return g.generate(ctx, system, history, text, false)
}

func (g *Gemini) generate(ctx context.Context, system string, history []conversation.Turn, text string, deterministic bool) (string, error) {
	contents := buildContents(history, text)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}
	if deterministic {
		config.Temperature = genai.Ptr[float32](0)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("error al llamar a Gemini: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// buildContents arma el historial en el formato de la API de Gemini y
// agrega el mensaje actual al final como turno del usuario
func buildContents(history []conversation.Turn, text string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == conversation.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return append(contents, genai.NewContentFromText(text, genai.RoleUser))
}
