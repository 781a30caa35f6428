// Package assistant exposes the ProBot interface node: AI-generated insights,
// asset analyses, reward deals and a conversational channel, all backed by
// the Gemini API. Every entry point degrades to a fixed fallback string (or
// an empty deal list) when the model is unreachable, so callers never see an
// error.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/aurafin/aura-backend/internal/domain"
	"github.com/aurafin/aura-backend/internal/usecase/dashboard"
)

// Default model names. The flash model serves insights, deals and chat; the
// pro model serves the deeper per-asset analysis.
const (
	DefaultFlashModel = "gemini-3-flash-preview"
	DefaultProModel   = "gemini-3-pro-preview"
)

// Degraded responses returned when the model call fails.
const (
	degradedInsight = "Node connectivity error. Analysis sequence failed."
	degradedAsset   = "Error: Could not retrieve market data packets."
	degradedChat    = "Packet loss detected. Secure channel unstable."
)

type faq struct {
	q, a string
}

var faqs = []faq{
	{"How do I obtain a Developer Coupon?", "Developer Coupons are unique 10-digit identifiers provided by authorized Aura Node Suppliers. Redirect to 'Customer Care' node for manual ledger audit."},
	{"Is my biometric data stored?", "Negative. Aura utilizes local device enclaves for biometric hashing. Raw data is never transmitted to central nodes."},
	{"What are the transfer limits?", "Standard daily threshold: $50,000. Verified high-liquidity nodes may request expansion via Superior Care Node."},
	{"Why is my transaction in 'Syncing' state?", "Cross-ledger validation in progress. Processing time: 2-5 seconds. Protocol requirement for node synchronization."},
}

func faqContext() string {
	entries := make([]string, len(faqs))
	for i, f := range faqs {
		entries[i] = fmt.Sprintf("Q: %s\nA: %s", f.q, f.a)
	}
	return strings.Join(entries, "\n\n")
}

var chatSystemInstruction = fmt.Sprintf(`You are "ProBot", a logic-based interface node for Aura. You function as "Robot Care".

RULES:
1. You are emotionless. You have no human feelings.
2. Your replies must be 100%% accurate and factual.
3. Do not use conversational filler, pleasantries, or politeness (e.g., avoid "how can I help", "I understand").
4. If a user asks a question, refer primarily to the KNOWLEDGE BASE below. If the answer is not there, provide the most technically accurate data-driven response possible.
5. Redirect specific administrative requests (coupons, manual ledger audits) to a "Superior Care Node" via the Customer Care section.

KNOWLEDGE BASE (FAQ Data):
%s

End of System Instruction. Proceed with data output only.`, faqContext())

// ChatMessage is one prior turn of the assistant conversation
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Service talks to the Gemini API on behalf of the assistant surfaces
type Service struct {
	Client     *genai.Client
	FlashModel string
	ProModel   string
}

// NewService creates an assistant service using the default model names
func NewService(client *genai.Client) *Service {
	return &Service{
		Client:     client,
		FlashModel: DefaultFlashModel,
		ProModel:   DefaultProModel,
	}
}

// FinancialInsight asks the model for technical insights over the identity's
// aggregate finances. Failures collapse to a fixed degraded string.
func (s *Service) FinancialInsight(ctx context.Context, summary dashboard.Summary, investments []domain.Investment) string {
	if s.Client == nil {
		return degradedInsight
	}

	names := make([]string, len(investments))
	for i, inv := range investments {
		names[i] = fmt.Sprintf("%s (%s)", inv.Name, inv.Symbol)
	}

	prompt := fmt.Sprintf(`
    As a high-precision data analysis node for Aura, analyze this financial dataset and provide 3 purely technical, accurate insights.
    Profile:
    - Total Spent: $%s
    - Category Distribution: %s
    - Assets: $%s
    - Asset Log: %s

    Tone: Purely robotic, objective, and accurate. Avoid human emotional markers. Use data-driven terminology.
  `, summary.TotalSpent, categoryDistribution(summary), summary.InvestmentValue, strings.Join(names, ", "))

	resp, err := s.Client.Models.GenerateContent(ctx, s.FlashModel, genai.Text(prompt), nil)
	if err != nil {
		zap.L().Warn("insight generation failed", zap.Error(err))
		return degradedInsight
	}
	return resp.Text()
}

// AssetAnalysis asks the pro model for a technical breakdown of a single
// position.
func (s *Service) AssetAnalysis(ctx context.Context, inv domain.Investment) string {
	if s.Client == nil {
		return degradedAsset
	}

	prompt := fmt.Sprintf(`
    Perform a cold technical analysis for asset: %s (%s), Type: %s.
    Provide:
    1. Sentiment vector (Bullish/Bearish/Neutral).
    2. Primary data drivers.
    3. Risk coefficient and upcoming catalysts.
    4. ProBot System Verdict.

    Style: Devoid of human feelings. Precise and technical. Markdown format.
    Include risk disclaimer at the end.
  `, inv.Name, inv.Symbol, inv.Type)

	config := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(2000)),
		},
	}

	resp, err := s.Client.Models.GenerateContent(ctx, s.ProModel, genai.Text(prompt), config)
	if err != nil {
		zap.L().Warn("asset analysis failed", zap.Error(err), zap.String("symbol", inv.Symbol))
		return degradedAsset
	}
	return resp.Text()
}

// GenerateDeals asks the model for fresh reward deal drafts. The response is
// constrained to a JSON array by schema; anything that still fails to parse
// or validate yields an empty list.
func (s *Service) GenerateDeals(ctx context.Context) []domain.RewardDraft {
	if s.Client == nil {
		return []domain.RewardDraft{}
	}

	const prompt = "Generate 3 reward data points for Aura. Format: brand name, deal string, one emoji logo, point cost (500-5000). Outcome: JSON array."

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"brand": {Type: genai.TypeString},
					"deal":  {Type: genai.TypeString},
					"logo":  {Type: genai.TypeString},
					"cost":  {Type: genai.TypeNumber},
				},
				Required: []string{"brand", "deal", "logo", "cost"},
			},
		},
	}

	resp, err := s.Client.Models.GenerateContent(ctx, s.FlashModel, genai.Text(prompt), config)
	if err != nil {
		zap.L().Warn("deal generation failed", zap.Error(err))
		return []domain.RewardDraft{}
	}

	drafts, err := parseDealDrafts([]byte(resp.Text()))
	if err != nil {
		zap.L().Warn("deal response rejected", zap.Error(err))
		return []domain.RewardDraft{}
	}
	return drafts
}

// Chat sends one message on a conversation seeded with the given history and
// returns the model's reply.
func (s *Service) Chat(ctx context.Context, history []ChatMessage, message string) string {
	if s.Client == nil {
		return degradedChat
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: chatSystemInstruction}}},
	}

	prior := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.RoleUser
		if msg.Role == "model" {
			role = genai.RoleModel
		}
		prior = append(prior, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}

	chat, err := s.Client.Chats.Create(ctx, s.FlashModel, config, prior)
	if err != nil {
		zap.L().Warn("chat session not created", zap.Error(err))
		return degradedChat
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: message})
	if err != nil {
		zap.L().Warn("chat send failed", zap.Error(err))
		return degradedChat
	}
	return resp.Text()
}

// parseDealDrafts decodes and validates the model's deal JSON
func parseDealDrafts(raw []byte) ([]domain.RewardDraft, error) {
	var drafts []domain.RewardDraft
	if err := json.Unmarshal(raw, &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse deal payload: %w", err)
	}
	for i, draft := range drafts {
		if err := draft.Validate(); err != nil {
			return nil, fmt.Errorf("deal at index %d is invalid: %w", i, err)
		}
	}
	return drafts, nil
}

// categoryDistribution renders the per-category totals in a stable order
func categoryDistribution(summary dashboard.Summary) string {
	categories := make([]string, 0, len(summary.ByCategory))
	for category := range summary.ByCategory {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)

	pairs := make([]string, len(categories))
	for i, category := range categories {
		pairs[i] = fmt.Sprintf("%q:%s", category, summary.ByCategory[domain.Category(category)])
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
