// Package advice produces free-form expert commentary on a building. It reads
// the input and converted areas and has no influence on the numbers.
package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/Simplici0/housecost/internal/pricing"
)

// FallbackText is shown when the backend fails or returns nothing.
const FallbackText = "Đã có lỗi xảy ra khi kết nối với AI. Vui lòng kiểm tra lại kết nối mạng."

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("advice: empty model response")

// Advisor generates advisory text for a building.
type Advisor interface {
	Advise(ctx context.Context, in pricing.Input, areas pricing.AreaBreakdown) (string, error)
}

var promptTemplate = template.Must(template.New("prompt").Parse(`Bạn là một Kỹ sư xây dựng và chuyên gia QS (Quantity Surveyor) dày dặn kinh nghiệm tại Việt Nam.
Hãy phân tích thông số công trình sau và đưa ra lời khuyên chuyên gia:
- Kích thước: {{.Width}}m x {{.Length}}m (Diện tích đất: {{.LandArea}}m2)
- Quy mô: {{.Floors}} tầng lầu + {{if .HasRoofTop}}1 Tum{{else}}Không tum{{end}}
- Kết cấu: {{.Foundation}}, {{.Basement}}, {{.Roof}}
- Vị trí: {{.Facades}}, đường rộng {{.Road}}, {{.Neighbors}}
- Tiện ích: {{if .HasElevator}}Thang máy ({{.ElevatorStops}} điểm dừng){{else}}Không thang máy{{end}}, {{if .HasPool}}Hồ bơi ({{.PoolArea}}m2){{else}}Không hồ bơi{{end}}

Yêu cầu câu trả lời:
1. Ngôn ngữ: Tiếng Việt, chuyên nghiệp nhưng dễ hiểu.
2. Cấu trúc:
   - Nhận xét nhanh về quy mô.
   - 3 mẹo cụ thể để tiết kiệm chi phí cho cấu trúc này.
   - 2 lưu ý kỹ thuật quan trọng (đặc biệt là phần móng và mái đã chọn).
   - 1 lời khuyên về tối ưu không gian dựa trên chiều rộng {{.Width}}m.
3. Định dạng: Sử dụng Markdown (bullet points, bold text).
`))

type promptData struct {
	Width, Length, LandArea float64
	Floors                  int
	HasRoofTop              bool
	Foundation, Basement    string
	Roof                    string
	Facades, Road           string
	Neighbors               string
	HasElevator             bool
	ElevatorStops           int
	HasPool                 bool
	PoolArea                float64
}

// BuildPrompt renders the model prompt for a building.
func BuildPrompt(in pricing.Input, areas pricing.AreaBreakdown) (string, error) {
	data := promptData{
		Width:         in.Width,
		Length:        in.Length,
		LandArea:      areas.LandArea,
		Floors:        in.Floors,
		HasRoofTop:    in.HasRoofTop,
		Foundation:    in.Foundation.Label(),
		Basement:      in.Basement.Label(),
		Roof:          in.Roof.Label(),
		Facades:       in.Facades.Label(),
		Road:          in.Road.Label(),
		Neighbors:     in.Neighbors.Label(),
		HasElevator:   in.HasElevator,
		ElevatorStops: in.ElevatorStops,
		HasPool:       in.HasPool,
		PoolArea:      in.PoolArea,
	}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render advice prompt: %w", err)
	}
	return b.String(), nil
}

// Generator is the subset of the genai Models service used here.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdvisor asks a Gemini model for advice.
type GeminiAdvisor struct {
	models Generator
	model  string
}

// NewGeminiAdvisor creates a Gemini API client for model.
func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewAdvisor(client.Models, model), nil
}

// NewAdvisor wraps an existing generator.
func NewAdvisor(models Generator, model string) *GeminiAdvisor {
	return &GeminiAdvisor{models: models, model: model}
}

// Advise implements Advisor.
func (a *GeminiAdvisor) Advise(ctx context.Context, in pricing.Input, areas pricing.AreaBreakdown) (string, error) {
	prompt, err := BuildPrompt(in, areas)
	if err != nil {
		return "", err
	}

	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate advice: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
