package advice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/Simplici0/housecost/internal/pricing"
)

type fakeModels struct {
	prompt string
	model  string
	reply  string
	err    error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompt += p.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.reply, genai.RoleModel),
		}},
	}, nil
}

func sampleInput(t *testing.T) (pricing.Input, pricing.AreaBreakdown) {
	t.Helper()
	in := pricing.DefaultInput()
	in.HasElevator = true
	in.ElevatorStops = 4
	areas, err := pricing.ComputeAreas(in)
	if err != nil {
		t.Fatalf("ComputeAreas: %v", err)
	}
	return in, areas
}

func TestBuildPrompt(t *testing.T) {
	in, areas := sampleInput(t)

	prompt, err := BuildPrompt(in, areas)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, expected := range []string{
		"Kích thước: 5m x 20m (Diện tích đất: 100m2)",
		"2 tầng lầu + Không tum",
		"Móng cọc, Không hầm, Mái BTCT",
		"Thang máy (4 điểm dừng)",
		"Không hồ bơi",
		"chiều rộng 5m",
	} {
		if !strings.Contains(prompt, expected) {
			t.Fatalf("expected prompt to contain %q, got: %s", expected, prompt)
		}
	}
}

func TestGeminiAdvisor_Advise(t *testing.T) {
	in, areas := sampleInput(t)
	models := &fakeModels{reply: "  **Nhận xét**: ổn  "}

	text, err := NewAdvisor(models, "gemini-test").Advise(context.Background(), in, areas)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if text != "**Nhận xét**: ổn" {
		t.Fatalf("text=%q", text)
	}
	if models.model != "gemini-test" || !strings.Contains(models.prompt, "Móng cọc") {
		t.Fatalf("unexpected request: model=%q prompt=%q", models.model, models.prompt)
	}
}

func TestGeminiAdvisor_EmptyAndFailingResponses(t *testing.T) {
	in, areas := sampleInput(t)

	if _, err := NewAdvisor(&fakeModels{reply: " "}, "m").Advise(context.Background(), in, areas); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}

	boom := errors.New("quota exceeded")
	if _, err := NewAdvisor(&fakeModels{err: boom}, "m").Advise(context.Background(), in, areas); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}
