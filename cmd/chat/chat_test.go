package chat

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lovefest/lovefest_backend/internal/event"
	"github.com/lovefest/lovefest_backend/internal/service/chat"
)

type echoGenerator struct{ prompts int }

func (g *echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts++
	i := strings.LastIndex(prompt, "User query: ")
	return "echo: " + prompt[i+len("User query: "):], nil
}

func TestConverse(t *testing.T) {
	gen := &echoGenerator{}
	svc := chat.New(gen, "LoveBot", event.Details{Couple: "Sam & Alex"})

	var out bytes.Buffer
	in := strings.NewReader("Where is it?\n\n   \nWhat to wear?\n")
	if err := converse(context.Background(), svc, "LoveBot", in, &out); err != nil {
		t.Fatalf("converse: %v", err)
	}

	if gen.prompts != 2 {
		t.Errorf("generator called %d times, want 2", gen.prompts)
	}
	got := out.String()
	for _, want := range []string{"LoveBot> echo: Where is it?", "LoveBot> echo: What to wear?"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "LoveBot> ") != 3 {
		t.Errorf("expected greeting plus two replies:\n%s", got)
	}
}
