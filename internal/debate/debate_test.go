package debate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"BillFighter/internal/domain"
	"BillFighter/internal/ports"
)

type fakeCompleter struct {
	requests []ports.CompletionRequest
	failAt   int // 1-based call index to fail on, 0 disables
	emptyAt  int
}

func (f *fakeCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	call := len(f.requests)
	if f.failAt != 0 && call == f.failAt {
		return "", errors.New("quota exceeded")
	}
	if f.emptyAt != 0 && call == f.emptyAt {
		return "   ", nil
	}
	return fmt.Sprintf("argument %d", call), nil
}

func analysisFixture() []domain.AnalysisItem {
	return []domain.AnalysisItem{
		{
			LineItem:       domain.LineItem{Code: "99213", Description: "Office Visit", Quantity: 1, Price: 250},
			ExpectedCost:   120,
			OverchargeFlag: true,
			FlagLevel:      domain.FlagHigh,
		},
		{
			LineItem:     domain.LineItem{Code: "80053", Description: "Metabolic Panel", Quantity: 1, Price: 180},
			ExpectedCost: 180,
			FlagLevel:    domain.FlagLow,
		},
	}
}

func TestRunProducesAlternatingTranscript(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{}
	d := New(completer, 0.8, 0.3, 10, nil)

	transcript, err := d.Run(context.Background(), analysisFixture(), 3)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(transcript) != 6 {
		t.Fatalf("expected 6 messages for 3 rounds, got %d", len(transcript))
	}
	for i, message := range transcript {
		want := domain.RoleFighter
		if i%2 == 1 {
			want = domain.RoleHospital
		}
		if message.Role != want {
			t.Fatalf("message %d: role = %s, want %s", i, message.Role, want)
		}
		if message.Content == "" {
			t.Fatalf("message %d: empty content", i)
		}
	}
}

func TestRunClampsRequestedRounds(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{}
	d := New(completer, 0.8, 0.3, 2, nil)

	transcript, err := d.Run(context.Background(), analysisFixture(), 99)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(transcript) != 4 {
		t.Fatalf("expected 2*maxRounds messages, got %d", len(transcript))
	}

	completer = &fakeCompleter{}
	d = New(completer, 0.8, 0.3, 10, nil)
	transcript, err = d.Run(context.Background(), analysisFixture(), 0)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("zero requested rounds clamps to one round, got %d messages", len(transcript))
	}
}

func TestRunFirstTurnHasNoPriorMessage(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{}
	d := New(completer, 0.8, 0.3, 10, nil)

	if _, err := d.Run(context.Background(), analysisFixture(), 2); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	opening := completer.requests[0]
	if !strings.Contains(opening.Prompt, "starting the debate") {
		t.Fatalf("first turn should use the opening template:\n%s", opening.Prompt)
	}
	if strings.Contains(opening.Prompt, "just said") {
		t.Fatalf("first turn must not carry a prior message")
	}

	rebuttal := completer.requests[1]
	if !strings.Contains(rebuttal.Prompt, "argument 1") {
		t.Fatalf("hospital turn should quote the fighter's message:\n%s", rebuttal.Prompt)
	}
}

func TestRunThreadsPreviousMessage(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{}
	d := New(completer, 0.8, 0.3, 10, nil)

	if _, err := d.Run(context.Background(), analysisFixture(), 2); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// Round 2 fighter rebuts the hospital's round 1 message.
	if !strings.Contains(completer.requests[2].Prompt, "argument 2") {
		t.Fatalf("round 2 fighter should see hospital's last message:\n%s", completer.requests[2].Prompt)
	}
}

func TestRunTurnsCarryBillContext(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{}
	d := New(completer, 0.8, 0.3, 10, nil)

	if _, err := d.Run(context.Background(), analysisFixture(), 1); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for i, req := range completer.requests {
		if !strings.Contains(req.Prompt, "99213") {
			t.Fatalf("turn %d prompt missing bill data", i)
		}
		// billed 430, expected 300, savings 130: recomputed every turn.
		if !strings.Contains(req.Prompt, "$430.00") || !strings.Contains(req.Prompt, "$130.00") {
			t.Fatalf("turn %d prompt missing aggregate figures:\n%s", i, req.Prompt)
		}
		if req.JSONMode {
			t.Fatalf("debate turns are free text, not JSON mode")
		}
	}

	if completer.requests[0].System == completer.requests[1].System {
		t.Fatalf("fighter and hospital must use distinct system prompts")
	}
}

func TestRunFailsFastOnTurnError(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{failAt: 3}
	d := New(completer, 0.8, 0.3, 10, nil)

	transcript, err := d.Run(context.Background(), analysisFixture(), 2)
	if err == nil {
		t.Fatalf("expected error when a turn fails")
	}
	if transcript != nil {
		t.Fatalf("no partial transcript on failure, got %d messages", len(transcript))
	}
	if len(completer.requests) != 3 {
		t.Fatalf("debate should stop at the failing turn, made %d calls", len(completer.requests))
	}
}

func TestRunFailsOnEmptyContent(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{emptyAt: 2}
	d := New(completer, 0.8, 0.3, 10, nil)

	if _, err := d.Run(context.Background(), analysisFixture(), 1); err == nil {
		t.Fatalf("expected error when a turn returns empty content")
	}
}

func TestRunRejectsEmptyCollection(t *testing.T) {
	t.Parallel()

	d := New(&fakeCompleter{}, 0.8, 0.3, 10, nil)
	if _, err := d.Run(context.Background(), nil, 2); err == nil {
		t.Fatalf("expected error for empty analysis collection")
	}
}

type summaryCompleter struct {
	prompt string
}

func (s *summaryCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	s.prompt = req.Prompt
	return `{"patient_arguments": "overcharged visit", "hospital_arguments": "standard rates", "recommendation": "dispute 99213"}`, nil
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	completer := &summaryCompleter{}
	d := New(completer, 0.8, 0.3, 10, nil)

	transcript := []domain.DebateMessage{
		{Role: domain.RoleFighter, Content: "opening"},
		{Role: domain.RoleHospital, Content: "defense"},
	}

	summary, err := d.Summarize(context.Background(), analysisFixture(), transcript)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if summary.PatientArguments != "overcharged visit" {
		t.Fatalf("unexpected patient arguments: %q", summary.PatientArguments)
	}
	if summary.Recommendation != "dispute 99213" {
		t.Fatalf("unexpected recommendation: %q", summary.Recommendation)
	}
	if !strings.Contains(completer.prompt, "[FIGHTER] opening") || !strings.Contains(completer.prompt, "[HOSPITAL] defense") {
		t.Fatalf("summary prompt should carry the formatted transcript:\n%s", completer.prompt)
	}
}
