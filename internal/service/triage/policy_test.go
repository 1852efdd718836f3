package triage

import (
	"strings"
	"testing"

	"github.com/myrecovery365/sobrio/backend/internal/analysis/safety"
)

func TestDecideCrisisWinsOverRelapse(t *testing.T) {
	decision := Decide(safety.Result{Crisis: true, Relapse: true})
	if decision.Kind != Crisis {
		t.Fatalf("expected crisis branch, got %v", decision.Kind)
	}
	if decision.InvokeBackend {
		t.Fatal("crisis must not invoke the backend")
	}
	if decision.RelapseSupport || len(decision.HarmCategories) != 0 {
		t.Fatalf("crisis must carry no relapse/harm flags: %+v", decision)
	}
}

func TestDecideRelapseSelectsRelapseTemplate(t *testing.T) {
	decision := Decide(safety.Result{Relapse: true})
	if decision.Kind != Relapse {
		t.Fatalf("expected relapse branch, got %v", decision.Kind)
	}
	if decision.Prompt != PromptRelapse {
		t.Fatalf("expected relapse template, got %s", decision.Prompt)
	}
	if !decision.InvokeBackend || !decision.RelapseSupport {
		t.Fatalf("relapse branch misconfigured: %+v", decision)
	}
}

func TestDecideHarmRidesAlongBothBranches(t *testing.T) {
	harm := []safety.HarmCategory{safety.HarmSubstance, safety.HarmRisk}

	relapse := Decide(safety.Result{Relapse: true, HarmCategories: harm})
	if len(relapse.HarmCategories) != 2 {
		t.Fatalf("relapse branch lost harm categories: %+v", relapse)
	}

	standard := Decide(safety.Result{HarmCategories: harm})
	if standard.Kind != Standard || len(standard.HarmCategories) != 2 {
		t.Fatalf("standard branch lost harm categories: %+v", standard)
	}
}

func TestDecideStandard(t *testing.T) {
	decision := Decide(safety.Result{})
	if decision.Kind != Standard || decision.Prompt != PromptStandard {
		t.Fatalf("expected standard branch, got %+v", decision)
	}
	if decision.RelapseSupport {
		t.Fatal("standard branch must not flag relapse support")
	}
	if !decision.InvokeBackend {
		t.Fatal("standard branch must invoke the backend")
	}
}

func TestCrisisResponseMentionsLifeline(t *testing.T) {
	if !strings.Contains(CrisisResponse, "988") {
		t.Fatal("crisis response must reference the 988 lifeline")
	}
	if !strings.HasPrefix(CrisisResponse, "I hear that you're in a really difficult place") {
		t.Fatal("crisis response must open with an empathetic acknowledgment")
	}
}
