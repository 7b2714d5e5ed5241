package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/wiki/domain"
)

const (
	testModsModule      = "Module:Mods/list"
	testLanguagesModule = "Module:Language/Names"
)

func newTestService(w *core.MockWiki) *Service {
	return NewService(w, testModsModule, testLanguagesModule, time.Minute)
}

func TestService_FindMod_CachesList(t *testing.T) {
	w := &core.MockWiki{Modules: map[string]string{
		testModsModule: `{"IC2":["IndustrialCraft 2"]}`,
	}}
	svc := newTestService(w)

	for range 3 {
		lookup, err := svc.FindMod(context.Background(), "IC2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !lookup.Found || lookup.Mod.Name != "IndustrialCraft 2" {
			t.Fatalf("expected IndustrialCraft 2, got %+v", lookup)
		}
	}

	if n := w.CallCount("invoke"); n != 1 {
		t.Errorf("expected 1 module invocation, got %d", n)
	}
}

func TestService_FindMod_ErrorNotCached(t *testing.T) {
	expectedErr := errors.New("wiki down")
	w := &core.MockWiki{Err: expectedErr}
	svc := newTestService(w)

	if _, err := svc.FindMod(context.Background(), "IC2"); !errors.Is(err, expectedErr) {
		t.Fatalf("expected error %v, got %v", expectedErr, err)
	}

	w.Err = nil
	w.Modules = map[string]string{testModsModule: `{"IC2":["IndustrialCraft 2"]}`}
	if lookup, err := svc.FindMod(context.Background(), "IC2"); err != nil || !lookup.Found {
		t.Errorf("expected lookup to succeed after recovery, got %+v, %v", lookup, err)
	}
}

func TestService_Languages(t *testing.T) {
	w := &core.MockWiki{Modules: map[string]string{
		testLanguagesModule: `{"fr":"Français","de":"Deutsch"}`,
	}}

	languages, err := newTestService(w).Languages(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(languages) != 2 || languages[0].Code != "de" {
		t.Errorf("expected [de fr], got %v", languages)
	}
}

func TestService_ResolveLinks(t *testing.T) {
	w := &core.MockWiki{Pages: map[string]string{"Iron Ingot": "text"}}
	svc := newTestService(w)

	links, err := svc.ResolveLinks(context.Background(), []string{"Iron Ingot", "Missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !links[0].Exists || links[0].URL != "https://wiki.example.com/Iron_Ingot" {
		t.Errorf("unexpected first link %+v", links[0])
	}
	if links[1].Exists {
		t.Errorf("expected second link to be missing, got %+v", links[1])
	}

	if _, err := svc.ResolveLinks(context.Background(), []string{"Iron Ingot"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := w.CallCount("exists Iron Ingot"); n != 1 {
		t.Errorf("expected existence to be cached, got %d lookups", n)
	}
}

func TestService_MoveInvalidatesExistence(t *testing.T) {
	w := &core.MockWiki{Pages: map[string]string{"Old": "text"}}
	svc := newTestService(w)
	ctx := context.Background()

	if exists, _ := svc.PageExists(ctx, "New"); exists {
		t.Fatal("expected New not to exist yet")
	}

	result, err := svc.Move(ctx, domain.MoveProposal{From: "Old", To: "New", Requester: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != "Requested by alice via Discord" {
		t.Errorf("unexpected reason %q", result.Reason)
	}

	if exists, _ := svc.PageExists(ctx, "New"); !exists {
		t.Error("expected New to exist after the move")
	}
}

func TestService_Redirect(t *testing.T) {
	w := &core.MockWiki{Pages: map[string]string{}}

	if _, err := newTestService(w).Redirect(context.Background(), domain.RedirectProposal{From: "Ingots", To: "Iron Ingot"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Pages["Ingots"] != "#REDIRECT [[Iron Ingot]]" {
		t.Errorf("expected redirect text, got %q", w.Pages["Ingots"])
	}
}

func TestService_PageLines_BreaksCodeFences(t *testing.T) {
	w := &core.MockWiki{Pages: map[string]string{"Doc": "a\n```\nb"}}

	lines, err := newTestService(w).PageLines(context.Background(), "Doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 3 || lines[1] == "```" {
		t.Errorf("expected fence to be broken, got %q", lines)
	}
}

func TestService_FindMod_Suggests(t *testing.T) {
	w := &core.MockWiki{Modules: map[string]string{
		testModsModule: `{"IC2":["IndustrialCraft 2"],"TC":["Thaumcraft"]}`,
	}}

	lookup, err := newTestService(w).FindMod(context.Background(), "dustrial")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lookup.Found {
		t.Fatal("expected no exact match")
	}
	if len(lookup.Suggestions) != 1 || lookup.Suggestions[0] != "IndustrialCraft 2" {
		t.Errorf("expected [IndustrialCraft 2], got %v", lookup.Suggestions)
	}
}
