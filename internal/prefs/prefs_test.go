package prefs_test

import (
	"reflect"
	"testing"

	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/tests/testutil"
)

func TestRememberMe(t *testing.T) {
	s := testutil.NewTestStore(t)

	remembered, err := s.RememberMe()
	if err != nil {
		t.Fatalf("reading remember flag: %v", err)
	}
	if remembered {
		t.Error("expected remember flag to default to false")
	}

	if err := s.SetRememberMe(); err != nil {
		t.Fatalf("setting remember flag: %v", err)
	}
	remembered, err = s.RememberMe()
	if err != nil {
		t.Fatalf("reading remember flag: %v", err)
	}
	if !remembered {
		t.Error("expected remember flag to be set")
	}

	if err := s.ClearRememberMe(); err != nil {
		t.Fatalf("clearing remember flag: %v", err)
	}
	remembered, err = s.RememberMe()
	if err != nil {
		t.Fatalf("reading remember flag: %v", err)
	}
	if remembered {
		t.Error("expected remember flag to be cleared")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)

	p, err := s.Profile()
	if err != nil {
		t.Fatalf("reading profile: %v", err)
	}
	if p != model.BlankProfile() {
		t.Errorf("expected blank default profile, got %+v", p)
	}

	want := model.UserProfile{
		Name:  "Jane Doe",
		Email: "jane.doe@example.com",
		Phone: model.DefaultPhone,
	}
	if err := s.SaveProfile(want); err != nil {
		t.Fatalf("saving profile: %v", err)
	}

	got, err := s.Profile()
	if err != nil {
		t.Fatalf("reading profile: %v", err)
	}
	if got != want {
		t.Errorf("profile mismatch: got %+v, want %+v", got, want)
	}

	if err := s.ClearProfile(); err != nil {
		t.Fatalf("clearing profile: %v", err)
	}
	p, err = s.Profile()
	if err != nil {
		t.Fatalf("reading profile: %v", err)
	}
	if p != model.BlankProfile() {
		t.Errorf("expected blank profile after clear, got %+v", p)
	}
}

func TestSearchHistoryRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)

	history, err := s.SearchHistory()
	if err != nil {
		t.Fatalf("reading search history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty default history, got %v", history)
	}

	want := []string{"AI Research", "thesis", "Client, \"quoted\""}
	if err := s.SaveSearchHistory(want); err != nil {
		t.Fatalf("saving search history: %v", err)
	}

	got, err := s.SearchHistory()
	if err != nil {
		t.Fatalf("reading search history: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("history mismatch: got %v, want %v", got, want)
	}

	// Saving again must replace, not append.
	if err := s.SaveSearchHistory([]string{"only"}); err != nil {
		t.Fatalf("replacing search history: %v", err)
	}
	got, err = s.SearchHistory()
	if err != nil {
		t.Fatalf("reading search history: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"only"}) {
		t.Errorf("expected replaced history, got %v", got)
	}
}

func TestHintShown(t *testing.T) {
	s := testutil.NewTestStore(t)

	shown, err := s.HintShown()
	if err != nil {
		t.Fatalf("reading hint flag: %v", err)
	}
	if shown {
		t.Error("expected hint flag to default to false")
	}

	if err := s.MarkHintShown(); err != nil {
		t.Fatalf("marking hint shown: %v", err)
	}
	shown, err = s.HintShown()
	if err != nil {
		t.Fatalf("reading hint flag: %v", err)
	}
	if !shown {
		t.Error("expected hint flag to be set")
	}
}
