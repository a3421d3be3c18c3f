package util

import "testing"

func TestSelectedIgnoresStaleSelection(t *testing.T) {
	s := AccountsSnapshot{
		SelectedAccount: "gone",
		Accounts:        []Account{{Id: "a", Name: "Alex"}},
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("stale selection must read as absent")
	}
}

func TestFindByIdThenName(t *testing.T) {
	s := AccountsSnapshot{Accounts: []Account{
		{Id: "a", Name: "Alex"},
		{Id: "b", Name: "Steve"},
	}}
	if acc, ok := s.Find("b"); !ok || acc.Name != "Steve" {
		t.Fatalf("expected lookup by id, got %+v", acc)
	}
	if acc, ok := s.Find("alex"); !ok || acc.Id != "a" {
		t.Fatalf("expected case-insensitive lookup by name, got %+v", acc)
	}
	if _, ok := s.Find("herobrine"); ok {
		t.Fatalf("unexpected match")
	}
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	s := AccountsSnapshot{Accounts: []Account{{Id: "a", Skins: []Skin{{Id: "s"}}}}}
	c := s.Clone()
	c.Accounts[0].Skins[0].Id = "changed"
	c.Accounts[0].Name = "changed"
	if s.Accounts[0].Skins[0].Id != "s" || s.Accounts[0].Name != "" {
		t.Fatalf("clone shares memory with the original")
	}
}

func TestEligible(t *testing.T) {
	if !(Account{Id: "a"}).Eligible() {
		t.Fatalf("healthy account must be eligible")
	}
	if (Account{Id: "a", Error: "RefreshFailed"}).Eligible() {
		t.Fatalf("account with error must not be eligible")
	}
}
