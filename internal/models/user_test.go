package models

import "testing"

func TestRequiredXpForNextLevel(t *testing.T) {
	if got := RequiredXpForNextLevel(1); got != 3100 {
		t.Fatalf("level 1 requirement: expected 3100, got %d", got)
	}
	if got := RequiredXpForNextLevel(10); got != 4000 {
		t.Fatalf("level 10 requirement: expected 4000, got %d", got)
	}
}

func TestAddXp_NoLevelUp(t *testing.T) {
	u := &User{Level: 1, Xp: 100}
	u.AddXp(50)
	if u.Level != 1 || u.Xp != 150 {
		t.Fatalf("expected level 1 / 150 xp, got level %d / %d xp", u.Level, u.Xp)
	}
}

func TestAddXp_LevelUpCarriesRemainder(t *testing.T) {
	u := &User{Level: 1, Xp: 3000}
	u.AddXp(150)
	// 3150 total, level 1 requires 3100, remainder 50 carries over.
	if u.Level != 2 {
		t.Fatalf("expected level 2, got %d", u.Level)
	}
	if u.Xp != 50 {
		t.Fatalf("expected 50 xp carried over, got %d", u.Xp)
	}
}

func TestAddXp_MultipleLevelUps(t *testing.T) {
	u := &User{Level: 1, Xp: 0}
	// Level 1 needs 3100, level 2 needs 3200. 6350 clears both with 50 left.
	u.AddXp(6350)
	if u.Level != 3 {
		t.Fatalf("expected level 3, got %d", u.Level)
	}
	if u.Xp != 50 {
		t.Fatalf("expected 50 xp remaining, got %d", u.Xp)
	}
}
