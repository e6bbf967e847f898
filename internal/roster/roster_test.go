package roster

import "testing"

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		valid bool
	}{
		{"two custom names", []string{"Alice", "Bob"}, true},
		{"four players", []string{"Alice", "Bob", "Cara", "Dan"}, true},
		{"too few", []string{"Alice"}, false},
		{"too many", []string{"a", "b", "c", "d", "e"}, false},
		{"blank name", []string{"Alice", "   "}, false},
		{"duplicate names", []string{"Alice", "Alice"}, false},
		{"duplicate ignoring case", []string{"Alice", "alice"}, false},
		{"duplicate ignoring spaces", []string{"Alice", " Alice "}, false},
		{"all defaults", []string{"Player 1", "Player 2"}, false},
		{"one customized default", []string{"Player 1", "Bob"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateNames(tt.names)
			if v.IsValid != tt.valid {
				t.Fatalf("ValidateNames(%v).IsValid = %v, want %v (errors: %v)",
					tt.names, v.IsValid, tt.valid, v.Errors)
			}
			if !v.IsValid && len(v.Errors) == 0 {
				t.Error("invalid roster reported no errors")
			}
			if v.IsValid && len(v.ValidNames) != len(tt.names) {
				t.Errorf("ValidNames has %d entries, want %d", len(v.ValidNames), len(tt.names))
			}
		})
	}
}

func TestValidateNamesTrims(t *testing.T) {
	v := ValidateNames([]string{"  Alice  ", "Bob"})
	if !v.IsValid {
		t.Fatalf("unexpected invalid: %v", v.Errors)
	}
	if v.ValidNames[0] != "Alice" {
		t.Errorf("ValidNames[0] = %q, want trimmed name", v.ValidNames[0])
	}
}

func TestDefaultNames(t *testing.T) {
	names := DefaultNames(3)
	want := []string{"Player 1", "Player 2", "Player 3"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("DefaultNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewPlayers(t *testing.T) {
	players := NewPlayers([]string{"Alice", "Bob", "Cara"})
	if len(players) != 3 {
		t.Fatalf("NewPlayers returned %d players, want 3", len(players))
	}
	for i, p := range players {
		if p.ID != i {
			t.Errorf("player %d has ID %d", i, p.ID)
		}
		if p.MatchedPairs != 0 || p.Moves != 0 || p.IsWinner {
			t.Errorf("player %d stats not zeroed: %+v", i, p)
		}
		if p.IsActive != (i == 0) {
			t.Errorf("player %d IsActive = %v", i, p.IsActive)
		}
	}
}
