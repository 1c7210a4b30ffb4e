package schedule

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Dosada05/football-championship/models"
)

func makeTeams(names ...string) []*models.Team {
	teams := make([]*models.Team, 0, len(names))
	for i, name := range names {
		teams = append(teams, &models.Team{ID: i + 1, Name: name})
	}
	return teams
}

func TestRoundRobinSingleLeg(t *testing.T) {
	teams := makeTeams("A", "B", "C", "D")

	fixtures, err := RoundRobin(teams, 1)
	if err != nil {
		t.Fatalf("RoundRobin returned error: %v", err)
	}
	if len(fixtures) != 6 {
		t.Fatalf("got %d fixtures for 4 teams, want 6", len(fixtures))
	}

	seen := make(map[string]struct{}, len(fixtures))
	for i, f := range fixtures {
		if f.Order != i+1 {
			t.Errorf("fixture %d has order %d", i, f.Order)
		}
		if f.Leg != 1 {
			t.Errorf("fixture %d leg = %d, want 1", i, f.Leg)
		}
		if f.HomeTeamID == f.AwayTeamID {
			t.Errorf("fixture %d pairs a team with itself", i)
		}
		lo, hi := f.HomeTeamID, f.AwayTeamID
		if lo > hi {
			lo, hi = hi, lo
		}
		key := fmt.Sprintf("%d-%d", lo, hi)
		if _, dup := seen[key]; dup {
			t.Errorf("pair %s appears twice", key)
		}
		seen[key] = struct{}{}
	}
}

func TestRoundRobinTwoLegs(t *testing.T) {
	teams := makeTeams("A", "B", "C")

	fixtures, err := RoundRobin(teams, 2)
	if err != nil {
		t.Fatalf("RoundRobin returned error: %v", err)
	}
	if len(fixtures) != 6 {
		t.Fatalf("got %d fixtures for 3 teams over 2 legs, want 6", len(fixtures))
	}

	// First half is leg 1 in play order, second half the return fixtures.
	for i, f := range fixtures {
		if f.Order != i+1 {
			t.Errorf("fixture %d has order %d", i, f.Order)
		}
		wantLeg := 1
		if i >= 3 {
			wantLeg = 2
		}
		if f.Leg != wantLeg {
			t.Errorf("fixture %d leg = %d, want %d", i, f.Leg, wantLeg)
		}
	}

	// Every return fixture swaps home and away of a first-leg pairing.
	for i := 0; i < 3; i++ {
		first := fixtures[i]
		found := false
		for _, ret := range fixtures[3:] {
			if ret.HomeTeamID == first.AwayTeamID && ret.AwayTeamID == first.HomeTeamID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no return fixture for %s vs %s", first.HomeTeamName, first.AwayTeamName)
		}
	}
}

func TestRoundRobinErrors(t *testing.T) {
	if _, err := RoundRobin(makeTeams("A"), 1); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("one team err = %v, want ErrNotEnoughTeams", err)
	}
	if _, err := RoundRobin(nil, 1); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("no teams err = %v, want ErrNotEnoughTeams", err)
	}
	if _, err := RoundRobin(makeTeams("A", "B"), 3); err == nil {
		t.Error("legs=3 accepted, want error")
	}
}
