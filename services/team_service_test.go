package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAddTeamsAndGetByName(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := env.mustAddTeam(t, "Arsenal", "01/03", 1)
	if created.ID == 0 {
		t.Fatal("created team has no id")
	}

	got, err := env.teams.GetTeamByName(ctx, "Arsenal")
	if err != nil {
		t.Fatalf("GetTeamByName returned error: %v", err)
	}
	if got.Name != "Arsenal" || got.GroupNumber != 1 {
		t.Errorf("got %q group %d, want Arsenal group 1", got.Name, got.GroupNumber)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.RegistrationDate.Equal(want) {
		t.Errorf("registration date = %v, want %v", got.RegistrationDate, want)
	}
	if got.MatchPoints != 0 || got.TotalGoals != 0 || got.MatchesPlayed != 0 {
		t.Errorf("new team has non-zero aggregates: %+v", got)
	}
}

func TestAddTeamsPartialBatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result, err := env.teams.AddTeams(ctx, []CreateTeamInput{
		{Name: "Valid FC", RegistrationDate: "05/02", GroupNumber: 1},
		{Name: "Bad Group", RegistrationDate: "05/02", GroupNumber: 3},
		{Name: "Bad Date", RegistrationDate: "2025-02-05", GroupNumber: 2},
		{Name: "Future FC", RegistrationDate: "31/12", GroupNumber: 2},
		{Name: "", RegistrationDate: "05/02", GroupNumber: 1},
		{Name: "Valid FC", RegistrationDate: "06/02", GroupNumber: 2},
		{Name: "Also Valid", RegistrationDate: "07/02", GroupNumber: 2},
	})
	if err != nil {
		t.Fatalf("AddTeams returned error: %v", err)
	}

	if len(result.Teams) != 2 {
		t.Fatalf("stored %d teams, want 2: %+v", len(result.Teams), result.Teams)
	}
	if result.Teams[0].Name != "Valid FC" || result.Teams[1].Name != "Also Valid" {
		t.Errorf("stored wrong teams: %q, %q", result.Teams[0].Name, result.Teams[1].Name)
	}
	if len(result.Errors) != 5 {
		t.Fatalf("got %d errors, want 5: %v", len(result.Errors), result.Errors)
	}
	for _, msg := range result.Errors {
		if !strings.HasPrefix(msg, "Error processing team for ") {
			t.Errorf("unexpected error message format: %q", msg)
		}
	}
	if !strings.Contains(result.Errors[0], ErrGroupNumberInvalid.Error()) {
		t.Errorf("group error message = %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[2], ErrRegistrationDateInFuture.Error()) {
		t.Errorf("future date error message = %q", result.Errors[2])
	}

	// The duplicate entry must not have clobbered the stored team.
	got, err := env.teams.GetTeamByName(ctx, "Valid FC")
	if err != nil {
		t.Fatalf("GetTeamByName returned error: %v", err)
	}
	if got.GroupNumber != 1 {
		t.Errorf("duplicate entry overwrote group: got %d, want 1", got.GroupNumber)
	}
}

func TestAddTeamsRejectsExistingName(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Arsenal", "01/03", 1)

	result, err := env.teams.AddTeams(ctx, []CreateTeamInput{
		{Name: "Arsenal", RegistrationDate: "02/03", GroupNumber: 2},
	})
	if err != nil {
		t.Fatalf("AddTeams returned error: %v", err)
	}
	if len(result.Teams) != 0 || len(result.Errors) != 1 {
		t.Fatalf("got %d teams, %d errors, want 0 and 1", len(result.Teams), len(result.Errors))
	}
	if !strings.Contains(result.Errors[0], ErrTeamNameConflict.Error()) {
		t.Errorf("conflict error message = %q", result.Errors[0])
	}
}

func TestGetTeamByNameNotFound(t *testing.T) {
	env := newTestEnv()
	if _, err := env.teams.GetTeamByName(context.Background(), "Ghost United"); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("err = %v, want ErrTeamNotFound", err)
	}
}

func TestListTeamsByGroup(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Alpha", "01/03", 1)
	env.mustAddTeam(t, "Beta", "02/03", 2)
	env.mustAddTeam(t, "Gamma", "03/03", 1)

	teams, err := env.teams.ListTeamsByGroup(ctx, 1)
	if err != nil {
		t.Fatalf("ListTeamsByGroup returned error: %v", err)
	}
	if len(teams) != 2 || teams[0].Name != "Alpha" || teams[1].Name != "Gamma" {
		t.Errorf("group 1 = %+v, want [Alpha Gamma] in insertion order", teams)
	}

	if _, err := env.teams.ListTeamsByGroup(ctx, 3); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("group 3 err = %v, want ErrGroupNotFound", err)
	}
	env2 := newTestEnv()
	if _, err := env2.teams.ListTeamsByGroup(ctx, 2); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("empty group err = %v, want ErrGroupNotFound", err)
	}
}

func TestUpdateTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Old Name", "01/03", 1)

	newName := "New Name"
	newDate := "2025-04-10"
	group := 2
	goals := 7
	updated, err := env.teams.UpdateTeam(ctx, UpdateTeamInput{
		TeamName:            "Old Name",
		NewName:             &newName,
		NewRegistrationDate: &newDate,
		GroupNumber:         &group,
		TotalGoals:          &goals,
	})
	if err != nil {
		t.Fatalf("UpdateTeam returned error: %v", err)
	}
	if updated.Name != "New Name" || updated.GroupNumber != 2 || updated.TotalGoals != 7 {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.RegistrationDate.Equal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("registration date = %v", updated.RegistrationDate)
	}

	if _, err := env.teams.GetTeamByName(ctx, "Old Name"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("old name still resolves: err = %v", err)
	}
	if _, err := env.teams.GetTeamByName(ctx, "New Name"); err != nil {
		t.Errorf("new name does not resolve: %v", err)
	}
}

func TestUpdateTeamInvalidFieldsLeaveTeamUnchanged(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Stable FC", "01/03", 1)

	badGroup := 3
	if _, err := env.teams.UpdateTeam(ctx, UpdateTeamInput{TeamName: "Stable FC", GroupNumber: &badGroup}); !errors.Is(err, ErrGroupNumberInvalid) {
		t.Errorf("bad group err = %v, want ErrGroupNumberInvalid", err)
	}

	negative := -1
	if _, err := env.teams.UpdateTeam(ctx, UpdateTeamInput{TeamName: "Stable FC", MatchPoints: &negative}); !errors.Is(err, ErrNegativeStats) {
		t.Errorf("negative stats err = %v, want ErrNegativeStats", err)
	}

	got, err := env.teams.GetTeamByName(ctx, "Stable FC")
	if err != nil {
		t.Fatalf("GetTeamByName returned error: %v", err)
	}
	if got.GroupNumber != 1 || got.MatchPoints != 0 {
		t.Errorf("rejected update changed stored team: %+v", got)
	}
}

func TestUpdateTeamRenameConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Arsenal", "01/03", 1)
	env.mustAddTeam(t, "Chelsea", "02/03", 1)

	taken := "Arsenal"
	if _, err := env.teams.UpdateTeam(ctx, UpdateTeamInput{TeamName: "Chelsea", NewName: &taken}); !errors.Is(err, ErrTeamNameConflict) {
		t.Fatalf("rename to taken name err = %v, want ErrTeamNameConflict", err)
	}
}

func TestRenamePreservesMatchHistory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Alpha", "01/03", 1)
	env.mustAddTeam(t, "Beta", "02/03", 1)

	result, err := env.matches.AddMatches(ctx, []CreateMatchInput{
		{TeamAName: "Alpha", TeamBName: "Beta", TeamAGoals: 2, TeamBGoals: 0},
	})
	if err != nil || len(result.Errors) > 0 {
		t.Fatalf("AddMatches failed: err=%v errors=%v", err, result.Errors)
	}
	matchTeamAID := result.Matches[0].TeamAID

	newName := "Alpha Rebranded"
	updated, err := env.teams.UpdateTeam(ctx, UpdateTeamInput{TeamName: "Alpha", NewName: &newName})
	if err != nil {
		t.Fatalf("UpdateTeam returned error: %v", err)
	}
	if updated.MatchPoints != 3 || updated.TotalGoals != 2 || updated.MatchesPlayed != 1 {
		t.Errorf("rename changed aggregates: %+v", updated)
	}
	if updated.ID != matchTeamAID {
		t.Errorf("rename changed team id: %d != %d", updated.ID, matchTeamAID)
	}

	matches, err := env.matches.ListRecentMatches(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentMatches returned error: %v", err)
	}
	if len(matches) != 1 || matches[0].TeamAID != matchTeamAID {
		t.Errorf("match ledger changed after rename: %+v", matches)
	}
}

func TestDeleteTeamRetainsMatches(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Alpha", "01/03", 1)
	env.mustAddTeam(t, "Beta", "02/03", 1)

	result, err := env.matches.AddMatches(ctx, []CreateMatchInput{
		{TeamAName: "Alpha", TeamBName: "Beta", TeamAGoals: 1, TeamBGoals: 1},
	})
	if err != nil || len(result.Errors) > 0 {
		t.Fatalf("AddMatches failed: err=%v errors=%v", err, result.Errors)
	}

	if err := env.teams.DeleteTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("DeleteTeam returned error: %v", err)
	}
	if _, err := env.teams.GetTeamByName(ctx, "Alpha"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("deleted team still resolves: err = %v", err)
	}
	if err := env.teams.DeleteTeam(ctx, "Alpha"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("second delete err = %v, want ErrTeamNotFound", err)
	}

	matches, err := env.matches.ListRecentMatches(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentMatches returned error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("deleting a team removed its matches: %d left, want 1", len(matches))
	}

	// Beta keeps the aggregates earned against the deleted team.
	beta, err := env.teams.GetTeamByName(ctx, "Beta")
	if err != nil {
		t.Fatalf("GetTeamByName returned error: %v", err)
	}
	if beta.MatchPoints != 1 || beta.TotalGoals != 1 {
		t.Errorf("opponent aggregates changed after delete: %+v", beta)
	}
}

func TestLogoUploadAndDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Crest FC", "01/03", 1)

	team, err := env.teams.UploadLogo(ctx, "Crest FC", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadLogo returned error: %v", err)
	}
	if team.LogoURL == nil || !strings.HasPrefix(*team.LogoURL, "https://cdn.test/teams/") {
		t.Errorf("logo URL = %v", team.LogoURL)
	}

	team, err = env.teams.DeleteLogo(ctx, "Crest FC")
	if err != nil {
		t.Fatalf("DeleteLogo returned error: %v", err)
	}
	if team.LogoKey != nil || team.LogoURL != nil {
		t.Errorf("logo not cleared: key=%v url=%v", team.LogoKey, team.LogoURL)
	}
	if _, err := env.teams.DeleteLogo(ctx, "Crest FC"); !errors.Is(err, ErrLogoNotFound) {
		t.Errorf("second logo delete err = %v, want ErrLogoNotFound", err)
	}
}

func TestLogoStorageUnavailable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustAddTeam(t, "Crest FC", "01/03", 1)

	svc := NewTeamService(env.teamRepo, env.audit, nil, env.clock)
	if _, err := svc.UploadLogo(ctx, "Crest FC", "image/png", strings.NewReader("x")); !errors.Is(err, ErrLogoStorageUnavailable) {
		t.Errorf("upload err = %v, want ErrLogoStorageUnavailable", err)
	}
	if _, err := svc.DeleteLogo(ctx, "Crest FC"); !errors.Is(err, ErrLogoStorageUnavailable) {
		t.Errorf("delete err = %v, want ErrLogoStorageUnavailable", err)
	}
}
