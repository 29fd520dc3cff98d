package roster_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reviewrota/internal/domain"
	"reviewrota/internal/domain/roster"
)

func TestValidateDevelopers(t *testing.T) {
	devs := []roster.Developer{{Name: "Joao"}, {Name: "Pavel"}}
	if err := roster.ValidateDevelopers(devs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Names are exact identifiers: differing case is a different entity.
	devs = []roster.Developer{{Name: "Joao"}, {Name: "joao"}}
	if err := roster.ValidateDevelopers(devs); err != nil {
		t.Fatalf("case-differing names are distinct: %v", err)
	}

	devs = []roster.Developer{{Name: "Joao"}, {Name: "Joao"}}
	err := roster.ValidateDevelopers(devs)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeDuplicateEntity {
		t.Fatalf("expected DUPLICATE_ENTITY, got %v", err)
	}
	if de.Entity != "Joao" {
		t.Fatalf("error must name the duplicate, got %q", de.Entity)
	}
}

func TestValidateTeams(t *testing.T) {
	teams := []roster.Team{{Name: "core"}, {Name: "infra"}}
	if err := roster.ValidateTeams(teams); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	teams = []roster.Team{{Name: "core"}, {Name: "core"}}
	err := roster.ValidateTeams(teams)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeDuplicateEntity {
		t.Fatalf("expected DUPLICATE_ENTITY, got %v", err)
	}
}

func TestNames(t *testing.T) {
	devs := []roster.Developer{{Name: "B"}, {Name: "A"}}
	want := []string{"B", "A"}
	if diff := cmp.Diff(want, roster.Names(devs)); diff != "" {
		t.Fatalf("names must keep roster order (-want +got):\n%s", diff)
	}
}
