package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"reviewrota/internal/domain"
	"reviewrota/internal/domain/roster"
	"reviewrota/internal/domain/rotation"
)

// Fixed roster columns; rotation columns are inserted right after them,
// newest first.
const (
	headerDeveloper      = "Developer"
	headerTeam           = "Team"
	headerTeamDevelopers = "Team Developers"
	headerReviewerNumber = "Number of Reviewers"
	headerPreferable     = "Preferable Reviewers"

	fixedColumns = 3
)

// parseNameList splits a comma-separated cell into names, trimming
// whitespace around commas only. Names themselves are exact identifiers.
func parseNameList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// parseReviewerNumber reads a per-entity override; empty means "use the
// default" and comes back as 0.
func parseReviewerNumber(cell, entity string) (int, error) {
	v := strings.TrimSpace(cell)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, &domain.DomainError{
			Code:    domain.ErrorCodeSheetFormat,
			Entity:  entity,
			Message: fmt.Sprintf("%q is not a valid reviewer number", cell),
		}
	}
	return n, nil
}

func headerIndex(headers []string, name string) (int, error) {
	for i, h := range headers {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, &domain.DomainError{
		Code:    domain.ErrorCodeSheetFormat,
		Message: fmt.Sprintf("required column %q not found", name),
	}
}

func parseDevelopers(rows [][]string) ([]roster.Developer, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	nameCol, err := headerIndex(rows[0], headerDeveloper)
	if err != nil {
		return nil, err
	}
	numberCol, err := headerIndex(rows[0], headerReviewerNumber)
	if err != nil {
		return nil, err
	}
	preferCol, err := headerIndex(rows[0], headerPreferable)
	if err != nil {
		return nil, err
	}

	var devs []roster.Developer
	for _, row := range rows[1:] {
		name := cellAt(row, nameCol)
		if strings.TrimSpace(name) == "" {
			continue
		}
		number, err := parseReviewerNumber(cellAt(row, numberCol), name)
		if err != nil {
			return nil, err
		}
		devs = append(devs, roster.Developer{
			Name:               name,
			ReviewerNumber:     number,
			PreferredReviewers: parseNameList(cellAt(row, preferCol)),
		})
	}
	return devs, nil
}

func parseTeams(rows [][]string) ([]roster.Team, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	nameCol, err := headerIndex(rows[0], headerTeam)
	if err != nil {
		return nil, err
	}
	membersCol, err := headerIndex(rows[0], headerTeamDevelopers)
	if err != nil {
		return nil, err
	}
	numberCol, err := headerIndex(rows[0], headerReviewerNumber)
	if err != nil {
		return nil, err
	}

	var teams []roster.Team
	for _, row := range rows[1:] {
		name := cellAt(row, nameCol)
		if strings.TrimSpace(name) == "" {
			continue
		}
		number, err := parseReviewerNumber(cellAt(row, numberCol), name)
		if err != nil {
			return nil, err
		}
		teams = append(teams, roster.Team{
			Name:           name,
			Members:        parseNameList(cellAt(row, membersCol)),
			ReviewerNumber: number,
		})
	}
	return teams, nil
}

// parseHistory counts reviewer occurrences in the newest rotation column.
// A newest column whose header is not a rotation date (an exception column
// from a failed run) carries no history.
func parseHistory(rows [][]string) map[string]int {
	counts := map[string]int{}
	if len(rows) == 0 || len(rows[0]) <= fixedColumns {
		return counts
	}
	if _, err := rotation.ParseRotationHeader(rows[0][fixedColumns]); err != nil {
		return counts
	}
	for _, row := range rows[1:] {
		for _, name := range parseNameList(cellAt(row, fixedColumns)) {
			counts[name]++
		}
	}
	return counts
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// columnLetter converts a 1-based column number to its A1 letter form.
func columnLetter(n int) string {
	letter := ""
	for n > 0 {
		n--
		letter = string(rune('A'+n%26)) + letter
		n /= 26
	}
	return letter
}
