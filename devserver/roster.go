package devserver

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/damrufest/judgeboard/comp"
)

// parseRoster reads a participant roster CSV. Each row is
// `teamName,members,email` with members ";"-joined; a header row with
// those column names is skipped when present. Solo rosters may leave
// teamName empty, but every row needs at least one member or a team
// name.
func parseRoster(r io.Reader) ([]comp.Participant, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	if isHeaderRow(records[0]) {
		records = records[1:]
	}

	participants := make([]comp.Participant, 0, len(records))
	for i, rec := range records {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %d needs at least teamName and members columns", i+1)
		}
		p := comp.Participant{
			TeamName: strings.TrimSpace(rec[0]),
			Members:  splitMembers(rec[1]),
		}
		if len(rec) > 2 {
			p.Email = strings.TrimSpace(rec[2])
		}
		if p.TeamName == "" && len(p.Members) == 0 {
			return nil, fmt.Errorf("row %d has neither a team name nor members", i+1)
		}
		participants = append(participants, p)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("no participant rows found")
	}
	return participants, nil
}

func isHeaderRow(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(rec[0]), "teamName")
}

func splitMembers(field string) []string {
	parts := strings.Split(field, ";")
	members := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			members = append(members, p)
		}
	}
	return members
}
