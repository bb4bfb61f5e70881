package resolve

import (
	"strconv"
	"strings"

	"complaint-intake-backend/internal/model"
	"complaint-intake-backend/internal/text"
)

// Machines matches free text against the resource catalog. A resource whose
// full name appears in the message as a bounded phrase is an exact match; a
// resource sharing at least one token with the message is a partial match.
// Exact matches suppress partial matches entirely. Results are deduplicated by
// id in first-seen order. Empty input yields an empty result, never an error.
func Machines(message string, catalog []model.Resource) []model.Resource {
	if strings.TrimSpace(message) == "" || len(catalog) == 0 {
		return nil
	}

	msgTokens := text.TokenSet(message)

	var exact, partial []model.Resource
	for _, res := range catalog {
		if text.ContainsPhrase(message, res.Name) {
			exact = append(exact, res)
			continue
		}
		for _, tok := range text.Tokens(res.Name) {
			if _, ok := msgTokens[tok]; ok {
				partial = append(partial, res)
				break
			}
		}
	}

	if len(exact) > 0 {
		return dedupByID(exact)
	}
	return dedupByID(partial)
}

// PickExactByName returns the candidates whose name equals the message after
// trimming and case folding. Catalog duplicates can yield more than one row;
// callers should break ties deterministically (lowest id).
func PickExactByName(message string, candidates []model.Resource) []model.Resource {
	want := strings.ToLower(strings.TrimSpace(message))
	if want == "" {
		return nil
	}

	var matched []model.Resource
	for _, res := range candidates {
		if strings.ToLower(strings.TrimSpace(res.Name)) == want {
			matched = append(matched, res)
		}
	}
	return dedupByID(matched)
}

// Assignment is the outcome of resolving a location to its responsible member.
// A known location with an unknown owner (nil MemberID) is a valid outcome.
type Assignment struct {
	LocationName string
	LocationID   *int64
	MemberID     *int64
}

// LocationAssignee matches a free-text location against the incharge table by
// trimmed case-insensitive equality on the location name, or exact match on
// the textual location id. A row with status "active" wins; if none is active
// the first matched row supplies the location but no member is attached.
func LocationAssignee(location string, rows []model.LabIncharge) Assignment {
	want := strings.ToLower(strings.TrimSpace(location))
	if want == "" {
		return Assignment{}
	}

	var matched []model.LabIncharge
	for _, row := range rows {
		if strings.ToLower(strings.TrimSpace(row.Location)) == want || strconv.FormatInt(row.LocationID, 10) == want {
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return Assignment{}
	}

	for _, row := range matched {
		if strings.ToLower(strings.TrimSpace(row.Status)) == "active" {
			id, member := row.LocationID, row.MemberID
			return Assignment{LocationName: row.Location, LocationID: &id, MemberID: &member}
		}
	}

	// Location known, owner unknown.
	first := matched[0]
	id := first.LocationID
	return Assignment{LocationName: first.Location, LocationID: &id}
}

func dedupByID(resources []model.Resource) []model.Resource {
	if len(resources) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(resources))
	out := resources[:0:0]
	for _, res := range resources {
		if _, ok := seen[res.ID]; ok {
			continue
		}
		seen[res.ID] = struct{}{}
		out = append(out, res)
	}
	return out
}
