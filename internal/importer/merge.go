package importer

import (
	"github.com/zachlandes/2ml-crm/internal/domain"
)

// MergeDuplicates collapses rows that share a case-insensitive name.
// The output keeps first-seen order and never mutates the input.
// MergeDuplicates 按姓名（忽略大小写）合并重复行，保持首次出现顺序
func MergeDuplicates(conns []domain.Connection) []domain.Connection {
	index := make(map[string]int, len(conns))
	out := make([]domain.Connection, 0, len(conns))

	for _, c := range conns {
		key := c.MergeKey()
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, clone(c))
			continue
		}
		mergeInto(&out[i], c)
	}
	return out
}

func clone(c domain.Connection) domain.Connection {
	pp := make([]domain.PastPosition, len(c.PastPositions))
	copy(pp, c.PastPositions)
	c.PastPositions = pp
	if c.LastContactedAt != nil {
		t := *c.LastContactedAt
		c.LastContactedAt = &t
	}
	return c
}

func positionOf(c *domain.Connection) domain.PastPosition {
	return domain.PastPosition{
		Company:     c.Company,
		Position:    c.Position,
		URL:         c.URL,
		ConnectedOn: c.ConnectedOn,
	}
}

func mergeInto(primary *domain.Connection, dup domain.Connection) {
	if isNewer(dup.ConnectedOn, primary.ConnectedOn) {
		primary.PastPositions = append(primary.PastPositions, positionOf(primary))
		primary.Company = dup.Company
		primary.Position = dup.Position
		primary.URL = dup.URL
		primary.ConnectedOn = dup.ConnectedOn
	} else {
		primary.PastPositions = append(primary.PastPositions, positionOf(&dup))
	}

	if primary.Email == "" && dup.Email != "" {
		primary.Email = dup.Email
	}

	primary.Status = domain.HigherStatus(primary.Status, dup.Status)

	if dup.LastContactedAt != nil && (primary.LastContactedAt == nil || dup.LastContactedAt.After(*primary.LastContactedAt)) {
		t := *dup.LastContactedAt
		primary.LastContactedAt = &t
	}
}
