package snapshot

import "fmt"

// Normalize makes each mission's Squads projection agree with its SquadIDs:
// entries for ids outside SquadIDs are dropped, ids without an entry get one
// built from the squad list. Duplicate ids are collapsed. It returns a
// description of every repair so callers can log them.
func (s *Snapshot) Normalize() []string {
	if s == nil {
		return nil
	}
	byID := make(map[int]Squad, len(s.Squads))
	for _, sq := range s.Squads {
		byID[sq.ID] = sq
	}

	var repairs []string
	for i := range s.Missions {
		m := &s.Missions[i]

		ids := make([]int, 0, len(m.SquadIDs))
		seen := make(map[int]bool, len(m.SquadIDs))
		for _, id := range m.SquadIDs {
			if seen[id] {
				repairs = append(repairs, fmt.Sprintf("mission %d: duplicate squad id %d", m.ID, id))
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}

		refs := make(map[int]SquadRef, len(m.Squads))
		for _, ref := range m.Squads {
			if !seen[ref.ID] {
				repairs = append(repairs, fmt.Sprintf("mission %d: dropped orphan squad entry %d", m.ID, ref.ID))
				continue
			}
			refs[ref.ID] = ref
		}

		projection := make([]SquadRef, 0, len(ids))
		for _, id := range ids {
			if ref, ok := refs[id]; ok {
				projection = append(projection, ref)
				continue
			}
			sq, ok := byID[id]
			if !ok {
				repairs = append(repairs, fmt.Sprintf("mission %d: squad %d unknown, kept id only", m.ID, id))
				projection = append(projection, SquadRef{ID: id})
				continue
			}
			repairs = append(repairs, fmt.Sprintf("mission %d: synthesized squad entry %d", m.ID, id))
			projection = append(projection, SquadRef{ID: sq.ID, Name: sq.Name, Status: sq.CurrentStatus})
		}

		m.SquadIDs = ids
		m.Squads = projection
	}
	return repairs
}
