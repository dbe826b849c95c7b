// Package merge combines an imported share package with existing local state.
//
// Merging is additive: imported games with unseen ids are prepended to the
// history, imported friend names not already known are appended to the
// roster, and everything else is dropped. A name mapping translates imported
// player names to local ones before any dedup comparison.
package merge

import (
	"strings"

	"github.com/pocketscore/pocketscore/internal/model"
)

// Merge applies mapping to the imported share, then folds it into history and
// roster. Kept imported games are prepended most-recent-first and the result
// is truncated to the post-merge ceiling. Friend dedup is case-insensitive;
// the existing casing wins.
//
// Merge is pure: inputs are not mutated.
func Merge(history model.GameHistory, roster []string, imported model.Share, mapping map[string]string) (model.GameHistory, []string) {
	imported = remapShare(imported, mapping)

	// Game dedup by id: an imported game is kept only if its id is not
	// already present. Existing entries are always retained.
	var kept []model.GameState
	for _, g := range imported.Games {
		if g.ID == "" || history.Contains(g.ID) {
			continue
		}
		kept = append(kept, g)
	}

	games := make([]model.GameState, 0, len(kept)+len(history.Games))
	games = append(games, kept...)
	games = append(games, history.Games...)
	merged := model.GameHistory{Games: games}.Truncate(model.MergeHistoryCap)

	return merged, Names(roster, imported.Friends)
}

// remapShare applies the imported-name to local-name mapping to every player
// name, event player name, and friend entry.
func remapShare(s model.Share, mapping map[string]string) model.Share {
	if len(mapping) == 0 {
		return s
	}

	out := s
	out.Games = make([]model.GameState, len(s.Games))
	for i, g := range s.Games {
		gg := g.Clone()
		for j := range gg.Players {
			if local, ok := mapping[gg.Players[j].Name]; ok {
				gg.Players[j].Name = local
			}
		}
		for j := range gg.GlobalEvents {
			if local, ok := mapping[gg.GlobalEvents[j].PlayerName]; ok {
				gg.GlobalEvents[j].PlayerName = local
			}
		}
		out.Games[i] = gg
	}

	out.Friends = make([]string, len(s.Friends))
	for i, f := range s.Friends {
		if local, ok := mapping[f]; ok {
			f = local
		}
		out.Friends[i] = f
	}
	return out
}

// Names appends imported names not already present in roster, comparing
// case-insensitively. Duplicates are dropped, never renamed; the existing
// casing wins.
func Names(roster, imported []string) []string {
	seen := make(map[string]struct{}, len(roster))
	for _, name := range roster {
		seen[strings.ToLower(name)] = struct{}{}
	}

	out := make([]string, len(roster), len(roster)+len(imported))
	copy(out, roster)
	for _, name := range imported {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
