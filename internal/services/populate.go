package services

import (
	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
)

// userDirectory loads the public profiles of ids in one query. Ids without a user are absent from
// the map, so lookups yield nil and serialize as null.
func userDirectory(users repositories.UserRepository, ids []uint) (map[uint]*models.UserPublic, error) {
	dir := make(map[uint]*models.UserPublic, len(ids))
	found, err := users.GetUsersByIDs(uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for i := range found {
		dir[found[i].ID] = found[i].ToPublic()
	}
	return dir, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
