package migration

import (
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// UserMap translates a source user ID to a destination user ID. Users are
// instance-local, so the translation is a best-effort name heuristic: a
// missing entry means no safe translation exists and the reference must be
// dropped, never guessed.
type UserMap map[int]int

// MapUsers matches every source user against the destination users by equal
// username or equal display name. An entry is recorded only when exactly one
// destination user matches; zero or several matches leave the source user
// unmapped.
func MapUsers(sourceUsers, destUsers []*gitlab.User) UserMap {
	users := make(UserMap)
	for _, src := range sourceUsers {
		var matches []*gitlab.User
		for _, dst := range destUsers {
			if dst.Username == src.Username || dst.Name == src.Name {
				matches = append(matches, dst)
			}
		}
		if len(matches) == 1 {
			users[src.ID] = matches[0].ID
		}
	}
	return users
}

// MapIdentities fetches all users of both instances and computes the identity
// mapping for this run.
func (m *Migrator) MapIdentities() (UserMap, error) {
	m.log.Info("Computing user identity mapping")

	sourceUsers, err := fetchAll(func(page, perPage int) ([]*gitlab.User, error) {
		users, _, err := m.src.users.ListUsers(&gitlab.ListUsersOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return users, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list source users: %w", err)
	}

	destUsers, err := fetchAll(func(page, perPage int) ([]*gitlab.User, error) {
		users, _, err := m.dst.users.ListUsers(&gitlab.ListUsersOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return users, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list destination users: %w", err)
	}

	users := MapUsers(sourceUsers, destUsers)
	m.log.Info("User identity mapping computed",
		zap.Int("source_users", len(sourceUsers)),
		zap.Int("destination_users", len(destUsers)),
		zap.Int("mapped", len(users)))
	return users, nil
}
