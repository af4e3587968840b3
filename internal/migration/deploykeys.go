package migration

import (
	"fmt"
	"sort"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// MigrateDeployKeys copies every deploy key of the source project to the
// destination project. Keys carry no foreign IDs, so there is nothing to
// remap.
func (m *Migrator) MigrateDeployKeys(sourceProjectID, destProjectID int) error {
	m.log.Info("Migrating deploy keys")

	keys, err := fetchAll(func(page, perPage int) ([]*gitlab.ProjectDeployKey, error) {
		keys, _, err := m.src.deployKeys.ListProjectDeployKeys(sourceProjectID, &gitlab.ListProjectDeployKeysOptions{
			Page:    page,
			PerPage: perPage,
		})
		return keys, err
	})
	if err != nil {
		return fmt.Errorf("failed to list source deploy keys: %w", err)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })

	for _, key := range keys {
		_, _, err := m.dst.deployKeys.AddDeployKey(destProjectID, &gitlab.AddDeployKeyOptions{
			Title: gitlab.Ptr(key.Title),
			Key:   gitlab.Ptr(key.Key),
		})
		if err != nil {
			return fmt.Errorf("failed to add deploy key %q: %w", key.Title, err)
		}
	}

	m.log.Info("Deploy keys migrated", zap.Int("count", len(keys)))
	return nil
}
