package migration

import (
	"fmt"
	"sort"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// MigrateLabels copies every label of the source project to the destination
// project. Labels are referenced by name everywhere else, so no ID remapping
// is needed.
func (m *Migrator) MigrateLabels(sourceProjectID, destProjectID int) error {
	m.log.Info("Migrating labels")

	labels, err := fetchAll(func(page, perPage int) ([]*gitlab.Label, error) {
		labels, _, err := m.src.labels.ListLabels(sourceProjectID, &gitlab.ListLabelsOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return labels, err
	})
	if err != nil {
		return fmt.Errorf("failed to list source labels: %w", err)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })

	for _, label := range labels {
		_, _, err := m.dst.labels.CreateLabel(destProjectID, &gitlab.CreateLabelOptions{
			Name:        gitlab.Ptr(label.Name),
			Color:       gitlab.Ptr(label.Color),
			Description: gitlab.Ptr(label.Description),
		})
		if err != nil {
			return fmt.Errorf("failed to create label %q: %w", label.Name, err)
		}
	}

	m.log.Info("Labels migrated", zap.Int("count", len(labels)))
	return nil
}
