package migration

import (
	"fmt"
	"sort"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// MilestoneMap translates a source milestone ID to the ID of the milestone
// created at the destination. Issues reference milestones by ID, so this
// mapping must cover every milestone before any issue is migrated.
type MilestoneMap map[int]int

// MigrateMilestones copies every milestone of the source project in ascending
// source-ID order and returns the resulting ID mapping. The create API does
// not accept a state, so a closed source milestone gets one follow-up
// edit-to-close call.
func (m *Migrator) MigrateMilestones(sourceProjectID, destProjectID int) (MilestoneMap, error) {
	m.log.Info("Migrating milestones")

	milestones, err := fetchAll(func(page, perPage int) ([]*gitlab.Milestone, error) {
		milestones, _, err := m.src.milestones.ListMilestones(sourceProjectID, &gitlab.ListMilestonesOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return milestones, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list source milestones: %w", err)
	}
	sort.Slice(milestones, func(i, j int) bool { return milestones[i].ID < milestones[j].ID })

	mapping := make(MilestoneMap)
	for _, milestone := range milestones {
		created, _, err := m.dst.milestones.CreateMilestone(destProjectID, &gitlab.CreateMilestoneOptions{
			Title:       gitlab.Ptr(milestone.Title),
			Description: gitlab.Ptr(milestone.Description),
			DueDate:     milestone.DueDate,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create milestone %q: %w", milestone.Title, err)
		}
		mapping[milestone.ID] = created.ID

		if milestone.State == "closed" {
			_, _, err := m.dst.milestones.UpdateMilestone(destProjectID, created.ID, &gitlab.UpdateMilestoneOptions{
				StateEvent: gitlab.Ptr("close"),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to close milestone %q: %w", milestone.Title, err)
			}
		}
	}

	m.log.Info("Milestones migrated", zap.Int("count", len(milestones)))
	return mapping, nil
}
