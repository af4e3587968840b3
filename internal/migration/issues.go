package migration

import (
	"fmt"
	"sort"

	"github.com/cheggaaa/pb/v3"
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// MigrateIssues copies every issue of the source project in ascending
// source-ID order. Assignees are translated through the identity mapping and
// milestones through the milestone mapping; a reference without a mapping
// entry is dropped rather than guessed. Labels go over by name, timestamps
// are passed through verbatim for servers that accept backdating. Each
// issue's notes are migrated right after the issue itself, never batched
// separately.
func (m *Migrator) MigrateIssues(sourceProjectID, destProjectID int, users UserMap, milestones MilestoneMap) error {
	m.log.Info("Migrating issues")

	issues, err := fetchAll(func(page, perPage int) ([]*gitlab.Issue, error) {
		issues, _, err := m.src.issues.ListProjectIssues(sourceProjectID, &gitlab.ListProjectIssuesOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return issues, err
	})
	if err != nil {
		return fmt.Errorf("failed to list source issues: %w", err)
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].ID < issues[j].ID })

	bar := pb.StartNew(len(issues))
	defer bar.Finish()

	for _, issue := range issues {
		opt := &gitlab.CreateIssueOptions{
			Title:       gitlab.Ptr(issue.Title),
			Description: gitlab.Ptr(issue.Description),
			CreatedAt:   issue.CreatedAt,
			DueDate:     issue.DueDate,
		}
		if len(issue.Labels) > 0 {
			labels := gitlab.LabelOptions(issue.Labels)
			opt.Labels = &labels
		}
		if issue.Assignee != nil {
			if destUserID, ok := users[issue.Assignee.ID]; ok {
				opt.AssigneeIDs = &[]int{destUserID}
			} else {
				m.log.Info("No unambiguous destination user for assignee, dropping assignment",
					zap.Int("issue", issue.ID),
					zap.String("assignee", issue.Assignee.Username))
			}
		}
		if issue.Milestone != nil {
			if destMilestoneID, ok := milestones[issue.Milestone.ID]; ok {
				opt.MilestoneID = gitlab.Ptr(destMilestoneID)
			} else {
				m.log.Info("No destination milestone for issue, dropping milestone reference",
					zap.Int("issue", issue.ID),
					zap.String("milestone", issue.Milestone.Title))
			}
		}

		created, _, err := m.dst.issues.CreateIssue(destProjectID, opt)
		if err != nil {
			return fmt.Errorf("failed to create issue %q: %w", issue.Title, err)
		}

		if issue.State == "closed" {
			_, _, err := m.dst.issues.UpdateIssue(destProjectID, created.IID, &gitlab.UpdateIssueOptions{
				StateEvent: gitlab.Ptr("close"),
				UpdatedAt:  issue.UpdatedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to close issue %q: %w", issue.Title, err)
			}
		}

		if err := m.migrateIssueNotes(sourceProjectID, issue.IID, destProjectID, created.IID); err != nil {
			return err
		}
		bar.Increment()
	}

	m.log.Info("Issues migrated", zap.Int("count", len(issues)))
	return nil
}
