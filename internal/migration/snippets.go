package migration

import (
	"fmt"
	"sort"

	"github.com/cheggaaa/pb/v3"
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// MigrateSnippets copies every snippet of the source project, fetching the
// raw content separately since listings only carry metadata. Visibility is
// forced to internal at the destination. Each snippet's notes follow the
// snippet itself.
func (m *Migrator) MigrateSnippets(sourceProjectID, destProjectID int) error {
	m.log.Info("Migrating snippets")

	snippets, err := fetchAll(func(page, perPage int) ([]*gitlab.Snippet, error) {
		snippets, _, err := m.src.snippets.ListSnippets(sourceProjectID, &gitlab.ListProjectSnippetsOptions{
			Page:    page,
			PerPage: perPage,
		})
		return snippets, err
	})
	if err != nil {
		return fmt.Errorf("failed to list source snippets: %w", err)
	}
	sort.Slice(snippets, func(i, j int) bool { return snippets[i].ID < snippets[j].ID })

	bar := pb.StartNew(len(snippets))
	defer bar.Finish()

	for _, snippet := range snippets {
		content, _, err := m.src.snippets.SnippetContent(sourceProjectID, snippet.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch content of snippet %q: %w", snippet.Title, err)
		}

		created, _, err := m.dst.snippets.CreateSnippet(destProjectID, &gitlab.CreateProjectSnippetOptions{
			Title:       gitlab.Ptr(snippet.Title),
			FileName:    gitlab.Ptr(snippet.FileName),
			Content:     gitlab.Ptr(string(content)),
			Visibility:  gitlab.Ptr(gitlab.InternalVisibility),
			Description: gitlab.Ptr(snippet.Description),
		})
		if err != nil {
			return fmt.Errorf("failed to create snippet %q: %w", snippet.Title, err)
		}

		if err := m.migrateSnippetNotes(sourceProjectID, snippet.ID, destProjectID, created.ID); err != nil {
			return err
		}
		bar.Increment()
	}

	m.log.Info("Snippets migrated", zap.Int("count", len(snippets)))
	return nil
}
