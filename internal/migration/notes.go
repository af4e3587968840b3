package migration

import (
	"fmt"
	"sort"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

const provenanceTimeLayout = "02 Jan 2006, 15:04"

// provenanceBody prefixes a copied note body with the original author and
// timestamp. The destination API cannot create notes under impersonated
// authorship, so provenance is carried textually. Operators rely on the
// literal format, keep it stable.
func provenanceBody(username string, createdAt time.Time, body string) string {
	return fmt.Sprintf("_Original comment by %s on %s_\n\n---\n\n%s",
		username, createdAt.Format(provenanceTimeLayout), body)
}

func copyNote(note *gitlab.Note) string {
	createdAt := time.Time{}
	if note.CreatedAt != nil {
		createdAt = *note.CreatedAt
	}
	return provenanceBody(note.Author.Username, createdAt, note.Body)
}

// migrateIssueNotes copies all notes of one source issue onto the already
// created destination issue, in ascending note-ID order. Pagination order is
// not guaranteed stable across servers, hence the defensive sort.
func (m *Migrator) migrateIssueNotes(sourceProjectID, sourceIssueIID, destProjectID, destIssueIID int) error {
	notes, err := fetchAll(func(page, perPage int) ([]*gitlab.Note, error) {
		notes, _, err := m.src.notes.ListIssueNotes(sourceProjectID, sourceIssueIID, &gitlab.ListIssueNotesOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return notes, err
	})
	if err != nil {
		return fmt.Errorf("failed to list notes of issue %d: %w", sourceIssueIID, err)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })

	for _, note := range notes {
		_, _, err := m.dst.notes.CreateIssueNote(destProjectID, destIssueIID, &gitlab.CreateIssueNoteOptions{
			Body: gitlab.Ptr(copyNote(note)),
		})
		if err != nil {
			return fmt.Errorf("failed to create note on issue %d: %w", destIssueIID, err)
		}
	}

	if len(notes) > 0 {
		m.log.Info("Issue notes migrated",
			zap.Int("issue", destIssueIID),
			zap.Int("count", len(notes)))
	}
	return nil
}

// migrateSnippetNotes is the snippet-side twin of migrateIssueNotes.
func (m *Migrator) migrateSnippetNotes(sourceProjectID, sourceSnippetID, destProjectID, destSnippetID int) error {
	notes, err := fetchAll(func(page, perPage int) ([]*gitlab.Note, error) {
		notes, _, err := m.src.notes.ListSnippetNotes(sourceProjectID, sourceSnippetID, &gitlab.ListSnippetNotesOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return notes, err
	})
	if err != nil {
		return fmt.Errorf("failed to list notes of snippet %d: %w", sourceSnippetID, err)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })

	for _, note := range notes {
		_, _, err := m.dst.notes.CreateSnippetNote(destProjectID, destSnippetID, &gitlab.CreateSnippetNoteOptions{
			Body: gitlab.Ptr(copyNote(note)),
		})
		if err != nil {
			return fmt.Errorf("failed to create note on snippet %d: %w", destSnippetID, err)
		}
	}

	if len(notes) > 0 {
		m.log.Info("Snippet notes migrated",
			zap.Int("snippet", destSnippetID),
			zap.Int("count", len(notes)))
	}
	return nil
}
