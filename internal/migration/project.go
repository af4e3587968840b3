package migration

import (
	"fmt"
	"sort"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// SourceProject fetches the project to migrate from the source instance. The
// identifier is either a numeric ID or a path with namespace.
func (m *Migrator) SourceProject(pid string) (*gitlab.Project, error) {
	project, _, err := m.src.projects.GetProject(pid, &gitlab.GetProjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source project %q: %w", pid, err)
	}
	return project, nil
}

// CreateProject creates the destination-side project under the given group,
// carrying over the source project's description, default branch, feature
// flags and visibility.
func (m *Migrator) CreateProject(project *gitlab.Project, group *gitlab.Group) (*gitlab.Project, error) {
	m.log.Info("Creating project", zap.String("name", project.Name), zap.Int("namespace_id", group.ID))

	created, _, err := m.dst.projects.CreateProject(&gitlab.CreateProjectOptions{
		Name:                 gitlab.Ptr(project.Name),
		Description:          gitlab.Ptr(project.Description),
		DefaultBranch:        gitlab.Ptr(project.DefaultBranch),
		NamespaceID:          gitlab.Ptr(group.ID),
		IssuesEnabled:        gitlab.Ptr(project.IssuesEnabled),
		MergeRequestsEnabled: gitlab.Ptr(project.MergeRequestsEnabled),
		WikiEnabled:          gitlab.Ptr(project.WikiEnabled),
		SnippetsEnabled:      gitlab.Ptr(project.SnippetsEnabled),
		Visibility:           gitlab.Ptr(project.Visibility),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", project.Name, err)
	}

	m.log.Info("Project created",
		zap.Int("id", created.ID),
		zap.String("path", created.PathWithNamespace))
	return created, nil
}

// Run performs one full migration of the given source project. Steps are
// strictly sequential since each one depends on the outputs of the previous
// ones; the first failure aborts the run and already-created entities stay in
// place.
func (m *Migrator) Run(project *gitlab.Project) (*gitlab.Project, error) {
	m.log.Info("Starting migration", zap.String("project", project.PathWithNamespace))

	users, err := m.MapIdentities()
	if err != nil {
		return nil, err
	}

	group, err := m.EnsureGroup(project.Namespace, users)
	if err != nil {
		return nil, err
	}

	created, err := m.CreateProject(project, group)
	if err != nil {
		return nil, err
	}

	if err := m.MigrateDeployKeys(project.ID, created.ID); err != nil {
		return nil, err
	}
	if err := m.MigrateLabels(project.ID, created.ID); err != nil {
		return nil, err
	}

	milestones, err := m.MigrateMilestones(project.ID, created.ID)
	if err != nil {
		return nil, err
	}

	if err := m.MigrateIssues(project.ID, created.ID, users, milestones); err != nil {
		return nil, err
	}
	if err := m.MigrateSnippets(project.ID, created.ID); err != nil {
		return nil, err
	}

	m.log.Info("Migration finished", zap.String("project", created.PathWithNamespace))
	return created, nil
}

// ClassifyProjects lists all source projects and splits them into the ones
// that already have a destination counterpart (matched by path with
// namespace) and the ones that do not.
func (m *Migrator) ClassifyProjects() (notMigrated, migrated []*gitlab.Project, err error) {
	sourceProjects, err := fetchAll(func(page, perPage int) ([]*gitlab.Project, error) {
		projects, _, err := m.src.projects.ListProjects(&gitlab.ListProjectsOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return projects, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list source projects: %w", err)
	}

	destProjects, err := fetchAll(func(page, perPage int) ([]*gitlab.Project, error) {
		projects, _, err := m.dst.projects.ListProjects(&gitlab.ListProjectsOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return projects, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list destination projects: %w", err)
	}

	destPaths := make(map[string]bool, len(destProjects))
	for _, p := range destProjects {
		destPaths[p.PathWithNamespace] = true
	}

	sort.Slice(sourceProjects, func(i, j int) bool { return sourceProjects[i].ID < sourceProjects[j].ID })
	for _, p := range sourceProjects {
		if destPaths[p.PathWithNamespace] {
			migrated = append(migrated, p)
		} else {
			notMigrated = append(notMigrated, p)
		}
	}
	return notMigrated, migrated, nil
}
