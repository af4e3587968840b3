// Package migration implements the orchestration engine that copies one
// project and its metadata (group, members, labels, deploy keys, milestones,
// issues, notes, snippets) from a source GitLab instance to a destination
// instance over the REST API.
package migration

import (
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// The engine consumes a narrow slice of the GitLab API surface. Each
// interface below is satisfied by the corresponding client-go service, and by
// fakes in tests.

type projectsAPI interface {
	GetProject(pid interface{}, opt *gitlab.GetProjectOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Project, *gitlab.Response, error)
	ListProjects(opt *gitlab.ListProjectsOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Project, *gitlab.Response, error)
	CreateProject(opt *gitlab.CreateProjectOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Project, *gitlab.Response, error)
}

type groupsAPI interface {
	ListGroups(opt *gitlab.ListGroupsOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Group, *gitlab.Response, error)
	CreateGroup(opt *gitlab.CreateGroupOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Group, *gitlab.Response, error)
}

type membersAPI interface {
	ListGroupMembers(gid interface{}, opt *gitlab.ListGroupMembersOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.GroupMember, *gitlab.Response, error)
	AddGroupMember(gid interface{}, opt *gitlab.AddGroupMemberOptions, options ...gitlab.RequestOptionFunc) (*gitlab.GroupMember, *gitlab.Response, error)
}

type usersAPI interface {
	ListUsers(opt *gitlab.ListUsersOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.User, *gitlab.Response, error)
}

type labelsAPI interface {
	ListLabels(pid interface{}, opt *gitlab.ListLabelsOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Label, *gitlab.Response, error)
	CreateLabel(pid interface{}, opt *gitlab.CreateLabelOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Label, *gitlab.Response, error)
}

type deployKeysAPI interface {
	ListProjectDeployKeys(pid interface{}, opt *gitlab.ListProjectDeployKeysOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.ProjectDeployKey, *gitlab.Response, error)
	AddDeployKey(pid interface{}, opt *gitlab.AddDeployKeyOptions, options ...gitlab.RequestOptionFunc) (*gitlab.ProjectDeployKey, *gitlab.Response, error)
}

type milestonesAPI interface {
	ListMilestones(pid interface{}, opt *gitlab.ListMilestonesOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Milestone, *gitlab.Response, error)
	CreateMilestone(pid interface{}, opt *gitlab.CreateMilestoneOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Milestone, *gitlab.Response, error)
	UpdateMilestone(pid interface{}, milestone int, opt *gitlab.UpdateMilestoneOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Milestone, *gitlab.Response, error)
}

type issuesAPI interface {
	ListProjectIssues(pid interface{}, opt *gitlab.ListProjectIssuesOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Issue, *gitlab.Response, error)
	CreateIssue(pid interface{}, opt *gitlab.CreateIssueOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Issue, *gitlab.Response, error)
	UpdateIssue(pid interface{}, issue int, opt *gitlab.UpdateIssueOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Issue, *gitlab.Response, error)
}

type notesAPI interface {
	ListIssueNotes(pid interface{}, issue int, opt *gitlab.ListIssueNotesOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Note, *gitlab.Response, error)
	CreateIssueNote(pid interface{}, issue int, opt *gitlab.CreateIssueNoteOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Note, *gitlab.Response, error)
	ListSnippetNotes(pid interface{}, snippet int, opt *gitlab.ListSnippetNotesOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Note, *gitlab.Response, error)
	CreateSnippetNote(pid interface{}, snippet int, opt *gitlab.CreateSnippetNoteOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Note, *gitlab.Response, error)
}

type snippetsAPI interface {
	ListSnippets(pid interface{}, opt *gitlab.ListProjectSnippetsOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Snippet, *gitlab.Response, error)
	CreateSnippet(pid interface{}, opt *gitlab.CreateProjectSnippetOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Snippet, *gitlab.Response, error)
	SnippetContent(pid interface{}, snippet int, options ...gitlab.RequestOptionFunc) ([]byte, *gitlab.Response, error)
}

// groupMembersAdapter satisfies membersAPI against client-go v0.127.0, where
// ListGroupMembers is a method of GroupsService while AddGroupMember lives on
// GroupMembersService.
type groupMembersAdapter struct {
	groups  gitlab.GroupsServiceInterface
	members gitlab.GroupMembersServiceInterface
}

func (a groupMembersAdapter) ListGroupMembers(gid interface{}, opt *gitlab.ListGroupMembersOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.GroupMember, *gitlab.Response, error) {
	return a.groups.ListGroupMembers(gid, opt, options...)
}

func (a groupMembersAdapter) AddGroupMember(gid interface{}, opt *gitlab.AddGroupMemberOptions, options ...gitlab.RequestOptionFunc) (*gitlab.GroupMember, *gitlab.Response, error) {
	return a.members.AddGroupMember(gid, opt, options...)
}

// Instance bundles the API services of one GitLab instance.
type Instance struct {
	projects   projectsAPI
	groups     groupsAPI
	members    membersAPI
	users      usersAPI
	labels     labelsAPI
	deployKeys deployKeysAPI
	milestones milestonesAPI
	issues     issuesAPI
	notes      notesAPI
	snippets   snippetsAPI
}

// NewInstance wraps an authenticated client-go client.
func NewInstance(c *gitlab.Client) *Instance {
	return &Instance{
		projects:   c.Projects,
		groups:     c.Groups,
		members:    groupMembersAdapter{groups: c.Groups, members: c.GroupMembers},
		users:      c.Users,
		labels:     c.Labels,
		deployKeys: c.DeployKeys,
		milestones: c.Milestones,
		issues:     c.Issues,
		notes:      c.Notes,
		snippets:   c.ProjectSnippets,
	}
}

// Migrator drives one migration run from a source to a destination instance.
// All API calls are issued sequentially; the ID mappings produced by earlier
// steps are threaded explicitly into later ones. Nothing is rolled back on
// failure, re-running is the recovery mechanism.
type Migrator struct {
	src *Instance
	dst *Instance
	log *zap.Logger
}

func New(source, destination *Instance, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{src: source, dst: destination, log: log}
}
