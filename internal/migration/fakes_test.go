package migration

import (
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// pagesOf serves a slice page by page, the way the API does.
func pagesOf[T any](items []T) func(page, perPage int) ([]T, error) {
	return func(page, perPage int) ([]T, error) {
		start := (page - 1) * perPage
		if start >= len(items) {
			return nil, nil
		}
		end := min(start+perPage, len(items))
		return items[start:end], nil
	}
}

type fakeProjects struct {
	project        *gitlab.Project
	projects       []*gitlab.Project
	created        []*gitlab.CreateProjectOptions
	createdProject *gitlab.Project
	err            error
}

func (f *fakeProjects) GetProject(pid interface{}, opt *gitlab.GetProjectOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Project, *gitlab.Response, error) {
	return f.project, nil, f.err
}

func (f *fakeProjects) ListProjects(opt *gitlab.ListProjectsOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Project, *gitlab.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	items, err := pagesOf(f.projects)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeProjects) CreateProject(opt *gitlab.CreateProjectOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Project, *gitlab.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.created = append(f.created, opt)
	created := f.createdProject
	if created == nil {
		created = &gitlab.Project{ID: 9000 + len(f.created), Name: *opt.Name}
	}
	return created, nil, nil
}

type fakeGroups struct {
	groups  []*gitlab.Group
	created []*gitlab.CreateGroupOptions
	err     error
}

func (f *fakeGroups) ListGroups(opt *gitlab.ListGroupsOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Group, *gitlab.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	items, err := pagesOf(f.groups)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeGroups) CreateGroup(opt *gitlab.CreateGroupOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Group, *gitlab.Response, error) {
	f.created = append(f.created, opt)
	return &gitlab.Group{ID: 500 + len(f.created), Name: *opt.Name, Path: *opt.Path}, nil, nil
}

type fakeMembers struct {
	members   []*gitlab.GroupMember
	added     []*gitlab.AddGroupMemberOptions
	listCalls int
}

func (f *fakeMembers) ListGroupMembers(gid interface{}, opt *gitlab.ListGroupMembersOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.GroupMember, *gitlab.Response, error) {
	f.listCalls++
	items, err := pagesOf(f.members)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeMembers) AddGroupMember(gid interface{}, opt *gitlab.AddGroupMemberOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.GroupMember, *gitlab.Response, error) {
	f.added = append(f.added, opt)
	return &gitlab.GroupMember{ID: *opt.UserID}, nil, nil
}

type fakeUsers struct {
	users []*gitlab.User
	calls int
	err   error
}

func (f *fakeUsers) ListUsers(opt *gitlab.ListUsersOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.User, *gitlab.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	items, err := pagesOf(f.users)(opt.Page, opt.PerPage)
	return items, nil, err
}

type fakeLabels struct {
	labels  []*gitlab.Label
	created []*gitlab.CreateLabelOptions
	err     error
}

func (f *fakeLabels) ListLabels(pid interface{}, opt *gitlab.ListLabelsOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Label, *gitlab.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	items, err := pagesOf(f.labels)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeLabels) CreateLabel(pid interface{}, opt *gitlab.CreateLabelOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Label, *gitlab.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.created = append(f.created, opt)
	return &gitlab.Label{Name: *opt.Name}, nil, nil
}

type fakeDeployKeys struct {
	keys  []*gitlab.ProjectDeployKey
	added []*gitlab.AddDeployKeyOptions
}

func (f *fakeDeployKeys) ListProjectDeployKeys(pid interface{}, opt *gitlab.ListProjectDeployKeysOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.ProjectDeployKey, *gitlab.Response, error) {
	items, err := pagesOf(f.keys)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeDeployKeys) AddDeployKey(pid interface{}, opt *gitlab.AddDeployKeyOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.ProjectDeployKey, *gitlab.Response, error) {
	f.added = append(f.added, opt)
	return &gitlab.ProjectDeployKey{Title: *opt.Title}, nil, nil
}

type milestoneUpdate struct {
	id  int
	opt *gitlab.UpdateMilestoneOptions
}

type fakeMilestones struct {
	milestones []*gitlab.Milestone
	created    []*gitlab.CreateMilestoneOptions
	updated    []milestoneUpdate
	err        error
}

func (f *fakeMilestones) ListMilestones(pid interface{}, opt *gitlab.ListMilestonesOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Milestone, *gitlab.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	items, err := pagesOf(f.milestones)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeMilestones) CreateMilestone(pid interface{}, opt *gitlab.CreateMilestoneOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Milestone, *gitlab.Response, error) {
	f.created = append(f.created, opt)
	return &gitlab.Milestone{ID: 100 + len(f.created), Title: *opt.Title}, nil, nil
}

func (f *fakeMilestones) UpdateMilestone(pid interface{}, milestone int, opt *gitlab.UpdateMilestoneOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Milestone, *gitlab.Response, error) {
	f.updated = append(f.updated, milestoneUpdate{id: milestone, opt: opt})
	return &gitlab.Milestone{ID: milestone}, nil, nil
}

type issueUpdate struct {
	iid int
	opt *gitlab.UpdateIssueOptions
}

type fakeIssues struct {
	issues  []*gitlab.Issue
	created []*gitlab.CreateIssueOptions
	updated []issueUpdate
}

func (f *fakeIssues) ListProjectIssues(pid interface{}, opt *gitlab.ListProjectIssuesOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Issue, *gitlab.Response, error) {
	items, err := pagesOf(f.issues)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeIssues) CreateIssue(pid interface{}, opt *gitlab.CreateIssueOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Issue, *gitlab.Response, error) {
	f.created = append(f.created, opt)
	return &gitlab.Issue{ID: 2000 + len(f.created), IID: 1000 + len(f.created), Title: *opt.Title}, nil, nil
}

func (f *fakeIssues) UpdateIssue(pid interface{}, issue int, opt *gitlab.UpdateIssueOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Issue, *gitlab.Response, error) {
	f.updated = append(f.updated, issueUpdate{iid: issue, opt: opt})
	return &gitlab.Issue{IID: issue}, nil, nil
}

type noteCreate struct {
	parent int
	body   string
}

type fakeNotes struct {
	issueNotes          map[int][]*gitlab.Note
	snippetNotes        map[int][]*gitlab.Note
	createdIssueNotes   []noteCreate
	createdSnippetNotes []noteCreate
}

func (f *fakeNotes) ListIssueNotes(pid interface{}, issue int, opt *gitlab.ListIssueNotesOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Note, *gitlab.Response, error) {
	items, err := pagesOf(f.issueNotes[issue])(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeNotes) CreateIssueNote(pid interface{}, issue int, opt *gitlab.CreateIssueNoteOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Note, *gitlab.Response, error) {
	f.createdIssueNotes = append(f.createdIssueNotes, noteCreate{parent: issue, body: *opt.Body})
	return &gitlab.Note{Body: *opt.Body}, nil, nil
}

func (f *fakeNotes) ListSnippetNotes(pid interface{}, snippet int, opt *gitlab.ListSnippetNotesOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Note, *gitlab.Response, error) {
	items, err := pagesOf(f.snippetNotes[snippet])(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeNotes) CreateSnippetNote(pid interface{}, snippet int, opt *gitlab.CreateSnippetNoteOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Note, *gitlab.Response, error) {
	f.createdSnippetNotes = append(f.createdSnippetNotes, noteCreate{parent: snippet, body: *opt.Body})
	return &gitlab.Note{Body: *opt.Body}, nil, nil
}

type fakeSnippets struct {
	snippets []*gitlab.Snippet
	content  map[int]string
	created  []*gitlab.CreateProjectSnippetOptions
}

func (f *fakeSnippets) ListSnippets(pid interface{}, opt *gitlab.ListProjectSnippetsOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Snippet, *gitlab.Response, error) {
	items, err := pagesOf(f.snippets)(opt.Page, opt.PerPage)
	return items, nil, err
}

func (f *fakeSnippets) CreateSnippet(pid interface{}, opt *gitlab.CreateProjectSnippetOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Snippet, *gitlab.Response, error) {
	f.created = append(f.created, opt)
	return &gitlab.Snippet{ID: 700 + len(f.created), Title: *opt.Title}, nil, nil
}

func (f *fakeSnippets) SnippetContent(pid interface{}, snippet int, _ ...gitlab.RequestOptionFunc) ([]byte, *gitlab.Response, error) {
	return []byte(f.content[snippet]), nil, nil
}

// testInstance returns an Instance backed entirely by empty fakes. Tests
// overwrite the services they exercise.
func testInstance() *Instance {
	return &Instance{
		projects:   &fakeProjects{},
		groups:     &fakeGroups{},
		members:    &fakeMembers{},
		users:      &fakeUsers{},
		labels:     &fakeLabels{},
		deployKeys: &fakeDeployKeys{},
		milestones: &fakeMilestones{},
		issues:     &fakeIssues{},
		notes:      &fakeNotes{},
		snippets:   &fakeSnippets{},
	}
}
