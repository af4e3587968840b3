package migration

import (
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"
)

// EnsureGroup finds the destination group matching the source namespace, or
// creates it. The path is the matching key: paths are normalized by the
// server, so path equality is meaningful across instances where names are
// not.
//
// A pre-existing group is returned untouched, without any membership sync, so
// destination-side group administration is never overwritten. A freshly
// created group gets a best-effort replay of the source group's membership:
// members with an identity mapping are added at their original access level,
// the rest are skipped.
func (m *Migrator) EnsureGroup(ns *gitlab.ProjectNamespace, users UserMap) (*gitlab.Group, error) {
	m.log.Info("Searching for destination group",
		zap.String("name", ns.Name),
		zap.String("path", ns.Path))

	groups, err := fetchAll(func(page, perPage int) ([]*gitlab.Group, error) {
		groups, _, err := m.dst.groups.ListGroups(&gitlab.ListGroupsOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return groups, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list destination groups: %w", err)
	}

	for _, group := range groups {
		if group.Path == ns.Path {
			m.log.Info("Existing group found", zap.String("name", group.Name), zap.Int("id", group.ID))
			return group, nil
		}
	}

	m.log.Info("Group does not exist yet, creating it", zap.String("name", ns.Name))
	group, _, err := m.dst.groups.CreateGroup(&gitlab.CreateGroupOptions{
		Name: gitlab.Ptr(ns.Name),
		Path: gitlab.Ptr(ns.Path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group %q: %w", ns.Path, err)
	}

	if err := m.replayMembership(ns.ID, group.ID, users); err != nil {
		return nil, err
	}
	return group, nil
}

func (m *Migrator) replayMembership(sourceGroupID, destGroupID int, users UserMap) error {
	// A nil map means the caller has no identity mapping at all (the
	// create-project variant); no member could ever be translated, so the
	// source membership is not even fetched.
	if users == nil {
		return nil
	}

	members, err := fetchAll(func(page, perPage int) ([]*gitlab.GroupMember, error) {
		members, _, err := m.src.members.ListGroupMembers(sourceGroupID, &gitlab.ListGroupMembersOptions{
			ListOptions: gitlab.ListOptions{Page: page, PerPage: perPage},
		})
		return members, err
	})
	if err != nil {
		return fmt.Errorf("failed to list source group members: %w", err)
	}

	for _, member := range members {
		destUserID, ok := users[member.ID]
		if !ok {
			m.log.Info("No unambiguous destination user for member, skipping",
				zap.String("username", member.Username))
			continue
		}
		_, _, err := m.dst.members.AddGroupMember(destGroupID, &gitlab.AddGroupMemberOptions{
			UserID:      gitlab.Ptr(destUserID),
			AccessLevel: gitlab.Ptr(member.AccessLevel),
		})
		if err != nil {
			return fmt.Errorf("failed to add member %q to group: %w", member.Username, err)
		}
		m.log.Info("Added group member",
			zap.String("username", member.Username),
			zap.Int("access_level", int(member.AccessLevel)))
	}
	return nil
}
