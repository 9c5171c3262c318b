// Package memory provides an in-memory implementation of the Shareguard
// composite store. It is intended for testing and development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/masatokaneko/shareguard/group"
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/object"
	"github.com/masatokaneko/shareguard/owd"
	"github.com/masatokaneko/shareguard/permission"
	"github.com/masatokaneko/shareguard/permset"
	"github.com/masatokaneko/shareguard/profile"
	"github.com/masatokaneko/shareguard/record"
	"github.com/masatokaneko/shareguard/role"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
	"github.com/masatokaneko/shareguard/store"
	"github.com/masatokaneko/shareguard/user"
)

// Compile-time interface checks.
var (
	_ user.Store       = (*Store)(nil)
	_ role.Store       = (*Store)(nil)
	_ profile.Store    = (*Store)(nil)
	_ permset.Store    = (*Store)(nil)
	_ permission.Store = (*Store)(nil)
	_ owd.Store        = (*Store)(nil)
	_ group.Store      = (*Store)(nil)
	_ rule.Store       = (*Store)(nil)
	_ share.Store      = (*Store)(nil)
	_ object.Store     = (*Store)(nil)
	_ record.Store     = (*Store)(nil)
)

// Store is a thread-safe in-memory store for all Shareguard entities.
type Store struct {
	mu sync.RWMutex

	users        map[string]*user.User // tenantID|userID
	roles        map[string]*role.Role
	profiles     map[string]*profile.Profile
	permsets     map[string]*permset.PermissionSet
	assignments  map[string]*permset.Assignment
	objectPerms  map[string]*permission.ObjectPermission
	fieldPerms   map[string]*permission.FieldPermission
	orgDefaults  map[string]*owd.OrgDefault // tenantID|objectName
	groups       map[string]*group.Group
	groupMembers map[string]*group.Member
	rules        map[string]*rule.SharingRule
	shares       map[string]*share.Share
	objectDefs   map[string]*object.Definition
	records      map[string]*record.Record // tenantID|objectName|recordID
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		users:        make(map[string]*user.User),
		roles:        make(map[string]*role.Role),
		profiles:     make(map[string]*profile.Profile),
		permsets:     make(map[string]*permset.PermissionSet),
		assignments:  make(map[string]*permset.Assignment),
		objectPerms:  make(map[string]*permission.ObjectPermission),
		fieldPerms:   make(map[string]*permission.FieldPermission),
		orgDefaults:  make(map[string]*owd.OrgDefault),
		groups:       make(map[string]*group.Group),
		groupMembers: make(map[string]*group.Member),
		rules:        make(map[string]*rule.SharingRule),
		shares:       make(map[string]*share.Share),
		objectDefs:   make(map[string]*object.Definition),
		records:      make(map[string]*record.Record),
	}
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// User Store
// ──────────────────────────────────────────────────

func (s *Store) UpsertUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.TenantID+"|"+u.ID] = copyUser(u)
	return nil
}

func (s *Store) GetUser(_ context.Context, tenantID, userID string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[tenantID+"|"+userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, errNotFound)
	}
	return copyUser(u), nil
}

func (s *Store) DeleteUser(_ context.Context, tenantID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, tenantID+"|"+userID)
	return nil
}

func (s *Store) ListUsers(_ context.Context, filter *user.ListFilter) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*user.User, 0, len(s.users))
	for _, u := range s.users {
		if filter != nil {
			if filter.TenantID != "" && u.TenantID != filter.TenantID {
				continue
			}
			if filter.ProfileID != nil && (u.ProfileID == nil || u.ProfileID.String() != filter.ProfileID.String()) {
				continue
			}
			if filter.RoleID != nil && (u.RoleID == nil || u.RoleID.String() != filter.RoleID.String()) {
				continue
			}
			if filter.IsActive != nil && u.IsActive != *filter.IsActive {
				continue
			}
		}
		result = append(result, copyUser(u))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (s *Store) ListUsersByRole(_ context.Context, tenantID string, roleID id.RoleID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rid := roleID.String()
	var result []string
	for _, u := range s.users {
		if u.TenantID == tenantID && u.RoleID != nil && u.RoleID.String() == rid {
			result = append(result, u.ID)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Role Store
// ──────────────────────────────────────────────────

func (s *Store) CreateRole(_ context.Context, r *role.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[r.ID.String()] = copyRole(r)
	return nil
}

func (s *Store) GetRole(_ context.Context, roleID id.RoleID) (*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[roleID.String()]
	if !ok {
		return nil, fmt.Errorf("role %s: %w", roleID, errNotFound)
	}
	return copyRole(r), nil
}

func (s *Store) UpdateRole(_ context.Context, r *role.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[r.ID.String()]; !ok {
		return fmt.Errorf("role %s: %w", r.ID, errNotFound)
	}
	s.roles[r.ID.String()] = copyRole(r)
	return nil
}

func (s *Store) DeleteRole(_ context.Context, roleID id.RoleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roles, roleID.String())
	return nil
}

func (s *Store) ListRoles(_ context.Context, filter *role.ListFilter) ([]*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*role.Role, 0, len(s.roles))
	for _, r := range s.roles {
		if filter != nil {
			if filter.TenantID != "" && r.TenantID != filter.TenantID {
				continue
			}
			if filter.ParentID != nil && (r.ParentID == nil || r.ParentID.String() != filter.ParentID.String()) {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, copyRole(r))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (s *Store) CountRoles(ctx context.Context, filter *role.ListFilter) (int64, error) {
	list, err := s.ListRoles(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) ListChildRoles(_ context.Context, parentID id.RoleID) ([]*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pid := parentID.String()
	var result []*role.Role
	for _, r := range s.roles {
		if r.ParentID != nil && r.ParentID.String() == pid {
			result = append(result, copyRole(r))
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Profile Store
// ──────────────────────────────────────────────────

func (s *Store) CreateProfile(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID.String()] = copyProfile(p)
	return nil
}

func (s *Store) GetProfile(_ context.Context, profileID id.ProfileID) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[profileID.String()]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", profileID, errNotFound)
	}
	return copyProfile(p), nil
}

func (s *Store) GetProfileByName(_ context.Context, tenantID, name string) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.TenantID == tenantID && p.Name == name {
			return copyProfile(p), nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", name, errNotFound)
}

func (s *Store) UpdateProfile(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID.String()]; !ok {
		return fmt.Errorf("profile %s: %w", p.ID, errNotFound)
	}
	s.profiles[p.ID.String()] = copyProfile(p)
	return nil
}

func (s *Store) DeleteProfile(_ context.Context, profileID id.ProfileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, profileID.String())
	return nil
}

func (s *Store) ListProfiles(_ context.Context, filter *profile.ListFilter) ([]*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*profile.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if filter != nil {
			if filter.TenantID != "" && p.TenantID != filter.TenantID {
				continue
			}
			if filter.IsSystem != nil && p.IsSystem != *filter.IsSystem {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, copyProfile(p))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (s *Store) CountProfiles(ctx context.Context, filter *profile.ListFilter) (int64, error) {
	list, err := s.ListProfiles(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

// ──────────────────────────────────────────────────
// Permission Set Store
// ──────────────────────────────────────────────────

func (s *Store) CreatePermissionSet(_ context.Context, ps *permset.PermissionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permsets[ps.ID.String()] = copyPermissionSet(ps)
	return nil
}

func (s *Store) GetPermissionSet(_ context.Context, setID id.PermissionSetID) (*permset.PermissionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ps, ok := s.permsets[setID.String()]
	if !ok {
		return nil, fmt.Errorf("permission set %s: %w", setID, errNotFound)
	}
	return copyPermissionSet(ps), nil
}

func (s *Store) UpdatePermissionSet(_ context.Context, ps *permset.PermissionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.permsets[ps.ID.String()]; !ok {
		return fmt.Errorf("permission set %s: %w", ps.ID, errNotFound)
	}
	s.permsets[ps.ID.String()] = copyPermissionSet(ps)
	return nil
}

func (s *Store) DeletePermissionSet(_ context.Context, setID id.PermissionSetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sid := setID.String()
	delete(s.permsets, sid)
	for k, a := range s.assignments {
		if a.PermissionSetID.String() == sid {
			delete(s.assignments, k)
		}
	}
	return nil
}

func (s *Store) ListPermissionSets(_ context.Context, filter *permset.ListFilter) ([]*permset.PermissionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*permset.PermissionSet, 0, len(s.permsets))
	for _, ps := range s.permsets {
		if filter != nil {
			if filter.TenantID != "" && ps.TenantID != filter.TenantID {
				continue
			}
			if filter.IsActive != nil && ps.IsActive != *filter.IsActive {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(ps.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, copyPermissionSet(ps))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (s *Store) CountPermissionSets(ctx context.Context, filter *permset.ListFilter) (int64, error) {
	list, err := s.ListPermissionSets(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) CreateAssignment(_ context.Context, a *permset.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.ID.String()] = copyAssignment(a)
	return nil
}

func (s *Store) DeleteAssignment(_ context.Context, assignmentID id.AssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, assignmentID.String())
	return nil
}

func (s *Store) ListAssignmentsForUser(_ context.Context, tenantID, userID string) ([]*permset.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*permset.Assignment
	for _, a := range s.assignments {
		if a.TenantID == tenantID && a.UserID == userID {
			result = append(result, copyAssignment(a))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *Store) ListActiveSetIDsForUser(ctx context.Context, tenantID, userID string) ([]id.PermissionSetID, error) {
	assignments, err := s.ListAssignmentsForUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []id.PermissionSetID
	for _, a := range assignments {
		ps, ok := s.permsets[a.PermissionSetID.String()]
		if ok && ps.IsActive {
			result = append(result, a.PermissionSetID)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Permission Store
// ──────────────────────────────────────────────────

func (s *Store) UpsertObjectPermission(_ context.Context, p *permission.ObjectPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.objectPerms {
		if existing.TenantID == p.TenantID &&
			existing.HolderType == p.HolderType &&
			existing.HolderID.String() == p.HolderID.String() &&
			existing.ObjectName == p.ObjectName {
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			break
		}
	}
	if p.ID.IsNil() {
		p.ID = id.NewObjectPermID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	s.objectPerms[p.ID.String()] = copyObjectPermission(p)
	return nil
}

func (s *Store) GetObjectPermission(_ context.Context, tenantID string, holder permission.Holder, objectName string) (*permission.ObjectPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.objectPerms {
		if p.TenantID == tenantID &&
			p.HolderType == holder.Type &&
			p.HolderID.String() == holder.ID.String() &&
			p.ObjectName == objectName {
			return copyObjectPermission(p), nil
		}
	}
	return nil, fmt.Errorf("object permission %s/%s: %w", holder.ID, objectName, errNotFound)
}

func (s *Store) ListObjectPermissions(_ context.Context, tenantID string, holders []permission.Holder, objectName string) ([]*permission.ObjectPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*permission.ObjectPermission
	for _, p := range s.objectPerms {
		if p.TenantID != tenantID || p.ObjectName != objectName {
			continue
		}
		for _, h := range holders {
			if p.HolderType == h.Type && p.HolderID.String() == h.ID.String() {
				result = append(result, copyObjectPermission(p))
				break
			}
		}
	}
	return result, nil
}

func (s *Store) ListObjectPermissionsForHolder(_ context.Context, tenantID string, holder permission.Holder) ([]*permission.ObjectPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*permission.ObjectPermission
	for _, p := range s.objectPerms {
		if p.TenantID == tenantID && p.HolderType == holder.Type && p.HolderID.String() == holder.ID.String() {
			result = append(result, copyObjectPermission(p))
		}
	}
	return result, nil
}

func (s *Store) DeleteObjectPermission(_ context.Context, permID id.ObjectPermID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objectPerms, permID.String())
	return nil
}

func (s *Store) UpsertFieldPermission(_ context.Context, p *permission.FieldPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.fieldPerms {
		if existing.TenantID == p.TenantID &&
			existing.HolderType == p.HolderType &&
			existing.HolderID.String() == p.HolderID.String() &&
			existing.ObjectName == p.ObjectName &&
			existing.FieldName == p.FieldName {
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			break
		}
	}
	if p.ID.IsNil() {
		p.ID = id.NewFieldPermID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	s.fieldPerms[p.ID.String()] = copyFieldPermission(p)
	return nil
}

func (s *Store) ListFieldPermissions(_ context.Context, tenantID string, holders []permission.Holder, objectName string) ([]*permission.FieldPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*permission.FieldPermission
	for _, p := range s.fieldPerms {
		if p.TenantID != tenantID || p.ObjectName != objectName {
			continue
		}
		for _, h := range holders {
			if p.HolderType == h.Type && p.HolderID.String() == h.ID.String() {
				result = append(result, copyFieldPermission(p))
				break
			}
		}
	}
	return result, nil
}

func (s *Store) DeleteFieldPermission(_ context.Context, permID id.FieldPermID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fieldPerms, permID.String())
	return nil
}

func (s *Store) DeletePermissionsForHolder(_ context.Context, tenantID string, holder permission.Holder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, p := range s.objectPerms {
		if p.TenantID == tenantID && p.HolderType == holder.Type && p.HolderID.String() == holder.ID.String() {
			delete(s.objectPerms, k)
		}
	}
	for k, p := range s.fieldPerms {
		if p.TenantID == tenantID && p.HolderType == holder.Type && p.HolderID.String() == holder.ID.String() {
			delete(s.fieldPerms, k)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Org-Wide Default Store
// ──────────────────────────────────────────────────

func (s *Store) UpsertOrgDefault(_ context.Context, d *owd.OrgDefault) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := d.TenantID + "|" + d.ObjectName
	if existing, ok := s.orgDefaults[key]; ok {
		d.ID = existing.ID
		d.CreatedAt = existing.CreatedAt
	}
	if d.ID.IsNil() {
		d.ID = id.NewOrgDefaultID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	d.UpdatedAt = time.Now()
	s.orgDefaults[key] = copyOrgDefault(d)
	return nil
}

func (s *Store) GetOrgDefault(_ context.Context, tenantID, objectName string) (*owd.OrgDefault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.orgDefaults[tenantID+"|"+objectName]
	if !ok {
		return nil, fmt.Errorf("org default %s: %w", objectName, errNotFound)
	}
	return copyOrgDefault(d), nil
}

func (s *Store) ListOrgDefaults(_ context.Context, tenantID string) ([]*owd.OrgDefault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*owd.OrgDefault
	for _, d := range s.orgDefaults {
		if d.TenantID == tenantID {
			result = append(result, copyOrgDefault(d))
		}
	}
	return result, nil
}

func (s *Store) DeleteOrgDefault(_ context.Context, tenantID, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orgDefaults, tenantID+"|"+objectName)
	return nil
}

// ──────────────────────────────────────────────────
// Group Store
// ──────────────────────────────────────────────────

func (s *Store) CreateGroup(_ context.Context, g *group.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[g.ID.String()] = copyGroup(g)
	return nil
}

func (s *Store) GetGroup(_ context.Context, groupID id.GroupID) (*group.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID.String()]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, errNotFound)
	}
	return copyGroup(g), nil
}

func (s *Store) UpdateGroup(_ context.Context, g *group.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[g.ID.String()]; !ok {
		return fmt.Errorf("group %s: %w", g.ID, errNotFound)
	}
	s.groups[g.ID.String()] = copyGroup(g)
	return nil
}

func (s *Store) DeleteGroup(_ context.Context, groupID id.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gid := groupID.String()
	delete(s.groups, gid)
	for k, m := range s.groupMembers {
		if m.GroupID.String() == gid {
			delete(s.groupMembers, k)
		}
	}
	return nil
}

func (s *Store) ListGroups(_ context.Context, filter *group.ListFilter) ([]*group.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*group.Group, 0, len(s.groups))
	for _, g := range s.groups {
		if filter != nil {
			if filter.TenantID != "" && g.TenantID != filter.TenantID {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, copyGroup(g))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (s *Store) CountGroups(ctx context.Context, filter *group.ListFilter) (int64, error) {
	list, err := s.ListGroups(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) AddMember(_ context.Context, m *group.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupMembers[m.ID.String()] = copyMember(m)
	return nil
}

func (s *Store) RemoveMember(_ context.Context, memberID id.GroupMemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.groupMembers, memberID.String())
	return nil
}

func (s *Store) ListMembers(_ context.Context, groupID id.GroupID) ([]*group.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gid := groupID.String()
	var result []*group.Member
	for _, m := range s.groupMembers {
		if m.GroupID.String() == gid {
			result = append(result, copyMember(m))
		}
	}
	return result, nil
}

func (s *Store) ListGroupIDsWithMember(_ context.Context, tenantID string, memberType group.MemberType, memberID string) ([]id.GroupID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []id.GroupID
	for _, m := range s.groupMembers {
		if m.TenantID == tenantID && m.MemberType == memberType && m.MemberID == memberID {
			result = append(result, m.GroupID)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Sharing Rule Store
// ──────────────────────────────────────────────────

func (s *Store) CreateRule(_ context.Context, r *rule.SharingRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[r.ID.String()] = copySharingRule(r)
	return nil
}

func (s *Store) GetRule(_ context.Context, ruleID id.RuleID) (*rule.SharingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[ruleID.String()]
	if !ok {
		return nil, fmt.Errorf("sharing rule %s: %w", ruleID, errNotFound)
	}
	return copySharingRule(r), nil
}

func (s *Store) UpdateRule(_ context.Context, r *rule.SharingRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[r.ID.String()]; !ok {
		return fmt.Errorf("sharing rule %s: %w", r.ID, errNotFound)
	}
	s.rules[r.ID.String()] = copySharingRule(r)
	return nil
}

func (s *Store) DeleteRule(_ context.Context, ruleID id.RuleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rules, ruleID.String())
	return nil
}

func (s *Store) ListRules(_ context.Context, filter *rule.ListFilter) ([]*rule.SharingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*rule.SharingRule, 0, len(s.rules))
	for _, r := range s.rules {
		if filter != nil {
			if filter.TenantID != "" && r.TenantID != filter.TenantID {
				continue
			}
			if filter.ObjectName != "" && r.ObjectName != filter.ObjectName {
				continue
			}
			if filter.Type != "" && r.Type != filter.Type {
				continue
			}
			if filter.IsActive != nil && r.IsActive != *filter.IsActive {
				continue
			}
		}
		result = append(result, copySharingRule(r))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (s *Store) CountRules(ctx context.Context, filter *rule.ListFilter) (int64, error) {
	list, err := s.ListRules(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) ListRulesForObject(_ context.Context, tenantID, objectName string) ([]*rule.SharingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*rule.SharingRule
	for _, r := range s.rules {
		if r.TenantID == tenantID && r.ObjectName == objectName {
			result = append(result, copySharingRule(r))
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Share Store
// ──────────────────────────────────────────────────

func (s *Store) UpsertShare(_ context.Context, sh *share.Share) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	// A live row on the same grant key widens in place; a soft-deleted row
	// revives at the incoming level. Either way the existing id is reused.
	var live, deleted *share.Share
	for _, existing := range s.shares {
		if !sameGrantKey(existing, sh) {
			continue
		}
		if existing.IsDeleted {
			deleted = existing
		} else {
			live = existing
		}
	}

	switch {
	case live != nil:
		live.AccessLevel = share.Max(live.AccessLevel, sh.AccessLevel)
		live.RuleID = sh.RuleID
		live.UpdatedAt = now
		*sh = *live
	case deleted != nil:
		deleted.AccessLevel = sh.AccessLevel
		deleted.RuleID = sh.RuleID
		deleted.IsDeleted = false
		deleted.DeletedAt = nil
		deleted.UpdatedAt = now
		*sh = *deleted
	default:
		if sh.ID.IsNil() {
			sh.ID = id.NewShareID()
		}
		sh.CreatedAt = now
		sh.UpdatedAt = now
		s.shares[sh.ID.String()] = copyShare(sh)
	}
	return nil
}

func (s *Store) GetShare(_ context.Context, shareID id.ShareID) (*share.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shares[shareID.String()]
	if !ok {
		return nil, fmt.Errorf("share %s: %w", shareID, errNotFound)
	}
	return copyShare(sh), nil
}

func (s *Store) FindShare(_ context.Context, tenantID, objectName, recordID string, subject share.Subject, cause share.RowCause) (*share.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sh := range s.shares {
		if sh.IsDeleted {
			continue
		}
		if sh.TenantID == tenantID && sh.ObjectName == objectName && sh.RecordID == recordID &&
			sh.SubjectType == subject.Type && sh.SubjectID == subject.ID && sh.RowCause == cause {
			return copyShare(sh), nil
		}
	}
	return nil, fmt.Errorf("share %s on %s/%s: %w", subject.Key(), objectName, recordID, errNotFound)
}

func (s *Store) ListSharesForRecord(_ context.Context, tenantID, objectName, recordID string) ([]*share.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*share.Share
	for _, sh := range s.shares {
		if sh.IsDeleted {
			continue
		}
		if sh.TenantID == tenantID && sh.ObjectName == objectName && sh.RecordID == recordID {
			result = append(result, copyShare(sh))
		}
	}
	return result, nil
}

func (s *Store) ListSharesForSubjects(_ context.Context, tenantID, objectName, recordID string, subjects []share.Subject) ([]*share.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]struct{}, len(subjects))
	for _, sub := range subjects {
		wanted[sub.Key()] = struct{}{}
	}
	var result []*share.Share
	for _, sh := range s.shares {
		if sh.IsDeleted {
			continue
		}
		if sh.TenantID != tenantID || sh.ObjectName != objectName || sh.RecordID != recordID {
			continue
		}
		if _, ok := wanted[sh.Subject().Key()]; ok {
			result = append(result, copyShare(sh))
		}
	}
	return result, nil
}

func (s *Store) ListShares(_ context.Context, filter *share.ListFilter) ([]*share.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*share.Share, 0, len(s.shares))
	for _, sh := range s.shares {
		if filter != nil {
			if !filter.IncludeDeleted && sh.IsDeleted {
				continue
			}
			if filter.TenantID != "" && sh.TenantID != filter.TenantID {
				continue
			}
			if filter.ObjectName != "" && sh.ObjectName != filter.ObjectName {
				continue
			}
			if filter.RecordID != "" && sh.RecordID != filter.RecordID {
				continue
			}
			if filter.SubjectType != "" && sh.SubjectType != filter.SubjectType {
				continue
			}
			if filter.SubjectID != "" && sh.SubjectID != filter.SubjectID {
				continue
			}
			if filter.RowCause != "" && sh.RowCause != filter.RowCause {
				continue
			}
		} else if sh.IsDeleted {
			continue
		}
		result = append(result, copyShare(sh))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

func (s *Store) CountShares(ctx context.Context, filter *share.ListFilter) (int64, error) {
	list, err := s.ListShares(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) SoftDeleteShare(_ context.Context, shareID id.ShareID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shares[shareID.String()]
	if !ok {
		return fmt.Errorf("share %s: %w", shareID, errNotFound)
	}
	markDeleted(sh)
	return nil
}

func (s *Store) SoftDeleteShares(_ context.Context, tenantID, objectName, recordID string, causes []share.RowCause) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	causeSet := make(map[share.RowCause]struct{}, len(causes))
	for _, c := range causes {
		causeSet[c] = struct{}{}
	}
	var count int64
	for _, sh := range s.shares {
		if sh.IsDeleted {
			continue
		}
		if sh.TenantID != tenantID || sh.ObjectName != objectName || sh.RecordID != recordID {
			continue
		}
		if len(causeSet) > 0 {
			if _, ok := causeSet[sh.RowCause]; !ok {
				continue
			}
		}
		markDeleted(sh)
		count++
	}
	return count, nil
}

func (s *Store) SoftDeleteSharesByRule(_ context.Context, tenantID string, ruleID id.RuleID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rid := ruleID.String()
	var count int64
	for _, sh := range s.shares {
		if sh.IsDeleted || sh.TenantID != tenantID {
			continue
		}
		if sh.RuleID != nil && sh.RuleID.String() == rid {
			markDeleted(sh)
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// Object Definition Store
// ──────────────────────────────────────────────────

func (s *Store) CreateDefinition(_ context.Context, d *object.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objectDefs[d.ID.String()] = copyDefinition(d)
	return nil
}

func (s *Store) GetDefinition(_ context.Context, defID id.ObjectDefID) (*object.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.objectDefs[defID.String()]
	if !ok {
		return nil, fmt.Errorf("object definition %s: %w", defID, errNotFound)
	}
	return copyDefinition(d), nil
}

func (s *Store) GetDefinitionByName(_ context.Context, tenantID, name string) (*object.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.objectDefs {
		if d.TenantID == tenantID && d.Name == name {
			return copyDefinition(d), nil
		}
	}
	return nil, fmt.Errorf("object definition %q: %w", name, errNotFound)
}

func (s *Store) UpdateDefinition(_ context.Context, d *object.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objectDefs[d.ID.String()]; !ok {
		return fmt.Errorf("object definition %s: %w", d.ID, errNotFound)
	}
	s.objectDefs[d.ID.String()] = copyDefinition(d)
	return nil
}

func (s *Store) DeleteDefinition(_ context.Context, defID id.ObjectDefID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objectDefs, defID.String())
	return nil
}

func (s *Store) ListDefinitions(_ context.Context, filter *object.ListFilter) ([]*object.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*object.Definition, 0, len(s.objectDefs))
	for _, d := range s.objectDefs {
		if filter != nil {
			if filter.TenantID != "" && d.TenantID != filter.TenantID {
				continue
			}
			if filter.Sharable != nil && d.Sharable != *filter.Sharable {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, copyDefinition(d))
	}
	if filter != nil {
		result = applyPagination(result, filter.Limit, filter.Offset)
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Record Store
// ──────────────────────────────────────────────────

func (s *Store) UpsertRecord(_ context.Context, r *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.TenantID+"|"+r.ObjectName+"|"+r.ID] = copyRecord(r)
	return nil
}

func (s *Store) GetRecord(_ context.Context, tenantID, objectName, recordID string) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[tenantID+"|"+objectName+"|"+recordID]
	if !ok {
		return nil, fmt.Errorf("record %s/%s: %w", objectName, recordID, errNotFound)
	}
	return copyRecord(r), nil
}

func (s *Store) DeleteRecord(_ context.Context, tenantID, objectName, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, tenantID+"|"+objectName+"|"+recordID)
	return nil
}

func (s *Store) ListRecordIDs(_ context.Context, tenantID, objectName string, afterID string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, r := range s.records {
		if r.TenantID == tenantID && r.ObjectName == objectName && r.ID > afterID {
			ids = append(ids, r.ID)
		}
	}
	sort.Strings(ids)
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *Store) ListRecordsByOwner(_ context.Context, tenantID, objectName, ownerID string) ([]*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*record.Record
	for _, r := range s.records {
		if r.TenantID == tenantID && r.ObjectName == objectName && r.OwnerID == ownerID {
			result = append(result, copyRecord(r))
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

var errNotFound = store.ErrNotFound

func sameGrantKey(a, b *share.Share) bool {
	return a.TenantID == b.TenantID &&
		a.ObjectName == b.ObjectName &&
		a.RecordID == b.RecordID &&
		a.SubjectType == b.SubjectType &&
		a.SubjectID == b.SubjectID &&
		a.RowCause == b.RowCause
}

func markDeleted(sh *share.Share) {
	now := time.Now()
	sh.IsDeleted = true
	sh.DeletedAt = &now
	sh.UpdatedAt = now
}

func copyUser(u *user.User) *user.User {
	c := *u
	return &c
}

func copyRole(r *role.Role) *role.Role {
	c := *r
	return &c
}

func copyProfile(p *profile.Profile) *profile.Profile {
	c := *p
	return &c
}

func copyPermissionSet(ps *permset.PermissionSet) *permset.PermissionSet {
	c := *ps
	return &c
}

func copyAssignment(a *permset.Assignment) *permset.Assignment {
	c := *a
	return &c
}

func copyObjectPermission(p *permission.ObjectPermission) *permission.ObjectPermission {
	c := *p
	return &c
}

func copyFieldPermission(p *permission.FieldPermission) *permission.FieldPermission {
	c := *p
	return &c
}

func copyOrgDefault(d *owd.OrgDefault) *owd.OrgDefault {
	c := *d
	return &c
}

func copyGroup(g *group.Group) *group.Group {
	c := *g
	return &c
}

func copyMember(m *group.Member) *group.Member {
	c := *m
	return &c
}

func copySharingRule(r *rule.SharingRule) *rule.SharingRule {
	c := *r
	if r.Criteria != nil {
		c.Criteria = make([]rule.Criterion, len(r.Criteria))
		copy(c.Criteria, r.Criteria)
	}
	return &c
}

func copyShare(sh *share.Share) *share.Share {
	c := *sh
	return &c
}

func copyDefinition(d *object.Definition) *object.Definition {
	c := *d
	return &c
}

func copyRecord(r *record.Record) *record.Record {
	c := *r
	if r.Fields != nil {
		c.Fields = make(map[string]any, len(r.Fields))
		for k, v := range r.Fields {
			c.Fields[k] = v
		}
	}
	return &c
}

func applyPagination[T any](items []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
