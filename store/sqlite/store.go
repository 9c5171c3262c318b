// Package sqlite provides a SQLite implementation of the Shareguard
// composite store, suited for embedded and single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

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

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// errNotFound is the sentinel for missing entities.
var errNotFound = store.ErrNotFound

// Store is a SQLite implementation of the composite Shareguard store.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("shareguard/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("shareguard/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ──────────────────────────────────────────────────
// User operations
// ──────────────────────────────────────────────────

func (s *Store) UpsertUser(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	m, err := userToModel(u)
	if err != nil {
		return fmt.Errorf("shareguard: upsert user: %w", err)
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: upsert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("shareguard: upsert user rows: %w", err)
	}
	if n == 0 {
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert user: %w", err)
		}
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, tenantID, userID string) (*user.User, error) {
	m := new(userModel)
	err := s.sdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s: %w", userID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get user: %w", err)
	}
	return userFromModel(m)
}

func (s *Store) DeleteUser(ctx context.Context, tenantID, userID string) error {
	_, err := s.sdb.NewDelete((*userModel)(nil)).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete user: %w", err)
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context, filter *user.ListFilter) ([]*user.User, error) {
	var models []userModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.ProfileID != nil {
			q = q.Where("profile_id = ?", filter.ProfileID.String())
		}
		if filter.RoleID != nil {
			q = q.Where("role_id = ?", filter.RoleID.String())
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list users: %w", err)
	}
	result := make([]*user.User, len(models))
	for i := range models {
		u, err := userFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list users: %w", err)
		}
		result[i] = u
	}
	return result, nil
}

func (s *Store) ListUsersByRole(ctx context.Context, tenantID string, roleID id.RoleID) ([]string, error) {
	var models []userModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("role_id = ?", roleID.String()).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list users by role: %w", err)
	}
	result := make([]string, len(models))
	for i := range models {
		result[i] = models[i].ID
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Role operations
// ──────────────────────────────────────────────────

func (s *Store) CreateRole(ctx context.Context, r *role.Role) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	m, err := roleToModel(r)
	if err != nil {
		return fmt.Errorf("shareguard: create role: %w", err)
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: create role: %w", err)
	}
	return nil
}

func (s *Store) GetRole(ctx context.Context, roleID id.RoleID) (*role.Role, error) {
	m := new(roleModel)
	err := s.sdb.NewSelect(m).Where("id = ?", roleID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("role %s: %w", roleID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get role: %w", err)
	}
	return roleFromModel(m)
}

func (s *Store) UpdateRole(ctx context.Context, r *role.Role) error {
	r.UpdatedAt = time.Now().UTC()
	m, err := roleToModel(r)
	if err != nil {
		return fmt.Errorf("shareguard: update role: %w", err)
	}
	if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: update role: %w", err)
	}
	return nil
}

func (s *Store) DeleteRole(ctx context.Context, roleID id.RoleID) error {
	_, err := s.sdb.NewDelete((*roleModel)(nil)).
		Where("id = ?", roleID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete role: %w", err)
	}
	return nil
}

func (s *Store) ListRoles(ctx context.Context, filter *role.ListFilter) ([]*role.Role, error) {
	var models []roleModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.ParentID != nil {
			q = q.Where("parent_id = ?", filter.ParentID.String())
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list roles: %w", err)
	}
	result := make([]*role.Role, len(models))
	for i := range models {
		r, err := roleFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list roles: %w", err)
		}
		result[i] = r
	}
	return result, nil
}

func (s *Store) CountRoles(ctx context.Context, filter *role.ListFilter) (int64, error) {
	q := s.sdb.NewSelect((*roleModel)(nil))
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.ParentID != nil {
			q = q.Where("parent_id = ?", filter.ParentID.String())
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: count roles: %w", err)
	}
	return count, nil
}

func (s *Store) ListChildRoles(ctx context.Context, parentID id.RoleID) ([]*role.Role, error) {
	var models []roleModel
	err := s.sdb.NewSelect(&models).
		Where("parent_id = ?", parentID.String()).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list child roles: %w", err)
	}
	result := make([]*role.Role, len(models))
	for i := range models {
		r, err := roleFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list child roles: %w", err)
		}
		result[i] = r
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Profile operations
// ──────────────────────────────────────────────────

func (s *Store) CreateProfile(ctx context.Context, p *profile.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m, err := profileToModel(p)
	if err != nil {
		return fmt.Errorf("shareguard: create profile: %w", err)
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: create profile: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, profileID id.ProfileID) (*profile.Profile, error) {
	m := new(profileModel)
	err := s.sdb.NewSelect(m).Where("id = ?", profileID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("profile %s: %w", profileID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get profile: %w", err)
	}
	return profileFromModel(m)
}

func (s *Store) GetProfileByName(ctx context.Context, tenantID, name string) (*profile.Profile, error) {
	m := new(profileModel)
	err := s.sdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("profile %q: %w", name, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get profile by name: %w", err)
	}
	return profileFromModel(m)
}

func (s *Store) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	m, err := profileToModel(p)
	if err != nil {
		return fmt.Errorf("shareguard: update profile: %w", err)
	}
	if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: update profile: %w", err)
	}
	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, profileID id.ProfileID) error {
	_, err := s.sdb.NewDelete((*profileModel)(nil)).
		Where("id = ?", profileID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete profile: %w", err)
	}
	return nil
}

func (s *Store) ListProfiles(ctx context.Context, filter *profile.ListFilter) ([]*profile.Profile, error) {
	var models []profileModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.IsSystem != nil {
			q = q.Where("is_system = ?", *filter.IsSystem)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list profiles: %w", err)
	}
	result := make([]*profile.Profile, len(models))
	for i := range models {
		p, err := profileFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list profiles: %w", err)
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) CountProfiles(ctx context.Context, filter *profile.ListFilter) (int64, error) {
	q := s.sdb.NewSelect((*profileModel)(nil))
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.IsSystem != nil {
			q = q.Where("is_system = ?", *filter.IsSystem)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: count profiles: %w", err)
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// Permission set operations
// ──────────────────────────────────────────────────

func (s *Store) CreatePermissionSet(ctx context.Context, ps *permset.PermissionSet) error {
	now := time.Now().UTC()
	ps.CreatedAt = now
	ps.UpdatedAt = now
	m, err := permissionSetToModel(ps)
	if err != nil {
		return fmt.Errorf("shareguard: create permission set: %w", err)
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: create permission set: %w", err)
	}
	return nil
}

func (s *Store) GetPermissionSet(ctx context.Context, setID id.PermissionSetID) (*permset.PermissionSet, error) {
	m := new(permissionSetModel)
	err := s.sdb.NewSelect(m).Where("id = ?", setID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("permission set %s: %w", setID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get permission set: %w", err)
	}
	return permissionSetFromModel(m)
}

func (s *Store) UpdatePermissionSet(ctx context.Context, ps *permset.PermissionSet) error {
	ps.UpdatedAt = time.Now().UTC()
	m, err := permissionSetToModel(ps)
	if err != nil {
		return fmt.Errorf("shareguard: update permission set: %w", err)
	}
	if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: update permission set: %w", err)
	}
	return nil
}

func (s *Store) DeletePermissionSet(ctx context.Context, setID id.PermissionSetID) error {
	// SQLite enforces the FK cascade only with foreign_keys=on, so remove
	// assignments explicitly.
	_, err := s.sdb.NewDelete((*assignmentModel)(nil)).
		Where("permission_set_id = ?", setID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete permission set: %w", err)
	}
	_, err = s.sdb.NewDelete((*permissionSetModel)(nil)).
		Where("id = ?", setID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete permission set: %w", err)
	}
	return nil
}

func (s *Store) ListPermissionSets(ctx context.Context, filter *permset.ListFilter) ([]*permset.PermissionSet, error) {
	var models []permissionSetModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list permission sets: %w", err)
	}
	result := make([]*permset.PermissionSet, len(models))
	for i := range models {
		ps, err := permissionSetFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list permission sets: %w", err)
		}
		result[i] = ps
	}
	return result, nil
}

func (s *Store) CountPermissionSets(ctx context.Context, filter *permset.ListFilter) (int64, error) {
	q := s.sdb.NewSelect((*permissionSetModel)(nil))
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: count permission sets: %w", err)
	}
	return count, nil
}

func (s *Store) CreateAssignment(ctx context.Context, a *permset.Assignment) error {
	a.CreatedAt = time.Now().UTC()
	m, err := assignmentToModel(a)
	if err != nil {
		return fmt.Errorf("shareguard: create assignment: %w", err)
	}
	_, err = s.sdb.NewInsert(m).
		OnConflict("(tenant_id, user_id, permission_set_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: create assignment: %w", err)
	}
	return nil
}

func (s *Store) DeleteAssignment(ctx context.Context, assignmentID id.AssignmentID) error {
	_, err := s.sdb.NewDelete((*assignmentModel)(nil)).
		Where("id = ?", assignmentID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete assignment: %w", err)
	}
	return nil
}

func (s *Store) ListAssignmentsForUser(ctx context.Context, tenantID, userID string) ([]*permset.Assignment, error) {
	var models []assignmentModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list assignments for user: %w", err)
	}
	result := make([]*permset.Assignment, len(models))
	for i := range models {
		a, err := assignmentFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list assignments for user: %w", err)
		}
		result[i] = a
	}
	return result, nil
}

func (s *Store) ListActiveSetIDsForUser(ctx context.Context, tenantID, userID string) ([]id.PermissionSetID, error) {
	// First, load the user's assignments.
	var assignModels []assignmentModel
	err := s.sdb.NewSelect(&assignModels).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list active set ids for user: %w", err)
	}
	if len(assignModels) == 0 {
		return []id.PermissionSetID{}, nil
	}

	setIDs := make([]string, len(assignModels))
	for i, a := range assignModels {
		setIDs[i] = a.PermissionSetID
	}

	// Then, keep only the sets that are active.
	var setModels []permissionSetModel
	err = s.sdb.NewSelect(&setModels).
		Where("id IN (?)", setIDs).
		Where("is_active = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list active set ids for user: %w", err)
	}
	active := make(map[string]struct{}, len(setModels))
	for _, m := range setModels {
		active[m.ID] = struct{}{}
	}
	result := make([]id.PermissionSetID, 0, len(assignModels))
	for _, a := range assignModels {
		if _, ok := active[a.PermissionSetID]; !ok {
			continue
		}
		sid, err := id.ParsePermissionSetID(a.PermissionSetID)
		if err == nil {
			result = append(result, sid)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Object / field permission operations
// ──────────────────────────────────────────────────

func (s *Store) UpsertObjectPermission(ctx context.Context, p *permission.ObjectPermission) error {
	now := time.Now().UTC()

	existing := new(objectPermModel)
	err := s.sdb.NewSelect(existing).
		Where("tenant_id = ?", p.TenantID).
		Where("holder_type = ?", string(p.HolderType)).
		Where("holder_id = ?", p.HolderID.String()).
		Where("object_name = ?", p.ObjectName).
		Scan(ctx)
	switch {
	case err == nil:
		pid, _ := id.ParseObjectPermID(existing.ID) //nolint:errcheck // stored IDs are always valid
		p.ID = pid
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = now
		m, err := objectPermToModel(p)
		if err != nil {
			return fmt.Errorf("shareguard: upsert object permission: %w", err)
		}
		if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert object permission: %w", err)
		}
		return nil
	case isNoRows(err):
		if p.ID.IsNil() {
			p.ID = id.NewObjectPermID()
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		m, err := objectPermToModel(p)
		if err != nil {
			return fmt.Errorf("shareguard: upsert object permission: %w", err)
		}
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert object permission: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("shareguard: upsert object permission: %w", err)
	}
}

func (s *Store) GetObjectPermission(ctx context.Context, tenantID string, holder permission.Holder, objectName string) (*permission.ObjectPermission, error) {
	m := new(objectPermModel)
	err := s.sdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("holder_type = ?", string(holder.Type)).
		Where("holder_id = ?", holder.ID.String()).
		Where("object_name = ?", objectName).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("object permission %s/%s: %w", holder.ID, objectName, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get object permission: %w", err)
	}
	return objectPermFromModel(m)
}

func (s *Store) ListObjectPermissions(ctx context.Context, tenantID string, holders []permission.Holder, objectName string) ([]*permission.ObjectPermission, error) {
	if len(holders) == 0 {
		return nil, nil
	}
	holderIDs := make([]string, len(holders))
	for i, h := range holders {
		holderIDs[i] = h.ID.String()
	}
	var models []objectPermModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("holder_id IN (?)", holderIDs).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list object permissions: %w", err)
	}
	result := make([]*permission.ObjectPermission, len(models))
	for i := range models {
		p, err := objectPermFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list object permissions: %w", err)
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) ListObjectPermissionsForHolder(ctx context.Context, tenantID string, holder permission.Holder) ([]*permission.ObjectPermission, error) {
	var models []objectPermModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("holder_type = ?", string(holder.Type)).
		Where("holder_id = ?", holder.ID.String()).
		OrderExpr("object_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list object permissions for holder: %w", err)
	}
	result := make([]*permission.ObjectPermission, len(models))
	for i := range models {
		p, err := objectPermFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list object permissions for holder: %w", err)
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) DeleteObjectPermission(ctx context.Context, permID id.ObjectPermID) error {
	_, err := s.sdb.NewDelete((*objectPermModel)(nil)).
		Where("id = ?", permID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete object permission: %w", err)
	}
	return nil
}

func (s *Store) UpsertFieldPermission(ctx context.Context, p *permission.FieldPermission) error {
	now := time.Now().UTC()

	existing := new(fieldPermModel)
	err := s.sdb.NewSelect(existing).
		Where("tenant_id = ?", p.TenantID).
		Where("holder_type = ?", string(p.HolderType)).
		Where("holder_id = ?", p.HolderID.String()).
		Where("object_name = ?", p.ObjectName).
		Where("field_name = ?", p.FieldName).
		Scan(ctx)
	switch {
	case err == nil:
		pid, _ := id.ParseFieldPermID(existing.ID) //nolint:errcheck // stored IDs are always valid
		p.ID = pid
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = now
		m, err := fieldPermToModel(p)
		if err != nil {
			return fmt.Errorf("shareguard: upsert field permission: %w", err)
		}
		if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert field permission: %w", err)
		}
		return nil
	case isNoRows(err):
		if p.ID.IsNil() {
			p.ID = id.NewFieldPermID()
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		m, err := fieldPermToModel(p)
		if err != nil {
			return fmt.Errorf("shareguard: upsert field permission: %w", err)
		}
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert field permission: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("shareguard: upsert field permission: %w", err)
	}
}

func (s *Store) ListFieldPermissions(ctx context.Context, tenantID string, holders []permission.Holder, objectName string) ([]*permission.FieldPermission, error) {
	if len(holders) == 0 {
		return nil, nil
	}
	holderIDs := make([]string, len(holders))
	for i, h := range holders {
		holderIDs[i] = h.ID.String()
	}
	var models []fieldPermModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("holder_id IN (?)", holderIDs).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list field permissions: %w", err)
	}
	result := make([]*permission.FieldPermission, len(models))
	for i := range models {
		p, err := fieldPermFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list field permissions: %w", err)
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) DeleteFieldPermission(ctx context.Context, permID id.FieldPermID) error {
	_, err := s.sdb.NewDelete((*fieldPermModel)(nil)).
		Where("id = ?", permID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete field permission: %w", err)
	}
	return nil
}

func (s *Store) DeletePermissionsForHolder(ctx context.Context, tenantID string, holder permission.Holder) error {
	_, err := s.sdb.NewDelete((*objectPermModel)(nil)).
		Where("tenant_id = ?", tenantID).
		Where("holder_type = ?", string(holder.Type)).
		Where("holder_id = ?", holder.ID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete object permissions for holder: %w", err)
	}
	_, err = s.sdb.NewDelete((*fieldPermModel)(nil)).
		Where("tenant_id = ?", tenantID).
		Where("holder_type = ?", string(holder.Type)).
		Where("holder_id = ?", holder.ID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete field permissions for holder: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Org-wide default operations
// ──────────────────────────────────────────────────

func (s *Store) UpsertOrgDefault(ctx context.Context, d *owd.OrgDefault) error {
	now := time.Now().UTC()

	existing := new(orgDefaultModel)
	err := s.sdb.NewSelect(existing).
		Where("tenant_id = ?", d.TenantID).
		Where("object_name = ?", d.ObjectName).
		Scan(ctx)
	switch {
	case err == nil:
		did, _ := id.ParseOrgDefaultID(existing.ID) //nolint:errcheck // stored IDs are always valid
		d.ID = did
		d.CreatedAt = existing.CreatedAt
		d.UpdatedAt = now
		m, err := orgDefaultToModel(d)
		if err != nil {
			return fmt.Errorf("shareguard: upsert org default: %w", err)
		}
		if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert org default: %w", err)
		}
		return nil
	case isNoRows(err):
		if d.ID.IsNil() {
			d.ID = id.NewOrgDefaultID()
		}
		d.CreatedAt = now
		d.UpdatedAt = now
		m, err := orgDefaultToModel(d)
		if err != nil {
			return fmt.Errorf("shareguard: upsert org default: %w", err)
		}
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert org default: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("shareguard: upsert org default: %w", err)
	}
}

func (s *Store) GetOrgDefault(ctx context.Context, tenantID, objectName string) (*owd.OrgDefault, error) {
	m := new(orgDefaultModel)
	err := s.sdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("org default %s: %w", objectName, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get org default: %w", err)
	}
	return orgDefaultFromModel(m)
}

func (s *Store) ListOrgDefaults(ctx context.Context, tenantID string) ([]*owd.OrgDefault, error) {
	var models []orgDefaultModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		OrderExpr("object_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list org defaults: %w", err)
	}
	result := make([]*owd.OrgDefault, len(models))
	for i := range models {
		d, err := orgDefaultFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list org defaults: %w", err)
		}
		result[i] = d
	}
	return result, nil
}

func (s *Store) DeleteOrgDefault(ctx context.Context, tenantID, objectName string) error {
	_, err := s.sdb.NewDelete((*orgDefaultModel)(nil)).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete org default: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Group operations
// ──────────────────────────────────────────────────

func (s *Store) CreateGroup(ctx context.Context, g *group.Group) error {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	m, err := groupToModel(g)
	if err != nil {
		return fmt.Errorf("shareguard: create group: %w", err)
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: create group: %w", err)
	}
	return nil
}

func (s *Store) GetGroup(ctx context.Context, groupID id.GroupID) (*group.Group, error) {
	m := new(groupModel)
	err := s.sdb.NewSelect(m).Where("id = ?", groupID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("group %s: %w", groupID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get group: %w", err)
	}
	return groupFromModel(m)
}

func (s *Store) UpdateGroup(ctx context.Context, g *group.Group) error {
	g.UpdatedAt = time.Now().UTC()
	m, err := groupToModel(g)
	if err != nil {
		return fmt.Errorf("shareguard: update group: %w", err)
	}
	if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: update group: %w", err)
	}
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, groupID id.GroupID) error {
	// Remove membership rows explicitly, see DeletePermissionSet.
	_, err := s.sdb.NewDelete((*groupMemberModel)(nil)).
		Where("group_id = ?", groupID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete group: %w", err)
	}
	_, err = s.sdb.NewDelete((*groupModel)(nil)).
		Where("id = ?", groupID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete group: %w", err)
	}
	return nil
}

func (s *Store) ListGroups(ctx context.Context, filter *group.ListFilter) ([]*group.Group, error) {
	var models []groupModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list groups: %w", err)
	}
	result := make([]*group.Group, len(models))
	for i := range models {
		g, err := groupFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list groups: %w", err)
		}
		result[i] = g
	}
	return result, nil
}

func (s *Store) CountGroups(ctx context.Context, filter *group.ListFilter) (int64, error) {
	q := s.sdb.NewSelect((*groupModel)(nil))
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: count groups: %w", err)
	}
	return count, nil
}

func (s *Store) AddMember(ctx context.Context, m *group.Member) error {
	m.CreatedAt = time.Now().UTC()
	model, err := groupMemberToModel(m)
	if err != nil {
		return fmt.Errorf("shareguard: add group member: %w", err)
	}
	_, err = s.sdb.NewInsert(model).
		OnConflict("(group_id, member_type, member_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: add group member: %w", err)
	}
	return nil
}

func (s *Store) RemoveMember(ctx context.Context, memberID id.GroupMemberID) error {
	_, err := s.sdb.NewDelete((*groupMemberModel)(nil)).
		Where("id = ?", memberID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: remove group member: %w", err)
	}
	return nil
}

func (s *Store) ListMembers(ctx context.Context, groupID id.GroupID) ([]*group.Member, error) {
	var models []groupMemberModel
	err := s.sdb.NewSelect(&models).
		Where("group_id = ?", groupID.String()).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list group members: %w", err)
	}
	result := make([]*group.Member, len(models))
	for i := range models {
		m, err := groupMemberFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list group members: %w", err)
		}
		result[i] = m
	}
	return result, nil
}

func (s *Store) ListGroupIDsWithMember(ctx context.Context, tenantID string, memberType group.MemberType, memberID string) ([]id.GroupID, error) {
	var models []groupMemberModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("member_type = ?", string(memberType)).
		Where("member_id = ?", memberID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list groups with member: %w", err)
	}
	result := make([]id.GroupID, 0, len(models))
	for _, m := range models {
		gid, err := id.ParseGroupID(m.GroupID)
		if err == nil {
			result = append(result, gid)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Sharing rule operations
// ──────────────────────────────────────────────────

func (s *Store) CreateRule(ctx context.Context, r *rule.SharingRule) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	m, err := ruleToModel(r)
	if err != nil {
		return fmt.Errorf("shareguard: create sharing rule: %w", err)
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: create sharing rule: %w", err)
	}
	return nil
}

func (s *Store) GetRule(ctx context.Context, ruleID id.RuleID) (*rule.SharingRule, error) {
	m := new(ruleModel)
	err := s.sdb.NewSelect(m).Where("id = ?", ruleID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("sharing rule %s: %w", ruleID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get sharing rule: %w", err)
	}
	return ruleFromModel(m)
}

func (s *Store) UpdateRule(ctx context.Context, r *rule.SharingRule) error {
	r.UpdatedAt = time.Now().UTC()
	m, err := ruleToModel(r)
	if err != nil {
		return fmt.Errorf("shareguard: update sharing rule: %w", err)
	}
	if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: update sharing rule: %w", err)
	}
	return nil
}

func (s *Store) DeleteRule(ctx context.Context, ruleID id.RuleID) error {
	_, err := s.sdb.NewDelete((*ruleModel)(nil)).
		Where("id = ?", ruleID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete sharing rule: %w", err)
	}
	return nil
}

func (s *Store) ListRules(ctx context.Context, filter *rule.ListFilter) ([]*rule.SharingRule, error) {
	var models []ruleModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.ObjectName != "" {
			q = q.Where("object_name = ?", filter.ObjectName)
		}
		if filter.Type != "" {
			q = q.Where("type = ?", string(filter.Type))
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list sharing rules: %w", err)
	}
	result := make([]*rule.SharingRule, len(models))
	for i := range models {
		r, err := ruleFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list sharing rules: %w", err)
		}
		result[i] = r
	}
	return result, nil
}

func (s *Store) CountRules(ctx context.Context, filter *rule.ListFilter) (int64, error) {
	q := s.sdb.NewSelect((*ruleModel)(nil))
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.ObjectName != "" {
			q = q.Where("object_name = ?", filter.ObjectName)
		}
		if filter.Type != "" {
			q = q.Where("type = ?", string(filter.Type))
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: count sharing rules: %w", err)
	}
	return count, nil
}

func (s *Store) ListRulesForObject(ctx context.Context, tenantID, objectName string) ([]*rule.SharingRule, error) {
	var models []ruleModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list rules for object: %w", err)
	}
	result := make([]*rule.SharingRule, len(models))
	for i := range models {
		r, err := ruleFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list rules for object: %w", err)
		}
		result[i] = r
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Share operations
// ──────────────────────────────────────────────────

func (s *Store) UpsertShare(ctx context.Context, sh *share.Share) error {
	now := time.Now().UTC()

	// Prefer a live row on the grant key; fall back to the most recently
	// soft-deleted one. Widening happens in place, revival reuses the row.
	existing := new(shareModel)
	err := s.sdb.NewSelect(existing).
		Where("tenant_id = ?", sh.TenantID).
		Where("object_name = ?", sh.ObjectName).
		Where("record_id = ?", sh.RecordID).
		Where("subject_type = ?", string(sh.SubjectType)).
		Where("subject_id = ?", sh.SubjectID).
		Where("row_cause = ?", string(sh.RowCause)).
		OrderExpr("is_deleted ASC, updated_at DESC").
		Limit(1).
		Scan(ctx)
	switch {
	case err == nil:
		found, err := shareFromModel(existing)
		if err != nil {
			return fmt.Errorf("shareguard: upsert share: %w", err)
		}
		if found.IsDeleted {
			found.AccessLevel = sh.AccessLevel
		} else {
			found.AccessLevel = share.Max(found.AccessLevel, sh.AccessLevel)
		}
		found.RuleID = sh.RuleID
		found.IsDeleted = false
		found.DeletedAt = nil
		found.UpdatedAt = now
		m, err := shareToModel(found)
		if err != nil {
			return fmt.Errorf("shareguard: upsert share: %w", err)
		}
		if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert share: %w", err)
		}
		*sh = *found
		return nil
	case isNoRows(err):
		if sh.ID.IsNil() {
			sh.ID = id.NewShareID()
		}
		sh.CreatedAt = now
		sh.UpdatedAt = now
		m, err := shareToModel(sh)
		if err != nil {
			return fmt.Errorf("shareguard: upsert share: %w", err)
		}
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert share: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("shareguard: upsert share: %w", err)
	}
}

func (s *Store) GetShare(ctx context.Context, shareID id.ShareID) (*share.Share, error) {
	m := new(shareModel)
	err := s.sdb.NewSelect(m).Where("id = ?", shareID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("share %s: %w", shareID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get share: %w", err)
	}
	return shareFromModel(m)
}

func (s *Store) FindShare(ctx context.Context, tenantID, objectName, recordID string, subject share.Subject, cause share.RowCause) (*share.Share, error) {
	m := new(shareModel)
	err := s.sdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("record_id = ?", recordID).
		Where("subject_type = ?", string(subject.Type)).
		Where("subject_id = ?", subject.ID).
		Where("row_cause = ?", string(cause)).
		Where("is_deleted = ?", false).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("share %s on %s/%s: %w", subject.Key(), objectName, recordID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: find share: %w", err)
	}
	return shareFromModel(m)
}

func (s *Store) ListSharesForRecord(ctx context.Context, tenantID, objectName, recordID string) ([]*share.Share, error) {
	var models []shareModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("record_id = ?", recordID).
		Where("is_deleted = ?", false).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list shares for record: %w", err)
	}
	result := make([]*share.Share, len(models))
	for i := range models {
		sh, err := shareFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list shares for record: %w", err)
		}
		result[i] = sh
	}
	return result, nil
}

func (s *Store) ListSharesForSubjects(ctx context.Context, tenantID, objectName, recordID string, subjects []share.Subject) ([]*share.Share, error) {
	if len(subjects) == 0 {
		return nil, nil
	}
	// Subject keys mix types, so filter per (type, id) pair after a coarse
	// id match.
	subjectIDs := make([]string, len(subjects))
	wanted := make(map[string]struct{}, len(subjects))
	for i, sub := range subjects {
		subjectIDs[i] = sub.ID
		wanted[sub.Key()] = struct{}{}
	}
	var models []shareModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("record_id = ?", recordID).
		Where("subject_id IN (?)", subjectIDs).
		Where("is_deleted = ?", false).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list shares for subjects: %w", err)
	}
	result := make([]*share.Share, 0, len(models))
	for i := range models {
		sh, err := shareFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list shares for subjects: %w", err)
		}
		if _, ok := wanted[sh.Subject().Key()]; ok {
			result = append(result, sh)
		}
	}
	return result, nil
}

func (s *Store) ListShares(ctx context.Context, filter *share.ListFilter) ([]*share.Share, error) {
	var models []shareModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if !filter.IncludeDeleted {
			q = q.Where("is_deleted = ?", false)
		}
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.ObjectName != "" {
			q = q.Where("object_name = ?", filter.ObjectName)
		}
		if filter.RecordID != "" {
			q = q.Where("record_id = ?", filter.RecordID)
		}
		if filter.SubjectType != "" {
			q = q.Where("subject_type = ?", string(filter.SubjectType))
		}
		if filter.SubjectID != "" {
			q = q.Where("subject_id = ?", filter.SubjectID)
		}
		if filter.RowCause != "" {
			q = q.Where("row_cause = ?", string(filter.RowCause))
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	} else {
		q = q.Where("is_deleted = ?", false)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list shares: %w", err)
	}
	result := make([]*share.Share, len(models))
	for i := range models {
		sh, err := shareFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list shares: %w", err)
		}
		result[i] = sh
	}
	return result, nil
}

func (s *Store) CountShares(ctx context.Context, filter *share.ListFilter) (int64, error) {
	q := s.sdb.NewSelect((*shareModel)(nil))
	if filter != nil {
		if !filter.IncludeDeleted {
			q = q.Where("is_deleted = ?", false)
		}
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.ObjectName != "" {
			q = q.Where("object_name = ?", filter.ObjectName)
		}
		if filter.RecordID != "" {
			q = q.Where("record_id = ?", filter.RecordID)
		}
		if filter.SubjectType != "" {
			q = q.Where("subject_type = ?", string(filter.SubjectType))
		}
		if filter.SubjectID != "" {
			q = q.Where("subject_id = ?", filter.SubjectID)
		}
		if filter.RowCause != "" {
			q = q.Where("row_cause = ?", string(filter.RowCause))
		}
	} else {
		q = q.Where("is_deleted = ?", false)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: count shares: %w", err)
	}
	return count, nil
}

func (s *Store) SoftDeleteShare(ctx context.Context, shareID id.ShareID) error {
	now := time.Now().UTC()
	_, err := s.sdb.NewUpdate((*shareModel)(nil)).
		Set("is_deleted = ?", true).
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", shareID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: soft delete share: %w", err)
	}
	return nil
}

func (s *Store) SoftDeleteShares(ctx context.Context, tenantID, objectName, recordID string, causes []share.RowCause) (int64, error) {
	now := time.Now().UTC()
	q := s.sdb.NewUpdate((*shareModel)(nil)).
		Set("is_deleted = ?", true).
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("record_id = ?", recordID).
		Where("is_deleted = ?", false)
	if len(causes) > 0 {
		causeStrs := make([]string, len(causes))
		for i, c := range causes {
			causeStrs[i] = string(c)
		}
		q = q.Where("row_cause IN (?)", causeStrs)
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: soft delete shares: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("shareguard: soft delete shares rows: %w", err)
	}
	return n, nil
}

func (s *Store) SoftDeleteSharesByRule(ctx context.Context, tenantID string, ruleID id.RuleID) (int64, error) {
	now := time.Now().UTC()
	res, err := s.sdb.NewUpdate((*shareModel)(nil)).
		Set("is_deleted = ?", true).
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Where("tenant_id = ?", tenantID).
		Where("rule_id = ?", ruleID.String()).
		Where("is_deleted = ?", false).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("shareguard: soft delete shares by rule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("shareguard: soft delete shares by rule rows: %w", err)
	}
	return n, nil
}

// ──────────────────────────────────────────────────
// Object definition operations
// ──────────────────────────────────────────────────

func (s *Store) CreateDefinition(ctx context.Context, d *object.Definition) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	m, err := objectDefToModel(d)
	if err != nil {
		return fmt.Errorf("shareguard: create object definition: %w", err)
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: create object definition: %w", err)
	}
	return nil
}

func (s *Store) GetDefinition(ctx context.Context, defID id.ObjectDefID) (*object.Definition, error) {
	m := new(objectDefModel)
	err := s.sdb.NewSelect(m).Where("id = ?", defID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("object definition %s: %w", defID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get object definition: %w", err)
	}
	return objectDefFromModel(m)
}

func (s *Store) GetDefinitionByName(ctx context.Context, tenantID, name string) (*object.Definition, error) {
	m := new(objectDefModel)
	err := s.sdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("object definition %q: %w", name, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get object definition by name: %w", err)
	}
	return objectDefFromModel(m)
}

func (s *Store) UpdateDefinition(ctx context.Context, d *object.Definition) error {
	d.UpdatedAt = time.Now().UTC()
	m, err := objectDefToModel(d)
	if err != nil {
		return fmt.Errorf("shareguard: update object definition: %w", err)
	}
	if _, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("shareguard: update object definition: %w", err)
	}
	return nil
}

func (s *Store) DeleteDefinition(ctx context.Context, defID id.ObjectDefID) error {
	_, err := s.sdb.NewDelete((*objectDefModel)(nil)).
		Where("id = ?", defID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete object definition: %w", err)
	}
	return nil
}

func (s *Store) ListDefinitions(ctx context.Context, filter *object.ListFilter) ([]*object.Definition, error) {
	var models []objectDefModel
	q := s.sdb.NewSelect(&models).OrderExpr("name ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Sharable != nil {
			q = q.Where("sharable = ?", *filter.Sharable)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list object definitions: %w", err)
	}
	result := make([]*object.Definition, len(models))
	for i := range models {
		d, err := objectDefFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list object definitions: %w", err)
		}
		result[i] = d
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Record projection operations
// ──────────────────────────────────────────────────

func (s *Store) UpsertRecord(ctx context.Context, r *record.Record) error {
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	m, err := recordToModel(r)
	if err != nil {
		return fmt.Errorf("shareguard: upsert record: %w", err)
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: upsert record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("shareguard: upsert record rows: %w", err)
	}
	if n == 0 {
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("shareguard: upsert record: %w", err)
		}
	}
	return nil
}

func (s *Store) GetRecord(ctx context.Context, tenantID, objectName, recordID string) (*record.Record, error) {
	m := new(recordModel)
	err := s.sdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("id = ?", recordID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("record %s/%s: %w", objectName, recordID, errNotFound)
		}
		return nil, fmt.Errorf("shareguard: get record: %w", err)
	}
	return recordFromModel(m)
}

func (s *Store) DeleteRecord(ctx context.Context, tenantID, objectName, recordID string) error {
	_, err := s.sdb.NewDelete((*recordModel)(nil)).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("id = ?", recordID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shareguard: delete record: %w", err)
	}
	return nil
}

func (s *Store) ListRecordIDs(ctx context.Context, tenantID, objectName string, afterID string, limit int) ([]string, error) {
	var models []recordModel
	q := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		OrderExpr("id ASC")
	if afterID != "" {
		q = q.Where("id > ?", afterID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shareguard: list record ids: %w", err)
	}
	result := make([]string, len(models))
	for i := range models {
		result[i] = models[i].ID
	}
	return result, nil
}

func (s *Store) ListRecordsByOwner(ctx context.Context, tenantID, objectName, ownerID string) ([]*record.Record, error) {
	var models []recordModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("object_name = ?", objectName).
		Where("owner_id = ?", ownerID).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list records by owner: %w", err)
	}
	result := make([]*record.Record, len(models))
	for i := range models {
		r, err := recordFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("shareguard: list records by owner: %w", err)
		}
		result[i] = r
	}
	return result, nil
}
