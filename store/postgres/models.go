package postgres

import (
	"time"

	"github.com/xraph/grove"

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
	"github.com/masatokaneko/shareguard/user"
)

// ──────────────────────────────────────────────────
// User model
// ──────────────────────────────────────────────────

type userModel struct {
	grove.BaseModel `grove:"table:shareguard_users"`
	TenantID        string    `grove:"tenant_id,pk"`
	ID              string    `grove:"id,pk"`
	ProfileID       *string   `grove:"profile_id"`
	RoleID          *string   `grove:"role_id"`
	IsActive        bool      `grove:"is_active,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func userToModel(u *user.User) *userModel {
	m := &userModel{
		TenantID:  u.TenantID,
		ID:        u.ID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.ProfileID != nil {
		s := u.ProfileID.String()
		m.ProfileID = &s
	}
	if u.RoleID != nil {
		s := u.RoleID.String()
		m.RoleID = &s
	}
	return m
}

func userFromModel(m *userModel) *user.User {
	u := &user.User{
		TenantID:  m.TenantID,
		ID:        m.ID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ProfileID != nil {
		pid, err := id.ParseProfileID(*m.ProfileID)
		if err == nil {
			u.ProfileID = &pid
		}
	}
	if m.RoleID != nil {
		rid, err := id.ParseRoleID(*m.RoleID)
		if err == nil {
			u.RoleID = &rid
		}
	}
	return u
}

// ──────────────────────────────────────────────────
// Role model
// ──────────────────────────────────────────────────

type roleModel struct {
	grove.BaseModel `grove:"table:shareguard_roles"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Name            string    `grove:"name,notnull"`
	Description     string    `grove:"description"`
	ParentID        *string   `grove:"parent_id"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func roleToModel(r *role.Role) *roleModel {
	m := &roleModel{
		ID:          r.ID.String(),
		TenantID:    r.TenantID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ParentID != nil {
		s := r.ParentID.String()
		m.ParentID = &s
	}
	return m
}

func roleFromModel(m *roleModel) *role.Role {
	rid, _ := id.ParseRoleID(m.ID) //nolint:errcheck // stored IDs are always valid
	r := &role.Role{
		ID:          rid,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ParentID != nil {
		pid, err := id.ParseRoleID(*m.ParentID)
		if err == nil {
			r.ParentID = &pid
		}
	}
	return r
}

// ──────────────────────────────────────────────────
// Profile model
// ──────────────────────────────────────────────────

type profileModel struct {
	grove.BaseModel `grove:"table:shareguard_profiles"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Name            string    `grove:"name,notnull"`
	Description     string    `grove:"description"`
	IsSystem        bool      `grove:"is_system,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func profileToModel(p *profile.Profile) *profileModel {
	return &profileModel{
		ID:          p.ID.String(),
		TenantID:    p.TenantID,
		Name:        p.Name,
		Description: p.Description,
		IsSystem:    p.IsSystem,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func profileFromModel(m *profileModel) *profile.Profile {
	pid, _ := id.ParseProfileID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &profile.Profile{
		ID:          pid,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		IsSystem:    m.IsSystem,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Permission set models
// ──────────────────────────────────────────────────

type permissionSetModel struct {
	grove.BaseModel `grove:"table:shareguard_permission_sets"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Name            string    `grove:"name,notnull"`
	Description     string    `grove:"description"`
	IsActive        bool      `grove:"is_active,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func permissionSetToModel(ps *permset.PermissionSet) *permissionSetModel {
	return &permissionSetModel{
		ID:          ps.ID.String(),
		TenantID:    ps.TenantID,
		Name:        ps.Name,
		Description: ps.Description,
		IsActive:    ps.IsActive,
		CreatedAt:   ps.CreatedAt,
		UpdatedAt:   ps.UpdatedAt,
	}
}

func permissionSetFromModel(m *permissionSetModel) *permset.PermissionSet {
	sid, _ := id.ParsePermissionSetID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &permset.PermissionSet{
		ID:          sid,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type assignmentModel struct {
	grove.BaseModel `grove:"table:shareguard_permset_assignments"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	UserID          string    `grove:"user_id,notnull"`
	PermissionSetID string    `grove:"permission_set_id,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func assignmentToModel(a *permset.Assignment) *assignmentModel {
	return &assignmentModel{
		ID:              a.ID.String(),
		TenantID:        a.TenantID,
		UserID:          a.UserID,
		PermissionSetID: a.PermissionSetID.String(),
		CreatedAt:       a.CreatedAt,
	}
}

func assignmentFromModel(m *assignmentModel) *permset.Assignment {
	aid, _ := id.ParseAssignmentID(m.ID)                 //nolint:errcheck // stored IDs are always valid
	sid, _ := id.ParsePermissionSetID(m.PermissionSetID) //nolint:errcheck // stored IDs are always valid
	return &permset.Assignment{
		ID:              aid,
		TenantID:        m.TenantID,
		UserID:          m.UserID,
		PermissionSetID: sid,
		CreatedAt:       m.CreatedAt,
	}
}

// ──────────────────────────────────────────────────
// Object / field permission models
// ──────────────────────────────────────────────────

type objectPermModel struct {
	grove.BaseModel `grove:"table:shareguard_object_permissions"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	HolderType      string    `grove:"holder_type,notnull"`
	HolderID        string    `grove:"holder_id,notnull"`
	ObjectName      string    `grove:"object_name,notnull"`
	CanCreate       bool      `grove:"can_create,notnull"`
	CanRead         bool      `grove:"can_read,notnull"`
	CanEdit         bool      `grove:"can_edit,notnull"`
	CanDelete       bool      `grove:"can_delete,notnull"`
	ViewAll         bool      `grove:"view_all,notnull"`
	ModifyAll       bool      `grove:"modify_all,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func objectPermToModel(p *permission.ObjectPermission) *objectPermModel {
	return &objectPermModel{
		ID:         p.ID.String(),
		TenantID:   p.TenantID,
		HolderType: string(p.HolderType),
		HolderID:   p.HolderID.String(),
		ObjectName: p.ObjectName,
		CanCreate:  p.CanCreate,
		CanRead:    p.CanRead,
		CanEdit:    p.CanEdit,
		CanDelete:  p.CanDelete,
		ViewAll:    p.ViewAll,
		ModifyAll:  p.ModifyAll,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func objectPermFromModel(m *objectPermModel) *permission.ObjectPermission {
	pid, _ := id.ParseObjectPermID(m.ID) //nolint:errcheck // stored IDs are always valid
	hid, _ := id.ParseAny(m.HolderID)    //nolint:errcheck // stored IDs are always valid
	return &permission.ObjectPermission{
		ID:         pid,
		TenantID:   m.TenantID,
		HolderType: permission.HolderType(m.HolderType),
		HolderID:   hid,
		ObjectName: m.ObjectName,
		CanCreate:  m.CanCreate,
		CanRead:    m.CanRead,
		CanEdit:    m.CanEdit,
		CanDelete:  m.CanDelete,
		ViewAll:    m.ViewAll,
		ModifyAll:  m.ModifyAll,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type fieldPermModel struct {
	grove.BaseModel `grove:"table:shareguard_field_permissions"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	HolderType      string    `grove:"holder_type,notnull"`
	HolderID        string    `grove:"holder_id,notnull"`
	ObjectName      string    `grove:"object_name,notnull"`
	FieldName       string    `grove:"field_name,notnull"`
	Readable        bool      `grove:"readable,notnull"`
	Editable        bool      `grove:"editable,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func fieldPermToModel(p *permission.FieldPermission) *fieldPermModel {
	return &fieldPermModel{
		ID:         p.ID.String(),
		TenantID:   p.TenantID,
		HolderType: string(p.HolderType),
		HolderID:   p.HolderID.String(),
		ObjectName: p.ObjectName,
		FieldName:  p.FieldName,
		Readable:   p.Readable,
		Editable:   p.Editable,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func fieldPermFromModel(m *fieldPermModel) *permission.FieldPermission {
	pid, _ := id.ParseFieldPermID(m.ID) //nolint:errcheck // stored IDs are always valid
	hid, _ := id.ParseAny(m.HolderID)   //nolint:errcheck // stored IDs are always valid
	return &permission.FieldPermission{
		ID:         pid,
		TenantID:   m.TenantID,
		HolderType: permission.HolderType(m.HolderType),
		HolderID:   hid,
		ObjectName: m.ObjectName,
		FieldName:  m.FieldName,
		Readable:   m.Readable,
		Editable:   m.Editable,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Org-wide default model
// ──────────────────────────────────────────────────

type orgDefaultModel struct {
	grove.BaseModel  `grove:"table:shareguard_org_defaults"`
	ID               string    `grove:"id,pk"`
	TenantID         string    `grove:"tenant_id,notnull"`
	ObjectName       string    `grove:"object_name,notnull"`
	InternalLevel    string    `grove:"internal_level,notnull"`
	ExternalLevel    string    `grove:"external_level,notnull"`
	GrantByHierarchy bool      `grove:"grant_by_hierarchy,notnull"`
	CreatedAt        time.Time `grove:"created_at,notnull"`
	UpdatedAt        time.Time `grove:"updated_at,notnull"`
}

func orgDefaultToModel(d *owd.OrgDefault) *orgDefaultModel {
	return &orgDefaultModel{
		ID:               d.ID.String(),
		TenantID:         d.TenantID,
		ObjectName:       d.ObjectName,
		InternalLevel:    string(d.InternalLevel),
		ExternalLevel:    string(d.ExternalLevel),
		GrantByHierarchy: d.GrantByHierarchy,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func orgDefaultFromModel(m *orgDefaultModel) *owd.OrgDefault {
	did, _ := id.ParseOrgDefaultID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &owd.OrgDefault{
		ID:               did,
		TenantID:         m.TenantID,
		ObjectName:       m.ObjectName,
		InternalLevel:    owd.Level(m.InternalLevel),
		ExternalLevel:    owd.Level(m.ExternalLevel),
		GrantByHierarchy: m.GrantByHierarchy,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Group models
// ──────────────────────────────────────────────────

type groupModel struct {
	grove.BaseModel `grove:"table:shareguard_groups"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Name            string    `grove:"name,notnull"`
	Description     string    `grove:"description"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func groupToModel(g *group.Group) *groupModel {
	return &groupModel{
		ID:          g.ID.String(),
		TenantID:    g.TenantID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func groupFromModel(m *groupModel) *group.Group {
	gid, _ := id.ParseGroupID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &group.Group{
		ID:          gid,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type groupMemberModel struct {
	grove.BaseModel `grove:"table:shareguard_group_members"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	GroupID         string    `grove:"group_id,notnull"`
	MemberType      string    `grove:"member_type,notnull"`
	MemberID        string    `grove:"member_id,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func groupMemberToModel(m *group.Member) *groupMemberModel {
	return &groupMemberModel{
		ID:         m.ID.String(),
		TenantID:   m.TenantID,
		GroupID:    m.GroupID.String(),
		MemberType: string(m.MemberType),
		MemberID:   m.MemberID,
		CreatedAt:  m.CreatedAt,
	}
}

func groupMemberFromModel(m *groupMemberModel) *group.Member {
	mid, _ := id.ParseGroupMemberID(m.ID) //nolint:errcheck // stored IDs are always valid
	gid, _ := id.ParseGroupID(m.GroupID)  //nolint:errcheck // stored IDs are always valid
	return &group.Member{
		ID:         mid,
		TenantID:   m.TenantID,
		GroupID:    gid,
		MemberType: group.MemberType(m.MemberType),
		MemberID:   m.MemberID,
		CreatedAt:  m.CreatedAt,
	}
}

// ──────────────────────────────────────────────────
// Sharing rule model
// ──────────────────────────────────────────────────

type ruleModel struct {
	grove.BaseModel `grove:"table:shareguard_sharing_rules"`
	ID              string           `grove:"id,pk"`
	TenantID        string           `grove:"tenant_id,notnull"`
	ObjectName      string           `grove:"object_name,notnull"`
	Name            string           `grove:"name,notnull"`
	Description     string           `grove:"description"`
	Type            string           `grove:"type,notnull"`
	SourceType      string           `grove:"source_type"`
	SourceID        string           `grove:"source_id"`
	Criteria        []rule.Criterion `grove:"criteria,type:jsonb"`
	TargetType      string           `grove:"target_type,notnull"`
	TargetID        string           `grove:"target_id,notnull"`
	AccessLevel     string           `grove:"access_level,notnull"`
	IsActive        bool             `grove:"is_active,notnull"`
	CreatedAt       time.Time        `grove:"created_at,notnull"`
	UpdatedAt       time.Time        `grove:"updated_at,notnull"`
}

func ruleToModel(r *rule.SharingRule) *ruleModel {
	return &ruleModel{
		ID:          r.ID.String(),
		TenantID:    r.TenantID,
		ObjectName:  r.ObjectName,
		Name:        r.Name,
		Description: r.Description,
		Type:        string(r.Type),
		SourceType:  string(r.SourceType),
		SourceID:    r.SourceID,
		Criteria:    r.Criteria,
		TargetType:  string(r.TargetType),
		TargetID:    r.TargetID,
		AccessLevel: string(r.AccessLevel),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ruleFromModel(m *ruleModel) *rule.SharingRule {
	rid, _ := id.ParseRuleID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &rule.SharingRule{
		ID:          rid,
		TenantID:    m.TenantID,
		ObjectName:  m.ObjectName,
		Name:        m.Name,
		Description: m.Description,
		Type:        rule.Type(m.Type),
		SourceType:  rule.PrincipalType(m.SourceType),
		SourceID:    m.SourceID,
		Criteria:    m.Criteria,
		TargetType:  rule.PrincipalType(m.TargetType),
		TargetID:    m.TargetID,
		AccessLevel: share.AccessLevel(m.AccessLevel),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Share model
// ──────────────────────────────────────────────────

type shareModel struct {
	grove.BaseModel `grove:"table:shareguard_shares"`
	ID              string     `grove:"id,pk"`
	TenantID        string     `grove:"tenant_id,notnull"`
	ObjectName      string     `grove:"object_name,notnull"`
	RecordID        string     `grove:"record_id,notnull"`
	SubjectType     string     `grove:"subject_type,notnull"`
	SubjectID       string     `grove:"subject_id,notnull"`
	AccessLevel     string     `grove:"access_level,notnull"`
	RowCause        string     `grove:"row_cause,notnull"`
	RuleID          *string    `grove:"rule_id"`
	IsDeleted       bool       `grove:"is_deleted,notnull"`
	CreatedAt       time.Time  `grove:"created_at,notnull"`
	UpdatedAt       time.Time  `grove:"updated_at,notnull"`
	DeletedAt       *time.Time `grove:"deleted_at"`
}

func shareToModel(sh *share.Share) *shareModel {
	m := &shareModel{
		ID:          sh.ID.String(),
		TenantID:    sh.TenantID,
		ObjectName:  sh.ObjectName,
		RecordID:    sh.RecordID,
		SubjectType: string(sh.SubjectType),
		SubjectID:   sh.SubjectID,
		AccessLevel: string(sh.AccessLevel),
		RowCause:    string(sh.RowCause),
		IsDeleted:   sh.IsDeleted,
		CreatedAt:   sh.CreatedAt,
		UpdatedAt:   sh.UpdatedAt,
		DeletedAt:   sh.DeletedAt,
	}
	if sh.RuleID != nil {
		s := sh.RuleID.String()
		m.RuleID = &s
	}
	return m
}

func shareFromModel(m *shareModel) *share.Share {
	sid, _ := id.ParseShareID(m.ID) //nolint:errcheck // stored IDs are always valid
	sh := &share.Share{
		ID:          sid,
		TenantID:    m.TenantID,
		ObjectName:  m.ObjectName,
		RecordID:    m.RecordID,
		SubjectType: share.SubjectType(m.SubjectType),
		SubjectID:   m.SubjectID,
		AccessLevel: share.AccessLevel(m.AccessLevel),
		RowCause:    share.RowCause(m.RowCause),
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
	if m.RuleID != nil {
		rid, err := id.ParseRuleID(*m.RuleID)
		if err == nil {
			sh.RuleID = &rid
		}
	}
	return sh
}

// ──────────────────────────────────────────────────
// Object definition model
// ──────────────────────────────────────────────────

type objectDefModel struct {
	grove.BaseModel `grove:"table:shareguard_object_defs"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Name            string    `grove:"name,notnull"`
	Label           string    `grove:"label"`
	Description     string    `grove:"description"`
	Sharable        bool      `grove:"sharable,notnull"`
	ParentObject    string    `grove:"parent_object"`
	ParentField     string    `grove:"parent_field"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func objectDefToModel(d *object.Definition) *objectDefModel {
	return &objectDefModel{
		ID:           d.ID.String(),
		TenantID:     d.TenantID,
		Name:         d.Name,
		Label:        d.Label,
		Description:  d.Description,
		Sharable:     d.Sharable,
		ParentObject: d.ParentObject,
		ParentField:  d.ParentField,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func objectDefFromModel(m *objectDefModel) *object.Definition {
	did, _ := id.ParseObjectDefID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &object.Definition{
		ID:           did,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Label:        m.Label,
		Description:  m.Description,
		Sharable:     m.Sharable,
		ParentObject: m.ParentObject,
		ParentField:  m.ParentField,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Record projection model
// ──────────────────────────────────────────────────

type recordModel struct {
	grove.BaseModel `grove:"table:shareguard_records"`
	TenantID        string         `grove:"tenant_id,pk"`
	ObjectName      string         `grove:"object_name,pk"`
	ID              string         `grove:"id,pk"`
	OwnerID         string         `grove:"owner_id,notnull"`
	ParentID        string         `grove:"parent_id"`
	Fields          map[string]any `grove:"fields,type:jsonb"`
	CreatedAt       time.Time      `grove:"created_at,notnull"`
	UpdatedAt       time.Time      `grove:"updated_at,notnull"`
}

func recordToModel(r *record.Record) *recordModel {
	return &recordModel{
		TenantID:   r.TenantID,
		ObjectName: r.ObjectName,
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		ParentID:   r.ParentID,
		Fields:     r.Fields,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func recordFromModel(m *recordModel) *record.Record {
	return &record.Record{
		TenantID:   m.TenantID,
		ObjectName: m.ObjectName,
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		ParentID:   m.ParentID,
		Fields:     m.Fields,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
