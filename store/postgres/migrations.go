package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Shareguard store (PostgreSQL).
var Migrations = migrate.NewGroup("shareguard")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_users",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_users (
    tenant_id       TEXT NOT NULL,
    id              TEXT NOT NULL,
    profile_id      TEXT,
    role_id         TEXT,
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    PRIMARY KEY (tenant_id, id)
);

CREATE INDEX IF NOT EXISTS idx_shareguard_users_role ON shareguard_users (tenant_id, role_id);
CREATE INDEX IF NOT EXISTS idx_shareguard_users_profile ON shareguard_users (tenant_id, profile_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_users`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_roles",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_roles (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    parent_id       TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_shareguard_roles_tenant ON shareguard_roles (tenant_id);
CREATE INDEX IF NOT EXISTS idx_shareguard_roles_parent ON shareguard_roles (parent_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_roles`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_profiles",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_profiles (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    is_system       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, name)
);

CREATE INDEX IF NOT EXISTS idx_shareguard_profiles_tenant ON shareguard_profiles (tenant_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_profiles`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_permission_sets",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_permission_sets (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, name)
);

CREATE TABLE IF NOT EXISTS shareguard_permset_assignments (
    id                  TEXT PRIMARY KEY,
    tenant_id           TEXT NOT NULL,
    user_id             TEXT NOT NULL,
    permission_set_id   TEXT NOT NULL REFERENCES shareguard_permission_sets(id) ON DELETE CASCADE,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, user_id, permission_set_id)
);

CREATE INDEX IF NOT EXISTS idx_shareguard_psa_user ON shareguard_permset_assignments (tenant_id, user_id);
CREATE INDEX IF NOT EXISTS idx_shareguard_psa_set ON shareguard_permset_assignments (permission_set_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS shareguard_permset_assignments;
DROP TABLE IF EXISTS shareguard_permission_sets;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_permissions",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_object_permissions (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    holder_type     TEXT NOT NULL,
    holder_id       TEXT NOT NULL,
    object_name     TEXT NOT NULL,
    can_create      BOOLEAN NOT NULL DEFAULT FALSE,
    can_read        BOOLEAN NOT NULL DEFAULT FALSE,
    can_edit        BOOLEAN NOT NULL DEFAULT FALSE,
    can_delete      BOOLEAN NOT NULL DEFAULT FALSE,
    view_all        BOOLEAN NOT NULL DEFAULT FALSE,
    modify_all      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, holder_type, holder_id, object_name)
);

CREATE INDEX IF NOT EXISTS idx_shareguard_operms_holder ON shareguard_object_permissions (tenant_id, holder_type, holder_id);
CREATE INDEX IF NOT EXISTS idx_shareguard_operms_object ON shareguard_object_permissions (tenant_id, object_name);

CREATE TABLE IF NOT EXISTS shareguard_field_permissions (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    holder_type     TEXT NOT NULL,
    holder_id       TEXT NOT NULL,
    object_name     TEXT NOT NULL,
    field_name      TEXT NOT NULL,
    readable        BOOLEAN NOT NULL DEFAULT TRUE,
    editable        BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, holder_type, holder_id, object_name, field_name)
);

CREATE INDEX IF NOT EXISTS idx_shareguard_fperms_holder ON shareguard_field_permissions (tenant_id, holder_type, holder_id, object_name);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS shareguard_field_permissions;
DROP TABLE IF EXISTS shareguard_object_permissions;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_org_defaults",
			Version: "20250101000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_org_defaults (
    id                  TEXT PRIMARY KEY,
    tenant_id           TEXT NOT NULL,
    object_name         TEXT NOT NULL,
    internal_level      TEXT NOT NULL DEFAULT 'private',
    external_level      TEXT NOT NULL DEFAULT 'private',
    grant_by_hierarchy  BOOLEAN NOT NULL DEFAULT TRUE,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, object_name)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_org_defaults`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_groups",
			Version: "20250101000007",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_groups (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, name)
);

CREATE TABLE IF NOT EXISTS shareguard_group_members (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    group_id        TEXT NOT NULL REFERENCES shareguard_groups(id) ON DELETE CASCADE,
    member_type     TEXT NOT NULL,
    member_id       TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(group_id, member_type, member_id)
);

CREATE INDEX IF NOT EXISTS idx_shareguard_gmembers_group ON shareguard_group_members (group_id);
CREATE INDEX IF NOT EXISTS idx_shareguard_gmembers_member ON shareguard_group_members (tenant_id, member_type, member_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS shareguard_group_members;
DROP TABLE IF EXISTS shareguard_groups;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_sharing_rules",
			Version: "20250101000008",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_sharing_rules (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    object_name     TEXT NOT NULL,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    type            TEXT NOT NULL,
    source_type     TEXT NOT NULL DEFAULT '',
    source_id       TEXT NOT NULL DEFAULT '',
    criteria        JSONB NOT NULL DEFAULT '[]',
    target_type     TEXT NOT NULL,
    target_id       TEXT NOT NULL,
    access_level    TEXT NOT NULL,
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_shareguard_rules_object ON shareguard_sharing_rules (tenant_id, object_name);
CREATE INDEX IF NOT EXISTS idx_shareguard_rules_active ON shareguard_sharing_rules (tenant_id, object_name, is_active);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_sharing_rules`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_shares",
			Version: "20250101000009",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_shares (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    object_name     TEXT NOT NULL,
    record_id       TEXT NOT NULL,
    subject_type    TEXT NOT NULL,
    subject_id      TEXT NOT NULL,
    access_level    TEXT NOT NULL,
    row_cause       TEXT NOT NULL,
    rule_id         TEXT,
    is_deleted      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at      TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_shareguard_shares_live_key
    ON shareguard_shares (tenant_id, object_name, record_id, subject_type, subject_id, row_cause)
    WHERE is_deleted = FALSE;
CREATE INDEX IF NOT EXISTS idx_shareguard_shares_record ON shareguard_shares (tenant_id, object_name, record_id) WHERE is_deleted = FALSE;
CREATE INDEX IF NOT EXISTS idx_shareguard_shares_subject ON shareguard_shares (tenant_id, subject_type, subject_id) WHERE is_deleted = FALSE;
CREATE INDEX IF NOT EXISTS idx_shareguard_shares_rule ON shareguard_shares (tenant_id, rule_id) WHERE is_deleted = FALSE;
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_shares`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_object_defs",
			Version: "20250101000010",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_object_defs (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    name            TEXT NOT NULL,
    label           TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    sharable        BOOLEAN NOT NULL DEFAULT TRUE,
    parent_object   TEXT NOT NULL DEFAULT '',
    parent_field    TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, name)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_object_defs`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_records",
			Version: "20250101000011",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shareguard_records (
    tenant_id       TEXT NOT NULL,
    object_name     TEXT NOT NULL,
    id              TEXT NOT NULL,
    owner_id        TEXT NOT NULL,
    parent_id       TEXT NOT NULL DEFAULT '',
    fields          JSONB NOT NULL DEFAULT '{}',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    PRIMARY KEY (tenant_id, object_name, id)
);

CREATE INDEX IF NOT EXISTS idx_shareguard_records_owner ON shareguard_records (tenant_id, object_name, owner_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shareguard_records`)
				return err
			},
		},
	)
}
