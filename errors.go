package shareguard

import "errors"

var (
	// ErrUserNotFound is returned when a user is missing or inactive.
	ErrUserNotFound = errors.New("shareguard: user not found or inactive")

	// ErrUnsupportedObject is returned when an object is not registered for sharing.
	ErrUnsupportedObject = errors.New("shareguard: object not registered for sharing")

	// ErrRoleNotFound is returned when a role cannot be found.
	ErrRoleNotFound = errors.New("shareguard: role not found")

	// ErrProfileNotFound is returned when a profile cannot be found.
	ErrProfileNotFound = errors.New("shareguard: profile not found")

	// ErrPermissionSetNotFound is returned when a permission set cannot be found.
	ErrPermissionSetNotFound = errors.New("shareguard: permission set not found")

	// ErrGroupNotFound is returned when a public group cannot be found.
	ErrGroupNotFound = errors.New("shareguard: group not found")

	// ErrRuleNotFound is returned when a sharing rule cannot be found.
	ErrRuleNotFound = errors.New("shareguard: sharing rule not found")

	// ErrShareNotFound is returned when a share row cannot be found.
	ErrShareNotFound = errors.New("shareguard: share not found")

	// ErrRecordNotFound is returned when a record projection cannot be found.
	ErrRecordNotFound = errors.New("shareguard: record not found")

	// ErrSystemProfileImmutable is returned when trying to rename or delete a system profile.
	ErrSystemProfileImmutable = errors.New("shareguard: system profile cannot be renamed or deleted")

	// ErrInvalidAccessLevel is returned when a share or rule carries an unknown access level.
	ErrInvalidAccessLevel = errors.New("shareguard: invalid access level")

	// ErrInvalidSubject is returned when a share subject is malformed.
	ErrInvalidSubject = errors.New("shareguard: invalid share subject")
)
