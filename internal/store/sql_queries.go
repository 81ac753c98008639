package store

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

// psql is the squirrel builder configured for PostgreSQL "$n" placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const usersTable = "users"

// userColumns is the column order every user SELECT / RETURNING uses and
// scanUser expects.
var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"name",
	"role",
	"vendor_id",
	"is_active",
	"last_login_at",
	"phone",
	"password_changed_at",
	"created_at",
}

// emailPredicate matches the case-insensitive unique index on lower(email).
func emailPredicate(email string) sq.Eq {
	return sq.Eq{"lower(email)": models.NormalizeEmail(email)}
}

// buildInsertUserQuery builds the INSERT ... RETURNING for a new account.
func buildInsertUserQuery(_ context.Context, user models.User) (string, []any, error) {
	return psql.
		Insert(usersTable).
		Columns("email", "password_hash", "name", "role", "vendor_id", "is_active", "phone").
		Values(
			models.NormalizeEmail(user.Email),
			user.PasswordHash,
			user.Name,
			string(user.Role),
			user.VendorID,
			user.IsActive,
			user.Phone,
		).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
}

// buildSelectUserQuery selects at most one user matching where.
func buildSelectUserQuery(_ context.Context, where sq.Sqlizer) (string, []any, error) {
	return psql.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
}

// buildCountUsersByEmailQuery counts accounts holding email.
func buildCountUsersByEmailQuery(_ context.Context, email string) (string, []any, error) {
	return psql.
		Select("COUNT(1)").
		From(usersTable).
		Where(emailPredicate(email)).
		ToSql()
}

// buildUpdateLastLoginQuery sets last_login_at for one user.
func buildUpdateLastLoginQuery(_ context.Context, userID int64, at time.Time) (string, []any, error) {
	return psql.
		Update(usersTable).
		Set("last_login_at", at).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// buildUpdatePasswordQuery replaces the hash and stamps password_changed_at.
func buildUpdatePasswordQuery(_ context.Context, userID int64, passwordHash string, at time.Time) (string, []any, error) {
	return psql.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Set("password_changed_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": userID}).
		ToSql()
}
