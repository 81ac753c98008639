// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/myseetara-source/erp-seetara-sub007/models"
	"github.com/stretchr/testify/require"
)

func Test_buildInsertUserQuery(t *testing.T) {
	vendorID := int64(3)
	user := models.User{
		Email:        "  Ann@Example.com ",
		PasswordHash: "$2a$10$hash",
		Name:         "Ann",
		Role:         models.RoleManager,
		VendorID:     &vendorID,
		IsActive:     true,
	}

	query, args, err := buildInsertUserQuery(context.Background(), user)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.True(t, strings.HasPrefix(q, "insert into users"))
	require.Contains(t, q, "returning id, email, password_hash")
	require.Contains(t, query, "$7")

	require.Len(t, args, 7)
	require.Equal(t, "ann@example.com", args[0])
	require.Equal(t, "$2a$10$hash", args[1])
	require.Equal(t, "manager", args[3])
	require.Equal(t, &vendorID, args[4])
	require.Equal(t, true, args[5])
}

func Test_buildSelectUserQuery(t *testing.T) {
	tests := []struct {
		name      string
		where     sq.Sqlizer
		wantWhere string
		wantArg   any
	}{
		{
			name:      "by email",
			where:     emailPredicate("Bob@Example.com"),
			wantWhere: "where lower(email) = $1",
			wantArg:   "bob@example.com",
		},
		{
			name:      "by id",
			where:     sq.Eq{"id": int64(9)},
			wantWhere: "where id = $1",
			wantArg:   int64(9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectUserQuery(context.Background(), tt.where)
			require.NoError(t, err)

			q := strings.ToLower(query)
			require.Contains(t, q, "from users")
			require.Contains(t, q, tt.wantWhere)
			require.Contains(t, q, "limit 1")
			for _, c := range userColumns {
				require.Contains(t, q, c)
			}
			require.Equal(t, []any{tt.wantArg}, args)
		})
	}
}

func Test_buildCountUsersByEmailQuery(t *testing.T) {
	query, args, err := buildCountUsersByEmailQuery(context.Background(), "X@Y.io")
	require.NoError(t, err)
	require.Equal(t, "SELECT COUNT(1) FROM users WHERE lower(email) = $1", query)
	require.Equal(t, []any{"x@y.io"}, args)
}

func Test_buildUpdateQueries(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildUpdateLastLoginQuery(context.Background(), 5, at)
	require.NoError(t, err)
	require.Equal(t, "UPDATE users SET last_login_at = $1 WHERE id = $2", query)
	require.Equal(t, []any{at, int64(5)}, args)

	query, args, err = buildUpdatePasswordQuery(context.Background(), 5, "h", at)
	require.NoError(t, err)
	require.Equal(t, "UPDATE users SET password_hash = $1, password_changed_at = $2, updated_at = $3 WHERE id = $4", query)
	require.Equal(t, []any{"h", at, at, int64(5)}, args)
}
