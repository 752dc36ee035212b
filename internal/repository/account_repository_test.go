package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskeep/outpass-api/internal/models"
)

func newAccountRepoMock(t *testing.T) (*AccountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAccountRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestAccountRepositoryCreateResident(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO resident_profiles`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	account := NewAccount{
		User: &models.User{
			Username: "ananya", FullName: "Ananya Rao",
			Email: "ananya@example.com", Role: models.RoleResident, Active: true,
		},
		Resident: &models.ResidentProfile{RollNumber: "CS2021042", HostelName: "North Block"},
	}
	require.NoError(t, repo.Create(context.Background(), account))
	assert.NotEmpty(t, account.User.ID)
	assert.Equal(t, account.User.ID, account.Resident.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryCreateDuplicateRollsBack(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})
	mock.ExpectRollback()

	account := NewAccount{
		User:     &models.User{Username: "ananya", Role: models.RoleResident},
		Resident: &models.ResidentProfile{RollNumber: "CS2021042"},
	}
	err := repo.Create(context.Background(), account)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUniqueViolation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryCreateWithoutProfile(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), NewAccount{
		User: &models.User{Username: "broken", Role: models.RoleResident},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing role profile")
}

func TestAccountRepositoryUpdateContactAndProfile(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET full_name = .+ WHERE id = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE resident_profiles SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), AccountUpdate{
		User:     &models.User{ID: "r-1", FullName: "Ananya R", Email: "ananya@example.com"},
		Resident: &models.ResidentProfile{UserID: "r-1", RoomNumber: "B-101"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryUpdateRollsBackContactOnProfileFailure(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET full_name = .+ WHERE id = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE resident_profiles SET`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), AccountUpdate{
		User:     &models.User{ID: "r-1", FullName: "New Name", Email: "ananya@example.com"},
		Resident: &models.ResidentProfile{UserID: "r-1", RoomNumber: "B-101"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryDeleteResidentWithHistory(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM resident_profiles WHERE user_id = $1`)).
		WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("r-1").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "outpasses_resident_id_fkey"})
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "r-1", models.RoleResident)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRestricted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryDeleteMissing(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM officer_profiles WHERE user_id = $1`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "missing", models.RoleOfficer)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAccountRepositoryFindAdmin(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	rows := sqlmock.NewRows([]string{"user_id", "admin_id", "department", "designation", "permission_tier"}).
		AddRow("a-1", "ADM1A2B3C", "Administration", "Registrar", "STANDARD")
	mock.ExpectQuery(`SELECT .+ FROM admin_profiles WHERE user_id = \$1 LIMIT 1`).
		WithArgs("a-1").
		WillReturnRows(rows)

	profile, err := repo.FindAdmin(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, "ADM1A2B3C", profile.AdminID)
	// The raw tier string is preserved; normalization happens above the store.
	assert.Equal(t, models.PermissionTier("STANDARD"), profile.PermissionTier)
}

func TestAccountRepositoryListByRole(t *testing.T) {
	repo, mock := newAccountRepoMock(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "username", "full_name", "email", "mobile_number", "role", "active", "created_at",
		"roll_number", "program", "degree", "year_of_study", "hostel_name", "room_number",
	}).AddRow("r-1", "ananya", "Ananya Rao", "ananya@example.com", "9876543210", "RESIDENT", true, now,
		"CS2021042", "B.Tech", "CSE", 3, "North Block", "A-214")

	mock.ExpectQuery(`FROM users u JOIN resident_profiles p ON p\.user_id = u\.id`).
		WillReturnRows(rows)

	list, err := repo.ListByRole(context.Background(), models.RoleResident)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].RollNumber)
	assert.Equal(t, "CS2021042", *list[0].RollNumber)
	assert.Nil(t, list[0].AdminID)
}

func TestAccountRepositoryListByRoleUnknown(t *testing.T) {
	repo, _ := newAccountRepoMock(t)

	_, err := repo.ListByRole(context.Background(), models.UserRole("GHOST"))
	assert.Error(t, err)
}
