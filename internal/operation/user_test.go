package operation_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"

	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/dto"
	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/operation"
)

func strPtr(s string) *string { return &s }

func TestGetUsers(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "address", "email"}).
		AddRow(1, "Ann", "1 Main St", "ann@x.com").
		AddRow(2, "Bob", "2 Oak Ave", "bob@x.com")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(rows)

	resp, err := operation.GetUsers(context.Background(), db)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(resp.Body) != 2 {
		t.Errorf("expected 2 users, got %d", len(resp.Body))
	}

	if resp.Body[0].Email != "ann@x.com" {
		t.Errorf("expected first email 'ann@x.com', got %q", resp.Body[0].Email)
	}

	expectationsMet(t, mock)
}

func TestGetUserNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := operation.GetUser(context.Background(), db, 1)
	assertStatus(t, err, http.StatusNotFound)
}

func TestCreateUser(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WithArgs("Ann", "1 Main St", "ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	resp, err := operation.CreateUser(context.Background(), db, nil, dto.UserBody{
		Name:    strPtr("Ann"),
		Address: strPtr("1 Main St"),
		Email:   strPtr("ann@x.com"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Body.ID != 7 {
		t.Errorf("expected generated id 7, got %d", resp.Body.ID)
	}

	expectationsMet(t, mock)
}

func TestCreateUserMissingFields(t *testing.T) {
	db, mock := setupMockDB(t)

	_, err := operation.CreateUser(context.Background(), db, nil, dto.UserBody{
		Name: strPtr("Ann"),
	})
	assertStatus(t, err, http.StatusBadRequest)

	// No SQL may run for an invalid body.
	expectationsMet(t, mock)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	_, err := operation.CreateUser(context.Background(), db, nil, dto.UserBody{
		Name:    strPtr("Ann"),
		Address: strPtr("1 Main St"),
		Email:   strPtr("ann@x.com"),
	})
	assertStatus(t, err, http.StatusBadRequest)

	expectationsMet(t, mock)
}

func TestUpdateUserPartial(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "address", "email"}).
		AddRow(1, "Ann", "1 Main St", "ann@x.com")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := operation.UpdateUser(context.Background(), db, nil, 1, dto.UserBody{
		Address: strPtr("9 Elm Rd"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Body.Address != "9 Elm Rd" {
		t.Errorf("expected updated address, got %q", resp.Body.Address)
	}
	if resp.Body.Email != "ann@x.com" {
		t.Errorf("expected email untouched, got %q", resp.Body.Email)
	}

	expectationsMet(t, mock)
}

func TestUpdateUserNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := operation.UpdateUser(context.Background(), db, nil, 42, dto.UserBody{Name: strPtr("X")})
	assertStatus(t, err, http.StatusNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "email"}).
			AddRow(1, "Ann", "1 Main St", "ann@x.com"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "order_products"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := operation.DeleteUser(context.Background(), db, nil, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Body.Message != "User 1 deleted successfully" {
		t.Errorf("unexpected message %q", resp.Body.Message)
	}

	expectationsMet(t, mock)
}

func TestDeleteUserNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	_, err := operation.DeleteUser(context.Background(), db, nil, 99)
	assertStatus(t, err, http.StatusNotFound)

	expectationsMet(t, mock)
}
