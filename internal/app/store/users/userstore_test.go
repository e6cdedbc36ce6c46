// internal/app/store/users/userstore_test.go
package userstore

import (
	"testing"

	"github.com/dalemusser/meethub/internal/testutil"
)

func TestCreateAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	u, err := store.Create(ctx, NewUserParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		UserName:  "AdaL",
		Email:     "Ada@Example.com",
		Password:  "correct-horse",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.UserID == "" {
		t.Error("expected UserID to be assigned")
	}
	if u.IsAdmin {
		t.Error("expected regular user, got admin")
	}
	if u.Email != "ada@example.com" {
		t.Errorf("Email: got %q, want normalized lowercase", u.Email)
	}
	if u.UserNameCI != "adal" {
		t.Errorf("UserNameCI: got %q, want %q", u.UserNameCI, "adal")
	}
	if u.PasswordHash == "correct-horse" {
		t.Error("password stored in the clear")
	}

	byID, err := store.FindByUserID(ctx, u.UserID)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if byID.UserName != "AdaL" {
		t.Errorf("UserName: got %q, want %q", byID.UserName, "AdaL")
	}

	byEmail, err := store.FindByEmail(ctx, "ADA@example.COM")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.UserID != u.UserID {
		t.Errorf("FindByEmail returned wrong user: %q", byEmail.UserID)
	}
}

func TestAdminSuffixSetsPrivilege(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	u, err := store.Create(ctx, NewUserParams{
		FirstName: "Site",
		LastName:  "Admin",
		UserName:  "SiteAdmin",
		Email:     "admin@example.com",
		Password:  "hunter22",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !u.IsAdmin {
		t.Error("expected username ending in admin to be privileged")
	}
}

func TestFindNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.FindByUserID(ctx, "no-such-user"); err != ErrNotFound {
		t.Errorf("FindByUserID: expected ErrNotFound, got %v", err)
	}
	if _, err := store.FindByEmail(ctx, "nobody@example.com"); err != ErrNotFound {
		t.Errorf("FindByEmail: expected ErrNotFound, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.Create(ctx, NewUserParams{
		FirstName: "Ada",
		UserName:  "ada",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, err := store.Authenticate(ctx, "Ada", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.UserNameCI != "ada" {
		t.Errorf("Authenticate returned wrong user: %q", u.UserNameCI)
	}

	if _, err := store.Authenticate(ctx, "ada", "wrong"); err != ErrBadCredentials {
		t.Errorf("wrong password: expected ErrBadCredentials, got %v", err)
	}
	if _, err := store.Authenticate(ctx, "nobody", "correct-horse"); err != ErrBadCredentials {
		t.Errorf("unknown user: expected ErrBadCredentials, got %v", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.Create(ctx, NewUserParams{
		FirstName: "Ada",
		UserName:  "ada",
		Email:     "ada@example.com",
		Password:  "old-password",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, token, err := store.IssueResetToken(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty reset token")
	}

	if err := store.ResetPassword(ctx, token, "new-password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := store.Authenticate(ctx, "ada", "new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := store.Authenticate(ctx, "ada", "old-password"); err != ErrBadCredentials {
		t.Errorf("old password still accepted: %v", err)
	}

	// Token is single use.
	if err := store.ResetPassword(ctx, token, "another"); err != ErrBadResetToken {
		t.Errorf("replayed token: expected ErrBadResetToken, got %v", err)
	}
}

func TestResetPasswordBadToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if err := store.ResetPassword(ctx, "bogus", "whatever"); err != ErrBadResetToken {
		t.Errorf("expected ErrBadResetToken, got %v", err)
	}
	if err := store.ResetPassword(ctx, "", "whatever"); err != ErrBadResetToken {
		t.Errorf("empty token: expected ErrBadResetToken, got %v", err)
	}
}

func TestCleanupExpiredResetTokens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.Create(ctx, NewUserParams{
		FirstName: "Ada",
		UserName:  "ada",
		Email:     "ada@example.com",
		Password:  "pw",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := store.IssueResetToken(ctx, "ada@example.com"); err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	// A live token is not swept.
	n, err := store.CleanupExpiredResetTokens(ctx)
	if err != nil {
		t.Fatalf("CleanupExpiredResetTokens: %v", err)
	}
	if n != 0 {
		t.Errorf("swept %d live tokens, want 0", n)
	}
}

func TestIssueResetTokenUnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, _, err := store.IssueResetToken(ctx, "nobody@example.com"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
