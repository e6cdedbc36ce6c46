// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/meethub/internal/app/system/normalize"
	"github.com/dalemusser/meethub/internal/app/system/timeouts"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// adminSuffix marks privileged accounts by username convention. Accounts
// whose username ends with this suffix schedule meetings for others and do
// not own a calendar of their own.
const adminSuffix = "admin"

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when a username or email is already taken.
	ErrDuplicate = errors.New("username or email already in use")
	// ErrBadCredentials is returned when a login attempt fails. It covers
	// both an unknown username and a wrong password so callers cannot
	// distinguish the two.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrBadResetToken is returned when a password reset token is unknown
	// or has expired.
	ErrBadResetToken = errors.New("invalid or expired reset token")
)

// resetTokenTTL bounds how long a password reset link stays valid.
const resetTokenTTL = 30 * time.Minute

// Store manages user accounts in the users collection.
type Store struct {
	c *mongo.Collection
}

// New creates a users Store backed by the given database.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// NewUserParams carries the fields a caller supplies when registering.
type NewUserParams struct {
	FirstName   string
	LastName    string
	UserName    string
	Email       string
	Password    string
	Phone       string
	CountryCode string
}

// Create registers a new account. The username and email are normalized
// before storage, and admin status is derived from the username suffix.
func (s *Store) Create(ctx context.Context, p NewUserParams) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	userName := normalize.UserName(p.UserName)
	now := time.Now().UTC()
	u := models.User{
		UserID:       uuid.NewString(),
		FirstName:    normalize.Name(p.FirstName),
		LastName:     normalize.Name(p.LastName),
		UserName:     strings.TrimSpace(p.UserName),
		UserNameCI:   userName,
		Email:        normalize.Email(p.Email),
		PasswordHash: string(hash),
		Phone:        normalize.Phone(p.Phone),
		CountryCode:  strings.TrimSpace(p.CountryCode),
		IsAdmin:      strings.HasSuffix(userName, adminSuffix),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// FindByUserID looks up a user by their stable user identifier.
func (s *Store) FindByUserID(ctx context.Context, userID string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// FindByEmail looks up a user by normalized email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// FindByUserName looks up a user by case-insensitive username.
func (s *Store) FindByUserName(ctx context.Context, userName string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	err := s.c.FindOne(ctx, bson.M{"user_name_ci": normalize.UserName(userName)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// Authenticate checks a username and password pair and returns the matching
// user. Unknown usernames and wrong passwords both yield ErrBadCredentials.
func (s *Store) Authenticate(ctx context.Context, userName, password string) (models.User, error) {
	u, err := s.FindByUserName(ctx, userName)
	if err == ErrNotFound {
		return models.User{}, ErrBadCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrBadCredentials
	}
	return u, nil
}

// IssueResetToken stores a fresh password reset token for the account with
// the given email and returns it. The token expires after resetTokenTTL.
func (s *Store) IssueResetToken(ctx context.Context, email string) (models.User, string, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.User{}, "", err
	}
	token := hex.EncodeToString(buf)

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	_, err = s.c.UpdateOne(ctx,
		bson.M{"user_id": u.UserID},
		bson.M{"$set": bson.M{
			"reset_token":        token,
			"reset_token_expiry": time.Now().UTC().Add(resetTokenTTL),
			"updated_at":         time.Now().UTC(),
		}},
	)
	if err != nil {
		return models.User{}, "", err
	}
	return u, token, nil
}

// ResetPassword replaces the password for the account holding the given
// reset token, then clears the token so it cannot be replayed.
func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrBadResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"reset_token":        token,
			"reset_token_expiry": bson.M{"$gt": time.Now().UTC()},
		},
		bson.M{
			"$set": bson.M{
				"password_hash": string(hash),
				"updated_at":    time.Now().UTC(),
			},
			"$unset": bson.M{
				"reset_token":        "",
				"reset_token_expiry": "",
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBadResetToken
	}
	return nil
}

// CleanupExpiredResetTokens removes reset tokens whose expiry has passed.
// It is run periodically by the maintenance scheduler.
func (s *Store) CleanupExpiredResetTokens(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"reset_token":        bson.M{"$exists": true},
			"reset_token_expiry": bson.M{"$lte": time.Now().UTC()},
		},
		bson.M{"$unset": bson.M{
			"reset_token":        "",
			"reset_token_expiry": "",
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
