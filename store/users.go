package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/ndesc/ndesc-api/models"
)

const userKeyPrefix = "users/"

// Tracking tags for user store call sites, kept stable for operator triage.
const (
	tagRegisterUser = "RU502"
	tagLoginUser    = "LU503"
	tagLogoutUser   = "LT505"
	tagEditUser     = "EU506"
	tagDeleteUser   = "DU504"
	tagFetchUser    = "FU501"
	tagCheckUser    = "CU500"
)

// UserStore wraps user records stored as hashes keyed by username. All writes
// are merge updates; register and delete act on whole records. Existence
// checks and the writes that follow them are not atomic, so concurrent
// requests on the same username can race. Callers treat these operations as
// best-effort, not linearizable.
type UserStore struct {
	rdb  redis.Cmdable
	cost int
}

// NewUserStore returns a UserStore hashing passwords at the given bcrypt
// cost.
func NewUserStore(rdb redis.Cmdable, bcryptCost int) *UserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{rdb: rdb, cost: bcryptCost}
}

func userKey(username string) string { return userKeyPrefix + username }

// Register creates the record for u.Username, hashing password before the
// write. Returns ErrConflict when a record already exists. The sessionkey
// field is never written here; a user starts logged out.
func (s *UserStore) Register(ctx context.Context, u models.User, password string) error {
	n, err := s.rdb.Exists(ctx, userKey(u.Username)).Result()
	if err != nil {
		return unavailable(tagRegisterUser, err)
	}
	if n > 0 {
		return ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return unavailable(tagRegisterUser, err)
	}

	fields := map[string]interface{}{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"password":   string(hash),
		"col_no":     strconv.Itoa(u.ColNo),
		"avatar":     u.Avatar,
	}
	if err := s.rdb.HSet(ctx, userKey(u.Username), fields).Err(); err != nil {
		return unavailable(tagRegisterUser, err)
	}
	return nil
}

// Authenticate verifies password against the stored hash and, on success,
// issues a fresh opaque session key, persists it on the record and returns
// it. A later login overwrites the previous key, which invalidates the old
// session. Returns ErrNotFound or ErrForbidden otherwise.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (string, error) {
	hash, err := s.rdb.HGet(ctx, userKey(username), "password").Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", unavailable(tagLoginUser, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrForbidden
	}

	key := uuid.NewString()
	if err := s.rdb.HSet(ctx, userKey(username), "sessionkey", key).Err(); err != nil {
		return "", unavailable(tagLoginUser, err)
	}
	return key, nil
}

// InvalidateSession clears the sessionkey selected by sel. Clearing a session
// that does not exist is a success: a logout for an already-cleared session
// is indistinguishable from a successful one. By-sessionkey clears every
// matching record in case duplicates ever appear.
func (s *UserStore) InvalidateSession(ctx context.Context, sel Selector) error {
	if !sel.valid() {
		return ErrBadSelector
	}

	if sel.username != "" {
		if err := s.rdb.HDel(ctx, userKey(sel.username), "sessionkey").Err(); err != nil {
			return unavailable(tagLogoutUser, err)
		}
		return nil
	}

	keys, err := s.scanBySessionKey(ctx, sel.sessionKey)
	if err != nil {
		return unavailable(tagLogoutUser, err)
	}
	for _, k := range keys {
		if err := s.rdb.HDel(ctx, k, "sessionkey").Err(); err != nil {
			return unavailable(tagLogoutUser, err)
		}
	}
	return nil
}

// Edit applies the non-nil fields of patch to the record after verifying
// oldPassword. A new password is re-hashed before storage. Fields absent from
// patch are left untouched.
func (s *UserStore) Edit(ctx context.Context, username string, patch models.UserPatch, oldPassword string) error {
	hash, err := s.rdb.HGet(ctx, userKey(username), "password").Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(tagEditUser, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return ErrForbidden
	}

	fields := map[string]interface{}{}
	if patch.FirstName != nil {
		fields["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.ColNo != nil {
		fields["col_no"] = strconv.Itoa(*patch.ColNo)
	}
	if patch.Avatar != nil {
		fields["avatar"] = *patch.Avatar
	}
	if patch.Password != nil {
		newHash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), s.cost)
		if err != nil {
			return unavailable(tagEditUser, err)
		}
		fields["password"] = string(newHash)
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.rdb.HSet(ctx, userKey(username), fields).Err(); err != nil {
		return unavailable(tagEditUser, err)
	}
	return nil
}

// Delete removes the whole record after verifying password.
func (s *UserStore) Delete(ctx context.Context, username, password string) error {
	hash, err := s.rdb.HGet(ctx, userKey(username), "password").Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(tagDeleteUser, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrForbidden
	}

	if err := s.rdb.Del(ctx, userKey(username)).Err(); err != nil {
		return unavailable(tagDeleteUser, err)
	}
	return nil
}

// Fetch returns the record selected by sel with its username attached.
func (s *UserStore) Fetch(ctx context.Context, sel Selector) (models.User, error) {
	if !sel.valid() {
		return models.User{}, ErrBadSelector
	}

	username := sel.username
	if sel.sessionKey != "" {
		keys, err := s.scanBySessionKey(ctx, sel.sessionKey)
		if err != nil {
			return models.User{}, unavailable(tagFetchUser, err)
		}
		if len(keys) == 0 {
			return models.User{}, ErrNotFound
		}
		username = keys[0][len(userKeyPrefix):]
	}

	h, err := s.rdb.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return models.User{}, unavailable(tagFetchUser, err)
	}
	if len(h) == 0 {
		return models.User{}, ErrNotFound
	}
	return decodeUser(username, h), nil
}

// Exists reports whether a record matches sel. Absence is a normal result,
// never ErrNotFound.
func (s *UserStore) Exists(ctx context.Context, sel Selector) (bool, error) {
	if !sel.valid() {
		return false, ErrBadSelector
	}

	if sel.username != "" {
		n, err := s.rdb.Exists(ctx, userKey(sel.username)).Result()
		if err != nil {
			return false, unavailable(tagCheckUser, err)
		}
		return n > 0, nil
	}

	keys, err := s.scanBySessionKey(ctx, sel.sessionKey)
	if err != nil {
		return false, unavailable(tagCheckUser, err)
	}
	return len(keys) > 0, nil
}

// scanBySessionKey walks every user record comparing its sessionkey field.
// A full scan is fine at current scale; an indexed lookup can replace this
// helper without touching any caller.
func (s *UserStore) scanBySessionKey(ctx context.Context, sessionKey string) ([]string, error) {
	var matches []string
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, userKeyPrefix+"*", 200).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			v, err := s.rdb.HGet(ctx, k, "sessionkey").Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if v == sessionKey {
				matches = append(matches, k)
			}
		}
		cursor = next
		if cursor == 0 {
			return matches, nil
		}
	}
}

func decodeUser(username string, h map[string]string) models.User {
	colNo, _ := strconv.Atoi(h["col_no"])
	return models.User{
		Username:     username,
		FirstName:    h["first_name"],
		LastName:     h["last_name"],
		Email:        h["email"],
		PasswordHash: h["password"],
		ColNo:        colNo,
		Avatar:       h["avatar"],
		SessionKey:   h["sessionkey"],
	}
}
