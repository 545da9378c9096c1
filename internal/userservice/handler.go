package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ishaangoyal/quickmark/internal/common"
)

var ErrAuthenticationFailure = errors.New("invalid email or password")

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, secret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		m:        newUserModel(db),
		mb:       mb,
		c:        c,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Signup creates a new user account, publishes a user.created event, and
// returns a signed bearer token for the new account.
func (s *UserService) Signup(ctx context.Context, name *string, email, password string) (*string, error) {
	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Name:  name,
		Email: email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email string
		Name  *string
	}{
		Email: u.Email,
		Name:  u.Name,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, eventData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	token, err := s.NewToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// Signin verifies the credentials against the stored bcrypt hash and returns
// a token plus the account. An unknown email and a wrong password both come
// back as ErrAuthenticationFailure so the two cases are indistinguishable.
func (s *UserService) Signin(ctx context.Context, email, password string) (*string, *User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	user, err := s.m.getByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, nil, ErrAuthenticationFailure
		default:
			return nil, nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrAuthenticationFailure
	}

	token, err := s.NewToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return &token, user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

// UpdateUser overwrites only the fields that were supplied. A nil field
// keeps the stored value.
func (s *UserService) UpdateUser(ctx context.Context, id int, name, email, password *string) (*User, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	validateName(v, name)
	if email != nil {
		validateEmail(v, *email)
	}
	if password != nil {
		validatePassword(v, *password)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = name
	}
	if email != nil {
		user.Email = *email
	}
	if password != nil {
		if err := user.Password.set(*password); err != nil {
			return nil, err
		}
	}

	err = s.m.update(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

func (s *UserService) Follow(ctx context.Context, followerID, followedID int) error {
	v := common.NewValidator()
	validateID(v, followerID, "follower_id")
	validateID(v, followedID, "followed_id")
	v.Check(followerID != followedID, "followed_id", "cannot follow yourself")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.follow(ctx, followerID, followedID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyFollowerCount(followedID))

	return nil
}

func (s *UserService) Unfollow(ctx context.Context, followerID, followedID int) error {
	v := common.NewValidator()
	validateID(v, followerID, "follower_id")
	validateID(v, followedID, "followed_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.unfollow(ctx, followerID, followedID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyFollowerCount(followedID))

	return nil
}

// FollowerCount serves the public follower counter, read through the cache.
func (s *UserService) FollowerCount(ctx context.Context, userID int) (int, error) {
	v := common.NewValidator()
	validateID(v, userID, "id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	key := common.CacheKeyFollowerCount(userID)
	if cached, ok := s.c.Get(key); ok {
		return cached.(int), nil
	}

	count, err := s.m.countFollowers(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.c.Set(key, count)

	return count, nil
}

func (s *UserService) Followers(ctx context.Context, userID int) ([]User, error) {
	v := common.NewValidator()
	validateID(v, userID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.listFollowers(ctx, userID)
}

func (s *UserService) Following(ctx context.Context, userID int) ([]User, error) {
	v := common.NewValidator()
	validateID(v, userID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.listFollowing(ctx, userID)
}

// LikeBlog records the like atomically on both sides of the relation and
// invalidates the cached public counter.
func (s *UserService) LikeBlog(ctx context.Context, userID, blogID int) error {
	if err := s.validatePair(userID, blogID); err != nil {
		return err
	}

	err := s.m.like(ctx, userID, blogID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyLikeCount(blogID))

	return nil
}

func (s *UserService) UnlikeBlog(ctx context.Context, userID, blogID int) error {
	if err := s.validatePair(userID, blogID); err != nil {
		return err
	}

	err := s.m.unlike(ctx, userID, blogID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyLikeCount(blogID))

	return nil
}

func (s *UserService) SaveBlog(ctx context.Context, userID, blogID int) error {
	if err := s.validatePair(userID, blogID); err != nil {
		return err
	}

	err := s.m.save(ctx, userID, blogID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeySaveCount(blogID))

	return nil
}

func (s *UserService) UnsaveBlog(ctx context.Context, userID, blogID int) error {
	if err := s.validatePair(userID, blogID); err != nil {
		return err
	}

	err := s.m.unsave(ctx, userID, blogID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeySaveCount(blogID))

	return nil
}

func (s *UserService) BlogLiked(ctx context.Context, userID, blogID int) (bool, error) {
	if err := s.validatePair(userID, blogID); err != nil {
		return false, err
	}

	return s.m.liked(ctx, userID, blogID)
}

func (s *UserService) BlogSaved(ctx context.Context, userID, blogID int) (bool, error) {
	if err := s.validatePair(userID, blogID); err != nil {
		return false, err
	}

	return s.m.saved(ctx, userID, blogID)
}

func (s *UserService) validatePair(userID, blogID int) error {
	v := common.NewValidator()
	validateID(v, userID, "user_id")
	validateID(v, blogID, "blog_id")
	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}
