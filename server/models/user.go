package models

import (
	"context"
	"time"

	"github.com/mtetteh/groundwork/server/auth"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ADMIN_USER_ROLE = "admin"
	BASIC_USER_ROLE = "user"
)

var UserRoleNameMap = map[string]bool{
	ADMIN_USER_ROLE: true,
	BASIC_USER_ROLE: true,
}

// User is an admin-site account. Password holds the plaintext on the
// way in & is replaced with a bcrypt hash before persistence.
type User struct {
	BaseModel `bson:",inline"`
	Name      string `json:"name" bson:"name" validate:"required"`
	Email     string `json:"email" bson:"email" validate:"required,email"`
	Password  string `json:"password,omitempty" bson:"password" validate:"required,min=8"`
	Role      string `json:"role" bson:"role" validate:"omitempty,user_role"`
}

func (user *User) Validate() error {
	if user.Role == "" {
		user.Role = BASIC_USER_ROLE
	}

	if err := validate.Struct(user); err != nil {
		return &ValidationError{Violations: validationErrorMessages(err)}
	}

	return nil
}

type UserRepo struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection("users")}
}

func (repo *UserRepo) Create(ctx context.Context, user *User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(user.Password)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	user.Password = passwordHash

	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = repo.coll.InsertOne(ctx, user)
	return errors.Wrap(err, "insert user")
}

func (repo *UserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	user := User{}
	err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}

	return &user, nil
}

func (repo *UserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	user := User{}
	err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}

	return &user, nil
}

// AtLeastOneUserExists reports whether any account has been created.
// The very first sign-up is allowed without a token.
func (repo *UserRepo) AtLeastOneUserExists(ctx context.Context) (bool, error) {
	count, err := repo.coll.CountDocuments(ctx, bson.D{}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count users")
	}

	return count > 0, nil
}
