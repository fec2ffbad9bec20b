package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/viteshop/backend/pkg/auth"
)

const usersCollection = "users"

// UserStore implements auth.UserStorage on a MongoDB collection.
type UserStore struct {
	col *mongo.Collection
}

// NewUserStore creates the store on the "users" collection.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. The index is what
// serializes concurrent signups with the same email: the later insert
// fails with a duplicate-key error.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

type addressDocument struct {
	ID        string `bson:"id"`
	Street    string `bson:"street"`
	City      string `bson:"city"`
	State     string `bson:"state,omitempty"`
	ZipCode   string `bson:"zip_code,omitempty"`
	Country   string `bson:"country"`
	IsDefault bool   `bson:"is_default"`
}

type userDocument struct {
	ID               string            `bson:"_id"`
	Email            string            `bson:"email"`
	Name             string            `bson:"name"`
	PasswordHash     []byte            `bson:"password_hash"`
	Phone            string            `bson:"phone"`
	ProfileImage     *string           `bson:"profile_image,omitempty"`
	Addresses        []addressDocument `bson:"addresses"`
	PrimaryAddressID *string           `bson:"primary_address_id"`
	ResetTokenDigest *string           `bson:"reset_token_digest,omitempty"`
	ResetTokenExpiry *time.Time        `bson:"reset_token_expiry,omitempty"`
	CreatedAt        time.Time         `bson:"created_at"`
	LastLoginAt      *time.Time        `bson:"last_login_at,omitempty"`
}

func toDocument(u *auth.User) userDocument {
	doc := userDocument{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		PasswordHash:     u.PasswordHash,
		Phone:            u.Phone,
		ProfileImage:     u.ProfileImage,
		Addresses:        make([]addressDocument, 0, len(u.Addresses)),
		PrimaryAddressID: u.PrimaryAddressID,
		ResetTokenDigest: u.ResetTokenDigest,
		ResetTokenExpiry: u.ResetTokenExpiry,
		CreatedAt:        u.CreatedAt,
		LastLoginAt:      u.LastLoginAt,
	}
	for _, a := range u.Addresses {
		doc.Addresses = append(doc.Addresses, addressDocument(a))
	}
	return doc
}

func (doc userDocument) toUser() *auth.User {
	u := &auth.User{
		ID:               doc.ID,
		Email:            doc.Email,
		Name:             doc.Name,
		PasswordHash:     doc.PasswordHash,
		Phone:            doc.Phone,
		ProfileImage:     doc.ProfileImage,
		Addresses:        make([]auth.Address, 0, len(doc.Addresses)),
		PrimaryAddressID: doc.PrimaryAddressID,
		ResetTokenDigest: doc.ResetTokenDigest,
		ResetTokenExpiry: doc.ResetTokenExpiry,
		CreatedAt:        doc.CreatedAt,
		LastLoginAt:      doc.LastLoginAt,
	}
	for _, a := range doc.Addresses {
		u.Addresses = append(u.Addresses, auth.Address(a))
	}
	return u
}

func (s *UserStore) CreateUser(ctx context.Context, user *auth.User) error {
	if _, err := s.col.InsertOne(ctx, toDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*auth.User, error) {
	var doc userDocument
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return doc.toUser(), nil
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) SetResetToken(ctx context.Context, id, digest string, expiry time.Time) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"reset_token_digest": digest,
			"reset_token_expiry": expiry,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) FindByResetDigest(ctx context.Context, digest string, now time.Time) (*auth.User, error) {
	var doc userDocument
	err := s.col.FindOne(ctx, bson.M{
		"reset_token_digest": digest,
		"reset_token_expiry": bson.M{"$gt": now},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}
	return doc.toUser(), nil
}

// ConsumeResetToken swaps in the new password hash and clears the token in
// one conditional update. The filter only matches an unexpired, still-set
// digest, so two concurrent consumes of the same token cannot both succeed.
func (s *UserStore) ConsumeResetToken(ctx context.Context, digest string, now time.Time, newHash []byte) (*auth.User, error) {
	var doc userDocument
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{
			"reset_token_digest": digest,
			"reset_token_expiry": bson.M{"$gt": now},
		},
		bson.M{
			"$set":   bson.M{"password_hash": newHash},
			"$unset": bson.M{"reset_token_digest": "", "reset_token_expiry": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}
	return doc.toUser(), nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id string, update auth.ProfileUpdate) (*auth.User, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.ProfileImage != nil {
		set["profile_image"] = *update.ProfileImage
	}
	if len(set) == 0 {
		return s.GetUserByID(ctx, id)
	}

	var doc userDocument
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return doc.toUser(), nil
}

// ReplaceAddresses rewrites the address list and primary reference in a
// single document write, keeping the at-most-one-default invariant intact
// under concurrent mutation.
func (s *UserStore) ReplaceAddresses(ctx context.Context, id string, addresses []auth.Address, primaryID *string) (*auth.User, error) {
	docs := make([]addressDocument, 0, len(addresses))
	for _, a := range addresses {
		docs = append(docs, addressDocument(a))
	}

	var doc userDocument
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"addresses":          docs,
			"primary_address_id": primaryID,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to replace addresses: %w", err)
	}
	return doc.toUser(), nil
}
