package store

import (
	"context"
	"fmt"
	"time"

	"github.com/courseforge/backend/models"
	"github.com/courseforge/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// prepareUser runs the user pre-persist pipeline: normalization, field
// validation, raw-password length check, and hashing. A password that is
// already a bcrypt hash is left untouched, so repeated saves of an
// unchanged document keep the same stored hash.
func prepareUser(u *models.User) error {
	u.Normalize()
	errs := u.Validate()
	raw := u.Password != "" && !utils.IsHashed(u.Password)
	if raw {
		if n := len(u.Password); n < 8 {
			errs = append(errs, models.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
		} else if n > 20 {
			errs = append(errs, models.FieldError{Field: "password", Message: "Password cannot exceed 20 characters"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	if raw {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hash
	}
	return nil
}

// CreateUser validates and persists a new user, hashing the raw
// password on the way in. A duplicate email surfaces as
// *models.DuplicateKeyError.
func (db *DB) CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := prepareUser(u); err != nil {
		return primitive.NilObjectID, err
	}
	res, err := db.Users().InsertOne(ctx, u, options.InsertOne())
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, &models.DuplicateKeyError{Field: "email", Value: u.Email}
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// SaveUser replaces the stored document after running the pipeline. The
// password is re-hashed only when it holds a new raw value.
func (db *DB) SaveUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now()
	if err := prepareUser(u); err != nil {
		return err
	}
	_, err := db.Users().ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if mongo.IsDuplicateKeyError(err) {
		return &models.DuplicateKeyError{Field: "email", Value: u.Email}
	}
	return err
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := db.Users().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (db *DB) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Users().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// TouchLastActive stamps lastActive with the current time, updating
// just that field so stale data elsewhere on the document cannot block
// the write.
func (db *DB) TouchLastActive(ctx context.Context, id primitive.ObjectID) (time.Time, error) {
	now := time.Now()
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"lastActive": now, "updatedAt": now},
	})
	return now, err
}

// IssueUserResetToken generates a reset token for the user and stores
// only its hashed form plus the expiry. The returned plaintext is for
// out-of-band delivery to the user and is never persisted.
func (db *DB) IssueUserResetToken(ctx context.Context, id primitive.ObjectID) (string, error) {
	plain, hashed, expiry, err := utils.IssueResetToken()
	if err != nil {
		return "", err
	}
	res, err := db.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"resetPasswordToken":  hashed,
			"resetPasswordExpiry": expiry,
			"updatedAt":           time.Now(),
		},
	})
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", fmt.Errorf("user %s not found", id.Hex())
	}
	return plain, nil
}

// UserByResetToken resolves the plaintext token a user presented back
// to the user holding its hash, provided the token has not expired.
func (db *DB) UserByResetToken(ctx context.Context, plain string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{
		"resetPasswordToken":  utils.HashResetToken(plain),
		"resetPasswordExpiry": bson.M{"$gt": time.Now()},
	}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ClearResetToken removes the stored token and expiry, typically after
// a successful password reset.
func (db *DB) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpiry": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
	return err
}

// EnrollUserInCourse appends an enrollment entry to the user's list.
// The matching append on the course document is a separate write with
// no transaction between the two.
func (db *DB) EnrollUserInCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	entry := models.EnrolledCourse{Course: courseID, EnrolledAt: time.Now()}
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"enrolledCourses": entry},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}

// AddCreatedCourse records course ownership on the instructor's user
// document.
func (db *DB) AddCreatedCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"createdCourses": courseID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}
