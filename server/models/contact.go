package models

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	NEW_CONTACT_STATUS         = "New"
	IN_PROGRESS_CONTACT_STATUS = "In Progress"
	REPLIED_CONTACT_STATUS     = "Replied"
	CLOSED_CONTACT_STATUS      = "Closed"
)

var ContactStatusNameMap = map[string]bool{
	NEW_CONTACT_STATUS:         true,
	IN_PROGRESS_CONTACT_STATUS: true,
	REPLIED_CONTACT_STATUS:     true,
	CLOSED_CONTACT_STATUS:      true,
}

// Contact is a contact-form submission. Status starts at "New" and is
// only ever moved through the enumerated set.
type Contact struct {
	BaseModel `bson:",inline"`
	Name      string `json:"name" bson:"name" validate:"required"`
	Email     string `json:"email" bson:"email" validate:"required"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject   string `json:"subject" bson:"subject" validate:"required"`
	Message   string `json:"message" bson:"message" validate:"required"`
	Status    string `json:"status" bson:"status" validate:"omitempty,contact_status"`
}

// Validate applies defaults & reports every violated constraint.
func (contact *Contact) Validate() error {
	if contact.Status == "" {
		contact.Status = NEW_CONTACT_STATUS
	}

	if err := validate.Struct(contact); err != nil {
		return &ValidationError{Violations: validationErrorMessages(err)}
	}

	return nil
}

type ContactRepo struct {
	coll *mongo.Collection
}

func NewContactRepo(db *mongo.Database) *ContactRepo {
	return &ContactRepo{coll: db.Collection("contacts")}
}

// Create assigns an id & timestamps, then persists the contact.
func (repo *ContactRepo) Create(ctx context.Context, contact *Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := repo.coll.InsertOne(ctx, contact)
	return errors.Wrap(err, "insert contact")
}

// All returns every contact, newest first.
func (repo *ContactRepo) All(ctx context.Context) ([]Contact, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := repo.coll.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "list contacts")
	}

	contacts := []Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, errors.Wrap(err, "decode contacts")
	}

	return contacts, nil
}

func (repo *ContactRepo) FindByID(ctx context.Context, id string) (*Contact, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	contact := Contact{}
	err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find contact")
	}

	return &contact, nil
}

// Update merges data over the stored contact, re-validates the merged
// record & refreshes updatedAt.
func (repo *ContactRepo) Update(ctx context.Context, id string, data map[string]interface{}) (*Contact, error) {
	contact, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	removeImmutableFields(data)

	merged := Contact{}
	if err := ApplyPartial(contact, data, &merged); err != nil {
		return nil, errors.Wrap(err, "merge contact update")
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	merged.UpdatedAt = time.Now().UTC()
	data["updatedAt"] = merged.UpdatedAt
	data["status"] = merged.Status

	if _, err := repo.coll.UpdateOne(ctx, bson.M{"_id": contact.ID}, bson.M{"$set": data}); err != nil {
		return nil, errors.Wrap(err, "update contact")
	}

	return &merged, nil
}

func (repo *ContactRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete contact")
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
