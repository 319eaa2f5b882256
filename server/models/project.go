package models

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	PLANNING_PROJECT_STATUS           = "Planning"
	UNDER_CONSTRUCTION_PROJECT_STATUS = "Under Construction"
	COMPLETED_PROJECT_STATUS          = "Completed"
	ON_HOLD_PROJECT_STATUS            = "On Hold"
	CANCELLED_PROJECT_STATUS          = "Cancelled"
)

const (
	RESIDENTIAL_PROJECT_TYPE = "Residential"
	COMMERCIAL_PROJECT_TYPE  = "Commercial"
	MIXED_USE_PROJECT_TYPE   = "Mixed-Use"
	INDUSTRIAL_PROJECT_TYPE  = "Industrial"
)

var ProjectStatusNameMap = map[string]bool{
	PLANNING_PROJECT_STATUS:           true,
	UNDER_CONSTRUCTION_PROJECT_STATUS: true,
	COMPLETED_PROJECT_STATUS:          true,
	ON_HOLD_PROJECT_STATUS:            true,
	CANCELLED_PROJECT_STATUS:          true,
}

var ProjectTypeNameMap = map[string]bool{
	RESIDENTIAL_PROJECT_TYPE: true,
	COMMERCIAL_PROJECT_TYPE:  true,
	MIXED_USE_PROJECT_TYPE:   true,
	INDUSTRIAL_PROJECT_TYPE:  true,
}

type ProjectLocation struct {
	Address string `json:"address" bson:"address" validate:"required"`
	City    string `json:"city" bson:"city" validate:"required"`
	State   string `json:"state" bson:"state" validate:"required"`
	ZipCode string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
}

type PriceRange struct {
	Min *float64 `json:"min,omitempty" bson:"min,omitempty" validate:"omitempty,min=0"`
	Max *float64 `json:"max,omitempty" bson:"max,omitempty" validate:"omitempty,min=0"`
}

type ProjectImage struct {
	URL     string `json:"url" bson:"url"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty" validate:"omitempty,max=200"`
}

// Project is a construction listing. Each project exclusively owns its
// embedded location & images; images never exceed 5 entries.
type Project struct {
	BaseModel               `bson:",inline"`
	Name                    string          `json:"name" bson:"name" validate:"required,max=100"`
	Description             string          `json:"description" bson:"description" validate:"required,max=1000"`
	Location                ProjectLocation `json:"location" bson:"location"`
	Status                  string          `json:"status" bson:"status" validate:"omitempty,project_status"`
	ProjectType             string          `json:"projectType" bson:"projectType" validate:"required,project_type"`
	EstimatedCompletionDate *Date           `json:"estimatedCompletionDate,omitempty" bson:"estimatedCompletionDate,omitempty"`
	TotalUnits              *int            `json:"totalUnits,omitempty" bson:"totalUnits,omitempty" validate:"omitempty,min=0"`
	PriceRange              *PriceRange     `json:"priceRange,omitempty" bson:"priceRange,omitempty"`
	Images                  []ProjectImage  `json:"images" bson:"images" validate:"max=5,dive"`
	Features                []string        `json:"features" bson:"features"`
}

// Validate applies defaults & reports every violated constraint.
func (project *Project) Validate() error {
	if project.Status == "" {
		project.Status = PLANNING_PROJECT_STATUS
	}

	if err := validate.Struct(project); err != nil {
		return &ValidationError{Violations: validationErrorMessages(err)}
	}

	return nil
}

type ProjectRepo struct {
	coll *mongo.Collection
}

func NewProjectRepo(db *mongo.Database) *ProjectRepo {
	return &ProjectRepo{coll: db.Collection("projects")}
}

// Create assigns an id & timestamps, then persists the project.
func (repo *ProjectRepo) Create(ctx context.Context, project *Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	project.ID = primitive.NewObjectID()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := repo.coll.InsertOne(ctx, project)
	return errors.Wrap(err, "insert project")
}

func (repo *ProjectRepo) All(ctx context.Context) ([]Project, error) {
	cursor, err := repo.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}

	projects := []Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, errors.Wrap(err, "decode projects")
	}

	return projects, nil
}

func (repo *ProjectRepo) FindByID(ctx context.Context, id string) (*Project, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	project := Project{}
	err = repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find project")
	}

	return &project, nil
}

// Update merges data over the stored project, re-validates the merged
// record & refreshes updatedAt.
func (repo *ProjectRepo) Update(ctx context.Context, id string, data map[string]interface{}) (*Project, error) {
	project, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	removeImmutableFields(data)

	merged := Project{}
	if err := ApplyPartial(project, data, &merged); err != nil {
		return nil, errors.Wrap(err, "merge project update")
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	merged.UpdatedAt = time.Now().UTC()
	data["updatedAt"] = merged.UpdatedAt
	data["status"] = merged.Status

	if _, err := repo.coll.UpdateOne(ctx, bson.M{"_id": project.ID}, bson.M{"$set": data}); err != nil {
		return nil, errors.Wrap(err, "update project")
	}

	return &merged, nil
}

// Delete removes the project & returns the deleted record, so callers
// can clean up its stored images.
func (repo *ProjectRepo) Delete(ctx context.Context, id string) (*Project, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	project := Project{}
	err = repo.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "delete project")
	}

	return &project, nil
}
