package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validProject() Project {
	return Project{
		Name:        "Test Residential Complex",
		Description: "A residential project with modern amenities and sustainable design.",
		Location: ProjectLocation{
			Address: "123 Test Street",
			City:    "Test City",
			State:   "Test State",
		},
		ProjectType: RESIDENTIAL_PROJECT_TYPE,
	}
}

func TestProjectValidateDefaultsStatus(t *testing.T) {
	project := validProject()

	assert.Nil(t, project.Validate())
	assert.Equal(t, PLANNING_PROJECT_STATUS, project.Status)
}

func TestProjectValidateReportsEveryViolation(t *testing.T) {
	units := -1
	minPrice := -5.0
	project := Project{
		Name:        strings.Repeat("x", 101),
		ProjectType: "Skyscraper",
		TotalUnits:  &units,
		PriceRange:  &PriceRange{Min: &minPrice},
	}

	err := project.Validate()
	assert.NotNil(t, err)

	validationError, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{
		"Project name cannot exceed 100 characters",
		"Project description is required",
		"Project address is required",
		"City is required",
		"State is required",
		"Project type must be one of: Residential, Commercial, Mixed-Use, Industrial",
		"Total units cannot be negative",
		"Minimum price cannot be negative",
	}, validationError.Violations)
}

func TestProjectValidateImagesInvariant(t *testing.T) {
	project := validProject()
	for i := 0; i < 6; i++ {
		project.Images = append(project.Images, ProjectImage{URL: "https://cdn.test/a.jpg"})
	}

	err := project.Validate()
	assert.NotNil(t, err)
	assert.Contains(t, err.(*ValidationError).Violations, "Cannot attach more than 5 images")
}

func TestProjectValidateImageCaptionLength(t *testing.T) {
	project := validProject()
	project.Images = []ProjectImage{
		{URL: "https://cdn.test/a.jpg", Caption: strings.Repeat("c", 201)},
	}

	err := project.Validate()
	assert.NotNil(t, err)
	assert.Contains(t, err.(*ValidationError).Violations, "Image caption cannot exceed 200 characters")
}

func TestProjectValidateRejectsUnknownStatus(t *testing.T) {
	project := validProject()
	project.Status = "Demolished"

	err := project.Validate()
	assert.NotNil(t, err)
	assert.Contains(t, err.(*ValidationError).Violations,
		"Status must be one of: Planning, Under Construction, Completed, On Hold, Cancelled")
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-12-31")
	assert.Nil(t, err)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, time.December, date.Month())

	date, err = ParseDate("2025-12-31T10:30:00Z")
	assert.Nil(t, err)
	assert.Equal(t, 10, date.Hour())

	_, err = ParseDate("31/12/2025")
	assert.NotNil(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	date := Date{}
	assert.Nil(t, date.UnmarshalJSON([]byte(`"2025-12-31"`)))
	assert.Equal(t, 2025, date.Year())

	encoded, err := date.MarshalJSON()
	assert.Nil(t, err)
	assert.Equal(t, `"2025-12-31T00:00:00Z"`, string(encoded))
}

func TestApplyPartialOnProject(t *testing.T) {
	project := validProject()
	project.Status = PLANNING_PROJECT_STATUS

	merged := Project{}
	err := ApplyPartial(&project, map[string]interface{}{
		"status":     UNDER_CONSTRUCTION_PROJECT_STATUS,
		"totalUnits": 100,
	}, &merged)
	assert.Nil(t, err)

	assert.Equal(t, UNDER_CONSTRUCTION_PROJECT_STATUS, merged.Status)
	assert.NotNil(t, merged.TotalUnits)
	assert.Equal(t, 100, *merged.TotalUnits)
	assert.Equal(t, project.Name, merged.Name)
	assert.Equal(t, project.Location, merged.Location)
}
