package models

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := RegisterValidators(validate); err != nil {
		panic(err)
	}
}

// RegisterValidators adds the closed-set enum validators used by the
// entity schemas.
func RegisterValidators(validate *validator.Validate) error {
	enums := map[string]map[string]bool{
		"contact_status": ContactStatusNameMap,
		"project_status": ProjectStatusNameMap,
		"project_type":   ProjectTypeNameMap,
		"user_role":      UserRoleNameMap,
	}

	for tag, nameMap := range enums {
		names := nameMap
		err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return names[fl.Field().String()]
		})
		if err != nil {
			return err
		}
	}

	return nil
}

var sliceIndexRegexp = regexp.MustCompile(`\[\d+\]`)

// validationMessages maps "{Namespace}.{tag}" to a human-readable
// violation, mirroring the copy the site's frontend already expects.
var validationMessages = map[string]string{
	"Contact.Name.required":          "Name is required",
	"Contact.Email.required":         "Email is required",
	"Contact.Subject.required":       "Subject is required",
	"Contact.Message.required":       "Message is required",
	"Contact.Status.contact_status":  "Status must be one of: New, In Progress, Replied, Closed",
	"Project.Name.required":          "Project name is required",
	"Project.Name.max":               "Project name cannot exceed 100 characters",
	"Project.Description.required":   "Project description is required",
	"Project.Description.max":        "Description cannot exceed 1000 characters",
	"Project.Location.Address.required": "Project address is required",
	"Project.Location.City.required":    "City is required",
	"Project.Location.State.required":   "State is required",
	"Project.Status.project_status":     "Status must be one of: Planning, Under Construction, Completed, On Hold, Cancelled",
	"Project.ProjectType.required":      "Project type is required",
	"Project.ProjectType.project_type":  "Project type must be one of: Residential, Commercial, Mixed-Use, Industrial",
	"Project.TotalUnits.min":            "Total units cannot be negative",
	"Project.PriceRange.Min.min":        "Minimum price cannot be negative",
	"Project.PriceRange.Max.min":        "Maximum price cannot be negative",
	"Project.Images.max":                "Cannot attach more than 5 images",
	"Project.Images.Caption.max":        "Image caption cannot exceed 200 characters",
	"User.Name.required":                "Name is required",
	"User.Email.required":               "Email is required",
	"User.Email.email":                  "A valid email address is required",
	"User.Password.required":            "Password is required",
	"User.Password.min":                 "Password must be at least 8 characters",
	"User.Role.user_role":               "Role must be one of: admin, user",
}

// validationErrorMessages flattens a validator error into the full
// list of violated constraints.
func validationErrorMessages(err error) []string {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := []string{}
	for _, fieldError := range fieldErrors {
		key := sliceIndexRegexp.ReplaceAllString(fieldError.Namespace(), "") + "." + fieldError.Tag()
		if message, ok := validationMessages[key]; ok {
			messages = append(messages, message)
			continue
		}

		messages = append(messages, fmt.Sprintf("%s failed on the '%s' rule", fieldError.Namespace(), fieldError.Tag()))
	}

	return messages
}
