package server

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mtetteh/groundwork/server/gstorage"
	"github.com/mtetteh/groundwork/server/models"
	"github.com/mtetteh/groundwork/server/upload"
	"github.com/pkg/errors"
)

const projectNotFoundMsg = "Project not found"

const maxMultipartMemory = 32 << 20

var projectUpdatableFields = map[string]bool{
	"name":                    true,
	"description":             true,
	"location":                true,
	"status":                  true,
	"projectType":             true,
	"estimatedCompletionDate": true,
	"totalUnits":              true,
	"priceRange":              true,
	"images":                  true,
	"features":                true,
}

func (s *Server) createProject(rw http.ResponseWriter, r *http.Request) {
	project := models.Project{}
	var files []*multipart.FileHeader
	var captions []string

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{"invalid multipart form"}}, http.StatusBadRequest)
			return
		}

		data, violations := projectFormData(r)
		files = r.MultipartForm.File["images"]
		captions = r.Form["imageCaptions"]

		violations = append(violations, upload.ValidateFiles(files)...)
		violations = append(violations, captionViolations(captions)...)
		if len(violations) > 0 {
			writeResponse(rw, ResponsePayload{Errors: violations}, http.StatusBadRequest)
			return
		}

		if err := applyProjectData(data, &project); err != nil {
			writeServerError(rw, err)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{"invalid request body"}}, http.StatusBadRequest)
			return
		}
	}

	// timestamps & ids are never accepted from the caller
	project.BaseModel = models.BaseModel{}

	// Reject bad field values before any object is written to the
	// bucket, so an invalid request can't leave orphans behind.
	if err := project.Validate(); err != nil {
		writeRepoError(rw, err, projectNotFoundMsg)
		return
	}

	if len(files) > 0 {
		images, err := s.uploadImages(r.Context(), files, captions)
		if err != nil {
			writeServerError(rw, err)
			return
		}
		project.Images = images
	}

	if err := s.projects.Create(r.Context(), &project); err != nil {
		// NOTE: uploaded objects are deliberately left in place when
		// persistence fails; see DESIGN.md on orphaned objects.
		writeRepoError(rw, err, projectNotFoundMsg)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Project created successfully",
		Data:    project,
	}, http.StatusCreated)
}

func (s *Server) listProjects(rw http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.All(r.Context())
	if err != nil {
		writeServerError(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Projects retrieved successfully",
		Data:    projects,
	}, http.StatusOK)
}

func (s *Server) findProject(rw http.ResponseWriter, r *http.Request) {
	project, err := s.projects.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(rw, err, projectNotFoundMsg)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Project retrieved successfully",
		Data:    project,
	}, http.StatusOK)
}

func (s *Server) updateProject(rw http.ResponseWriter, r *http.Request) {
	var data map[string]interface{}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{"invalid multipart form"}}, http.StatusBadRequest)
			return
		}

		formData, violations := projectFormData(r)
		files := r.MultipartForm.File["images"]
		captions := r.Form["imageCaptions"]

		if len(files) > 0 {
			violations = append(violations, upload.ValidateFiles(files)...)
		}
		violations = append(violations, captionViolations(captions)...)
		if len(violations) > 0 {
			writeResponse(rw, ResponsePayload{Errors: violations}, http.StatusBadRequest)
			return
		}

		if len(files) > 0 {
			images, err := s.uploadImages(r.Context(), files, captions)
			if err != nil {
				writeServerError(rw, err)
				return
			}
			formData["images"] = images
		}

		data = formData
	} else {
		data = make(map[string]interface{})
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{"invalid request body"}}, http.StatusBadRequest)
			return
		}

		removeUnknownFields(data, projectUpdatableFields)

		if value, ok := data["estimatedCompletionDate"].(string); ok {
			date, err := models.ParseDate(value)
			if err != nil {
				writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
				return
			}
			data["estimatedCompletionDate"] = date.Time
		}
	}

	if len(data) <= 0 {
		writeResponse(rw, ResponsePayload{Errors: []string{"valid fields required"}}, http.StatusBadRequest)
		return
	}

	project, err := s.projects.Update(r.Context(), mux.Vars(r)["id"], data)
	if err != nil {
		writeRepoError(rw, err, projectNotFoundMsg)
		return
	}

	writeResponse(rw, ResponsePayload{
		Message: "Project updated successfully",
		Data:    project,
	}, http.StatusOK)
}

func (s *Server) deleteProject(rw http.ResponseWriter, r *http.Request) {
	project, err := s.projects.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(rw, err, projectNotFoundMsg)
		return
	}

	// best-effort cleanup of the project's stored images
	for _, image := range project.Images {
		key := gstorage.ExtractKey(image.URL)
		if key == "" {
			continue
		}
		if err := s.storage.DeleteFile(r.Context(), key); err != nil && err != gstorage.ErrObjectNotExist {
			logg.Warnf("failed to delete image %q for project %v: %v", key, project.ID.Hex(), err)
		}
	}

	writeResponse(rw, ResponsePayload{Message: "Project deleted successfully"}, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// uploadImages streams each accepted file to object storage & returns
// the public URLs. Objects already uploaded when a later one fails are
// NOT rolled back.
func (s *Server) uploadImages(ctx context.Context, files []*multipart.FileHeader, captions []string) ([]models.ProjectImage, error) {
	images := []models.ProjectImage{}

	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "open %q", header.Filename)
		}

		key := upload.GenerateKey("images", header.Filename)
		err = s.storage.Upload(ctx, key, header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "upload %q", header.Filename)
		}

		image := models.ProjectImage{URL: s.storage.PublicURL(key)}
		if i < len(captions) {
			image.Caption = captions[i]
		}
		images = append(images, image)
	}

	return images, nil
}

// projectFormData collects the project fields present in a multipart
// form. Nested fields use dotted names, e.g. "location.address".
func projectFormData(r *http.Request) (map[string]interface{}, []string) {
	data := map[string]interface{}{}
	var violations []string

	for _, field := range []string{"name", "description", "status", "projectType"} {
		if values := r.Form[field]; len(values) > 0 {
			data[field] = values[0]
		}
	}

	location := map[string]interface{}{}
	for _, field := range []string{"address", "city", "state", "zipCode"} {
		if values := r.Form["location."+field]; len(values) > 0 {
			location[field] = values[0]
		}
	}
	if len(location) > 0 {
		data["location"] = location
	}

	priceRange := map[string]interface{}{}
	for _, field := range []string{"min", "max"} {
		values := r.Form["priceRange."+field]
		if len(values) == 0 {
			continue
		}

		price, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			violations = append(violations, fmt.Sprintf("priceRange.%s must be a number", field))
			continue
		}
		priceRange[field] = price
	}
	if len(priceRange) > 0 {
		data["priceRange"] = priceRange
	}

	if value := r.FormValue("totalUnits"); value != "" {
		units, err := strconv.Atoi(value)
		if err != nil {
			violations = append(violations, "totalUnits must be a number")
		} else {
			data["totalUnits"] = units
		}
	}

	if value := r.FormValue("estimatedCompletionDate"); value != "" {
		date, err := models.ParseDate(value)
		if err != nil {
			violations = append(violations, err.Error())
		} else {
			data["estimatedCompletionDate"] = date.Time
		}
	}

	if values := r.Form["features"]; len(values) > 0 {
		data["features"] = values
	}

	return data, violations
}

func captionViolations(captions []string) []string {
	var violations []string
	for _, caption := range captions {
		if len(caption) > 200 {
			violations = append(violations, "Image caption cannot exceed 200 characters")
		}
	}

	return violations
}

// applyProjectData decodes collected form fields into a Project.
func applyProjectData(data map[string]interface{}, project *models.Project) error {
	return models.ApplyPartial(&models.Project{}, data, project)
}
