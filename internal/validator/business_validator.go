package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/campusboard/noticeboard-service/internal/models"
)

// BusinessValidator layers noticeboard business rules on top of tag
// validation. Every Validate* method returns the full list of violations so
// a bad request reports all broken fields at once.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	// Report violations under the wire name, not the Go field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates tag-level rules for any struct.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (bv *BusinessValidator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	return bv.Validate(req)
}

func (bv *BusinessValidator) ValidateUserUpdate(req *UserUpdateRequest) ValidationErrors {
	return bv.Validate(req)
}

func (bv *BusinessValidator) ValidateAnnouncementCreate(req *AnnouncementCreateRequest) ValidationErrors {
	return bv.Validate(req)
}

func (bv *BusinessValidator) ValidateAssignmentCreate(req *AssignmentCreateRequest) ValidationErrors {
	errors := bv.Validate(req)

	if req.DueDate.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "dueDate",
			Message: "is required",
			Rule:    "required",
		})
	}

	return errors
}

func (bv *BusinessValidator) ValidateMaterialCreate(req *MaterialCreateRequest) ValidationErrors {
	errors := bv.Validate(req)

	// The schema tag already rejects an empty FileURL; a whitespace-only
	// value would still slip through.
	if strings.TrimSpace(req.FileURL) == "" && req.FileURL != "" {
		errors = append(errors, ValidationError{
			Field:   "fileUrl",
			Message: "is required",
			Rule:    "required",
		})
	}

	return errors
}

func (bv *BusinessValidator) ValidateEventCreate(req *EventCreateRequest) ValidationErrors {
	errors := bv.Validate(req)

	if req.StartDate.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "startDate",
			Message: "is required",
			Rule:    "required",
		})
	}
	if req.EndDate.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "endDate",
			Message: "is required",
			Rule:    "required",
		})
	}

	// End may equal start (a point-in-time event) but never precede it.
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate.Time) {
		errors = append(errors, ValidationError{
			Field:   "endDate",
			Message: "must not be earlier than startDate",
			Value:   req.EndDate,
			Rule:    "date_order",
		})
	}

	return errors
}

func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := models.ParseRole(fl.Field().String())
		return err == nil
	})

	bv.validate.RegisterValidation("assignment_status", func(fl validator.FieldLevel) bool {
		_, err := models.ParseAssignmentStatus(fl.Field().String())
		return err == nil
	})
}
