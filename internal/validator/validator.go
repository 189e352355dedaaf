// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entity_type", validateEntityType)
		_ = v.RegisterValidation("change_status", validateChangeStatus)
		_ = v.RegisterValidation("media_type", validateMediaType)
		_ = v.RegisterValidation("employment_type", validateEmploymentType)
		_ = v.RegisterValidation("admin_role", validateAdminRole)
	}
}

func validateEntityType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "COMPANY", "JOB", "MEDIA", "LEADERSHIP", "EVENT", "STATISTIC":
		return true
	}
	return false
}

func validateChangeStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PENDING", "APPROVED", "REJECTED":
		return true
	}
	return false
}

func validateMediaType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "GALLERY", "VIDEO", "ALBUM", "DOCUMENT":
		return true
	}
	return false
}

func validateEmploymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "full_time", "part_time", "contract", "internship":
		return true
	}
	return false
}

func validateAdminRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "ADMIN", "SUPER_ADMIN":
		return true
	}
	return false
}
