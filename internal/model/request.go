package model

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Query values accepted by the list filters.
const (
	FilterYes = "yes"
	FilterNo  = "no"
)

// validate is shared by every request type; validator caches struct
// metadata per instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Postgres TEXT cannot store NUL bytes.
	_ = v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})

	return v
}

// ListItemsRequest carries the optional list filters from the query string.
// A nil field means the parameter was absent; a present value, empty
// included, must be "yes" or "no".
type ListItemsRequest struct {
	IsDone         *string `query:"is_done" validate:"omitempty,oneof=yes no"`
	HasDescription *string `query:"has_description" validate:"omitempty,oneof=yes no"`
}

func (r *ListItemsRequest) Validate() error {
	return validate.Struct(r)
}

// Filter converts the validated query values into an ItemFilter.
func (r *ListItemsRequest) Filter() ItemFilter {
	return ItemFilter{
		IsDone:         parseYesNo(r.IsDone),
		HasDescription: parseYesNo(r.HasDescription),
	}
}

func parseYesNo(v *string) *bool {
	if v == nil {
		return nil
	}

	switch *v {
	case FilterYes:
		b := true
		return &b
	case FilterNo:
		b := false
		return &b
	default:
		return nil
	}
}

// CreateItemRequest is the POST /items body.
type CreateItemRequest struct {
	Description *string `json:"description" validate:"required,nonul"`
	IsDone      *bool   `json:"is_done"`
}

func (r *CreateItemRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateItemRequest) ValidationStatus() int {
	return http.StatusUnprocessableEntity
}

// IsDoneOrDefault returns the requested completion state, false when omitted.
func (r *CreateItemRequest) IsDoneOrDefault() bool {
	return r.IsDone != nil && *r.IsDone
}

// ItemIDRequest addresses a single item by its path id.
type ItemIDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *ItemIDRequest) Validate() error {
	return validate.Struct(r)
}

func (r *ItemIDRequest) ValidationStatus() int {
	return http.StatusUnprocessableEntity
}

// UpdateItemRequest is the PUT /items/{id} path id plus a partial body.
type UpdateItemRequest struct {
	ID          int64   `param:"id" json:"-"`
	Description *string `json:"description" validate:"omitempty,nonul"`
	IsDone      *bool   `json:"is_done"`
}

func (r *UpdateItemRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdateItemRequest) ValidationStatus() int {
	return http.StatusUnprocessableEntity
}

// Patch returns the body fields as an ItemPatch.
func (r *UpdateItemRequest) Patch() ItemPatch {
	return ItemPatch{
		Description: r.Description,
		IsDone:      r.IsDone,
	}
}
