package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/common"
	"github.com/dmitrijs2005/filemeta/internal/server/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Sizes are capped at MaxInt64 so that they stay representable as signed
// quota deltas.

type StartUploadRequest struct {
	Bucket   string `validate:"required"`
	Name     string `validate:"required_without=FileID,max=1024"`
	OwnerID  string `validate:"required"`
	ParentID string `validate:"omitempty,uuid"`
	Size     uint64 `validate:"lte=9223372036854775807"`
	IsUpdate bool
	FileID   string `validate:"omitempty,uuid"`
}

type CreateFileRequest struct {
	Key         string
	Bucket      string
	Name        string `validate:"required,max=1024"`
	Size        uint64 `validate:"lte=9223372036854775807"`
	Type        string
	OwnerID     string `validate:"required"`
	ParentID    string `validate:"omitempty,uuid"`
	Description string
	TargetID    string `validate:"omitempty,uuid"`
}

// UpdateFileRequest changes the set fields of file ID. An empty OwnerID
// skips the ownership check and an empty ParentID moves the file to the
// owner's root folder.
type UpdateFileRequest struct {
	ID          string  `validate:"required,uuid"`
	OwnerID     string
	Name        *string `validate:"omitempty,min=1,max=1024"`
	Size        *uint64 `validate:"omitempty,lte=9223372036854775807"`
	ParentID    *string
	Bucket      *string
	Key         *string `validate:"omitempty,min=1"`
	Description *string
}

func (r *UpdateFileRequest) changes() models.FileUpdate {
	return models.FileUpdate{
		Name:        r.Name,
		Size:        r.Size,
		ParentID:    r.ParentID,
		Bucket:      r.Bucket,
		Key:         r.Key,
		Description: r.Description,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest maps validator failures onto ErrIDInvalid for malformed
// identifiers and ErrValidation for everything else.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	for _, fe := range ve {
		if fe.Tag() == "uuid" {
			return fmt.Errorf("%w: %s", common.ErrIDInvalid, fe.Field())
		}
	}
	fe := ve[0]
	return fmt.Errorf("%w: %s failed on '%s'", common.ErrValidation, fe.Field(), fe.Tag())
}

func checkID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("%w: %q", common.ErrIDInvalid, id)
	}
	return nil
}
