package dtos

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pixelport/pixelport/pkg/constants"
	"github.com/pixelport/pixelport/pkg/serrors"
)

type CreateCatalogDTO struct {
	StoreID    string `json:"store_id" validate:"required,uuid"`
	ExternalID string `json:"external_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
}

func (d *CreateCatalogDTO) Normalize() {
	d.StoreID = strings.TrimSpace(d.StoreID)
	d.ExternalID = strings.TrimSpace(d.ExternalID)
	d.Name = strings.TrimSpace(d.Name)
}

func (d *CreateCatalogDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	return validateStruct(d)
}

type CreatePixelDTO struct {
	StoreID    string `json:"store_id" validate:"required,uuid"`
	ExternalID string `json:"external_id" validate:"required"`
}

func (d *CreatePixelDTO) Normalize() {
	d.StoreID = strings.TrimSpace(d.StoreID)
	d.ExternalID = strings.TrimSpace(d.ExternalID)
}

func (d *CreatePixelDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	return validateStruct(d)
}

type ConnectStoreDTO struct {
	Domain      string `json:"domain" validate:"required,fqdn"`
	AccessToken string `json:"access_token" validate:"required"`
}

func (d *ConnectStoreDTO) Normalize() {
	d.Domain = strings.ToLower(strings.TrimSpace(d.Domain))
	d.AccessToken = strings.TrimSpace(d.AccessToken)
}

func (d *ConnectStoreDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	return validateStruct(d)
}

type UpdateCredentialDTO struct {
	AccessToken string `json:"access_token" validate:"required"`
}

func (d *UpdateCredentialDTO) Ok() (serrors.ValidationErrors, bool) {
	d.AccessToken = strings.TrimSpace(d.AccessToken)
	return validateStruct(d)
}

type BindCatalogDTO struct {
	CatalogID string `json:"catalog_id" validate:"required,uuid"`
}

func (d *BindCatalogDTO) Ok() (serrors.ValidationErrors, bool) {
	d.CatalogID = strings.TrimSpace(d.CatalogID)
	return validateStruct(d)
}

func validateStruct(v interface{}) (serrors.ValidationErrors, bool) {
	errs := constants.Validate.Struct(v)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	validationErrors := make(serrors.ValidationErrors)
	for _, err := range errs.(validator.ValidationErrors) {
		if err.Tag() == "required" {
			validationErrors[err.Field()] = serrors.NewFieldRequiredError(err.Field())
		} else {
			validationErrors[err.Field()] = serrors.NewInvalidFieldError(err.Field(), err.Tag())
		}
	}
	return validationErrors, false
}
