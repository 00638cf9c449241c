package validation

import (
	"github.com/TonCerques/alugaki/model"
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("category", validCategory)
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Core exposes the underlying validate instance so controllers share the
// custom tag registrations.
func (v *Validator) Core() *validator.Validate { return v.v }

func validCategory(fl validator.FieldLevel) bool {
	switch model.ItemCategory(fl.Field().String()) {
	case model.CategoryCamera, model.CategoryDrone, model.CategoryAudio,
		model.CategoryLighting, model.CategoryGaming, model.CategoryComputing,
		model.CategoryVR, model.CategoryOther:
		return true
	}
	return false
}
