package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

// requestValidator. validator with english translations and the "odd" tag for maze dimensions.
type requestValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newRequestValidator() *requestValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("odd", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 != 0
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	_ = validate.RegisterTranslation("odd", trans, func(ut ut.Translator) error {
		return ut.Add("odd", "{0} must be an odd number", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("odd", fe.Field())
		return t
	})

	return &requestValidator{validate: validate, trans: trans}
}

// Struct. nil or a util.ErrBadParamInput error listing every violated rule.
func (v *requestValidator) Struct(x any) error {
	err := v.validate.Struct(x)
	if err == nil {
		return nil
	}
	vv := translateError(err, v.trans)
	vvString := make([]string, 0, len(vv))
	for _, e := range vv {
		vvString = append(vvString, e.Error())
	}
	return util.WrapErrorf(err, util.ErrBadParamInput, "validation error: %v", vvString)
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

// errorMessage. text shown to clients, without the wrapped sentinel for request errors.
func errorMessage(err error) string {
	var uerr *util.Error
	if errors.As(err, &uerr) && !errors.Is(err, util.ErrInternalInvariant) {
		return uerr.Message()
	}
	return err.Error()
}

// wireErrorCode. websocket error code of err.
func wireErrorCode(err error) string {
	switch util.CodeOf(err) {
	case util.ErrBadParamInput, util.ErrConflict:
		return CodeInvalidRequest
	case util.ErrNotFound:
		return CodeNotFound
	default:
		return CodeInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

type responder struct {
	log *zap.Logger
}

func (rs responder) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message

	if err := writeJSON(w, status, envelope{"error": resp.Error}, nil); err != nil {
		rs.log.Error("failed to write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (rs responder) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.errorResponse(w, r, http.StatusBadRequest, errorMessage(err))
}

func (rs responder) NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	rs.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (rs responder) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.log.Error("internal server error", zap.Error(err), zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	rs.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// getStatusCode. map the error code carried by err to an http status and write the response.
func (rs responder) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	switch util.CodeOf(err) {
	case util.ErrBadParamInput:
		rs.BadRequestResponse(w, r, err)
	case util.ErrNotFound:
		rs.errorResponse(w, r, http.StatusNotFound, errorMessage(err))
	case util.ErrConflict:
		rs.errorResponse(w, r, http.StatusConflict, errorMessage(err))
	default:
		rs.ServerErrorResponse(w, r, err)
	}
}
