package http

import (
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/oapi-codegen/runtime"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

// bindQuery decodes an optional form-style query parameter into dest; dest
// keeps its value when the parameter is absent
func bindQuery(query url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
		return goerr.Wrap(model.ErrInvalidParameter, err.Error(), goerr.V("param", name))
	}
	return nil
}

// requireQuery decodes a mandatory query parameter into dest
func requireQuery(query url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, true, name, query, dest); err != nil {
		return goerr.Wrap(model.ErrInvalidParameter, err.Error(), goerr.V("param", name))
	}
	return nil
}
