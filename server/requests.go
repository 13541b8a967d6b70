package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

var validate = validator.New()

// decodeAndValidate parses a JSON request body into dst and runs its
// validation tags. Failures surface as the taxonomy's validation error so
// they map to a bad-request response.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return serviceerrors.Validationf("malformed request body")
	}
	if err := validate.Struct(dst); err != nil {
		return serviceerrors.Validationf("%v", err)
	}
	return nil
}
