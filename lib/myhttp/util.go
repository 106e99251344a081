package myhttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/shopcart/lib/myerrors"
)

// DecodeJSON parses the request body into v. A malformed body is reported as invalid input.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return myerrors.NewInvalidInputErrorf("missing request body")
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error parsing request body: %s", err))
	}
	return nil
}
