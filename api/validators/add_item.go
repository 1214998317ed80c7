package validators

import (
	"context"
	"encoding/json"
	"net/http"

	cartdto "github.com/angelmondragon/cartoptions-backend/api/controllers/cart/dto"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"github.com/angelmondragon/cartoptions-backend/pkg/types"
)

const customerOptionsField = "customerOptions"

type decodingPassKey struct{}

// WithDecodingPass marks ctx as already inside an add-item decoding pass.
func WithDecodingPass(ctx context.Context) context.Context {
	return context.WithValue(ctx, decodingPassKey{}, true)
}

// InDecodingPass reports whether ctx carries the decoding pass marker.
func InDecodingPass(ctx context.Context) bool {
	marked, _ := ctx.Value(decodingPassKey{}).(bool)
	return marked
}

// AddItemDecoder decorates a BodyDecoder so add-item requests also pick up
// their customerOptions. Other destinations go straight to the base decoder.
type AddItemDecoder struct {
	base BodyDecoder
}

// NewAddItemDecoder wraps base; a nil base falls back to a lenient JSONDecoder.
func NewAddItemDecoder(base BodyDecoder) *AddItemDecoder {
	if base == nil {
		base = JSONDecoder{}
	}
	return &AddItemDecoder{base: base}
}

func (d *AddItemDecoder) DecodeBody(ctx context.Context, raw []byte, dest any) error {
	req, ok := dest.(*cartdto.AddItemRequest)
	if !ok {
		return d.base.DecodeBody(ctx, raw, dest)
	}
	if InDecodingPass(ctx) {
		return d.base.DecodeBody(ctx, raw, &req.AddItemFields)
	}

	ctx = WithDecodingPass(ctx)
	if err := d.base.DecodeBody(ctx, raw, &req.AddItemFields); err != nil {
		return err
	}

	options, err := extractCustomerOptions(raw)
	if err != nil {
		return err
	}
	req.CustomerOptions = options
	return nil
}

// Decode is a typed convenience over DecodeBody.
func (d *AddItemDecoder) Decode(ctx context.Context, raw []byte) (cartdto.AddItemRequest, error) {
	var req cartdto.AddItemRequest
	if err := d.DecodeBody(ctx, raw, &req); err != nil {
		return cartdto.AddItemRequest{}, err
	}
	return req, nil
}

// DecodeAddItemRequest reads the request body and decodes it with the default chain.
func DecodeAddItemRequest(r *http.Request) (cartdto.AddItemRequest, error) {
	raw, err := ReadBody(r)
	if err != nil {
		return cartdto.AddItemRequest{}, err
	}
	return NewAddItemDecoder(nil).Decode(r.Context(), raw)
}

// extractCustomerOptions returns the customerOptions collection verbatim.
// Absent fields and non-collection values yield nil.
func extractCustomerOptions(raw []byte) (types.CustomerOptions, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	field, ok := envelope[customerOptionsField]
	if !ok || !types.IsJSONCollection(field) {
		return nil, nil
	}

	var options types.CustomerOptions
	if err := json.Unmarshal(field, &options); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customerOptions").
			WithDetails(map[string]any{"field": customerOptionsField})
	}
	return options, nil
}
