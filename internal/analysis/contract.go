package analysis

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed request.schema.json
var requestSchemaJSON []byte

var (
	requestSchema    *gojsonschema.Schema
	requestSchemaErr error
	requestOnce      sync.Once
)

// RequestSchema returns the JSON schema every request body must satisfy.
func RequestSchema() []byte {
	out := make([]byte, len(requestSchemaJSON))
	copy(out, requestSchemaJSON)
	return out
}

// CheckPayload validates an encoded request body against the wire contract.
func CheckPayload(body []byte) error {
	requestOnce.Do(func() {
		requestSchema, requestSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(requestSchemaJSON))
	})
	if requestSchemaErr != nil {
		return fmt.Errorf("loading request schema: %w", requestSchemaErr)
	}

	result, err := requestSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validating request payload: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("request payload violates contract: %s", strings.Join(msgs, "; "))
}
