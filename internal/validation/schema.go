package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

const payloadSchemaURL = "payload.schema.json"

//go:embed payload.schema.json
var payloadSchemaSource []byte

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

var (
	payloadSchemaOnce sync.Once
	payloadSchema     *jsonschema.Schema
	payloadSchemaErr  error
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// PayloadSchema returns the compiled create payload schema.
func PayloadSchema() (*jsonschema.Schema, error) {
	payloadSchemaOnce.Do(func() {
		payloadSchema, payloadSchemaErr = compileSchema(payloadSchemaURL, payloadSchemaSource)
		if payloadSchemaErr != nil {
			payloadSchemaErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, payloadSchemaErr)
		}
	})
	return payloadSchema, payloadSchemaErr
}

// ValidatePayload checks the encoded payload against the create schema. A
// mismatch is reported as a validation error tagged PAYLOAD_INVALID for the
// source file.
func ValidatePayload(payload interfaces.Payload, sourcePath string) error {
	schema, err := PayloadSchema()
	if err != nil {
		return failure.Validation(err, failure.CodePayloadInvalid, sourcePath)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return failure.Validation(err, failure.CodePayloadInvalid, sourcePath)
	}
	var document any
	if err := json.Unmarshal(encoded, &document); err != nil {
		return failure.Validation(err, failure.CodePayloadInvalid, sourcePath)
	}

	if err := schema.Validate(document); err != nil {
		return failure.Validation(&PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}, failure.CodePayloadInvalid, sourcePath)
	}
	return nil
}

func compileSchema(url string, source []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(source)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
