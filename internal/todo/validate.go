package todo

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/utils"
)

// RowSchema is the JSON Schema every stored row is checked against.
const RowSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "todo row",
  "type": "object",
  "required": ["id", "name", "finished", "created_at"],
  "properties": {
    "id": {
      "type": "string",
      "pattern": "^[1-9][0-9]*$"
    },
    "name": {
      "type": "string",
      "minLength": 1
    },
    "finished": {
      "enum": ["Y", "N"]
    },
    "created_at": {
      "type": "string",
      "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2} [0-9]{2}:[0-9]{2}:[0-9]{2}$"
    }
  }
}`

var rowSchema = jsonschema.MustCompileString("todo-row.schema.json", RowSchema)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // row path, e.g. rows[2].finished
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Rows     int
	Errors   []error
	Warnings []string
}

// ValidateRows checks each raw row against RowSchema, then decodes it and
// reports duplicate IDs. Unlike FromRows it never stops at the first bad row.
func ValidateRows(rows []storage.Row) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Rows:     len(rows),
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	seen := make(map[int]int, len(rows))
	for i, row := range rows {
		path := fmt.Sprintf("rows[%d]", i)

		before := len(result.Errors)
		if err := rowSchema.Validate(rowValue(row)); err != nil {
			appendSchemaErrors(result, path, err)
		}
		for key := range row {
			if !isKnownField(key) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: unexpected column %q", path, key))
			}
		}
		if len(result.Errors) > before {
			continue
		}

		task, err := FromRow(row)
		if err != nil {
			result.Errors = append(result.Errors, &ValidationError{Path: path, Err: err})
			continue
		}
		if first, dup := seen[task.ID]; dup {
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + "." + FieldID,
				Err:  fmt.Errorf("duplicate id %d (first at rows[%d])", task.ID, first),
			})
			continue
		}
		seen[task.ID] = i
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func rowValue(row storage.Row) map[string]interface{} {
	v := make(map[string]interface{}, len(row))
	for k, val := range row {
		v[k] = val
	}
	return v
}

func isKnownField(key string) bool {
	for _, h := range storage.Headers {
		if h == key {
			return true
		}
	}
	return false
}

func appendSchemaErrors(result *ValidationResult, path string, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, &ValidationError{Path: path, Err: err})
		return
	}
	collectSchemaErrors(result, path, ve)
}

func collectSchemaErrors(result *ValidationResult, path string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		p := path
		if field := utils.JSONPointerToPath(err.InstanceLocation); field != "" {
			p = path + "." + field
		}
		result.Errors = append(result.Errors, &ValidationError{
			Path: p,
			Err:  errors.New(strings.TrimSpace(err.Message)),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, path, cause)
	}
}
