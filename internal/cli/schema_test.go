package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const userSchema = `{
	"type": "object",
	"required": ["name", "age"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

func TestValidateSchema(t *testing.T) {
	assert.NoError(t, validateSchema([]byte(`{"name":"ada","age":36}`), userSchema))

	err := validateSchema([]byte(`{"name":"ada"}`), userSchema)
	assert.Error(t, err, "missing required property must fail")

	err = validateSchema([]byte(`{"name":"ada","age":-1}`), userSchema)
	assert.Error(t, err, "minimum violation must fail")
}

func TestValidateSchema_BadInputs(t *testing.T) {
	assert.Error(t, validateSchema([]byte(`not json`), userSchema))
	assert.Error(t, validateSchema([]byte(`{}`), `{"type": 12}`))
}
