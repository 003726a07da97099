package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{Report, RoleModel}, Names())
}

func TestAllSchemaFiles_Draft07Objects(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			content, err := Get(name)
			require.NoError(t, err)

			var obj map[string]any
			require.NoError(t, json.Unmarshal([]byte(content), &obj))
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", obj["$schema"])
			assert.Equal(t, "object", obj["type"])
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("missing.schema.json")
	require.Error(t, err)
	assert.Panics(t, func() { MustGet("missing.schema.json") })
}
