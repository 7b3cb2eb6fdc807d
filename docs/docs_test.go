package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc_UsaBasePathConfigurado(t *testing.T) {
	prev := SwaggerInfo.BasePath
	t.Cleanup(func() { SwaggerInfo.BasePath = prev })

	SwaggerInfo.BasePath = "/api/v2"
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api/v2", doc["basePath"])
	assert.Contains(t, doc["paths"], "/products/{id}/stock")
}
