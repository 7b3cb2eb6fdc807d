// Package docs registra la especificación OpenAPI de la API para swag.
package docs

import (
	_ "embed"
	"strings"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// El basePath del archivo pasa a ser plantilla para respetar API_PREFIX.
var docTemplate = strings.Replace(swaggerJSON, `"basePath": "/api/v1"`, `"basePath": "{{.BasePath}}"`, 1)

// SwaggerInfo metadatos expuestos; BasePath se ajusta al prefijo configurado.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "Catalog Admin API",
	Description:      "Administración del catálogo de productos: autenticación, productos, categorías e imágenes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
