// Package docs holds the OpenAPI document served under /swagger when the
// server is built with -tags=swagger. Regenerate with `swag init -g cmd/policyd/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "policyd maintainers"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/act": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["policy"],
                "summary": "Compute an action sequence",
                "parameters": [
                    {"name": "observation", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ObservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ActionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/adapt": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["policy"],
                "summary": "Preview the model input",
                "parameters": [
                    {"name": "observation", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ObservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.AdaptResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/example": {
            "get": {
                "produces": ["application/json"],
                "tags": ["policy"],
                "summary": "Example observation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ObservationRequest"}}
                }
            }
        }
    },
    "definitions": {
        "types.Tensor": {
            "type": "object",
            "properties": {
                "shape": {"type": "array", "items": {"type": "integer"}},
                "dtype": {"type": "string", "example": "uint8"},
                "layout": {"type": "string", "example": "hwc"},
                "data": {"type": "string", "format": "byte"},
                "values": {"type": "array", "items": {"type": "number"}},
                "encoded": {"type": "string", "format": "byte"}
            }
        },
        "types.ObservationRequest": {
            "type": "object",
            "properties": {
                "state": {"type": "array", "items": {"type": "number"}},
                "primary_image": {"$ref": "#/definitions/types.Tensor"},
                "wrist_image": {"$ref": "#/definitions/types.Tensor"},
                "prompt": {"type": "string", "example": "Grasp and place an object."},
                "tasks": {"type": "string"},
                "actions": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}}
            }
        },
        "types.ActionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "horizon": {"type": "integer", "example": 16},
                "action_width": {"type": "integer", "example": 10},
                "actions": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}},
                "infer_ms": {"type": "number"}
            }
        },
        "types.ImageSummary": {
            "type": "object",
            "properties": {
                "shape": {"type": "array", "items": {"type": "integer"}},
                "dtype": {"type": "string", "example": "uint8"},
                "zero": {"type": "boolean"}
            }
        },
        "types.AdaptResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "array", "items": {"type": "number"}},
                "image": {"type": "object", "additionalProperties": {"$ref": "#/definitions/types.ImageSummary"}},
                "image_mask": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "prompt": {"type": "string"},
                "actions_shape": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "policyd API",
	Description:      "HTTP API adapting robot observations into policy model inputs and decoding actions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
