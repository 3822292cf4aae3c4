// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/emissions/flight": {
            "post": {
                "tags": ["Emissions"],
                "summary": "Flight emissions",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.FlightRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/emissions/compare": {
            "post": {
                "tags": ["Emissions"],
                "summary": "Compare air, rail and road",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.FlightRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/routes": {
            "get": {
                "tags": ["Routes"],
                "summary": "Route durations",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "IATA code or lat,lon", "name": "origin", "in": "query", "required": true},
                    {"type": "string", "description": "IATA code or lat,lon", "name": "destination", "in": "query", "required": true},
                    {"type": "string", "name": "origin_key", "in": "query"},
                    {"type": "string", "name": "destination_key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Routes"],
                "summary": "Drop a cached route",
                "parameters": [
                    {"type": "string", "name": "origin", "in": "query", "required": true},
                    {"type": "string", "name": "destination", "in": "query", "required": true},
                    {"type": "string", "name": "origin_key", "in": "query"},
                    {"type": "string", "name": "destination_key", "in": "query"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/routes/warm": {
            "post": {
                "tags": ["Routes"],
                "summary": "Queue route pairs for warming",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.WarmRoutesRequest"}}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Service health",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "definitions": {
        "dto.Endpoint": {
            "type": "object",
            "properties": {
                "iata": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "key": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "dto.FlightRequest": {
            "type": "object",
            "properties": {
                "origin": {"$ref": "#/definitions/dto.Endpoint"},
                "destination": {"$ref": "#/definitions/dto.Endpoint"},
                "passengers": {"type": "integer"},
                "is_round_trip": {"type": "boolean"},
                "cabin_class": {"type": "string", "enum": ["economy", "premium_economy", "business", "first"]},
                "aircraft_type": {"type": "string"},
                "cargo_tons": {"type": "number"},
                "is_international": {"type": "boolean"},
                "route_group": {"type": "string"},
                "country": {"type": "string"}
            }
        },
        "dto.RoutePair": {
            "type": "object",
            "properties": {
                "origin": {"$ref": "#/definitions/dto.Endpoint"},
                "destination": {"$ref": "#/definitions/dto.Endpoint"}
            }
        },
        "dto.WarmRoutesRequest": {
            "type": "object",
            "properties": {
                "pairs": {"type": "array", "items": {"$ref": "#/definitions/dto.RoutePair"}}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "retryable": {"type": "boolean"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"type": "object", "additionalProperties": true}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Carbon Emission Calculator API",
	Description:      "Flight emissions per the ICAO methodology, surface mode comparison and a cached route duration service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
