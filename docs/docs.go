// Package docs Archive Alert status API.
//
// Read-only API поверх планировщика оповещений об архивных сценах UP42:
// состояние планировщика, последний цикл и сохранённые счётчики по AOI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Status"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.HealthResponse"}
                    }
                }
            }
        },
        "/api/v1/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Status"],
                "summary": "Scheduler status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.StatusResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/utils.ErrorResponse"}
                    }
                }
            }
        },
        "/api/v1/counters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Counters"],
                "summary": "Stored scene counts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.CountersResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/utils.ErrorResponse"}
                    }
                }
            }
        },
        "/api/v1/counters/{aoi}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Counters"],
                "summary": "Stored scene count for one AOI",
                "parameters": [
                    {
                        "type": "string",
                        "description": "AOI file name, e.g. aoi_europe.geojson",
                        "name": "aoi",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.CounterResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/utils.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "store_backend": {"type": "string"},
                "uptime": {"type": "string"}
            }
        },
        "dto.StatusResponse": {
            "type": "object",
            "properties": {
                "aoi_file": {"type": "string"},
                "interval_minutes": {"type": "number"},
                "last_cycle": {"type": "object"}
            }
        },
        "dto.CountersResponse": {
            "type": "object",
            "properties": {
                "counters": {
                    "type": "object",
                    "additionalProperties": {"type": "integer"}
                },
                "total": {"type": "integer"}
            }
        },
        "dto.CounterResponse": {
            "type": "object",
            "properties": {
                "aoi": {"type": "string"},
                "scene_count": {"type": "integer"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Archive Alert API",
	Description:      "Read-only status API for the UP42 archive alert scheduler.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
