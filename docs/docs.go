// Package docs registers the swagger document of the REST api, served under /doc/.
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
        "/algorithms": {
            "get": {
                "produces": ["application/json"],
                "tags": ["mazes"],
                "summary": "list the supported maze generation algorithms",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/controllers.algorithmsResponse"}
                    }
                }
            }
        },
        "/mazes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["mazes"],
                "summary": "generate a complete maze without streaming",
                "parameters": [
                    {"type": "string", "description": "dfs, prims, kruskals, ellers or aldous_broder", "name": "algorithm", "in": "query"},
                    {"type": "integer", "description": "odd width, at least 3", "name": "width", "in": "query"},
                    {"type": "integer", "description": "odd height, at least 3", "name": "height", "in": "query"},
                    {"type": "integer", "description": "seed for a reproducible maze", "name": "seed", "in": "query"},
                    {"type": "boolean", "description": "include an ascii rendering", "name": "ascii", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.mazeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.algorithmsResponse": {
            "type": "object",
            "properties": {
                "algorithms": {"type": "array", "items": {"type": "string"}}
            }
        },
        "controllers.cellWalls": {
            "type": "object",
            "properties": {
                "n": {"type": "boolean"},
                "e": {"type": "boolean"},
                "s": {"type": "boolean"},
                "w": {"type": "boolean"}
            }
        },
        "controllers.mazeResponse": {
            "type": "object",
            "properties": {
                "algorithm": {"type": "string"},
                "width": {"type": "integer"},
                "height": {"type": "integer"},
                "seed": {"type": "integer"},
                "start": {"type": "array", "items": {"type": "integer"}},
                "end": {"type": "array", "items": {"type": "integer"}},
                "events": {"type": "integer"},
                "path_events": {"type": "integer"},
                "frontier_events": {"type": "integer"},
                "walls": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/controllers.cellWalls"}}},
                "ascii": {"type": "string"}
            }
        },
        "controllers.errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:6060",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Maze Generator API",
	Description:      "Streaming maze generation engine. Mazes are streamed over the websocket port, this api generates complete mazes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
