// Package docs registers the Swagger description of the timetracker API.
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
        "/clients/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "List clients",
                "responses": {
                    "200": {"description": "clients and form", "schema": {"type": "object"}},
                    "302": {"description": "Redirect to login"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Create a client",
                "parameters": [
                    {"type": "string", "description": "Client name", "name": "name", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "Redirect to the client list"},
                    "400": {"description": "Invalid form", "schema": {"type": "object"}}
                }
            }
        },
        "/clients/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Get a client for editing",
                "parameters": [
                    {"type": "integer", "description": "Client ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "client and form", "schema": {"type": "object"}},
                    "404": {"description": "Not found or not owned", "schema": {"type": "object"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Update a client",
                "parameters": [
                    {"type": "integer", "description": "Client ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Client name", "name": "name", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "Redirect to the client list"},
                    "400": {"description": "Invalid form", "schema": {"type": "object"}},
                    "404": {"description": "Not found or not owned", "schema": {"type": "object"}}
                }
            }
        },
        "/entries/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "List my entries",
                "responses": {
                    "200": {"description": "entries and form", "schema": {"type": "object"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Create an entry",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "project", "in": "formData", "required": true},
                    {"type": "string", "description": "What was done", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Start time, defaults to now", "name": "start", "in": "formData"},
                    {"type": "string", "description": "Stop time", "name": "stop", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to the entry list"},
                    "400": {"description": "Invalid form", "schema": {"type": "object"}}
                }
            }
        },
        "/entries/export/": {
            "get": {
                "produces": ["text/csv", "application/gzip"],
                "tags": ["entries"],
                "summary": "Export my entries",
                "parameters": [
                    {"type": "string", "description": "Set to gz for a gzip-compressed file", "name": "compress", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "CSV export", "schema": {"type": "file"}}
                }
            }
        },
        "/projects/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "projects and form", "schema": {"type": "object"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a project",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "name", "in": "formData", "required": true},
                    {"type": "integer", "description": "Client ID", "name": "client", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to the project list"},
                    "400": {"description": "Invalid form", "schema": {"type": "object"}}
                }
            }
        },
        "/projects/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project for editing",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "project and form", "schema": {"type": "object"}},
                    "404": {"description": "Not found or not owned", "schema": {"type": "object"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Project name", "name": "name", "in": "formData", "required": true},
                    {"type": "integer", "description": "Client ID", "name": "client", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to the project list"},
                    "400": {"description": "Invalid form", "schema": {"type": "object"}},
                    "404": {"description": "Not found or not owned", "schema": {"type": "object"}}
                }
            }
        },
        "/auth/login/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login form",
                "parameters": [
                    {"type": "string", "description": "Where to go after logging in", "name": "next", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "form and next", "schema": {"type": "object"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Where to go after logging in", "name": "next", "in": "query"}
                ],
                "responses": {
                    "302": {"description": "Redirect to next"},
                    "400": {"description": "Invalid credentials", "schema": {"type": "object"}}
                }
            }
        },
        "/auth/logout/": {
            "get": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "302": {"description": "Redirect to /"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Timetracker API",
	Description:      "Track work time against clients, projects and entries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
