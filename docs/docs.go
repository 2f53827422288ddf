// Package docs holds the OpenAPI description served under /swagger.
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
        "/api/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user, creating the company on first use",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in as a company user",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/admin-login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in as the operator",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Claims of the bearer token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/vehicle-entry": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vehicles"],
                "summary": "Record a vehicle check-in",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.VehicleEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/vehicle-exit": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vehicles"],
                "summary": "Check out the latest parked entry for a plate",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.VehicleExitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/vehicle-entries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["vehicles"],
                "summary": "List entries, newest first",
                "parameters": [
                    {"type": "string", "description": "1 to include exited entries", "name": "all", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.VehicleEntry"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/vehicle-count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["vehicles"],
                "summary": "Count entries by day or interval",
                "parameters": [
                    {"type": "string", "description": "start date", "name": "start", "in": "query"},
                    {"type": "string", "description": "end date", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handlers.CountResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}}
        },
        "handlers.EntryResponse": {
            "type": "object",
            "properties": {
                "entry": {"$ref": "#/definitions/models.VehicleEntry"},
                "success": {"type": "boolean"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handlers.SessionResponse": {
            "type": "object",
            "properties": {
                "session": {"$ref": "#/definitions/models.SessionClaims"},
                "success": {"type": "boolean"}
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "handlers.VehicleEntryRequest": {
            "type": "object",
            "required": ["numberPlate"],
            "properties": {
                "backImage": {"type": "string"},
                "driverName": {"type": "string", "maxLength": 255},
                "frontImage": {"type": "string"},
                "numberPlate": {"type": "string", "maxLength": 32},
                "passengerCount": {"type": "integer", "minimum": 0},
                "reason": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handlers.VehicleExitRequest": {
            "type": "object",
            "required": ["numberPlate"],
            "properties": {"numberPlate": {"type": "string"}}
        },
        "models.LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "models.SessionClaims": {
            "type": "object",
            "properties": {
                "companyId": {"type": "string"},
                "companySubdomain": {"type": "string"},
                "expiresAt": {"type": "string"},
                "issuedAt": {"type": "string"},
                "role": {"type": "string"},
                "userId": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "companyId": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "role": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.VehicleEntry": {
            "type": "object",
            "properties": {
                "backImage": {"type": "string"},
                "driverName": {"type": "string"},
                "exitTime": {"type": "string"},
                "exited": {"type": "boolean"},
                "frontImage": {"type": "string"},
                "id": {"type": "integer"},
                "numberPlate": {"type": "string"},
                "passengerCount": {"type": "integer"},
                "reason": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "services.RegisterRequest": {
            "type": "object",
            "required": ["companyName", "password", "subdomain", "username"],
            "properties": {
                "companyName": {"type": "string", "maxLength": 255},
                "password": {"type": "string"},
                "role": {"type": "string", "maxLength": 64},
                "subdomain": {"type": "string", "maxLength": 63},
                "username": {"type": "string", "maxLength": 255}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ParkApp API",
	Description:      "Multi-tenant vehicle entry and exit ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
