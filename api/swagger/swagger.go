package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Helpdesk Performance API",
        "description": "Monthly agent performance reporting over the legacy helpdesk database",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Agent login"},
        {"name": "Performance", "description": "Monthly reporting endpoints"},
        {"name": "Agents", "description": "Agent statistics"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate an agent by id and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "No reporting access"}
                }
            }
        },
        "/performance/scores-agents": {
            "get": {
                "tags": ["Performance"],
                "summary": "Monthly point score per agent with previous month comparison",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "mois", "in": "query", "type": "integer", "minimum": 1, "maximum": 12},
                    {"name": "annee", "in": "query", "type": "integer", "minimum": 2000}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/performance/tickets-repartis-par-agent": {
            "get": {
                "tags": ["Performance"],
                "summary": "Share of the month's tickets assigned to each agent",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "mois", "in": "query", "type": "integer", "minimum": 1, "maximum": 12},
                    {"name": "annee", "in": "query", "type": "integer", "minimum": 2000}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/performance/tickets-realises-par-mois": {
            "get": {
                "tags": ["Performance"],
                "summary": "Monthly totals, resolution rate and per-tier breakdown",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "mois", "in": "query", "type": "integer", "minimum": 1, "maximum": 12},
                    {"name": "annee", "in": "query", "type": "integer", "minimum": 2000}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/performance/classement": {
            "get": {
                "tags": ["Performance"],
                "summary": "Best agent per difficulty tier plus the overall leader",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "mois", "in": "query", "type": "integer", "minimum": 1, "maximum": 12},
                    {"name": "annee", "in": "query", "type": "integer", "minimum": 2000}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/performance/chercher": {
            "get": {
                "tags": ["Performance"],
                "summary": "Search agents by id or name and return their metrics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "terme", "in": "query", "type": "string", "required": true},
                    {"name": "mois", "in": "query", "type": "integer", "minimum": 1, "maximum": 12},
                    {"name": "annee", "in": "query", "type": "integer", "minimum": 2000}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No matching agent"}
                }
            }
        },
        "/performance/export": {
            "get": {
                "tags": ["Performance"],
                "summary": "Download the monthly performance report",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "mois", "in": "query", "type": "integer", "minimum": 1, "maximum": 12},
                    {"name": "annee", "in": "query", "type": "integer", "minimum": 2000}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/agents/stats": {
            "get": {
                "tags": ["Agents"],
                "summary": "All-time resolved-over-assigned tally per agent",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "password": {"type": "string"}
            },
            "required": ["id", "password"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
