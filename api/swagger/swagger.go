package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Outpass API",
        "description": "Outpass lifecycle and role-scoped campus access management",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Login, self-registration and password recovery"},
        {"name": "Resident", "description": "Outpass requests and resident dashboard"},
        {"name": "Supervisor", "description": "Hostel-scoped review and statistics"},
        {"name": "Officer", "description": "Gate departure and return operations"},
        {"name": "Admin", "description": "Account administration and reports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "Access token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Self-register an account",
                "responses": {
                    "201": {"description": "Account created"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/auth/password-reset": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Identity-verified password reset",
                "responses": {
                    "204": {"description": "Password reset"},
                    "400": {"description": "Identity mismatch"}
                }
            }
        },
        "/resident/outpasses": {
            "get": {
                "tags": ["Resident"],
                "summary": "List own outpasses",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Resident"],
                "summary": "Request a new outpass",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Outpass created"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/resident/outpasses/{id}": {
            "get": {
                "tags": ["Resident"],
                "summary": "Get one of own outpasses",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Resident"],
                "summary": "Edit a pending outpass",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid state"}}
            }
        },
        "/resident/outpasses/{id}/cancel": {
            "post": {
                "tags": ["Resident"],
                "summary": "Cancel a pending or approved outpass",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Cancelled"}, "409": {"description": "Invalid state"}}
            }
        },
        "/resident/dashboard": {
            "get": {
                "tags": ["Resident"],
                "summary": "Resident dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/supervisor/outpasses": {
            "get": {
                "tags": ["Supervisor"],
                "summary": "List outpasses for the assigned hostel",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/supervisor/outpasses/{id}/review": {
            "post": {
                "tags": ["Supervisor"],
                "summary": "Approve or reject a pending outpass",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Reviewed"}, "409": {"description": "Invalid state"}}
            }
        },
        "/supervisor/statistics": {
            "get": {
                "tags": ["Supervisor"],
                "summary": "Hostel statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/officer/outpasses/{id}/departure": {
            "post": {
                "tags": ["Officer"],
                "summary": "Mark departure at the gate",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Departed"}, "409": {"description": "Invalid state"}}
            }
        },
        "/officer/outpasses/{id}/return": {
            "post": {
                "tags": ["Officer"],
                "summary": "Mark return at the gate",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Completed"}, "409": {"description": "Invalid state"}}
            }
        },
        "/officer/today": {
            "get": {
                "tags": ["Officer"],
                "summary": "Today's gate activity",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/accounts": {
            "get": {
                "tags": ["Admin"],
                "summary": "List accounts by role",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Register an account",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Account created"}}
            }
        },
        "/admin/reports/outpasses": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export the outpass history report",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Report file"}, "400": {"description": "Unsupported format"}}
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}, "503": {"description": "Store unavailable"}}
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Envelope": {
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
