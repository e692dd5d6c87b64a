// Package coachforge contains the generated OpenAPI documentation
// served at /swagger/. Regenerate with:
//
//	swag init -g internal/coachforge/http/router.go -o api/coachforge
package coachforge

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Probe",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {"$ref": "#/definitions/coachsdk.HealthResponse"}
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Probe",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, database",
                        "schema": {"$ref": "#/definitions/coachsdk.HealthResponse"}
                    },
                    "503": {
                        "description": "status, uptime, version, database",
                        "schema": {"$ref": "#/definitions/coachsdk.HealthResponse"}
                    }
                }
            }
        },
        "/v1/bootstrap": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Bootstrap Endpoint",
                "parameters": [
                    {
                        "description": "Bootstrap parameters",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/coachsdk.BootstrapRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "coach_id",
                        "schema": {"$ref": "#/definitions/coachsdk.BootstrapResponse"}
                    },
                    "400": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "403": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "409": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/auth/coach/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Coach Login Endpoint",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/coachsdk.CoachLoginRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "token, expires_at",
                        "schema": {"$ref": "#/definitions/coachsdk.LoginResponse"}
                    },
                    "400": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "401": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/auth/athlete/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Athlete Login Endpoint",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/coachsdk.AthleteLoginRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "token, expires_at",
                        "schema": {"$ref": "#/definitions/coachsdk.LoginResponse"}
                    },
                    "400": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "401": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Logout Endpoint",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/athletes/{id}/invites": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Invites"],
                "summary": "Issue Invite Endpoint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Athlete ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "invite_url, expires_at",
                        "schema": {"$ref": "#/definitions/coachsdk.IssueInviteResponse"}
                    },
                    "401": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "403": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "404": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "409": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/invites/accept": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invites"],
                "summary": "Accept Invite Endpoint",
                "parameters": [
                    {
                        "description": "Invite token and chosen credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/coachsdk.AcceptInviteRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {"$ref": "#/definitions/coachsdk.AcceptInviteResponse"}
                    },
                    "400": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/mfa/totp/enroll": {
            "post": {
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "TOTP Enrollment Endpoint",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "secret, qr_code, issuer, account",
                        "schema": {"$ref": "#/definitions/coachsdk.MFAEnrollResponse"}
                    },
                    "401": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "409": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/mfa/totp/verify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "TOTP Verification Endpoint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "description": "TOTP code",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/coachsdk.MFAVerifyRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "401": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "409": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/coachsdk.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "coachsdk.AcceptInviteRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "coachsdk.AcceptInviteResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "coachsdk.AthleteLoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "coachsdk.BootstrapRequest": {
            "type": "object",
            "properties": {
                "athletes": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "coachsdk.BootstrapResponse": {
            "type": "object",
            "properties": {
                "athlete_ids": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "coach_id": {"type": "string"}
            }
        },
        "coachsdk.CoachLoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "totp_code": {"type": "string"}
            }
        },
        "coachsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "coachsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "coachsdk.IssueInviteResponse": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string"},
                "invite_url": {"type": "string"}
            }
        },
        "coachsdk.LoginResponse": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "coachsdk.MFAEnrollResponse": {
            "type": "object",
            "properties": {
                "account": {"type": "string"},
                "issuer": {"type": "string"},
                "qr_code": {"type": "string"},
                "secret": {"type": "string"}
            }
        },
        "coachsdk.MFAVerifyRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "CoachForge API",
	Description:      "Invite-based athlete onboarding and session authentication for the CoachForge coaching platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
