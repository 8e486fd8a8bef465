// Package docs registers the OpenAPI document served under /swagger. Keep it
// in step with the handler annotations when routes change.
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
        "/turns": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "turns"
                ],
                "summary": "Issue a ticket",
                "description": "Allocates the next number of today and creates a PENDING ticket",
                "parameters": [
                    {
                        "description": "Priority class and optional start override",
                        "name": "ticket",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/turns.CreateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Ticket"
                        }
                    },
                    "400": {
                        "description": "INVALID_PRIORITY_CLASS, INVALID_START_OVERRIDE",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "RACE_LOST",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "DB_ERROR",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/turns/recent": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "turns"
                ],
                "summary": "Recent tickets",
                "description": "Today's tickets, newest first",
                "parameters": [
                    {
                        "type": "integer",
                        "default": 10,
                        "description": "1..50",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Ticket"
                            }
                        }
                    },
                    "400": {
                        "description": "VALIDATION_ERROR",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/turns/pending": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "turns"
                ],
                "summary": "Pending tickets",
                "description": "Today's PENDING tickets in the order they will be called",
                "parameters": [
                    {
                        "type": "string",
                        "description": "STANDARD | PRIORITY | EXEMPT",
                        "name": "class",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "internal | public",
                        "name": "audience",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Ticket"
                            }
                        }
                    },
                    "400": {
                        "description": "INVALID_PRIORITY_CLASS",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/windows/sessions": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Take a window",
                "description": "Opens a session binding the caller to a window, closing any session the caller already had",
                "parameters": [
                    {
                        "description": "Window to take",
                        "name": "session",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.OpenSessionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.WorkerSession"
                        }
                    },
                    "400": {
                        "description": "VALIDATION_ERROR, INVALID_WINDOW_NUMBER",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "WINDOW_NOT_FOUND",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "WINDOW_BUSY",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Leave the window",
                "description": "Closes the caller's open session. Succeeds when nothing is open.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.SuccessResponse"
                        }
                    }
                }
            }
        },
        "/windows/sessions/me": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Current session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.WorkerSession"
                        }
                    },
                    "404": {
                        "description": "SESSION_NOT_FOUND",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/windows/{number}/next": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Call the next ticket",
                "description": "Calls the next pending ticket to the window. Priority class first, then lowest number.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window number",
                        "name": "number",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Restrict to one priority class",
                        "name": "class",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Ticket"
                        }
                    },
                    "400": {
                        "description": "INVALID_WINDOW_NUMBER, INVALID_PRIORITY_CLASS",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "NOT_WINDOW_OWNER",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "WINDOW_NOT_FOUND, QUEUE_EMPTY",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "RACE_LOST",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/windows/{number}/serve/{ticketId}": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Start serving a called ticket",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window number",
                        "name": "number",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Ticket ID",
                        "name": "ticketId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Ticket"
                        }
                    },
                    "400": {
                        "description": "INVALID_WINDOW_NUMBER, INVALID_TICKET_ID",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "NOT_WINDOW_OWNER, TICKET_OTHER_WINDOW",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "WINDOW_NOT_FOUND, TICKET_NOT_FOUND",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "INVALID_TRANSITION",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/windows/{number}/complete/{ticketId}": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Complete a ticket",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window number",
                        "name": "number",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Ticket ID",
                        "name": "ticketId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Ticket"
                        }
                    },
                    "400": {
                        "description": "INVALID_WINDOW_NUMBER, INVALID_TICKET_ID",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "NOT_WINDOW_OWNER, TICKET_OTHER_WINDOW",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "WINDOW_NOT_FOUND, TICKET_NOT_FOUND",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "INVALID_TRANSITION",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/windows/{number}/skip/{ticketId}": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Skip a ticket (no-show)",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window number",
                        "name": "number",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Ticket ID",
                        "name": "ticketId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Ticket"
                        }
                    },
                    "400": {
                        "description": "INVALID_WINDOW_NUMBER, INVALID_TICKET_ID",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "NOT_WINDOW_OWNER, TICKET_OTHER_WINDOW",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "WINDOW_NOT_FOUND, TICKET_NOT_FOUND",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "INVALID_TRANSITION",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/windows/{number}/bell": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Ring the window bell",
                "description": "Re-announces the window's current ticket on the lobby display",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window number",
                        "name": "number",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.BellResponse"
                        }
                    },
                    "403": {
                        "description": "NOT_WINDOW_OWNER",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "WINDOW_NOT_FOUND",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/windows/overview": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Lobby display overview",
                "description": "Active windows with their current ticket and the next pending tickets. Classes hidden from the public are left out.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/windows.Overview"
                        }
                    }
                }
            }
        },
        "/windows/overview/internal": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "windows"
                ],
                "summary": "Staff overview",
                "description": "Same as the lobby overview, including every class",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/windows.Overview"
                        }
                    }
                }
            }
        },
        "/admin/rollover": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Run the daily rollover now",
                "description": "Archives (or purges) the day's tickets, closes all sessions and restarts numbering",
                "parameters": [
                    {
                        "description": "Confirmation phrase and mode",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.RolloverRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/rollover.Result"
                        }
                    },
                    "400": {
                        "description": "CONFIRMATION_MISMATCH, INVALID_ROLLOVER_MODE, INVALID_SERVICE_DAY",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "ROLE_REQUIRED",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/turns/purge-now": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Delete every live ticket",
                "description": "Purge without archiving. Sessions are closed and today's numbering restarts.",
                "parameters": [
                    {
                        "description": "Confirmation phrase",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.PurgeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/rollover.Result"
                        }
                    },
                    "400": {
                        "description": "CONFIRMATION_MISMATCH",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "ROLE_REQUIRED",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/rollover/last": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Last rollover",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SystemState"
                        }
                    },
                    "404": {
                        "description": "NO_ROLLOVER",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/stats/operators": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Operator statistics",
                "description": "Archived per-operator aggregates of a service day",
                "parameters": [
                    {
                        "type": "string",
                        "description": "YYYY-MM-DD, defaults to today",
                        "name": "day",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.OperatorDailyAggregate"
                            }
                        }
                    },
                    "400": {
                        "description": "INVALID_SERVICE_DAY",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/ws": {
            "get": {
                "tags": [
                    "Realtime"
                ],
                "summary": "Subscribe to live queue events",
                "description": "Upgrades to a websocket. channel is one of turns, windows, all.",
                "parameters": [
                    {
                        "type": "string",
                        "default": "all",
                        "description": "turns | windows | all",
                        "name": "channel",
                        "in": "query"
                    }
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.BellResponse": {
            "type": "object",
            "properties": {
                "windowNumber": {
                    "type": "integer"
                },
                "ticketNumber": {
                    "type": "integer"
                }
            }
        },
        "handlers.OpenSessionRequest": {
            "type": "object",
            "properties": {
                "mode": {
                    "description": "WINDOW (default) or ASSIGNER",
                    "type": "string",
                    "example": "WINDOW"
                },
                "windowNumber": {
                    "type": "integer",
                    "example": 3
                }
            }
        },
        "handlers.PurgeRequest": {
            "type": "object",
            "required": [
                "confirmation"
            ],
            "properties": {
                "confirmation": {
                    "type": "string",
                    "example": "I confirm the daily reset."
                }
            }
        },
        "handlers.RolloverRequest": {
            "type": "object",
            "required": [
                "confirmation"
            ],
            "properties": {
                "confirmation": {
                    "type": "string",
                    "example": "I confirm the daily reset."
                },
                "mode": {
                    "description": "ARCHIVE (default) or PURGE",
                    "type": "string",
                    "example": "ARCHIVE"
                },
                "serviceDay": {
                    "description": "Defaults to today",
                    "type": "string",
                    "example": "2026-10-17"
                }
            }
        },
        "models.Ticket": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "serviceDay": {
                    "type": "string"
                },
                "number": {
                    "type": "integer"
                },
                "priorityClass": {
                    "type": "string",
                    "enum": [
                        "STANDARD",
                        "PRIORITY",
                        "EXEMPT"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "PENDING",
                        "CALLED",
                        "SERVING",
                        "DONE",
                        "SKIPPED"
                    ]
                },
                "windowNumber": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "calledAt": {
                    "type": "string"
                },
                "servedAt": {
                    "type": "string"
                },
                "completedAt": {
                    "type": "string"
                },
                "skippedAt": {
                    "type": "string"
                },
                "calledBy": {
                    "type": "string"
                },
                "servedBy": {
                    "type": "string"
                },
                "completedBy": {
                    "type": "string"
                }
            }
        },
        "models.WorkerSession": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "mode": {
                    "type": "string",
                    "enum": [
                        "ASSIGNER",
                        "WINDOW"
                    ]
                },
                "windowNumber": {
                    "type": "integer"
                },
                "startedAt": {
                    "type": "string"
                },
                "endedAt": {
                    "type": "string"
                }
            }
        },
        "models.OperatorDailyAggregate": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "serviceDay": {
                    "type": "string"
                },
                "operatorId": {
                    "type": "string"
                },
                "servedCount": {
                    "type": "integer"
                },
                "avgWaitToCallSec": {
                    "type": "number"
                },
                "avgServeToCompleteSec": {
                    "type": "number"
                },
                "avgTotalLeadTimeSec": {
                    "type": "number"
                },
                "windowMin": {
                    "type": "integer"
                },
                "windowMax": {
                    "type": "integer"
                }
            }
        },
        "models.SystemState": {
            "type": "object",
            "properties": {
                "ID": {
                    "type": "integer"
                },
                "LastRolloverDay": {
                    "type": "string"
                },
                "LastRolloverAt": {
                    "type": "string"
                },
                "LastRolloverMode": {
                    "type": "string"
                }
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "description": "Machine readable code",
                    "type": "string"
                },
                "message": {
                    "description": "Human readable message",
                    "type": "string"
                },
                "details": {
                    "description": "Optional details",
                    "type": "string"
                },
                "from": {
                    "description": "Set for INVALID_TRANSITION",
                    "type": "string"
                },
                "to": {
                    "type": "string"
                }
            }
        },
        "response.SuccessResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "OK"
                }
            }
        },
        "rollover.Result": {
            "type": "object",
            "properties": {
                "serviceDay": {
                    "type": "string"
                },
                "mode": {
                    "type": "string"
                },
                "archived": {
                    "type": "integer"
                },
                "aggregates": {
                    "type": "integer"
                },
                "deleted": {
                    "type": "integer"
                },
                "sessionsClosed": {
                    "type": "integer"
                },
                "factsPurged": {
                    "type": "integer"
                },
                "startNumber": {
                    "type": "integer"
                },
                "completedAt": {
                    "type": "string"
                }
            }
        },
        "turns.CreateRequest": {
            "type": "object",
            "properties": {
                "priorityClass": {
                    "type": "string",
                    "example": "STANDARD"
                },
                "startOverride": {
                    "type": "integer",
                    "example": 100
                }
            }
        },
        "windows.Overview": {
            "type": "object",
            "properties": {
                "serviceDay": {
                    "type": "string"
                },
                "windows": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/windows.WindowStatus"
                    }
                },
                "upcomingPriority": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/windows.TicketView"
                    }
                },
                "upcomingStandard": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/windows.TicketView"
                    }
                }
            }
        },
        "windows.TicketView": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "number": {
                    "type": "integer"
                },
                "priorityClass": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "calledAt": {
                    "type": "string"
                }
            }
        },
        "windows.WindowStatus": {
            "type": "object",
            "properties": {
                "number": {
                    "type": "integer"
                },
                "operatorId": {
                    "type": "string"
                },
                "current": {
                    "$ref": "#/definitions/windows.TicketView"
                }
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
	Title:            "Turn queue",
	Description:      "Ticket issuing, window calls and daily rollover for a walk-in service office",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
