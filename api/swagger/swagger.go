package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MSA ADP API",
        "description": "Timetable reconciliation service for the music school admin console",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Course types, course codes and recurring slots"},
        {"name": "Timetable", "description": "Reconciled timetable views and derived data"},
        {"name": "Teachers", "description": "Teacher directory"},
        {"name": "Exports", "description": "Asynchronous CSV/PDF exports"}
    ],
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
        "/catalog/course-types": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List course types",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create course type",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/course-types/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get course type",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Catalog"],
                "summary": "Update course type",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourseTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/course-types/{id}/active": {
            "patch": {
                "tags": ["Catalog"],
                "summary": "Toggle course type active flag",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleActiveRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/catalog/course-codes": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List course codes",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "courseTypeId", "in": "query", "type": "string"},
                    {"name": "teacherId", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create course code",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseCodeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/course-codes/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get course code",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Catalog"],
                "summary": "Update course code",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourseCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/course-codes/{id}/active": {
            "patch": {
                "tags": ["Catalog"],
                "summary": "Toggle course code active flag",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleActiveRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/catalog/slots": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List schedule slots",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "weekday", "in": "query", "type": "integer"},
                    {"name": "courseCodeId", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create schedule slot",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Placement conflicts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/slots/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get schedule slot",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Catalog"],
                "summary": "Update schedule slot",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateScheduleSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Placement conflicts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Catalog"],
                "summary": "Delete schedule slot",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/catalog/slots/{id}/active": {
            "patch": {
                "tags": ["Catalog"],
                "summary": "Toggle schedule slot active flag",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleActiveRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/catalog/options": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Catalog dropdown options",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get timetable view",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "granularity", "in": "query", "required": true, "type": "string", "enum": ["day", "week", "month"]},
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/refresh": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Force rebuild of a timetable view",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/balances": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Lesson balances for regular enrollments",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "studentId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/holidays": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Holidays in a date range",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a timetable export",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [
                    {"name": "X-Org-ID", "in": "header", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "File stream"}
                }
            }
        }
    },
    "definitions": {
        "CreateCourseTypeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "minAge": {"type": "integer"},
                "maxAge": {"type": "integer"},
                "durationMinutes": {"type": "integer"},
                "capacity": {"type": "integer"},
                "difficultyTier": {"type": "string"},
                "pricingModel": {"type": "string"},
                "trialLimit": {"type": "integer"},
                "packages": {"type": "array", "items": {"$ref": "#/definitions/PackageOption"}},
                "trialBundles": {"type": "array", "items": {"$ref": "#/definitions/TrialBundleOption"}},
                "displayOrder": {"type": "integer"}
            },
            "required": ["name", "durationMinutes", "capacity"]
        },
        "UpdateCourseTypeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "minAge": {"type": "integer"},
                "maxAge": {"type": "integer"},
                "durationMinutes": {"type": "integer"},
                "capacity": {"type": "integer"},
                "difficultyTier": {"type": "string"},
                "pricingModel": {"type": "string"},
                "trialLimit": {"type": "integer"},
                "packages": {"type": "array", "items": {"$ref": "#/definitions/PackageOption"}},
                "trialBundles": {"type": "array", "items": {"$ref": "#/definitions/TrialBundleOption"}},
                "displayOrder": {"type": "integer"}
            }
        },
        "PackageOption": {
            "type": "object",
            "properties": {
                "lesson_count": {"type": "integer"},
                "price": {"type": "number"}
            }
        },
        "TrialBundleOption": {
            "type": "object",
            "properties": {
                "duration_minutes": {"type": "integer"},
                "price": {"type": "number"}
            }
        },
        "CreateCourseCodeRequest": {
            "type": "object",
            "properties": {
                "courseTypeId": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "capacity": {"type": "integer"},
                "teacherId": {"type": "string"},
                "room": {"type": "string"},
                "displayOrder": {"type": "integer"}
            },
            "required": ["code", "name", "capacity"]
        },
        "UpdateCourseCodeRequest": {
            "type": "object",
            "properties": {
                "courseTypeId": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "capacity": {"type": "integer"},
                "teacherId": {"type": "string"},
                "room": {"type": "string"},
                "displayOrder": {"type": "integer"}
            }
        },
        "CreateScheduleSlotRequest": {
            "type": "object",
            "properties": {
                "weekday": {"type": "integer", "minimum": 0, "maximum": 6},
                "startTime": {"type": "string", "example": "15:30"},
                "durationMinutes": {"type": "integer"},
                "capacity": {"type": "integer"},
                "courseCodeId": {"type": "string"},
                "section": {"type": "string"},
                "room": {"type": "string"},
                "isPrimary": {"type": "boolean"}
            },
            "required": ["weekday", "startTime", "durationMinutes", "capacity"]
        },
        "UpdateScheduleSlotRequest": {
            "type": "object",
            "properties": {
                "weekday": {"type": "integer", "minimum": 0, "maximum": 6},
                "startTime": {"type": "string"},
                "durationMinutes": {"type": "integer"},
                "capacity": {"type": "integer"},
                "courseCodeId": {"type": "string"},
                "section": {"type": "string"},
                "room": {"type": "string"},
                "isPrimary": {"type": "boolean"}
            }
        },
        "ToggleActiveRequest": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"}
            },
            "required": ["active"]
        },
        "RefreshRequest": {
            "type": "object",
            "properties": {
                "granularity": {"type": "string", "enum": ["day", "week", "month"]},
                "date": {"type": "string"}
            },
            "required": ["granularity", "date"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "granularity": {"type": "string", "enum": ["day", "week", "month"]},
                "date": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["granularity", "date", "format"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "Violation": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["SLOT_OVERLAP", "TEACHER_DOUBLE_BOOKED", "CAPACITY_EXCEEDED"]},
                "slot_id": {"type": "string"},
                "other_id": {"type": "string"},
                "course_code": {"type": "string"},
                "teacher_id": {"type": "string"},
                "detail": {"type": "string"}
            }
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
                "violations": {"type": "array", "items": {"$ref": "#/definitions/Violation"}},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
