package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Results API",
        "description": "Academic result calculation, report cards and class result sheets",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [
        {"BearerAuth": []}
    ],
    "tags": [
        {"name": "Results", "description": "Subject, term and final result evaluation"},
        {"name": "Marks", "description": "Stored exam marks"}
    ],
    "paths": {
        "/results/subject": {
            "post": {
                "tags": ["Results"],
                "summary": "Score a single subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/term": {
            "post": {
                "tags": ["Results"],
                "summary": "Evaluate one term",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TermResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/final": {
            "post": {
                "tags": ["Results"],
                "summary": "Evaluate the academic year",
                "description": "Omitted terms are skipped. Absences and failures accumulate across the supplied terms.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FinalResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/report-card": {
            "post": {
                "tags": ["Results"],
                "summary": "Build a report card from posted marks",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportCardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/report-card": {
            "get": {
                "tags": ["Results"],
                "summary": "Stored student report card",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "academic_year", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/report-card/export": {
            "get": {
                "tags": ["Results"],
                "summary": "Download a student report card",
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "academic_year", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"], "default": "pdf"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/results": {
            "get": {
                "tags": ["Results"],
                "summary": "Class result sheet",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "academic_year", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class has no active students", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/results/export": {
            "get": {
                "tags": ["Results"],
                "summary": "Download a class result sheet",
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "academic_year", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"], "default": "pdf"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/marks": {
            "get": {
                "tags": ["Marks"],
                "summary": "List exam marks",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"},
                    {"name": "academic_year", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "integer", "minimum": 1, "maximum": 3}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/marks/bulk": {
            "post": {
                "tags": ["Marks"],
                "summary": "Record a term's marks",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkMarksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubjectMarkInput": {
            "type": "object",
            "required": ["subject_name", "total_marks"],
            "properties": {
                "subject_name": {"type": "string"},
                "total_marks": {"type": "number"},
                "obtained_marks": {"type": "number"},
                "passing_marks": {"type": "number"},
                "is_absent": {"type": "boolean"}
            }
        },
        "SubjectResultRequest": {
            "type": "object",
            "required": ["total_marks"],
            "properties": {
                "obtained_marks": {"type": "number"},
                "total_marks": {"type": "number"},
                "passing_marks": {"type": "number"},
                "is_absent": {"type": "boolean"}
            }
        },
        "TermResultRequest": {
            "type": "object",
            "properties": {
                "term_name": {"type": "string"},
                "marks": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}}
            }
        },
        "FinalResultRequest": {
            "type": "object",
            "properties": {
                "term1": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}},
                "term2": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}},
                "term3": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}}
            }
        },
        "ReportCardRequest": {
            "type": "object",
            "required": ["student_name"],
            "properties": {
                "student_name": {"type": "string"},
                "roll_number": {"type": "string"},
                "class_name": {"type": "string"},
                "term1": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}},
                "term2": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}},
                "term3": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}}
            }
        },
        "BulkMarkItem": {
            "type": "object",
            "required": ["student_id", "subject_id", "total_marks"],
            "properties": {
                "student_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "total_marks": {"type": "number"},
                "obtained_marks": {"type": "number"},
                "passing_marks": {"type": "number"},
                "is_absent": {"type": "boolean"}
            }
        },
        "BulkMarksRequest": {
            "type": "object",
            "required": ["academic_year", "term", "items"],
            "properties": {
                "academic_year": {"type": "string"},
                "term": {"type": "integer", "minimum": 1, "maximum": 3},
                "items": {"type": "array", "items": {"$ref": "#/definitions/BulkMarkItem"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
