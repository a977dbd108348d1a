package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MI Attendance API",
        "description": "Student and teacher records backed by MongoDB",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Students",
            "description": "Student records"
        },
        {
            "name": "Teachers",
            "description": "Teacher records"
        },
        {
            "name": "Operations",
            "description": "Probes and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is unreachable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/student": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List every student",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Student"
                            }
                        }
                    },
                    "500": {
                        "description": "Driver error",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "503": {
                        "description": "Collection not initialized",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Students"
                ],
                "summary": "Insert a student",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Student"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/InsertAck"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error or type mismatch",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Students"
                ],
                "summary": "Set the present fields of new_data on every matching student",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateStudentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/UpdateAck"
                        }
                    },
                    "400": {
                        "description": "Empty filter or nothing to set",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Students"
                ],
                "summary": "Delete one student matching the body",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Student"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/DeleteAck"
                        }
                    },
                    "400": {
                        "description": "Empty filter",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            }
        },
        "/student/search": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Find the first student matching the query",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Record ID; also accepted as _id"
                    },
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "card_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "class_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Student"
                        }
                    },
                    "400": {
                        "description": "No usable filter (error_code 1)",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error or type mismatch (error_code 2)",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            }
        },
        "/student/export": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Download every student as csv, xlsx or pdf",
                "produces": [
                    "text/csv",
                    "application/pdf",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "xlsx",
                            "pdf"
                        ],
                        "default": "csv"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Unsupported format",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            }
        },
        "/teacher": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "List every teacher",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Teacher"
                            }
                        }
                    },
                    "500": {
                        "description": "Driver error",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "503": {
                        "description": "Collection not initialized",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Insert a teacher",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Teacher"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/InsertAck"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error or type mismatch",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Set the present fields of new_data on every matching teacher",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateTeacherRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/UpdateAck"
                        }
                    },
                    "400": {
                        "description": "Empty filter or nothing to set",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Delete one teacher matching the body",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Teacher"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/DeleteAck"
                        }
                    },
                    "400": {
                        "description": "Empty filter",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            }
        },
        "/teacher/search": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Find the first teacher matching the query",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Record ID; also accepted as _id"
                    },
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "pass",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Teacher"
                        }
                    },
                    "400": {
                        "description": "No usable filter (error_code 1)",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    },
                    "500": {
                        "description": "Driver error or type mismatch (error_code 2)",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            }
        },
        "/teacher/export": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Download every teacher as csv, xlsx or pdf",
                "produces": [
                    "text/csv",
                    "application/pdf",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "xlsx",
                            "pdf"
                        ],
                        "default": "csv"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Unsupported format",
                        "schema": {
                            "$ref": "#/definitions/ErrorObject"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "example": "65f1c0ffee0123456789abcd"
                },
                "name": {
                    "type": "string"
                },
                "card_id": {
                    "type": "string"
                },
                "class_id": {
                    "type": "string"
                }
            }
        },
        "Teacher": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "pass": {
                    "type": "string"
                }
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "params": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "new_data": {
                    "$ref": "#/definitions/Student"
                }
            }
        },
        "UpdateTeacherRequest": {
            "type": "object",
            "properties": {
                "params": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "new_data": {
                    "$ref": "#/definitions/Teacher"
                }
            }
        },
        "InsertAck": {
            "type": "object",
            "properties": {
                "inserted_id": {
                    "type": "string"
                }
            }
        },
        "UpdateAck": {
            "type": "object",
            "properties": {
                "matched_count": {
                    "type": "integer"
                },
                "modified_count": {
                    "type": "integer"
                },
                "upserted_id": {
                    "type": "string"
                }
            }
        },
        "DeleteAck": {
            "type": "object",
            "properties": {
                "deleted_count": {
                    "type": "integer"
                }
            }
        },
        "ErrorObject": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "error_code": {
                    "type": "integer",
                    "description": "0 generic or driver, 1 empty filter or bad input, 2 type mismatch"
                },
                "error_line": {
                    "type": "integer"
                }
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
