// Package docs registra la especificación Swagger servida en /swagger/doc.json.
// Se mantiene a mano, en el formato de swag, a la par de las anotaciones de los handlers.
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
        "/appointments": {
            "get": {
                "description": "Turnos con nombre de paciente, médico y especialidad, más recientes primero.",
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Listar turnos",
                "parameters": [
                    {"type": "string", "description": "Scheduled | Completed | Cancelled", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Filtra por médico", "name": "doctor_id", "in": "query"},
                    {"type": "integer", "description": "Filtra por paciente", "name": "patient_id", "in": "query"},
                    {"type": "string", "description": "Fecha mínima (YYYY-MM-DD)", "name": "from", "in": "query"},
                    {"type": "string", "description": "Fecha máxima (YYYY-MM-DD)", "name": "to", "in": "query"},
                    {"type": "integer", "description": "Máximo de filas (mayor a 0, se recorta a 500). Por defecto 100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/appointments.appointmentViewResponse"}}},
                    "400": {"description": "Parámetros de filtro inválidos", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Reserva un turno para un paciente con un médico. Ambos deben existir. status por defecto: Scheduled.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Reservar turno",
                "parameters": [
                    {"description": "Datos del turno; appoint_date en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/appointments.bookAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/appointments.appointmentResponse"}},
                    "400": {"description": "invalid json / appoint_date inválido / paciente o médico inexistente", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/appointments/choices": {
            "get": {
                "description": "Pares id/label para el formulario de tratamientos.",
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Opciones de turno",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/appointments.choiceResponse"}}}
                }
            }
        },
        "/appointments/{appointID}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Cambiar estado de un turno",
                "parameters": [
                    {"type": "integer", "description": "ID del turno", "name": "appointID", "in": "path", "required": true},
                    {"description": "Nuevo estado", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/appointments.updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/appointments.appointmentResponse"}},
                    "400": {"description": "status inválido", "schema": {"type": "string"}},
                    "404": {"description": "appointment not found", "schema": {"type": "string"}}
                }
            }
        },
        "/doctors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Listar médicos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/doctors.doctorResponse"}}}
                }
            },
            "post": {
                "description": "Registra un médico. first_name y specialty son obligatorios (máx. 50 caracteres); hourly_rate \u003e= 0.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Alta de médico",
                "parameters": [
                    {"description": "Datos del médico", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/doctors.createDoctorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/doctors.doctorResponse"}},
                    "400": {"description": "invalid json / campos requeridos", "schema": {"type": "string"}}
                }
            }
        },
        "/doctors/choices": {
            "get": {
                "description": "Pares id/label para el formulario de turnos, con label \"Dr. \u003cnombre\u003e - \u003cespecialidad\u003e\".",
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Opciones de médico",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/doctors.choiceResponse"}}}
                }
            }
        },
        "/doctors/{doctorID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Obtener médico",
                "parameters": [
                    {"type": "integer", "description": "ID del médico", "name": "doctorID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/doctors.doctorResponse"}},
                    "404": {"description": "doctor not found", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Hace SELECT 1 contra la base. En modo in-memory siempre ok.",
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "string"}},
                    "503": {"description": "database unreachable", "schema": {"type": "string"}}
                }
            }
        },
        "/patients": {
            "get": {
                "description": "Últimos registrados primero.",
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Listar pacientes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/patients.patientResponse"}}}
                }
            },
            "post": {
                "description": "name (máx. 50) y phone (máx. 15) son obligatorios.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Registrar paciente",
                "parameters": [
                    {"description": "Datos del paciente", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patients.registerPatientRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/patients.patientResponse"}},
                    "400": {"description": "invalid json / campos requeridos", "schema": {"type": "string"}}
                }
            }
        },
        "/patients/choices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Opciones de paciente",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/patients.choiceResponse"}}}
                }
            }
        },
        "/patients/{patientID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Obtener paciente",
                "parameters": [
                    {"type": "integer", "description": "ID del paciente", "name": "patientID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/patients.patientResponse"}},
                    "404": {"description": "patient not found", "schema": {"type": "string"}}
                }
            }
        },
        "/sql": {
            "post": {
                "description": "Ejecuta una única sentencia SELECT / WITH / EXPLAIN / VALUES contra la base de la clínica. La transacción siempre se revierte. Requiere autenticación: `+"`"+`X-Debug-User-ID`+"`"+` (dev) o `+"`"+`Authorization: Bearer \u003ctoken\u003e`+"`"+` (prod).",
                "consumes": ["application/json"],
                "produces": ["application/json", "text/csv", "text/plain"],
                "tags": ["sql"],
                "summary": "Ejecutar SQL de solo lectura",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Bearer token en producción", "name": "Authorization", "in": "header"},
                    {"type": "string", "description": "json (default) | csv | table | yaml", "name": "format", "in": "query"},
                    {"description": "Query a ejecutar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sqlconsole.runQueryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sqlconsole.QueryResponse"}},
                    "400": {"description": "query vacía / no es de lectura / error de SQL", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized / invalid token", "schema": {"type": "string"}},
                    "503": {"description": "sql console requires a database", "schema": {"type": "string"}},
                    "504": {"description": "query timed out", "schema": {"type": "string"}}
                }
            }
        },
        "/sql/history": {
            "get": {
                "description": "Últimas ejecuciones (incluidas las rechazadas), la más reciente primero.",
                "produces": ["application/json"],
                "tags": ["sql"],
                "summary": "Historial de la consola SQL",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/sqlconsole.runResponse"}}},
                    "401": {"description": "unauthorized / invalid token", "schema": {"type": "string"}}
                }
            }
        },
        "/treatments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["treatments"],
                "summary": "Listar tratamientos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/treatments.treatmentViewResponse"}}}
                }
            },
            "post": {
                "description": "Registra un servicio realizado en un turno existente. service_name obligatorio (máx. 50), cost \u003e= 0.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["treatments"],
                "summary": "Registrar tratamiento",
                "parameters": [
                    {"description": "Servicio realizado en un turno", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/treatments.recordTreatmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/treatments.treatmentResponse"}},
                    "400": {"description": "invalid json / turno inexistente", "schema": {"type": "string"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Websocket que emite {kind, at, payload} por cada alta de médico/paciente, turno o tratamiento.",
                "tags": ["live"],
                "summary": "Feed de eventos en vivo",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "appointments.appointmentResponse": {
            "type": "object",
            "properties": {
                "appoint_date": {"type": "string"},
                "appoint_id": {"type": "integer"},
                "doctor_id": {"type": "integer"},
                "patient_id": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "appointments.appointmentViewResponse": {
            "type": "object",
            "properties": {
                "appoint_date": {"type": "string"},
                "appoint_id": {"type": "integer"},
                "doctor": {"type": "string"},
                "patient": {"type": "string"},
                "specialty": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "appointments.bookAppointmentRequest": {
            "type": "object",
            "properties": {
                "appoint_date": {"type": "string", "example": "2025-03-14"},
                "doctor_id": {"type": "integer"},
                "patient_id": {"type": "integer"},
                "status": {"type": "string", "enum": ["Scheduled", "Completed", "Cancelled"]}
            }
        },
        "appointments.choiceResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"}
            }
        },
        "appointments.updateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["Scheduled", "Completed", "Cancelled"]}
            }
        },
        "doctors.choiceResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"}
            }
        },
        "doctors.createDoctorRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "hourly_rate": {"type": "number"},
                "specialty": {"type": "string"}
            }
        },
        "doctors.doctorResponse": {
            "type": "object",
            "properties": {
                "doctor_id": {"type": "integer"},
                "first_name": {"type": "string"},
                "hourly_rate": {"type": "number"},
                "specialty": {"type": "string"}
            }
        },
        "patients.choiceResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"}
            }
        },
        "patients.patientResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "patient_id": {"type": "integer"},
                "phone": {"type": "string"}
            }
        },
        "patients.registerPatientRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "sqlconsole.QueryResponse": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "elapsed_ms": {"type": "integer"},
                "row_count": {"type": "integer"},
                "rows": {"type": "array", "items": {"type": "array", "items": {}}},
                "truncated": {"type": "boolean"}
            }
        },
        "sqlconsole.runQueryRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "SELECT * FROM appointments LIMIT 5"}
            }
        },
        "sqlconsole.runResponse": {
            "type": "object",
            "properties": {
                "duration_ms": {"type": "integer"},
                "error": {"type": "string"},
                "id": {"type": "string"},
                "query": {"type": "string"},
                "row_count": {"type": "integer"},
                "started_at": {"type": "string"},
                "truncated": {"type": "boolean"}
            }
        },
        "treatments.recordTreatmentRequest": {
            "type": "object",
            "properties": {
                "appoint_id": {"type": "integer"},
                "cost": {"type": "number"},
                "service_name": {"type": "string"}
            }
        },
        "treatments.treatmentResponse": {
            "type": "object",
            "properties": {
                "appoint_id": {"type": "integer"},
                "cost": {"type": "number"},
                "service_name": {"type": "string"},
                "treatment_id": {"type": "integer"}
            }
        },
        "treatments.treatmentViewResponse": {
            "type": "object",
            "properties": {
                "appoint_date": {"type": "string"},
                "cost": {"type": "number"},
                "doctor": {"type": "string"},
                "patient": {"type": "string"},
                "service_name": {"type": "string"},
                "treatment_id": {"type": "integer"}
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
	Title:            "Clinic Management API",
	Description:      "Médicos, pacientes, turnos y tratamientos, más una consola SQL de solo lectura.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
