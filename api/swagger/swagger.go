package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Shift Scheduler API",
        "description": "CP-SAT powered monthly staff-shift scheduling engine",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/solve": {
            "post": {
                "summary": "Solve a monthly shift schedule",
                "responses": {
                    "200": {
                        "description": "Feasible or infeasible output"
                    },
                    "400": {
                        "description": "Invalid payload, or validation-error output"
                    }
                }
            }
        },
        "/export": {
            "post": {
                "summary": "Render a solved schedule as CSV or PDF",
                "responses": {
                    "200": {
                        "description": "Rendered file"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
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
