// Package docs registers the OpenAPI description of the reporting API with
// swag so gin-swagger can serve it under /swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "components": {
        "parameters": {
            "TenantID": {
                "name": "X-Tenant-ID",
                "in": "header",
                "required": false,
                "description": "Tenant UUID, the configured default tenant is used when absent",
                "schema": {"type": "string", "format": "uuid"}
            }
        },
        "schemas": {
            "ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {"type": "string", "examples": ["ERR_SOURCE_UNAVAILABLE"]},
                    "message": {"type": "string"},
                    "request_id": {"type": "string"}
                }
            },
            "Envelope": {
                "type": "object",
                "properties": {
                    "success": {"type": "boolean"},
                    "data": {},
                    "error": {"$ref": "#/components/schemas/ErrorInfo"}
                }
            },
            "InventoryCategory": {
                "type": "object",
                "properties": {
                    "category": {"type": "string", "enum": ["raw_material", "packaging_material", "semi_finished", "finished_good"]},
                    "label": {"type": "string"},
                    "count": {"type": "integer"},
                    "value": {"type": "number"},
                    "degraded": {"type": "boolean", "description": "The category could not be read and is valued at zero"}
                }
            },
            "TreasuryAccount": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "name": {"type": "string"},
                    "type": {"type": "string", "enum": ["cash", "bank"]},
                    "balance": {"type": "number"}
                }
            },
            "Counterparty": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "name": {"type": "string"},
                    "type": {"type": "string", "enum": ["customer", "supplier"]},
                    "balance": {"type": "number"},
                    "phone": {"type": "string"}
                }
            },
            "BalanceSheet": {
                "type": "object",
                "properties": {
                    "assets": {
                        "type": "object",
                        "properties": {
                            "inventory": {"type": "number"},
                            "cash": {"type": "number"},
                            "receivables": {"type": "number"},
                            "total": {"type": "number"}
                        }
                    },
                    "liabilities": {
                        "type": "object",
                        "properties": {
                            "payables": {"type": "number"},
                            "total": {"type": "number"}
                        }
                    },
                    "net_position": {"type": "number"},
                    "coverage_ratio": {"type": "integer", "description": "assets / liabilities * 100, 100 when there are no liabilities"},
                    "inventory_breakdown": {"type": "array", "items": {"$ref": "#/components/schemas/InventoryCategory"}},
                    "treasury_breakdown": {"type": "array", "items": {"$ref": "#/components/schemas/TreasuryAccount"}},
                    "top_receivables": {"type": "array", "items": {"$ref": "#/components/schemas/Counterparty"}},
                    "top_payables": {"type": "array", "items": {"$ref": "#/components/schemas/Counterparty"}},
                    "customers_with_debt": {"type": "integer"},
                    "suppliers_we_owe": {"type": "integer"},
                    "inventory_warnings": {"type": "array", "items": {"type": "string"}},
                    "generated_at": {"type": "string", "format": "date-time"}
                }
            },
            "QuickSummary": {
                "type": "object",
                "properties": {
                    "net_position": {"type": "number"},
                    "total_assets": {"type": "number"},
                    "total_liabilities": {"type": "number"},
                    "status": {"type": "string", "enum": ["positive", "negative", "balanced"]}
                }
            }
        },
        "responses": {
            "Error": {
                "description": "Error envelope",
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
            }
        }
    },
    "paths": {
        "/reports/balance-sheet": {
            "get": {
                "tags": ["reports"],
                "summary": "Full balance sheet",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "Balance sheet", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BalanceSheet"}}}},
                    "400": {"$ref": "#/components/responses/Error"},
                    "503": {"$ref": "#/components/responses/Error"},
                    "504": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reports/balance-sheet/summary": {
            "get": {
                "tags": ["reports"],
                "summary": "Net position, totals and status",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "Quick summary", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QuickSummary"}}}},
                    "503": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reports/balance-sheet/inventory": {
            "get": {
                "tags": ["reports"],
                "summary": "Valuation of the four inventory categories",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "Inventory categories", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/InventoryCategory"}}}}},
                    "503": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reports/balance-sheet/treasury": {
            "get": {
                "tags": ["reports"],
                "summary": "Treasury accounts, highest balance first",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "Treasury accounts", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/TreasuryAccount"}}}}},
                    "503": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reports/balance-sheet/parties": {
            "get": {
                "tags": ["reports"],
                "summary": "Customers and suppliers with a non-zero balance",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "Counterparties", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Counterparty"}}}}},
                    "503": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reports/balance-sheet/refresh": {
            "post": {
                "tags": ["reports"],
                "summary": "Drop the cached balance sheet of the tenant",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "Cache invalidated"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reports/balance-sheet/print": {
            "get": {
                "tags": ["reports"],
                "summary": "Printable HTML balance sheet",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "HTML page", "content": {"text/html": {}}},
                    "503": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reports/balance-sheet/pdf": {
            "get": {
                "tags": ["reports"],
                "summary": "A4 PDF balance sheet",
                "parameters": [{"$ref": "#/components/parameters/TenantID"}],
                "responses": {
                    "200": {"description": "PDF attachment", "content": {"application/pdf": {}}},
                    "503": {"$ref": "#/components/responses/Error"},
                    "504": {"$ref": "#/components/responses/Error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "Balance Sheet API",
	Description:      "Point-in-time balance sheet of a manufacturing plant, composed from inventory, treasury and counterparty ledgers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
