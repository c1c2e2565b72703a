package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Paratus task management API",
        "title": "Paratus API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/collections": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "List collections",
                "description": "Every collection by position with section summaries and open task counts",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Collections"
                    },
                    "503": {
                        "description": "Store unavailable"
                    }
                }
            },
            "post": {
                "tags": [
                    "collections"
                ],
                "summary": "Create a collection",
                "description": "Appends a collection with an Uncategorized section",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateCollectionRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "409": {
                        "description": "Reserved name"
                    }
                }
            }
        },
        "/collections/inbox": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "Get the Inbox",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Inbox"
                    },
                    "404": {
                        "description": "Not initialized"
                    }
                }
            }
        },
        "/collections/initialize": {
            "post": {
                "tags": [
                    "collections"
                ],
                "summary": "Ensure the Inbox exists",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Inbox"
                    }
                }
            }
        },
        "/collections/reorder": {
            "put": {
                "tags": [
                    "collections"
                ],
                "summary": "Reorder collections",
                "description": "Position equals index in the body",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/ReorderEntry"
                            }
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Reordered"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/collections/{id}": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "Get a collection",
                "description": "Sections with their open top-level tasks",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Collection"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "put": {
                "tags": [
                    "collections"
                ],
                "summary": "Rename a collection",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateCollectionRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Updated"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Inbox or reserved name"
                    }
                }
            },
            "delete": {
                "tags": [
                    "collections"
                ],
                "summary": "Delete a collection",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Deleted collection"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Inbox"
                    }
                }
            }
        },
        "/sections": {
            "post": {
                "tags": [
                    "sections"
                ],
                "summary": "Create a section",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateSectionRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Reserved name"
                    }
                }
            }
        },
        "/sections/reorder": {
            "put": {
                "tags": [
                    "sections"
                ],
                "summary": "Reorder sections",
                "description": "Entries naming collection_id move into that collection",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/ReorderEntry"
                            }
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Reordered"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Uncategorized cannot leave its collection"
                    }
                }
            }
        },
        "/sections/{id}": {
            "put": {
                "tags": [
                    "sections"
                ],
                "summary": "Rename a section",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateSectionRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Updated"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Uncategorized"
                    }
                }
            },
            "delete": {
                "tags": [
                    "sections"
                ],
                "summary": "Delete a section",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Deleted section"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Uncategorized"
                    }
                }
            }
        },
        "/tasks": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Create a task",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateTaskRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "422": {
                        "description": "Computed section"
                    }
                }
            }
        },
        "/tasks/today": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Today view",
                "description": "Overdue tasks and tasks due today",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "View"
                    }
                }
            }
        },
        "/tasks/upcoming": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Upcoming view",
                "description": "Overdue tasks and one section per day of the current week",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "View"
                    }
                }
            }
        },
        "/tasks/reorder": {
            "put": {
                "tags": [
                    "tasks"
                ],
                "summary": "Reorder tasks",
                "description": "Entries naming section_id move into that section",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/ReorderEntry"
                            }
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Reordered"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "422": {
                        "description": "Computed section"
                    }
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Get a task",
                "description": "Task with sub-tasks, comments and checklist",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Task"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "put": {
                "tags": [
                    "tasks"
                ],
                "summary": "Update a task",
                "description": "Replaces every editable field",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateTaskRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Updated"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "422": {
                        "description": "Computed section"
                    }
                }
            },
            "delete": {
                "tags": [
                    "tasks"
                ],
                "summary": "Delete a task",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Deleted task"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/comments": {
            "post": {
                "tags": [
                    "comments"
                ],
                "summary": "Comment on a task",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateCommentRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/comments/{id}": {
            "put": {
                "tags": [
                    "comments"
                ],
                "summary": "Edit a comment",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateCommentRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Updated"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "comments"
                ],
                "summary": "Delete a comment",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Deleted comment"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/checklist-items": {
            "post": {
                "tags": [
                    "checklist"
                ],
                "summary": "Add a checklist item",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateChecklistItemRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/checklist-items/reorder": {
            "put": {
                "tags": [
                    "checklist"
                ],
                "summary": "Reorder checklist items",
                "description": "Entries naming task_id move to that task",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/ReorderEntry"
                            }
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Reordered"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/checklist-items/{id}": {
            "put": {
                "tags": [
                    "checklist"
                ],
                "summary": "Update a checklist item",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateChecklistItemRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Updated"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "checklist"
                ],
                "summary": "Delete a checklist item",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Deleted item"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/dates/quick-picks": {
            "get": {
                "tags": [
                    "dates"
                ],
                "summary": "Due date shortcuts",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Quick picks"
                    }
                }
            }
        }
    },
    "definitions": {
        "CreateCollectionRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            },
            "required": [
                "name"
            ]
        },
        "UpdateCollectionRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            },
            "required": [
                "name"
            ]
        },
        "CreateSectionRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "collection_id": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "collection_id"
            ]
        },
        "UpdateSectionRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            },
            "required": [
                "name"
            ]
        },
        "CreateTaskRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "due_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "URGENT_AND_IMPORTANT",
                        "URGENT",
                        "IMPORTANT"
                    ]
                },
                "section_id": {
                    "type": "string"
                },
                "parent_task_id": {
                    "type": "string"
                }
            },
            "required": [
                "text",
                "section_id"
            ]
        },
        "UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "due_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "URGENT_AND_IMPORTANT",
                        "URGENT",
                        "IMPORTANT"
                    ]
                },
                "complete": {
                    "type": "boolean"
                },
                "section_id": {
                    "type": "string"
                }
            },
            "required": [
                "text",
                "section_id"
            ]
        },
        "CreateCommentRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "posted": {
                    "type": "string",
                    "format": "date-time"
                },
                "task_id": {
                    "type": "string"
                }
            },
            "required": [
                "text",
                "task_id"
            ]
        },
        "UpdateCommentRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            },
            "required": [
                "text"
            ]
        },
        "CreateChecklistItemRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "task_id": {
                    "type": "string"
                }
            },
            "required": [
                "text",
                "task_id"
            ]
        },
        "UpdateChecklistItemRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "complete": {
                    "type": "boolean"
                }
            },
            "required": [
                "text"
            ]
        },
        "ReorderEntry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "position": {
                    "type": "integer",
                    "minimum": 0
                },
                "collection_id": {
                    "type": "string"
                },
                "section_id": {
                    "type": "string"
                },
                "task_id": {
                    "type": "string"
                }
            },
            "required": [
                "id"
            ]
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Paratus API",
	Description:      "Paratus task management API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
