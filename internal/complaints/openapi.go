package complaints

import "github.com/JaimeStill/triage/pkg/openapi"

type spec struct {
	Create       *openapi.Operation
	List         *openapi.Operation
	Search       *openapi.Operation
	Find         *openapi.Operation
	UpdateStatus *openapi.Operation
	Schemas      map[string]*openapi.Schema
}

// Spec holds the OpenAPI operations and schemas of the complaint endpoints.
var Spec = spec{
	Create: &openapi.Operation{
		Summary:     "Submit a complaint",
		Description: "Enriches the text with sentiment and category labels and stores the complaint as open.",
		RequestBody: openapi.RequestBodyJSON("CreateCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Stored complaint", "Complaint"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	List: &openapi.Operation{
		Summary: "List complaints, newest first",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("status", "string", "Filter by status (open, closed)", false),
			openapi.QueryParam("from_timestamp", "integer", "Only complaints created within the last N seconds", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Matching complaints", "Complaint"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search complaints with pagination",
		RequestBody: openapi.RequestBodyJSON("SearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of complaints", "ComplaintPage"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get a complaint",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Complaint ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Complaint", "Complaint"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	UpdateStatus: &openapi.Operation{
		Summary:     "Update complaint status",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Complaint ID")},
		RequestBody: openapi.RequestBodyJSON("UpdateStatusCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated complaint", "Complaint"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Complaint": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"text":       {Type: "string"},
				"status":     {Type: "string", Enum: []any{"open", "closed"}},
				"sentiment":  {Type: "string", Enum: []any{"positive", "negative", "neutral", "unknown"}},
				"category":   {Type: "string", Enum: []any{"technical", "payment", "other"}},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"CreateCommand": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"text": {Type: "string", Description: "Complaint text", Example: "Не приходит SMS-код"},
			},
		},
		"UpdateStatusCommand": {
			Type:     "object",
			Required: []string{"status"},
			Properties: map[string]*openapi.Schema{
				"status": {Type: "string", Enum: []any{"open", "closed"}},
			},
		},
		"SearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":           {Type: "integer", Example: 1},
				"page_size":      {Type: "integer", Example: 20},
				"search":         {Type: "string", Description: "Case-insensitive substring of the text"},
				"sort":           {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: -CreatedAt"},
				"status":         {Type: "string", Enum: []any{"open", "closed"}},
				"from_timestamp": {Type: "integer", Description: "Only complaints created within the last N seconds"},
			},
		},
		"ComplaintPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Complaint")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	},
}
