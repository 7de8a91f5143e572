// Package docs registers the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness and database reachability", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/tournaments": {
            "get": {"tags": ["tournaments"], "summary": "List tournaments, newest first", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Create a tournament",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.CreateTournamentInput"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Slug already taken"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/tournaments/{slug}": {
            "get": {"tags": ["tournaments"], "summary": "Get a tournament", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Change the pair limit",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true},
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.UpdateCapacityInput"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Delete a tournament with its pairs and matches",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/tournaments/{slug}/clear": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Remove all pairs and matches",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/tournaments/{slug}/pairs": {
            "get": {"tags": ["pairs"], "summary": "Active pairs and waitlist", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Roster"}}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["pairs"], "summary": "Sign up a pair", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true},
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.RegisterPairInput"}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/pairs/{pairID}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["pairs"], "summary": "Remove a pair",
                "parameters": [{"type": "integer", "name": "pairID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}, "409": {"description": "Pair already scheduled"}}}
        },
        "/tournaments/{slug}/schedule": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["matches"], "summary": "Generate the round-robin schedule", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Schedule"}},
                    "400": {"description": "Fewer than 2 active pairs"}, "404": {"description": "Not Found"}, "409": {"description": "Schedule already generated"}}}
        },
        "/tournaments/{slug}/matches": {
            "get": {"tags": ["matches"], "summary": "List matches ordered by round", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/matches/{matchID}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["matches"], "summary": "Record or correct a match score",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "matchID", "in": "path", "required": true},
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.RecordScoreInput"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/tournaments/{slug}/standings": {
            "get": {"tags": ["standings"], "summary": "Current standings", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.StandingsView"}}, "404": {"description": "Not Found"}}}
        },
        "/tournaments/{slug}/board": {
            "get": {"tags": ["standings"], "summary": "Everything the public board shows", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tournaments/{slug}/export": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["standings"], "summary": "Upload a standings snapshot to object storage",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}, "503": {"description": "Storage not configured"}}}
        },
        "/ws/tournaments/{slug}": {
            "get": {"tags": ["live"], "summary": "Live schedule and standings updates",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"101": {"description": "Switching Protocols"}, "404": {"description": "Not Found"}}}
        }
    },
    "definitions": {
        "services.CreateTournamentInput": {"type": "object", "properties": {
            "name": {"type": "string"}, "slug": {"type": "string"}, "max_pairs": {"type": "integer"}}},
        "services.UpdateCapacityInput": {"type": "object", "properties": {"max_pairs": {"type": "integer"}}},
        "services.RegisterPairInput": {"type": "object", "properties": {"player1": {"type": "string"}, "player2": {"type": "string"}}},
        "services.RecordScoreInput": {"type": "object", "properties": {"score1": {"type": "integer"}, "score2": {"type": "integer"}}},
        "models.Pair": {"type": "object", "properties": {
            "id": {"type": "integer"}, "tournament_id": {"type": "integer"}, "player1": {"type": "string"},
            "player2": {"type": "string"}, "created_at": {"type": "string"}}},
        "models.Roster": {"type": "object", "properties": {
            "active": {"type": "array", "items": {"$ref": "#/definitions/models.Pair"}},
            "waitlist": {"type": "array", "items": {"$ref": "#/definitions/models.Pair"}}}},
        "models.Match": {"type": "object", "properties": {
            "id": {"type": "integer"}, "tournament_id": {"type": "integer"}, "round": {"type": "integer"},
            "pair1_id": {"type": "integer"}, "pair2_id": {"type": "integer"}, "score1": {"type": "integer"},
            "score2": {"type": "integer"}, "played": {"type": "boolean"}}},
        "models.Schedule": {"type": "object", "properties": {
            "rounds": {"type": "integer"}, "matches": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}}},
        "models.Standing": {"type": "object", "properties": {
            "pair_id": {"type": "integer"}, "matches_played": {"type": "integer"}, "wins": {"type": "integer"},
            "draws": {"type": "integer"}, "losses": {"type": "integer"}, "points": {"type": "integer"}}},
        "models.ScoreCheck": {"type": "object", "properties": {
            "expected_total": {"type": "integer"}, "deviating_rounds": {"type": "array", "items": {"type": "integer"}}}},
        "services.StandingsView": {"type": "object", "properties": {
            "standings": {"type": "array", "items": {"$ref": "#/definitions/models.Standing"}},
            "score_check": {"$ref": "#/definitions/models.ScoreCheck"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Doubles Rounds API",
	Description:      "Round-robin doubles tournaments: sign-ups with a waitlist, one-shot schedule generation, score entry and live standings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
