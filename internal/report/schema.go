package report

// Schema is the JSON Schema (Draft 2020-12) for the branchstub JSON
// report. It documents the structure written by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/branchstub/report.schema.json",
  "title": "branchstub Run Report",
  "description": "Output schema for branchstub generate --format=json",
  "type": "object",
  "required": ["version", "dry_run", "files", "stats"],
  "properties": {
    "version": {
      "type": "string",
      "description": "branchstub version"
    },
    "dry_run": {
      "type": "boolean",
      "description": "True when no file was written"
    },
    "files": {
      "type": "array",
      "items": { "$ref": "#/$defs/FileResult" }
    },
    "stats": { "$ref": "#/$defs/Stats" }
  },
  "$defs": {
    "FileResult": {
      "type": "object",
      "required": ["path", "test_path", "language", "functions", "written"],
      "properties": {
        "path": { "type": "string" },
        "test_path": {
          "type": "string",
          "description": "Companion test file the stubs are appended to"
        },
        "language": { "type": "string", "enum": ["Go", "TypeScript"] },
        "functions": {
          "oneOf": [
            { "type": "array", "items": { "$ref": "#/$defs/Function" } },
            { "type": "null" }
          ]
        },
        "appended": {
          "type": "string",
          "description": "Text appended to the test file"
        },
        "written": { "type": "boolean" }
      }
    },
    "Function": {
      "type": "object",
      "required": ["name", "kind", "visibility", "line", "already_tested", "forest"],
      "properties": {
        "name": { "type": "string" },
        "kind": { "type": "string", "enum": ["method", "function", "lambda"] },
        "visibility": { "type": "string", "enum": ["public", "protected", "private"] },
        "line": { "type": "integer", "minimum": 0 },
        "complexity": {
          "type": "integer",
          "description": "Cyclomatic complexity, when known"
        },
        "already_tested": { "type": "boolean" },
        "forest": {
          "oneOf": [
            { "type": "array", "items": { "$ref": "#/$defs/Branch" } },
            { "type": "null" }
          ],
          "description": "One tree per top-level conditional"
        }
      }
    },
    "Branch": {
      "type": "object",
      "required": ["condition"],
      "properties": {
        "condition": {
          "type": "string",
          "description": "Condition source text or its negation !(...)"
        },
        "children": {
          "type": "array",
          "items": { "$ref": "#/$defs/Branch" }
        }
      }
    },
    "Stats": {
      "type": "object",
      "required": ["files_read", "files_written", "branches", "rendered"],
      "properties": {
        "files_read": { "type": "integer" },
        "files_written": { "type": "integer" },
        "methods": { "type": "integer" },
        "functions": { "type": "integer" },
        "lambdas": { "type": "integer" },
        "ignored_lambdas": { "type": "integer" },
        "branches": {
          "type": "object",
          "required": ["then", "else", "else_if", "implicit_else"],
          "properties": {
            "then": { "type": "integer" },
            "else": { "type": "integer" },
            "else_if": { "type": "integer" },
            "implicit_else": { "type": "integer" }
          }
        },
        "sanitized": { "type": "integer" },
        "rendered": {
          "type": "object",
          "required": ["functions", "tests"],
          "properties": {
            "functions": { "type": "integer" },
            "tests": { "type": "integer" },
            "skipped_tested": { "type": "integer" },
            "skipped_private": { "type": "integer" },
            "skipped_protected": { "type": "integer" }
          }
        },
        "bytes_appended": { "type": "integer" },
        "started": { "type": "string" },
        "duration_ns": { "type": "integer" }
      }
    }
  }
}`
