package usecase

import "github.com/xeipuuv/gojsonschema"

const planSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["date", "blocks", "reasoning"],
  "properties": {
    "date": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" },
    "reasoning": { "type": "string" },
    "blocks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["startTime", "endTime", "activity", "type"],
        "properties": {
          "startTime": { "type": "string", "format": "date-time" },
          "endTime": { "type": "string", "format": "date-time" },
          "activity": { "type": "string", "minLength": 1 },
          "type": { "type": "string", "enum": ["focus", "break", "free"] },
          "relatedAssignmentId": { "type": "string" }
        }
      }
    }
  }
}`

var planSchemaLoader = gojsonschema.NewStringLoader(planSchemaJSON)
