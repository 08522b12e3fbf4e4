/*
Package types defines the data structures shared across redactcli.

# Session State

SessionState is the one record both views read. It is replaced wholesale after
every successful redact call and serialised as a single JSON document under
StateKey:

	{
	  "originalText": "John lives in NYC",
	  "anonymizedText": "<PERSON_1> lives in <ADDRESS_1>",
	  "entities": [{"key": "<PERSON_1>", "values": ["John"]}],
	  "entityTypes": ["PERSON", "ADDRESS"]
	}

# Wire Types

The request and response bodies of the redaction service:
  - ConfigResponse      GET  /api/v1/config
  - AnonymizeRequest    POST /api/v1/anonymize
  - AnonymizeResponse
  - RestoreRequest      POST /api/v1/restore
  - RestoreResponse
  - ErrorResponse       any non-2xx body

EntityMapping values are produced by the service and passed back to it
unchanged; the client never edits them.
*/
package types
