// Package api exposes the render cache and the rendering worker over HTTP.
//
// Two handlers are provided:
//
//   - [Server]: the public API (POST /v1/render, GET /v1/template-packs,
//     GET /drawings/{assemblyId}/{rev}/{file}, GET /health)
//   - [Worker]: the rendering worker contract (POST /render, GET /health)
//     consumed by worker.Client
//
// Both share the middleware stack (request id, access log, panic recovery)
// and the error envelope
//
//	{"error": {"code": "TEMPLATE_NOT_FOUND", "kind": "not_found", "message": "..."}}
//
// whose HTTP status follows [errors.HTTPStatus].
package api
