// Package info serves the operational endpoints of the blog API: status,
// liveness and readiness probes, build metadata, the OpenAPI document, and
// an HTML viewer for it.
//
// RegisterRoutes mounts every endpoint on a ServeMux:
//
//	ih := info.NewInfoHandler(
//	    info.WithSwaggerProvider(openapi.JSON),
//	    info.WithReadinessChecks(probe.Mongo(client)),
//	)
//	ih.RegisterRoutes(mux)
package info
