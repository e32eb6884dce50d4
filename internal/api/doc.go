// Package api handles incoming HTTP requests, request validation and
// response formatting for study sessions and the set catalog. It acts as an
// adapter between browser clients and the session, loader and catalog
// packages, translating HTTP concerns to session transitions.
package api
