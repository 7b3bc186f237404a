// Package crm is a typed client for the CRM admin REST API: authentication,
// leads, agents, tasks, roles, invoices, and the email/SMS composer.
//
// The client is a thin shape layer. Business rules — lead assignment,
// permission enforcement, invoice numbering — live on the server; this
// package only builds requests, decodes responses, and reproduces the
// dashboard's client-side list filtering, sorting, and pagination over
// already-fetched slices.
//
// Authorization is not this package's concern either: pass the *http.Client
// returned by authsession's Manager.HTTPClient and every call carries the
// current bearer token automatically.
package crm
