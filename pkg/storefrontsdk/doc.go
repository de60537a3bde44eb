/*
Package storefrontsdk provides the wire types and a client for the storefront API.

# Overview

The request types carry their own validation (Validate) so the server and any Go
caller agree on what a well-formed request is. Every response is wrapped in the
standard envelope:

	{"success": true, "message": "...", "data": {...}, "meta": {...}, "timestamp": "..."}

Errors come back as *APIError, built from the error envelope:

	{"success": false, "message": "...", "errors": [...], "statusCode": 409, "timestamp": "...", "path": "..."}

# Usage

	client := storefrontsdk.NewClient("http://localhost:8080")

	auth, err := client.Register(ctx, storefrontsdk.RegisterRequest{
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: "hunter22",
	})

	me, err := client.Profile(ctx, auth.Token)

	var apiErr *storefrontsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		// email already registered
	}
*/
package storefrontsdk
