/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package analytics queries Azure Log Analytics workspaces over the REST API.
//
// The client authenticates as an Azure AD application through the OAuth2
// client-credentials flow and runs KQL against a workspace:
//
//	source := analytics.Credentials{
//		TenantID:     tenant,
//		ClientID:     appID,
//		ClientSecret: secret,
//	}.TokenSource(ctx)
//	client := analytics.New(source)
//	result, err := client.Query(ctx, workspaceID, "Heartbeat | take 10", time.Hour)
//
// Results come back as plain tables plus execution stats, and each table
// renders to a markdown block for prompt embedding and text export. The
// package also carries a small embedded catalog of example KQL queries,
// grouped by investigation scenario.
package analytics
