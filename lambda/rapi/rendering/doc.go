// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*

Package rendering writes Runtime API replies.

An invocation is rendered as its raw payload with the Lambda-Runtime-*
headers. Every other reply is a JSON document: model.StatusResponse for an
accepted report, model.ErrorResponse for a rejected request.

*/
package rendering
