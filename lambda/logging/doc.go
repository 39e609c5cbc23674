// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*

The runtime emits only internal logs: its own operational messages written
through logrus to stderr, which Lambda forwards to the function's log stream.
Handler output is not captured or proxied; whatever the handler writes to
stdout and stderr reaches the log stream directly.

*/
package logging
