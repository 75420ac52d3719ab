// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"github.com/gorilla/rpc/v2/json2"
)

// NewCodec returns the JSON-RPC 2.0 codec every registered namespace is
// served under.
func NewCodec() *json2.Codec {
	return json2.NewCodec()
}
