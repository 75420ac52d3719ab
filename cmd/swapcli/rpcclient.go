// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// jsonrpcRequest and jsonrpcResponse follow the JSON-RPC 2.0 envelope
// gorilla/rpc/v2/json2 expects and produces, matching what rpc.Server
// registers each namespace's methods under.
type jsonrpcRequest struct {
	Version string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      uint64      `json:"id"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonrpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *jsonrpcError   `json:"error"`
	ID     uint64          `json:"id"`
}

// call invokes method (e.g. "swap.GetOngoing") against a swapd instance
// at baseURL, marshaling params as the single positional argument
// json2.Codec expects and unmarshaling the result into out.
func call(baseURL, method string, params, out interface{}) error {
	reqBody := jsonrpcRequest{
		Version: "2.0",
		Method:  method,
		Params:  []interface{}{params},
		ID:      1,
	}

	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	httpResp, err := http.Post(baseURL, "application/json", bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer httpResp.Body.Close() //nolint:errcheck

	var resp jsonrpcResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("decoding response to %s: %w", method, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("%s: %s", method, resp.Error.Message)
	}

	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}
