// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package fake implements a Provider that returns one of four canned
target responses, for exercising the extraction/verification/scoring
pipeline without a live vendor call. It never touches the network.
*/
package fake
