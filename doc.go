// Package devstack provides bootstrap tooling for the Bantu OS development stack.
//
// This is the developer tooling repository that brings up the local
// multi-service environment and keeps its configuration in a known-good
// state for development.
//
// # Overview
//
// The tooling provides:
//   - bantu-devstack CLI for stack management
//   - docker compose orchestration
//   - First-run env file preparation with a forced dev auth setting
//   - Readiness polling of the web frontend
//
// # Installation
//
//	go install github.com/MB-Ndhlovu/bantu-devstack/cmd/bantu-devstack@latest
//
// # Quick Start
//
//	bantu-devstack up
//	bantu-devstack status
//	bantu-devstack logs api_server
//
// # Exit codes
//
// up exits 0 once the frontend answers, 1 when the stack cannot be
// launched, and 2 when the readiness wait times out.
package devstack
