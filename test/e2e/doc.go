// Package e2e exercises the petstore pet endpoints end to end. The cases run
// against an in-process fake by default; set PETSTORE_LIVE=true to run them
// against BASE_URL.
package e2e
