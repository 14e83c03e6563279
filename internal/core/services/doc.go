// Package services implements the driving port interfaces.
// Services orchestrate calls to driven ports (adapters); the expense
// service is a thin pass-through because each operation maps onto exactly
// one store call.
//
// Services are pure Go with no CGO or external dependencies.
package services
