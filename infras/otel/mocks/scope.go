package mocks

import "hotelbooking/infras/otel"

// discardScope drops spans, events and errors.
type discardScope struct{}

func (discardScope) End()                         {}
func (discardScope) AddEvent(string)              {}
func (discardScope) SetAttribute(string, any)     {}
func (discardScope) SetAttributes(map[string]any) {}
func (discardScope) TraceError(error)             {}
func (discardScope) TraceIfError(error)           {}

func NewScope() otel.Scope {
	return discardScope{}
}
